package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/weatherchat/weatherchat/internal/chat"
	"github.com/weatherchat/weatherchat/internal/config"
	"github.com/weatherchat/weatherchat/internal/weather"
	"github.com/weatherchat/weatherchat/internal/weather/providers"
	"github.com/weatherchat/weatherchat/pkg/logger"
	"github.com/weatherchat/weatherchat/pkg/telemetry"
)

var (
	configPath string
	log        *logger.Logger
	tele       *telemetry.Telemetry
)

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weatherchat",
		Short: "Conversational weather assistant",
		Long: `A chatbot that answers natural-language weather questions for past dates,
today, and up to 6 days in the future, and holds a general conversation otherwise.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeServices()
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to configuration file (default: ./config.yaml)")

	cmd.AddCommand(chatCmd)
	cmd.AddCommand(serverCmd)

	return cmd
}

func Execute() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		if log != nil {
			log.Infow("Received shutdown signal", "signal", sig.String())
		}
		cancel()
	}()

	return rootCmd().ExecuteContext(ctx)
}

func initializeServices() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	config.SetConfig(cfg)

	log, err = logger.New(cfg.Logging)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	tele, err = telemetry.New(context.Background(), cfg.Telemetry)
	if err != nil {
		log.Warnw("Failed to initialize telemetry", "error", err)
	}

	return nil
}

// newBot wires the turn pipeline: dispatcher, geocoder, the two weather
// providers, and the orchestrating service. Credentials come from config;
// a missing key fails at call time, not here.
func newBot() *chat.Bot {
	cfg := config.GetConfig()
	zl := log.Desugar()

	dispatcher := chat.NewDispatcher(cfg.Chat, cfg.Credentials.OpenAIAPIKey, zl, tele)
	geocoder := providers.NewOpenCage(cfg.Providers, cfg.Credentials.OpenCageAPIKey, zl)
	forecast := providers.NewMeteoblue(cfg.Providers, cfg.Credentials.MeteoblueAPIKey, zl)
	history := providers.NewVisualCrossing(cfg.Providers, cfg.Credentials.VisualCrossingAPIKey, zl)
	svc := weather.NewService(geocoder, forecast, history, zl, tele)

	return chat.NewBot(dispatcher, svc, zl)
}
