package cmd

import (
	"github.com/spf13/cobra"
	"github.com/weatherchat/weatherchat/internal/config"
	"github.com/weatherchat/weatherchat/internal/server"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP chat server",
	Long:  `Start the HTTP server that exposes the conversation turn pipeline as POST /chat.`,
	RunE:  runServer,
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()

	log.Infow("Starting chat server",
		"config_path", configPath,
		"telemetry_enabled", cfg.Telemetry.Enabled,
		"server_port", cfg.Server.Port)

	srv := server.NewServer(newBot(), log.Desugar(), tele)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		log.Errorw("Server error", "error", err)
		return err
	case <-cmd.Context().Done():
		log.Info("Shutting down server")

		if err := srv.Shutdown(); err != nil {
			log.Errorw("Error during server shutdown", "error", err)
			return err
		}

		log.Info("Server shutdown complete")
		return nil
	}
}
