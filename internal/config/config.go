package config

import (
	"sync/atomic"
)

var configValue atomic.Value

func GetConfig() *Config {
	return configValue.Load().(*Config)
}

func SetConfig(cfg *Config) {
	configValue.Store(cfg)
}

type Config struct {
	Version     string            `mapstructure:"version"`
	Environment string            `mapstructure:"environment"`
	Chat        ChatConfig        `mapstructure:"chat"`
	Credentials CredentialsConfig `mapstructure:"credentials"`
	Providers   ProvidersConfig   `mapstructure:"providers"`
	Server      ServerConfig      `mapstructure:"server"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Telemetry   TelemetryConfig   `mapstructure:"telemetry"`
}

type ChatConfig struct {
	Model           string `mapstructure:"model"`
	DefaultLocation string `mapstructure:"default_location"`
	DefaultDate     string `mapstructure:"default_date"`
}

// CredentialsConfig carries the four provider keys. An empty key is not a
// configuration error; it surfaces later as a failed provider call.
type CredentialsConfig struct {
	OpenAIAPIKey         string `mapstructure:"openai_api_key"`
	MeteoblueAPIKey      string `mapstructure:"meteoblue_api_key"`
	OpenCageAPIKey       string `mapstructure:"opencage_api_key"`
	VisualCrossingAPIKey string `mapstructure:"visualcrossing_api_key"`
}

type ProvidersConfig struct {
	MeteoblueBaseURL      string `mapstructure:"meteoblue_base_url"`
	VisualCrossingBaseURL string `mapstructure:"visualcrossing_base_url"`
	OpenCageBaseURL       string `mapstructure:"opencage_base_url"`
	Timeout               int    `mapstructure:"timeout"`
}

type ServerConfig struct {
	Port         int    `mapstructure:"port"`
	Host         string `mapstructure:"host"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
	IdleTimeout  int    `mapstructure:"idle_timeout"`
}

type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type TelemetryConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

func NewDefaultConfig() *Config {
	return &Config{
		Version:     "1.0.0",
		Environment: "development",
		Chat: ChatConfig{
			Model:           "gpt-3.5-turbo",
			DefaultLocation: "Berlin",
			DefaultDate:     "today",
		},
		Providers: ProvidersConfig{
			MeteoblueBaseURL:      "https://my.meteoblue.com/packages/basic-1h",
			VisualCrossingBaseURL: "https://weather.visualcrossing.com/VisualCrossingWebServices/rest/services/timeline",
			OpenCageBaseURL:       "https://api.opencagedata.com/geocode/v1/json",
			Timeout:               10,
		},
		Server: ServerConfig{
			Port:         8080,
			Host:         "0.0.0.0",
			ReadTimeout:  30,
			WriteTimeout: 30,
			IdleTimeout:  60,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "",
		},
		Telemetry: TelemetryConfig{
			Enabled:  false,
			Endpoint: "tempo:4317",
		},
	}
}
