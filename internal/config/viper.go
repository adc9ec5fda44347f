package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load(configPath string) (*Config, error) {
	// Keys are commonly kept in a .env file next to the binary. Missing file is fine.
	_ = godotenv.Load()

	cfg := NewDefaultConfig()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("WEATHERCHAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	SetDefaultsFromStructRecursive(reflect.ValueOf(cfg), "", v)

	// The credential keys also answer to their conventional unprefixed names.
	_ = v.BindEnv("credentials.openai_api_key", "WEATHERCHAT_CREDENTIALS_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("credentials.meteoblue_api_key", "WEATHERCHAT_CREDENTIALS_METEOBLUE_API_KEY", "METEOBLUE_API_KEY")
	_ = v.BindEnv("credentials.opencage_api_key", "WEATHERCHAT_CREDENTIALS_OPENCAGE_API_KEY", "OPENCAGE_API_KEY")
	_ = v.BindEnv("credentials.visualcrossing_api_key", "WEATHERCHAT_CREDENTIALS_VISUALCROSSING_API_KEY", "VISUALCROSSING_API_KEY")

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return cfg, nil
}

func SetDefaultsFromStructRecursive(v reflect.Value, prefix string, viper *viper.Viper) {
	// Handle pointer to struct
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		// Skip unexported fields
		if !fieldValue.CanInterface() {
			continue
		}

		key := field.Tag.Get("mapstructure")
		if key == "" {
			key = strings.ToLower(field.Name)
		}

		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if fieldValue.Kind() == reflect.Struct {
			SetDefaultsFromStructRecursive(fieldValue, fullKey, viper)
		} else {
			viper.SetDefault(fullKey, fieldValue.Interface())
		}
	}
}
