package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Addr string `mapstructure:"addr"`
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`

	Model struct {
		Path           string `mapstructure:"path"`
		VectorizerPath string `mapstructure:"vectorizer_path"`
		// Bucket names the GCS bucket artifacts are fetched from when they
		// are absent locally; empty disables remote fetching.
		Bucket string `mapstructure:"bucket"`
	} `mapstructure:"model"`

	Suggestion struct {
		Provider       string `mapstructure:"provider"` // "gemini", "openai" or "none"
		Model          string `mapstructure:"model"`
		GeminiApiKey   string `mapstructure:"gemini_api_key"`
		OpenaiApiKey   string `mapstructure:"openai_api_key"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds"`
		MaxAttempts    int    `mapstructure:"max_attempts"`
	} `mapstructure:"suggestion"`
}

// LoadConfig reads config.yaml from the current directory plus environment
// variables. Everything is read once at startup; there is no hot reload.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	// Bind the conventional env var names without requiring a prefix.
	viper.BindEnv("suggestion.gemini_api_key", "GEMINI_API_KEY")
	viper.BindEnv("suggestion.openai_api_key", "OPENAI_API_KEY")
	viper.BindEnv("model.bucket", "MODEL_BUCKET")

	viper.SetDefault("server.addr", "0.0.0.0")
	viper.SetDefault("server.port", "8000")
	viper.SetDefault("model.path", "model.gob")
	viper.SetDefault("model.vectorizer_path", "vectorizer.gob")
	viper.SetDefault("suggestion.provider", "gemini")
	viper.SetDefault("suggestion.timeout_seconds", 10)
	viper.SetDefault("suggestion.max_attempts", 3)

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine, defaults and env vars cover it.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	return &config, nil
}
