package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

func NewViper() *viper.Viper {
	config := viper.New()

	if os.Getenv("ENV") == "production" {
		config.SetConfigName("config.prod")
	} else {
		config.SetConfigName("config")
	}

	config.SetConfigType("yaml")
	config.AddConfigPath(".")

	// RECOGNIZER_OPENAI_API_KEY overrides recognizer.openai.api_key
	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	config.AutomaticEnv()

	setDefaults(config)

	if err := config.ReadInConfig(); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}

	return config
}

func setDefaults(config *viper.Viper) {
	config.SetDefault("app.name", "tulis-be")
	config.SetDefault("api.listen", ":8080")
	config.SetDefault("api.body_limit", 8*1024*1024)
	config.SetDefault("api.read_timeout", "30s")
	config.SetDefault("api.write_timeout", "60s")
	config.SetDefault("api.idle_timeout", "120s")
	config.SetDefault("log.level", "info")
	config.SetDefault("database.port", 5432)

	config.SetDefault("recognizer.timeout", "20s")
	config.SetDefault("recognizer.retry.max_attempts", 3)
	config.SetDefault("recognizer.retry.initial_wait", "500ms")
	config.SetDefault("recognizer.retry.max_wait", "5s")
	config.SetDefault("recognizer.retry.multiplier", 2.0)
	config.SetDefault("recognizer.order", []string{"openai", "gemini", "anthropic"})
	config.SetDefault("recognizer.openai.max_tokens", 300)
	config.SetDefault("recognizer.openai.temperature", 0.5)
	config.SetDefault("recognizer.gemini.max_tokens", 300)
	config.SetDefault("recognizer.gemini.temperature", 0.5)
	config.SetDefault("recognizer.anthropic.max_tokens", 300)
	config.SetDefault("recognizer.anthropic.temperature", 0.5)

	config.SetDefault("exercise.words.use_ai", false)
	config.SetDefault("exercise.words.ai_timeout", "10s")
	config.SetDefault("exercise.max_image_bytes", 5*1024*1024)

	config.SetDefault("leveling.window", 10)
	config.SetDefault("leveling.promote", 0.7)
	config.SetDefault("leveling.demote", 0.3)
}
