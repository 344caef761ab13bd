package config

import (
	"context"
	"fmt"

	"github.com/evandrarf/tulis-be/internal/pkg/recognizer"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// NewRecognizers builds the recognizer set from recognizer.*. A VLM without
// an api key is skipped; the OCR engine is skipped without an endpoint. The
// returned *recognizer.OpenAIRecognizer is nil when openai is not configured.
func NewRecognizers(ctx context.Context, config *viper.Viper, log *logrus.Logger) (*recognizer.Set, *recognizer.OpenAIRecognizer, error) {
	retry := recognizer.RetryConfig{
		MaxAttempts: config.GetInt("recognizer.retry.max_attempts"),
		InitialWait: config.GetDuration("recognizer.retry.initial_wait"),
		MaxWait:     config.GetDuration("recognizer.retry.max_wait"),
		Multiplier:  config.GetFloat64("recognizer.retry.multiplier"),
	}

	set := &recognizer.Set{
		Timeout: config.GetDuration("recognizer.timeout"),
		Log:     log,
	}
	var openai *recognizer.OpenAIRecognizer

	for _, name := range config.GetStringSlice("recognizer.order") {
		prefix := "recognizer." + name + "."
		if config.GetString(prefix+"api_key") == "" {
			log.WithField("recognizer", name).Warn("recognizer has no api key, skipping")
			continue
		}

		var r recognizer.Recognizer
		switch name {
		case "openai":
			o, err := recognizer.NewOpenAIRecognizer(recognizer.OpenAIConfig{
				APIKey:      config.GetString(prefix + "api_key"),
				BaseURL:     config.GetString(prefix + "base_url"),
				Model:       config.GetString(prefix + "model"),
				MaxTokens:   config.GetInt(prefix + "max_tokens"),
				Temperature: float32(config.GetFloat64(prefix + "temperature")),
			})
			if err != nil {
				return nil, nil, err
			}
			openai, r = o, o
		case "gemini":
			g, err := recognizer.NewGeminiRecognizer(ctx, recognizer.GeminiConfig{
				APIKey:      config.GetString(prefix + "api_key"),
				BaseURL:     config.GetString(prefix + "base_url"),
				Model:       config.GetString(prefix + "model"),
				MaxTokens:   config.GetInt(prefix + "max_tokens"),
				Temperature: float32(config.GetFloat64(prefix + "temperature")),
			})
			if err != nil {
				return nil, nil, err
			}
			r = g
		case "anthropic":
			a, err := recognizer.NewAnthropicRecognizer(recognizer.AnthropicConfig{
				APIKey:      config.GetString(prefix + "api_key"),
				BaseURL:     config.GetString(prefix + "base_url"),
				Model:       config.GetString(prefix + "model"),
				MaxTokens:   config.GetInt(prefix + "max_tokens"),
				Temperature: config.GetFloat64(prefix + "temperature"),
			})
			if err != nil {
				return nil, nil, err
			}
			r = a
		default:
			return nil, nil, fmt.Errorf("unknown recognizer %q in recognizer.order", name)
		}
		set.VLM = append(set.VLM, recognizer.WithRetry(r, retry))
	}

	if endpoint := config.GetString("recognizer.ocr.endpoint"); endpoint != "" {
		ocr, err := recognizer.NewOCRRecognizer(recognizer.OCRConfig{Endpoint: endpoint})
		if err != nil {
			return nil, nil, err
		}
		set.OCR = recognizer.WithRetry(ocr, retry)
	} else {
		log.Warn("recognizer.ocr.endpoint is empty, ocr disabled")
	}

	if len(set.VLM) == 0 && set.OCR == nil {
		return nil, nil, fmt.Errorf("no recognizer configured")
	}

	return set, openai, nil
}
