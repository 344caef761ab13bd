package recognizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultAnthropicModel = "claude-haiku-4-5-20251001"

// AnthropicConfig configures the Anthropic adapter.
type AnthropicConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	BaseURL     string
}

// AnthropicRecognizer sends the image as a base64 image block.
type AnthropicRecognizer struct {
	client      *anthropic.Client
	model       string
	maxTokens   int
	temperature float64
}

func NewAnthropicRecognizer(cfg AnthropicConfig) (*AnthropicRecognizer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic api key is required")
	}
	if cfg.Model == "" {
		cfg.Model = defaultAnthropicModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		// Retries are handled by WithRetry.
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	client := anthropic.NewClient(opts...)
	return &AnthropicRecognizer{
		client:      &client,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}, nil
}

func (r *AnthropicRecognizer) Name() string { return "anthropic" }

func (r *AnthropicRecognizer) Transcribe(ctx context.Context, img Image, instruction string) (Transcription, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(r.model),
		MaxTokens: int64(r.maxTokens),
		Messages: []anthropic.MessageParam{
			{
				Role: anthropic.MessageParamRoleUser,
				Content: []anthropic.ContentBlockParamUnion{
					anthropic.NewImageBlockBase64(img.MIMEType, img.Base64()),
					anthropic.NewTextBlock(instruction),
				},
			},
		},
	}
	if r.temperature > 0 {
		params.Temperature = anthropic.Float(r.temperature)
	}

	msg, err := r.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return Transcription{}, statusError(r.Name(), apiErr.StatusCode, err)
		}
		return Transcription{}, transient(r.Name(), err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return Transcription{}, permanent(r.Name(), fmt.Errorf("no text content in response"))
	}

	return Transcription{Source: r.Name(), Text: text}, nil
}
