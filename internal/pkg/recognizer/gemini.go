package recognizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiConfig configures the Gemini adapter.
type GeminiConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
	// BaseURL overrides the API endpoint, e.g. a proxy.
	BaseURL string
}

// GeminiRecognizer sends the image inline next to the instruction.
type GeminiRecognizer struct {
	client      *genai.Client
	model       string
	maxTokens   int
	temperature float32
}

func NewGeminiRecognizer(ctx context.Context, cfg GeminiConfig) (*GeminiRecognizer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if cfg.Model == "" {
		cfg.Model = defaultGeminiModel
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiRecognizer{
		client:      client,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}, nil
}

func (r *GeminiRecognizer) Name() string { return "gemini" }

func (r *GeminiRecognizer) Transcribe(ctx context.Context, img Image, instruction string) (Transcription, error) {
	temp := r.temperature
	config := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: int32(r.maxTokens),
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: instruction},
				{InlineData: &genai.Blob{Data: img.Data, MIMEType: img.MIMEType}},
			},
		},
	}

	result, err := r.client.Models.GenerateContent(ctx, r.model, contents, config)
	if err != nil {
		var apiErr *genai.APIError
		if errors.As(err, &apiErr) {
			return Transcription{}, statusError(r.Name(), apiErr.Code, err)
		}
		return Transcription{}, transient(r.Name(), err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return Transcription{}, permanent(r.Name(), fmt.Errorf("empty response"))
	}

	return Transcription{Source: r.Name(), Text: text}, nil
}
