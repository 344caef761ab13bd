package recognizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultOpenAIBaseURL = "https://models.github.ai/inference"
	defaultOpenAIModel   = "openai/gpt-4.1-mini"
)

// OpenAIConfig configures an OpenAI-compatible chat completions endpoint
// (GitHub models, Groq, OpenAI itself).
type OpenAIConfig struct {
	Name        string
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float32
}

// OpenAIRecognizer sends the image as an image_url part of a chat message.
type OpenAIRecognizer struct {
	name        string
	model       string
	maxTokens   int
	temperature float32
	client      *openai.Client
}

func NewOpenAIRecognizer(cfg OpenAIConfig) (*OpenAIRecognizer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultOpenAIBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultOpenAIModel
	}
	if cfg.Name == "" {
		cfg.Name = "openai"
	}

	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = cfg.BaseURL

	return &OpenAIRecognizer{
		name:        cfg.Name,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		client:      openai.NewClientWithConfig(config),
	}, nil
}

func (r *OpenAIRecognizer) Name() string { return r.name }

// Transcribe returns the raw answer text; it carries no confidences.
func (r *OpenAIRecognizer) Transcribe(ctx context.Context, img Image, instruction string) (Transcription, error) {
	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: instruction},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    img.DataURL(),
							Detail: openai.ImageURLDetailAuto,
						},
					},
				},
			},
		},
		Temperature: r.temperature,
		TopP:        1.0,
		MaxTokens:   r.maxTokens,
	})
	if err != nil {
		return Transcription{}, r.mapError(err)
	}

	if len(resp.Choices) == 0 {
		return Transcription{}, permanent(r.name, fmt.Errorf("no choices in response"))
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return Transcription{}, permanent(r.name, fmt.Errorf("empty response"))
	}

	return Transcription{Source: r.name, Text: text}, nil
}

// Complete runs a text-only prompt. Used to pick exercise words.
func (r *OpenAIRecognizer) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.9,
		MaxTokens:   16,
	})
	if err != nil {
		return "", r.mapError(err)
	}
	if len(resp.Choices) == 0 {
		return "", permanent(r.name, fmt.Errorf("no choices in response"))
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (r *OpenAIRecognizer) mapError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return permanent(r.name, err)
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return statusError(r.name, apiErr.HTTPStatusCode, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return statusError(r.name, reqErr.HTTPStatusCode, err)
	}
	return transient(r.name, err)
}
