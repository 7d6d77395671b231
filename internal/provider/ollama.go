package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
	"go.uber.org/zap"
)

type ollamaGenerator struct {
	client *api.Client
	model  string
	logger *zap.Logger
}

func newOllamaGenerator(cfg BackendConfig, logger *zap.Logger) (*ollamaGenerator, error) {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/v1")
	baseURL = strings.TrimSuffix(baseURL, "/")

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse Ollama base URL %q: %w", baseURL, err)
	}

	return &ollamaGenerator{
		client: api.NewClient(parsedURL, &http.Client{Timeout: cfg.Timeout}),
		model:  cfg.Model,
		logger: logger.Named("OllamaGenerator"),
	}, nil
}

func (g *ollamaGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	stream := false
	req := &api.ChatRequest{
		Model: g.model,
		Messages: []api.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Stream: &stream,
		Options: map[string]interface{}{
			"temperature": generationTemperature,
			"num_predict": generationMaxTokens,
		},
	}

	var resp api.ChatResponse
	err := g.client.Chat(ctx, req, func(r api.ChatResponse) error {
		resp = r
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if resp.Message.Content == "" {
		return "", fmt.Errorf("%w: empty response", ErrGenerationFailed)
	}

	if resp.PromptEvalCount > 0 {
		providerPromptTokens.WithLabelValues(BackendOllama, g.model).Observe(float64(resp.PromptEvalCount))
	}
	g.logger.Debug("Ollama response received",
		zap.String("model", g.model),
		zap.Int("promptTokens", resp.PromptEvalCount),
		zap.Int("completionTokens", resp.EvalCount),
	)
	return resp.Message.Content, nil
}
