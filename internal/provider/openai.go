package provider

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pkoukk/tiktoken-go"
	openaigo "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const defaultTokenEncoding = "cl100k_base"

type openAIGenerator struct {
	client *openaigo.Client
	model  string
	logger *zap.Logger
}

func newOpenAIGenerator(apiKey string, cfg BackendConfig, logger *zap.Logger) *openAIGenerator {
	clientCfg := openaigo.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	return &openAIGenerator{
		client: openaigo.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: logger.Named("OpenAIGenerator"),
	}
}

func (g *openAIGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if tokens, ok := estimateTokens(g.model, systemPrompt+userPrompt); ok {
		providerPromptTokens.WithLabelValues(BackendOpenAI, g.model).Observe(float64(tokens))
	}

	resp, err := g.client.CreateChatCompletion(ctx, openaigo.ChatCompletionRequest{
		Model: g.model,
		Messages: []openaigo.ChatCompletionMessage{
			{Role: openaigo.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openaigo.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: generationTemperature,
		MaxTokens:   generationMaxTokens,
		ResponseFormat: &openaigo.ChatCompletionResponseFormat{
			Type: openaigo.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: empty response", ErrGenerationFailed)
	}

	g.logger.Debug("OpenAI response received",
		zap.String("model", g.model),
		zap.Int("promptTokens", resp.Usage.PromptTokens),
		zap.Int("completionTokens", resp.Usage.CompletionTokens),
	)
	return resp.Choices[0].Message.Content, nil
}

// estimateTokens оценивает размер промпта. Неизвестные модели считаются
// по cl100k_base; если кодировку получить не удалось, метрика пропускается.
func estimateTokens(model, text string) (int, bool) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding(defaultTokenEncoding)
		if err != nil {
			return 0, false
		}
	}
	return len(enc.Encode(text, nil, nil)), true
}
