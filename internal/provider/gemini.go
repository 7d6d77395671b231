package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

type geminiGenerator struct {
	apiKey string
	model  string
	logger *zap.Logger
}

func newGeminiGenerator(apiKey string, cfg BackendConfig, logger *zap.Logger) *geminiGenerator {
	return &geminiGenerator{
		apiKey: apiKey,
		model:  cfg.Model,
		logger: logger.Named("GeminiGenerator"),
	}
}

func (g *geminiGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return "", fmt.Errorf("%w: create client: %v", ErrGenerationFailed, err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.model)
	model.SetTemperature(generationTemperature)
	model.SetMaxOutputTokens(generationMaxTokens)
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}

	resp, err := model.GenerateContent(ctx, genai.Text(userPrompt))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	text := responseText(resp)
	if text == "" {
		return "", fmt.Errorf("%w: empty response", ErrGenerationFailed)
	}
	if resp.UsageMetadata != nil {
		providerPromptTokens.WithLabelValues(BackendGemini, g.model).Observe(float64(resp.UsageMetadata.PromptTokenCount))
	}
	g.logger.Debug("Gemini response received", zap.String("model", g.model), zap.Int("responseLength", len(text)))
	return text, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				sb.WriteString(string(txt))
			}
		}
	}
	return sb.String()
}
