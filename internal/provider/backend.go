package provider

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	BackendOpenAI = "openai"
	BackendOllama = "ollama"
	BackendGemini = "gemini"
)

const (
	generationTemperature = 0.8
	generationMaxTokens   = 500
)

// BackendConfig - параметры подключения к LLM.
type BackendConfig struct {
	Backend string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// NewBackendFactory выбирает реализацию Generator по имени бэкенда.
func NewBackendFactory(cfg BackendConfig, logger *zap.Logger) (BackendFactory, error) {
	switch strings.ToLower(cfg.Backend) {
	case BackendOpenAI:
		logger.Info("Using OpenAI-compatible scenario backend", zap.String("model", cfg.Model), zap.String("baseURL", cfg.BaseURL))
		return func(apiKey string) (Generator, error) {
			return newOpenAIGenerator(apiKey, cfg, logger), nil
		}, nil
	case BackendOllama:
		logger.Info("Using Ollama scenario backend", zap.String("model", cfg.Model), zap.String("baseURL", cfg.BaseURL))
		return func(_ string) (Generator, error) {
			return newOllamaGenerator(cfg, logger)
		}, nil
	case BackendGemini:
		logger.Info("Using Gemini scenario backend", zap.String("model", cfg.Model))
		return func(apiKey string) (Generator, error) {
			return newGeminiGenerator(apiKey, cfg, logger), nil
		}, nil
	default:
		return nil, fmt.Errorf("unknown AI backend %q", cfg.Backend)
	}
}
