package provider

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"fate-server/internal/game"

	"go.uber.org/zap"
)

// Source - откуда взят сценарий.
type Source string

const (
	SourceCatalog   Source = "catalog"
	SourceGenerated Source = "generated"
	SourceFallback  Source = "fallback"
)

const DefaultTimeout = 15 * time.Second

// ErrGenerationFailed - ошибка бэкенда генерации. Наружу из провайдера не выходит.
var ErrGenerationFailed = errors.New("scenario generation failed")

// Generator - один запрос к LLM: системный промпт + пользовательский контекст -> сырой текст.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// BackendFactory создает Generator под конкретный API ключ.
// Ключ может отличаться от сессии к сессии, поэтому клиент создается на вызов.
type BackendFactory func(apiKey string) (Generator, error)

// ScenarioProvider получает сценарий от внешнего генератора или из
// встроенного запасного списка. Generate никогда не возвращает ошибку.
type ScenarioProvider struct {
	factory BackendFactory
	backend string
	timeout time.Duration
	logger  *zap.Logger

	mu  sync.Mutex
	rnd *rand.Rand
}

// Option настраивает ScenarioProvider.
type Option func(*ScenarioProvider)

// WithRand задает источник случайности для выбора запасного сценария.
func WithRand(r *rand.Rand) Option {
	return func(p *ScenarioProvider) { p.rnd = r }
}

// NewScenarioProvider создает провайдер. factory может быть nil: тогда
// всегда используется запасной список.
func NewScenarioProvider(factory BackendFactory, backend string, timeout time.Duration, logger *zap.Logger, opts ...Option) *ScenarioProvider {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	p := &ScenarioProvider{
		factory: factory,
		backend: backend,
		timeout: timeout,
		logger:  logger.Named("ScenarioProvider"),
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type generationResult struct {
	text string
	err  error
}

// Generate возвращает сценарий для текущего состояния. Без ключа сразу
// отдается запасной сценарий. С ключом делается ровно одна попытка,
// ограниченная таймаутом; любая ошибка, невалидный ответ или таймаут
// тоже приводят к запасному сценарию.
func (p *ScenarioProvider) Generate(ctx context.Context, state game.FinancialState, apiKey string) (game.Scenario, Source) {
	log := p.logger.With(zap.Int("month", state.Month), zap.String("backend", p.backend))

	if apiKey == "" || p.factory == nil {
		log.Debug("No API key configured, using fallback scenario")
		providerRequestsTotal.WithLabelValues(p.backend, outcomeNoKey).Inc()
		return p.fallback(), SourceFallback
	}

	gen, err := p.factory(apiKey)
	if err != nil {
		log.Warn("Failed to create generator, using fallback scenario", zap.Error(err))
		providerRequestsTotal.WithLabelValues(p.backend, outcomeBackendError).Inc()
		return p.fallback(), SourceFallback
	}

	genCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	// Буфер на один элемент: если мы ушли по таймауту, горутина не зависнет на отправке.
	resultCh := make(chan generationResult, 1)
	start := time.Now()
	go func() {
		text, genErr := gen.Generate(genCtx, SystemPrompt, BuildUserPrompt(state))
		resultCh <- generationResult{text: text, err: genErr}
	}()

	var res generationResult
	select {
	case res = <-resultCh:
	case <-genCtx.Done():
		providerRequestDuration.WithLabelValues(p.backend).Observe(time.Since(start).Seconds())
		log.Warn("Scenario generation timed out, using fallback scenario", zap.Duration("timeout", p.timeout))
		providerRequestsTotal.WithLabelValues(p.backend, outcomeTimeout).Inc()
		return p.fallback(), SourceFallback
	}
	providerRequestDuration.WithLabelValues(p.backend).Observe(time.Since(start).Seconds())

	if res.err != nil {
		log.Warn("Scenario generation failed, using fallback scenario", zap.Error(res.err))
		providerRequestsTotal.WithLabelValues(p.backend, outcomeBackendError).Inc()
		return p.fallback(), SourceFallback
	}

	raw, err := ExtractJSON(res.text)
	if err != nil {
		log.Warn("Generated response is not JSON, using fallback scenario", zap.Error(err), zap.Int("responseLength", len(res.text)))
		providerRequestsTotal.WithLabelValues(p.backend, outcomeParseError).Inc()
		return p.fallback(), SourceFallback
	}

	switch v := Validate(raw).(type) {
	case Valid:
		log.Info("Generated scenario accepted", zap.Int("choices", len(v.Scenario.Choices)))
		providerRequestsTotal.WithLabelValues(p.backend, outcomeSuccess).Inc()
		return v.Scenario, SourceGenerated
	case Invalid:
		log.Warn("Generated scenario rejected, using fallback scenario", zap.String("reason", v.Reason))
		providerRequestsTotal.WithLabelValues(p.backend, outcomeInvalid).Inc()
	}
	return p.fallback(), SourceFallback
}

func (p *ScenarioProvider) fallback() game.Scenario {
	p.mu.Lock()
	idx := p.rnd.Intn(len(fallbackScenarios))
	p.mu.Unlock()
	return fallbackScenarios[idx].Clone()
}
