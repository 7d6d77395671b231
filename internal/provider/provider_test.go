package provider_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"fate-server/internal/game"
	"fate-server/internal/provider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGenerator struct {
	text  string
	err   error
	delay time.Duration
	calls int
	user  string
}

func (f *fakeGenerator) Generate(ctx context.Context, _ string, userPrompt string) (string, error) {
	f.calls++
	f.user = userPrompt
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.text, f.err
}

func factoryFor(gen provider.Generator) provider.BackendFactory {
	return func(string) (provider.Generator, error) { return gen, nil }
}

func isFallback(sc game.Scenario) bool {
	for _, fb := range provider.FallbackScenarios() {
		if fb.ID == sc.ID && fb.Situation == sc.Situation {
			return true
		}
	}
	return false
}

const validResponse = `{"situation":"Canteen or cook?","choices":[
 {"id":"c1","label":"Canteen","balanceChange":-300,"riskChange":0},
 {"id":"c2","label":"Cook","balanceChange":-150,"riskChange":-5},
 {"id":"c3","label":"Order in","balanceChange":-600,"riskChange":5}]}`

func TestScenarioProviderGenerate(t *testing.T) {
	ctx := context.Background()
	state := game.NewFinancialState()

	t.Run("Без ключа - запасной сценарий", func(t *testing.T) {
		gen := &fakeGenerator{text: validResponse}
		p := provider.NewScenarioProvider(factoryFor(gen), "fake", time.Second, zap.NewNop())

		sc, source := p.Generate(ctx, state, "")

		assert.Equal(t, provider.SourceFallback, source)
		assert.True(t, isFallback(sc))
		assert.Len(t, sc.Choices, 3)
		assert.Zero(t, gen.calls)
	})

	t.Run("Валидный ответ принимается", func(t *testing.T) {
		gen := &fakeGenerator{text: "Here you go:\n```json\n" + validResponse + "\n```"}
		p := provider.NewScenarioProvider(factoryFor(gen), "fake", time.Second, zap.NewNop())

		sc, source := p.Generate(ctx, state, "key")

		require.Equal(t, provider.SourceGenerated, source)
		assert.Equal(t, "Canteen or cook?", sc.Situation)
		assert.Equal(t, int64(-150), sc.Choices[1].BalanceChange)
		assert.Equal(t, 1, gen.calls)
		assert.Contains(t, gen.user, "Month: 1")
		assert.Contains(t, gen.user, "Balance: ₹2400")
	})

	t.Run("Ошибка генератора - запасной сценарий без повторов", func(t *testing.T) {
		gen := &fakeGenerator{err: errors.New("boom")}
		p := provider.NewScenarioProvider(factoryFor(gen), "fake", time.Second, zap.NewNop())

		sc, source := p.Generate(ctx, state, "key")

		assert.Equal(t, provider.SourceFallback, source)
		assert.True(t, isFallback(sc))
		assert.Equal(t, 1, gen.calls)
	})

	t.Run("Невалидный ответ - запасной сценарий", func(t *testing.T) {
		gen := &fakeGenerator{text: `{"situation":"x","choices":[]}`}
		p := provider.NewScenarioProvider(factoryFor(gen), "fake", time.Second, zap.NewNop())

		_, source := p.Generate(ctx, state, "key")

		assert.Equal(t, provider.SourceFallback, source)
	})

	t.Run("Не JSON - запасной сценарий", func(t *testing.T) {
		gen := &fakeGenerator{text: "I cannot help with that."}
		p := provider.NewScenarioProvider(factoryFor(gen), "fake", time.Second, zap.NewNop())

		_, source := p.Generate(ctx, state, "key")

		assert.Equal(t, provider.SourceFallback, source)
	})

	t.Run("Таймаут - запасной сценарий", func(t *testing.T) {
		gen := &fakeGenerator{text: validResponse, delay: time.Second}
		p := provider.NewScenarioProvider(factoryFor(gen), "fake", 20*time.Millisecond, zap.NewNop())

		start := time.Now()
		_, source := p.Generate(ctx, state, "key")

		assert.Equal(t, provider.SourceFallback, source)
		assert.Less(t, time.Since(start), 500*time.Millisecond)
	})

	t.Run("Ошибка фабрики - запасной сценарий", func(t *testing.T) {
		factory := func(string) (provider.Generator, error) { return nil, errors.New("bad config") }
		p := provider.NewScenarioProvider(factory, "fake", time.Second, zap.NewNop())

		_, source := p.Generate(ctx, state, "key")

		assert.Equal(t, provider.SourceFallback, source)
	})

	t.Run("Выбор запасного сценария детерминирован при заданном seed", func(t *testing.T) {
		p1 := provider.NewScenarioProvider(nil, "none", time.Second, zap.NewNop(), provider.WithRand(rand.New(rand.NewSource(42))))
		p2 := provider.NewScenarioProvider(nil, "none", time.Second, zap.NewNop(), provider.WithRand(rand.New(rand.NewSource(42))))

		for i := 0; i < 5; i++ {
			a, _ := p1.Generate(ctx, state, "key")
			b, _ := p2.Generate(ctx, state, "key")
			assert.Equal(t, a, b)
		}
	})
}

func TestNewBackendFactory(t *testing.T) {
	for _, backend := range []string{provider.BackendOpenAI, provider.BackendOllama, provider.BackendGemini} {
		factory, err := provider.NewBackendFactory(provider.BackendConfig{
			Backend: backend,
			Model:   "test-model",
			BaseURL: "http://localhost:11434",
			Timeout: time.Second,
		}, zap.NewNop())
		require.NoError(t, err, backend)
		gen, err := factory("key")
		require.NoError(t, err, backend)
		assert.NotNil(t, gen, backend)
	}

	_, err := provider.NewBackendFactory(provider.BackendConfig{Backend: "carrier-pigeon"}, zap.NewNop())
	assert.Error(t, err)
}
