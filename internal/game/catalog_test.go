package game_test

import (
	"os"
	"path/filepath"
	"testing"

	"fate-server/internal/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeChoices(prefix string) []game.Choice {
	return []game.Choice{
		{ID: prefix + "1", Label: "one"},
		{ID: prefix + "2", Label: "two"},
		{ID: prefix + "3", Label: "three"},
	}
}

func TestDefaultCatalog(t *testing.T) {
	cat, err := game.DefaultCatalog()
	require.NoError(t, err)

	scenarios := cat.Scenarios()
	require.Equal(t, 8, cat.Len())
	assert.Equal(t, "scenario_1", scenarios[0].ID)
	assert.Equal(t, int64(500), scenarios[0].Choices[0].BalanceChange)
	assert.Equal(t, int64(-200), scenarios[0].Choices[0].SavingsChange)
	assert.Equal(t, 15, scenarios[0].Choices[0].RiskChange)

	// Legacy-сценарии несут дельты стресса.
	rent := scenarios[3]
	assert.Equal(t, "rent_increase", rent.ID)
	assert.Equal(t, 20, rent.Choices[0].StressChange)

	// Варианты без собственного исхода получают общий: -1000 к балансу, +5 к риску.
	generic := map[string]bool{"skip": true, "downgrade": true, "pay_full": true, "emi": true,
		"borrow": true, "accept_offer": true, "negotiate": true, "decline": true}
	seen := 0
	for _, sc := range scenarios[3:] {
		for _, ch := range sc.Choices {
			if !generic[ch.ID] {
				continue
			}
			seen++
			assert.Equal(t, int64(-1000), ch.BalanceChange, ch.ID)
			assert.Equal(t, 5, ch.RiskChange, ch.ID)
		}
	}
	assert.Equal(t, len(generic), seen)
}

func TestNewCatalogValidation(t *testing.T) {
	t.Run("Пустой каталог", func(t *testing.T) {
		_, err := game.NewCatalog(nil)
		assert.ErrorIs(t, err, game.ErrEmptyCatalog)
	})

	t.Run("Слишком мало вариантов", func(t *testing.T) {
		_, err := game.NewCatalog([]game.Scenario{{Situation: "s", Choices: threeChoices("a")[:2]}})
		assert.Error(t, err)
	})

	t.Run("Повторяющиеся id", func(t *testing.T) {
		choices := threeChoices("a")
		choices[2].ID = choices[0].ID
		_, err := game.NewCatalog([]game.Scenario{{Situation: "s", Choices: choices}})
		assert.ErrorContains(t, err, "duplicate choice id")
	})

	t.Run("Пустая ситуация", func(t *testing.T) {
		_, err := game.NewCatalog([]game.Scenario{{Choices: threeChoices("a")}})
		assert.Error(t, err)
	})
}

func TestLoadCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := `scenarios:
  - id: only
    situation: Paycheck arrived
    choices:
      - {id: spend, label: Spend, balanceChange: -300}
      - {id: save, label: Save, savingsChange: 300}
      - {id: invest, label: Invest, balanceChange: 100, riskChange: 10}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	cat, err := game.LoadCatalogFile(path)
	require.NoError(t, err)
	require.Equal(t, 1, cat.Len())
	sc := cat.Scenarios()[0]
	assert.Equal(t, int64(0), sc.Choices[0].SavingsChange)
	assert.Equal(t, 0, sc.Choices[1].RiskChange)

	_, err = game.LoadCatalog([]byte("scenarios: []"))
	assert.ErrorIs(t, err, game.ErrEmptyCatalog)
}

func TestSelectScenario(t *testing.T) {
	cat, err := game.NewCatalog([]game.Scenario{
		{ID: "s1", Situation: "one", Choices: threeChoices("a")},
		{ID: "s2", Situation: "two", Choices: threeChoices("b")},
		{ID: "s3", Situation: "three", Choices: threeChoices("c")},
	})
	require.NoError(t, err)

	t.Run("Периодичность", func(t *testing.T) {
		for month := 1; month <= 12; month++ {
			assert.Equal(t, game.SelectScenario(month, cat), game.SelectScenario(month+cat.Len(), cat))
		}
		assert.Equal(t, "s1", game.SelectScenario(1, cat).ID)
		assert.Equal(t, "s3", game.SelectScenario(3, cat).ID)
		assert.Equal(t, "s1", game.SelectScenario(4, cat).ID)
	})

	t.Run("Месяц меньше единицы", func(t *testing.T) {
		assert.Equal(t, "s1", game.SelectScenario(0, cat).ID)
		assert.Equal(t, "s1", game.SelectScenario(-7, cat).ID)
	})

	t.Run("Возвращается копия", func(t *testing.T) {
		sc := game.SelectScenario(1, cat)
		sc.Choices[0].Label = "mutated"

		assert.Equal(t, "one", game.SelectScenario(1, cat).Choices[0].Label)
	})
}
