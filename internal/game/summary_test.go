package game_test

import (
	"testing"

	"fate-server/internal/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	t.Run("Финансовый мастер", func(t *testing.T) {
		state := game.NewFinancialState()
		state.Balance = 90000
		state.Savings = 20000
		state.RiskScore = 30
		state.Month = 13

		sum := game.Summarize(state)

		assert.Equal(t, game.TierFinancialMaster, sum.Tier)
		assert.Equal(t, game.LevelMaster, sum.Level)
		assert.Equal(t, int64(110000), sum.NetWorth)
		assert.True(t, sum.Completed)
		require.Len(t, sum.Tips, 1)
		assert.Equal(t, "WEALTH BUILDING", sum.Tips[0].Title)
	})

	t.Run("Высокий риск при малом капитале", func(t *testing.T) {
		state := game.NewFinancialState()
		state.Balance = 1000
		state.RiskScore = 85

		sum := game.Summarize(state)

		assert.Equal(t, game.TierHighRisk, sum.Tier)
		assert.Equal(t, game.LevelBeginner, sum.Level)
		require.Len(t, sum.Tips, 2)
		assert.Equal(t, "HIGH RISK BEHAVIOR", sum.Tips[0].Title)
		assert.Equal(t, "LOW SAVINGS", sum.Tips[1].Title)
	})

	t.Run("Не более трех советов", func(t *testing.T) {
		state := game.NewFinancialState()
		state.Balance = 60000
		state.RiskScore = 75
		risky := game.BuildInsight(game.Choice{ID: "a", RiskChange: 20}, nil)
		sound := game.BuildInsight(game.Choice{ID: "b", SavingsChange: 10}, nil)
		state.History = []game.HistoryEntry{
			{Type: game.HistoryNegative, LearningInsight: risky},
			{Type: game.HistoryNegative, LearningInsight: risky},
			{Type: game.HistoryPositive, LearningInsight: sound},
		}

		sum := game.Summarize(state)

		assert.Equal(t, game.TierWellBalanced, sum.Tier)
		assert.Equal(t, 2, sum.RiskyDecisions)
		assert.Equal(t, 1, sum.SoundDecisions)
		require.Len(t, sum.Tips, 3)
		assert.Equal(t, "DECISION PATTERN", sum.Tips[2].Title)
	})

	t.Run("Начальное состояние", func(t *testing.T) {
		sum := game.Summarize(game.NewFinancialState())

		assert.Equal(t, game.TierStruggling, sum.Tier)
		assert.False(t, sum.Completed)
	})
}

func TestComputeStats(t *testing.T) {
	state := game.NewFinancialState()
	state = game.Apply(state, game.SelectChoice{Choice: game.Choice{ID: "a", Label: "a", BalanceChange: 500}})
	state = game.Apply(state, game.AdvanceMonth{})
	state = game.Apply(state, game.SelectChoice{Choice: game.Choice{ID: "b", Label: "b", BalanceChange: -300, SavingsChange: 200}})
	state = game.Apply(state, game.AdvanceMonth{})

	st := game.ComputeStats(state)

	assert.Equal(t, 3, st.Month)
	assert.Equal(t, 2, st.ChoicesMade)
	assert.Equal(t, int64(500), st.TotalIncome)
	assert.Equal(t, int64(300), st.TotalExpenses)
	assert.Equal(t, int64(2600), st.Balance)
	assert.Equal(t, int64(200), st.Savings)
	assert.InDelta(t, 25.0, st.SavingsRate, 0.001)
	assert.InDelta(t, 250.0, st.AvgMonthlyIncome, 0.001)
	assert.InDelta(t, 150.0, st.AvgMonthlyExpense, 0.001)
}

func TestLevelFor(t *testing.T) {
	state := game.NewFinancialState()
	state.Balance = 30000
	assert.Equal(t, game.LevelIntermediate, game.LevelFor(state))

	state.Balance = 120000
	state.RiskScore = 60
	assert.Equal(t, game.LevelExpert, game.LevelFor(state))
}
