package game

import (
	"fmt"
	"strings"
)

// InvalidChoiceNarrative - текст sentinel-резолюции для неизвестного id.
const InvalidChoiceNarrative = "Invalid choice"

// InsightCategory - класс эвристической оценки решения.
type InsightCategory string

const (
	InsightHighRisk       InsightCategory = "high_risk"
	InsightOverspend      InsightCategory = "overspend"
	InsightConservative   InsightCategory = "conservative"
	InsightSavingsBuilder InsightCategory = "savings_builder"
	InsightGeneric        InsightCategory = "generic"
)

const (
	highRiskThreshold      = 15
	largeSpendThreshold    = int64(10000)
	conservativeRiskCutoff = -5
)

// AlternativeSuggestion - вариант того же сценария, который был бы лучше.
// BenefitDelta - численная выгода (очки риска или сумма сбережений).
type AlternativeSuggestion struct {
	ChoiceID     string `json:"choiceId"`
	Label        string `json:"label"`
	Benefit      string `json:"benefit"`
	BenefitDelta int64  `json:"benefitDelta"`
}

// LearningInsight - разбор решения для игрока.
type LearningInsight struct {
	Category              InsightCategory        `json:"category"`
	Outcome               string                 `json:"outcome"`
	WhatWentWrong         *string                `json:"whatWentWrong"`
	Improvement           *string                `json:"improvement"`
	FinancialTip          string                 `json:"financialTip"`
	AlternativeSuggestion *AlternativeSuggestion `json:"alternativeSuggestion"`
}

// Resolution - результат выбора. Valid=false означает sentinel для
// неизвестного варианта: UpdatedState совпадает с входным состоянием.
type Resolution struct {
	Valid        bool             `json:"valid"`
	ChoiceID     string           `json:"choiceId"`
	Choice       Choice           `json:"choice"`
	UpdatedState FinancialState   `json:"updatedState"`
	Narrative    string           `json:"narrative"`
	Reflection   string           `json:"reflection"`
	Insight      *LearningInsight `json:"learningInsight"`
}

// Resolve вычисляет исход выбора choiceID в сценарии sc для состояния state.
// Никогда не возвращает ошибку: неизвестный id дает sentinel-резолюцию.
func Resolve(choiceID string, sc Scenario, state FinancialState) Resolution {
	choice, ok := sc.FindChoice(choiceID)
	if !ok {
		return Resolution{
			Valid:        false,
			ChoiceID:     choiceID,
			UpdatedState: state.Clone(),
			Narrative:    InvalidChoiceNarrative,
			Reflection:   InvalidChoiceNarrative,
		}
	}

	return Resolution{
		Valid:        true,
		ChoiceID:     choice.ID,
		Choice:       choice,
		UpdatedState: Transition(state, choice),
		Narrative:    "You chose: " + choice.Label,
		Reflection:   Reflect(choice),
		Insight:      BuildInsight(choice, sc.Choices),
	}
}

type reflectionRule struct {
	match func(b int64, r int, s int64) bool
	text  string
}

// Порядок правил важен: срабатывает первое подходящее.
var reflectionRules = []reflectionRule{
	{func(b int64, r int, _ int64) bool { return b > 0 && r < 0 }, "Smart move! You gained money while reducing risk."},
	{func(b int64, r int, _ int64) bool { return b < 0 && r < 0 }, "Sometimes spending wisely reduces future risk."},
	{func(b int64, r int, _ int64) bool { return b > 0 && r > 0 }, "High reward often comes with higher risk."},
	{func(b int64, r int, _ int64) bool { return b < 0 && r > 0 }, "This choice cost you and increased your exposure."},
	{func(_ int64, _ int, s int64) bool { return s > 0 }, "Building savings is always a wise choice."},
	{func(_ int64, _ int, s int64) bool { return s < 0 }, "Dipping into savings should be a last resort."},
}

const genericReflection = "Every choice shapes your financial future."

// Reflect выбирает короткую фразу-рефлексию по знакам дельт.
func Reflect(c Choice) string {
	for _, rule := range reflectionRules {
		if rule.match(c.BalanceChange, c.RiskChange, c.SavingsChange) {
			return rule.text
		}
	}
	return genericReflection
}

// BuildInsight классифицирует выбор и, если возможно, подсказывает
// лучшую альтернативу из того же набора вариантов.
func BuildInsight(selected Choice, all []Choice) *LearningInsight {
	b, r, s := selected.BalanceChange, selected.RiskChange, selected.SavingsChange
	insight := &LearningInsight{Outcome: describeOutcome(selected)}

	switch {
	case r >= highRiskThreshold:
		insight.Category = InsightHighRisk
		insight.WhatWentWrong = strPtr(fmt.Sprintf("This choice increased your risk by %d points. High risk exposure means unexpected events could hurt you more.", r))
		insight.Improvement = strPtr("Consider choices that balance potential gains with risk reduction. Financial security comes from measured decisions.")
		insight.FinancialTip = "💡 Rule of Thumb: Avoid choices that increase risk above 50 points unless the reward is exceptional."
		if alt, ok := findAlternative(selected, all, func(c Choice) bool {
			return c.RiskChange < r && c.BalanceChange > b
		}); ok {
			delta := absInt(r - alt.RiskChange)
			insight.AlternativeSuggestion = &AlternativeSuggestion{
				ChoiceID:     alt.ID,
				Label:        alt.Label,
				Benefit:      fmt.Sprintf("Would have kept risk %d points lower", delta),
				BenefitDelta: int64(delta),
			}
		}

	case (absInt64(b) >= largeSpendThreshold || absInt64(s) >= largeSpendThreshold) && s <= 0:
		insight.Category = InsightOverspend
		totalSpent := absInt64(b) + absInt64(s)
		insight.WhatWentWrong = strPtr(fmt.Sprintf("You spent %s from your funds. Large expenses without savings backup can be dangerous.", formatMoney(totalSpent)))
		insight.Improvement = strPtr("Try to maintain at least 3 months of expenses in savings before making large purchases.")
		insight.FinancialTip = "💡 Emergency Fund Rule: Always keep enough savings to cover unexpected expenses."
		if alt, ok := findAlternative(selected, all, func(c Choice) bool {
			return c.SavingsChange > s
		}); ok {
			delta := absInt64(s - alt.SavingsChange)
			insight.AlternativeSuggestion = &AlternativeSuggestion{
				ChoiceID:     alt.ID,
				Label:        alt.Label,
				Benefit:      fmt.Sprintf("Would have preserved %s more", formatMoney(delta)),
				BenefitDelta: delta,
			}
		}

	case r <= conservativeRiskCutoff && b >= 0:
		insight.Category = InsightConservative
		insight.Improvement = strPtr("Great conservative choice! To grow wealth faster, consider small calculated risks when your savings are healthy.")
		insight.FinancialTip = "💡 Balanced Approach: Mix conservative choices with occasional growth opportunities."

	case s > 0:
		insight.Category = InsightSavingsBuilder
		insight.Improvement = strPtr("Excellent! Building savings is the foundation of financial security. Consider investing once you have 6 months of expenses saved.")
		insight.FinancialTip = "💡 50/30/20 Rule: Aim to save at least 20% of your income consistently."

	default:
		insight.Category = InsightGeneric
		insight.Improvement = strPtr("Every financial decision teaches you something. Track your choices to identify patterns.")
		insight.FinancialTip = "💡 Financial Literacy: Understanding the impact of your choices is the first step to financial freedom."
	}

	return insight
}

// describeOutcome перечисляет ненулевые дельты в порядке balance, savings, risk.
func describeOutcome(c Choice) string {
	parts := make([]string, 0, 3)
	if c.BalanceChange != 0 {
		parts = append(parts, formatSignedMoney(c.BalanceChange)+" balance")
	}
	if c.SavingsChange != 0 {
		parts = append(parts, formatSignedMoney(c.SavingsChange)+" savings")
	}
	if c.RiskChange != 0 {
		parts = append(parts, formatSignedPoints(c.RiskChange)+" risk exposure")
	}
	return strings.Join(parts, ", ")
}

func findAlternative(selected Choice, all []Choice, better func(Choice) bool) (Choice, bool) {
	for _, c := range all {
		if c.ID != selected.ID && better(c) {
			return c, true
		}
	}
	return Choice{}, false
}

func strPtr(s string) *string {
	return &s
}
