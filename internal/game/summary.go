package game

// OutcomeTier - итоговая оценка завершенной игры.
type OutcomeTier string

const (
	TierFinancialMaster OutcomeTier = "FINANCIAL MASTER"
	TierWellBalanced    OutcomeTier = "WELL BALANCED"
	TierSurvivor        OutcomeTier = "SURVIVOR"
	TierHighRisk        OutcomeTier = "HIGH RISK PLAYER"
	TierStruggling      OutcomeTier = "STRUGGLING"
)

// PlayerLevel - уровень игрока по чистому капиталу.
type PlayerLevel string

const (
	LevelMaster       PlayerLevel = "MASTER"
	LevelExpert       PlayerLevel = "EXPERT"
	LevelIntermediate PlayerLevel = "INTERMEDIATE"
	LevelBeginner     PlayerLevel = "BEGINNER"
)

const (
	masterNetWorth       = int64(100000)
	balancedNetWorth     = int64(50000)
	intermediateNetWorth = int64(25000)
	survivorNetWorth     = int64(10000)
	masterRiskCeiling    = 40
	highRiskTierFloor    = 80
	highRiskTipFloor     = 70
	lowSavingsThreshold  = int64(5000)
	maxSummaryTips       = 3
)

// SummaryTip - совет по итогам игры.
type SummaryTip struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Summary - итог игры.
type Summary struct {
	NetWorth       int64        `json:"netWorth"`
	Tier           OutcomeTier  `json:"tier"`
	TierMessage    string       `json:"tierMessage"`
	Level          PlayerLevel  `json:"level"`
	RiskyDecisions int          `json:"riskyDecisions"`
	SoundDecisions int          `json:"soundDecisions"`
	Tips           []SummaryTip `json:"tips"`
	Completed      bool         `json:"completed"`
}

// Stats - сводные показатели текущей игры.
type Stats struct {
	Month             int     `json:"month"`
	NetWorth          int64   `json:"netWorth"`
	Balance           int64   `json:"balance"`
	Savings           int64   `json:"savings"`
	RiskScore         int     `json:"riskScore"`
	ChoicesMade       int     `json:"choicesMade"`
	TotalIncome       int64   `json:"totalIncome"`
	TotalExpenses     int64   `json:"totalExpenses"`
	SavingsRate       float64 `json:"savingsRate"`
	AvgMonthlyIncome  float64 `json:"avgMonthlyIncome"`
	AvgMonthlyExpense float64 `json:"avgMonthlyExpense"`
}

// LevelFor определяет уровень игрока.
func LevelFor(s FinancialState) PlayerLevel {
	nw := s.NetWorth()
	switch {
	case nw >= masterNetWorth && s.RiskScore < masterRiskCeiling:
		return LevelMaster
	case nw >= balancedNetWorth:
		return LevelExpert
	case nw >= intermediateNetWorth:
		return LevelIntermediate
	default:
		return LevelBeginner
	}
}

// Summarize строит итог игры по состоянию и истории решений.
func Summarize(s FinancialState) Summary {
	nw := s.NetWorth()
	risky, sound := countDecisions(s.History)
	total := risky + sound

	sum := Summary{
		NetWorth:       nw,
		Level:          LevelFor(s),
		RiskyDecisions: risky,
		SoundDecisions: sound,
		Completed:      s.Completed(),
	}

	switch {
	case nw >= masterNetWorth && s.RiskScore < masterRiskCeiling:
		sum.Tier, sum.TierMessage = TierFinancialMaster, "You built serious wealth while keeping risk under control."
	case nw >= balancedNetWorth:
		sum.Tier, sum.TierMessage = TierWellBalanced, "Solid growth with a reasonable approach to risk."
	case nw >= survivorNetWorth:
		sum.Tier, sum.TierMessage = TierSurvivor, "You made it through the year. There is room to grow."
	case s.RiskScore >= highRiskTierFloor:
		sum.Tier, sum.TierMessage = TierHighRisk, "Your risk exposure left you vulnerable to every surprise."
	default:
		sum.Tier, sum.TierMessage = TierStruggling, "Money was tight this year. Small, steady habits will change that."
	}

	tips := make([]SummaryTip, 0, maxSummaryTips)
	add := func(ok bool, title, text string) {
		if ok && len(tips) < maxSummaryTips {
			tips = append(tips, SummaryTip{Title: title, Text: text})
		}
	}
	add(s.RiskScore >= highRiskTipFloor, "HIGH RISK BEHAVIOR",
		"Your risk score ended high. Insurance and an emergency fund soften unexpected hits.")
	add(s.Savings < lowSavingsThreshold, "LOW SAVINGS",
		"Savings stayed low. Pay yourself first: move a fixed share of income to savings every month.")
	add(total > 0 && risky*2 > total, "DECISION PATTERN",
		"Most of your choices carried avoidable downsides. Compare alternatives before committing.")
	add(total > 0 && sound*2 >= total, "SMART DECISIONS",
		"Most of your choices were sound. Keep weighing risk against reward.")
	add(nw >= balancedNetWorth, "WEALTH BUILDING",
		"Your net worth grew well. Diversify to protect what you have built.")
	sum.Tips = tips

	return sum
}

// ComputeStats считает доходы и расходы по истории.
func ComputeStats(s FinancialState) Stats {
	st := Stats{
		Month:     s.Month,
		NetWorth:  s.NetWorth(),
		Balance:   s.Balance,
		Savings:   s.Savings,
		RiskScore: s.RiskScore,
	}
	for _, h := range s.History {
		if h.Type == HistorySystem {
			continue
		}
		st.ChoicesMade++
		if h.BalanceChange > 0 {
			st.TotalIncome += h.BalanceChange
		} else {
			st.TotalExpenses += -h.BalanceChange
		}
	}
	if flow := st.TotalIncome + st.TotalExpenses; flow > 0 {
		st.SavingsRate = float64(s.Savings) / float64(flow) * 100
	}
	months := float64(max(s.Month-1, 1))
	st.AvgMonthlyIncome = float64(st.TotalIncome) / months
	st.AvgMonthlyExpense = float64(st.TotalExpenses) / months
	return st
}

func countDecisions(history []HistoryEntry) (risky, sound int) {
	for _, h := range history {
		if h.LearningInsight == nil {
			continue
		}
		if h.LearningInsight.WhatWentWrong != nil {
			risky++
		} else {
			sound++
		}
	}
	return risky, sound
}
