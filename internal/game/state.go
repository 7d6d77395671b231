package game

// HistoryType классифицирует запись истории для отображения.
type HistoryType string

const (
	HistoryPositive HistoryType = "positive"
	HistoryNegative HistoryType = "negative"
	HistoryNeutral  HistoryType = "neutral"
	HistorySystem   HistoryType = "system"
)

const (
	InitialMonth     = 1
	InitialBalance   = int64(2400)
	InitialSavings   = int64(0)
	InitialRiskScore = 25

	// InsurancePremium списывается с баланса при включении страховки.
	InsurancePremium = int64(100)

	// GameEndMonth - последний игровой месяц. После него игра завершена.
	GameEndMonth = 12

	minScalar = 0
	maxScalar = 100
)

// HistoryEntry - одна запись в журнале решений игрока.
type HistoryEntry struct {
	Month       int         `json:"month"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Type        HistoryType `json:"type"`

	ChoiceID      string `json:"choiceId,omitempty"`
	BalanceChange int64  `json:"balanceChange"`
	SavingsChange int64  `json:"savingsChange"`
	RiskChange    int    `json:"riskChange"`

	// Заполняются только при ApplyResolution.
	Narrative       string           `json:"narrative,omitempty"`
	Reflection      string           `json:"reflection,omitempty"`
	LearningInsight *LearningInsight `json:"learningInsight,omitempty"`
}

// FinancialState - единственная персистентная сущность игровой сессии.
// Balance не ограничивается снизу (долг разрешен), Savings >= 0,
// RiskScore, StressLevel и FortuneIndex лежат в [0,100].
type FinancialState struct {
	Month          int            `json:"month"`
	Balance        int64          `json:"balance"`
	Savings        int64          `json:"savings"`
	RiskScore      int            `json:"riskScore"`
	InsuranceOpted bool           `json:"insuranceOpted"`
	StressLevel    int            `json:"stressLevel"`
	FortuneIndex   int            `json:"fortuneIndex"`
	History        []HistoryEntry `json:"history"`
}

// NewFinancialState возвращает начальное состояние новой игры.
func NewFinancialState() FinancialState {
	return FinancialState{
		Month:     InitialMonth,
		Balance:   InitialBalance,
		Savings:   InitialSavings,
		RiskScore: InitialRiskScore,
		History:   []HistoryEntry{},
	}
}

// NetWorth = balance + savings.
func (s FinancialState) NetWorth() int64 {
	return s.Balance + s.Savings
}

// Completed сообщает, что все игровые месяцы пройдены.
func (s FinancialState) Completed() bool {
	return s.Month > GameEndMonth
}

// Clone возвращает копию состояния с собственным срезом истории.
func (s FinancialState) Clone() FinancialState {
	out := s
	out.History = make([]HistoryEntry, len(s.History))
	copy(out.History, s.History)
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
