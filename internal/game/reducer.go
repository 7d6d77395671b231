package game

// Action - переход состояния, принимаемый Apply.
type Action interface {
	actionType() string
}

// SelectChoice применяет дельты варианта и добавляет запись в историю.
type SelectChoice struct {
	Choice Choice
}

// AdvanceMonth переводит игру на следующий месяц.
type AdvanceMonth struct{}

// SetInsurance включает или выключает страховку.
type SetInsurance struct {
	Enabled bool
}

// Reset возвращает состояние к начальному.
type Reset struct{}

// ApplyResolution вливает результат Resolve в состояние.
type ApplyResolution struct {
	Resolution Resolution
}

func (SelectChoice) actionType() string    { return "SELECT_CHOICE" }
func (AdvanceMonth) actionType() string    { return "NEXT_MONTH" }
func (SetInsurance) actionType() string    { return "SET_INSURANCE" }
func (Reset) actionType() string           { return "RESET" }
func (ApplyResolution) actionType() string { return "APPLY_RESOLUTION" }

// ActionType возвращает имя действия для логов и событий.
func ActionType(a Action) string {
	if a == nil {
		return "UNKNOWN"
	}
	return a.actionType()
}

// Apply - чистая функция перехода. Входное состояние не изменяется,
// неизвестные действия возвращают состояние без изменений.
func Apply(state FinancialState, action Action) FinancialState {
	switch a := action.(type) {
	case SelectChoice:
		next := Transition(state, a.Choice)
		next.History = append(next.History, historyEntryFor(state.Month, a.Choice))
		return next

	case AdvanceMonth:
		next := state.Clone()
		next.Month = state.Month + 1
		return next

	case SetInsurance:
		next := state.Clone()
		if a.Enabled && !state.InsuranceOpted {
			next.Balance -= InsurancePremium
		}
		next.InsuranceOpted = a.Enabled
		return next

	case Reset:
		return NewFinancialState()

	case ApplyResolution:
		res := a.Resolution
		if !res.Valid {
			return state
		}
		next := state.Clone()
		next.Balance = res.UpdatedState.Balance
		next.Savings = max(0, res.UpdatedState.Savings)
		next.RiskScore = clamp(res.UpdatedState.RiskScore, minScalar, maxScalar)
		next.StressLevel = clamp(res.UpdatedState.StressLevel, minScalar, maxScalar)
		next.FortuneIndex = clamp(res.UpdatedState.FortuneIndex, minScalar, maxScalar)

		entry := historyEntryFor(state.Month, res.Choice)
		entry.Narrative = res.Narrative
		entry.Reflection = res.Reflection
		entry.LearningInsight = res.Insight
		next.History = append(next.History, entry)
		return next

	default:
		return state
	}
}

// Transition применяет числовые дельты варианта к состоянию без записи
// в историю. Используется и редьюсером, и Resolve, чтобы оба пути
// считали одинаково. Balance не ограничивается снизу.
func Transition(state FinancialState, c Choice) FinancialState {
	next := state.Clone()
	next.Balance = state.Balance + c.BalanceChange
	next.Savings = max(0, state.Savings+c.SavingsChange)
	next.RiskScore = clamp(state.RiskScore+c.RiskChange, minScalar, maxScalar)
	if c.StressChange != 0 {
		next.StressLevel = clamp(state.StressLevel+c.StressChange, minScalar, maxScalar)
	}
	if c.FortuneChange != 0 {
		next.FortuneIndex = clamp(state.FortuneIndex+c.FortuneChange, minScalar, maxScalar)
	}
	return next
}

func historyEntryFor(month int, c Choice) HistoryEntry {
	entryType := HistoryPositive
	if c.BalanceChange < 0 {
		entryType = HistoryNegative
	}
	return HistoryEntry{
		Month:         month,
		Title:         c.Label,
		Description:   "Balance: " + formatSignedMoney(c.BalanceChange),
		Type:          entryType,
		ChoiceID:      c.ID,
		BalanceChange: c.BalanceChange,
		SavingsChange: c.SavingsChange,
		RiskChange:    c.RiskChange,
	}
}
