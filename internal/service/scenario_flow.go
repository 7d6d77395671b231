package service

import (
	"context"

	"fate-server/internal/game"
	"fate-server/internal/messaging"
	"fate-server/internal/models"
	"fate-server/internal/provider"

	"go.uber.org/zap"
)

func (s *gameServiceImpl) CurrentScenario(ctx context.Context, sc SessionContext) (ScenarioView, error) {
	unlock := s.locks.lock(sc.SessionID)
	defer unlock()

	session, err := s.loadOrCreate(ctx, sc)
	if err != nil {
		return ScenarioView{}, err
	}
	if session.State.Completed() {
		return ScenarioView{}, models.ErrGameCompleted
	}
	return s.scenarioFor(session), nil
}

// GenerateScenario запрашивает сценарий у провайдера. Блокировка сессии
// на время запроса не удерживается: если за это время игрок перешел
// к следующему месяцу, результат отбрасывается.
func (s *gameServiceImpl) GenerateScenario(ctx context.Context, sc SessionContext) (ScenarioView, error) {
	unlock := s.locks.lock(sc.SessionID)
	session, err := s.loadOrCreate(ctx, sc)
	unlock()
	if err != nil {
		return ScenarioView{}, err
	}
	if session.State.Completed() {
		return ScenarioView{}, models.ErrGameCompleted
	}

	requestedMonth := session.State.Month
	scenario, source := s.scenarios.Generate(ctx, session.State, s.apiKeyFor(session))

	unlock = s.locks.lock(sc.SessionID)
	defer unlock()

	current, err := s.loadOrCreate(ctx, sc)
	if err != nil {
		return ScenarioView{}, err
	}
	if current.State.Month != requestedMonth {
		s.logger.Info("Discarding stale generated scenario",
			zap.String("sessionID", sc.SessionID.String()),
			zap.Int("requestedMonth", requestedMonth),
			zap.Int("currentMonth", current.State.Month))
		if current.State.Completed() {
			return ScenarioView{}, models.ErrGameCompleted
		}
		return s.scenarioFor(current), nil
	}

	current.ActiveScenario = &models.ActiveScenario{
		Month:    requestedMonth,
		Source:   string(source),
		Scenario: scenario,
	}
	if err := s.save(ctx, current); err != nil {
		return ScenarioView{}, err
	}
	return ScenarioView{Month: requestedMonth, Source: source, Scenario: scenario.Clone()}, nil
}

// ResolveChoice разрешает выбор в сценарии текущего месяца, применяет
// результат и переводит игру на следующий месяц. Неизвестный вариант
// не является ошибкой: возвращается sentinel-резолюция, состояние не меняется.
// События публикуются после снятия блокировки сессии.
func (s *gameServiceImpl) ResolveChoice(ctx context.Context, sc SessionContext, choiceID string) (ChoiceOutcome, error) {
	outcome, events, err := s.resolveLocked(ctx, sc, choiceID)
	if err != nil {
		return ChoiceOutcome{}, err
	}
	for _, event := range events {
		s.publish(ctx, event)
	}
	return outcome, nil
}

func (s *gameServiceImpl) resolveLocked(ctx context.Context, sc SessionContext, choiceID string) (ChoiceOutcome, []messaging.GameEvent, error) {
	unlock := s.locks.lock(sc.SessionID)
	defer unlock()

	session, err := s.loadOrCreate(ctx, sc)
	if err != nil {
		return ChoiceOutcome{}, nil, err
	}
	if session.State.Completed() {
		return ChoiceOutcome{}, nil, models.ErrGameCompleted
	}

	view := s.scenarioFor(session)
	resolution := game.Resolve(choiceID, view.Scenario, session.State)
	if !resolution.Valid {
		invalidChoicesTotal.Inc()
		s.logger.Info("Invalid choice submitted",
			zap.String("sessionID", sc.SessionID.String()),
			zap.String("choiceID", choiceID),
			zap.Int("month", session.State.Month))
		return ChoiceOutcome{Resolution: resolution, State: session.State}, nil, nil
	}

	resolvedMonth := session.State.Month
	next := game.Apply(session.State, game.ApplyResolution{Resolution: resolution})
	next = game.Apply(next, game.AdvanceMonth{})
	session.State = next
	session.ActiveScenario = nil
	if err := s.save(ctx, session); err != nil {
		return ChoiceOutcome{}, nil, err
	}

	category := game.InsightGeneric
	if resolution.Insight != nil {
		category = resolution.Insight.Category
	}
	choicesResolvedTotal.WithLabelValues(string(category)).Inc()

	events := []messaging.GameEvent{{
		Type:            messaging.EventChoiceResolved,
		SessionID:       sc.SessionID.String(),
		Month:           resolvedMonth,
		ChoiceID:        resolution.ChoiceID,
		InsightCategory: category,
		BalanceChange:   resolution.Choice.BalanceChange,
		RiskChange:      resolution.Choice.RiskChange,
	}}

	completed := next.Completed()
	if completed {
		summary := game.Summarize(next)
		events = append(events, messaging.GameEvent{
			Type:      messaging.EventGameCompleted,
			SessionID: sc.SessionID.String(),
			Month:     resolvedMonth,
			NetWorth:  summary.NetWorth,
			Tier:      summary.Tier,
		})
		s.logger.Info("Game completed",
			zap.String("sessionID", sc.SessionID.String()),
			zap.Int64("netWorth", summary.NetWorth),
			zap.String("tier", string(summary.Tier)))
	}

	// Резолюция отражает состояние сразу после выбора, до смены месяца.
	return ChoiceOutcome{Resolution: resolution, State: next, Completed: completed}, events, nil
}

// scenarioFor возвращает выданный генератором сценарий этого месяца,
// иначе сценарий каталога. Вызывать только под блокировкой сессии.
func (s *gameServiceImpl) scenarioFor(session *models.Session) ScenarioView {
	month := session.State.Month
	if scenario, ok := session.ScenarioFor(month); ok {
		return ScenarioView{Month: month, Source: provider.Source(session.ActiveScenario.Source), Scenario: scenario.Clone()}
	}
	return ScenarioView{Month: month, Source: provider.SourceCatalog, Scenario: game.SelectScenario(month, s.catalog)}
}
