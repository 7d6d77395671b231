package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"fate-server/internal/delivery/http/middleware"
	"fate-server/internal/models"
	"fate-server/internal/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// TokenIssuer выпускает токен для новой сессии.
type TokenIssuer interface {
	Issue(sessionID uuid.UUID) (string, time.Time, error)
}

// GameHandler обрабатывает HTTP запросы игрового API.
type GameHandler struct {
	service service.GameService
	tokens  TokenIssuer
	logger  *zap.Logger
}

// NewGameHandler создает GameHandler.
func NewGameHandler(s service.GameService, tokens TokenIssuer, logger *zap.Logger) *GameHandler {
	return &GameHandler{
		service: s,
		tokens:  tokens,
		logger:  logger.Named("GameHandler"),
	}
}

// RegisterRoutes регистрирует маршруты. Группа /game требует токен сессии.
func (h *GameHandler) RegisterRoutes(e *echo.Echo, verifier middleware.TokenVerifier) {
	e.POST("/sessions", h.createSession)

	gameGroup := e.Group("/game", middleware.SessionAuth(verifier, h.logger))
	{
		gameGroup.GET("/state", h.getState)
		gameGroup.GET("/scenario", h.getScenario)
		gameGroup.POST("/scenario/generate", h.generateScenario)
		gameGroup.POST("/choice", h.makeChoice)
		gameGroup.PUT("/insurance", h.setInsurance)
		gameGroup.POST("/reset", h.reset)
		gameGroup.PUT("/settings", h.updateSettings)
		gameGroup.GET("/summary", h.getSummary)
	}
}

func sessionContext(c echo.Context) (service.SessionContext, error) {
	id, ok := middleware.SessionIDFrom(c)
	if !ok {
		return service.SessionContext{}, models.ErrUnauthorized
	}
	return service.SessionContext{SessionID: id}, nil
}

func handleServiceError(c echo.Context, err error) error {
	var statusCode int
	var apiErr APIError

	switch {
	case errors.Is(err, models.ErrUnauthorized),
		errors.Is(err, models.ErrTokenInvalid),
		errors.Is(err, models.ErrTokenMalformed),
		errors.Is(err, models.ErrTokenExpired):
		statusCode = http.StatusUnauthorized
		apiErr = APIError{Message: "Unauthorized"}
	case errors.Is(err, models.ErrSessionNotFound):
		statusCode = http.StatusNotFound
		apiErr = APIError{Message: "Session not found"}
	case errors.Is(err, models.ErrGameCompleted):
		statusCode = http.StatusConflict
		apiErr = APIError{Message: "Game is already completed"}
	case errors.Is(err, models.ErrInvalidInput), errors.Is(err, models.ErrInvalidChoice):
		statusCode = http.StatusBadRequest
		apiErr = APIError{Message: err.Error()}
	default:
		statusCode = http.StatusInternalServerError
		apiErr = APIError{Message: "Internal server error"}
	}
	return c.JSON(statusCode, apiErr)
}

// bindAndValidate читает JSON тело и проверяет его тегами validate.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return fmt.Errorf("%w: invalid request body", models.ErrInvalidInput)
	}
	return c.Validate(req)
}

// @Summary Новая игровая сессия
// @Description Создает гостевую сессию с начальным состоянием и выдает токен
// @Tags sessions
// @Produce json
// @Success 201 {object} createSessionResponse "Сессия создана"
// @Failure 500 {object} APIError "Внутренняя ошибка"
// @Router /sessions [post]
func (h *GameHandler) createSession(c echo.Context) error {
	session, err := h.service.CreateSession(c.Request().Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	token, expiresAt, err := h.tokens.Issue(session.ID)
	if err != nil {
		h.logger.Error("Failed to issue session token", zap.String("sessionID", session.ID.String()), zap.Error(err))
		return handleServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, createSessionResponse{
		SessionID: session.ID.String(),
		Token:     token,
		ExpiresAt: expiresAt,
		State:     session.State,
	})
}

// @Summary Текущее финансовое состояние
// @Tags game
// @Produce json
// @Security BearerAuth
// @Success 200 {object} stateResponse
// @Failure 401 {object} APIError "Нет или неверный токен"
// @Router /game/state [get]
func (h *GameHandler) getState(c echo.Context) error {
	sc, err := sessionContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	state, err := h.service.GetState(c.Request().Context(), sc)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, newStateResponse(state))
}

// @Summary Сценарий текущего месяца
// @Tags game
// @Produce json
// @Security BearerAuth
// @Success 200 {object} scenarioResponse
// @Failure 401 {object} APIError "Нет или неверный токен"
// @Failure 409 {object} APIError "Игра завершена"
// @Router /game/scenario [get]
func (h *GameHandler) getScenario(c echo.Context) error {
	sc, err := sessionContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	view, err := h.service.CurrentScenario(c.Request().Context(), sc)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, scenarioResponse{Month: view.Month, Source: view.Source, Scenario: view.Scenario})
}

// @Summary Сгенерировать сценарий месяца
// @Description Запрашивает сценарий у генератора; при ошибке возвращается резервный сценарий
// @Tags game
// @Produce json
// @Security BearerAuth
// @Success 200 {object} scenarioResponse
// @Failure 401 {object} APIError "Нет или неверный токен"
// @Failure 409 {object} APIError "Игра завершена"
// @Router /game/scenario/generate [post]
func (h *GameHandler) generateScenario(c echo.Context) error {
	sc, err := sessionContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	view, err := h.service.GenerateScenario(c.Request().Context(), sc)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, scenarioResponse{Month: view.Month, Source: view.Source, Scenario: view.Scenario})
}

// @Summary Сделать выбор
// @Description Неизвестный вариант возвращает 200 с resolution.valid=false
// @Tags game
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body choiceRequest true "Выбранный вариант"
// @Success 200 {object} choiceResponse
// @Failure 400 {object} APIError "Неверный запрос"
// @Failure 401 {object} APIError "Нет или неверный токен"
// @Failure 409 {object} APIError "Игра завершена"
// @Router /game/choice [post]
func (h *GameHandler) makeChoice(c echo.Context) error {
	sc, err := sessionContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	var req choiceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleServiceError(c, err)
	}

	outcome, err := h.service.ResolveChoice(c.Request().Context(), sc, req.ChoiceID)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, choiceResponse{
		Resolution: outcome.Resolution,
		State:      outcome.State,
		Completed:  outcome.Completed,
	})
}

// @Summary Включить или выключить страховку
// @Tags game
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body insuranceRequest true "Флаг страховки"
// @Success 200 {object} stateResponse
// @Failure 400 {object} APIError "Неверный запрос"
// @Failure 401 {object} APIError "Нет или неверный токен"
// @Router /game/insurance [put]
func (h *GameHandler) setInsurance(c echo.Context) error {
	sc, err := sessionContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	var req insuranceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleServiceError(c, err)
	}

	state, err := h.service.SetInsurance(c.Request().Context(), sc, *req.Enabled)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, newStateResponse(state))
}

// @Summary Начать игру заново
// @Tags game
// @Produce json
// @Security BearerAuth
// @Success 200 {object} stateResponse
// @Failure 401 {object} APIError "Нет или неверный токен"
// @Router /game/reset [post]
func (h *GameHandler) reset(c echo.Context) error {
	sc, err := sessionContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	state, err := h.service.Reset(c.Request().Context(), sc)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, newStateResponse(state))
}

// @Summary Ключ генератора для сессии
// @Tags game
// @Accept json
// @Security BearerAuth
// @Param request body settingsRequest true "Настройки"
// @Success 204 "Сохранено"
// @Failure 400 {object} APIError "Неверный запрос"
// @Failure 401 {object} APIError "Нет или неверный токен"
// @Router /game/settings [put]
func (h *GameHandler) updateSettings(c echo.Context) error {
	sc, err := sessionContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	var req settingsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleServiceError(c, err)
	}

	if err := h.service.UpdateSettings(c.Request().Context(), sc, req.AIAPIKey); err != nil {
		return handleServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// @Summary Итоги игры и статистика
// @Tags game
// @Produce json
// @Security BearerAuth
// @Success 200 {object} summaryResponse
// @Failure 401 {object} APIError "Нет или неверный токен"
// @Router /game/summary [get]
func (h *GameHandler) getSummary(c echo.Context) error {
	sc, err := sessionContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	view, err := h.service.Summary(c.Request().Context(), sc)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, summaryResponse{Summary: view.Summary, Stats: view.Stats})
}
