package models

import (
	"errors"

	"fate-server/internal/game"
)

// Ошибки приложения. Репозитории и сервис возвращают их (возможно обернутыми),
// HTTP слой сопоставляет их со статусами через errors.Is.
var (
	// Сессии
	ErrSessionNotFound = errors.New("session not found")

	// Игра
	ErrGameCompleted = errors.New("game is already completed")
	ErrInvalidChoice = errors.New("invalid choice")

	// Аутентификация
	ErrUnauthorized   = errors.New("unauthorized")
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("token is malformed")

	// Общие
	ErrInvalidInput   = errors.New("invalid input data")
	ErrInternalServer = errors.New("internal server error")

	// Конфигурация
	ErrEmptyCatalog = game.ErrEmptyCatalog
)
