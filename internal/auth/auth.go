package auth

import (
	"errors"
	"fmt"
	"time"

	"fate-server/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "fate-server"

// SessionClaims - данные гостевого токена. Subject содержит ID сессии.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// TokenManager выпускает и проверяет токены игровых сессий.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager создает менеджер токенов. Пустой секрет - ошибка конфигурации.
func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("invalid token ttl: %s", ttl)
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue создает токен для сессии sessionID.
func (m *TokenManager) Issue(sessionID uuid.UUID) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID.String(),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify проверяет токен и возвращает ID сессии.
// Ошибки приводятся к models.ErrTokenExpired, ErrTokenMalformed или ErrTokenInvalid.
func (m *TokenManager) Verify(tokenString string) (uuid.UUID, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return uuid.Nil, fmt.Errorf("%w: %v", models.ErrTokenMalformed, err)
		case errors.Is(err, jwt.ErrTokenExpired):
			return uuid.Nil, fmt.Errorf("%w: %v", models.ErrTokenExpired, err)
		default:
			return uuid.Nil, fmt.Errorf("%w: %v", models.ErrTokenInvalid, err)
		}
	}
	if !token.Valid {
		return uuid.Nil, models.ErrTokenInvalid
	}

	sessionID, err := uuid.Parse(claims.Subject)
	if err != nil || sessionID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: bad subject", models.ErrTokenInvalid)
	}
	return sessionID, nil
}
