package repository

import (
	"context"
	"embed"
	"time"

	"fate-server/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// MigrationsFS - SQL миграции схемы хранилища сессий.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS

// MigrationsDir - каталог миграций внутри MigrationsFS.
const MigrationsDir = "migrations"

// SessionRepository определяет методы хранилища игровых сессий.
type SessionRepository interface {
	// Get возвращает сессию по ID или models.ErrSessionNotFound.
	Get(ctx context.Context, id uuid.UUID) (*models.Session, error)
	// Save создает или перезаписывает снимок сессии целиком.
	Save(ctx context.Context, session *models.Session) error
	// Delete удаляет сессию. Отсутствующая сессия не считается ошибкой.
	Delete(ctx context.Context, id uuid.UUID) error
	// PurgeIdle удаляет сессии, не обновлявшиеся с момента olderThan.
	// Возвращает количество удаленных сессий.
	PurgeIdle(ctx context.Context, olderThan time.Time) (int64, error)
}

// DBTX - общий интерфейс для *pgxpool.Pool и pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}
