package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fate-server/internal/game"
	"fate-server/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	getSessionQuery = `
        SELECT id, state, active_scenario, settings, created_at, updated_at
        FROM game_sessions
        WHERE id = $1
    `
	upsertSessionQuery = `
        INSERT INTO game_sessions (id, state, active_scenario, settings, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (id) DO UPDATE SET
            state = EXCLUDED.state,
            active_scenario = EXCLUDED.active_scenario,
            settings = EXCLUDED.settings,
            updated_at = EXCLUDED.updated_at
    `
	deleteSessionQuery     = `DELETE FROM game_sessions WHERE id = $1`
	purgeIdleSessionsQuery = `DELETE FROM game_sessions WHERE updated_at < $1`
)

var _ SessionRepository = (*pgSessionRepository)(nil)

// sessionRow - строка game_sessions. JSONB колонки читаются как сырые байты.
type sessionRow struct {
	ID             uuid.UUID `db:"id"`
	State          []byte    `db:"state"`
	ActiveScenario []byte    `db:"active_scenario"`
	Settings       []byte    `db:"settings"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type pgSessionRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgSessionRepository создает PostgreSQL реализацию SessionRepository.
func NewPgSessionRepository(db DBTX, logger *zap.Logger) SessionRepository {
	return &pgSessionRepository{
		db:     db,
		logger: logger.Named("PgSessionRepo"),
	}
}

func (r *pgSessionRepository) Get(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	log := r.logger.With(zap.String("sessionID", id.String()))

	var row sessionRow
	if err := pgxscan.Get(ctx, r.db, &row, getSessionQuery, id); err != nil {
		if pgxscan.NotFound(err) {
			log.Debug("Session not found")
			return nil, models.ErrSessionNotFound
		}
		log.Error("Failed to get session", zap.Error(err))
		return nil, fmt.Errorf("failed to get session %s: %w", id, err)
	}

	session, err := row.toModel()
	if err != nil {
		log.Error("Failed to decode session snapshot", zap.Error(err))
		return nil, err
	}
	return session, nil
}

func (r *pgSessionRepository) Save(ctx context.Context, session *models.Session) error {
	log := r.logger.With(zap.String("sessionID", session.ID.String()))

	stateJSON, err := json.Marshal(session.State)
	if err != nil {
		return fmt.Errorf("failed to marshal session state: %w", err)
	}
	settingsJSON, err := json.Marshal(session.Settings)
	if err != nil {
		return fmt.Errorf("failed to marshal session settings: %w", err)
	}
	var activeJSON []byte
	if session.ActiveScenario != nil {
		if activeJSON, err = json.Marshal(session.ActiveScenario); err != nil {
			return fmt.Errorf("failed to marshal active scenario: %w", err)
		}
	}

	_, err = r.db.Exec(ctx, upsertSessionQuery,
		session.ID,
		stateJSON,
		activeJSON,
		settingsJSON,
		session.CreatedAt,
		session.UpdatedAt,
	)
	if err != nil {
		log.Error("Failed to save session", zap.Error(err))
		return fmt.Errorf("failed to save session %s: %w", session.ID, err)
	}
	log.Debug("Session saved", zap.Int("month", session.State.Month))
	return nil
}

func (r *pgSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.Exec(ctx, deleteSessionQuery, id); err != nil {
		r.logger.Error("Failed to delete session", zap.String("sessionID", id.String()), zap.Error(err))
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	return nil
}

func (r *pgSessionRepository) PurgeIdle(ctx context.Context, olderThan time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, purgeIdleSessionsQuery, olderThan)
	if err != nil {
		r.logger.Error("Failed to purge idle sessions", zap.Time("olderThan", olderThan), zap.Error(err))
		return 0, fmt.Errorf("failed to purge idle sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (row sessionRow) toModel() (*models.Session, error) {
	session := &models.Session{
		ID:        row.ID,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if err := json.Unmarshal(row.State, &session.State); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session state: %w", err)
	}
	if len(row.Settings) > 0 {
		if err := json.Unmarshal(row.Settings, &session.Settings); err != nil {
			return nil, fmt.Errorf("failed to unmarshal session settings: %w", err)
		}
	}
	if len(row.ActiveScenario) > 0 {
		var active models.ActiveScenario
		if err := json.Unmarshal(row.ActiveScenario, &active); err != nil {
			return nil, fmt.Errorf("failed to unmarshal active scenario: %w", err)
		}
		session.ActiveScenario = &active
	}
	if session.State.History == nil {
		session.State.History = []game.HistoryEntry{}
	}
	return session, nil
}
