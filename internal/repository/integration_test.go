//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"fate-server/internal/game"
	"fate-server/internal/models"
	"fate-server/internal/repository"
	"fate-server/pkg/migration"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

// SessionRepositorySuite прогоняет одни и те же сценарии на Postgres и Redis.
type SessionRepositorySuite struct {
	suite.Suite
	ctx         context.Context
	logger      *zap.Logger
	pgContainer *postgres.PostgresContainer
	rdContainer *tcredis.RedisContainer
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
}

func TestSessionRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(SessionRepositorySuite))
}

func (s *SessionRepositorySuite) SetupSuite() {
	s.ctx = context.Background()
	s.logger = zap.NewNop()
	var err error

	s.pgContainer, err = postgres.Run(s.ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("fate_test"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(3*time.Minute),
		),
	)
	require.NoError(s.T(), err, "Failed to start postgres container")

	dsn, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err)
	s.pgPool, err = pgxpool.New(s.ctx, dsn)
	require.NoError(s.T(), err)

	migrator := migration.NewMigrator(migration.Config{FS: repository.MigrationsFS, Dir: repository.MigrationsDir}, s.pgPool, s.logger)
	require.NoError(s.T(), migrator.Up(), "Failed to run migrations")
	version, dirty, err := migrator.Version()
	require.NoError(s.T(), err)
	require.False(s.T(), dirty)
	require.Equal(s.T(), uint(1), version)

	s.rdContainer, err = tcredis.Run(s.ctx, "docker.io/redis:7-alpine")
	require.NoError(s.T(), err, "Failed to start redis container")
	endpoint, err := s.rdContainer.Endpoint(s.ctx, "")
	require.NoError(s.T(), err)
	s.redisClient = redis.NewClient(&redis.Options{Addr: endpoint})
	require.NoError(s.T(), s.redisClient.Ping(s.ctx).Err())
}

func (s *SessionRepositorySuite) TearDownSuite() {
	if s.redisClient != nil {
		_ = s.redisClient.Close()
	}
	if s.pgPool != nil {
		s.pgPool.Close()
	}
	if s.rdContainer != nil {
		_ = s.rdContainer.Terminate(s.ctx)
	}
	if s.pgContainer != nil {
		_ = s.pgContainer.Terminate(s.ctx)
	}
}

func (s *SessionRepositorySuite) repositories() map[string]repository.SessionRepository {
	return map[string]repository.SessionRepository{
		"postgres": repository.NewPgSessionRepository(s.pgPool, s.logger),
		"redis":    repository.NewRedisSessionRepository(s.redisClient, time.Hour, s.logger),
	}
}

func sampleSession(now time.Time) *models.Session {
	session := models.NewSession(uuid.New(), now)
	sc := game.Scenario{ID: "s", Situation: "Car trouble", Choices: []game.Choice{
		{ID: "a", Label: "Fix", BalanceChange: -800, RiskChange: 10},
		{ID: "b", Label: "Bus", BalanceChange: -80, SavingsChange: 100},
		{ID: "c", Label: "Buy", BalanceChange: -2500, RiskChange: -5},
	}}
	res := game.Resolve("b", sc, session.State)
	session.State = game.Apply(session.State, game.ApplyResolution{Resolution: res})
	session.State = game.Apply(session.State, game.AdvanceMonth{})
	session.ActiveScenario = &models.ActiveScenario{Month: 2, Source: "generated", Scenario: sc}
	session.Settings.AIAPIKey = "player-key"
	return session
}

func (s *SessionRepositorySuite) TestRoundTrip() {
	now := time.Now().UTC().Truncate(time.Millisecond)
	for name, repo := range s.repositories() {
		s.Run(name, func() {
			session := sampleSession(now)
			s.Require().NoError(repo.Save(s.ctx, session))

			loaded, err := repo.Get(s.ctx, session.ID)
			s.Require().NoError(err)
			s.Equal(session.State, loaded.State)
			s.Equal(session.ActiveScenario, loaded.ActiveScenario)
			s.Equal(session.Settings, loaded.Settings)
			s.True(session.UpdatedAt.Equal(loaded.UpdatedAt))

			session.State = game.Apply(session.State, game.Reset{})
			session.ActiveScenario = nil
			s.Require().NoError(repo.Save(s.ctx, session))
			loaded, err = repo.Get(s.ctx, session.ID)
			s.Require().NoError(err)
			s.Equal(game.NewFinancialState(), loaded.State)
			s.Nil(loaded.ActiveScenario)
		})
	}
}

func (s *SessionRepositorySuite) TestNotFoundAndDelete() {
	now := time.Now().UTC()
	for name, repo := range s.repositories() {
		s.Run(name, func() {
			_, err := repo.Get(s.ctx, uuid.New())
			s.ErrorIs(err, models.ErrSessionNotFound)

			session := sampleSession(now)
			s.Require().NoError(repo.Save(s.ctx, session))
			s.Require().NoError(repo.Delete(s.ctx, session.ID))
			_, err = repo.Get(s.ctx, session.ID)
			s.ErrorIs(err, models.ErrSessionNotFound)
		})
	}
}

func (s *SessionRepositorySuite) TestPostgresPurgeIdle() {
	repo := repository.NewPgSessionRepository(s.pgPool, s.logger)
	now := time.Now().UTC()

	stale := sampleSession(now.Add(-48 * time.Hour))
	fresh := sampleSession(now)
	s.Require().NoError(repo.Save(s.ctx, stale))
	s.Require().NoError(repo.Save(s.ctx, fresh))

	purged, err := repo.PurgeIdle(s.ctx, now.Add(-24*time.Hour))
	s.Require().NoError(err)
	s.GreaterOrEqual(purged, int64(1))

	_, err = repo.Get(s.ctx, stale.ID)
	s.ErrorIs(err, models.ErrSessionNotFound)
	_, err = repo.Get(s.ctx, fresh.ID)
	s.NoError(err)
}

func (s *SessionRepositorySuite) TestRedisTTL() {
	repo := repository.NewRedisSessionRepository(s.redisClient, time.Minute, s.logger)
	session := sampleSession(time.Now().UTC())
	s.Require().NoError(repo.Save(s.ctx, session))

	ttl, err := s.redisClient.TTL(s.ctx, "fate:session:"+session.ID.String()).Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
	s.LessOrEqual(ttl, time.Minute)
}
