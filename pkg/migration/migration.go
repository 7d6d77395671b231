package migration

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

const (
	migrationsTable = "schema_migrations"
	lockTimeout     = 30 * time.Second
)

// Config описывает источник миграций.
type Config struct {
	FS  fs.FS
	Dir string
}

// Migrator применяет встроенные SQL миграции к PostgreSQL через пул pgx.
type Migrator struct {
	config Config
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewMigrator создает Migrator.
func NewMigrator(config Config, pool *pgxpool.Pool, logger *zap.Logger) *Migrator {
	return &Migrator{
		config: config,
		pool:   pool,
		logger: logger.Named("Migrator"),
	}
}

// Up применяет все новые миграции. Отсутствие изменений не ошибка.
func (m *Migrator) Up() error {
	return m.run(func(mg *migrate.Migrate) error { return mg.Up() }, "applied")
}

// Down откатывает все миграции.
func (m *Migrator) Down() error {
	return m.run(func(mg *migrate.Migrate) error { return mg.Down() }, "rolled back")
}

// Version возвращает текущую версию схемы и флаг dirty.
// Для пустой базы возвращается версия 0.
func (m *Migrator) Version() (uint, bool, error) {
	mg, err := m.instance()
	if err != nil {
		return 0, false, err
	}
	defer closeMigrate(mg, m.logger)

	version, dirty, err := mg.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get migration version: %w", err)
	}
	return version, dirty, nil
}

func (m *Migrator) run(step func(*migrate.Migrate) error, verb string) error {
	mg, err := m.instance()
	if err != nil {
		return err
	}
	defer closeMigrate(mg, m.logger)

	if err := step(mg); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.logger.Info("Database schema is up to date")
			return nil
		}
		return fmt.Errorf("migrations not %s: %w", verb, err)
	}
	m.logger.Info("Database migrations " + verb)
	return nil
}

func (m *Migrator) instance() (*migrate.Migrate, error) {
	db := stdlib.OpenDBFromPool(m.pool)

	driver, err := postgres.WithInstance(db, &postgres.Config{MigrationsTable: migrationsTable})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create postgres migration driver: %w", err)
	}

	source, err := iofs.New(m.config.FS, m.config.Dir)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open migrations source: %w", err)
	}

	mg, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}
	mg.LockTimeout = lockTimeout
	return mg, nil
}

func closeMigrate(mg *migrate.Migrate, logger *zap.Logger) {
	srcErr, dbErr := mg.Close()
	if srcErr != nil || dbErr != nil {
		logger.Warn("Failed to close migrator", zap.NamedError("sourceError", srcErr), zap.NamedError("dbError", dbErr))
	}
}
