package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/oksasatya/employee-hierarchy-api/config"
)

// Open connects to the configured driver. For postgres the SQL migrations are applied
// and the pgx pool is returned so the caller can close it; for sqlite the pool is nil.
func Open(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*gorm.DB, *pgxpool.Pool, error) {
	if cfg.DBDriver == "sqlite" {
		db, err := OpenSQLite(cfg.SQLiteDSN, logger)
		return db, nil, err
	}

	pool, err := NewPool(ctx, cfg.PostgresDSN(), PoolSettings{
		MaxConns:        cfg.DBMaxConns,
		MinConns:        cfg.DBMinConns,
		MaxConnLifetime: cfg.DBMaxConnLife,
	}, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := OpenPostgres(pool, logger)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	return db, pool, nil
}
