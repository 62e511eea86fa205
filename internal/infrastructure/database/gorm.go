package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/oksasatya/employee-hierarchy-api/internal/domain/entity"
)

func gormConfig(log *logrus.Logger) *gorm.Config {
	cfg := &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
		Logger:         gormlogger.Discard,
	}
	if log != nil {
		cfg.Logger = gormlogger.New(log, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		})
	}
	return cfg
}

// OpenPostgres layers gorm over an existing pgx pool.
func OpenPostgres(pool *pgxpool.Pool, log *logrus.Logger) (*gorm.DB, error) {
	sqlDB := stdlib.OpenDBFromPool(pool)
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormConfig(log))
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("open gorm postgres: %w", err)
	}
	return db, nil
}

// OpenSQLite opens a SQLite database and creates the schema. A single connection
// is used so that in-memory databases survive for the lifetime of the handle.
func OpenSQLite(dsn string, log *logrus.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig(log))
	if err != nil {
		return nil, fmt.Errorf("open gorm sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// OpenInMemory returns an isolated in-memory SQLite database with foreign keys enforced.
// name identifies the database; characters outside [A-Za-z0-9_] are replaced.
func OpenInMemory(name string) (*gorm.DB, error) {
	safe := strings.Map(func(r rune) rune {
		if r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9') {
			return r
		}
		return '_'
	}, name)
	return OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", safe), nil)
}

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entity.Employee{}, &entity.User{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// RunMigrations applies the SQL migrations in dir using golang-migrate over pgx stdlib.
func RunMigrations(dsn string, dir string, logger *logrus.Logger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	driver, err := pgmigrate.WithInstance(db, &pgmigrate.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", dir), "postgres", driver)
	if err != nil {
		return err
	}
	logger.Info("running migrations...")
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migrations to run")
		return nil
	}
	return err
}

// Close releases the pool behind db.
func Close(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
