package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// PoolSettings sizes the pgx pool.
type PoolSettings struct {
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

// slowQueryTracer logs statements slower than threshold at warn level.
type slowQueryTracer struct {
	logger    *logrus.Logger
	threshold time.Duration
}

type queryStartKey struct{}

type queryStart struct {
	sql string
	at  time.Time
}

func (t slowQueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, queryStart{sql: data.SQL, at: time.Now()})
}

func (t slowQueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(queryStartKey{}).(queryStart)
	if !ok {
		return
	}
	elapsed := time.Since(start.at)
	if data.Err == nil && elapsed < t.threshold {
		return
	}
	entry := t.logger.WithFields(logrus.Fields{"sql": start.sql, "elapsed": elapsed.String()})
	if data.Err != nil {
		entry.WithError(data.Err).Debug("query failed")
		return
	}
	entry.Warn("slow query")
}

// NewPool opens a pgx pool and pings it before returning.
func NewPool(ctx context.Context, dsn string, s PoolSettings, logger *logrus.Logger) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if s.MaxConns > 0 {
		cfg.MaxConns = s.MaxConns
	}
	if s.MinConns > 0 {
		cfg.MinConns = s.MinConns
	}
	if s.MaxConnLifetime > 0 {
		cfg.MaxConnLifetime = s.MaxConnLifetime
	}
	if logger != nil {
		cfg.ConnConfig.Tracer = slowQueryTracer{logger: logger, threshold: 200 * time.Millisecond}
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return pool, nil
}
