package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// The audit store is the only Postgres consumer: a handful of short
// writes per moderation action plus the stats queries. A small pool
// with aggressive idle reclamation fits that shape.
const (
	maxConns        = 4
	minConns        = 1
	connMaxLifetime = 30 * time.Minute
	connMaxIdleTime = 5 * time.Minute

	connectAttempts = 5
	connectBackoff  = 2 * time.Second
)

// NewPool opens the audit database pool, retrying while Postgres comes
// up (the service is usually scheduled alongside it).
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	config.MaxConns = maxConns
	config.MinConns = minConns
	config.MaxConnLifetime = connMaxLifetime
	config.MaxConnIdleTime = connMaxIdleTime
	config.HealthCheckPeriod = time.Minute

	var lastErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		pool, err := pgxpool.NewWithConfig(ctx, config)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				log.Printf("audit database ready (pool max=%d)", maxConns)
				return pool, nil
			}
			pool.Close()
		}
		lastErr = err

		log.Printf("audit database not ready (attempt %d/%d): %v", attempt, connectAttempts, err)
		if attempt < connectAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(connectBackoff):
			}
		}
	}

	return nil, fmt.Errorf("audit database unreachable after %d attempts: %w", connectAttempts, lastErr)
}
