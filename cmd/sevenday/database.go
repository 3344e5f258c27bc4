package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/overnightmvp/7-day/internal/logging"
)

type pinger interface {
	PingContext(ctx context.Context) error
}

// retryPolicy bounds how long startup waits for Postgres to accept connections.
type retryPolicy struct {
	attemptTimeout time.Duration
	budget         time.Duration
	firstDelay     time.Duration
	maxDelay       time.Duration
}

var startupRetry = retryPolicy{
	attemptTimeout: 5 * time.Second,
	budget:         30 * time.Second,
	firstDelay:     500 * time.Millisecond,
	maxDelay:       5 * time.Second,
}

// openDatabase opens a pgx-backed pool and waits for the server to answer.
func openDatabase(ctx context.Context, dsn string, logger *logging.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := waitForDatabase(ctx, db, startupRetry, logger); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// waitForDatabase pings with doubling delays until the database answers, the
// policy's budget is spent or ctx ends.
func waitForDatabase(ctx context.Context, db pinger, p retryPolicy, logger *logging.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, p.budget)
	defer cancel()

	delay := p.firstDelay
	for attempt := 1; ; attempt++ {
		attemptCtx, stop := context.WithTimeout(ctx, p.attemptTimeout)
		err := db.PingContext(attemptCtx)
		stop()
		if err == nil {
			return nil
		}

		logger.WithContext(ctx).Warn().Err(err).
			Int("attempt", attempt).
			Dur("retry_in", delay).
			Msg("database not ready")

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("ping database after %d attempts: %w", attempt, err)
		case <-timer.C:
		}
		delay = min(delay*2, p.maxDelay)
	}
}
