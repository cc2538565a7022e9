package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"ludo_broker/internal/logger"
)

// Connect opens a pgx pool and verifies it with a ping. Startup fails hard
// on a bad database URL; the archive is optional, so callers only invoke
// this when one is configured.
func Connect(databaseURL string) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		logger.Fatal("db connect failed", "error", err)
	}

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("db ping failed", "error", err)
	}

	return pool
}
