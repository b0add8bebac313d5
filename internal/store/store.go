// Package store persists completed sessions to Postgres and caches their
// rendered output and dictionary stats in Redis. Both are optional: the
// server runs in demo mode (no persistence, no caching) when either is
// unreachable.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

// Store wraps a Postgres connection pool and a Redis client.
type Store struct {
	DB    *sql.DB
	Redis *redis.Client
}

// New connects to postgresURL and redisURL and verifies both are reachable.
func New(postgresURL, redisURL string) (*Store, error) {
	db, err := sql.Open("postgres", postgresURL)
	if err != nil {
		return nil, fmt.Errorf("store: failed to connect to postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("store: failed to ping postgres: %w", err)
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("store: failed to parse redis url: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("store: failed to ping redis: %w", err)
	}

	return &Store{DB: db, Redis: rdb}, nil
}

// Close releases both the Postgres pool and the Redis client.
func (s *Store) Close() error {
	if err := s.DB.Close(); err != nil {
		return err
	}
	return s.Redis.Close()
}

// InitSchema creates the sessions table if it does not already exist.
func (s *Store) InitSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id VARCHAR(36) PRIMARY KEY,
		solution_text VARCHAR(500) NOT NULL,
		rows INTEGER NOT NULL,
		cols INTEGER NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'queued',
		attempts INTEGER DEFAULT 0,
		elapsed_ms BIGINT DEFAULT 0,
		grid_json JSONB,
		solution_json JSONB,
		words_json JSONB,
		error_message TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		completed_at TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_status ON sessions(status);
	CREATE INDEX IF NOT EXISTS idx_sessions_created_at ON sessions(created_at);
	`
	_, err := s.DB.Exec(schema)
	return err
}
