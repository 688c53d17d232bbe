// Package database opens the PostgreSQL pool backing the assessment store.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/HumNoi1/subjective-assessment-api/pkg/config"
)

const (
	pingTimeout = 5 * time.Second

	defaultMaxOpenConns = 10
	defaultMaxIdleConns = 5
)

// NewPostgres opens the assessment database and verifies the connection
// before handing the pool to the repositories.
func NewPostgres(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	if cfg.Host == "" || cfg.Name == "" {
		return nil, fmt.Errorf("database host and name are required")
	}

	db, err := sqlx.Open("postgres", dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(poolSize(cfg.MaxOpenConns, defaultMaxOpenConns))
	db.SetMaxIdleConns(poolSize(cfg.MaxIdleConns, defaultMaxIdleConns))
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

// dsn renders the lib/pq key/value connection string. An unset SSL mode
// falls back to disable, matching the local development default.
func dsn(cfg config.DatabaseConfig) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		sslMode,
	)
}

func poolSize(configured, fallback int) int {
	if configured > 0 {
		return configured
	}
	return fallback
}
