package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HumNoi1/subjective-assessment-api/pkg/config"
)

func TestDSN(t *testing.T) {
	out := dsn(config.DatabaseConfig{
		Host:     "db.local",
		Port:     5433,
		User:     "grader",
		Password: "secret",
		Name:     "subjective_assessment",
		SSLMode:  "require",
	})
	assert.Equal(t, "host=db.local port=5433 user=grader password=secret dbname=subjective_assessment sslmode=require", out)
}

func TestDSNDefaultsSSLMode(t *testing.T) {
	out := dsn(config.DatabaseConfig{Host: "localhost", Port: 5432, User: "postgres", Name: "db"})
	assert.Contains(t, out, "sslmode=disable")
}

func TestPoolSize(t *testing.T) {
	assert.Equal(t, 25, poolSize(25, defaultMaxOpenConns))
	assert.Equal(t, defaultMaxOpenConns, poolSize(0, defaultMaxOpenConns))
	assert.Equal(t, defaultMaxIdleConns, poolSize(-1, defaultMaxIdleConns))
}

func TestNewPostgresRequiresHostAndName(t *testing.T) {
	_, err := NewPostgres(config.DatabaseConfig{Name: "db"})
	require.Error(t, err)

	_, err = NewPostgres(config.DatabaseConfig{Host: "localhost"})
	require.Error(t, err)
}
