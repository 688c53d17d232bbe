package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database  DatabaseConfig
	Session   SessionConfig
	JWT       JWTConfig
	CORS      CORSConfig
	Log       LogConfig
	Embedding EmbeddingConfig
	Vector    VectorConfig
	Storage   StorageConfig
	Grading   GradingConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

// SessionConfig points at the Redis instance holding login sessions.
type SessionConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	TTL      time.Duration
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// EmbeddingConfig describes the external text-embedding service.
type EmbeddingConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// VectorConfig describes the Qdrant vector search service.
type VectorConfig struct {
	Host       string
	Port       int
	APIKey     string
	UseTLS     bool
	Collection string
	VectorSize uint64
}

// StorageConfig controls the bucket-scoped file store.
type StorageConfig struct {
	BaseDir string
}

// GradingConfig tunes the similarity grader.
type GradingConfig struct {
	MaxScore     float64
	SearchLimit  int
	MinimumScore float64
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Session = SessionConfig{
		Host:     v.GetString("SESSION_REDIS_HOST"),
		Port:     v.GetInt("SESSION_REDIS_PORT"),
		Password: v.GetString("SESSION_REDIS_PASSWORD"),
		DB:       v.GetInt("SESSION_REDIS_DB"),
		TTL:      parseDuration(v.GetString("SESSION_TTL"), 24*time.Hour),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Embedding = EmbeddingConfig{
		BaseURL: v.GetString("EMBEDDING_SERVICE_URL"),
		APIKey:  v.GetString("EMBEDDING_SERVICE_API_KEY"),
		Model:   v.GetString("EMBEDDING_MODEL"),
		Timeout: parseDuration(v.GetString("EMBEDDING_TIMEOUT"), 30*time.Second),
	}

	cfg.Vector = VectorConfig{
		Host:       v.GetString("QDRANT_HOST"),
		Port:       v.GetInt("QDRANT_GRPC_PORT"),
		APIKey:     v.GetString("QDRANT_API_KEY"),
		UseTLS:     v.GetBool("QDRANT_USE_TLS"),
		Collection: v.GetString("QDRANT_COLLECTION"),
		VectorSize: v.GetUint64("QDRANT_VECTOR_SIZE"),
	}

	cfg.Storage = StorageConfig{BaseDir: v.GetString("STORAGE_BASE_DIR")}

	cfg.Grading = GradingConfig{
		MaxScore:     v.GetFloat64("GRADING_MAX_SCORE"),
		SearchLimit:  v.GetInt("GRADING_SEARCH_LIMIT"),
		MinimumScore: v.GetFloat64("GRADING_MINIMUM_SCORE"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "subjective_assessment")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("SESSION_REDIS_HOST", "localhost")
	v.SetDefault("SESSION_REDIS_PORT", 6379)
	v.SetDefault("SESSION_REDIS_PASSWORD", "")
	v.SetDefault("SESSION_REDIS_DB", 0)
	v.SetDefault("SESSION_TTL", "24h")

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("JWT_ISSUER", "subjective-assessment-api")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("EMBEDDING_SERVICE_URL", "http://localhost:8090")
	v.SetDefault("EMBEDDING_SERVICE_API_KEY", "")
	v.SetDefault("EMBEDDING_MODEL", "BAAI/bge-small-en-v1.5")
	v.SetDefault("EMBEDDING_TIMEOUT", "30s")

	v.SetDefault("QDRANT_HOST", "localhost")
	v.SetDefault("QDRANT_GRPC_PORT", 6334)
	v.SetDefault("QDRANT_API_KEY", "")
	v.SetDefault("QDRANT_USE_TLS", false)
	v.SetDefault("QDRANT_COLLECTION", "student_submissions")
	v.SetDefault("QDRANT_VECTOR_SIZE", 384)

	v.SetDefault("STORAGE_BASE_DIR", "./storage")

	v.SetDefault("GRADING_MAX_SCORE", 100)
	v.SetDefault("GRADING_SEARCH_LIMIT", 5)
	v.SetDefault("GRADING_MINIMUM_SCORE", 0)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
