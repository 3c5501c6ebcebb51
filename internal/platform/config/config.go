package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process-level configuration. Compliance parameters
// (global limit, cycle duration) are starting values; the enforcer admin can
// change them at runtime.
type Server struct {
	Addr          string
	JWTSigningKey string

	// Default compliance parameters applied at boot.
	GlobalLimit   int64
	CycleDuration uint64

	// Optional backends. Empty means "use the in-memory store".
	PostgresURL  string
	RedisURL     string
	KafkaBrokers []string
	AuditTopic   string

	// Optional OTLP trace endpoint. Empty disables tracing.
	OTelEndpoint string

	ShutdownTimeout time.Duration
}

// RedisConfig tunes the go-redis client pool.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("TALLY_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("TALLY_JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Development default; override in production.
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	topic := os.Getenv("TALLY_AUDIT_TOPIC")
	if topic == "" {
		topic = "tally.audit"
	}

	return Server{
		Addr:            addr,
		JWTSigningKey:   jwtSigningKey,
		GlobalLimit:     envInt64("TALLY_GLOBAL_LIMIT", 1_000_000_000),
		CycleDuration:   uint64(envInt64("TALLY_CYCLE_DURATION", 100)),
		PostgresURL:     os.Getenv("TALLY_POSTGRES_URL"),
		RedisURL:        os.Getenv("TALLY_REDIS_URL"),
		KafkaBrokers:    envList("TALLY_KAFKA_BROKERS"),
		AuditTopic:      topic,
		OTelEndpoint:    os.Getenv("TALLY_OTEL_ENDPOINT"),
		ShutdownTimeout: 10 * time.Second,
	}
}

// Redis derives a RedisConfig with pool defaults from the server config.
func (s Server) Redis() RedisConfig {
	return RedisConfig{
		URL:          s.RedisURL,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

func envInt64(key string, fallback int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func envList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
