package app

import (
	"strings"
	"time"

	"github.com/yungbote/codequest-backend/internal/data/db"
	"github.com/yungbote/codequest-backend/internal/observability"
	"github.com/yungbote/codequest-backend/internal/platform/envutil"
	"github.com/yungbote/codequest-backend/internal/platform/logger"
	"github.com/yungbote/codequest-backend/internal/services"
	"github.com/yungbote/codequest-backend/internal/upstream"
)

const (
	SourceHTTP = "http"
	SourceDB   = "db"
)

type Config struct {
	Port            string
	JWTSecretKey    string
	CORSOrigins     []string
	ShutdownTimeout time.Duration

	// Source is SourceHTTP or SourceDB.
	Source   string
	Upstream upstream.Config
	DB       db.Config

	RedisAddr   string
	SnapshotTTL time.Duration

	RefreshInterval time.Duration
	Location        *time.Location

	Otel observability.OtelConfig
}

func LoadConfig(log *logger.Logger) Config {
	source := strings.ToLower(envutil.String("DASHBOARD_SOURCE", SourceHTTP, log))
	if source != SourceDB {
		source = SourceHTTP
	}

	tzName := envutil.String("DASHBOARD_TIMEZONE", "Local", log)
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		log.Warn("Unknown DASHBOARD_TIMEZONE, using local time", "timezone", tzName, "error", err)
		loc = time.Local
	}

	return Config{
		Port:            envutil.String("PORT", "8080", log),
		JWTSecretKey:    envutil.String("JWT_SECRET_KEY", "defaultsecret", log),
		CORSOrigins:     splitList(envutil.String("CORS_ALLOWED_ORIGINS", "", log)),
		ShutdownTimeout: envutil.Seconds("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second, log),

		Source: source,
		Upstream: upstream.Config{
			BaseURL:        envutil.String("UPSTREAM_BASE_URL", "http://localhost:5000", log),
			Timeout:        envutil.Seconds("UPSTREAM_TIMEOUT_SECONDS", 15*time.Second, log),
			MaxRetries:     envutil.Int("UPSTREAM_MAX_RETRIES", 2, log),
			InitialBackoff: 250 * time.Millisecond,
			MaxBackoff:     5 * time.Second,
			ServiceToken:   envutil.String("UPSTREAM_SERVICE_TOKEN", "", log),
		},
		DB: db.Config{
			Driver:           envutil.String("DB_DRIVER", db.DriverPostgres, log),
			PostgresHost:     envutil.String("POSTGRES_HOST", "localhost", log),
			PostgresPort:     envutil.String("POSTGRES_PORT", "5432", log),
			PostgresUser:     envutil.String("POSTGRES_USER", "postgres", log),
			PostgresPassword: envutil.String("POSTGRES_PASSWORD", "", log),
			PostgresName:     envutil.String("POSTGRES_NAME", "codequest", log),
			PostgresSSLMode:  envutil.String("POSTGRES_SSLMODE", "disable", log),
			SQLitePath:       envutil.String("SQLITE_PATH", "", log),
		},

		RedisAddr:   envutil.String("REDIS_ADDR", "", log),
		SnapshotTTL: envutil.Seconds("SNAPSHOT_TTL_SECONDS", 15*time.Minute, log),

		RefreshInterval: envutil.Seconds("DASHBOARD_REFRESH_INTERVAL_SECONDS", services.DefaultRefreshInterval, log),
		Location:        loc,

		Otel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", false, log),
			ServiceName: envutil.String("OTEL_SERVICE_NAME", "codequest-dashboard", log),
			Environment: envutil.String("OTEL_ENVIRONMENT", "development", log),
			Version:     envutil.String("SERVICE_VERSION", "dev", log),
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", "", log),
			Headers:     envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "", log),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false, log),
			SampleRatio: observability.ParseRatio(envutil.String("OTEL_SAMPLE_RATIO", "", log), 1),
		},
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
