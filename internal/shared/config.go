package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	CacheTTL    time.Duration
	RateLimit   int // requests per second per instance, 0 disables
	SeedWorkers int

	// Booking policy knobs (see DESIGN.md).
	RequireAvailability bool // bookings must be covered by open availability
	PendingBlocks       bool // pending bookings also block overlapping ranges
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	boolean := func(k string, def bool) bool {
		if v := os.Getenv(k); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				return b
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not a boolean, using default")
		}
		return def
	}
	c := Config{
		AppEnv:              env("APP_ENV", "prod"),
		HTTPAddr:            env("HTTP_ADDR", ":8080"),
		MetricsAddr:         env("METRICS_ADDR", ":9100"),
		MySQLDSN:            env("MYSQL_DSN", "root:root@tcp(localhost:3306)/hyperfunnel?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:           env("REDIS_ADDR", "localhost:6379"),
		RedisPass:           env("REDIS_PASSWORD", ""),
		RedisDB:             atoi("REDIS_DB", 0),
		CacheTTL:            time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		RateLimit:           atoi("RATE_LIMIT_RPS", 0),
		SeedWorkers:         atoi("SEED_WORKERS", 8),
		RequireAvailability: boolean("BOOKING_REQUIRE_AVAILABILITY", true),
		PendingBlocks:       boolean("BOOKING_PENDING_BLOCKS", false),
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
