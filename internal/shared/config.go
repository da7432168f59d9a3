package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string

	RedisAddr string
	RedisDB   int
	RedisPass string
	CacheTTL  time.Duration

	AnthropicKey  string
	OracleModel   string
	OracleRPS     int
	OracleTimeout time.Duration

	DefaultCategory string
	MaxReviews      int
	BatchSize       int
	Workers         int
	BatchAttempts   int
	RetryDelay      time.Duration

	RequestTimeout time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/reviewkit?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),

		RedisAddr: env("REDIS_ADDR", "localhost:6379"),
		RedisDB:   atoi("REDIS_DB", 0),
		RedisPass: env("REDIS_PASSWORD", ""),
		CacheTTL:  time.Duration(atoi("CACHE_TTL_SECONDS", 0)) * time.Second,

		AnthropicKey:  env("ANTHROPIC_API_KEY", ""),
		OracleModel:   env("ORACLE_MODEL", ""),
		OracleRPS:     atoi("ORACLE_RPS", 2),
		OracleTimeout: time.Duration(atoi("ORACLE_TIMEOUT_SECONDS", 60)) * time.Second,

		DefaultCategory: env("DEFAULT_CATEGORY", "Tour/Activity"),
		MaxReviews:      atoi("MAX_REVIEWS", 300),
		BatchSize:       atoi("CLASSIFY_BATCH_SIZE", 40),
		Workers:         atoi("CLASSIFY_WORKERS", 4),
		BatchAttempts:   atoi("CLASSIFY_BATCH_ATTEMPTS", 3),
		RetryDelay:      time.Duration(atoi("CLASSIFY_RETRY_DELAY_MS", 500)) * time.Millisecond,

		RequestTimeout: time.Duration(atoi("REQUEST_TIMEOUT_SECONDS", 300)) * time.Second,
	}
	if c.AnthropicKey == "" {
		log.Warn().Msg("ANTHROPIC_API_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
