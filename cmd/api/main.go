package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "reviewkit/internal/adapters/http_server"
	"reviewkit/internal/adapters/observability"
	"reviewkit/internal/adapters/oracle"
	"reviewkit/internal/analysis"
	"reviewkit/internal/app"
	"reviewkit/internal/shared"
	mysqlsource "reviewkit/internal/storage/mysql"
	redisstore "reviewkit/internal/storage/redis"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	src := mysqlsource.New(db)
	store := redisstore.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.CacheTTL)
	orc, err := oracle.New(cfg.AnthropicKey, cfg.OracleModel, cfg.OracleRPS, cfg.OracleTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize oracle client")
	}
	svc := app.NewService(src, store, orc, cfg.DefaultCategory, cfg.MaxReviews, analysis.ClassifierConfig{
		BatchSize:   cfg.BatchSize,
		Workers:     cfg.Workers,
		MaxAttempts: cfg.BatchAttempts,
		RetryDelay:  cfg.RetryDelay,
	})

	// http
	srv := server.New(cfg.RequestTimeout)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{S: svc})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
