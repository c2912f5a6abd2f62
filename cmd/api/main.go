package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "hyperfunnel/internal/adapters/http_server"
	"hyperfunnel/internal/adapters/observability"
	redisad "hyperfunnel/internal/adapters/redis"
	"hyperfunnel/internal/app"
	"hyperfunnel/internal/shared"
	mysqlrepo "hyperfunnel/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "api")

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
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	policy := app.Policy{
		RequireAvailability: cfg.RequireAvailability,
		PendingBlocks:       cfg.PendingBlocks,
	}
	q := app.NewQueryService(repo, repo, repo, repo, cache, cfg.CacheTTL)
	c := app.NewCommandService(repo, repo, repo, cache)
	b := app.NewBookingService(repo, repo, repo, policy)
	seed := app.NewSeedService(c, cfg.SeedWorkers)

	// http
	srv := server.New(float64(cfg.RateLimit))
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q, C: c, B: b, Seed: seed})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
