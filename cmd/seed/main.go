package main

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"hyperfunnel/internal/adapters/observability"
	redisad "hyperfunnel/internal/adapters/redis"
	"hyperfunnel/internal/app"
	"hyperfunnel/internal/shared"
	mysqlrepo "hyperfunnel/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv, "seed")

	log.Info().Int("workers", cfg.SeedWorkers).Msg("seeder starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	commands := app.NewCommandService(repo, repo, repo, cache)

	report, err := app.NewSeedService(commands, cfg.SeedWorkers).Seed(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}
	log.Info().
		Int("hotels", report.Hotels).
		Int("rooms", report.Rooms).
		Int("availability", report.Availability).
		Msg("seeding completed")
}
