package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/jobhive/jobboard-api/docs"
	"github.com/jobhive/jobboard-api/internal/api"
	mongodb "github.com/jobhive/jobboard-api/internal/infrastructure/db/mongo"
	redisdb "github.com/jobhive/jobboard-api/internal/infrastructure/db/redis"
	"github.com/jobhive/jobboard-api/internal/pkg/config"
	"github.com/jobhive/jobboard-api/pkg/logger"
)

// @title        JobHive API
// @version      1.0
// @description  Job board backend: auth, geospatial job search, salary
// @description  statistics and a one-time application workflow.
// @BasePath     /

// @securityDefinitions.apikey CookieAuth
// @in   cookie
// @name token

func main() {
	// Missing .env is fine, real deployments use the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})
	log.Info().Str("env", cfg.Env).Msg("starting jobboard-api")

	ctx := context.Background()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	indexCtx, cancelIndexes := context.WithTimeout(ctx, 30*time.Second)
	defer cancelIndexes()
	if err := mongodb.NewUserRepository(db).EnsureIndexes(indexCtx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := mongodb.NewJobRepository(db).EnsureIndexes(indexCtx); err != nil {
		log.Fatal().Err(err).Msg("job index creation failed")
	}

	e := api.NewRouter(cfg, db, rdb, log)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Msg("listening")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Info().Err(err).Msg("server stopped")
	}
}
