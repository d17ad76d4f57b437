package main

import (
	"context"

	"github.com/campusmatch/engine/internal/app"
	"github.com/campusmatch/engine/internal/cache"
	"github.com/campusmatch/engine/internal/config"
	"github.com/campusmatch/engine/internal/db"
	"github.com/campusmatch/engine/internal/logger"
	"github.com/campusmatch/engine/internal/repository"
	"github.com/campusmatch/engine/internal/server"
	"github.com/campusmatch/engine/internal/service/recommend"
	"github.com/campusmatch/engine/internal/service/swipe"
)

func main() {
	cfg := config.New()

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)
	log := logger.L() // slog.Logger pointer

	// Init DB
	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		return
	}

	// Init Redis
	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(context.Background()); err != nil {
		log.Error("failed to connect to redis", "err", err)
		return
	}

	// Inject logger into app context
	appCtx := app.New(database, redisCache, log)

	// Stores. The swipe table is an optional capability: without it the
	// engine serves feeds with no exclusion set and rejects swipe writes.
	users := repository.NewUserRepository(database)
	matches := repository.NewMatchRepository(database)
	var swipes repository.SwipeStore = repository.NewSwipeRepository(database)
	if !cfg.Swipes.Enabled {
		log.Warn("swipe store disabled, running degraded")
		swipes = repository.NewDisabledSwipeStore()
	}

	registrars := []server.Registrar{
		recommend.NewRegistrar(recommend.NewService(appCtx, cfg, users, swipes)),
		swipe.NewRegistrar(swipe.NewService(appCtx, users, swipes, matches)),
	}

	if cfg.App.ENV == "development" && cfg.Swipes.Enabled {
		if err := db.SeedTestData(database); err != nil {
			log.Error("failed to seed", "err", err)
		}
	}

	addr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	log.Info("starting HTTP server", "addr", addr)

	if err := server.StartHTTPServer(cfg, registrars...); err != nil {
		log.Error("failed to start HTTP server", "err", err)
	}
}
