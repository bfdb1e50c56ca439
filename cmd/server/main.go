package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/pulseboard/pulseboard/internal/auth"
	"github.com/pulseboard/pulseboard/internal/backend"
	"github.com/pulseboard/pulseboard/internal/config"
	"github.com/pulseboard/pulseboard/internal/db"
	routes "github.com/pulseboard/pulseboard/internal/http"
	"github.com/pulseboard/pulseboard/internal/search"
	"github.com/pulseboard/pulseboard/internal/ws"
)

func main() {
	// Load .env first; absence is fine in production where env vars are
	// set directly.
	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found, reading from environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	// Database + schema
	database, err := db.Init(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	client := backend.NewGormClient(database)
	log.Info("running database migrations")
	if err := client.Migrate(); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}
	log.Info("migrations complete")

	// Recent-search store: Redis when configured, in-process otherwise.
	var recents search.Recents
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.WithError(err).Fatal("failed to connect to redis")
		}
		recents = search.NewRedisRecents(rdb)
		log.WithField("addr", cfg.RedisAddr).Info("recent searches backed by redis")
	} else {
		recents = search.NewMemoryRecents(24 * time.Hour)
		log.Info("recent searches kept in-process")
	}

	// WebSocket hub
	hub := ws.NewHub()
	go hub.Run()

	// Router
	router := gin.New()
	env := routes.NewEnv(client, recents, hub)
	verifier := auth.NewVerifier(cfg.JWTSecret)
	routes.SetupRoutes(router, cfg, env, verifier, hub)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.WithField("port", cfg.Port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("listen failed")
		}
	}()

	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server exiting")
}
