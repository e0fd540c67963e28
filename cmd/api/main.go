package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/vaughan-dsouza/volunteer-auth/internal/config"
	"github.com/vaughan-dsouza/volunteer-auth/internal/db"
	"github.com/vaughan-dsouza/volunteer-auth/internal/handlers"
	"github.com/vaughan-dsouza/volunteer-auth/internal/notify"
	"github.com/vaughan-dsouza/volunteer-auth/internal/router"
	"github.com/vaughan-dsouza/volunteer-auth/internal/store"
	"github.com/vaughan-dsouza/volunteer-auth/internal/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := utils.NewLogger(cfg.Env, cfg.LogLevel)

	ttl, err := utils.ParseTTL(cfg.JWTTTL)
	if err != nil {
		logger.Fatalf("invalid JWT_TTL %q: %v", cfg.JWTTTL, err)
	}

	ctx := context.Background()

	dbConn, err := db.Connect(ctx, cfg.DatabaseURL, db.PoolOptions{
		MaxOpen:        cfg.DBMaxOpen,
		MaxIdle:        cfg.DBMaxIdle,
		MaxLifetime:    cfg.DBMaxLifetime,
		ConnectTimeout: cfg.DBConnectTimeout,
	})
	if err != nil {
		logger.Fatalf("db connect: %v", err)
	}
	defer dbConn.Close()

	if err := db.EnsureSchema(ctx, dbConn); err != nil {
		logger.Fatalf("db schema: %v", err)
	}

	var notifier notify.Notifier = notify.Nop{}
	if cfg.NotifyEnabled {
		notifier = notify.NewHTTPNotifier(cfg.NotifyURL, cfg.NotifyTimeout)
	}
	welcome := notify.NewAsync(notifier, cfg.NotifyTimeout, cfg.NotifyMaxInFlight, logger)

	auth, err := handlers.NewAuthHandler(store.NewPostgresStore(dbConn), welcome, logger, handlers.AuthOptions{
		Secret:     []byte(cfg.JWTSecret),
		TokenTTL:   ttl,
		BcryptCost: cfg.BcryptCost,
	})
	if err != nil {
		logger.Fatalf("auth handler: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.New(handlers.NewHandler(auth), logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("server forced to shutdown")
	}
	if err := welcome.Wait(shutdownCtx); err != nil {
		logger.WithError(err).Warn("welcome notifications still in flight at exit")
	}

	logger.Info("server exited")
}
