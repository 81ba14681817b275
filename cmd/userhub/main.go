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

	"userhub/internal/auth"
	"userhub/internal/config"
	"userhub/internal/db"
	httpx "userhub/internal/http"
	"userhub/internal/logging"
	"userhub/internal/user"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	store, err := openStore(cfg, logger)
	if err != nil {
		logger.Fatal("open user store", zap.Error(err))
	}

	r := httpx.NewRouter(cfg, httpx.Deps{
		Users:  store,
		JWT:    auth.NewJWT(cfg.JWTSecret, cfg.JWTExpiresIn),
		Hasher: auth.NewHasher(cfg.BcryptCost),
		Log:    logger,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("listening",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("env", cfg.Env),
			zap.String("store", cfg.StoreDriver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func openStore(cfg config.Config, logger *zap.Logger) (user.Store, error) {
	if cfg.StoreDriver != config.StorePostgres {
		logger.Info("using in-memory user store; data is lost on restart")
		return user.NewMemoryStore(), nil
	}

	gdb, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(gdb); err != nil {
		return nil, err
	}
	return &user.GormStore{DB: gdb}, nil
}
