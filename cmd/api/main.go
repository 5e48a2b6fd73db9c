// @title           Kanban Board API
// @version         1.0
// @description     Personal kanban board with cookie sessions and three task columns.
// @host            localhost:8080
// @BasePath        /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hueyning/kanban-app/internal/app"
	"github.com/hueyning/kanban-app/internal/config"
	"github.com/hueyning/kanban-app/internal/logger"

	_ "github.com/hueyning/kanban-app/docs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("info").Fatalf("config: %v", err)
	}
	log := logger.New(cfg.App.LogLevel)
	log.Info("config loaded, connecting to Postgres and Redis")

	application, err := app.New(cfg, log)
	if err != nil {
		log.Fatalf("app init: %v", err)
	}
	log.Info("app ready, starting HTTP server")
	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.HTTP.Port,
		Handler:      application.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout.Duration(),
		WriteTimeout: cfg.HTTP.WriteTimeout.Duration(),
		IdleTimeout:  cfg.HTTP.IdleTimeout.Duration(),
	}

	go func() {
		log.Infof("HTTP server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("server shutdown: %v", err)
	}

	if err := application.Close(ctx); err != nil {
		log.Errorf("app close: %v", err)
	}
}
