package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"moneyflow/internal/advisor"
	"moneyflow/internal/config"
	"moneyflow/internal/handlers"
	"moneyflow/internal/services"
	"moneyflow/internal/store"
	"moneyflow/internal/websocket"
)

func main() {
	cfg := config.Load()
	entityStore := store.New()
	hub := websocket.NewHub()

	ledger := services.NewLedgerService(entityStore, hub)
	portfolio := services.NewPortfolioService(entityStore)
	insights := services.NewInsightService(entityStore, advisor.Static{}, hub)

	handler := handlers.New(cfg, entityStore, ledger, portfolio, insights, hub)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("moneyflow API listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
