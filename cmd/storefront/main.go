package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SebastianBC09/shopping-cart/internal/cart"
	"github.com/SebastianBC09/shopping-cart/internal/catalog"
	"github.com/SebastianBC09/shopping-cart/internal/config"
	"github.com/SebastianBC09/shopping-cart/internal/db"
	"github.com/SebastianBC09/shopping-cart/internal/events"
	"github.com/SebastianBC09/shopping-cart/internal/httpapi"
)

func main() {
	cfg := config.Load()

	logger := log.New(os.Stdout, "[storefront] ", log.LstdFlags|log.Lshortfile)

	if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
		logger.Fatalf("run migrations: %v", err)
	}

	database := db.MustOpen(cfg.DatabaseDSN)
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool := db.MustOpenPool(ctx, cfg.DatabaseDSN)
	defer pool.Close()

	catalogRepo := catalog.NewPostgresRepository(pool)
	cartRepo := cart.NewRepository(database)

	rabbitConn := events.MustDialRabbit(cfg.RabbitURL)
	defer rabbitConn.Close()

	sequenceRepo := events.NewSequenceRepository(database)
	publisher, err := events.NewRabbitPublisher(rabbitConn, sequenceRepo)
	if err != nil {
		logger.Fatalf("create event publisher: %v", err)
	}

	engine := cart.NewEngine(catalogRepo)
	cartService := cart.NewService(cartRepo, engine, publisher, logger)

	handler := httpapi.NewHandler(cartService, catalogRepo, publisher, logger)
	router := httpapi.NewRouter(handler, cfg.CORSAllowOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("storefront listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Printf("shutdown signal received")
	case err := <-errCh:
		logger.Fatalf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown error: %v", err)
	}
	if err := publisher.Close(); err != nil {
		logger.Printf("publisher close error: %v", err)
	}
}
