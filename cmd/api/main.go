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

	"bookstore-storefront/internal/config"
	"bookstore-storefront/internal/db"
	"bookstore-storefront/internal/httpserver"
	"bookstore-storefront/internal/kvstore"
	"bookstore-storefront/internal/persist"
	bookrepo "bookstore-storefront/internal/repository/book"
	sessionrepo "bookstore-storefront/internal/repository/session"
	settingsrepo "bookstore-storefront/internal/repository/settings"
	cartsvc "bookstore-storefront/internal/service/cart"
	catalogsvc "bookstore-storefront/internal/service/catalog"
	sessionsvc "bookstore-storefront/internal/service/session"
	wishlistsvc "bookstore-storefront/internal/service/wishlist"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	kv, kvCloser, err := kvstore.Open(cfg.KVBackend, kvstore.Options{
		Pool:      dbpool,
		RedisAddr: cfg.RedisAddr,
		Logger:    logger,
	})
	if err != nil {
		logger.Fatalf("open kv store: %v", err)
	}
	defer kvCloser.Close()

	writer := persist.NewWriter(kv, logger, 5*time.Second)
	writer.Start()

	var sessions sessionrepo.Repository = sessionrepo.NewPostgres(dbpool)
	if cfg.KVBackend == kvstore.BackendMemory {
		sessions = sessionrepo.NewMemory()
	}

	bookRepo := bookrepo.NewPostgres(dbpool, logger)
	settingsRepo := settingsrepo.NewPostgres(dbpool, logger)
	catalogService := catalogsvc.New(bookRepo, settingsRepo, logger)
	cartService := cartsvc.New(catalogService, kv, writer, cfg.PersistWait, logger)
	wishlistService := wishlistsvc.New(catalogService, kv, writer, cfg.PersistWait, logger)
	sessionService := sessionsvc.New(sessions, cfg.SessionTTL)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CatalogSvc:  catalogService,
		CartSvc:     cartService,
		WishlistSvc: wishlistService,
		SessionSvc:  sessionService,
		KV:          kv,
		FileURLHost: cfg.FileURLHost,
		CORSOrigins: cfg.CORSOrigins,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}

	// Drain pending snapshots before the kv store and pool close.
	writer.Close()
}
