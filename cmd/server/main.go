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

	"wordchain/internal/cache"
	"wordchain/internal/chain"
	"wordchain/internal/config"
	"wordchain/internal/handlers"
	"wordchain/internal/index"
	"wordchain/internal/loader"
	"wordchain/internal/puzzle"
	"wordchain/internal/scoring"
	"wordchain/internal/source"
	"wordchain/internal/store"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Open the durable cache tier (badger, sqlite, postgres or mysql)
	durable, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open durable store: %v", err)
	}
	defer durable.Close()

	log.Printf("Durable store ready (backend: %s)", cfg.StoreBackend)

	// Build the engine: index <- cache <- loader <- validator
	idx := index.New(cfg.MinWordLength, cfg.MaxWordLength)
	tiered, err := cache.New(cfg.HotCacheSize, durable, cfg.DictionaryVersion, cfg.CacheMaxAge)
	if err != nil {
		log.Fatalf("Failed to create cache: %v", err)
	}

	remote := source.NewHTTPSource(cfg.RemoteBaseURL, cfg.RemoteTimeout)
	dict := loader.New(idx, tiered, remote, loader.Options{
		EssentialPrefixes:      cfg.EssentialPrefixes,
		RetryMaxAttempts:       cfg.RetryMaxAttempts,
		RetryBackoffBase:       cfg.RetryBackoffBase,
		PrefetchBatchSize:      cfg.PrefetchBatchSize,
		PrefetchInterval:       cfg.PrefetchInterval,
		PopularPrefixThreshold: cfg.PopularPrefixThreshold,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	initCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()
	if err := dict.Initialize(initCtx); err != nil {
		log.Fatalf("Failed to initialize dictionary: %v", err)
	}
	log.Println("Dictionary initialized")

	// Background prefetch runs until shutdown
	dict.Start(ctx)

	validator := chain.NewValidator(dict, cfg.MinWordLength)
	finder := puzzle.NewFinder(validator)
	generator := puzzle.NewGenerator(finder, dict, cfg.PuzzleMaxDepth, cfg.PuzzleMaxPairs)

	// Wire up the HTTP surface
	mux := http.NewServeMux()
	handlers.RegisterRoutes(mux,
		handlers.NewGameHandler(validator, handlers.NewSessionRegistry()),
		handlers.NewPuzzleHandler(generator),
		handlers.NewDictionaryHandler(dict, tiered, scoring.NewEngine()),
	)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      handlers.LogRequests(handlers.Recover(mux)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("Server listening on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// openStore selects the durable-store backend from config
func openStore(cfg *config.Config) (store.DurableStore, error) {
	switch cfg.StoreBackend {
	case "badger":
		return store.NewBadgerStore(store.BadgerConfig{
			Path:       cfg.StorePath,
			SyncWrites: true,
		})
	case "memory":
		return store.NewMemoryStore(), nil
	default:
		return store.NewSQLStore(cfg.StoreBackend, store.DialectConfig{
			Path: cfg.StorePath,
			URL:  cfg.DatabaseURL,
		})
	}
}
