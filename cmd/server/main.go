package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/labstack/gommon/log"

	"gdpseries/internal/api"
	"gdpseries/internal/config"
	"gdpseries/internal/engine"
)

func main() {
	addr := flag.String("addr", "", "listen address (overrides config)")
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	logger := cfg.NewLogger("gdpseries")

	// 1. Initialize the cache (nothing is loaded yet)
	cache := engine.NewCache(engine.AutoFetcher{}, logger)

	// 2. Initialize Handler; requests wait for the load up to the timeout
	h := api.NewHandler(cache, cfg.Source, cfg.Timeout(), cfg.ExcludeAggregates)
	e := api.NewServer(h, logger)

	// 3. Warm the cache in the background
	if cfg.WarmUp {
		go func() {
			logger.Info("BACKGROUND: loading dataset...")
			t0 := time.Now()
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
			defer cancel()
			ds, err := cache.Load(ctx, cfg.Source)
			if err != nil {
				logger.Errorf("BACKGROUND: load failed: %v", err)
				return
			}
			logger.Infof("BACKGROUND: %d observations ready in %v", ds.Len(), time.Since(t0))
		}()
	}

	// 4. Start Server
	logger.Infof("Server ready on %s (source %s)", cfg.Addr, cfg.Source)
	e.Logger.Fatal(e.Start(cfg.Addr))
}
