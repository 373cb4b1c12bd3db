package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"healthmetrics/config"
	"healthmetrics/db"
	qhttp "healthmetrics/http"
	"healthmetrics/ml"
	"healthmetrics/monitoring"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "path to the YAML config file")
	flag.Parse()

	// 1. Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := monitoring.NewLogger(monitoring.LogConfig{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// 2. Load models once; a failure leaves the service up with predictions disabled
	bundle, loadErr := ml.NewLoader(cfg.Models.Dir, logger).Load()

	cache, err := qhttp.NewPredictionCache(cfg.Cache.Size)
	if err != nil {
		logger.Fatal("failed to create prediction cache", zap.Error(err))
	}

	deps := qhttp.Dependencies{
		Bundle:      bundle,
		LoadErr:     loadErr,
		ModelSource: cfg.Models.Dir,
		Logger:      logger,
		Cache:       cache,
		Metrics:     monitoring.NewMetricsCollector(),
	}

	// 3. Optional prediction history
	if cfg.History.Enabled {
		store, err := db.Open(cfg.History.Path)
		if err != nil {
			logger.Fatal("failed to open history database", zap.String("path", cfg.History.Path), zap.Error(err))
		}
		defer store.Close()
		deps.History = store
		logger.Info("prediction history enabled", zap.String("path", cfg.History.Path))
	}

	// 4. Watch artifacts; changes are reported, models stay as loaded
	if cfg.Models.Watch {
		watcher, err := monitoring.NewArtifactWatcher(cfg.Models.Dir, []string{
			ml.BMIModelFile, ml.BodyFatModelFile, ml.BodyFatScalerFile,
		}, logger)
		if err != nil {
			logger.Warn("artifact watcher disabled", zap.Error(err))
		} else {
			defer watcher.Close()
		}
	}

	// 5. Start HTTP server
	server := qhttp.NewServer(qhttp.ServerConfig{
		Port:           cfg.Http.Port,
		Timeout:        cfg.Http.Timeout,
		AllowedOrigins: cfg.Http.AllowedOrigins,
	}, deps)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	// 6. Handle graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			logger.Error("HTTP server failed", zap.Error(err))
		}
	}

	if err := server.Stop(); err != nil {
		logger.Warn("server forced to shutdown", zap.Error(err))
	}

	logger.Info("exiting")
}
