package main

import (
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jagchew1/ireland-cauldron-sub000/internal/catalog"
	"github.com/jagchew1/ireland-cauldron-sub000/internal/config"
	"github.com/jagchew1/ireland-cauldron-sub000/internal/server"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		logger.Warn("catalog unavailable, using built-in defaults", zap.String("path", cfg.CatalogPath), zap.Error(err))
	}

	registry := server.NewRegistry(logger)
	handler := server.NewHandler(registry, cfg.EngineConfig(), cat, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/rooms", handler.CreateRoom)
	mux.HandleFunc("/ws", handler.Socket)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	logger.Info("listening", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		logger.Fatal("serve", zap.Error(err))
	}
}
