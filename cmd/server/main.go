package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"tessera-server/internal/engine"
	"tessera-server/internal/infrastructure/storage"
	"tessera-server/internal/server"
	"tessera-server/internal/version"
	"tessera-server/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	var seed int64
	var dbPath string
	// Читаем флаг -seed. По умолчанию 0 (значит сгенерировать случайно).
	flag.Int64Var(&seed, "seed", 0, "Initial map seed (0 for random)")
	flag.StringVar(&dbPath, "db", "", "Path to sqlite database for map persistence (empty to disable)")
	flag.Parse()

	logger.Log.Info("Starting Tessera...")
	logger.Log.Info(version.String())

	// Формируем конфиг
	cfg := engine.NewConfig()
	if seed != 0 {
		cfg.Seed = seed
		logger.Log.Infof("🎲 Using explicit Master Seed: %d", seed)
	} else {
		logger.Log.Infof("🎲 Using random Master Seed: %d", cfg.Seed)
	}

	port := os.Getenv("TS_PORT")
	if port == "" {
		port = "8080"
	}

	// 2. Хранилище карт (опционально)
	var store *storage.Store
	if dbPath != "" {
		var err error
		store, err = storage.Open(dbPath)
		if err != nil {
			logger.Log.Fatal("Failed to open storage:", err)
		}
		defer store.Close()
		logger.Log.Infof("💾 Map storage: %s", dbPath)
	}

	// 3. Инициализация ядра с конфигом
	service := engine.NewService(cfg, store)

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// 4. Запуск сервера
	srv := server.New(service, port)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error:", err)
		}
	}()

	<-stop
	logger.Log.Info("Shutting down...")

	// Сохраняем все карты
	service.SaveAll()

	logger.Log.Info("Done.")
}
