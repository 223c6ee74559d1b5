package main

import (
	"context"
	"os"
	"time"

	"famledger/internal/cache"
	"famledger/internal/config"
	"famledger/internal/db"
	"famledger/internal/logging"
	"famledger/internal/model"
	"famledger/internal/repository"
	"famledger/internal/service"
)

// seed migrates the schema, inserts the default categories that are missing and drops the
// cached category listings. It is safe to run repeatedly.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup(logging.Config{}).Error("load config", logging.FieldError, err.Error())
		os.Exit(1)
	}
	logger := logging.Component(
		logging.Setup(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}),
		logging.ComponentSeed,
	)

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseURL, db.Options{MaxOpenConns: 2, LogSQL: cfg.DBLogSQL, Logger: logger})
	if err != nil {
		logger.Error("connect database", logging.FieldError, err.Error())
		os.Exit(1)
	}
	defer func() { _ = db.Close(gormDB) }()

	if err := gormDB.AutoMigrate(model.Tables()...); err != nil {
		logger.Error("auto-migrate", logging.FieldError, err.Error())
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer func() { _ = cacheClient.Close() }()

	categories := service.NewCategoryService(repository.NewCategoryRepository(gormDB), cacheClient)
	created, err := categories.SeedDefaults(ctx, model.DefaultCategories)
	if err != nil {
		logger.Error("seed default categories", logging.FieldError, err.Error())
		os.Exit(1)
	}
	logger.Info("seed complete", "created", created, "defaults", len(model.DefaultCategories))
}
