package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"famledger/docs"
	"famledger/internal/auth"
	"famledger/internal/cache"
	"famledger/internal/config"
	"famledger/internal/db"
	"famledger/internal/handler"
	"famledger/internal/logging"
	"famledger/internal/middleware"
	"famledger/internal/model"
	"famledger/internal/repository"
	"famledger/internal/router"
	"famledger/internal/service"
)

// @title Family Expense Tracker API
// @version 1.0
// @description Shared family ledger: expenses, income, planned expenses, categories and analytics.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", logging.FieldError, err.Error())
		os.Exit(1)
	}

	logger := logging.Setup(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	appLog := logging.Component(logger, logging.ComponentApp)

	if err := run(cfg, logger); err != nil {
		appLog.Error("server stopped", logging.FieldError, err.Error())
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	appLog := logging.Component(logger, logging.ComponentApp)
	storeLog := logging.Component(logger, logging.ComponentStorage)

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseURL, db.Options{
		MaxOpenConns: cfg.DBMaxOpenConns,
		LogSQL:       cfg.DBLogSQL,
		Logger:       storeLog,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(gormDB); err != nil {
			storeLog.Warn("close database", logging.FieldError, err.Error())
		}
	}()

	tables := model.Tables()
	if cfg.ResetDB {
		storeLog.Warn("RESET_DB set, dropping all tables")
		for i := len(tables) - 1; i >= 0; i-- {
			if err := gormDB.Migrator().DropTable(tables[i]); err != nil {
				storeLog.Warn("drop table", logging.FieldError, err.Error())
			}
		}
	}
	if err := gormDB.AutoMigrate(tables...); err != nil {
		return err
	}

	ctx := context.Background()
	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer func() { _ = cacheClient.Close() }()
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	if err := cacheClient.Ping(pingCtx); err != nil {
		logging.Component(logger, logging.ComponentCache).Warn("redis unavailable, continuing without cache", logging.FieldError, err.Error())
	}
	cancel()

	categoryRepo := repository.NewCategoryRepository(gormDB)
	categoryService := service.NewCategoryService(categoryRepo, cacheClient)
	seeded, err := categoryService.SeedDefaults(ctx, model.DefaultCategories)
	if err != nil {
		return err
	}
	if seeded > 0 {
		storeLog.Info("default categories seeded", "count", seeded)
	}

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	familyRepo := repository.NewFamilyRepository(gormDB)
	expenseRepo := repository.NewExpenseRepository(gormDB)
	incomeRepo := repository.NewIncomeRepository(gormDB)
	futureRepo := repository.NewFutureExpenseRepository(gormDB, nil)
	analyticsRepo := repository.NewAnalyticsRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, familyRepo, cacheClient)
	familyService := service.NewFamilyService(familyRepo, userRepo, categoryService)
	expenseService := service.NewExpenseService(expenseRepo, categoryRepo)
	incomeService := service.NewIncomeService(incomeRepo)
	futureService := service.NewFutureExpenseService(futureRepo, nil)
	analyticsService := service.NewAnalyticsService(analyticsRepo, futureRepo, nil)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	e := echo.New()
	router.Register(e, cfg, router.Deps{
		Logger:     logger,
		JWT:        jwtService,
		Tokens:     tokenStore,
		Users:      userService,
		Families:   familyService,
		Metrics:    middleware.NewMetrics(reg),
		Gatherer:   reg,
		BodyLimit:  cfg.BodyLimit,
		EnableDocs: cfg.EnableDocs,
	}, router.Handlers{
		Auth:          handler.NewAuthHandler(authService),
		Family:        handler.NewFamilyHandler(familyService),
		User:          handler.NewUserHandler(userService),
		Expense:       handler.NewExpenseHandler(expenseService),
		Income:        handler.NewIncomeHandler(incomeService),
		FutureExpense: handler.NewFutureExpenseHandler(futureService),
		Category:      handler.NewCategoryHandler(categoryService),
		Analytics:     handler.NewAnalyticsHandler(analyticsService),
		Health:        handler.NewHealthHandler(gormDB, cacheClient),
	})

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("server listening", "addr", ":"+cfg.ServerPort, "docs", cfg.EnableDocs)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-sigCtx.Done():
	}

	shutdownLog := logging.Component(logger, logging.ComponentShutdown)
	shutdownLog.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := e.Shutdown(shutdownCtx); err != nil {
		shutdownLog.Error("graceful shutdown failed", logging.FieldError, err.Error())
		return err
	}
	shutdownLog.Info("server stopped")
	return nil
}
