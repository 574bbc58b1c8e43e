package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"gold-pos/internal/assistant"
	"gold-pos/internal/auth"
	"gold-pos/internal/cache"
	"gold-pos/internal/config"
	"gold-pos/internal/database"
	"gold-pos/internal/handlers"
	"gold-pos/internal/middleware"
	"gold-pos/internal/observability"
	"gold-pos/internal/repository"
	"gold-pos/internal/router"
	"gold-pos/internal/services"
	"gold-pos/internal/storage"
	"gold-pos/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	logrus.SetFormatter(&logrus.JSONFormatter{})
	if !cfg.IsProduction() {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	logrus.WithField("env", cfg.Env).Info("Starting server")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The pool stays usable when MySQL is down at startup; requests fail until it is back.
	db, err := database.Connect(cfg)
	if db == nil {
		logrus.WithError(err).Fatal("Failed to open database")
	}
	defer database.Close(db)
	if err != nil {
		logrus.WithError(err).Error("!!! DATABASE CONNECTION ERROR !!!")
	} else if err := database.Migrate(db); err != nil {
		logrus.WithError(err).Error("Failed to migrate database")
	}

	// Repositories
	tx := repository.NewTransactor(db)
	products := repository.NewProductRepository(db)
	sales := repository.NewSaleRepository(db)
	customers := repository.NewCustomerRepository(db)
	scraps := repository.NewScrapRepository(db)
	reports := repository.NewReportRepository(db)

	// Settings cache is optional
	var settingsCache services.SettingsCache
	if cfg.Redis.Addr != "" {
		client, err := cache.New(ctx, cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			logrus.WithError(err).Warn("Redis unavailable, settings are read from MySQL")
		} else {
			defer client.Close()
			settingsCache = cache.NewSettingsCache(client, cfg.Redis.TTL)
		}
	}

	// Services
	tokens := auth.NewManager(cfg.Security.JWTSecret, cfg.Security.TokenTTL)
	settingsService := services.NewSettingsService(repository.NewSettingsRepository(db), settingsCache)
	inventoryService := services.NewInventoryService(tx, products, sales, settingsService)
	salesService := services.NewSalesService(tx, sales, products, customers)
	customerService := services.NewCustomerService(customers, sales)
	scrapService := services.NewScrapService(scraps)
	reportService := services.NewReportService(reports, sales, time.Local)
	authService := services.NewAuthService(settingsService, tokens)

	uploads, err := storage.New(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize upload storage")
	}
	uploadDir := ""
	if !uploads.UsesS3() {
		uploadDir = uploads.LocalDir()
	}

	metrics := observability.NewMetrics()
	utils.UseJSONFieldNames()

	h := router.Handlers{
		System:    handlers.NewSystemHandler(cfg.Env),
		Products:  handlers.NewProductHandler(inventoryService),
		Sales:     handlers.NewSaleHandler(salesService, metrics),
		Customers: handlers.NewCustomerHandler(customerService),
		Scraps:    handlers.NewScrapHandler(scrapService),
		Settings:  handlers.NewSettingsHandler(settingsService),
		Reports:   handlers.NewReportHandler(reportService),
		Auth:      handlers.NewAuthHandler(authService),
		Uploads:   handlers.NewUploadHandler(uploads),
	}
	if cfg.Assistant.GeminiAPIKey != "" {
		tools := assistant.NewTools(inventoryService, reportService, time.Local)
		agent := assistant.NewAgent(cfg.Assistant.GeminiAPIKey, cfg.Assistant.Model, tools)
		h.Assistant = handlers.NewAssistantHandler(agent)
	} else {
		logrus.Info("GEMINI_API_KEY not set, assistant disabled")
	}

	r := router.New(router.Options{
		Config:    cfg,
		Tokens:    tokens,
		Metrics:   metrics,
		Limiter:   middleware.NewRateLimiter(ctx, rate.Limit(cfg.Server.RateLimitRPS), cfg.Server.RateBurst),
		UploadDir: uploadDir,
	}, h)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logrus.Infof("Server running on http://localhost:%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()

	<-ctx.Done()
	logrus.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Server forced to shutdown")
	}

	logrus.Info("Server exited")
}
