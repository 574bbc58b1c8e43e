package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gold-pos/internal/config"
	"gold-pos/internal/models"
)

// Connect opens the MySQL pool. The pool is created even when the server is down so the
// process can keep serving; the returned error only reports that the first contact failed.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{
		Logger:               newLogger(cfg.DB.LogLevel),
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DB.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	// Wait for DB to be ready
	retries := max(cfg.DB.ConnectRetries, 1)
	for i := 0; i < retries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.DB.ConnectTimeout)
		err = sqlDB.PingContext(ctx)
		cancel()
		if err == nil {
			break
		}
		logrus.WithError(err).Warnf("Failed to reach database. Retrying in 2 seconds... (%d/%d)", i+1, retries)
		if i < retries-1 {
			time.Sleep(2 * time.Second)
		}
	}
	if err != nil {
		return db, fmt.Errorf("ping database: %w", err)
	}

	logrus.WithField("database", cfg.DB.Name).Info("Connected to MySQL")
	return db, nil
}

// Migrate creates or updates the five shop tables.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Product{},
		&models.Customer{},
		&models.Sale{},
		&models.ScrapGold{},
		&models.SettingsRecord{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	logrus.Info("Database schema synced")
	return nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Error("Error getting underlying sql.DB")
		return
	}
	if err := sqlDB.Close(); err != nil {
		logrus.WithError(err).Error("Error closing database connection")
	}
}

func newLogger(level string) logger.Interface {
	lvl := logger.Warn
	switch level {
	case "silent":
		lvl = logger.Silent
	case "error":
		lvl = logger.Error
	case "info":
		lvl = logger.Info
	}

	return logger.New(logrus.StandardLogger(), logger.Config{
		SlowThreshold:             500 * time.Millisecond,
		LogLevel:                  lvl,
		IgnoreRecordNotFoundError: true,
	})
}
