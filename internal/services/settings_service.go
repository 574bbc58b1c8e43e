package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"gold-pos/internal/models"
)

// SettingsService reads and writes the shop settings. The cache is optional.
type SettingsService struct {
	store SettingsStore
	cache SettingsCache
	log   *logrus.Entry
}

func NewSettingsService(store SettingsStore, cache SettingsCache) *SettingsService {
	return &SettingsService{
		store: store,
		cache: cache,
		log:   logrus.WithField("component", "settings"),
	}
}

// Get returns the stored settings upgraded to the current version, or nil when nothing
// has been saved yet.
func (s *SettingsService) Get(ctx context.Context) (*models.AppSettings, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			s.log.WithError(err).Warn("settings cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	settings, err := s.store.Get(ctx)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	if settings.Migrate() {
		s.log.WithField("version", settings.Version).Info("settings upgraded")
		if err := s.store.Save(ctx, settings); err != nil {
			s.log.WithError(err).Warn("failed to persist upgraded settings")
		}
	}

	s.remember(ctx, settings)
	return settings, nil
}

// Effective is Get with the defaults standing in for a shop that never saved settings.
func (s *SettingsService) Effective(ctx context.Context) (models.AppSettings, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return models.AppSettings{}, err
	}
	if settings == nil {
		return models.DefaultSettings(), nil
	}
	return *settings, nil
}

// Save replaces the whole document. Whatever the client sends is written as the current version.
// The cached copy is dropped and the next Get reloads it from the store.
func (s *SettingsService) Save(ctx context.Context, settings *models.AppSettings) error {
	settings.Version = models.SettingsVersion
	if err := s.store.Save(ctx, settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	s.forget(ctx)
	return nil
}

func (s *SettingsService) remember(ctx context.Context, settings *models.AppSettings) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, settings); err != nil {
		s.log.WithError(err).Warn("settings cache write failed")
	}
}

func (s *SettingsService) forget(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.WithError(err).Warn("settings cache invalidate failed")
	}
}
