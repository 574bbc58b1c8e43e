package repository

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gold-pos/internal/models"
)

const settingsRowID = 1

type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the stored document, or ErrNotFound when nothing was saved yet.
func (r *SettingsRepository) Get(ctx context.Context) (*models.AppSettings, error) {
	var rec models.SettingsRecord
	if err := conn(ctx, r.db).First(&rec, settingsRowID).Error; err != nil {
		return nil, notFound(err)
	}
	s := rec.Config.Data()
	return &s, nil
}

// Save upserts the single row.
func (r *SettingsRepository) Save(ctx context.Context, s *models.AppSettings) error {
	rec := models.SettingsRecord{
		ID:     settingsRowID,
		Config: datatypes.NewJSONType(*s),
	}
	return conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"config"}),
	}).Create(&rec).Error
}
