package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// Setting is a key/value row for operator-tunable shop settings
type Setting struct {
	Key   string `gorm:"type:varchar(100);primaryKey"`
	Value string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Setting) TableName() string {
	return "settings"
}

// GormSettingRepository implements SettingRepository using GORM
type GormSettingRepository struct {
	db *gorm.DB
}

// NewGormSettingRepository creates a new GormSettingRepository
func NewGormSettingRepository(db *gorm.DB) *GormSettingRepository {
	return &GormSettingRepository{db: db}
}

// Get returns the value stored under key
func (r *GormSettingRepository) Get(ctx context.Context, key string) (string, error) {
	var setting Setting
	if err := r.db.WithContext(ctx).First(&setting, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", shared.ErrNotFound
		}
		return "", err
	}
	return setting.Value, nil
}

// Set stores value under key, overwriting any previous value.
// An empty key would upsert an unreachable row, so it is refused.
func (r *GormSettingRepository) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return shared.ErrInvalidInput
	}
	setting := Setting{Key: key, Value: value}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&setting).Error
}

// Ensure GormSettingRepository implements SettingRepository
var _ catalog.SettingRepository = (*GormSettingRepository)(nil)
