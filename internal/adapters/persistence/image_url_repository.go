package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/imagecache"
)

// GormImageURLRepository implements imagecache.Store using GORM
type GormImageURLRepository struct {
	db *gorm.DB
}

// NewGormImageURLRepository creates a new GORM image URL repository
func NewGormImageURLRepository(db *gorm.DB) *GormImageURLRepository {
	return &GormImageURLRepository{db: db}
}

// Get retrieves the cached URL for fileName
func (r *GormImageURLRepository) Get(ctx context.Context, fileName string) (string, bool, error) {
	var model ImageURLModel
	result := r.db.WithContext(ctx).Where("file_name = ?", fileName).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to find image url: %w", result.Error)
	}
	return model.URL, true, nil
}

// Put inserts the entry unless the file name is already cached
func (r *GormImageURLRepository) Put(ctx context.Context, entry imagecache.Entry) error {
	if entry.Key == "" {
		return fmt.Errorf("image file name is required")
	}

	model := ImageURLModel{
		FileName:  entry.Key,
		URL:       entry.URL,
		CreatedAt: entry.CreatedAt,
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&model)
	if result.Error != nil {
		return fmt.Errorf("failed to save image url: %w", result.Error)
	}
	return nil
}

// Count returns the number of cached URLs
func (r *GormImageURLRepository) Count(ctx context.Context) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ImageURLModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count image urls: %w", err)
	}
	return int(count), nil
}

// Close releases the underlying connection pool
func (r *GormImageURLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
