package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Ecclesia-Lucis/LightPath/internal/models"
	"github.com/Ecclesia-Lucis/LightPath/internal/validators"
	"gorm.io/gorm"
)

// ServerStartRepository handles database operations for boot records
type ServerStartRepository struct {
	db *gorm.DB
}

// NewServerStartRepository creates a new server start repository instance
func NewServerStartRepository(db *gorm.DB) *ServerStartRepository {
	return &ServerStartRepository{db: db}
}

// Create inserts a new boot record
func (r *ServerStartRepository) Create(ctx context.Context, start *models.ServerStart) error {
	if start == nil {
		return fmt.Errorf("server start cannot be nil")
	}
	if err := validators.ValidateUUID(start.ID, "id"); err != nil {
		return fmt.Errorf("invalid server start: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(start).Error; err != nil {
		return fmt.Errorf("failed to create server start: %w", err)
	}

	return nil
}

// FindLatest returns the most recent boot record
// Returns nil if the table is empty
func (r *ServerStartRepository) FindLatest(ctx context.Context) (*models.ServerStart, error) {
	var start models.ServerStart
	if err := r.db.WithContext(ctx).
		Order("started_at DESC").
		First(&start).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find latest server start: %w", err)
	}

	return &start, nil
}

// Count returns the total number of boot records
func (r *ServerStartRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ServerStart{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count server starts: %w", err)
	}

	return count, nil
}

// CleanupOlderThan removes boot records that started before cutoff
// Returns the number of records deleted
func (r *ServerStartRepository) CleanupOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("started_at < ?", cutoff.UTC()).
		Delete(&models.ServerStart{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to cleanup server starts: %w", result.Error)
	}

	return result.RowsAffected, nil
}
