package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/AP-CSE-2025/proctor-service/internal/cache"
	"github.com/AP-CSE-2025/proctor-service/internal/models"
	"github.com/AP-CSE-2025/proctor-service/internal/repositories"
)

type AvailabilityPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewAvailabilityPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.AvailabilityRepository {
	return &AvailabilityPostgreSQL{
		db:           db,
		cacheManager: cacheManager,
	}
}

func (a *AvailabilityPostgreSQL) Create(ctx context.Context, availability *models.HODAvailability) error {
	if err := a.db.WithContext(ctx).Create(availability).Error; err != nil {
		return fmt.Errorf("failed to create availability: %w", err)
	}
	return nil
}

// GetByUserID reads the availability record through the cache.
func (a *AvailabilityPostgreSQL) GetByUserID(ctx context.Context, userID uint) (*models.HODAvailability, error) {
	cacheKey := fmt.Sprintf("user:%d", userID)
	var availability models.HODAvailability

	err := a.cacheManager.Availability.CacheOrExecute(ctx, cacheKey, &availability, cache.AvailabilityCacheConfig.TTL, func() (interface{}, error) {
		var row models.HODAvailability
		if err := a.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error; err != nil {
			return nil, err
		}
		return &row, nil
	})
	if err != nil {
		return nil, err
	}

	return &availability, nil
}

func (a *AvailabilityPostgreSQL) Update(ctx context.Context, availability *models.HODAvailability) error {
	if err := a.db.WithContext(ctx).Save(availability).Error; err != nil {
		return fmt.Errorf("failed to update availability: %w", err)
	}
	cache.InvalidateAvailabilityCache(ctx, a.cacheManager, availability.UserID)
	return nil
}
