package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AP-CSE-2025/proctor-service/internal/cache"
	"github.com/AP-CSE-2025/proctor-service/internal/models"
	"github.com/AP-CSE-2025/proctor-service/internal/repositories"
)

type VisitLogPostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewVisitLogPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.VisitLogRepository {
	return &VisitLogPostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cacheManager,
	}
}

func (v *VisitLogPostgreSQL) Create(ctx context.Context, visit *models.VisitLog) error {
	if err := v.db.WithContext(ctx).Create(visit).Error; err != nil {
		return fmt.Errorf("failed to create visit log: %w", err)
	}
	cache.InvalidateDashboardCache(ctx, v.cacheManager)
	return nil
}

func (v *VisitLogPostgreSQL) GetByID(ctx context.Context, id uint) (*models.VisitLog, error) {
	var visit models.VisitLog
	err := v.db.WithContext(ctx).
		Preload("Student").
		First(&visit, id).Error
	if err != nil {
		return nil, err
	}
	return &visit, nil
}

// GetByIDForUpdate locks the row until the surrounding transaction ends.
// Must be called from inside WithTransaction.
func (v *VisitLogPostgreSQL) GetByIDForUpdate(ctx context.Context, id uint) (*models.VisitLog, error) {
	var visit models.VisitLog
	err := v.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&visit, id).Error
	if err != nil {
		return nil, err
	}
	return &visit, nil
}

func (v *VisitLogPostgreSQL) List(ctx context.Context, filters repositories.VisitLogFilters) ([]*models.VisitLog, int64, error) {
	query := v.db.WithContext(ctx).Model(&models.VisitLog{})
	query = v.helpers.ApplyVisitLogFilters(query, filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count visit logs: %w", err)
	}

	var visits []*models.VisitLog
	query = v.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)
	if err := query.Preload("Student").Find(&visits).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list visit logs: %w", err)
	}

	return visits, total, nil
}

func (v *VisitLogPostgreSQL) Update(ctx context.Context, visit *models.VisitLog) error {
	if err := v.db.WithContext(ctx).Save(visit).Error; err != nil {
		return fmt.Errorf("failed to update visit log: %w", err)
	}
	cache.InvalidateDashboardCache(ctx, v.cacheManager)
	return nil
}
