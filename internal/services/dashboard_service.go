package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/AP-CSE-2025/proctor-service/internal/cache"
	"github.com/AP-CSE-2025/proctor-service/internal/repositories"
)

type dashboardService struct {
	repo   repositories.Repository
	cache  *cache.CacheManager
	logger *slog.Logger
}

func NewDashboardService(repo repositories.Repository, cacheManager *cache.CacheManager, logger *slog.Logger) DashboardService {
	return &dashboardService{
		repo:   repo,
		cache:  cacheManager,
		logger: logger,
	}
}

// GetDashboard returns department-wide counts plus the calling HOD's own
// availability record. Counts are cached briefly; availability is always
// read fresh since it is the record the HOD just may have changed.
func (s *dashboardService) GetDashboard(ctx context.Context, hodUserID uint) (*DashboardResponse, error) {
	var counts repositories.DashboardCounts
	err := s.cache.Stats.CacheOrExecute(ctx, "dashboard:counts", &counts, cache.StatsCacheConfig.TTL, func() (interface{}, error) {
		c, err := s.repo.Dashboard().GetCounts(ctx, LowPerformerCutoff)
		if err != nil {
			return nil, fmt.Errorf("failed to compute dashboard counts: %w", err)
		}
		return c, nil
	})
	if err != nil {
		return nil, err
	}

	resp := &DashboardResponse{
		Counts:      counts,
		GeneratedAt: time.Now(),
	}

	availability, err := s.repo.Availability().GetByUserID(ctx, hodUserID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load availability: %w", err)
	}
	resp.Availability = availability

	return resp, nil
}
