package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/AP-CSE-2025/proctor-service/internal/models"
	"github.com/AP-CSE-2025/proctor-service/internal/repositories"
)

type DashboardPostgreSQL struct {
	db *gorm.DB
}

func NewDashboardPostgreSQL(db *gorm.DB) repositories.DashboardRepository {
	return &DashboardPostgreSQL{db: db}
}

// GetCounts computes the dashboard aggregates at request time. The low
// performer count is students with at least one midterm row below the
// cutoff.
func (d *DashboardPostgreSQL) GetCounts(ctx context.Context, lowPerformerCutoff int) (*repositories.DashboardCounts, error) {
	counts := &repositories.DashboardCounts{}

	if err := d.db.WithContext(ctx).Model(&models.StudentCore{}).Count(&counts.TotalStudents).Error; err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}

	if err := d.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ?", models.RoleProctor).
		Count(&counts.TotalProctors).Error; err != nil {
		return nil, fmt.Errorf("failed to count proctors: %w", err)
	}

	if err := d.db.WithContext(ctx).
		Model(&models.VisitLog{}).
		Where("action_taken = ?", models.ActionPending).
		Count(&counts.PendingVisits).Error; err != nil {
		return nil, fmt.Errorf("failed to count pending visits: %w", err)
	}

	if err := d.db.WithContext(ctx).
		Model(&models.VisitLog{}).
		Where("action_taken = ?", models.ActionScheduled).
		Count(&counts.ScheduledVisits).Error; err != nil {
		return nil, fmt.Errorf("failed to count scheduled visits: %w", err)
	}

	if err := d.db.WithContext(ctx).
		Model(&models.MidtermScore{}).
		Where("internal_marks < ?", lowPerformerCutoff).
		Distinct("student_id").
		Count(&counts.LowPerformers).Error; err != nil {
		return nil, fmt.Errorf("failed to count low performers: %w", err)
	}

	return counts, nil
}
