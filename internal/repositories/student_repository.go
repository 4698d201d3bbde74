package repositories

import (
	"context"

	"github.com/AP-CSE-2025/proctor-service/internal/models"
)

// StudentRepository covers the student core row and its child tables.
type StudentRepository interface {
	Create(ctx context.Context, student *models.StudentCore) error
	CreatePersonalInfo(ctx context.Context, info *models.PersonalInfo) error

	// GetByID preloads personal info; GetByIDWithRecords additionally
	// preloads scores, attendance and extracurriculars for computed fields.
	GetByID(ctx context.Context, id uint) (*models.StudentCore, error)
	GetByIDWithRecords(ctx context.Context, id uint) (*models.StudentCore, error)
	GetByRollNumber(ctx context.Context, rollNumber string) (*models.StudentCore, error)

	List(ctx context.Context, filters StudentFilters) ([]*models.StudentCore, int64, error)
	ListWithRecords(ctx context.Context, filters StudentFilters) ([]*models.StudentCore, int64, error)

	Update(ctx context.Context, student *models.StudentCore) error
	ExistsByRollNumber(ctx context.Context, rollNumber string) (bool, error)
}

// VisitLogRepository manages visitor/appointment entries.
type VisitLogRepository interface {
	Create(ctx context.Context, visit *models.VisitLog) error
	GetByID(ctx context.Context, id uint) (*models.VisitLog, error)

	// GetByIDForUpdate locks the row for the duration of the surrounding
	// transaction so concurrent disposition changes serialize.
	GetByIDForUpdate(ctx context.Context, id uint) (*models.VisitLog, error)

	List(ctx context.Context, filters VisitLogFilters) ([]*models.VisitLog, int64, error)
	Update(ctx context.Context, visit *models.VisitLog) error
}

// DashboardRepository computes request-time aggregates; nothing is persisted.
type DashboardRepository interface {
	GetCounts(ctx context.Context, lowPerformerCutoff int) (*DashboardCounts, error)
}
