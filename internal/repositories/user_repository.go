package repositories

import (
	"context"

	"github.com/AP-CSE-2025/proctor-service/internal/models"
)

// UserRepository covers users plus the 1:1 HOD side tables.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error

	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountByRole(ctx context.Context, role models.UserRole) (int64, error)

	// HOD profile extension
	CreateHODInfo(ctx context.Context, info *models.HODInfo) error
	GetHODInfo(ctx context.Context, userID uint) (*models.HODInfo, error)
	UpdateHODInfo(ctx context.Context, info *models.HODInfo) error
}

// AvailabilityRepository manages the per-HOD availability record.
type AvailabilityRepository interface {
	Create(ctx context.Context, availability *models.HODAvailability) error
	GetByUserID(ctx context.Context, userID uint) (*models.HODAvailability, error)
	Update(ctx context.Context, availability *models.HODAvailability) error
}

// TodoRepository is strictly owner-scoped: every read and write carries the
// owning user id so one user can never touch another's tasks.
type TodoRepository interface {
	Create(ctx context.Context, task *models.ToDoTask) error
	GetByIDAndUser(ctx context.Context, id, userID uint) (*models.ToDoTask, error)
	ListByUser(ctx context.Context, userID uint, filters TodoFilters) ([]*models.ToDoTask, int64, error)
	Update(ctx context.Context, task *models.ToDoTask) error
	Delete(ctx context.Context, id, userID uint) error
}
