package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/AP-CSE-2025/proctor-service/internal/models"
	"github.com/AP-CSE-2025/proctor-service/internal/repositories"
)

type TodoPostgreSQL struct {
	db *gorm.DB
}

func NewTodoPostgreSQL(db *gorm.DB) repositories.TodoRepository {
	return &TodoPostgreSQL{db: db}
}

func (t *TodoPostgreSQL) Create(ctx context.Context, task *models.ToDoTask) error {
	if err := t.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// GetByIDAndUser scopes the lookup to the owner; a task belonging to another
// user surfaces as record-not-found.
func (t *TodoPostgreSQL) GetByIDAndUser(ctx context.Context, id, userID uint) (*models.ToDoTask, error) {
	var task models.ToDoTask
	err := t.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (t *TodoPostgreSQL) ListByUser(ctx context.Context, userID uint, filters repositories.TodoFilters) ([]*models.ToDoTask, int64, error) {
	query := t.db.WithContext(ctx).
		Model(&models.ToDoTask{}).
		Where("user_id = ?", userID)

	if filters.Completed != nil {
		query = query.Where("completed = ?", *filters.Completed)
	}
	if filters.Priority != nil {
		query = query.Where("priority = ?", *filters.Priority)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var tasks []*models.ToDoTask
	if err := query.Order("due_date ASC NULLS LAST, created_at DESC").Find(&tasks).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

func (t *TodoPostgreSQL) Update(ctx context.Context, task *models.ToDoTask) error {
	if err := t.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

func (t *TodoPostgreSQL) Delete(ctx context.Context, id, userID uint) error {
	result := t.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.ToDoTask{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
