package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/AP-CSE-2025/proctor-service/internal/models"
	"github.com/AP-CSE-2025/proctor-service/internal/repositories"
	"github.com/AP-CSE-2025/proctor-service/internal/validator"
)

// todoService is owner-scoped end to end: the caller's user id rides along
// on every repository call, so a task id belonging to another user behaves
// exactly like a missing one.
type todoService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewTodoService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) TodoService {
	return &todoService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *todoService) Create(ctx context.Context, userID uint, req *CreateTaskRequest) (*models.ToDoTask, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	task := &models.ToDoTask{
		UserID:   userID,
		Title:    req.Title,
		Priority: priority,
		DueDate:  req.DueDate,
	}

	if err := s.repo.Todo().Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info("Task created", "task_id", task.ID, "user_id", userID)
	return task, nil
}

func (s *todoService) List(ctx context.Context, userID uint, filters repositories.TodoFilters) (*TaskListResponse, error) {
	tasks, total, err := s.repo.Todo().ListByUser(ctx, userID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return &TaskListResponse{Tasks: tasks, Total: total}, nil
}

func (s *todoService) Update(ctx context.Context, id, userID uint, req *UpdateTaskRequest) (*models.ToDoTask, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	task, err := s.repo.Todo().GetByIDAndUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load task: %w", err)
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}

	if err := s.repo.Todo().Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

func (s *todoService) Delete(ctx context.Context, id, userID uint) error {
	if err := s.repo.Todo().Delete(ctx, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	s.logger.Info("Task deleted", "task_id", id, "user_id", userID)
	return nil
}
