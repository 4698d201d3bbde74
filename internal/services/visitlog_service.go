package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/AP-CSE-2025/proctor-service/internal/events"
	"github.com/AP-CSE-2025/proctor-service/internal/models"
	"github.com/AP-CSE-2025/proctor-service/internal/repositories"
	"github.com/AP-CSE-2025/proctor-service/internal/validator"
)

// campusZone is the fixed display timezone for scheduled times. Incoming
// times are converted into it exactly once, at disposition time; the stored
// string is never re-parsed or re-shifted.
var campusZone = time.FixedZone("IST", 5*3600+30*60)

const scheduledTimeLayout = "2006-01-02 15:04:05"

type visitLogService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewVisitLogService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) VisitLogService {
	return &visitLogService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// Create registers a visitor at intake. New entries always start Queued
// with a Pending disposition.
func (s *visitLogService) Create(ctx context.Context, req *CreateVisitRequest) (*VisitLogResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	if req.StudentID != nil {
		if _, err := s.repo.Student().GetByID(ctx, *req.StudentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("failed to load student: %w", err)
		}
	}

	now := time.Now()
	visit := &models.VisitLog{
		VisitorName: req.VisitorName,
		VisitorRole: req.VisitorRole,
		StudentID:   req.StudentID,
		Purpose:     req.Purpose,
		Status:      models.VisitQueued,
		ActionTaken: models.ActionPending,
		CheckInTime: &now,
	}

	if err := s.repo.VisitLog().Create(ctx, visit); err != nil {
		return nil, fmt.Errorf("failed to create visit log: %w", err)
	}

	s.logger.Info("Visit registered", "visit_id", visit.ID, "visitor", visit.VisitorName)
	return s.toResponse(ctx, visit), nil
}

func (s *visitLogService) GetByID(ctx context.Context, id uint) (*VisitLogResponse, error) {
	visit, err := s.repo.VisitLog().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load visit log: %w", err)
	}
	return s.toResponse(ctx, visit), nil
}

func (s *visitLogService) List(ctx context.Context, filters repositories.VisitLogFilters) (*VisitLogListResponse, error) {
	visits, total, err := s.repo.VisitLog().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list visit logs: %w", err)
	}

	responses := make([]*VisitLogResponse, 0, len(visits))
	for _, v := range visits {
		responses = append(responses, s.toResponse(ctx, v))
	}

	page, size := pageFromFilters(filters.Limit, filters.Offset)
	return &VisitLogListResponse{
		Visits: responses,
		Total:  total,
		Page:   page,
		Size:   size,
	}, nil
}

func (s *visitLogService) ListPending(ctx context.Context) (*VisitLogListResponse, error) {
	pending := models.ActionPending
	return s.List(ctx, repositories.VisitLogFilters{
		ActionTaken: &pending,
		SortBy:      "created_at",
		SortOrder:   "asc",
	})
}

// UpdateStatus moves a visit along the disposition table. The row is locked
// for the duration of the transaction so concurrent updates serialize; the
// loser of the race sees the winner's state and gets a transition error if
// its move is no longer legal.
func (s *visitLogService) UpdateStatus(ctx context.Context, id uint, req *UpdateVisitStatusRequest) (*VisitLogResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}
	if req.Action == models.ActionScheduled && req.ScheduledTime == nil {
		return nil, fmt.Errorf("%w: scheduled_time is required when scheduling", ErrValidationFailed)
	}

	var visit *models.VisitLog
	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		var err error
		visit, err = tx.VisitLog().GetByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load visit log: %w", err)
		}

		if !models.CanTransition(visit.ActionTaken, req.Action) {
			return NewTransitionError(visit.ActionTaken, req.Action)
		}

		visit.ActionTaken = req.Action
		if req.HODNotes != nil {
			visit.HODNotes = *req.HODNotes
		}

		switch req.Action {
		case models.ActionScheduled:
			formatted := req.ScheduledTime.In(campusZone).Format(scheduledTimeLayout)
			visit.ScheduledTime = &formatted
			visit.Status = models.VisitPending
		case models.ActionCompleted:
			now := time.Now()
			visit.Status = models.VisitCheckedIn
			visit.EndTime = &now
		case models.ActionCancelled:
			now := time.Now()
			visit.EndTime = &now
		}

		return tx.VisitLog().Update(ctx, visit)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Visit disposition updated", "visit_id", visit.ID, "action", visit.ActionTaken)
	s.publishAlert(ctx, visit)

	return s.toResponse(ctx, visit), nil
}

// publishAlert emits the disposition event and flips alert_sent only on a
// successful publish. A failed publish leaves the flag false for a retry
// sweep; the disposition change itself already committed.
func (s *visitLogService) publishAlert(ctx context.Context, visit *models.VisitLog) {
	eventType := ""
	switch visit.ActionTaken {
	case models.ActionScheduled:
		eventType = events.EventVisitScheduled
	case models.ActionCompleted:
		eventType = events.EventVisitCompleted
	case models.ActionCancelled:
		eventType = events.EventVisitCancelled
	default:
		return
	}

	event := events.VisitAlertEvent{
		EventType:     eventType,
		VisitID:       visit.ID,
		VisitorName:   visit.VisitorName,
		StudentID:     visit.StudentID,
		ActionTaken:   visit.ActionTaken,
		ScheduledTime: visit.ScheduledTime,
		OccurredAt:    time.Now(),
	}

	if err := s.publisher.PublishVisitAlert(ctx, event); err != nil {
		s.logger.Error("Failed to publish visit alert", "visit_id", visit.ID, "error", err)
		return
	}

	visit.AlertSent = true
	if err := s.repo.VisitLog().Update(ctx, visit); err != nil {
		s.logger.Error("Failed to record alert flag", "visit_id", visit.ID, "error", err)
	}
}

func (s *visitLogService) toResponse(ctx context.Context, visit *models.VisitLog) *VisitLogResponse {
	resp := &VisitLogResponse{
		VisitLog:       visit,
		AllowedActions: models.AllowedTransitions(visit.ActionTaken),
	}

	if visit.Student != nil {
		resp.StudentName = visit.Student.Name
		resp.StudentRollNumber = visit.Student.RollNumber
	} else if visit.StudentID != nil {
		if student, err := s.repo.Student().GetByID(ctx, *visit.StudentID); err == nil {
			resp.StudentName = student.Name
			resp.StudentRollNumber = student.RollNumber
		}
	}
	return resp
}
