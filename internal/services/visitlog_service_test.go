package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/AP-CSE-2025/proctor-service/internal/events"
	"github.com/AP-CSE-2025/proctor-service/internal/models"
)

func newVisitLogService(t *testing.T) (VisitLogService, *fakeRepo, *events.MockEventPublisher) {
	t.Helper()
	repo := newFakeRepo()
	publisher := events.NewMockEventPublisher(testLogger())
	svc := NewVisitLogService(repo, publisher, testLogger(), testValidator())
	return svc, repo, publisher
}

func createVisit(t *testing.T, svc VisitLogService) *VisitLogResponse {
	t.Helper()
	visit, err := svc.Create(context.Background(), &CreateVisitRequest{
		VisitorName: "Ravi Kumar",
		VisitorRole: "Parent",
		Purpose:     "Discuss attendance",
	})
	if err != nil {
		t.Fatalf("create visit: %v", err)
	}
	return visit
}

func TestCreateVisitStartsQueued(t *testing.T) {
	svc, _, _ := newVisitLogService(t)

	visit := createVisit(t, svc)

	if visit.Status != models.VisitQueued {
		t.Errorf("status = %s, want %s", visit.Status, models.VisitQueued)
	}
	if visit.ActionTaken != models.ActionPending {
		t.Errorf("action = %s, want %s", visit.ActionTaken, models.ActionPending)
	}
	if visit.CheckInTime == nil {
		t.Error("check_in_time not stamped")
	}
	if len(visit.AllowedActions) != 3 {
		t.Errorf("allowed actions = %v, want all three", visit.AllowedActions)
	}
}

func TestGetVisitByID(t *testing.T) {
	svc, _, _ := newVisitLogService(t)
	created := createVisit(t, svc)

	visit, err := svc.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if visit.ID != created.ID {
		t.Errorf("id = %d, want %d", visit.ID, created.ID)
	}

	if _, err := svc.GetByID(context.Background(), 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCreateVisitUnknownStudent(t *testing.T) {
	svc, _, _ := newVisitLogService(t)

	missing := uint(99)
	_, err := svc.Create(context.Background(), &CreateVisitRequest{
		VisitorName: "Ravi Kumar",
		StudentID:   &missing,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestScheduleVisit(t *testing.T) {
	svc, _, publisher := newVisitLogService(t)
	visit := createVisit(t, svc)

	// 10:00 UTC is 15:30 on campus.
	when := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	updated, err := svc.UpdateStatus(context.Background(), visit.ID, &UpdateVisitStatusRequest{
		Action:        models.ActionScheduled,
		ScheduledTime: &when,
	})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}

	if updated.ActionTaken != models.ActionScheduled {
		t.Errorf("action = %s, want Scheduled", updated.ActionTaken)
	}
	if updated.Status != models.VisitPending {
		t.Errorf("status = %s, want Pending", updated.Status)
	}
	if updated.ScheduledTime == nil || *updated.ScheduledTime != "2026-03-14 15:30:00" {
		t.Errorf("scheduled_time = %v, want 2026-03-14 15:30:00", updated.ScheduledTime)
	}
	if !updated.AlertSent {
		t.Error("alert_sent not set after successful publish")
	}

	published := publisher.Published()
	if len(published) != 1 || published[0].EventType != events.EventVisitScheduled {
		t.Errorf("published = %+v, want one visit.scheduled event", published)
	}
}

func TestScheduleRequiresTime(t *testing.T) {
	svc, _, _ := newVisitLogService(t)
	visit := createVisit(t, svc)

	_, err := svc.UpdateStatus(context.Background(), visit.ID, &UpdateVisitStatusRequest{
		Action: models.ActionScheduled,
	})
	if !errors.Is(err, ErrValidationFailed) {
		t.Errorf("err = %v, want ErrValidationFailed", err)
	}
}

func TestRescheduleKeepsScheduledState(t *testing.T) {
	svc, _, _ := newVisitLogService(t)
	visit := createVisit(t, svc)

	first := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	if _, err := svc.UpdateStatus(context.Background(), visit.ID, &UpdateVisitStatusRequest{
		Action:        models.ActionScheduled,
		ScheduledTime: &first,
	}); err != nil {
		t.Fatalf("first schedule: %v", err)
	}

	second := time.Date(2026, 3, 15, 4, 30, 0, 0, time.UTC)
	updated, err := svc.UpdateStatus(context.Background(), visit.ID, &UpdateVisitStatusRequest{
		Action:        models.ActionScheduled,
		ScheduledTime: &second,
	})
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if *updated.ScheduledTime != "2026-03-15 10:00:00" {
		t.Errorf("scheduled_time = %s, want 2026-03-15 10:00:00", *updated.ScheduledTime)
	}
}

func TestCompleteVisitChecksIn(t *testing.T) {
	svc, _, publisher := newVisitLogService(t)
	visit := createVisit(t, svc)

	notes := "Met for 20 minutes"
	updated, err := svc.UpdateStatus(context.Background(), visit.ID, &UpdateVisitStatusRequest{
		Action:   models.ActionCompleted,
		HODNotes: &notes,
	})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}

	if updated.Status != models.VisitCheckedIn {
		t.Errorf("status = %s, want CheckedIn", updated.Status)
	}
	if updated.EndTime == nil {
		t.Error("end_time not stamped")
	}
	if updated.HODNotes != notes {
		t.Errorf("hod_notes = %q, want %q", updated.HODNotes, notes)
	}
	if len(updated.AllowedActions) != 0 {
		t.Errorf("allowed actions = %v, want none for terminal state", updated.AllowedActions)
	}

	published := publisher.Published()
	if len(published) != 1 || published[0].EventType != events.EventVisitCompleted {
		t.Errorf("published = %+v, want one visit.completed event", published)
	}
}

func TestTerminalStatesRejectTransitions(t *testing.T) {
	tests := []struct {
		name     string
		terminal models.VisitAction
	}{
		{"completed", models.ActionCompleted},
		{"cancelled", models.ActionCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newVisitLogService(t)
			visit := createVisit(t, svc)

			if _, err := svc.UpdateStatus(context.Background(), visit.ID, &UpdateVisitStatusRequest{
				Action: tt.terminal,
			}); err != nil {
				t.Fatalf("move to terminal: %v", err)
			}

			when := time.Now()
			_, err := svc.UpdateStatus(context.Background(), visit.ID, &UpdateVisitStatusRequest{
				Action:        models.ActionScheduled,
				ScheduledTime: &when,
			})
			if !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("err = %v, want ErrInvalidTransition", err)
			}

			var transitionErr *TransitionError
			if !errors.As(err, &transitionErr) {
				t.Fatalf("err %v is not a TransitionError", err)
			}
			if transitionErr.From != tt.terminal {
				t.Errorf("From = %s, want %s", transitionErr.From, tt.terminal)
			}
			if !strings.Contains(err.Error(), string(tt.terminal)) {
				t.Errorf("error %q does not name the current state", err.Error())
			}
		})
	}
}

func TestFailedPublishLeavesAlertUnsent(t *testing.T) {
	svc, repo, publisher := newVisitLogService(t)
	visit := createVisit(t, svc)

	publisher.FailNext = true
	updated, err := svc.UpdateStatus(context.Background(), visit.ID, &UpdateVisitStatusRequest{
		Action: models.ActionCancelled,
	})
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// The disposition change still committed.
	if updated.ActionTaken != models.ActionCancelled {
		t.Errorf("action = %s, want Cancelled", updated.ActionTaken)
	}

	stored, err := repo.visits.GetByID(context.Background(), visit.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.AlertSent {
		t.Error("alert_sent = true after failed publish")
	}
}

func TestListPendingFiltersByDisposition(t *testing.T) {
	svc, _, _ := newVisitLogService(t)

	first := createVisit(t, svc)
	createVisit(t, svc)

	if _, err := svc.UpdateStatus(context.Background(), first.ID, &UpdateVisitStatusRequest{
		Action: models.ActionCancelled,
	}); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	pending, err := svc.ListPending(context.Background())
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if pending.Total != 1 {
		t.Errorf("pending total = %d, want 1", pending.Total)
	}
	for _, v := range pending.Visits {
		if v.ActionTaken != models.ActionPending {
			t.Errorf("visit %d action = %s, want Pending", v.ID, v.ActionTaken)
		}
	}
}
