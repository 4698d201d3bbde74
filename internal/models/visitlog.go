package models

import (
	"time"

	"gorm.io/gorm"
)

// VisitStatus is the queue-intake state of a visitor entry.
type VisitStatus string

const (
	VisitQueued    VisitStatus = "Queued"
	VisitPending   VisitStatus = "Pending"
	VisitCheckedIn VisitStatus = "CheckedIn"
)

// VisitAction is the disposition state of a visit, moved by the HOD.
type VisitAction string

const (
	ActionPending   VisitAction = "Pending"
	ActionScheduled VisitAction = "Scheduled"
	ActionCancelled VisitAction = "Cancelled"
	ActionCompleted VisitAction = "Completed"
)

// visitTransitions is the single canonical disposition table. Scheduled
// allows a self-transition so a visit can be rescheduled; Completed and
// Cancelled are terminal.
var visitTransitions = map[VisitAction][]VisitAction{
	ActionPending:   {ActionScheduled, ActionCompleted, ActionCancelled},
	ActionScheduled: {ActionScheduled, ActionCompleted, ActionCancelled},
	ActionCompleted: {},
	ActionCancelled: {},
}

// AllowedTransitions returns the targets reachable from the given state.
// An unrecognized state falls back to allowing all three targets.
func AllowedTransitions(from VisitAction) []VisitAction {
	allowed, ok := visitTransitions[from]
	if !ok {
		return []VisitAction{ActionScheduled, ActionCompleted, ActionCancelled}
	}
	return allowed
}

// CanTransition reports whether a disposition change from -> to is allowed.
func CanTransition(from, to VisitAction) bool {
	for _, allowed := range AllowedTransitions(from) {
		if allowed == to {
			return true
		}
	}
	return false
}

// VisitLog is one visitor/appointment entry. StudentID is a weak reference:
// walk-in visitors need not relate to any student.
type VisitLog struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	VisitorName string      `json:"visitor_name" gorm:"not null;size:100"`
	VisitorRole string      `json:"visitor_role" gorm:"size:50"`
	StudentID   *uint       `json:"student_id" gorm:"index"`
	Purpose     string      `json:"purpose" gorm:"type:text"`
	Status      VisitStatus `json:"status" gorm:"size:20;default:Queued;index"`
	ActionTaken VisitAction `json:"action_taken" gorm:"size:20;default:Pending;index"`

	CheckInTime   *time.Time `json:"check_in_time"`
	EndTime       *time.Time `json:"end_time"`
	ScheduledTime *string    `json:"scheduled_time" gorm:"size:30"`
	HODNotes      string     `json:"hod_notes" gorm:"type:text"`
	AlertSent     bool       `json:"alert_sent" gorm:"default:false"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Student *StudentCore `json:"student,omitempty" gorm:"foreignKey:StudentID"`
}

func (VisitLog) TableName() string {
	return "visit_logs"
}
