package repositories

import (
	"time"

	"github.com/AP-CSE-2025/proctor-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type StudentFilters struct {
	Department    *string               `json:"department"`
	Year          *int                  `json:"year"`
	Section       *string               `json:"section"`
	AdmissionType *models.AdmissionType `json:"admission_type"`
	ProctorID     *uint                 `json:"proctor_id"`
	Query         string                `json:"query"` // matches name or roll number
	Limit         int                   `json:"limit"`
	Offset        int                   `json:"offset"`
	SortBy        string                `json:"sort_by"`    // "created_at", "name", "roll_number"
	SortOrder     string                `json:"sort_order"` // "asc", "desc"
}

type VisitLogFilters struct {
	Status      *models.VisitStatus `json:"status"`
	ActionTaken *models.VisitAction `json:"action_taken"`
	StudentID   *uint               `json:"student_id"`
	DateFrom    *time.Time          `json:"date_from"`
	DateTo      *time.Time          `json:"date_to"`
	Limit       int                 `json:"limit"`
	Offset      int                 `json:"offset"`
	SortBy      string              `json:"sort_by"`
	SortOrder   string              `json:"sort_order"`
}

type TodoFilters struct {
	Completed *bool                `json:"completed"`
	Priority  *models.TaskPriority `json:"priority"`
	Limit     int                  `json:"limit"`
	Offset    int                  `json:"offset"`
}

// ===== SHARED STATISTICS STRUCTS =====

// DashboardCounts carries the request-time aggregates for the HOD dashboard.
type DashboardCounts struct {
	TotalStudents   int64 `json:"total_students"`
	TotalProctors   int64 `json:"total_proctors"`
	PendingVisits   int64 `json:"pending_visits"`
	ScheduledVisits int64 `json:"scheduled_visits"`
	LowPerformers   int64 `json:"low_performers"`
}
