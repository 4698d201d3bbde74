package validator

import (
	"time"

	"github.com/AP-CSE-2025/proctor-service/internal/models"
)

// SignupRequest carries the fields for account creation. The password rule
// is enforced by the custom strong_password validator.
type SignupRequest struct {
	Name     string          `json:"name" validate:"required,person_name"`
	Email    string          `json:"email" validate:"required,email,max=255"`
	Password string          `json:"password" validate:"required,strong_password"`
	Role     models.UserRole `json:"role" validate:"required,oneof=HOD Proctor"`

	// HOD-only profile fields, persisted to hod_info when role is HOD.
	Department string `json:"department" validate:"omitempty,max=100"`
	Office     string `json:"office" validate:"omitempty,max=100"`
	Contact    string `json:"contact" validate:"omitempty,max=50"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateAvailabilityRequest struct {
	Available       *bool      `json:"available" validate:"required"`
	StatusMessage   *string    `json:"status_message" validate:"omitempty,max=255"`
	EstimatedReturn *time.Time `json:"estimated_return"`
}

type UpdateHODProfileRequest struct {
	Name       *string `json:"name" validate:"omitempty,person_name"`
	Department *string `json:"department" validate:"omitempty,max=100"`
	Office     *string `json:"office" validate:"omitempty,max=100"`
	Contact    *string `json:"contact" validate:"omitempty,max=50"`
}

type UpdateProctorSettingsRequest struct {
	Name     *string `json:"name" validate:"omitempty,person_name"`
	Password *string `json:"password" validate:"omitempty,strong_password"`
}

// PersonalInfoRequest is the nested personal-info section of student
// creation.
type PersonalInfoRequest struct {
	DateOfBirth   *time.Time `json:"date_of_birth"`
	Gender        string     `json:"gender" validate:"omitempty,max=20"`
	Phone         string     `json:"phone" validate:"omitempty,max=20"`
	Email         string     `json:"email" validate:"omitempty,email"`
	Address       string     `json:"address" validate:"omitempty,max=500"`
	GuardianName  string     `json:"guardian_name" validate:"omitempty,max=100"`
	GuardianPhone string     `json:"guardian_phone" validate:"omitempty,max=20"`
}

type CreateStudentRequest struct {
	RollNumber    string               `json:"roll_number" validate:"required,roll_number"`
	Name          string               `json:"name" validate:"required,person_name"`
	Year          int                  `json:"year" validate:"required,min=1,max=4"`
	Department    string               `json:"department" validate:"required,max=100"`
	Section       string               `json:"section" validate:"omitempty,max=10"`
	AdmissionType models.AdmissionType `json:"admission_type" validate:"omitempty,oneof=NORMAL LATERAL"`
	PersonalInfo  *PersonalInfoRequest `json:"personal_info"`
}

type CreateTaskRequest struct {
	Title    string              `json:"title" validate:"required,min=1,max=200"`
	Priority models.TaskPriority `json:"priority" validate:"omitempty,oneof=high medium low"`
	DueDate  *time.Time          `json:"due_date"`
}

type UpdateTaskRequest struct {
	Title     *string              `json:"title" validate:"omitempty,min=1,max=200"`
	Priority  *models.TaskPriority `json:"priority" validate:"omitempty,oneof=high medium low"`
	DueDate   *time.Time           `json:"due_date"`
	Completed *bool                `json:"completed"`
}

type CreateVisitRequest struct {
	VisitorName string `json:"visitor_name" validate:"required,person_name"`
	VisitorRole string `json:"visitor_role" validate:"omitempty,max=50"`
	StudentID   *uint  `json:"student_id"`
	Purpose     string `json:"purpose" validate:"omitempty,max=1000"`
}

// UpdateVisitStatusRequest moves a visit along the disposition table.
// ScheduledTime is required when the action is Scheduled; the service
// normalizes it into the campus timezone before storage.
type UpdateVisitStatusRequest struct {
	Action        models.VisitAction `json:"action" validate:"required,oneof=Scheduled Completed Cancelled"`
	ScheduledTime *time.Time         `json:"scheduled_time"`
	HODNotes      *string            `json:"hod_notes" validate:"omitempty,max=2000"`
}
