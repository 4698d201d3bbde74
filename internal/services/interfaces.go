package services

import (
	"context"
	"time"

	"github.com/AP-CSE-2025/proctor-service/internal/models"
	"github.com/AP-CSE-2025/proctor-service/internal/repositories"
	"github.com/AP-CSE-2025/proctor-service/internal/validator"
)

// ===== REQUEST DTOs =====

// Request shapes live with their validation tags in the validator package.
type SignupRequest = validator.SignupRequest
type LoginRequest = validator.LoginRequest
type UpdateAvailabilityRequest = validator.UpdateAvailabilityRequest
type UpdateHODProfileRequest = validator.UpdateHODProfileRequest
type UpdateProctorSettingsRequest = validator.UpdateProctorSettingsRequest
type CreateStudentRequest = validator.CreateStudentRequest
type PersonalInfoRequest = validator.PersonalInfoRequest
type CreateTaskRequest = validator.CreateTaskRequest
type UpdateTaskRequest = validator.UpdateTaskRequest
type CreateVisitRequest = validator.CreateVisitRequest
type UpdateVisitStatusRequest = validator.UpdateVisitStatusRequest

// ===== RESPONSE DTOs =====

type AuthResponse struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expires_at"`
	User      models.PublicUser `json:"user"`
}

type HODProfileResponse struct {
	models.PublicUser
	Department string `json:"department"`
	Office     string `json:"office"`
	Contact    string `json:"contact"`
}

// StudentSummary is the list-row projection with request-time computed
// fields. Averages use the "N/A" sentinel when no backing rows exist.
type StudentSummary struct {
	ID            uint                 `json:"id"`
	RollNumber    string               `json:"roll_number"`
	Name          string               `json:"name"`
	Year          int                  `json:"year"`
	Department    string               `json:"department"`
	Section       string               `json:"section"`
	AdmissionType models.AdmissionType `json:"admission_type"`
	ProctorID     *uint                `json:"proctor_id"`

	AverageGPA        string `json:"average_gpa"`
	AverageAttendance string `json:"average_attendance"`
	LowSubjectCount   int    `json:"low_subject_count"`
}

type StudentListResponse struct {
	Students []StudentSummary `json:"students"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	Size     int              `json:"size"`
}

type StudentDetailResponse struct {
	*models.StudentCore
	AverageGPA        string `json:"average_gpa"`
	AverageAttendance string `json:"average_attendance"`
	LowSubjectCount   int    `json:"low_subject_count"`
}

type VisitLogResponse struct {
	*models.VisitLog
	StudentName       string               `json:"student_name,omitempty"`
	StudentRollNumber string               `json:"student_roll_number,omitempty"`
	AllowedActions    []models.VisitAction `json:"allowed_actions"`
}

type VisitLogListResponse struct {
	Visits []*VisitLogResponse `json:"visits"`
	Total  int64               `json:"total"`
	Page   int                 `json:"page"`
	Size   int                 `json:"size"`
}

type TaskListResponse struct {
	Tasks []*models.ToDoTask `json:"tasks"`
	Total int64              `json:"total"`
}

type DashboardResponse struct {
	Counts       repositories.DashboardCounts `json:"counts"`
	Availability *models.HODAvailability      `json:"availability,omitempty"`
	GeneratedAt  time.Time                    `json:"generated_at"`
}

// ===== SERVICE INTERFACES =====

type AuthService interface {
	Signup(ctx context.Context, req *SignupRequest) (*models.PublicUser, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
}

type AvailabilityService interface {
	GetAvailability(ctx context.Context, userID uint) (*models.HODAvailability, error)
	UpdateAvailability(ctx context.Context, userID uint, req *UpdateAvailabilityRequest) (*models.HODAvailability, error)

	GetHODProfile(ctx context.Context, userID uint) (*HODProfileResponse, error)
	UpdateHODProfile(ctx context.Context, userID uint, req *UpdateHODProfileRequest) (*HODProfileResponse, error)

	GetProctorProfile(ctx context.Context, userID uint) (*models.PublicUser, error)
	UpdateProctorSettings(ctx context.Context, userID uint, req *UpdateProctorSettingsRequest) (*models.PublicUser, error)
}

type StudentService interface {
	Create(ctx context.Context, req *CreateStudentRequest, proctorID uint) (*StudentDetailResponse, error)
	GetByID(ctx context.Context, id uint) (*StudentDetailResponse, error)

	// GetForProctor returns 404 when the student is not assigned to the
	// calling proctor.
	GetForProctor(ctx context.Context, id, proctorID uint) (*StudentDetailResponse, error)

	List(ctx context.Context, filters repositories.StudentFilters) (*StudentListResponse, error)
	ListForProctor(ctx context.Context, proctorID uint, filters repositories.StudentFilters) (*StudentListResponse, error)
}

type VisitLogService interface {
	Create(ctx context.Context, req *CreateVisitRequest) (*VisitLogResponse, error)
	GetByID(ctx context.Context, id uint) (*VisitLogResponse, error)
	List(ctx context.Context, filters repositories.VisitLogFilters) (*VisitLogListResponse, error)
	ListPending(ctx context.Context) (*VisitLogListResponse, error)
	UpdateStatus(ctx context.Context, id uint, req *UpdateVisitStatusRequest) (*VisitLogResponse, error)
}

type TodoService interface {
	Create(ctx context.Context, userID uint, req *CreateTaskRequest) (*models.ToDoTask, error)
	List(ctx context.Context, userID uint, filters repositories.TodoFilters) (*TaskListResponse, error)
	Update(ctx context.Context, id, userID uint, req *UpdateTaskRequest) (*models.ToDoTask, error)
	Delete(ctx context.Context, id, userID uint) error
}

type DashboardService interface {
	GetDashboard(ctx context.Context, hodUserID uint) (*DashboardResponse, error)
}

type ExportService interface {
	// ExportStudents renders the filtered student list (with computed
	// averages) into an xlsx workbook.
	ExportStudents(ctx context.Context, filters repositories.StudentFilters) ([]byte, error)
}

// ServiceManager aggregates the service getters plus lifecycle hooks.
type ServiceManager interface {
	Auth() AuthService
	Availability() AvailabilityService
	Student() StudentService
	VisitLog() VisitLogService
	Todo() TodoService
	Dashboard() DashboardService
	Export() ExportService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
