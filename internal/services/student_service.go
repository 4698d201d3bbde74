package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/AP-CSE-2025/proctor-service/internal/cache"
	"github.com/AP-CSE-2025/proctor-service/internal/models"
	"github.com/AP-CSE-2025/proctor-service/internal/repositories"
	"github.com/AP-CSE-2025/proctor-service/internal/validator"
)

type studentService struct {
	repo      repositories.Repository
	cache     *cache.CacheManager
	logger    *slog.Logger
	validator *validator.Validator
}

func NewStudentService(repo repositories.Repository, cacheManager *cache.CacheManager, logger *slog.Logger, validator *validator.Validator) StudentService {
	return &studentService{
		repo:      repo,
		cache:     cacheManager,
		logger:    logger,
		validator: validator,
	}
}

// Create persists the core row and, when present, the nested personal info
// in one transaction. The creating proctor becomes the assigned proctor.
func (s *studentService) Create(ctx context.Context, req *CreateStudentRequest, proctorID uint) (*StudentDetailResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	exists, err := s.repo.Student().ExistsByRollNumber(ctx, req.RollNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check roll number: %w", err)
	}
	if exists {
		return nil, ErrDuplicateRollNo
	}

	admission := req.AdmissionType
	if admission == "" {
		admission = models.AdmissionNormal
	}

	student := &models.StudentCore{
		RollNumber:    req.RollNumber,
		Name:          req.Name,
		Year:          req.Year,
		Department:    req.Department,
		Section:       req.Section,
		AdmissionType: admission,
		ProctorID:     &proctorID,
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Student().Create(ctx, student); err != nil {
			// Concurrent creates can race past the ExistsByRollNumber check.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateRollNo
			}
			return fmt.Errorf("failed to create student: %w", err)
		}
		if req.PersonalInfo == nil {
			return nil
		}
		info := &models.PersonalInfo{
			StudentID:     student.ID,
			DateOfBirth:   req.PersonalInfo.DateOfBirth,
			Gender:        req.PersonalInfo.Gender,
			Phone:         req.PersonalInfo.Phone,
			Email:         req.PersonalInfo.Email,
			Address:       req.PersonalInfo.Address,
			GuardianName:  req.PersonalInfo.GuardianName,
			GuardianPhone: req.PersonalInfo.GuardianPhone,
		}
		if err := tx.Student().CreatePersonalInfo(ctx, info); err != nil {
			return fmt.Errorf("failed to create personal info: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cache.InvalidateStudentCache(ctx, s.cache, student.ID)
	s.logger.Info("Student created", "student_id", student.ID, "roll_number", student.RollNumber, "proctor_id", proctorID)

	return s.GetByID(ctx, student.ID)
}

func (s *studentService) GetByID(ctx context.Context, id uint) (*StudentDetailResponse, error) {
	student, err := s.repo.Student().GetByIDWithRecords(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load student: %w", err)
	}
	return s.toDetail(student), nil
}

// GetForProctor hides unassigned students behind a plain not-found so the
// response does not leak which ids exist.
func (s *studentService) GetForProctor(ctx context.Context, id, proctorID uint) (*StudentDetailResponse, error) {
	detail, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail.ProctorID == nil || *detail.ProctorID != proctorID {
		return nil, ErrNotFound
	}
	return detail, nil
}

func (s *studentService) List(ctx context.Context, filters repositories.StudentFilters) (*StudentListResponse, error) {
	students, total, err := s.repo.Student().ListWithRecords(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return s.toList(students, total, filters), nil
}

func (s *studentService) ListForProctor(ctx context.Context, proctorID uint, filters repositories.StudentFilters) (*StudentListResponse, error) {
	filters.ProctorID = &proctorID
	return s.List(ctx, filters)
}

// ===== PROJECTION HELPERS =====

func (s *studentService) toDetail(student *models.StudentCore) *StudentDetailResponse {
	return &StudentDetailResponse{
		StudentCore:       student,
		AverageGPA:        averageGPA(student.AcademicScores),
		AverageAttendance: latestAttendance(student.Attendance),
		LowSubjectCount:   lowSubjectCount(student.MidtermScores),
	}
}

func (s *studentService) toList(students []*models.StudentCore, total int64, filters repositories.StudentFilters) *StudentListResponse {
	summaries := make([]StudentSummary, 0, len(students))
	for _, st := range students {
		summaries = append(summaries, StudentSummary{
			ID:                st.ID,
			RollNumber:        st.RollNumber,
			Name:              st.Name,
			Year:              st.Year,
			Department:        st.Department,
			Section:           st.Section,
			AdmissionType:     st.AdmissionType,
			ProctorID:         st.ProctorID,
			AverageGPA:        averageGPA(st.AcademicScores),
			AverageAttendance: latestAttendance(st.Attendance),
			LowSubjectCount:   lowSubjectCount(st.MidtermScores),
		})
	}

	page, size := pageFromFilters(filters.Limit, filters.Offset)
	return &StudentListResponse{
		Students: summaries,
		Total:    total,
		Page:     page,
		Size:     size,
	}
}

// pageFromFilters recovers 1-based page numbers from limit/offset.
func pageFromFilters(limit, offset int) (page, size int) {
	if limit <= 0 {
		limit = 20
	}
	return offset/limit + 1, limit
}
