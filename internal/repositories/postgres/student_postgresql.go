package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/AP-CSE-2025/proctor-service/internal/cache"
	"github.com/AP-CSE-2025/proctor-service/internal/models"
	"github.com/AP-CSE-2025/proctor-service/internal/repositories"
)

type StudentPostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewStudentPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.StudentRepository {
	return &StudentPostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cacheManager,
	}
}

func (s *StudentPostgreSQL) Create(ctx context.Context, student *models.StudentCore) error {
	if err := s.db.WithContext(ctx).Create(student).Error; err != nil {
		return fmt.Errorf("failed to create student: %w", err)
	}
	cache.InvalidateStudentCache(ctx, s.cacheManager, student.ID)
	return nil
}

func (s *StudentPostgreSQL) CreatePersonalInfo(ctx context.Context, info *models.PersonalInfo) error {
	if err := s.db.WithContext(ctx).Create(info).Error; err != nil {
		return fmt.Errorf("failed to create personal info: %w", err)
	}
	return nil
}

func (s *StudentPostgreSQL) GetByID(ctx context.Context, id uint) (*models.StudentCore, error) {
	var student models.StudentCore
	err := s.db.WithContext(ctx).
		Preload("PersonalInfo").
		First(&student, id).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// GetByIDWithRecords loads the student with every child table needed for
// computed averages. Cached: the fold at the service layer is deterministic
// over these rows.
func (s *StudentPostgreSQL) GetByIDWithRecords(ctx context.Context, id uint) (*models.StudentCore, error) {
	cacheKey := fmt.Sprintf("id:%d", id)
	var student models.StudentCore

	err := s.cacheManager.Student.CacheOrExecute(ctx, cacheKey, &student, cache.StudentCacheConfig.TTL, func() (interface{}, error) {
		var row models.StudentCore
		err := s.db.WithContext(ctx).
			Preload("PersonalInfo").
			Preload("AcademicScores", func(db *gorm.DB) *gorm.DB {
				return db.Order("semester ASC")
			}).
			Preload("MidtermScores").
			Preload("LabExams").
			Preload("Attendance", func(db *gorm.DB) *gorm.DB {
				return db.Order("semester ASC")
			}).
			Preload("Extracurriculars").
			First(&row, id).Error
		if err != nil {
			return nil, err
		}
		return &row, nil
	})
	if err != nil {
		return nil, err
	}

	return &student, nil
}

func (s *StudentPostgreSQL) GetByRollNumber(ctx context.Context, rollNumber string) (*models.StudentCore, error) {
	var student models.StudentCore
	err := s.db.WithContext(ctx).
		Preload("PersonalInfo").
		Where("roll_number = ?", rollNumber).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *StudentPostgreSQL) List(ctx context.Context, filters repositories.StudentFilters) ([]*models.StudentCore, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.StudentCore{})
	query = s.helpers.ApplyStudentFilters(query, filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count students: %w", err)
	}

	var students []*models.StudentCore
	query = s.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)
	if err := query.Find(&students).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list students: %w", err)
	}

	return students, total, nil
}

func (s *StudentPostgreSQL) ListWithRecords(ctx context.Context, filters repositories.StudentFilters) ([]*models.StudentCore, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.StudentCore{})
	query = s.helpers.ApplyStudentFilters(query, filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count students: %w", err)
	}

	var students []*models.StudentCore
	query = s.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)
	err := query.
		Preload("AcademicScores").
		Preload("MidtermScores").
		Preload("Attendance", func(db *gorm.DB) *gorm.DB {
			return db.Order("semester ASC")
		}).
		Find(&students).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list students with records: %w", err)
	}

	return students, total, nil
}

func (s *StudentPostgreSQL) Update(ctx context.Context, student *models.StudentCore) error {
	if err := s.db.WithContext(ctx).Save(student).Error; err != nil {
		return fmt.Errorf("failed to update student: %w", err)
	}
	cache.InvalidateStudentCache(ctx, s.cacheManager, student.ID)
	return nil
}

func (s *StudentPostgreSQL) ExistsByRollNumber(ctx context.Context, rollNumber string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.StudentCore{}).
		Where("roll_number = ?", rollNumber).
		Count(&count).Error
	return count > 0, err
}
