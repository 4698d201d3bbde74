package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/AP-CSE-2025/proctor-service/internal/cache"
	"github.com/AP-CSE-2025/proctor-service/internal/models"
	"github.com/AP-CSE-2025/proctor-service/internal/repositories"
	"github.com/AP-CSE-2025/proctor-service/internal/validator"
)

type availabilityService struct {
	repo      repositories.Repository
	cache     *cache.CacheManager
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAvailabilityService(repo repositories.Repository, cacheManager *cache.CacheManager, logger *slog.Logger, validator *validator.Validator) AvailabilityService {
	return &availabilityService{
		repo:      repo,
		cache:     cacheManager,
		logger:    logger,
		validator: validator,
	}
}

// ===== AVAILABILITY =====

func (s *availabilityService) GetAvailability(ctx context.Context, userID uint) (*models.HODAvailability, error) {
	availability, err := s.repo.Availability().GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load availability: %w", err)
	}
	return availability, nil
}

func (s *availabilityService) UpdateAvailability(ctx context.Context, userID uint, req *UpdateAvailabilityRequest) (*models.HODAvailability, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	availability, err := s.GetAvailability(ctx, userID)
	if err != nil {
		return nil, err
	}

	availability.Available = *req.Available
	if req.StatusMessage != nil {
		availability.StatusMessage = *req.StatusMessage
	}
	// EstimatedReturn is cleared when omitted: a fresh status stands alone.
	availability.EstimatedReturn = req.EstimatedReturn

	if err := s.repo.Availability().Update(ctx, availability); err != nil {
		return nil, fmt.Errorf("failed to update availability: %w", err)
	}

	cache.InvalidateAvailabilityCache(ctx, s.cache, userID)
	s.logger.Info("Availability updated", "user_id", userID, "available", availability.Available)
	return availability, nil
}

// ===== HOD PROFILE =====

func (s *availabilityService) GetHODProfile(ctx context.Context, userID uint) (*HODProfileResponse, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleHOD {
		return nil, ErrForbidden
	}

	info, err := s.repo.User().GetHODInfo(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load hod info: %w", err)
	}

	resp := &HODProfileResponse{PublicUser: user.Public()}
	if info != nil {
		resp.Department = info.Department
		resp.Office = info.Office
		resp.Contact = info.Contact
	}
	return resp, nil
}

func (s *availabilityService) UpdateHODProfile(ctx context.Context, userID uint, req *UpdateHODProfileRequest) (*HODProfileResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleHOD {
		return nil, ErrForbidden
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if req.Name != nil {
			user.Name = *req.Name
			if err := tx.User().Update(ctx, user); err != nil {
				return fmt.Errorf("failed to update user: %w", err)
			}
		}

		info, err := tx.User().GetHODInfo(ctx, userID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("failed to load hod info: %w", err)
			}
			info = &models.HODInfo{UserID: userID}
			if err := tx.User().CreateHODInfo(ctx, info); err != nil {
				return fmt.Errorf("failed to create hod info: %w", err)
			}
		}

		if req.Department != nil {
			info.Department = *req.Department
		}
		if req.Office != nil {
			info.Office = *req.Office
		}
		if req.Contact != nil {
			info.Contact = *req.Contact
		}
		return tx.User().UpdateHODInfo(ctx, info)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("HOD profile updated", "user_id", userID)
	return s.GetHODProfile(ctx, userID)
}

// ===== PROCTOR PROFILE =====

func (s *availabilityService) GetProctorProfile(ctx context.Context, userID uint) (*models.PublicUser, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	public := user.Public()
	return &public, nil
}

func (s *availabilityService) UpdateProctorSettings(ctx context.Context, userID uint, req *UpdateProctorSettingsRequest) (*models.PublicUser, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.repo.User().Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("Proctor settings updated", "user_id", userID, "password_changed", req.Password != nil)
	public := user.Public()
	return &public, nil
}

func (s *availabilityService) getUser(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}
