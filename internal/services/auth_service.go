package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/AP-CSE-2025/proctor-service/internal/auth"
	"github.com/AP-CSE-2025/proctor-service/internal/models"
	"github.com/AP-CSE-2025/proctor-service/internal/repositories"
	"github.com/AP-CSE-2025/proctor-service/internal/validator"
)

const defaultAvailabilityMessage = "Availability not set"

type authService struct {
	repo      repositories.Repository
	tokens    *auth.TokenManager
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAuthService(repo repositories.Repository, tokens *auth.TokenManager, logger *slog.Logger, validator *validator.Validator) AuthService {
	return &authService{
		repo:      repo,
		tokens:    tokens,
		logger:    logger,
		validator: validator,
	}
}

// Signup creates the account and, for HODs, the profile and availability
// side rows in the same transaction. A failure on any row leaves nothing
// behind.
func (s *authService) Signup(ctx context.Context, req *SignupRequest) (*models.PublicUser, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	exists, err := s.repo.User().ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.User().Create(ctx, user); err != nil {
			// A concurrent signup can slip past the ExistsByEmail check and
			// hit the unique index instead.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateEmail
			}
			return fmt.Errorf("failed to create user: %w", err)
		}

		if user.Role != models.RoleHOD {
			return nil
		}

		info := &models.HODInfo{
			UserID:     user.ID,
			Department: req.Department,
			Office:     req.Office,
			Contact:    req.Contact,
		}
		if err := tx.User().CreateHODInfo(ctx, info); err != nil {
			return fmt.Errorf("failed to create hod info: %w", err)
		}

		availability := &models.HODAvailability{
			UserID:        user.ID,
			Available:     false,
			StatusMessage: defaultAvailabilityMessage,
		}
		if err := tx.Availability().Create(ctx, availability); err != nil {
			return fmt.Errorf("failed to create availability: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("User registered", "user_id", user.ID, "role", user.Role)

	public := user.Public()
	return &public, nil
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	user, err := s.repo.User().GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same failure as a wrong password so the response does not
			// reveal which emails are registered.
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Failed login attempt", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("User logged in", "user_id", user.ID, "role", user.Role)

	return &AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user.Public(),
	}, nil
}
