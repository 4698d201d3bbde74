package services

import (
	"errors"
	"fmt"

	"github.com/AP-CSE-2025/proctor-service/internal/models"
)

// Sentinel errors mapped to HTTP statuses by the handler layer.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrValidationFailed   = errors.New("validation failed")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrDuplicateRollNo    = errors.New("roll number already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidTransition  = errors.New("invalid status transition")
)

// TransitionError reports a rejected visit disposition change with both
// states so the client message can name them.
type TransitionError struct {
	From models.VisitAction
	To   models.VisitAction
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot transition visit from %s to %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

func NewTransitionError(from, to models.VisitAction) error {
	return &TransitionError{From: from, To: to}
}
