package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/AP-CSE-2025/proctor-service/internal/models"
	"github.com/AP-CSE-2025/proctor-service/internal/services"
	"github.com/AP-CSE-2025/proctor-service/internal/utils"
)

func testBaseHandler(t *testing.T) *BaseHandler {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	h := NewBaseHandler(logger)
	return &h
}

func TestHandleServiceErrorStatuses(t *testing.T) {
	h := testBaseHandler(t)

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", services.ErrNotFound, http.StatusNotFound},
		{"invalid credentials", services.ErrInvalidCredentials, http.StatusUnauthorized},
		{"forbidden", services.ErrForbidden, http.StatusForbidden},
		{"duplicate email", services.ErrDuplicateEmail, http.StatusConflict},
		{"duplicate roll number", services.ErrDuplicateRollNo, http.StatusConflict},
		{"rejected transition", services.NewTransitionError(models.ActionCompleted, models.ActionScheduled), http.StatusBadRequest},
		{"validation failed", services.ErrValidationFailed, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			h.handleServiceError(c, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestHandleServiceErrorTransitionNamesStates(t *testing.T) {
	h := testBaseHandler(t)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPut, "/", nil)

	h.handleServiceError(c, services.NewTransitionError(models.ActionCompleted, models.ActionScheduled))

	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.StatusCode != http.StatusBadRequest {
		t.Errorf("status_code = %d, want 400", body.StatusCode)
	}
	if !strings.Contains(body.Message, string(models.ActionCompleted)) || !strings.Contains(body.Message, string(models.ActionScheduled)) {
		t.Errorf("message %q should name both states", body.Message)
	}
}
