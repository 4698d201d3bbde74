package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AP-CSE-2025/proctor-service/internal/services"
	"github.com/AP-CSE-2025/proctor-service/internal/utils"
	"github.com/AP-CSE-2025/proctor-service/internal/validator"
)

// Response is the unified envelope returned by every endpoint.
type Response struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
	StatusCode int         `json:"status_code"`
}

// ErrorResponse is the envelope for failures; Details carries validation
// specifics when present.
type ErrorResponse struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
	StatusCode int         `json:"status_code"`
}

type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.LoggerFromContext(c.Request.Context(), h.logger).Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, msg string, err error, args ...any) {
	args = append(args, "error", err)
	utils.LoggerFromContext(c.Request.Context(), h.logger).Error(msg, args...)
}

func (h *BaseHandler) respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{
		Success:    true,
		Message:    message,
		Data:       data,
		Timestamp:  time.Now().UTC(),
		StatusCode: status,
	})
}

func (h *BaseHandler) OK(c *gin.Context, message string, data interface{}) {
	h.respond(c, http.StatusOK, message, data)
}

func (h *BaseHandler) Created(c *gin.Context, message string, data interface{}) {
	h.respond(c, http.StatusCreated, message, data)
}

func (h *BaseHandler) Error(c *gin.Context, status int, message string, details interface{}) {
	c.JSON(status, ErrorResponse{
		Success:    false,
		Message:    message,
		Details:    details,
		Timestamp:  time.Now().UTC(),
		StatusCode: status,
	})
}

func (h *BaseHandler) BadRequest(c *gin.Context, message string, details interface{}) {
	h.Error(c, http.StatusBadRequest, message, details)
}

// parseIDParam returns 0 after writing the error response, so callers can
// bail with a bare return.
func (h *BaseHandler) parseIDParam(c *gin.Context, name string) uint {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		h.BadRequest(c, "Invalid "+name+" parameter", raw)
		return 0
	}
	return uint(id)
}

// handleServiceError maps service-layer sentinels onto HTTP statuses.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		h.Error(c, http.StatusUnprocessableEntity, "Validation failed", validationErrs)
		return
	}

	switch {
	case errors.Is(err, services.ErrNotFound):
		h.Error(c, http.StatusNotFound, "Resource not found", nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		h.Error(c, http.StatusUnauthorized, "Invalid email or password", nil)
	case errors.Is(err, services.ErrUnauthorized):
		h.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
	case errors.Is(err, services.ErrForbidden):
		h.Error(c, http.StatusForbidden, "Forbidden", nil)
	case errors.Is(err, services.ErrDuplicateEmail):
		h.Error(c, http.StatusConflict, "Email already registered", nil)
	case errors.Is(err, services.ErrDuplicateRollNo):
		h.Error(c, http.StatusConflict, "Roll number already registered", nil)
	case errors.Is(err, services.ErrInvalidTransition):
		h.Error(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, services.ErrValidationFailed):
		h.Error(c, http.StatusUnprocessableEntity, err.Error(), nil)
	default:
		h.LogError(c, "Unhandled service error", err)
		h.Error(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}
