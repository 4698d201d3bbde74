package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/AP-CSE-2025/proctor-service/internal/services"
	"github.com/AP-CSE-2025/proctor-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
	}
}

// Signup registers a new HOD or proctor account
// @Summary Register account
// @Description Creates a user account; HOD signups also create the profile and availability rows
// @Tags auth
// @Accept json
// @Produce json
// @Param signup body services.SignupRequest true "Account data"
// @Success 201 {object} Response{data=models.PublicUser}
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req services.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request payload", err.Error())
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.Created(c, "Account created", user)
}

// Login authenticates a user and issues a token
// @Summary Login
// @Description Verifies credentials and returns a bearer token with the public user projection
// @Tags auth
// @Accept json
// @Produce json
// @Param login body services.LoginRequest true "Credentials"
// @Success 200 {object} Response{data=services.AuthResponse}
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request payload", err.Error())
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.OK(c, "Login successful", resp)
}
