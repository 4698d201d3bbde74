package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AP-CSE-2025/proctor-service/internal/services"
	"github.com/AP-CSE-2025/proctor-service/internal/utils"
)

// ProfileHandler serves the HOD availability/profile routes and the proctor
// profile/settings routes. All operations act on the authenticated caller.
type ProfileHandler struct {
	BaseHandler
	availabilityService services.AvailabilityService
}

func NewProfileHandler(availabilityService services.AvailabilityService, logger utils.Logger) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:         NewBaseHandler(logger),
		availabilityService: availabilityService,
	}
}

// GetAvailability returns the caller's availability record
// @Summary Get own availability
// @Tags hod
// @Produce json
// @Success 200 {object} Response{data=models.HODAvailability}
// @Failure 404 {object} ErrorResponse
// @Router /hod/availability [get]
func (h *ProfileHandler) GetAvailability(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		h.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	availability, err := h.availabilityService.GetAvailability(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.OK(c, "Availability fetched", availability)
}

// UpdateAvailability updates the caller's availability record
// @Summary Update own availability
// @Tags hod
// @Accept json
// @Produce json
// @Param availability body services.UpdateAvailabilityRequest true "Availability data"
// @Success 200 {object} Response{data=models.HODAvailability}
// @Failure 422 {object} ErrorResponse
// @Router /hod/availability [put]
func (h *ProfileHandler) UpdateAvailability(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		h.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	var req services.UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request payload", err.Error())
		return
	}

	availability, err := h.availabilityService.UpdateAvailability(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.OK(c, "Availability updated", availability)
}

// GetHODProfile returns the caller's HOD profile
// @Summary Get HOD profile
// @Tags hod
// @Produce json
// @Success 200 {object} Response{data=services.HODProfileResponse}
// @Router /hod/profile [get]
func (h *ProfileHandler) GetHODProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		h.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	profile, err := h.availabilityService.GetHODProfile(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.OK(c, "Profile fetched", profile)
}

// UpdateHODProfile updates the caller's HOD profile
// @Summary Update HOD profile
// @Tags hod
// @Accept json
// @Produce json
// @Param profile body services.UpdateHODProfileRequest true "Profile data"
// @Success 200 {object} Response{data=services.HODProfileResponse}
// @Router /hod/profile [put]
func (h *ProfileHandler) UpdateHODProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		h.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	var req services.UpdateHODProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request payload", err.Error())
		return
	}

	profile, err := h.availabilityService.UpdateHODProfile(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.OK(c, "Profile updated", profile)
}

// GetProctorProfile returns the caller's public user projection
// @Summary Get proctor profile
// @Tags proctor
// @Produce json
// @Success 200 {object} Response{data=models.PublicUser}
// @Router /proctor/profile [get]
func (h *ProfileHandler) GetProctorProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		h.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	profile, err := h.availabilityService.GetProctorProfile(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.OK(c, "Profile fetched", profile)
}

// UpdateProctorSettings updates the caller's name or password
// @Summary Update proctor settings
// @Tags proctor
// @Accept json
// @Produce json
// @Param settings body services.UpdateProctorSettingsRequest true "Settings data"
// @Success 200 {object} Response{data=models.PublicUser}
// @Failure 422 {object} ErrorResponse
// @Router /proctor/settings/update [put]
func (h *ProfileHandler) UpdateProctorSettings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		h.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	var req services.UpdateProctorSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request payload", err.Error())
		return
	}

	h.LogRequest(c, "Updating proctor settings", "user_id", userID)

	profile, err := h.availabilityService.UpdateProctorSettings(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.OK(c, "Settings updated", profile)
}
