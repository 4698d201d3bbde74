package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AP-CSE-2025/proctor-service/internal/services"
	"github.com/AP-CSE-2025/proctor-service/internal/utils"
)

type DashboardHandler struct {
	BaseHandler
	dashboardService services.DashboardService
}

func NewDashboardHandler(dashboardService services.DashboardService, logger utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler:      NewBaseHandler(logger),
		dashboardService: dashboardService,
	}
}

// GetDashboard returns department-wide counts plus the caller's availability
// @Summary HOD dashboard
// @Tags hod
// @Produce json
// @Success 200 {object} Response{data=services.DashboardResponse}
// @Router /hod/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		h.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	dashboard, err := h.dashboardService.GetDashboard(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.OK(c, "Dashboard fetched", dashboard)
}
