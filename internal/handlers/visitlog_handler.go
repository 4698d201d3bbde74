package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AP-CSE-2025/proctor-service/internal/models"
	"github.com/AP-CSE-2025/proctor-service/internal/repositories"
	"github.com/AP-CSE-2025/proctor-service/internal/services"
	"github.com/AP-CSE-2025/proctor-service/internal/utils"
)

type VisitLogHandler struct {
	BaseHandler
	visitLogService services.VisitLogService
}

func NewVisitLogHandler(visitLogService services.VisitLogService, logger utils.Logger) *VisitLogHandler {
	return &VisitLogHandler{
		BaseHandler:     NewBaseHandler(logger),
		visitLogService: visitLogService,
	}
}

func parseVisitLogFilters(c *gin.Context) repositories.VisitLogFilters {
	filters := repositories.VisitLogFilters{
		SortBy:    c.DefaultQuery("sort_by", "created_at"),
		SortOrder: c.DefaultQuery("sort_order", "desc"),
	}

	if status := c.Query("status"); status != "" {
		s := models.VisitStatus(status)
		filters.Status = &s
	}
	if action := c.Query("action_taken"); action != "" {
		a := models.VisitAction(action)
		filters.ActionTaken = &a
	}
	if studentID, err := strconv.ParseUint(c.Query("student_id"), 10, 32); err == nil {
		id := uint(studentID)
		filters.StudentID = &id
	}
	if from, err := time.Parse(time.RFC3339, c.Query("date_from")); err == nil {
		filters.DateFrom = &from
	}
	if to, err := time.Parse(time.RFC3339, c.Query("date_to")); err == nil {
		filters.DateTo = &to
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(defaultPageSize)))
	if size < 1 || size > maxPageSize {
		size = defaultPageSize
	}
	filters.Limit = size
	filters.Offset = (page - 1) * size

	return filters
}

// CreateVisit registers a visitor at intake
// @Summary Register visit
// @Tags visit_logs
// @Accept json
// @Produce json
// @Param visit body services.CreateVisitRequest true "Visit data"
// @Success 201 {object} Response{data=services.VisitLogResponse}
// @Failure 422 {object} ErrorResponse
// @Router /visit_logs [post]
func (h *VisitLogHandler) CreateVisit(c *gin.Context) {
	var req services.CreateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request payload", err.Error())
		return
	}

	visit, err := h.visitLogService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.Created(c, "Visit registered", visit)
}

// ListVisits returns visit logs with optional status/date filters
// @Summary List visits
// @Tags visit_logs
// @Produce json
// @Param status query string false "Filter by status"
// @Param action_taken query string false "Filter by disposition"
// @Success 200 {object} Response{data=services.VisitLogListResponse}
// @Router /visit_logs [get]
func (h *VisitLogHandler) ListVisits(c *gin.Context) {
	list, err := h.visitLogService.List(c.Request.Context(), parseVisitLogFilters(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.OK(c, "Visits fetched", list)
}

// GetVisit returns a single visit log
// @Summary Get visit
// @Tags visit_logs
// @Produce json
// @Param id path uint true "Visit ID"
// @Success 200 {object} Response{data=services.VisitLogResponse}
// @Failure 404 {object} ErrorResponse
// @Router /visit_logs/{id} [get]
func (h *VisitLogHandler) GetVisit(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	visit, err := h.visitLogService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.OK(c, "Visit fetched", visit)
}

// ListPendingVisits returns visits still awaiting a disposition
// @Summary List pending visits
// @Tags visit_logs
// @Produce json
// @Success 200 {object} Response{data=services.VisitLogListResponse}
// @Router /visit_logs/pending [get]
func (h *VisitLogHandler) ListPendingVisits(c *gin.Context) {
	list, err := h.visitLogService.ListPending(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.OK(c, "Pending visits fetched", list)
}

// UpdateVisitStatus moves a visit along the disposition table
// @Summary Update visit disposition
// @Tags visit_logs
// @Accept json
// @Produce json
// @Param id path uint true "Visit ID"
// @Param status body services.UpdateVisitStatusRequest true "Disposition change"
// @Success 200 {object} Response{data=services.VisitLogResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /visit_logs/{id}/update-status [put]
func (h *VisitLogHandler) UpdateVisitStatus(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateVisitStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request payload", err.Error())
		return
	}

	h.LogRequest(c, "Updating visit disposition", "visit_id", id, "action", req.Action)

	visit, err := h.visitLogService.UpdateStatus(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.OK(c, "Visit updated", visit)
}
