package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AP-CSE-2025/proctor-service/internal/models"
	"github.com/AP-CSE-2025/proctor-service/internal/repositories"
	"github.com/AP-CSE-2025/proctor-service/internal/services"
	"github.com/AP-CSE-2025/proctor-service/internal/utils"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type StudentHandler struct {
	BaseHandler
	studentService services.StudentService
	exportService  services.ExportService
}

func NewStudentHandler(studentService services.StudentService, exportService services.ExportService, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler:    NewBaseHandler(logger),
		studentService: studentService,
		exportService:  exportService,
	}
}

// parseStudentFilters reads the list query params. Page numbers are 1-based.
func parseStudentFilters(c *gin.Context) repositories.StudentFilters {
	filters := repositories.StudentFilters{
		Query:     c.Query("q"),
		SortBy:    c.DefaultQuery("sort_by", "created_at"),
		SortOrder: c.DefaultQuery("sort_order", "desc"),
	}

	if dept := c.Query("department"); dept != "" {
		filters.Department = &dept
	}
	if section := c.Query("section"); section != "" {
		filters.Section = &section
	}
	if year, err := strconv.Atoi(c.Query("year")); err == nil && year > 0 {
		filters.Year = &year
	}
	if admission := c.Query("admission_type"); admission != "" {
		at := models.AdmissionType(admission)
		filters.AdmissionType = &at
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

// ===== HOD ROUTES =====

// ListStudents returns all students with computed averages
// @Summary List students
// @Tags hod
// @Produce json
// @Param department query string false "Filter by department"
// @Param year query int false "Filter by year"
// @Param q query string false "Search name or roll number"
// @Param page query int false "Page (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} Response{data=services.StudentListResponse}
// @Router /hod/students [get]
func (h *StudentHandler) ListStudents(c *gin.Context) {
	list, err := h.studentService.List(c.Request.Context(), parseStudentFilters(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.OK(c, "Students fetched", list)
}

// GetStudent returns one student with full records
// @Summary Get student
// @Tags hod
// @Produce json
// @Param id path uint true "Student ID"
// @Success 200 {object} Response{data=services.StudentDetailResponse}
// @Failure 404 {object} ErrorResponse
// @Router /hod/students/{id} [get]
func (h *StudentHandler) GetStudent(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	detail, err := h.studentService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.OK(c, "Student fetched", detail)
}

// ExportStudents streams the filtered student list as an xlsx workbook
// @Summary Export students
// @Tags hod
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Router /hod/students/export [get]
func (h *StudentHandler) ExportStudents(c *gin.Context) {
	h.LogRequest(c, "Exporting students")

	data, err := h.exportService.ExportStudents(c.Request.Context(), parseStudentFilters(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("students_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// ===== PROCTOR ROUTES =====

// ListAssignedStudents returns students assigned to the calling proctor
// @Summary List assigned students
// @Tags proctor
// @Produce json
// @Success 200 {object} Response{data=services.StudentListResponse}
// @Router /proctor/students [get]
func (h *StudentHandler) ListAssignedStudents(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		h.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	list, err := h.studentService.ListForProctor(c.Request.Context(), userID, parseStudentFilters(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.OK(c, "Students fetched", list)
}

// GetAssignedStudent returns one student if assigned to the caller
// @Summary Get assigned student
// @Tags proctor
// @Produce json
// @Param id path uint true "Student ID"
// @Success 200 {object} Response{data=services.StudentDetailResponse}
// @Failure 404 {object} ErrorResponse
// @Router /proctor/students/{id} [get]
func (h *StudentHandler) GetAssignedStudent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		h.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	detail, err := h.studentService.GetForProctor(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.OK(c, "Student fetched", detail)
}

// AddStudent creates a student assigned to the calling proctor
// @Summary Add student
// @Tags proctor
// @Accept json
// @Produce json
// @Param student body services.CreateStudentRequest true "Student data"
// @Success 201 {object} Response{data=services.StudentDetailResponse}
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /proctor/addstudent [post]
func (h *StudentHandler) AddStudent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		h.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	var req services.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request payload", err.Error())
		return
	}

	h.LogRequest(c, "Adding student", "roll_number", req.RollNumber, "proctor_id", userID)

	detail, err := h.studentService.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.Created(c, "Student created", detail)
}
