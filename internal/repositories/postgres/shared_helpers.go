package postgres

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/AP-CSE-2025/proctor-service/internal/repositories"
)

// SharedHelpers contains common query-building operations
type SharedHelpers struct {
	db *gorm.DB
}

func NewSharedHelpers(db *gorm.DB) *SharedHelpers {
	return &SharedHelpers{db: db}
}

// ApplyStudentFilters applies common filters to student queries
func (h *SharedHelpers) ApplyStudentFilters(query *gorm.DB, filters repositories.StudentFilters) *gorm.DB {
	if filters.Department != nil {
		query = query.Where("department = ?", *filters.Department)
	}
	if filters.Year != nil {
		query = query.Where("year = ?", *filters.Year)
	}
	if filters.Section != nil {
		query = query.Where("section = ?", *filters.Section)
	}
	if filters.AdmissionType != nil {
		query = query.Where("admission_type = ?", *filters.AdmissionType)
	}
	if filters.ProctorID != nil {
		query = query.Where("proctor_id = ?", *filters.ProctorID)
	}
	if filters.Query != "" {
		like := "%" + strings.ToLower(filters.Query) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(roll_number) LIKE ?", like, like)
	}
	return query
}

// ApplyVisitLogFilters applies common filters to visit log queries
func (h *SharedHelpers) ApplyVisitLogFilters(query *gorm.DB, filters repositories.VisitLogFilters) *gorm.DB {
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.ActionTaken != nil {
		query = query.Where("action_taken = ?", *filters.ActionTaken)
	}
	if filters.StudentID != nil {
		query = query.Where("student_id = ?", *filters.StudentID)
	}
	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("created_at <= ?", *filters.DateTo)
	}
	return query
}

// ApplyPaginationAndSort applies pagination and sorting with a whitelist of
// sortable columns.
func (h *SharedHelpers) ApplyPaginationAndSort(query *gorm.DB, sortBy, sortOrder string, limit, offset int) *gorm.DB {
	allowedSortColumns := map[string]bool{
		"created_at":  true,
		"updated_at":  true,
		"name":        true,
		"roll_number": true,
		"year":        true,
	}

	if sortBy == "" || !allowedSortColumns[sortBy] {
		sortBy = "created_at"
	}
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	return query
}
