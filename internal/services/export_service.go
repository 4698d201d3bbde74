package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/AP-CSE-2025/proctor-service/internal/repositories"
)

const exportSheetName = "Students"

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
	}
}

var exportHeaders = []string{
	"Roll Number", "Name", "Year", "Department", "Section",
	"Admission Type", "Average GPA", "Attendance", "Low Subjects",
}

// ExportStudents renders the filtered student list into an xlsx workbook.
// Computed columns use the same folds as the list endpoint so the sheet
// matches what the dashboard shows.
func (s *exportService) ExportStudents(ctx context.Context, filters repositories.StudentFilters) ([]byte, error) {
	// Exports are unpaginated; cap at a single worksheet's worth.
	filters.Limit = 10000
	filters.Offset = 0

	students, _, err := s.repo.Student().ListWithRecords(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list students for export: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9E1F2"}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(exportSheetName, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
		_ = f.SetCellStyle(exportSheetName, cell, cell, headerStyle)
	}

	for i, st := range students {
		row := i + 2
		values := []interface{}{
			st.RollNumber,
			st.Name,
			st.Year,
			st.Department,
			st.Section,
			string(st.AdmissionType),
			averageGPA(st.AcademicScores),
			latestAttendance(st.Attendance),
			lowSubjectCount(st.MidtermScores),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(exportSheetName, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}
	}

	_ = f.SetColWidth(exportSheetName, "A", "I", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	s.logger.Info("Student export generated", "rows", len(students))
	return buf.Bytes(), nil
}
