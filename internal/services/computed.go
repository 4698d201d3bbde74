package services

import (
	"fmt"

	"github.com/AP-CSE-2025/proctor-service/internal/models"
)

// NotAvailable is returned for averages with no backing rows, instead of a
// zero value the frontend would read as a real score.
const NotAvailable = "N/A"

// LowPerformerCutoff is the internal-marks threshold below which a subject
// counts as low performance.
const LowPerformerCutoff = 40

// averageGPA folds over all semester GPA rows.
func averageGPA(scores []models.AcademicScore) string {
	if len(scores) == 0 {
		return NotAvailable
	}
	var sum float64
	for _, s := range scores {
		sum += s.GPA
	}
	return fmt.Sprintf("%.2f", sum/float64(len(scores)))
}

// latestAttendance reports the percentage from the most recent attendance
// record. Records are preloaded ordered by semester ascending.
func latestAttendance(records []models.AttendanceRecord) string {
	if len(records) == 0 {
		return NotAvailable
	}
	latest := records[len(records)-1]
	return fmt.Sprintf("%.1f%%", latest.Percentage)
}

// lowSubjectCount counts midterm rows scoring below the cutoff.
func lowSubjectCount(scores []models.MidtermScore) int {
	count := 0
	for _, s := range scores {
		if s.InternalMarks < LowPerformerCutoff {
			count++
		}
	}
	return count
}
