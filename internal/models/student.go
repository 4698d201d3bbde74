package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AdmissionType string

const (
	AdmissionNormal  AdmissionType = "NORMAL"
	AdmissionLateral AdmissionType = "LATERAL"
)

// StudentCore is the root student record. Every per-student child table
// (personal info, scores, attendance, extracurriculars, visit logs) hangs
// off this row.
type StudentCore struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	RollNumber    string        `json:"roll_number" gorm:"uniqueIndex;not null;size:20"`
	Name          string        `json:"name" gorm:"not null;size:100"`
	Year          int           `json:"year" gorm:"not null"`
	Department    string        `json:"department" gorm:"not null;size:100;index"`
	Section       string        `json:"section" gorm:"size:10"`
	AdmissionType AdmissionType `json:"admission_type" gorm:"size:10;default:NORMAL"`
	ProctorID     *uint         `json:"proctor_id" gorm:"index"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	PersonalInfo     *PersonalInfo      `json:"personal_info,omitempty" gorm:"foreignKey:StudentID"`
	AcademicScores   []AcademicScore    `json:"academic_scores,omitempty" gorm:"foreignKey:StudentID"`
	MidtermScores    []MidtermScore     `json:"midterm_scores,omitempty" gorm:"foreignKey:StudentID"`
	LabExams         []LabExam          `json:"lab_exams,omitempty" gorm:"foreignKey:StudentID"`
	Attendance       []AttendanceRecord `json:"attendance,omitempty" gorm:"foreignKey:StudentID"`
	Extracurriculars []Extracurricular  `json:"extracurriculars,omitempty" gorm:"foreignKey:StudentID"`
	VisitLogs        []VisitLog         `json:"visit_logs,omitempty" gorm:"foreignKey:StudentID"`
}

// PersonalInfo is the 1:1 contact/guardian record for a student.
type PersonalInfo struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	StudentID     uint       `json:"student_id" gorm:"uniqueIndex;not null"`
	DateOfBirth   *time.Time `json:"date_of_birth"`
	Gender        string     `json:"gender" gorm:"size:20"`
	Phone         string     `json:"phone" gorm:"size:20"`
	Email         string     `json:"email" gorm:"size:255"`
	Address       string     `json:"address" gorm:"type:text"`
	GuardianName  string     `json:"guardian_name" gorm:"size:100"`
	GuardianPhone string     `json:"guardian_phone" gorm:"size:20"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AcademicScore holds one semester's GPA for a student.
type AcademicScore struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	StudentID uint    `json:"student_id" gorm:"not null;index"`
	Semester  int     `json:"semester" gorm:"not null"`
	GPA       float64 `json:"gpa" gorm:"not null"`
	Credits   int     `json:"credits"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MidtermScore holds internal (midterm) marks per subject.
type MidtermScore struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	StudentID     uint   `json:"student_id" gorm:"not null;index"`
	Semester      int    `json:"semester" gorm:"not null"`
	Subject       string `json:"subject" gorm:"not null;size:100"`
	InternalMarks int    `json:"internal_marks" gorm:"not null"`
	MaxMarks      int    `json:"max_marks" gorm:"default:60"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LabExam holds lab/practical exam results per subject.
type LabExam struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	StudentID uint   `json:"student_id" gorm:"not null;index"`
	Semester  int    `json:"semester" gorm:"not null"`
	Subject   string `json:"subject" gorm:"not null;size:100"`
	Marks     int    `json:"marks" gorm:"not null"`
	MaxMarks  int    `json:"max_marks" gorm:"default:100"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AttendanceRecord is a periodic attendance snapshot. Averages surfaced to
// the dashboard use the most recent record only.
type AttendanceRecord struct {
	ID             uint    `json:"id" gorm:"primaryKey"`
	StudentID      uint    `json:"student_id" gorm:"not null;index"`
	Semester       int     `json:"semester" gorm:"not null"`
	ClassesHeld    int     `json:"classes_held" gorm:"not null"`
	ClassesPresent int     `json:"classes_present" gorm:"not null"`
	Percentage     float64 `json:"percentage" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Extracurricular records a non-academic activity or achievement. Details is
// free-form JSON (certificates, positions, event metadata).
type Extracurricular struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	StudentID uint           `json:"student_id" gorm:"not null;index"`
	Activity  string         `json:"activity" gorm:"not null;size:200"`
	Category  string         `json:"category" gorm:"size:100"`
	Details   datatypes.JSON `json:"details" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (StudentCore) TableName() string {
	return "student_core"
}

func (PersonalInfo) TableName() string {
	return "personal_info"
}

func (AcademicScore) TableName() string {
	return "academic_scores"
}

func (MidtermScore) TableName() string {
	return "midterm_scores"
}

func (LabExam) TableName() string {
	return "lab_exams"
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

func (Extracurricular) TableName() string {
	return "extracurriculars"
}
