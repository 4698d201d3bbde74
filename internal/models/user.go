package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleHOD     UserRole = "HOD"
	RoleProctor UserRole = "Proctor"
)

type User struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	Name         string   `json:"name" gorm:"not null;size:100"`
	Email        string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string   `json:"-" gorm:"not null;size:255"`
	Role         UserRole `json:"role" gorm:"not null;size:20;index"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	HODInfo         *HODInfo         `json:"hod_info,omitempty" gorm:"foreignKey:UserID"`
	HODAvailability *HODAvailability `json:"hod_availability,omitempty" gorm:"foreignKey:UserID"`
	Tasks           []ToDoTask       `json:"tasks,omitempty" gorm:"foreignKey:UserID"`
	Students        []StudentCore    `json:"students,omitempty" gorm:"foreignKey:ProctorID"`
}

// PublicUser is the projection returned by auth and profile endpoints.
// The password hash never leaves the service.
type PublicUser struct {
	ID    uint     `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

// HODInfo is the 1:1 profile extension for HOD users.
type HODInfo struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	UserID     uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	Department string `json:"department" gorm:"size:100"`
	Office     string `json:"office" gorm:"size:100"`
	Contact    string `json:"contact" gorm:"size:50"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HODAvailability is the mutable availability record kept per HOD.
// A default row (unavailable, placeholder message) is inserted in the same
// transaction as the User row at signup.
type HODAvailability struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	UserID          uint       `json:"user_id" gorm:"uniqueIndex;not null"`
	Available       bool       `json:"available" gorm:"not null;default:false"`
	StatusMessage   string     `json:"status_message" gorm:"size:255"`
	EstimatedReturn *time.Time `json:"estimated_return"`

	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (HODInfo) TableName() string {
	return "hod_info"
}

func (HODAvailability) TableName() string {
	return "hod_availability"
}
