package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskPriority string

const (
	PriorityHigh   TaskPriority = "high"
	PriorityMedium TaskPriority = "medium"
	PriorityLow    TaskPriority = "low"
)

// ToDoTask is a personal task owned by exactly one user. All task queries
// are scoped to the owner.
type ToDoTask struct {
	ID        uint         `json:"id" gorm:"primaryKey"`
	UserID    uint         `json:"user_id" gorm:"not null;index"`
	Title     string       `json:"title" gorm:"not null;size:200"`
	Priority  TaskPriority `json:"priority" gorm:"size:10;default:medium"`
	DueDate   *time.Time   `json:"due_date"`
	Completed bool         `json:"completed" gorm:"default:false"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (ToDoTask) TableName() string {
	return "todo_tasks"
}
