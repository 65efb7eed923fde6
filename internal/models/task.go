package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "NOT_STARTED"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
	TaskStatusBlocked    TaskStatus = "BLOCKED"
	TaskStatusOverdue    TaskStatus = "OVERDUE"
)

// Task is a unit of work in a transition. Tasks form a forest via
// ParentTaskID; OrderIndex is the zero-based position within the sibling
// group sharing (TransitionID, ParentTaskID) and is kept dense across
// deletes and moves.
type Task struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Title        string         `gorm:"not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	DueDate      time.Time      `gorm:"not null" json:"due_date"`
	Priority     Priority       `gorm:"type:varchar(20);not null;default:'MEDIUM'" json:"priority"`
	Status       TaskStatus     `gorm:"type:varchar(20);not null;default:'NOT_STARTED'" json:"status"`
	TransitionID uint64         `gorm:"not null" json:"transition_id"`
	MilestoneID  *uint64        `json:"milestone_id"`
	ParentTaskID *uint64        `json:"parent_task_id"`
	OrderIndex   int            `gorm:"not null;default:0" json:"order_index"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Transition Transition `gorm:"foreignKey:TransitionID" json:"transition,omitempty"`
	Milestone  *Milestone `gorm:"foreignKey:MilestoneID" json:"milestone,omitempty"`
	ParentTask *Task      `gorm:"foreignKey:ParentTaskID" json:"parent_task,omitempty"`
	Subtasks   []Task     `gorm:"foreignKey:ParentTaskID" json:"subtasks,omitempty"`
}
