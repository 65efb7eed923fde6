package models

import (
	"time"

	"gorm.io/gorm"
)

type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

type MilestoneStatus string

const (
	MilestoneStatusPending    MilestoneStatus = "PENDING"
	MilestoneStatusInProgress MilestoneStatus = "IN_PROGRESS"
	MilestoneStatusCompleted  MilestoneStatus = "COMPLETED"
	MilestoneStatusBlocked    MilestoneStatus = "BLOCKED"
	MilestoneStatusOverdue    MilestoneStatus = "OVERDUE"
)

// Milestone is a dated checkpoint belonging to exactly one transition.
type Milestone struct {
	ID           uint64          `gorm:"primarykey" json:"id"`
	Title        string          `gorm:"not null" json:"title"`
	Description  string          `gorm:"type:text" json:"description"`
	DueDate      time.Time       `gorm:"not null" json:"due_date"`
	Priority     Priority        `gorm:"type:varchar(20);not null;default:'MEDIUM'" json:"priority"`
	Status       MilestoneStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	TransitionID uint64          `gorm:"not null" json:"transition_id"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relations
	Transition Transition `gorm:"foreignKey:TransitionID" json:"transition,omitempty"`
	Tasks      []Task     `gorm:"foreignKey:MilestoneID" json:"tasks,omitempty"`
}
