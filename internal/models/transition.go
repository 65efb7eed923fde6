package models

import (
	"time"

	"gorm.io/gorm"
)

type TransitionStatus string

const (
	TransitionStatusNotStarted TransitionStatus = "NOT_STARTED"
	TransitionStatusInProgress TransitionStatus = "IN_PROGRESS"
	TransitionStatusCompleted  TransitionStatus = "COMPLETED"
	TransitionStatusOnHold     TransitionStatus = "ON_HOLD"
)

// Transition is the bounded project window that owns milestones and tasks.
// Due-date validation for both is performed against [StartDate, EndDate].
type Transition struct {
	ID           uint64           `gorm:"primarykey" json:"id"`
	ContractName string           `gorm:"type:varchar(255);not null" json:"contract_name"`
	StartDate    time.Time        `gorm:"not null" json:"start_date"`
	EndDate      time.Time        `gorm:"not null" json:"end_date"`
	Status       TransitionStatus `gorm:"type:varchar(20);not null;default:'NOT_STARTED'" json:"status"`
	CreatedBy    uint64           `gorm:"not null" json:"created_by"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relations
	Milestones []Milestone `gorm:"foreignKey:TransitionID" json:"milestones,omitempty"`
	Tasks      []Task      `gorm:"foreignKey:TransitionID" json:"tasks,omitempty"`
}
