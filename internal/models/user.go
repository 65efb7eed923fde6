package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleProgramManager UserRole = "program_manager"
	RoleGovernmentPM   UserRole = "government_pm"
	RoleContractor     UserRole = "contractor"
	RoleObserver       UserRole = "observer"
)

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Username     string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	Role         UserRole       `gorm:"type:varchar(30);not null;default:'observer'" json:"role"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	CreatedTransitions []Transition `gorm:"foreignKey:CreatedBy" json:"-"`
}
