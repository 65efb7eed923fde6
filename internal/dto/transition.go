package dto

import (
	"time"

	"github.com/4Clarity/Better-sub003/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64          `json:"id"`
	Username string          `json:"username"`
	Role     models.UserRole `json:"role"`
}

// TransitionDTO represents a transition in API responses
type TransitionDTO struct {
	ID           uint64                  `json:"id"`
	ContractName string                  `json:"contract_name"`
	StartDate    time.Time               `json:"start_date"`
	EndDate      time.Time               `json:"end_date"`
	Status       models.TransitionStatus `json:"status"`
	CreatedBy    uint64                  `json:"created_by"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	}
}

// ToTransitionDTO converts a Transition model to TransitionDTO
func ToTransitionDTO(transition models.Transition) TransitionDTO {
	return TransitionDTO{
		ID:           transition.ID,
		ContractName: transition.ContractName,
		StartDate:    transition.StartDate,
		EndDate:      transition.EndDate,
		Status:       transition.Status,
		CreatedBy:    transition.CreatedBy,
		CreatedAt:    transition.CreatedAt,
		UpdatedAt:    transition.UpdatedAt,
	}
}
