package dto

import (
	"time"

	"github.com/4Clarity/Better-sub003/internal/models"
	"github.com/4Clarity/Better-sub003/internal/utils"
)

// MilestoneDTO represents a milestone in API responses
type MilestoneDTO struct {
	ID           uint64                 `json:"id"`
	Title        string                 `json:"title"`
	Description  string                 `json:"description"`
	DueDate      time.Time              `json:"due_date"`
	Priority     models.Priority        `json:"priority"`
	Status       models.MilestoneStatus `json:"status"`
	TransitionID uint64                 `json:"transition_id"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// MilestoneListResponse represents a paginated list of milestones
type MilestoneListResponse struct {
	Data       []MilestoneDTO           `json:"data"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToMilestoneDTO converts a Milestone model to MilestoneDTO
func ToMilestoneDTO(milestone models.Milestone) MilestoneDTO {
	return MilestoneDTO{
		ID:           milestone.ID,
		Title:        milestone.Title,
		Description:  milestone.Description,
		DueDate:      milestone.DueDate,
		Priority:     milestone.Priority,
		Status:       milestone.Status,
		TransitionID: milestone.TransitionID,
		CreatedAt:    milestone.CreatedAt,
		UpdatedAt:    milestone.UpdatedAt,
	}
}

// ToMilestoneListResponse converts a page of milestones to MilestoneListResponse
func ToMilestoneListResponse(milestones []models.Milestone, page, limit int, total int64) MilestoneListResponse {
	items := make([]MilestoneDTO, len(milestones))
	for i, milestone := range milestones {
		items[i] = ToMilestoneDTO(milestone)
	}

	return MilestoneListResponse{
		Data:       items,
		Pagination: utils.NewPaginationResponse(page, limit, total),
	}
}
