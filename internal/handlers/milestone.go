package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/4Clarity/Better-sub003/internal/dto"
	apierrors "github.com/4Clarity/Better-sub003/internal/errors"
	"github.com/4Clarity/Better-sub003/internal/middleware"
	"github.com/4Clarity/Better-sub003/internal/models"
	"github.com/4Clarity/Better-sub003/internal/services"
	"github.com/4Clarity/Better-sub003/internal/utils"
	"github.com/gin-gonic/gin"
)

type MilestoneHandler struct {
	milestoneService *services.MilestoneService
}

func NewMilestoneHandler(milestoneService *services.MilestoneService) *MilestoneHandler {
	return &MilestoneHandler{
		milestoneService: milestoneService,
	}
}

// ListMilestones returns a filtered page of a transition's milestones
func (h *MilestoneHandler) ListMilestones(c *gin.Context) {
	transitionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	input := services.ListMilestonesInput{
		TransitionID: transitionID,
		SortBy:       c.DefaultQuery("sortBy", "createdAt"),
		SortOrder:    c.DefaultQuery("sortOrder", "asc"),
		Page:         params.Page,
		PageSize:     params.Limit,
	}

	if status := c.Query("status"); status != "" {
		milestoneStatus := models.MilestoneStatus(status)
		input.Status = &milestoneStatus
	}
	if priority := c.Query("priority"); priority != "" {
		milestonePriority := models.Priority(priority)
		input.Priority = &milestonePriority
	}
	if c.Query("overdue") == "true" {
		input.Overdue = true
	}
	if upcoming := c.Query("upcoming"); upcoming != "" {
		days, err := strconv.Atoi(upcoming)
		if err != nil || days < 0 {
			apierrors.BadRequest(c, "Invalid upcoming window")
			return
		}
		input.UpcomingDays = &days
	}

	milestones, total, err := h.milestoneService.ListMilestones(input)
	if err != nil {
		apierrors.RespondWithDomainError(c, err, "Failed to fetch milestones")
		return
	}

	c.JSON(http.StatusOK, dto.ToMilestoneListResponse(milestones, params.Page, params.Limit, total))
}

// CreateMilestone creates a new milestone inside a transition
func (h *MilestoneHandler) CreateMilestone(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	transitionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type CreateMilestoneRequest struct {
		Title       string                 `json:"title" binding:"required"`
		Description string                 `json:"description"`
		DueDate     time.Time              `json:"due_date" binding:"required"`
		Priority    models.Priority        `json:"priority"`
		Status      models.MilestoneStatus `json:"status"`
	}

	var req CreateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	milestone, err := h.milestoneService.CreateMilestone(services.CreateMilestoneInput{
		TransitionID: transitionID,
		Title:        req.Title,
		Description:  req.Description,
		DueDate:      req.DueDate,
		Priority:     req.Priority,
		Status:       req.Status,
		ActorID:      userID,
	})
	if err != nil {
		apierrors.RespondWithDomainError(c, err, "Failed to create milestone")
		return
	}

	c.JSON(http.StatusCreated, dto.ToMilestoneDTO(*milestone))
}

// GetMilestone returns a specific milestone by ID
func (h *MilestoneHandler) GetMilestone(c *gin.Context) {
	milestoneID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	milestone, err := h.milestoneService.GetMilestone(milestoneID)
	if err != nil {
		apierrors.RespondWithDomainError(c, err, "Failed to fetch milestone")
		return
	}

	c.JSON(http.StatusOK, dto.ToMilestoneDTO(*milestone))
}

// UpdateMilestone updates the provided fields of a milestone
func (h *MilestoneHandler) UpdateMilestone(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	milestoneID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateMilestoneInput{ActorID: userID}

	if title, ok := rawReq["title"].(string); ok {
		input.Title = &title
	}
	if description, ok := rawReq["description"].(string); ok {
		input.Description = &description
	}
	if priority, ok := rawReq["priority"].(string); ok {
		p := models.Priority(priority)
		input.Priority = &p
	}
	if status, ok := rawReq["status"].(string); ok {
		s := models.MilestoneStatus(status)
		input.Status = &s
	}
	if raw, ok := rawReq["due_date"]; ok {
		dueDateStr, isString := raw.(string)
		if !isString {
			apierrors.BadRequest(c, "Invalid due date")
			return
		}
		dueDate, err := time.Parse(time.RFC3339, dueDateStr)
		if err != nil {
			apierrors.BadRequest(c, "Invalid due date")
			return
		}
		input.DueDate = &dueDate
	}

	milestone, err := h.milestoneService.UpdateMilestone(milestoneID, input)
	if err != nil {
		apierrors.RespondWithDomainError(c, err, "Failed to update milestone")
		return
	}

	c.JSON(http.StatusOK, dto.ToMilestoneDTO(*milestone))
}

// DeleteMilestone deletes a milestone
func (h *MilestoneHandler) DeleteMilestone(c *gin.Context) {
	milestoneID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.milestoneService.DeleteMilestone(milestoneID); err != nil {
		apierrors.RespondWithDomainError(c, err, "Failed to delete milestone")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Milestone deleted successfully",
	})
}

// BulkDeleteMilestones deletes several of a transition's milestones at once
func (h *MilestoneHandler) BulkDeleteMilestones(c *gin.Context) {
	transitionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type BulkDeleteRequest struct {
		IDs []uint64 `json:"ids"`
	}

	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.milestoneService.BulkDeleteMilestones(transitionID, req.IDs); err != nil {
		apierrors.RespondWithDomainError(c, err, "Failed to delete milestones")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Milestones deleted successfully",
	})
}

// SweepOverdueMilestones bulk-marks past-due active milestones as overdue
func (h *MilestoneHandler) SweepOverdueMilestones(c *gin.Context) {
	count, err := h.milestoneService.SweepOverdueMilestones()
	if err != nil {
		apierrors.RespondWithDomainError(c, err, "Failed to sweep overdue milestones")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Marked %d milestones as overdue", count),
	})
}
