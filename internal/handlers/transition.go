package handlers

import (
	"net/http"
	"time"

	"github.com/4Clarity/Better-sub003/internal/dto"
	apierrors "github.com/4Clarity/Better-sub003/internal/errors"
	"github.com/4Clarity/Better-sub003/internal/middleware"
	"github.com/4Clarity/Better-sub003/internal/models"
	"github.com/4Clarity/Better-sub003/internal/services"
	"github.com/4Clarity/Better-sub003/internal/utils"
	"github.com/gin-gonic/gin"
)

type TransitionHandler struct {
	transitionService *services.TransitionService
}

func NewTransitionHandler(transitionService *services.TransitionService) *TransitionHandler {
	return &TransitionHandler{
		transitionService: transitionService,
	}
}

// CreateTransition creates a new contract transition
func (h *TransitionHandler) CreateTransition(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTransitionRequest struct {
		ContractName string    `json:"contract_name" binding:"required"`
		StartDate    time.Time `json:"start_date" binding:"required"`
		EndDate      time.Time `json:"end_date" binding:"required"`
	}

	var req CreateTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	transition, err := h.transitionService.CreateTransition(services.CreateTransitionInput{
		ContractName: req.ContractName,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		CreatedBy:    userID,
	})
	if err != nil {
		apierrors.RespondWithDomainError(c, err, "Failed to create transition")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransitionDTO(*transition))
}

// ListTransitions returns a page of transitions, newest first
func (h *TransitionHandler) ListTransitions(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	transitions, total, err := h.transitionService.ListTransitions(params.Page, params.Limit)
	if err != nil {
		apierrors.RespondWithDomainError(c, err, "Failed to fetch transitions")
		return
	}

	items := make([]dto.TransitionDTO, len(transitions))
	for i, transition := range transitions {
		items[i] = dto.ToTransitionDTO(transition)
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       items,
		"pagination": utils.NewPaginationResponse(params.Page, params.Limit, total),
	})
}

// GetTransition returns a specific transition by ID
func (h *TransitionHandler) GetTransition(c *gin.Context) {
	transitionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	transition, err := h.transitionService.GetTransition(transitionID)
	if err != nil {
		apierrors.RespondWithDomainError(c, err, "Failed to fetch transition")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransitionDTO(*transition))
}

// UpdateTransition updates the provided fields of a transition
func (h *TransitionHandler) UpdateTransition(c *gin.Context) {
	transitionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateTransitionInput{}

	if name, ok := rawReq["contract_name"].(string); ok {
		input.ContractName = &name
	}
	if status, ok := rawReq["status"].(string); ok {
		s := models.TransitionStatus(status)
		input.Status = &s
	}
	if raw, ok := rawReq["start_date"].(string); ok {
		startDate, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			apierrors.BadRequest(c, "Invalid start date")
			return
		}
		input.StartDate = &startDate
	}
	if raw, ok := rawReq["end_date"].(string); ok {
		endDate, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			apierrors.BadRequest(c, "Invalid end date")
			return
		}
		input.EndDate = &endDate
	}

	transition, err := h.transitionService.UpdateTransition(transitionID, input)
	if err != nil {
		apierrors.RespondWithDomainError(c, err, "Failed to update transition")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransitionDTO(*transition))
}

// DeleteTransition deletes a transition
func (h *TransitionHandler) DeleteTransition(c *gin.Context) {
	transitionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.transitionService.DeleteTransition(transitionID); err != nil {
		apierrors.RespondWithDomainError(c, err, "Failed to delete transition")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Transition deleted successfully",
	})
}
