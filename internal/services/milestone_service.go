package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/4Clarity/Better-sub003/internal/constants"
	apperrors "github.com/4Clarity/Better-sub003/internal/errors"
	"github.com/4Clarity/Better-sub003/internal/models"
	"github.com/4Clarity/Better-sub003/internal/repository"
	"gorm.io/gorm"
)

// MilestoneService handles milestone business logic. Due dates share the
// task temporal rules: inside the transition window, not in the past.
type MilestoneService struct {
	milestoneRepo  repository.MilestoneRepository
	transitionRepo repository.TransitionRepository
	auditRepo      repository.AuditLogRepository
}

// NewMilestoneService creates a new MilestoneService
func NewMilestoneService(
	milestoneRepo repository.MilestoneRepository,
	transitionRepo repository.TransitionRepository,
	auditRepo repository.AuditLogRepository,
) *MilestoneService {
	return &MilestoneService{
		milestoneRepo:  milestoneRepo,
		transitionRepo: transitionRepo,
		auditRepo:      auditRepo,
	}
}

// CreateMilestoneInput represents input for creating a milestone
type CreateMilestoneInput struct {
	TransitionID uint64
	Title        string
	Description  string
	DueDate      time.Time
	Priority     models.Priority
	Status       models.MilestoneStatus
	ActorID      uint64
}

// ListMilestonesInput represents filters for listing milestones
type ListMilestonesInput struct {
	TransitionID uint64
	Status       *models.MilestoneStatus
	Priority     *models.Priority
	Overdue      bool
	UpcomingDays *int
	SortBy       string
	SortOrder    string
	Page         int
	PageSize     int
}

// UpdateMilestoneInput represents input for updating a milestone
type UpdateMilestoneInput struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Priority    *models.Priority
	Status      *models.MilestoneStatus
	ActorID     uint64
}

// CreateMilestone creates a milestone after temporal validation. Identical
// (transition, title, due date) resubmissions return the existing milestone.
func (s *MilestoneService) CreateMilestone(input CreateMilestoneInput) (*models.Milestone, error) {
	transition, err := s.findTransition(input.TransitionID)
	if err != nil {
		return nil, err
	}

	if err := validateDueDate("Milestone", transition, input.DueDate); err != nil {
		return nil, err
	}

	existing, err := s.milestoneRepo.FindDuplicate(input.TransitionID, input.Title, input.DueDate)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check for duplicate milestone: %w", err)
	}

	if input.Status == "" {
		input.Status = models.MilestoneStatusPending
	}
	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}

	milestone := &models.Milestone{
		Title:        input.Title,
		Description:  input.Description,
		DueDate:      input.DueDate,
		Priority:     input.Priority,
		Status:       input.Status,
		TransitionID: input.TransitionID,
	}

	if err := s.milestoneRepo.Create(milestone); err != nil {
		return nil, fmt.Errorf("failed to create milestone: %w", err)
	}

	s.recordAudit(milestone.ID, models.AuditActionCreate, input.ActorID)

	return milestone, nil
}

// ListMilestones returns a filtered, sorted page of a transition's milestones
func (s *MilestoneService) ListMilestones(input ListMilestonesInput) ([]models.Milestone, int64, error) {
	if _, err := s.findTransition(input.TransitionID); err != nil {
		return nil, 0, err
	}

	filter := repository.MilestoneFilter{
		TransitionID: input.TransitionID,
		Status:       input.Status,
		Priority:     input.Priority,
		SortColumn:   constants.SortColumns[input.SortBy],
		SortDesc:     input.SortOrder == "desc",
		Page:         input.Page,
		PageSize:     input.PageSize,
	}

	now := time.Now()
	if input.Overdue {
		filter.OverdueBefore = &now
	}
	if input.UpcomingDays != nil {
		until := now.AddDate(0, 0, *input.UpcomingDays)
		filter.UpcomingFrom = &now
		filter.UpcomingTo = &until
	}

	milestones, total, err := s.milestoneRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list milestones: %w", err)
	}

	return milestones, total, nil
}

// GetMilestone returns a milestone by ID
func (s *MilestoneService) GetMilestone(milestoneID uint64) (*models.Milestone, error) {
	milestone, err := s.milestoneRepo.FindByID(milestoneID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Milestone not found")
		}
		return nil, fmt.Errorf("failed to find milestone: %w", err)
	}
	return milestone, nil
}

// UpdateMilestone updates a milestone; a supplied due date is re-validated
// against the owning transition's window, an omitted one is left untouched.
func (s *MilestoneService) UpdateMilestone(milestoneID uint64, input UpdateMilestoneInput) (*models.Milestone, error) {
	milestone, err := s.GetMilestone(milestoneID)
	if err != nil {
		return nil, err
	}

	if input.DueDate != nil {
		transition, err := s.findTransition(milestone.TransitionID)
		if err != nil {
			return nil, err
		}
		if err := validateDueDate("Milestone", transition, *input.DueDate); err != nil {
			return nil, err
		}
		milestone.DueDate = *input.DueDate
	}

	if input.Title != nil {
		milestone.Title = *input.Title
	}
	if input.Description != nil {
		milestone.Description = *input.Description
	}
	if input.Priority != nil {
		milestone.Priority = *input.Priority
	}
	if input.Status != nil {
		milestone.Status = *input.Status
	}

	if err := s.milestoneRepo.Update(milestone); err != nil {
		return nil, fmt.Errorf("failed to update milestone: %w", err)
	}

	s.recordAudit(milestone.ID, models.AuditActionUpdate, input.ActorID)

	return milestone, nil
}

// DeleteMilestone removes a milestone and its audit trail
func (s *MilestoneService) DeleteMilestone(milestoneID uint64) error {
	milestone, err := s.GetMilestone(milestoneID)
	if err != nil {
		return err
	}

	if err := s.milestoneRepo.Delete(milestone.ID); err != nil {
		return fmt.Errorf("failed to delete milestone: %w", err)
	}

	return nil
}

// BulkDeleteMilestones removes several milestones of one transition at once
func (s *MilestoneService) BulkDeleteMilestones(transitionID uint64, ids []uint64) error {
	if len(ids) == 0 {
		return apperrors.NewValidation("At least one milestone ID is required")
	}

	if _, err := s.findTransition(transitionID); err != nil {
		return err
	}

	if err := s.milestoneRepo.DeleteMany(transitionID, ids); err != nil {
		return fmt.Errorf("failed to delete milestones: %w", err)
	}

	return nil
}

// SweepOverdueMilestones marks pending and in-progress milestones whose due
// date has passed as overdue. Idempotent; meant to be driven by an external
// scheduler.
func (s *MilestoneService) SweepOverdueMilestones() (int64, error) {
	count, err := s.milestoneRepo.SweepOverdue(time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to sweep overdue milestones: %w", err)
	}
	return count, nil
}

func (s *MilestoneService) findTransition(id uint64) (*models.Transition, error) {
	transition, err := s.transitionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Transition not found")
		}
		return nil, fmt.Errorf("failed to find transition: %w", err)
	}
	return transition, nil
}

func (s *MilestoneService) recordAudit(milestoneID uint64, action models.AuditAction, actorID uint64) {
	_ = s.auditRepo.Create(&models.AuditLog{
		EntityType: models.AuditEntityMilestone,
		EntityID:   milestoneID,
		Action:     action,
		ActorID:    actorID,
	})
}
