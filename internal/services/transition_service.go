package services

import (
	"errors"
	"fmt"
	"time"

	apperrors "github.com/4Clarity/Better-sub003/internal/errors"
	"github.com/4Clarity/Better-sub003/internal/models"
	"github.com/4Clarity/Better-sub003/internal/repository"
	"gorm.io/gorm"
)

// TransitionService handles transition lifecycle. The window it maintains is
// what milestone and task due dates are validated against.
type TransitionService struct {
	transitionRepo repository.TransitionRepository
}

// NewTransitionService creates a new TransitionService
func NewTransitionService(transitionRepo repository.TransitionRepository) *TransitionService {
	return &TransitionService{transitionRepo: transitionRepo}
}

// CreateTransitionInput represents input for creating a transition
type CreateTransitionInput struct {
	ContractName string
	StartDate    time.Time
	EndDate      time.Time
	CreatedBy    uint64
}

// UpdateTransitionInput represents input for updating a transition
type UpdateTransitionInput struct {
	ContractName *string
	StartDate    *time.Time
	EndDate      *time.Time
	Status       *models.TransitionStatus
}

// CreateTransition creates a transition with a valid date window
func (s *TransitionService) CreateTransition(input CreateTransitionInput) (*models.Transition, error) {
	if !input.EndDate.After(input.StartDate) {
		return nil, apperrors.NewValidation("End date must be after start date")
	}

	transition := &models.Transition{
		ContractName: input.ContractName,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		Status:       models.TransitionStatusNotStarted,
		CreatedBy:    input.CreatedBy,
	}

	if err := s.transitionRepo.Create(transition); err != nil {
		return nil, fmt.Errorf("failed to create transition: %w", err)
	}

	return transition, nil
}

// ListTransitions returns a page of transitions
func (s *TransitionService) ListTransitions(page, pageSize int) ([]models.Transition, int64, error) {
	transitions, total, err := s.transitionRepo.List(page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transitions: %w", err)
	}
	return transitions, total, nil
}

// GetTransition returns a transition by ID
func (s *TransitionService) GetTransition(id uint64) (*models.Transition, error) {
	transition, err := s.transitionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Transition not found")
		}
		return nil, fmt.Errorf("failed to find transition: %w", err)
	}
	return transition, nil
}

// UpdateTransition updates a transition, keeping the window invariant
func (s *TransitionService) UpdateTransition(id uint64, input UpdateTransitionInput) (*models.Transition, error) {
	transition, err := s.GetTransition(id)
	if err != nil {
		return nil, err
	}

	if input.ContractName != nil {
		transition.ContractName = *input.ContractName
	}
	if input.StartDate != nil {
		transition.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		transition.EndDate = *input.EndDate
	}
	if input.Status != nil {
		transition.Status = *input.Status
	}

	if !transition.EndDate.After(transition.StartDate) {
		return nil, apperrors.NewValidation("End date must be after start date")
	}

	if err := s.transitionRepo.Update(transition); err != nil {
		return nil, fmt.Errorf("failed to update transition: %w", err)
	}

	return transition, nil
}

// DeleteTransition soft deletes a transition
func (s *TransitionService) DeleteTransition(id uint64) error {
	if _, err := s.GetTransition(id); err != nil {
		return err
	}

	if err := s.transitionRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete transition: %w", err)
	}

	return nil
}
