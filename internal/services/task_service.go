package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/4Clarity/Better-sub003/internal/constants"
	apperrors "github.com/4Clarity/Better-sub003/internal/errors"
	"github.com/4Clarity/Better-sub003/internal/models"
	"github.com/4Clarity/Better-sub003/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoTasksDrafted       = errors.New("AI did not draft any tasks")
	ErrAINoValidTasks         = errors.New("no valid tasks could be created from AI output")
)

// TaskService owns the task hierarchy for a transition: CRUD, the nested
// tree view, and move/reorder with dense sibling order indexes.
type TaskService struct {
	taskRepo       repository.TaskRepository
	transitionRepo repository.TransitionRepository
	milestoneRepo  repository.MilestoneRepository
	auditRepo      repository.AuditLogRepository
	aiService      *AIService
}

// NewTaskService creates a new TaskService. aiService may be nil when task
// drafting is not configured.
func NewTaskService(
	taskRepo repository.TaskRepository,
	transitionRepo repository.TransitionRepository,
	milestoneRepo repository.MilestoneRepository,
	auditRepo repository.AuditLogRepository,
	aiService *AIService,
) *TaskService {
	return &TaskService{
		taskRepo:       taskRepo,
		transitionRepo: transitionRepo,
		milestoneRepo:  milestoneRepo,
		auditRepo:      auditRepo,
		aiService:      aiService,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	TransitionID uint64
	Title        string
	Description  string
	DueDate      time.Time
	Priority     models.Priority
	Status       models.TaskStatus
	MilestoneID  *uint64
	ParentTaskID *uint64
	ActorID      uint64
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	TransitionID uint64
	Status       *models.TaskStatus
	Priority     *models.Priority
	Overdue      bool
	UpcomingDays *int
	SortBy       string
	SortOrder    string
	Page         int
	PageSize     int
}

// UpdateTaskInput represents input for updating a task. Nil pointers leave
// the stored value untouched; Clear* flags null out the association.
type UpdateTaskInput struct {
	Title          *string
	Description    *string
	DueDate        *time.Time
	Priority       *models.Priority
	Status         *models.TaskStatus
	MilestoneID    *uint64
	ClearMilestone bool
	ParentTaskID   *uint64
	ClearParent    bool
	ActorID        uint64
}

// MoveTaskInput is the target descriptor for repositioning a task. The
// Provided flags distinguish an omitted field from an explicit null.
// Placement precedence: BeforeTaskID, then AfterTaskID, then Position
// (clamped), then end of list.
type MoveTaskInput struct {
	ParentTaskID      *uint64
	ParentProvided    bool
	MilestoneID       *uint64
	MilestoneProvided bool
	BeforeTaskID      *uint64
	AfterTaskID       *uint64
	Position          *int
	ActorID           uint64
}

// CreateTask creates a task inside a transition, assigning the next dense
// order index in its sibling group. Submitting the same (transition, title,
// due date) twice returns the existing task instead of creating a duplicate,
// absorbing client retries.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	transition, err := s.findTransition(input.TransitionID)
	if err != nil {
		return nil, err
	}

	if err := validateDueDate("Task", transition, input.DueDate); err != nil {
		return nil, err
	}

	existing, err := s.taskRepo.FindDuplicate(input.TransitionID, input.Title, input.DueDate)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check for duplicate task: %w", err)
	}

	if input.ParentTaskID != nil {
		parent, err := s.taskRepo.FindByID(*input.ParentTaskID)
		if err != nil || parent.TransitionID != input.TransitionID {
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to find parent task: %w", err)
			}
			return nil, apperrors.NewValidation("Parent task must belong to the same transition")
		}
	}

	if input.MilestoneID != nil {
		milestone, err := s.milestoneRepo.FindByID(*input.MilestoneID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NewNotFound("Milestone not found")
			}
			return nil, fmt.Errorf("failed to find milestone: %w", err)
		}
		if milestone.TransitionID != input.TransitionID {
			return nil, apperrors.NewValidation("Milestone must belong to the same transition")
		}
	}

	maxIndex, err := s.taskRepo.MaxOrderIndex(input.TransitionID, input.ParentTaskID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute order index: %w", err)
	}

	if input.Status == "" {
		input.Status = models.TaskStatusNotStarted
	}
	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}

	task := &models.Task{
		Title:        input.Title,
		Description:  input.Description,
		DueDate:      input.DueDate,
		Priority:     input.Priority,
		Status:       input.Status,
		TransitionID: input.TransitionID,
		MilestoneID:  input.MilestoneID,
		ParentTaskID: input.ParentTaskID,
		OrderIndex:   maxIndex + 1,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.recordAudit(task.ID, models.AuditActionCreate, input.ActorID)

	return task, nil
}

// ListTasks returns a filtered, sorted page of a transition's tasks
func (s *TaskService) ListTasks(input ListTasksInput) ([]models.Task, int64, error) {
	if _, err := s.findTransition(input.TransitionID); err != nil {
		return nil, 0, err
	}

	filter := repository.TaskFilter{
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

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// GetTask returns a task by ID
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Task not found")
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// GetTaskHistory returns a task's audit trail, newest entry first
func (s *TaskService) GetTaskHistory(taskID uint64) ([]models.AuditLog, error) {
	if _, err := s.GetTask(taskID); err != nil {
		return nil, err
	}

	entries, err := s.auditRepo.ListByEntity(models.AuditEntityTask, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to load task history: %w", err)
	}
	return entries, nil
}

// UpdateTask updates a task in place. A supplied due date is re-validated
// against the task's own transition; supplied parent/milestone references are
// re-checked for same-transition membership. Order index and position are
// never touched here; repositioning goes through MoveTask.
func (s *TaskService) UpdateTask(taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.GetTask(taskID)
	if err != nil {
		return nil, err
	}

	if input.DueDate != nil {
		transition, err := s.findTransition(task.TransitionID)
		if err != nil {
			return nil, err
		}
		if err := validateDueDate("Task", transition, *input.DueDate); err != nil {
			return nil, err
		}
		task.DueDate = *input.DueDate
	}

	if input.ClearParent {
		task.ParentTaskID = nil
	} else if input.ParentTaskID != nil {
		parent, err := s.taskRepo.FindByID(*input.ParentTaskID)
		if err != nil || parent.TransitionID != task.TransitionID {
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to find parent task: %w", err)
			}
			return nil, apperrors.NewValidation("Parent task must belong to the same transition")
		}
		task.ParentTaskID = input.ParentTaskID
	}

	if input.ClearMilestone {
		task.MilestoneID = nil
	} else if input.MilestoneID != nil {
		milestone, err := s.milestoneRepo.FindByID(*input.MilestoneID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NewNotFound("Milestone not found")
			}
			return nil, fmt.Errorf("failed to find milestone: %w", err)
		}
		if milestone.TransitionID != task.TransitionID {
			return nil, apperrors.NewValidation("Milestone must belong to the same transition")
		}
		task.MilestoneID = input.MilestoneID
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.Status != nil {
		task.Status = *input.Status
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.recordAudit(task.ID, models.AuditActionUpdate, input.ActorID)

	return task, nil
}

// DeleteTask removes a task and renumbers its remaining siblings 0..n-1 in
// their existing relative order, so the group stays gap-free.
func (s *TaskService) DeleteTask(taskID uint64) error {
	task, err := s.GetTask(taskID)
	if err != nil {
		return err
	}

	siblings, err := s.taskRepo.ListSiblings(task.TransitionID, task.ParentTaskID, task.ID)
	if err != nil {
		return fmt.Errorf("failed to load siblings: %w", err)
	}

	updates := compactionUpdates(siblings)

	if err := s.taskRepo.DeleteWithReindex(task.ID, updates); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// MoveTask repositions a task within or across sibling groups. The
// destination group is spliced open at the target position, the old group is
// compacted when the parent changed, and every affected row is written in a
// single transaction.
func (s *TaskService) MoveTask(transitionID, taskID uint64, input MoveTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil || task.TransitionID != transitionID {
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to find task: %w", err)
		}
		return nil, apperrors.NewNotFound("Task not found")
	}

	newParent := task.ParentTaskID
	if input.ParentProvided {
		newParent = input.ParentTaskID
		if newParent != nil {
			parent, err := s.taskRepo.FindByID(*newParent)
			if err != nil || parent.TransitionID != transitionID {
				if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, fmt.Errorf("failed to find parent task: %w", err)
				}
				return nil, apperrors.NewValidation("Parent task must belong to the same transition")
			}
		}
	}

	// Milestone reassignment on move is intentionally permissive: no
	// same-transition re-check, unlike create.
	newMilestone := task.MilestoneID
	if input.MilestoneProvided {
		newMilestone = input.MilestoneID
	}

	siblings, err := s.taskRepo.ListSiblings(transitionID, newParent, task.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load destination siblings: %w", err)
	}

	targetIndex := resolveTargetIndex(siblings, input)

	// Splice the destination group open at targetIndex; only rows whose
	// order index actually changes are written.
	updates := make([]repository.OrderIndexUpdate, 0, len(siblings))
	for i, sibling := range siblings {
		newIndex := i
		if i >= targetIndex {
			newIndex = i + 1
		}
		if sibling.OrderIndex != newIndex {
			updates = append(updates, repository.OrderIndexUpdate{TaskID: sibling.ID, OrderIndex: newIndex})
		}
	}

	// A reparent leaves a gap behind; compact the old group.
	if !sameParent(task.ParentTaskID, newParent) {
		oldSiblings, err := s.taskRepo.ListSiblings(transitionID, task.ParentTaskID, task.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load old siblings: %w", err)
		}
		updates = append(updates, compactionUpdates(oldSiblings)...)
	}

	task.ParentTaskID = newParent
	task.MilestoneID = newMilestone
	task.OrderIndex = targetIndex

	if err := s.taskRepo.ApplyMove(task, updates); err != nil {
		return nil, fmt.Errorf("failed to move task: %w", err)
	}

	s.recordAudit(task.ID, models.AuditActionMove, input.ActorID)

	return s.taskRepo.FindByID(task.ID)
}

// SweepOverdueTasks marks active tasks whose due date has passed as overdue.
// Safe to call repeatedly; already-overdue rows are not rewritten.
func (s *TaskService) SweepOverdueTasks() (int64, error) {
	count, err := s.taskRepo.SweepOverdue(time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to sweep overdue tasks: %w", err)
	}
	return count, nil
}

// DraftTasks uses AI to extract task suggestions from kickoff notes. Draft
// due dates more than a day in the past are dropped rather than surfaced.
func (s *TaskService) DraftTasks(ctx context.Context, notes string) ([]DraftTask, error) {
	if s.aiService == nil {
		return nil, ErrAIServiceNotConfigured
	}

	drafts, err := s.aiService.DraftTasksFromNotes(ctx, notes)
	if err != nil {
		return nil, fmt.Errorf("failed to draft tasks: %w", err)
	}

	if len(drafts) == 0 {
		return nil, ErrAINoTasksDrafted
	}
	if len(drafts) > constants.MaxAIGeneratedTasks {
		return nil, fmt.Errorf("AI drafted too many tasks (max %d)", constants.MaxAIGeneratedTasks)
	}

	valid := make([]DraftTask, 0, len(drafts))
	cutoff := time.Now().Add(-24 * time.Hour)
	for _, draft := range drafts {
		if strings.TrimSpace(draft.Title) == "" {
			continue
		}
		if draft.DueDate != nil && draft.DueDate.Before(cutoff) {
			draft.DueDate = nil
		}
		valid = append(valid, draft)
	}

	if len(valid) == 0 {
		return nil, ErrAINoValidTasks
	}

	return valid, nil
}

// resolveTargetIndex picks the insertion point in the destination sibling
// group (which excludes the moving task). Strategies are tried in order:
// before a sibling, after a sibling, explicit position clamped to
// [0, len(siblings)], end of list.
func resolveTargetIndex(siblings []models.Task, input MoveTaskInput) int {
	if input.BeforeTaskID != nil {
		for i, sibling := range siblings {
			if sibling.ID == *input.BeforeTaskID {
				return i
			}
		}
	}
	if input.AfterTaskID != nil {
		for i, sibling := range siblings {
			if sibling.ID == *input.AfterTaskID {
				return i + 1
			}
		}
	}
	if input.Position != nil {
		position := *input.Position
		if position < 0 {
			position = 0
		}
		if position > len(siblings) {
			position = len(siblings)
		}
		return position
	}
	return len(siblings)
}

// compactionUpdates renumbers an ordered sibling group 0..n-1, returning
// writes only for rows whose index changes.
func compactionUpdates(siblings []models.Task) []repository.OrderIndexUpdate {
	updates := make([]repository.OrderIndexUpdate, 0, len(siblings))
	for i, sibling := range siblings {
		if sibling.OrderIndex != i {
			updates = append(updates, repository.OrderIndexUpdate{TaskID: sibling.ID, OrderIndex: i})
		}
	}
	return updates
}

// sameParent reports whether two parent references denote the same sibling group
func sameParent(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (s *TaskService) findTransition(id uint64) (*models.Transition, error) {
	transition, err := s.transitionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Transition not found")
		}
		return nil, fmt.Errorf("failed to find transition: %w", err)
	}
	return transition, nil
}

// recordAudit writes an audit row; audit failures do not fail the mutation.
func (s *TaskService) recordAudit(taskID uint64, action models.AuditAction, actorID uint64) {
	_ = s.auditRepo.Create(&models.AuditLog{
		EntityType: models.AuditEntityTask,
		EntityID:   taskID,
		Action:     action,
		ActorID:    actorID,
	})
}
