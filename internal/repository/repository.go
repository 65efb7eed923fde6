package repository

import (
	"time"

	"github.com/4Clarity/Better-sub003/internal/models"
)

// OrderIndexUpdate schedules a single sibling's order_index write. Batches of
// these are applied atomically so a reader never observes a sibling group
// with duplicate or missing positions.
type OrderIndexUpdate struct {
	TaskID     uint64
	OrderIndex int
}

// TaskFilter holds filtering, sorting and pagination options for listing
// tasks. It is the typed equivalent of the ad-hoc query objects the HTTP
// layer assembles from query parameters.
type TaskFilter struct {
	TransitionID uint64
	Status       *models.TaskStatus
	Priority     *models.Priority

	// OverdueBefore selects tasks with due_date < t that are not completed.
	OverdueBefore *time.Time
	// UpcomingFrom/UpcomingTo select not-completed tasks with due_date in
	// [from, to].
	UpcomingFrom *time.Time
	UpcomingTo   *time.Time

	// SortColumn must be a validated column name; empty means created_at.
	SortColumn string
	SortDesc   bool

	Page     int
	PageSize int
}

// MilestoneFilter mirrors TaskFilter for milestones.
type MilestoneFilter struct {
	TransitionID uint64
	Status       *models.MilestoneStatus
	Priority     *models.Priority

	OverdueBefore *time.Time
	UpcomingFrom  *time.Time
	UpcomingTo    *time.Time

	SortColumn string
	SortDesc   bool

	Page     int
	PageSize int
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// FindDuplicate finds a task with identical (transitionID, title, dueDate),
	// used by the create idempotency guard
	FindDuplicate(transitionID uint64, title string, dueDate time.Time) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// ListByTransition returns every task of a transition ordered by
	// (parent_task_id, order_index), the load order for tree assembly
	ListByTransition(transitionID uint64) ([]models.Task, error)

	// ListSiblings returns the sibling group for (transitionID, parentTaskID)
	// ordered by order_index, optionally excluding one task
	ListSiblings(transitionID uint64, parentTaskID *uint64, excludeID uint64) ([]models.Task, error)

	// MaxOrderIndex returns the highest order_index in a sibling group, or -1
	// when the group is empty
	MaxOrderIndex(transitionID uint64, parentTaskID *uint64) (int, error)

	// Update updates a task
	Update(task *models.Task) error

	// ApplyMove applies the moved task's new parent/milestone/position plus
	// all scheduled sibling shifts as a single transaction
	ApplyMove(task *models.Task, updates []OrderIndexUpdate) error

	// DeleteWithReindex deletes a task and its audit rows and renumbers the
	// remaining siblings, atomically
	DeleteWithReindex(id uint64, updates []OrderIndexUpdate) error

	// SweepOverdue marks active tasks with due_date < now as overdue and
	// returns the number of rows changed
	SweepOverdue(now time.Time) (int64, error)
}

// MilestoneRepository defines the interface for milestone data access
type MilestoneRepository interface {
	// Create creates a new milestone
	Create(milestone *models.Milestone) error

	// FindByID finds a milestone by ID
	FindByID(id uint64) (*models.Milestone, error)

	// FindDuplicate finds a milestone with identical (transitionID, title, dueDate)
	FindDuplicate(transitionID uint64, title string, dueDate time.Time) (*models.Milestone, error)

	// List retrieves milestones with filtering and pagination
	List(filter MilestoneFilter) ([]models.Milestone, int64, error)

	// Update updates a milestone
	Update(milestone *models.Milestone) error

	// Delete deletes a milestone and its audit rows atomically
	Delete(id uint64) error

	// DeleteMany deletes several milestones of one transition and their audit
	// rows atomically
	DeleteMany(transitionID uint64, ids []uint64) error

	// SweepOverdue marks pending/in-progress milestones with due_date < now
	// as overdue and returns the number of rows changed
	SweepOverdue(now time.Time) (int64, error)
}

// TransitionRepository defines the interface for transition data access
type TransitionRepository interface {
	// Create creates a new transition
	Create(transition *models.Transition) error

	// FindByID finds a transition by ID
	FindByID(id uint64) (*models.Transition, error)

	// List retrieves transitions with pagination
	List(page, pageSize int) ([]models.Transition, int64, error)

	// Update updates a transition
	Update(transition *models.Transition) error

	// Delete soft deletes a transition
	Delete(id uint64) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)
}

// AuditLogRepository defines the interface for audit log data access
type AuditLogRepository interface {
	// Create records an audit entry
	Create(entry *models.AuditLog) error

	// ListByEntity returns the audit trail for one entity, newest first
	ListByEntity(entityType string, entityID uint64) ([]models.AuditLog, error)
}
