package repository

import (
	"fmt"
	"time"

	"github.com/4Clarity/Better-sub003/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// siblingScope narrows a query to one sibling group. NULL and non-NULL
// parents are distinct groups.
func siblingScope(query *gorm.DB, transitionID uint64, parentTaskID *uint64) *gorm.DB {
	query = query.Where("transition_id = ?", transitionID)
	if parentTaskID == nil {
		return query.Where("parent_task_id IS NULL")
	}
	return query.Where("parent_task_id = ?", *parentTaskID)
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// FindDuplicate finds a task with identical (transitionID, title, dueDate)
func (r *GormTaskRepository) FindDuplicate(transitionID uint64, title string, dueDate time.Time) (*models.Task, error) {
	var task models.Task
	err := r.db.
		Where("transition_id = ? AND title = ? AND due_date = ?", transitionID, title, dueDate).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks with filtering and pagination
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{}).Where("tasks.transition_id = ?", filter.TransitionID)

	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("tasks.priority = ?", *filter.Priority)
	}
	if filter.OverdueBefore != nil {
		query = query.Where("tasks.due_date < ? AND tasks.status <> ?",
			*filter.OverdueBefore, models.TaskStatusCompleted)
	}
	if filter.UpcomingFrom != nil && filter.UpcomingTo != nil {
		query = query.Where("tasks.due_date >= ? AND tasks.due_date <= ? AND tasks.status <> ?",
			*filter.UpcomingFrom, *filter.UpcomingTo, models.TaskStatusCompleted)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column := filter.SortColumn
	if column == "" {
		column = "created_at"
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}
	listQuery := query.Order(fmt.Sprintf("tasks.%s %s", column, direction))

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		listQuery = listQuery.Offset(offset).Limit(filter.PageSize)
	}

	if err := listQuery.Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// ListByTransition returns all tasks of a transition in tree-assembly order
func (r *GormTaskRepository) ListByTransition(transitionID uint64) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("transition_id = ?", transitionID).
		Order("parent_task_id ASC, order_index ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListSiblings returns one sibling group ordered by order_index
func (r *GormTaskRepository) ListSiblings(transitionID uint64, parentTaskID *uint64, excludeID uint64) ([]models.Task, error) {
	var tasks []models.Task
	query := siblingScope(r.db, transitionID, parentTaskID)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Order("order_index ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// MaxOrderIndex returns the highest order_index in a sibling group, -1 when empty
func (r *GormTaskRepository) MaxOrderIndex(transitionID uint64, parentTaskID *uint64) (int, error) {
	var max int
	query := siblingScope(r.db.Model(&models.Task{}), transitionID, parentTaskID)
	if err := query.Select("COALESCE(MAX(order_index), -1)").Scan(&max).Error; err != nil {
		return 0, err
	}
	return max, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// ApplyMove writes the sibling shifts and the moved task's own row in one
// transaction so that no reader ever sees a half-reindexed group.
func (r *GormTaskRepository) ApplyMove(task *models.Task, updates []OrderIndexUpdate) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			if err := tx.Model(&models.Task{}).
				Where("id = ?", u.TaskID).
				Update("order_index", u.OrderIndex).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.Task{}).
			Where("id = ?", task.ID).
			Updates(map[string]interface{}{
				"parent_task_id": task.ParentTaskID,
				"milestone_id":   task.MilestoneID,
				"order_index":    task.OrderIndex,
			}).Error
	})
}

// DeleteWithReindex removes a task, its audit rows, and renumbers the
// remaining siblings. Audit rows go first to satisfy referential constraints.
func (r *GormTaskRepository) DeleteWithReindex(id uint64, updates []OrderIndexUpdate) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("entity_type = ? AND entity_id = ?", models.AuditEntityTask, id).
			Delete(&models.AuditLog{}).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.Task{}, id).Error; err != nil {
			return err
		}

		for _, u := range updates {
			if err := tx.Model(&models.Task{}).
				Where("id = ?", u.TaskID).
				Update("order_index", u.OrderIndex).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// SweepOverdue marks active tasks whose due date has passed as overdue
func (r *GormTaskRepository) SweepOverdue(now time.Time) (int64, error) {
	result := r.db.Model(&models.Task{}).
		Where("due_date < ? AND status IN ?", now, []models.TaskStatus{
			models.TaskStatusNotStarted,
			models.TaskStatusInProgress,
		}).
		Update("status", models.TaskStatusOverdue)
	return result.RowsAffected, result.Error
}
