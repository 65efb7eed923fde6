package dto

import (
	"time"

	"github.com/4Clarity/Better-sub003/internal/models"
	"github.com/4Clarity/Better-sub003/internal/utils"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID           uint64            `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	DueDate      time.Time         `json:"due_date"`
	Priority     models.Priority   `json:"priority"`
	Status       models.TaskStatus `json:"status"`
	TransitionID uint64            `json:"transition_id"`
	MilestoneID  *uint64           `json:"milestone_id"`
	ParentTaskID *uint64           `json:"parent_task_id"`
	OrderIndex   int               `json:"order_index"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// TaskTreeNode is a task annotated with its hierarchical display sequence
// ("2.1.3") and nested children, as returned by the tree view.
type TaskTreeNode struct {
	TaskDTO
	Sequence string         `json:"sequence"`
	Children []TaskTreeNode `json:"children"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Data       []TaskDTO                `json:"data"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:           task.ID,
		Title:        task.Title,
		Description:  task.Description,
		DueDate:      task.DueDate,
		Priority:     task.Priority,
		Status:       task.Status,
		TransitionID: task.TransitionID,
		MilestoneID:  task.MilestoneID,
		ParentTaskID: task.ParentTaskID,
		OrderIndex:   task.OrderIndex,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}
}

// ToTaskListResponse converts a page of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, page, limit int, total int64) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}

	return TaskListResponse{
		Data:       items,
		Pagination: utils.NewPaginationResponse(page, limit, total),
	}
}
