package handlers

import (
	"context"
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

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns a filtered page of a transition's tasks
func (h *TaskHandler) ListTasks(c *gin.Context) {
	transitionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	input := services.ListTasksInput{
		TransitionID: transitionID,
		SortBy:       c.DefaultQuery("sortBy", "createdAt"),
		SortOrder:    c.DefaultQuery("sortOrder", "asc"),
		Page:         params.Page,
		PageSize:     params.Limit,
	}

	if status := c.Query("status"); status != "" {
		taskStatus := models.TaskStatus(status)
		input.Status = &taskStatus
	}
	if priority := c.Query("priority"); priority != "" {
		taskPriority := models.Priority(priority)
		input.Priority = &taskPriority
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

	tasks, total, err := h.taskService.ListTasks(input)
	if err != nil {
		apierrors.RespondWithDomainError(c, err, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params.Page, params.Limit, total))
}

// CreateTask creates a new task inside a transition
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	transitionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type CreateTaskRequest struct {
		Title        string            `json:"title" binding:"required"`
		Description  string            `json:"description"`
		DueDate      time.Time         `json:"due_date" binding:"required"`
		Priority     models.Priority   `json:"priority"`
		Status       models.TaskStatus `json:"status"`
		MilestoneID  *uint64           `json:"milestone_id"`
		ParentTaskID *uint64           `json:"parent_task_id"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		TransitionID: transitionID,
		Title:        req.Title,
		Description:  req.Description,
		DueDate:      req.DueDate,
		Priority:     req.Priority,
		Status:       req.Status,
		MilestoneID:  req.MilestoneID,
		ParentTaskID: req.ParentTaskID,
		ActorID:      userID,
	})
	if err != nil {
		apierrors.RespondWithDomainError(c, err, "Failed to create task")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(taskID)
	if err != nil {
		apierrors.RespondWithDomainError(c, err, "Failed to fetch task")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateTask updates the provided fields of a task. Absent fields keep their
// stored values; explicit nulls clear the parent/milestone associations.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	// Parse raw JSON to detect which fields were sent
	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateTaskInput{ActorID: userID}

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
		s := models.TaskStatus(status)
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
	if raw, ok := rawReq["milestone_id"]; ok {
		if raw == nil {
			input.ClearMilestone = true
		} else if id, ok := parseJSONID(raw); ok {
			input.MilestoneID = &id
		}
	}
	if raw, ok := rawReq["parent_task_id"]; ok {
		if raw == nil {
			input.ClearParent = true
		} else if id, ok := parseJSONID(raw); ok {
			input.ParentTaskID = &id
		}
	}

	task, err := h.taskService.UpdateTask(taskID, input)
	if err != nil {
		apierrors.RespondWithDomainError(c, err, "Failed to update task")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// GetTaskHistory returns the audit trail of a task
func (h *TaskHandler) GetTaskHistory(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	history, err := h.taskService.GetTaskHistory(taskID)
	if err != nil {
		apierrors.RespondWithDomainError(c, err, "Failed to fetch task history")
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}

// DeleteTask deletes a task and compacts its sibling group
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(taskID); err != nil {
		apierrors.RespondWithDomainError(c, err, "Failed to delete task")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// GetTaskTree returns the nested task forest of a transition with
// hierarchical sequence labels
func (h *TaskHandler) GetTaskTree(c *gin.Context) {
	transitionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	tree, err := h.taskService.GetTaskTree(transitionID)
	if err != nil {
		apierrors.RespondWithDomainError(c, err, "Failed to build task tree")
		return
	}

	c.JSON(http.StatusOK, gin.H{"tree": tree})
}

// MoveTask repositions a task within or across sibling groups. The body may
// carry parent_task_id (null meaning "make root"), milestone_id, and one of
// before_task_id, after_task_id, or position.
func (h *TaskHandler) MoveTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	transitionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		return
	}

	// Raw parse: an omitted parent keeps the current one, an explicit null
	// makes the task a root.
	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.MoveTaskInput{ActorID: userID}

	if raw, ok := rawReq["parent_task_id"]; ok {
		input.ParentProvided = true
		if raw != nil {
			id, ok := parseJSONID(raw)
			if !ok {
				apierrors.BadRequest(c, "Invalid parent task ID")
				return
			}
			input.ParentTaskID = &id
		}
	}
	if raw, ok := rawReq["milestone_id"]; ok {
		input.MilestoneProvided = true
		if raw != nil {
			id, ok := parseJSONID(raw)
			if !ok {
				apierrors.BadRequest(c, "Invalid milestone ID")
				return
			}
			input.MilestoneID = &id
		}
	}
	if raw, ok := rawReq["before_task_id"]; ok && raw != nil {
		if id, ok := parseJSONID(raw); ok {
			input.BeforeTaskID = &id
		}
	}
	if raw, ok := rawReq["after_task_id"]; ok && raw != nil {
		if id, ok := parseJSONID(raw); ok {
			input.AfterTaskID = &id
		}
	}
	if raw, ok := rawReq["position"]; ok && raw != nil {
		if value, isNumber := raw.(float64); isNumber {
			position := int(value)
			input.Position = &position
		}
	}

	task, err := h.taskService.MoveTask(transitionID, taskID, input)
	if err != nil {
		apierrors.RespondWithDomainError(c, err, "Failed to move task")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// SweepOverdueTasks bulk-marks past-due active tasks as overdue
func (h *TaskHandler) SweepOverdueTasks(c *gin.Context) {
	count, err := h.taskService.SweepOverdueTasks()
	if err != nil {
		apierrors.RespondWithDomainError(c, err, "Failed to sweep overdue tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Marked %d tasks as overdue", count),
	})
}

// DraftTasks extracts task suggestions from kickoff notes using AI
func (h *TaskHandler) DraftTasks(c *gin.Context) {
	type DraftTasksRequest struct {
		Notes string `json:"notes" binding:"required"`
	}

	var req DraftTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	drafts, err := h.taskService.DraftTasks(context.Background(), req.Notes)
	if err != nil {
		if err == services.ErrAIServiceNotConfigured {
			apierrors.ServiceUnavailable(c, "AI service is not configured. Please set OPENAI_API_KEY environment variable.")
			return
		}
		apierrors.InternalError(c, fmt.Sprintf("Failed to draft tasks: %v", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": drafts})
}

// parseIDParam parses a numeric path parameter, responding 400 on failure
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, fmt.Sprintf("Invalid %s parameter", name))
		return 0, false
	}
	return id, true
}

// parseJSONID converts a decoded JSON value to an entity ID
func parseJSONID(raw any) (uint64, bool) {
	value, ok := raw.(float64)
	if !ok || value < 0 {
		return 0, false
	}
	return uint64(value), true
}
