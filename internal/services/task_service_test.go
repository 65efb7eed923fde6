package services

import (
	"testing"
	"time"

	apperrors "github.com/4Clarity/Better-sub003/internal/errors"
	"github.com/4Clarity/Better-sub003/internal/models"
	"github.com/4Clarity/Better-sub003/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TaskServiceTestSuite defines the test suite for TaskService
type TaskServiceTestSuite struct {
	suite.Suite
	db         *gorm.DB
	service    *TaskService
	taskRepo   repository.TaskRepository
	transition *models.Transition
	dueDate    time.Time
}

// SetupTest runs before each test
func (suite *TaskServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Transition{},
		&models.Milestone{},
		&models.Task{},
		&models.AuditLog{},
	)
	suite.Require().NoError(err)

	suite.taskRepo = repository.NewTaskRepository(suite.db)
	transitionRepo := repository.NewTransitionRepository(suite.db)
	milestoneRepo := repository.NewMilestoneRepository(suite.db)
	auditRepo := repository.NewAuditLogRepository(suite.db)
	suite.service = NewTaskService(suite.taskRepo, transitionRepo, milestoneRepo, auditRepo, nil)

	suite.transition = suite.createTestTransition(
		time.Now().AddDate(0, 0, -1),
		time.Now().AddDate(0, 0, 60),
	)
	suite.dueDate = time.Now().Add(48 * time.Hour).Truncate(time.Second).UTC()
}

// TearDownTest runs after each test
func (suite *TaskServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskServiceTestSuite) createTestTransition(start, end time.Time) *models.Transition {
	transition := &models.Transition{
		ContractName: "Network Ops Recompete",
		StartDate:    start,
		EndDate:      end,
		Status:       models.TransitionStatusInProgress,
		CreatedBy:    1,
	}
	suite.db.Create(transition)
	return transition
}

// createTestTask creates a task through the service so order indexes are
// assigned the same way production writes are
func (suite *TaskServiceTestSuite) createTestTask(title string, parentID *uint64) *models.Task {
	task, err := suite.service.CreateTask(CreateTaskInput{
		TransitionID: suite.transition.ID,
		Title:        title,
		DueDate:      suite.dueDate,
		ParentTaskID: parentID,
		ActorID:      1,
	})
	suite.Require().NoError(err)
	return task
}

// assertDenseSiblings verifies the order indexes of a sibling group are
// exactly 0..n-1 in list order
func (suite *TaskServiceTestSuite) assertDenseSiblings(parentID *uint64) []models.Task {
	siblings, err := suite.taskRepo.ListSiblings(suite.transition.ID, parentID, 0)
	suite.Require().NoError(err)
	for i, sibling := range siblings {
		assert.Equal(suite.T(), i, sibling.OrderIndex, "sibling %q at position %d", sibling.Title, i)
	}
	return siblings
}

func (suite *TaskServiceTestSuite) TestCreateTask_AssignsSequentialOrderIndex() {
	first := suite.createTestTask("Task A", nil)
	second := suite.createTestTask("Task B", nil)
	third := suite.createTestTask("Task C", nil)

	assert.Equal(suite.T(), 0, first.OrderIndex)
	assert.Equal(suite.T(), 1, second.OrderIndex)
	assert.Equal(suite.T(), 2, third.OrderIndex)

	// A child starts its own group at zero
	child := suite.createTestTask("Child of A", &first.ID)
	assert.Equal(suite.T(), 0, child.OrderIndex)
}

func (suite *TaskServiceTestSuite) TestCreateTask_Idempotent() {
	first := suite.createTestTask("Inventory handoff", nil)

	second, err := suite.service.CreateTask(CreateTaskInput{
		TransitionID: suite.transition.ID,
		Title:        "Inventory handoff",
		DueDate:      suite.dueDate,
		ActorID:      1,
	})
	suite.Require().NoError(err)

	assert.Equal(suite.T(), first.ID, second.ID)

	var count int64
	suite.db.Model(&models.Task{}).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

func (suite *TaskServiceTestSuite) TestCreateTask_RejectsPastDueDate() {
	_, err := suite.service.CreateTask(CreateTaskInput{
		TransitionID: suite.transition.ID,
		Title:        "Too late",
		DueDate:      time.Now().AddDate(0, 0, -1),
		ActorID:      1,
	})

	var validation *apperrors.ValidationError
	suite.Require().ErrorAs(err, &validation)
	assert.Equal(suite.T(), "Due date cannot be in the past", validation.Message)
}

func (suite *TaskServiceTestSuite) TestCreateTask_RejectsOutOfWindowDueDate() {
	_, err := suite.service.CreateTask(CreateTaskInput{
		TransitionID: suite.transition.ID,
		Title:        "After closeout",
		DueDate:      suite.transition.EndDate.AddDate(0, 0, 15),
		ActorID:      1,
	})

	var validation *apperrors.ValidationError
	suite.Require().ErrorAs(err, &validation)
	assert.Equal(suite.T(), "Task due date must be within transition timeframe", validation.Message)
}

func (suite *TaskServiceTestSuite) TestCreateTask_UnknownTransition() {
	_, err := suite.service.CreateTask(CreateTaskInput{
		TransitionID: 9999,
		Title:        "Orphan",
		DueDate:      suite.dueDate,
		ActorID:      1,
	})

	var notFound *apperrors.NotFoundError
	suite.Require().ErrorAs(err, &notFound)
	assert.Equal(suite.T(), "Transition not found", notFound.Message)
}

func (suite *TaskServiceTestSuite) TestCreateTask_RejectsCrossTransitionParent() {
	other := suite.createTestTransition(
		time.Now().AddDate(0, 0, -1),
		time.Now().AddDate(0, 0, 90),
	)
	foreignParent, err := suite.service.CreateTask(CreateTaskInput{
		TransitionID: other.ID,
		Title:        "Foreign parent",
		DueDate:      suite.dueDate,
		ActorID:      1,
	})
	suite.Require().NoError(err)

	_, err = suite.service.CreateTask(CreateTaskInput{
		TransitionID: suite.transition.ID,
		Title:        "Misfiled child",
		DueDate:      suite.dueDate,
		ParentTaskID: &foreignParent.ID,
		ActorID:      1,
	})

	var validation *apperrors.ValidationError
	suite.Require().ErrorAs(err, &validation)
	assert.Equal(suite.T(), "Parent task must belong to the same transition", validation.Message)
}

func (suite *TaskServiceTestSuite) TestCreateTask_MilestoneChecks() {
	_, err := suite.service.CreateTask(CreateTaskInput{
		TransitionID: suite.transition.ID,
		Title:        "Against missing milestone",
		DueDate:      suite.dueDate,
		MilestoneID:  uint64Ptr(4242),
		ActorID:      1,
	})
	var notFound *apperrors.NotFoundError
	suite.Require().ErrorAs(err, &notFound)
	assert.Equal(suite.T(), "Milestone not found", notFound.Message)

	other := suite.createTestTransition(
		time.Now().AddDate(0, 0, -1),
		time.Now().AddDate(0, 0, 90),
	)
	foreignMilestone := &models.Milestone{
		Title:        "Foreign milestone",
		DueDate:      suite.dueDate,
		Priority:     models.PriorityMedium,
		Status:       models.MilestoneStatusPending,
		TransitionID: other.ID,
	}
	suite.db.Create(foreignMilestone)

	_, err = suite.service.CreateTask(CreateTaskInput{
		TransitionID: suite.transition.ID,
		Title:        "Against foreign milestone",
		DueDate:      suite.dueDate,
		MilestoneID:  &foreignMilestone.ID,
		ActorID:      1,
	})
	var validation *apperrors.ValidationError
	suite.Require().ErrorAs(err, &validation)
	assert.Equal(suite.T(), "Milestone must belong to the same transition", validation.Message)
}

func (suite *TaskServiceTestSuite) TestUpdateTask_ValidatesProvidedDueDate() {
	task := suite.createTestTask("Security review", nil)

	past := time.Now().AddDate(0, 0, -3)
	_, err := suite.service.UpdateTask(task.ID, UpdateTaskInput{DueDate: &past, ActorID: 1})
	var validation *apperrors.ValidationError
	suite.Require().ErrorAs(err, &validation)

	// Omitting the due date leaves the stored value untouched and unvalidated
	title := "Security review (updated)"
	updated, err := suite.service.UpdateTask(task.ID, UpdateTaskInput{Title: &title, ActorID: 1})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), title, updated.Title)
	assert.True(suite.T(), updated.DueDate.Equal(task.DueDate))
}

func (suite *TaskServiceTestSuite) TestUpdateTask_NotFound() {
	status := models.TaskStatusCompleted
	_, err := suite.service.UpdateTask(8080, UpdateTaskInput{Status: &status, ActorID: 1})

	var notFound *apperrors.NotFoundError
	suite.Require().ErrorAs(err, &notFound)
	assert.Equal(suite.T(), "Task not found", notFound.Message)
}

func (suite *TaskServiceTestSuite) TestDeleteTask_CompactsSiblings() {
	suite.createTestTask("Task 0", nil)
	second := suite.createTestTask("Task 1", nil)
	suite.createTestTask("Task 2", nil)
	suite.createTestTask("Task 3", nil)

	suite.Require().NoError(suite.service.DeleteTask(second.ID))

	siblings := suite.assertDenseSiblings(nil)
	suite.Require().Len(siblings, 3)
	assert.Equal(suite.T(), "Task 0", siblings[0].Title)
	assert.Equal(suite.T(), "Task 2", siblings[1].Title)
	assert.Equal(suite.T(), "Task 3", siblings[2].Title)
}

func (suite *TaskServiceTestSuite) TestDeleteTask_RemovesAuditTrail() {
	task := suite.createTestTask("Short lived", nil)

	var before int64
	suite.db.Model(&models.AuditLog{}).
		Where("entity_type = ? AND entity_id = ?", models.AuditEntityTask, task.ID).
		Count(&before)
	assert.Equal(suite.T(), int64(1), before)

	suite.Require().NoError(suite.service.DeleteTask(task.ID))

	var after int64
	suite.db.Model(&models.AuditLog{}).
		Where("entity_type = ? AND entity_id = ?", models.AuditEntityTask, task.ID).
		Count(&after)
	assert.Equal(suite.T(), int64(0), after)
}

func (suite *TaskServiceTestSuite) TestGetTaskHistory() {
	task := suite.createTestTask("Tracked", nil)

	status := models.TaskStatusInProgress
	_, err := suite.service.UpdateTask(task.ID, UpdateTaskInput{Status: &status, ActorID: 2})
	suite.Require().NoError(err)

	history, err := suite.service.GetTaskHistory(task.ID)
	suite.Require().NoError(err)

	suite.Require().Len(history, 2)
	actions := []models.AuditAction{history[0].Action, history[1].Action}
	assert.Contains(suite.T(), actions, models.AuditActionCreate)
	assert.Contains(suite.T(), actions, models.AuditActionUpdate)

	_, err = suite.service.GetTaskHistory(9999)
	var notFound *apperrors.NotFoundError
	suite.Require().ErrorAs(err, &notFound)
}

func (suite *TaskServiceTestSuite) TestGetTaskTree_SequenceLabels() {
	a := suite.createTestTask("A", nil)
	suite.createTestTask("B", nil)
	suite.createTestTask("C", &a.ID)

	tree, err := suite.service.GetTaskTree(suite.transition.ID)
	suite.Require().NoError(err)

	suite.Require().Len(tree, 2)
	assert.Equal(suite.T(), "A", tree[0].Title)
	assert.Equal(suite.T(), "1", tree[0].Sequence)
	suite.Require().Len(tree[0].Children, 1)
	assert.Equal(suite.T(), "C", tree[0].Children[0].Title)
	assert.Equal(suite.T(), "1.1", tree[0].Children[0].Sequence)
	assert.Equal(suite.T(), "B", tree[1].Title)
	assert.Equal(suite.T(), "2", tree[1].Sequence)
}

func (suite *TaskServiceTestSuite) TestGetTaskTree_DeepSequence() {
	suite.createTestTask("Phase 1", nil)
	b := suite.createTestTask("Phase 2", nil)
	b1 := suite.createTestTask("Kickoff", &b.ID)
	suite.createTestTask("Staffing", &b.ID)
	suite.createTestTask("Badging", &b1.ID)

	tree, err := suite.service.GetTaskTree(suite.transition.ID)
	suite.Require().NoError(err)

	suite.Require().Len(tree, 2)
	phase2 := tree[1]
	suite.Require().Len(phase2.Children, 2)
	assert.Equal(suite.T(), "2.1", phase2.Children[0].Sequence)
	assert.Equal(suite.T(), "2.2", phase2.Children[1].Sequence)
	suite.Require().Len(phase2.Children[0].Children, 1)
	assert.Equal(suite.T(), "2.1.1", phase2.Children[0].Children[0].Sequence)
}

func (suite *TaskServiceTestSuite) TestGetTaskTree_SurvivesParentCycle() {
	a := suite.createTestTask("A", nil)
	b := suite.createTestTask("B", &a.ID)

	// Corrupt the hierarchy by hand: A becomes B's child
	suite.db.Model(&models.Task{}).Where("id = ?", a.ID).Update("parent_task_id", b.ID)

	tree, err := suite.service.GetTaskTree(suite.transition.ID)
	suite.Require().NoError(err)
	// No roots remain, but the builder must terminate
	assert.Empty(suite.T(), tree)
}

func (suite *TaskServiceTestSuite) TestMoveTask_AfterTaskID() {
	a := suite.createTestTask("A", nil)
	suite.createTestTask("B", nil)
	suite.createTestTask("C", nil)
	d := suite.createTestTask("D", nil)

	moved, err := suite.service.MoveTask(suite.transition.ID, d.ID, MoveTaskInput{
		AfterTaskID: &a.ID,
		ActorID:     1,
	})
	suite.Require().NoError(err)

	// D lands right after A; B and C shift down by one
	assert.Equal(suite.T(), 1, moved.OrderIndex)
	siblings := suite.assertDenseSiblings(nil)
	titles := []string{siblings[0].Title, siblings[1].Title, siblings[2].Title, siblings[3].Title}
	assert.Equal(suite.T(), []string{"A", "D", "B", "C"}, titles)
}

func (suite *TaskServiceTestSuite) TestMoveTask_BeforeTaskID() {
	suite.createTestTask("A", nil)
	b := suite.createTestTask("B", nil)
	c := suite.createTestTask("C", nil)

	moved, err := suite.service.MoveTask(suite.transition.ID, c.ID, MoveTaskInput{
		BeforeTaskID: &b.ID,
		ActorID:      1,
	})
	suite.Require().NoError(err)

	assert.Equal(suite.T(), 1, moved.OrderIndex)
	siblings := suite.assertDenseSiblings(nil)
	assert.Equal(suite.T(), []string{"A", "C", "B"},
		[]string{siblings[0].Title, siblings[1].Title, siblings[2].Title})
}

func (suite *TaskServiceTestSuite) TestMoveTask_PositionClamped() {
	a := suite.createTestTask("A", nil)
	suite.createTestTask("B", nil)
	suite.createTestTask("C", nil)

	position := 99
	moved, err := suite.service.MoveTask(suite.transition.ID, a.ID, MoveTaskInput{
		Position: &position,
		ActorID:  1,
	})
	suite.Require().NoError(err)

	// Clamped to the end of a two-sibling destination list
	assert.Equal(suite.T(), 2, moved.OrderIndex)
	siblings := suite.assertDenseSiblings(nil)
	assert.Equal(suite.T(), "A", siblings[2].Title)
}

func (suite *TaskServiceTestSuite) TestMoveTask_DefaultsToEnd() {
	a := suite.createTestTask("A", nil)
	suite.createTestTask("B", nil)
	suite.createTestTask("C", nil)

	moved, err := suite.service.MoveTask(suite.transition.ID, a.ID, MoveTaskInput{ActorID: 1})
	suite.Require().NoError(err)

	assert.Equal(suite.T(), 2, moved.OrderIndex)
	suite.assertDenseSiblings(nil)
}

func (suite *TaskServiceTestSuite) TestMoveTask_ReparentCompactsOldGroup() {
	parent := suite.createTestTask("Parent", nil)
	suite.createTestTask("Child 0", &parent.ID)
	c1 := suite.createTestTask("Child 1", &parent.ID)
	suite.createTestTask("Child 2", &parent.ID)

	// Promote the middle child to a root
	moved, err := suite.service.MoveTask(suite.transition.ID, c1.ID, MoveTaskInput{
		ParentProvided: true,
		ParentTaskID:   nil,
		ActorID:        1,
	})
	suite.Require().NoError(err)

	assert.Nil(suite.T(), moved.ParentTaskID)
	assert.Equal(suite.T(), 1, moved.OrderIndex) // after the existing root "Parent"

	// The old group closed its gap
	oldGroup := suite.assertDenseSiblings(&parent.ID)
	suite.Require().Len(oldGroup, 2)
	assert.Equal(suite.T(), "Child 0", oldGroup[0].Title)
	assert.Equal(suite.T(), "Child 2", oldGroup[1].Title)

	suite.assertDenseSiblings(nil)
}

func (suite *TaskServiceTestSuite) TestMoveTask_IntoSubtree() {
	parent := suite.createTestTask("Parent", nil)
	suite.createTestTask("Existing child", &parent.ID)
	loose := suite.createTestTask("Loose end", nil)

	position := 0
	moved, err := suite.service.MoveTask(suite.transition.ID, loose.ID, MoveTaskInput{
		ParentProvided: true,
		ParentTaskID:   &parent.ID,
		Position:       &position,
		ActorID:        1,
	})
	suite.Require().NoError(err)

	suite.Require().NotNil(moved.ParentTaskID)
	assert.Equal(suite.T(), parent.ID, *moved.ParentTaskID)
	assert.Equal(suite.T(), 0, moved.OrderIndex)

	children := suite.assertDenseSiblings(&parent.ID)
	suite.Require().Len(children, 2)
	assert.Equal(suite.T(), "Loose end", children[0].Title)
	assert.Equal(suite.T(), "Existing child", children[1].Title)

	suite.assertDenseSiblings(nil)
}

func (suite *TaskServiceTestSuite) TestMoveTask_DensityAfterManyMoves() {
	ids := make([]uint64, 0, 5)
	for _, title := range []string{"A", "B", "C", "D", "E"} {
		ids = append(ids, suite.createTestTask(title, nil).ID)
	}

	positions := []int{0, 4, 2, 0, 3, 1}
	for i, position := range positions {
		p := position
		_, err := suite.service.MoveTask(suite.transition.ID, ids[i%len(ids)], MoveTaskInput{
			Position: &p,
			ActorID:  1,
		})
		suite.Require().NoError(err)
		suite.assertDenseSiblings(nil)
	}
}

func (suite *TaskServiceTestSuite) TestMoveTask_WrongTransition() {
	task := suite.createTestTask("Here", nil)
	other := suite.createTestTransition(
		time.Now().AddDate(0, 0, -1),
		time.Now().AddDate(0, 0, 90),
	)

	_, err := suite.service.MoveTask(other.ID, task.ID, MoveTaskInput{ActorID: 1})

	var notFound *apperrors.NotFoundError
	suite.Require().ErrorAs(err, &notFound)
	assert.Equal(suite.T(), "Task not found", notFound.Message)
}

func (suite *TaskServiceTestSuite) TestMoveTask_CrossTransitionParentRejected() {
	task := suite.createTestTask("Movable", nil)
	other := suite.createTestTransition(
		time.Now().AddDate(0, 0, -1),
		time.Now().AddDate(0, 0, 90),
	)
	foreign, err := suite.service.CreateTask(CreateTaskInput{
		TransitionID: other.ID,
		Title:        "Foreign parent",
		DueDate:      suite.dueDate,
		ActorID:      1,
	})
	suite.Require().NoError(err)

	_, err = suite.service.MoveTask(suite.transition.ID, task.ID, MoveTaskInput{
		ParentProvided: true,
		ParentTaskID:   &foreign.ID,
		ActorID:        1,
	})

	var validation *apperrors.ValidationError
	suite.Require().ErrorAs(err, &validation)
	assert.Equal(suite.T(), "Parent task must belong to the same transition", validation.Message)
}

func (suite *TaskServiceTestSuite) TestListTasks_OverdueAndUpcoming() {
	// Past-due rows cannot be created through the service; seed directly
	overdue := &models.Task{
		Title:        "Slipped",
		DueDate:      time.Now().AddDate(0, 0, -2),
		Priority:     models.PriorityHigh,
		Status:       models.TaskStatusInProgress,
		TransitionID: suite.transition.ID,
		OrderIndex:   0,
	}
	suite.db.Create(overdue)
	completed := &models.Task{
		Title:        "Done already",
		DueDate:      time.Now().AddDate(0, 0, -5),
		Priority:     models.PriorityLow,
		Status:       models.TaskStatusCompleted,
		TransitionID: suite.transition.ID,
		OrderIndex:   1,
	}
	suite.db.Create(completed)

	soon, err := suite.service.CreateTask(CreateTaskInput{
		TransitionID: suite.transition.ID,
		Title:        "Due soon",
		DueDate:      time.Now().Add(72 * time.Hour),
		ActorID:      1,
	})
	suite.Require().NoError(err)
	_, err = suite.service.CreateTask(CreateTaskInput{
		TransitionID: suite.transition.ID,
		Title:        "Far out",
		DueDate:      time.Now().AddDate(0, 0, 30),
		ActorID:      1,
	})
	suite.Require().NoError(err)

	tasks, total, err := suite.service.ListTasks(ListTasksInput{
		TransitionID: suite.transition.ID,
		Overdue:      true,
	})
	suite.Require().NoError(err)
	suite.Require().Equal(int64(1), total)
	assert.Equal(suite.T(), "Slipped", tasks[0].Title)

	days := 7
	tasks, total, err = suite.service.ListTasks(ListTasksInput{
		TransitionID: suite.transition.ID,
		UpcomingDays: &days,
	})
	suite.Require().NoError(err)
	suite.Require().Equal(int64(1), total)
	assert.Equal(suite.T(), soon.ID, tasks[0].ID)
}

func (suite *TaskServiceTestSuite) TestListTasks_FilterAndSort() {
	high, err := suite.service.CreateTask(CreateTaskInput{
		TransitionID: suite.transition.ID,
		Title:        "Bravo",
		DueDate:      suite.dueDate,
		Priority:     models.PriorityHigh,
		ActorID:      1,
	})
	suite.Require().NoError(err)
	_, err = suite.service.CreateTask(CreateTaskInput{
		TransitionID: suite.transition.ID,
		Title:        "Alpha",
		DueDate:      suite.dueDate.Add(time.Hour),
		Priority:     models.PriorityLow,
		ActorID:      1,
	})
	suite.Require().NoError(err)

	priority := models.PriorityHigh
	tasks, total, err := suite.service.ListTasks(ListTasksInput{
		TransitionID: suite.transition.ID,
		Priority:     &priority,
	})
	suite.Require().NoError(err)
	suite.Require().Equal(int64(1), total)
	assert.Equal(suite.T(), high.ID, tasks[0].ID)

	tasks, _, err = suite.service.ListTasks(ListTasksInput{
		TransitionID: suite.transition.ID,
		SortBy:       "title",
		SortOrder:    "asc",
	})
	suite.Require().NoError(err)
	suite.Require().Len(tasks, 2)
	assert.Equal(suite.T(), "Alpha", tasks[0].Title)
	assert.Equal(suite.T(), "Bravo", tasks[1].Title)

	// An unrecognized sort key falls back to created_at instead of being
	// interpolated into the query
	tasks, _, err = suite.service.ListTasks(ListTasksInput{
		TransitionID: suite.transition.ID,
		SortBy:       "drop table tasks",
	})
	suite.Require().NoError(err)
	assert.Len(suite.T(), tasks, 2)
}

func (suite *TaskServiceTestSuite) TestListTasks_Pagination() {
	for _, title := range []string{"T1", "T2", "T3", "T4", "T5"} {
		suite.createTestTask(title, nil)
	}

	tasks, total, err := suite.service.ListTasks(ListTasksInput{
		TransitionID: suite.transition.ID,
		SortBy:       "title",
		Page:         2,
		PageSize:     2,
	})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(5), total)
	suite.Require().Len(tasks, 2)
	assert.Equal(suite.T(), "T3", tasks[0].Title)
	assert.Equal(suite.T(), "T4", tasks[1].Title)
}

func (suite *TaskServiceTestSuite) TestSweepOverdueTasks() {
	suite.db.Create(&models.Task{
		Title:        "Past due, active",
		DueDate:      time.Now().AddDate(0, 0, -1),
		Priority:     models.PriorityMedium,
		Status:       models.TaskStatusNotStarted,
		TransitionID: suite.transition.ID,
	})
	suite.db.Create(&models.Task{
		Title:        "Past due, finished",
		DueDate:      time.Now().AddDate(0, 0, -1),
		Priority:     models.PriorityMedium,
		Status:       models.TaskStatusCompleted,
		TransitionID: suite.transition.ID,
	})

	count, err := suite.service.SweepOverdueTasks()
	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(1), count)

	var task models.Task
	suite.db.Where("title = ?", "Past due, active").First(&task)
	assert.Equal(suite.T(), models.TaskStatusOverdue, task.Status)

	// Second sweep finds nothing left to mark
	count, err = suite.service.SweepOverdueTasks()
	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(0), count)
}

func uint64Ptr(v uint64) *uint64 {
	return &v
}

// TestTaskServiceTestSuite runs the test suite
func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
