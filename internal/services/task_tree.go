package services

import (
	"fmt"
	"strconv"

	"github.com/4Clarity/Better-sub003/internal/dto"
	"github.com/4Clarity/Better-sub003/internal/models"
)

// GetTaskTree assembles the full task forest of a transition. Children are
// nested under their parents in order-index order, and every node carries a
// dotted sequence label: roots are "1", "2", ...; the second child of "2" is
// "2.2", its first child "2.2.1". Pure read, no mutation.
func (s *TaskService) GetTaskTree(transitionID uint64) ([]dto.TaskTreeNode, error) {
	if _, err := s.findTransition(transitionID); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListByTransition(transitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	// Group by parent; key 0 holds the roots (real IDs start at 1).
	groups := make(map[uint64][]models.Task)
	for _, task := range tasks {
		key := uint64(0)
		if task.ParentTaskID != nil {
			key = *task.ParentTaskID
		}
		groups[key] = append(groups[key], task)
	}

	visited := make(map[uint64]bool, len(tasks))
	return buildSubtree(groups, 0, "", visited), nil
}

// buildSubtree attaches a parent's children depth-first. The visited set
// guards against a corrupted parent chain: a task already placed on the
// current path is skipped instead of recursing forever.
func buildSubtree(groups map[uint64][]models.Task, parentKey uint64, prefix string, visited map[uint64]bool) []dto.TaskTreeNode {
	children := groups[parentKey]
	nodes := make([]dto.TaskTreeNode, 0, len(children))

	for _, task := range children {
		if visited[task.ID] {
			continue
		}
		visited[task.ID] = true

		sequence := strconv.Itoa(len(nodes) + 1)
		if prefix != "" {
			sequence = prefix + "." + sequence
		}

		nodes = append(nodes, dto.TaskTreeNode{
			TaskDTO:  dto.ToTaskDTO(task),
			Sequence: sequence,
			Children: buildSubtree(groups, task.ID, sequence, visited),
		})
	}

	return nodes
}
