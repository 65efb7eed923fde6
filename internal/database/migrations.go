package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Task indexes for sibling-group lookups, filtering and sorting
		{"tasks", "idx_tasks_transition_id", "transition_id"},
		{"tasks", "idx_tasks_sibling_group", "transition_id, parent_task_id, order_index"},
		{"tasks", "idx_tasks_milestone_id", "milestone_id"},
		{"tasks", "idx_tasks_status", "status"},
		{"tasks", "idx_tasks_due_date", "due_date"},
		{"tasks", "idx_tasks_created_at", "created_at"},

		// Milestone indexes
		{"milestones", "idx_milestones_transition_id", "transition_id"},
		{"milestones", "idx_milestones_due_date", "due_date"},
		{"milestones", "idx_milestones_status", "status"},

		// Audit log lookup by owning entity
		{"audit_logs", "idx_audit_logs_entity", "entity_type, entity_id"},
	}

	for _, idx := range indexes {
		// Check if index already exists
		var count int64
		var err error
		if db.Dialector.Name() == "mysql" {
			err = db.Raw(`
				SELECT COUNT(*)
				FROM information_schema.statistics
				WHERE table_schema = DATABASE() AND table_name = ? AND index_name = ?
			`, idx.table, idx.name).Count(&count).Error
		} else {
			err = db.Raw(`
				SELECT COUNT(*)
				FROM pg_indexes
				WHERE tablename = ? AND indexname = ?
			`, idx.table, idx.name).Count(&count).Error
		}

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
