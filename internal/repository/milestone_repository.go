package repository

import (
	"fmt"
	"time"

	"github.com/4Clarity/Better-sub003/internal/models"
	"gorm.io/gorm"
)

// GormMilestoneRepository is a GORM implementation of MilestoneRepository
type GormMilestoneRepository struct {
	db *gorm.DB
}

// NewMilestoneRepository creates a new MilestoneRepository
func NewMilestoneRepository(db *gorm.DB) MilestoneRepository {
	return &GormMilestoneRepository{db: db}
}

// Create creates a new milestone
func (r *GormMilestoneRepository) Create(milestone *models.Milestone) error {
	return r.db.Create(milestone).Error
}

// FindByID finds a milestone by ID
func (r *GormMilestoneRepository) FindByID(id uint64) (*models.Milestone, error) {
	var milestone models.Milestone
	if err := r.db.First(&milestone, id).Error; err != nil {
		return nil, err
	}
	return &milestone, nil
}

// FindDuplicate finds a milestone with identical (transitionID, title, dueDate)
func (r *GormMilestoneRepository) FindDuplicate(transitionID uint64, title string, dueDate time.Time) (*models.Milestone, error) {
	var milestone models.Milestone
	err := r.db.
		Where("transition_id = ? AND title = ? AND due_date = ?", transitionID, title, dueDate).
		First(&milestone).Error
	if err != nil {
		return nil, err
	}
	return &milestone, nil
}

// List retrieves milestones with filtering and pagination
func (r *GormMilestoneRepository) List(filter MilestoneFilter) ([]models.Milestone, int64, error) {
	var milestones []models.Milestone

	query := r.db.Model(&models.Milestone{}).Where("milestones.transition_id = ?", filter.TransitionID)

	if filter.Status != nil {
		query = query.Where("milestones.status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("milestones.priority = ?", *filter.Priority)
	}
	if filter.OverdueBefore != nil {
		query = query.Where("milestones.due_date < ? AND milestones.status <> ?",
			*filter.OverdueBefore, models.MilestoneStatusCompleted)
	}
	if filter.UpcomingFrom != nil && filter.UpcomingTo != nil {
		query = query.Where("milestones.due_date >= ? AND milestones.due_date <= ? AND milestones.status <> ?",
			*filter.UpcomingFrom, *filter.UpcomingTo, models.MilestoneStatusCompleted)
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
	listQuery := query.Order(fmt.Sprintf("milestones.%s %s", column, direction))

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		listQuery = listQuery.Offset(offset).Limit(filter.PageSize)
	}

	if err := listQuery.Find(&milestones).Error; err != nil {
		return nil, 0, err
	}

	return milestones, total, nil
}

// Update updates a milestone
func (r *GormMilestoneRepository) Update(milestone *models.Milestone) error {
	return r.db.Save(milestone).Error
}

// Delete removes a milestone and its audit rows atomically
func (r *GormMilestoneRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("entity_type = ? AND entity_id = ?", models.AuditEntityMilestone, id).
			Delete(&models.AuditLog{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Milestone{}, id).Error
	})
}

// DeleteMany removes several milestones of one transition and their audit rows
func (r *GormMilestoneRepository) DeleteMany(transitionID uint64, ids []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("entity_type = ? AND entity_id IN ?", models.AuditEntityMilestone, ids).
			Delete(&models.AuditLog{}).Error; err != nil {
			return err
		}

		return tx.Where("transition_id = ? AND id IN ?", transitionID, ids).
			Delete(&models.Milestone{}).Error
	})
}

// SweepOverdue marks pending/in-progress milestones whose due date has passed
func (r *GormMilestoneRepository) SweepOverdue(now time.Time) (int64, error) {
	result := r.db.Model(&models.Milestone{}).
		Where("due_date < ? AND status IN ?", now, []models.MilestoneStatus{
			models.MilestoneStatusPending,
			models.MilestoneStatusInProgress,
		}).
		Update("status", models.MilestoneStatusOverdue)
	return result.RowsAffected, result.Error
}
