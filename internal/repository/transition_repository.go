package repository

import (
	"github.com/4Clarity/Better-sub003/internal/database"
	"github.com/4Clarity/Better-sub003/internal/models"
	"github.com/4Clarity/Better-sub003/internal/utils"
	"gorm.io/gorm"
)

// GormTransitionRepository is a GORM implementation of TransitionRepository
type GormTransitionRepository struct {
	db *gorm.DB
}

// NewTransitionRepository creates a new TransitionRepository
func NewTransitionRepository(db *gorm.DB) TransitionRepository {
	return &GormTransitionRepository{db: db}
}

// Create creates a new transition
func (r *GormTransitionRepository) Create(transition *models.Transition) error {
	return r.db.Create(transition).Error
}

// FindByID finds a transition by ID
func (r *GormTransitionRepository) FindByID(id uint64) (*models.Transition, error) {
	var transition models.Transition
	if err := r.db.First(&transition, id).Error; err != nil {
		return nil, err
	}
	return &transition, nil
}

// List retrieves transitions with pagination, newest first
func (r *GormTransitionRepository) List(page, pageSize int) ([]models.Transition, int64, error) {
	var transitions []models.Transition

	query := r.db.Model(&models.Transition{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("created_at DESC")
	if page > 0 && pageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Page:   page,
			Limit:  pageSize,
			Offset: (page - 1) * pageSize,
		}))
	}

	if err := listQuery.Find(&transitions).Error; err != nil {
		return nil, 0, err
	}

	return transitions, total, nil
}

// Update updates a transition
func (r *GormTransitionRepository) Update(transition *models.Transition) error {
	return r.db.Save(transition).Error
}

// Delete soft deletes a transition
func (r *GormTransitionRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Transition{}, id).Error
}
