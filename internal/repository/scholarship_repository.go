package repository

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScholarshipRepository interface {
	// List returns one page ordered by amount descending plus the match count.
	List(ctx context.Context, filter ScholarshipFilter, offset, limit int) ([]models.Scholarship, int64, error)
	// FindEligible returns every scholarship satisfying criteria, ordered by
	// amount descending.
	FindEligible(ctx context.Context, criteria EligibilityCriteria) ([]models.Scholarship, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Scholarship, error)
	Create(ctx context.Context, scholarship *models.Scholarship) error
}

type GormScholarshipRepository struct {
	db *gorm.DB
}

func NewScholarshipRepository(db *gorm.DB) *GormScholarshipRepository {
	return &GormScholarshipRepository{db: db}
}

func (r *GormScholarshipRepository) List(ctx context.Context, filter ScholarshipFilter, offset, limit int) ([]models.Scholarship, int64, error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Scholarship{}).Scopes(filter.scope)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	scholarships := make([]models.Scholarship, 0, limit)
	err := base().
		Order("amount DESC").
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&scholarships).Error
	if err != nil {
		return nil, 0, err
	}
	return scholarships, total, nil
}

func (r *GormScholarshipRepository) FindEligible(ctx context.Context, criteria EligibilityCriteria) ([]models.Scholarship, error) {
	scholarships := make([]models.Scholarship, 0)
	err := r.db.WithContext(ctx).
		Scopes(criteria.scope).
		Order("amount DESC").
		Find(&scholarships).Error
	if err != nil {
		return nil, err
	}
	return scholarships, nil
}

func (r *GormScholarshipRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Scholarship, error) {
	var scholarship models.Scholarship
	if err := r.db.WithContext(ctx).First(&scholarship, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &scholarship, nil
}

func (r *GormScholarshipRepository) Create(ctx context.Context, scholarship *models.Scholarship) error {
	return translate(r.db.WithContext(ctx).Create(scholarship).Error)
}
