package repository

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UniversityRepository interface {
	// List returns one page of universities matching filter, ordered by
	// ranking ascending, plus the total number of matches.
	List(ctx context.Context, filter UniversityFilter, offset, limit int) ([]models.University, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.University, error)
	Create(ctx context.Context, university *models.University) error
}

type GormUniversityRepository struct {
	db *gorm.DB
}

func NewUniversityRepository(db *gorm.DB) *GormUniversityRepository {
	return &GormUniversityRepository{db: db}
}

func (r *GormUniversityRepository) List(ctx context.Context, filter UniversityFilter, offset, limit int) ([]models.University, int64, error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.University{}).Scopes(filter.scope)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	universities := make([]models.University, 0, limit)
	err := base().
		Order("ranking ASC").
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&universities).Error
	if err != nil {
		return nil, 0, err
	}
	return universities, total, nil
}

func (r *GormUniversityRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.University, error) {
	var university models.University
	if err := r.db.WithContext(ctx).First(&university, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &university, nil
}

func (r *GormUniversityRepository) Create(ctx context.Context, university *models.University) error {
	return translate(r.db.WithContext(ctx).Create(university).Error)
}
