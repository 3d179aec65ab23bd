package repositories

import (
	"quickfiss/internal/models"

	"gorm.io/gorm"
)

type CatalogRepository interface {
	ListCategories() ([]models.Category, error)
	ListServices() ([]models.Service, error)
	GetCategoriesByIDs(ids []uint) ([]models.Category, error)
	GetServicesByIDs(ids []uint) ([]models.Service, error)
	GetTagsByIDs(ids []uint) ([]models.Tag, error)
	EnsureTags(names []string) ([]models.Tag, error)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("name").Find(&categories).Error; err != nil {
		return nil, ErrDatabaseOperation
	}
	return categories, nil
}

func (r *catalogRepository) ListServices() ([]models.Service, error) {
	var services []models.Service
	if err := r.db.Preload("Category").Order("name").Find(&services).Error; err != nil {
		return nil, ErrDatabaseOperation
	}
	return services, nil
}

func (r *catalogRepository) GetCategoriesByIDs(ids []uint) ([]models.Category, error) {
	var categories []models.Category
	if len(ids) == 0 {
		return categories, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, ErrDatabaseOperation
	}
	return categories, nil
}

func (r *catalogRepository) GetServicesByIDs(ids []uint) ([]models.Service, error) {
	var services []models.Service
	if len(ids) == 0 {
		return services, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&services).Error; err != nil {
		return nil, ErrDatabaseOperation
	}
	return services, nil
}

func (r *catalogRepository) GetTagsByIDs(ids []uint) ([]models.Tag, error) {
	var tags []models.Tag
	if len(ids) == 0 {
		return tags, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, ErrDatabaseOperation
	}
	return tags, nil
}

// EnsureTags resolves tag names to rows, creating missing ones.
func (r *catalogRepository) EnsureTags(names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		var tag models.Tag
		if err := r.db.Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
			return nil, ErrDatabaseOperation
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
