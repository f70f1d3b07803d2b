package catalog

import (
	"errors"
	"fmt"

	"github.com/ak-shop/api/apperr"
	"github.com/ak-shop/api/config"
	"github.com/ak-shop/api/models"
	"github.com/ak-shop/api/services/logging"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CategoryService struct {
	db     *gorm.DB
	config *config.Config
	logger *logging.Service
}

func NewCategoryService(db *gorm.DB, cfg *config.Config, logger *logging.Service) *CategoryService {
	return &CategoryService{
		db:     db,
		config: cfg,
		logger: logger,
	}
}

type CategoryInput struct {
	Name     string
	Slug     string
	ParentID *string
}

func (s *CategoryService) List() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Preload("Children").Order("name").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) Get(id string) (*models.Category, error) {
	var category models.Category
	err := s.db.Preload("Children").Preload("Parent").First(&category, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("category not found")
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	return &category, nil
}

func (s *CategoryService) checkUnique(tx *gorm.DB, name, slug, excludeID string) error {
	query := tx.Model(&models.Category{}).Where("name = ? OR slug = ?", name, slug)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check category uniqueness: %w", err)
	}
	if count > 0 {
		return apperr.Conflict("category with this name or slug already exists")
	}
	return nil
}

func (s *CategoryService) Create(input CategoryInput) (*models.Category, error) {
	if err := s.checkUnique(s.db, input.Name, input.Slug, ""); err != nil {
		return nil, err
	}

	if input.ParentID != nil {
		if _, err := s.Get(*input.ParentID); err != nil {
			return nil, apperr.NotFound("parent category not found")
		}
	}

	category := &models.Category{
		Name:     input.Name,
		Slug:     input.Slug,
		ParentID: input.ParentID,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info("category created", zap.String("category_id", category.ID))
	return category, nil
}

func (s *CategoryService) Update(id string, input CategoryInput) (*models.Category, error) {
	category, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if err := s.checkUnique(s.db, input.Name, input.Slug, id); err != nil {
		return nil, err
	}

	if input.ParentID != nil {
		if *input.ParentID == id {
			return nil, apperr.BadRequest("category cannot be its own parent")
		}
		if _, err := s.Get(*input.ParentID); err != nil {
			return nil, apperr.NotFound("parent category not found")
		}
	}

	updates := map[string]any{
		"name":      input.Name,
		"slug":      input.Slug,
		"parent_id": input.ParentID,
	}
	if err := s.db.Model(category).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return s.Get(id)
}

func (s *CategoryService) Delete(id string) error {
	result := s.db.Delete(&models.Category{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("category not found")
	}
	return nil
}

func (s *CategoryService) DeleteMany(ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, apperr.BadRequest("no category ids given")
	}
	result := s.db.Delete(&models.Category{}, "id IN ?", ids)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete categories: %w", result.Error)
	}
	return result.RowsAffected, nil
}
