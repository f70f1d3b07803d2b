package collection

import (
	"errors"
	"fmt"

	"github.com/ak-shop/api/apperr"
	"github.com/ak-shop/api/config"
	"github.com/ak-shop/api/models"
	"github.com/ak-shop/api/services/logging"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Service struct {
	db     *gorm.DB
	config *config.Config
	logger *logging.Service
}

func NewService(db *gorm.DB, cfg *config.Config, logger *logging.Service) *Service {
	return &Service{
		db:     db,
		config: cfg,
		logger: logger,
	}
}

type CollectionInput struct {
	Name        string
	Slug        string
	Description string
}

type ListParams struct {
	Page  int
	Limit int
}

type CollectionPage struct {
	Items []models.Collection
	Total int64
	Page  int
	Limit int
}

func (s *Service) List(params ListParams) (*CollectionPage, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 || params.Limit > 100 {
		params.Limit = 20
	}

	var total int64
	if err := s.db.Model(&models.Collection{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count collections: %w", err)
	}

	var items []models.Collection
	err := s.db.Order("name").
		Offset((params.Page - 1) * params.Limit).
		Limit(params.Limit).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	return &CollectionPage{Items: items, Total: total, Page: params.Page, Limit: params.Limit}, nil
}

func (s *Service) Get(id string) (*models.Collection, error) {
	var collection models.Collection
	err := s.db.Preload("Products").Preload("Products.Images.Media").First(&collection, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("collection not found")
		}
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}
	return &collection, nil
}

func (s *Service) checkUnique(name, slug, excludeID string) error {
	query := s.db.Model(&models.Collection{}).Where("name = ? OR slug = ?", name, slug)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check collection uniqueness: %w", err)
	}
	if count > 0 {
		return apperr.Conflict("collection with this name or slug already exists")
	}
	return nil
}

func (s *Service) Create(input CollectionInput) (*models.Collection, error) {
	if err := s.checkUnique(input.Name, input.Slug, ""); err != nil {
		return nil, err
	}

	collection := &models.Collection{
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
	}
	if err := s.db.Create(collection).Error; err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	s.logger.Info("collection created", zap.String("collection_id", collection.ID))
	return collection, nil
}

func (s *Service) Update(id string, input CollectionInput) (*models.Collection, error) {
	collection, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if err := s.checkUnique(input.Name, input.Slug, id); err != nil {
		return nil, err
	}

	updates := map[string]any{
		"name":        input.Name,
		"slug":        input.Slug,
		"description": input.Description,
	}
	if err := s.db.Model(collection).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update collection: %w", err)
	}

	return s.Get(id)
}

func (s *Service) Delete(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("collection_id = ?", id).Delete(&models.ProductCollection{}).Error; err != nil {
			return fmt.Errorf("failed to delete product links: %w", err)
		}

		result := tx.Delete(&models.Collection{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete collection: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return apperr.NotFound("collection not found")
		}
		return nil
	})
}

// AddProducts links products into a collection. Products already present are
// silently skipped; unknown product IDs are rejected.
func (s *Service) AddProducts(id string, productIDs []string) (*models.Collection, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}
	if len(productIDs) == 0 {
		return nil, apperr.BadRequest("no product ids given")
	}

	var existing int64
	if err := s.db.Model(&models.Product{}).Where("id IN ?", productIDs).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("failed to check products: %w", err)
	}
	if existing != int64(len(productIDs)) {
		return nil, apperr.NotFound("one or more products not found")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, productID := range productIDs {
			link := &models.ProductCollection{
				ProductID:    productID,
				CollectionID: id,
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(link).Error; err != nil {
				return fmt.Errorf("failed to link product: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(id)
}

// RemoveProduct unlinks a product without touching the product itself.
func (s *Service) RemoveProduct(id, productID string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}

	result := s.db.Where("collection_id = ? AND product_id = ?", id, productID).Delete(&models.ProductCollection{})
	if result.Error != nil {
		return fmt.Errorf("failed to unlink product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("product not in collection")
	}
	return nil
}
