package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ak-shop/api/apperr"
	"github.com/ak-shop/api/config"
	"github.com/ak-shop/api/models"
	"github.com/ak-shop/api/services/logging"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductService struct {
	db     *gorm.DB
	config *config.Config
	logger *logging.Service
}

func NewProductService(db *gorm.DB, cfg *config.Config, logger *logging.Service) *ProductService {
	return &ProductService{
		db:     db,
		config: cfg,
		logger: logger,
	}
}

type VariantAttributeInput struct {
	Name  string
	Value string
}

type VariantInput struct {
	SKU           string
	Price         float64
	StockQuantity int
	Attributes    []VariantAttributeInput
}

type ProductInput struct {
	Name          string
	Slug          string
	Description   string
	CategoryID    string
	MediaIDs      []string
	CollectionIDs []string
	Variants      []VariantInput
}

type ListProductsParams struct {
	Page       int
	Limit      int
	Search     string
	CategoryID string
	MinPrice   *float64
	MaxPrice   *float64
	Sort       string
}

type ProductPage struct {
	Items []models.Product
	Total int64
	Page  int
	Limit int
}

func (s *ProductService) preloaded(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order")
		}).
		Preload("Images.Media").
		Preload("Variants").
		Preload("Variants.AttributeValues").
		Preload("Variants.AttributeValues.Attribute")
}

// Create builds the product aggregate in one transaction. The category is
// checked up front so a missing category costs nothing but a read.
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	var categoryCount int64
	if err := s.db.Model(&models.Category{}).Where("id = ?", input.CategoryID).Count(&categoryCount).Error; err != nil {
		return nil, fmt.Errorf("failed to check category: %w", err)
	}
	if categoryCount == 0 {
		return nil, apperr.NotFound("category not found")
	}

	var slugCount int64
	if err := s.db.Model(&models.Product{}).Where("slug = ?", input.Slug).Count(&slugCount).Error; err != nil {
		return nil, fmt.Errorf("failed to check product slug: %w", err)
	}
	if slugCount > 0 {
		return nil, apperr.Conflict("product with this slug already exists")
	}

	product := &models.Product{
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
		CategoryID:  input.CategoryID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}

		for i, mediaID := range input.MediaIDs {
			image := &models.ProductImage{
				ProductID:    product.ID,
				MediaID:      mediaID,
				DisplayOrder: i,
			}
			if err := tx.Create(image).Error; err != nil {
				return fmt.Errorf("failed to attach product image: %w", err)
			}
		}

		for _, collectionID := range input.CollectionIDs {
			link := &models.ProductCollection{
				ProductID:    product.ID,
				CollectionID: collectionID,
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(link).Error; err != nil {
				return fmt.Errorf("failed to attach product to collection: %w", err)
			}
		}

		for _, variantInput := range input.Variants {
			if err := s.createVariant(tx, product.ID, variantInput); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("product created", zap.String("product_id", product.ID))
	return s.Get(product.ID)
}

func (s *ProductService) createVariant(tx *gorm.DB, productID string, input VariantInput) error {
	var skuCount int64
	if err := tx.Model(&models.ProductVariant{}).Where("sku = ?", input.SKU).Count(&skuCount).Error; err != nil {
		return fmt.Errorf("failed to check variant SKU: %w", err)
	}
	if skuCount > 0 {
		return apperr.Conflict(fmt.Sprintf("variant with SKU %q already exists", input.SKU))
	}

	variant := &models.ProductVariant{
		SKU:           input.SKU,
		Price:         input.Price,
		StockQuantity: input.StockQuantity,
		ProductID:     productID,
	}
	if err := tx.Create(variant).Error; err != nil {
		return fmt.Errorf("failed to create variant: %w", err)
	}

	for _, attrInput := range input.Attributes {
		value, err := findOrCreateAttributeValue(tx, attrInput.Name, attrInput.Value)
		if err != nil {
			return err
		}
		link := &models.VariantAttributeValue{
			AttributeValueID: value.ID,
			ProductVariantID: variant.ID,
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(link).Error; err != nil {
			return fmt.Errorf("failed to link variant attribute: %w", err)
		}
	}

	return nil
}

func findOrCreateAttributeValue(tx *gorm.DB, name, value string) (*models.AttributeValue, error) {
	var attribute models.Attribute
	err := tx.Where("name = ?", name).First(&attribute).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		attribute = models.Attribute{Name: name}
		err = tx.Create(&attribute).Error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve attribute %q: %w", name, err)
	}

	var attrValue models.AttributeValue
	err = tx.Where("attribute_id = ? AND value = ?", attribute.ID, value).First(&attrValue).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		attrValue = models.AttributeValue{AttributeID: attribute.ID, Value: value}
		err = tx.Create(&attrValue).Error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve attribute value %q: %w", value, err)
	}

	return &attrValue, nil
}

func (s *ProductService) Get(id string) (*models.Product, error) {
	var product models.Product
	err := s.preloaded(s.db).First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	return &product, nil
}

func (s *ProductService) GetBySlug(slug string) (*models.Product, error) {
	var product models.Product
	err := s.preloaded(s.db).First(&product, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	return &product, nil
}

// List returns a page of products with filtering on name, category and
// variant price range.
func (s *ProductService) List(params ListProductsParams) (*ProductPage, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 || params.Limit > 100 {
		params.Limit = 20
	}

	query := s.db.Model(&models.Product{})

	if search := strings.TrimSpace(params.Search); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if params.CategoryID != "" {
		query = query.Where("category_id = ?", params.CategoryID)
	}
	if params.MinPrice != nil {
		query = query.Where("EXISTS (SELECT 1 FROM product_variants pv WHERE pv.product_id = products.id AND pv.price >= ?)", *params.MinPrice)
	}
	if params.MaxPrice != nil {
		query = query.Where("EXISTS (SELECT 1 FROM product_variants pv WHERE pv.product_id = products.id AND pv.price <= ?)", *params.MaxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	switch params.Sort {
	case "name":
		query = query.Order("name")
	case "oldest":
		query = query.Order("created_at")
	default:
		query = query.Order("created_at DESC")
	}

	var items []models.Product
	err := s.preloaded(query).
		Offset((params.Page - 1) * params.Limit).
		Limit(params.Limit).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return &ProductPage{
		Items: items,
		Total: total,
		Page:  params.Page,
		Limit: params.Limit,
	}, nil
}

type ProductUpdate struct {
	Name        *string
	Slug        *string
	Description *string
	CategoryID  *string
	MediaIDs    *[]string
}

func (s *ProductService) Update(id string, input ProductUpdate) (*models.Product, error) {
	product, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Slug != nil && *input.Slug != product.Slug {
		var count int64
		if err := s.db.Model(&models.Product{}).Where("slug = ? AND id <> ?", *input.Slug, id).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to check product slug: %w", err)
		}
		if count > 0 {
			return nil, apperr.Conflict("product with this slug already exists")
		}
		updates["slug"] = *input.Slug
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.CategoryID != nil {
		var count int64
		if err := s.db.Model(&models.Category{}).Where("id = ?", *input.CategoryID).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to check category: %w", err)
		}
		if count == 0 {
			return nil, apperr.NotFound("category not found")
		}
		updates["category_id"] = *input.CategoryID
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(product).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update product: %w", err)
			}
		}

		if input.MediaIDs != nil {
			if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
				return fmt.Errorf("failed to clear product images: %w", err)
			}
			for i, mediaID := range *input.MediaIDs {
				image := &models.ProductImage{
					ProductID:    id,
					MediaID:      mediaID,
					DisplayOrder: i,
				}
				if err := tx.Create(image).Error; err != nil {
					return fmt.Errorf("failed to attach product image: %w", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(id)
}

func (s *ProductService) Delete(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteProductRows(tx, []string{id}); err != nil {
			return err
		}

		result := tx.Delete(&models.Product{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete product: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return apperr.NotFound("product not found")
		}
		return nil
	})
}

// DeleteMany removes the listed products, skipping unknown IDs, and reports
// how many rows went away.
func (s *ProductService) DeleteMany(ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, apperr.BadRequest("no product ids given")
	}

	var deleted int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteProductRows(tx, ids); err != nil {
			return err
		}

		result := tx.Delete(&models.Product{}, "id IN ?", ids)
		if result.Error != nil {
			return fmt.Errorf("failed to delete products: %w", result.Error)
		}
		deleted = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("products deleted", zap.Int64("count", deleted))
	return deleted, nil
}

// deleteProductRows clears dependent rows so the delete never leaves
// orphaned joins behind.
func deleteProductRows(tx *gorm.DB, productIDs []string) error {
	var variantIDs []string
	if err := tx.Model(&models.ProductVariant{}).Where("product_id IN ?", productIDs).Pluck("id", &variantIDs).Error; err != nil {
		return fmt.Errorf("failed to list variants: %w", err)
	}

	if len(variantIDs) > 0 {
		if err := tx.Where("product_variant_id IN ?", variantIDs).Delete(&models.VariantAttributeValue{}).Error; err != nil {
			return fmt.Errorf("failed to delete variant attributes: %w", err)
		}
		if err := tx.Where("product_id IN ?", productIDs).Delete(&models.ProductVariant{}).Error; err != nil {
			return fmt.Errorf("failed to delete variants: %w", err)
		}
	}

	if err := tx.Where("product_id IN ?", productIDs).Delete(&models.ProductImage{}).Error; err != nil {
		return fmt.Errorf("failed to delete product images: %w", err)
	}
	if err := tx.Where("product_id IN ?", productIDs).Delete(&models.ProductCollection{}).Error; err != nil {
		return fmt.Errorf("failed to delete collection links: %w", err)
	}
	return nil
}
