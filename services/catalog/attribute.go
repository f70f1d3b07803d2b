package catalog

import (
	"errors"
	"fmt"

	"github.com/ak-shop/api/apperr"
	"github.com/ak-shop/api/config"
	"github.com/ak-shop/api/models"
	"github.com/ak-shop/api/services/logging"
	"gorm.io/gorm"
)

type AttributeService struct {
	db     *gorm.DB
	config *config.Config
	logger *logging.Service
}

func NewAttributeService(db *gorm.DB, cfg *config.Config, logger *logging.Service) *AttributeService {
	return &AttributeService{
		db:     db,
		config: cfg,
		logger: logger,
	}
}

func (s *AttributeService) List() ([]models.Attribute, error) {
	var attributes []models.Attribute
	if err := s.db.Preload("Values").Order("name").Find(&attributes).Error; err != nil {
		return nil, fmt.Errorf("failed to list attributes: %w", err)
	}
	return attributes, nil
}

func (s *AttributeService) Get(id string) (*models.Attribute, error) {
	var attribute models.Attribute
	err := s.db.Preload("Values").First(&attribute, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("attribute not found")
		}
		return nil, fmt.Errorf("failed to load attribute: %w", err)
	}
	return &attribute, nil
}

func (s *AttributeService) Create(name string, values []string) (*models.Attribute, error) {
	var count int64
	if err := s.db.Model(&models.Attribute{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check attribute name: %w", err)
	}
	if count > 0 {
		return nil, apperr.Conflict("attribute with this name already exists")
	}

	attribute := &models.Attribute{Name: name}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(attribute).Error; err != nil {
			return fmt.Errorf("failed to create attribute: %w", err)
		}
		for _, value := range values {
			attrValue := &models.AttributeValue{AttributeID: attribute.ID, Value: value}
			if err := tx.Create(attrValue).Error; err != nil {
				return fmt.Errorf("failed to create attribute value: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(attribute.ID)
}

// AddValue appends a value to an attribute, ignoring exact duplicates.
func (s *AttributeService) AddValue(attributeID, value string) (*models.AttributeValue, error) {
	if _, err := s.Get(attributeID); err != nil {
		return nil, err
	}

	var existing models.AttributeValue
	err := s.db.Where("attribute_id = ? AND value = ?", attributeID, value).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check attribute value: %w", err)
	}

	attrValue := &models.AttributeValue{AttributeID: attributeID, Value: value}
	if err := s.db.Create(attrValue).Error; err != nil {
		return nil, fmt.Errorf("failed to create attribute value: %w", err)
	}
	return attrValue, nil
}

func (s *AttributeService) Delete(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var valueIDs []string
		if err := tx.Model(&models.AttributeValue{}).Where("attribute_id = ?", id).Pluck("id", &valueIDs).Error; err != nil {
			return fmt.Errorf("failed to list attribute values: %w", err)
		}

		if len(valueIDs) > 0 {
			if err := tx.Where("attribute_value_id IN ?", valueIDs).Delete(&models.VariantAttributeValue{}).Error; err != nil {
				return fmt.Errorf("failed to delete variant links: %w", err)
			}
			if err := tx.Where("attribute_id = ?", id).Delete(&models.AttributeValue{}).Error; err != nil {
				return fmt.Errorf("failed to delete attribute values: %w", err)
			}
		}

		result := tx.Delete(&models.Attribute{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete attribute: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return apperr.NotFound("attribute not found")
		}
		return nil
	})
}

func (s *AttributeService) DeleteMany(ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, apperr.BadRequest("no attribute ids given")
	}

	var deleted int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var valueIDs []string
		if err := tx.Model(&models.AttributeValue{}).Where("attribute_id IN ?", ids).Pluck("id", &valueIDs).Error; err != nil {
			return fmt.Errorf("failed to list attribute values: %w", err)
		}

		if len(valueIDs) > 0 {
			if err := tx.Where("attribute_value_id IN ?", valueIDs).Delete(&models.VariantAttributeValue{}).Error; err != nil {
				return fmt.Errorf("failed to delete variant links: %w", err)
			}
			if err := tx.Where("attribute_id IN ?", ids).Delete(&models.AttributeValue{}).Error; err != nil {
				return fmt.Errorf("failed to delete attribute values: %w", err)
			}
		}

		result := tx.Delete(&models.Attribute{}, "id IN ?", ids)
		if result.Error != nil {
			return fmt.Errorf("failed to delete attributes: %w", result.Error)
		}
		deleted = result.RowsAffected
		return nil
	})
	return deleted, err
}
