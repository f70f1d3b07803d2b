package models

import (
	"time"

	"gorm.io/gorm"
)

type Category struct {
	ID       string  `json:"id" gorm:"primaryKey;size:36"`
	Name     string  `json:"name" gorm:"uniqueIndex;not null"`
	Slug     string  `json:"slug" gorm:"uniqueIndex;not null"`
	ParentID *string `json:"parentId" gorm:"index;size:36"`

	Parent   *Category  `json:"parent,omitempty" gorm:"foreignKey:ParentID"`
	Children []Category `json:"children,omitempty" gorm:"foreignKey:ParentID"`
}

func (Category) TableName() string { return "categories" }

func (c *Category) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = NewID()
	}
	return nil
}

type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	Name        string    `json:"name" gorm:"not null"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;not null"`
	Description string    `json:"description" gorm:"not null"`
	CategoryID  string    `json:"categoryId" gorm:"not null;index;size:36"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Category *Category        `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Images   []ProductImage   `json:"images,omitempty" gorm:"foreignKey:ProductID"`
	Variants []ProductVariant `json:"variants,omitempty" gorm:"foreignKey:ProductID"`
}

func (Product) TableName() string { return "products" }

func (p *Product) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = NewID()
	}
	return nil
}

type ProductVariant struct {
	ID            string  `json:"id" gorm:"primaryKey;size:36"`
	SKU           string  `json:"sku" gorm:"uniqueIndex;not null"`
	Price         float64 `json:"price" gorm:"not null"`
	StockQuantity int     `json:"stockQuantity" gorm:"default:0"`
	ProductID     string  `json:"productId" gorm:"not null;index;size:36"`

	AttributeValues []AttributeValue `json:"attributeValues,omitempty" gorm:"many2many:variant_attribute_values;joinForeignKey:ProductVariantID;joinReferences:AttributeValueID"`
}

func (ProductVariant) TableName() string { return "product_variants" }

func (v *ProductVariant) BeforeCreate(_ *gorm.DB) error {
	if v.ID == "" {
		v.ID = NewID()
	}
	return nil
}

type ProductImage struct {
	ID           string `json:"id" gorm:"primaryKey;size:36"`
	DisplayOrder int    `json:"displayOrder" gorm:"default:0"`
	ProductID    string `json:"productId" gorm:"not null;index;size:36;uniqueIndex:idx_product_media"`
	MediaID      string `json:"mediaId" gorm:"not null;size:36;uniqueIndex:idx_product_media"`

	Media *Media `json:"media,omitempty" gorm:"foreignKey:MediaID"`
}

func (ProductImage) TableName() string { return "product_images" }

func (i *ProductImage) BeforeCreate(_ *gorm.DB) error {
	if i.ID == "" {
		i.ID = NewID()
	}
	return nil
}

type Attribute struct {
	ID   string `json:"id" gorm:"primaryKey;size:36"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`

	Values []AttributeValue `json:"values,omitempty" gorm:"foreignKey:AttributeID"`
}

func (Attribute) TableName() string { return "attributes" }

func (a *Attribute) BeforeCreate(_ *gorm.DB) error {
	if a.ID == "" {
		a.ID = NewID()
	}
	return nil
}

type AttributeValue struct {
	ID          string `json:"id" gorm:"primaryKey;size:36"`
	Value       string `json:"value" gorm:"not null;uniqueIndex:idx_attribute_value"`
	AttributeID string `json:"attributeId" gorm:"not null;size:36;uniqueIndex:idx_attribute_value"`

	Attribute *Attribute `json:"attribute,omitempty" gorm:"foreignKey:AttributeID"`
}

func (AttributeValue) TableName() string { return "attribute_values" }

func (v *AttributeValue) BeforeCreate(_ *gorm.DB) error {
	if v.ID == "" {
		v.ID = NewID()
	}
	return nil
}

// VariantAttributeValue is the join table linking variants to the
// de-duplicated attribute values they carry.
type VariantAttributeValue struct {
	AttributeValueID string `json:"attributeValueId" gorm:"primaryKey;size:36"`
	ProductVariantID string `json:"productVariantId" gorm:"primaryKey;size:36"`
}

func (VariantAttributeValue) TableName() string { return "variant_attribute_values" }
