package models

import (
	"time"

	"gorm.io/gorm"
)

type Collection struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Products []Product `json:"products,omitempty" gorm:"many2many:product_collections;joinForeignKey:CollectionID;joinReferences:ProductID"`
}

func (Collection) TableName() string { return "collections" }

func (c *Collection) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = NewID()
	}
	return nil
}

type ProductCollection struct {
	ProductID    string `json:"productId" gorm:"primaryKey;size:36"`
	CollectionID string `json:"collectionId" gorm:"primaryKey;size:36"`
}

func (ProductCollection) TableName() string { return "product_collections" }
