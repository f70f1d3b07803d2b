package models

import (
	"time"

	"gorm.io/gorm"
)

// RefreshToken rows form an append-only rotation chain: rotating a token
// sets Revoked and ReplacedByToken on the old row and inserts a new one.
// Explicit logout deletes the row outright.
type RefreshToken struct {
	ID              string    `json:"id" gorm:"primaryKey;size:36"`
	Token           string    `json:"-" gorm:"uniqueIndex;not null"`
	UserID          string    `json:"userId" gorm:"not null;index;size:36"`
	Revoked         bool      `json:"revoked" gorm:"not null;default:false"`
	ReplacedByToken *string   `json:"-"`
	ExpiresAt       time.Time `json:"expiresAt" gorm:"not null"`
	UserAgent       *string   `json:"userAgent"`
	IP              *string   `json:"ip"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (RefreshToken) TableName() string { return "refresh_tokens" }

func (r *RefreshToken) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = NewID()
	}
	return nil
}
