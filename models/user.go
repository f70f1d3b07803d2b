package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleCustomer   Role = "CUSTOMER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleStaff      Role = "STAFF"
)

// NewID returns an opaque string identifier for new rows.
func NewID() string {
	return uuid.NewString()
}

type User struct {
	ID                       string     `json:"id" gorm:"primaryKey;size:36"`
	Name                     string     `json:"name" gorm:"not null"`
	Email                    string     `json:"email" gorm:"uniqueIndex;not null"`
	EmailVerified            bool       `json:"emailVerified" gorm:"not null;default:false"`
	VerificationToken        *string    `json:"-"`
	VerificationTokenExpires *time.Time `json:"-"`
	AvatarURL                *string    `json:"avatarUrl"`
	Role                     Role       `json:"role" gorm:"size:32;default:CUSTOMER"`
	// Nullable: OAuth-only accounts have no password.
	Password            *string    `json:"-"`
	ResetPasswordToken  *string    `json:"-"`
	ResetPasswordExpires *time.Time `json:"-"`
	GoogleID            *string    `json:"-" gorm:"uniqueIndex"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`

	Profile *Profile `json:"profile,omitempty" gorm:"foreignKey:UserID"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = NewID()
	}
	return nil
}

type Profile struct {
	ID        string     `json:"id" gorm:"primaryKey;size:36"`
	FirstName string     `json:"firstName" gorm:"not null"`
	LastName  string     `json:"lastName" gorm:"not null"`
	Phone     *string    `json:"phone" gorm:"uniqueIndex"`
	Bio       string     `json:"bio" gorm:"default:''"`
	Birthday  *time.Time `json:"birthday"`
	UserID    string     `json:"userId" gorm:"uniqueIndex;not null;size:36"`
}

func (Profile) TableName() string { return "profiles" }

func (p *Profile) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = NewID()
	}
	return nil
}

type Address struct {
	ID         string `json:"id" gorm:"primaryKey;size:36"`
	Street     string `json:"street" gorm:"not null"`
	City       string `json:"city" gorm:"not null"`
	Province   string `json:"province" gorm:"not null"`
	PostalCode string `json:"postalCode" gorm:"not null"`
	Country    string `json:"country" gorm:"not null"`
	IsDefault  bool   `json:"isDefault" gorm:"default:false"`
	UserID     string `json:"userId" gorm:"not null;index;size:36"`
}

func (Address) TableName() string { return "addresses" }

func (a *Address) BeforeCreate(_ *gorm.DB) error {
	if a.ID == "" {
		a.ID = NewID()
	}
	return nil
}
