package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type MediaType string

const (
	MediaTypeImage    MediaType = "IMAGE"
	MediaTypeVideo    MediaType = "VIDEO"
	MediaTypeDocument MediaType = "DOCUMENT"
	MediaTypeOther    MediaType = "OTHER"
)

// MediaTypeFromMime maps a MIME type onto the stored media type enum.
func MediaTypeFromMime(mimeType string) MediaType {
	switch strings.SplitN(mimeType, "/", 2)[0] {
	case "image":
		return MediaTypeImage
	case "video":
		return MediaTypeVideo
	case "application":
		return MediaTypeDocument
	default:
		return MediaTypeOther
	}
}

type MediaFolder struct {
	ID       string  `json:"id" gorm:"primaryKey;size:36"`
	Name     string  `json:"name" gorm:"not null"`
	ParentID *string `json:"parentId" gorm:"index;size:36"`
}

func (MediaFolder) TableName() string { return "media_folders" }

func (f *MediaFolder) BeforeCreate(_ *gorm.DB) error {
	if f.ID == "" {
		f.ID = NewID()
	}
	return nil
}

type Media struct {
	ID       string    `json:"id" gorm:"primaryKey;size:36"`
	FileName string    `json:"fileName" gorm:"not null"`
	URL      string    `json:"url" gorm:"not null"`
	FileType MediaType `json:"fileType" gorm:"size:16;not null"`
	Size     int64     `json:"size" gorm:"not null"`
	AltText  string    `json:"altText"`
	FolderID *string   `json:"folderId" gorm:"index;size:36"`
	// FileID is the CDN-side handle needed to delete the stored object.
	FileID    *string   `json:"fileId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Media) TableName() string { return "media" }

func (m *Media) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = NewID()
	}
	return nil
}
