package models

import "time"

// RequestLog is the persisted request trail behind the admin log endpoints.
type RequestLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Method    string    `json:"method" gorm:"size:8;not null;index"`
	Path      string    `json:"path" gorm:"not null"`
	Status    int       `json:"status" gorm:"not null;index"`
	LatencyMs int64     `json:"latencyMs"`
	IP        string    `json:"ip"`
	UserAgent string    `json:"userAgent"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
}

func (RequestLog) TableName() string { return "request_logs" }
