// Package logs exposes the persisted request trail to administrators.
package logs

import (
	"fmt"
	"time"

	"github.com/ak-shop/api/config"
	"github.com/ak-shop/api/models"
	"github.com/ak-shop/api/services/logging"
	"gorm.io/gorm"
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

type ListParams struct {
	Page      int
	Limit     int
	Method    string
	MinStatus int
	Since     *time.Time
	Until     *time.Time
}

type LogPage struct {
	Items []models.RequestLog
	Total int64
	Page  int
	Limit int
}

func (s *Service) List(params ListParams) (*LogPage, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 || params.Limit > 200 {
		params.Limit = 50
	}

	query := s.db.Model(&models.RequestLog{})
	if params.Method != "" {
		query = query.Where("method = ?", params.Method)
	}
	if params.MinStatus > 0 {
		query = query.Where("status >= ?", params.MinStatus)
	}
	if params.Since != nil {
		query = query.Where("created_at >= ?", *params.Since)
	}
	if params.Until != nil {
		query = query.Where("created_at <= ?", *params.Until)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count request logs: %w", err)
	}

	var items []models.RequestLog
	err := query.Order("created_at DESC").
		Offset((params.Page - 1) * params.Limit).
		Limit(params.Limit).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list request logs: %w", err)
	}

	return &LogPage{Items: items, Total: total, Page: params.Page, Limit: params.Limit}, nil
}

// Purge drops log rows older than the cutoff and reports how many went away.
func (s *Service) Purge(olderThan time.Time) (int64, error) {
	result := s.db.Where("created_at < ?", olderThan).Delete(&models.RequestLog{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to purge request logs: %w", result.Error)
	}
	return result.RowsAffected, nil
}
