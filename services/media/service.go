package media

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/ak-shop/api/apperr"
	"github.com/ak-shop/api/config"
	"github.com/ak-shop/api/models"
	"github.com/ak-shop/api/services/logging"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultFolderName is the folder uploads land in when none is chosen.
const DefaultFolderName = "All Files"

type Service struct {
	db      *gorm.DB
	config  *config.Config
	logger  *logging.Service
	storage Storage
}

func NewService(db *gorm.DB, cfg *config.Config, logger *logging.Service, storage Storage) *Service {
	return &Service{
		db:      db,
		config:  cfg,
		logger:  logger,
		storage: storage,
	}
}

// UploadFile is one file from a multipart upload request.
type UploadFile struct {
	FileName    string
	ContentType string
	Content     []byte
	AltText     string
}

func (s *Service) validate(file UploadFile) error {
	if int64(len(file.Content)) > s.config.Upload.MaxFileSize {
		return apperr.BadRequest(fmt.Sprintf("file %q exceeds the %d byte limit", file.FileName, s.config.Upload.MaxFileSize))
	}
	if !slices.Contains(s.config.Upload.AllowedTypes, file.ContentType) {
		return apperr.UnsupportedMedia(fmt.Sprintf("file type %q is not allowed", file.ContentType))
	}
	return nil
}

// DefaultFolder finds or creates the catch-all folder.
func (s *Service) DefaultFolder() (*models.MediaFolder, error) {
	var folder models.MediaFolder
	err := s.db.Where("name = ? AND parent_id IS NULL", DefaultFolderName).First(&folder).Error
	if err == nil {
		return &folder, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load default folder: %w", err)
	}

	folder = models.MediaFolder{Name: DefaultFolderName}
	if err := s.db.Create(&folder).Error; err != nil {
		return nil, fmt.Errorf("failed to create default folder: %w", err)
	}
	return &folder, nil
}

// Upload validates every file first, then pushes them to the CDN and records
// them. A CDN failure mid-batch aborts the whole request; files already
// stored are removed again on a best-effort basis.
func (s *Service) Upload(ctx context.Context, files []UploadFile, folderID *string) ([]models.Media, error) {
	if len(files) == 0 {
		return nil, apperr.BadRequest("no files uploaded")
	}

	for _, file := range files {
		if err := s.validate(file); err != nil {
			return nil, err
		}
	}

	if folderID == nil {
		folder, err := s.DefaultFolder()
		if err != nil {
			return nil, err
		}
		folderID = &folder.ID
	} else {
		var count int64
		if err := s.db.Model(&models.MediaFolder{}).Where("id = ?", *folderID).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to check folder: %w", err)
		}
		if count == 0 {
			return nil, apperr.NotFound("media folder not found")
		}
	}

	var uploaded []models.Media
	for _, file := range files {
		result, err := s.storage.Upload(ctx, file.FileName, file.Content)
		if err != nil {
			s.rollbackUploads(ctx, uploaded)
			return nil, apperr.BadGateway("failed to store file on CDN", err)
		}

		fileID := result.FileID
		uploaded = append(uploaded, models.Media{
			FileName: file.FileName,
			URL:      result.URL,
			FileType: models.MediaTypeFromMime(file.ContentType),
			Size:     int64(len(file.Content)),
			AltText:  file.AltText,
			FolderID: folderID,
			FileID:   &fileID,
		})
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i := range uploaded {
			if err := tx.Create(&uploaded[i]).Error; err != nil {
				return fmt.Errorf("failed to record media: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		s.rollbackUploads(ctx, uploaded)
		return nil, err
	}

	s.logger.Info("media uploaded", zap.Int("count", len(uploaded)))
	return uploaded, nil
}

func (s *Service) rollbackUploads(ctx context.Context, uploaded []models.Media) {
	for _, item := range uploaded {
		if item.FileID == nil {
			continue
		}
		if err := s.storage.Delete(ctx, *item.FileID); err != nil {
			s.logger.Error("failed to roll back CDN upload",
				zap.Error(err),
				zap.String("file_id", *item.FileID))
		}
	}
}

type ListParams struct {
	FolderID *string
	Page     int
	Limit    int
}

type MediaPage struct {
	Items []models.Media
	Total int64
	Page  int
	Limit int
}

func (s *Service) List(params ListParams) (*MediaPage, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 || params.Limit > 100 {
		params.Limit = 20
	}

	query := s.db.Model(&models.Media{})
	if params.FolderID != nil {
		query = query.Where("folder_id = ?", *params.FolderID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count media: %w", err)
	}

	var items []models.Media
	err := query.Order("created_at DESC").
		Offset((params.Page - 1) * params.Limit).
		Limit(params.Limit).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list media: %w", err)
	}

	return &MediaPage{Items: items, Total: total, Page: params.Page, Limit: params.Limit}, nil
}

func (s *Service) Get(id string) (*models.Media, error) {
	var item models.Media
	err := s.db.First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("media not found")
		}
		return nil, fmt.Errorf("failed to load media: %w", err)
	}
	return &item, nil
}

type MediaUpdate struct {
	FileName *string
	AltText  *string
	FolderID *string
}

func (s *Service) Update(id string, input MediaUpdate) (*models.Media, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.FileName != nil {
		updates["file_name"] = *input.FileName
	}
	if input.AltText != nil {
		updates["alt_text"] = *input.AltText
	}
	if input.FolderID != nil {
		var count int64
		if err := s.db.Model(&models.MediaFolder{}).Where("id = ?", *input.FolderID).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to check folder: %w", err)
		}
		if count == 0 {
			return nil, apperr.NotFound("media folder not found")
		}
		updates["folder_id"] = *input.FolderID
	}

	if len(updates) > 0 {
		if err := s.db.Model(item).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update media: %w", err)
		}
	}

	return s.Get(id)
}

// Delete removes the record and then the CDN object. A CDN failure is logged
// but does not resurrect the record.
func (s *Service) Delete(ctx context.Context, id string) error {
	item, err := s.Get(id)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("media_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
			return fmt.Errorf("failed to unlink product images: %w", err)
		}
		if err := tx.Delete(&models.Media{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete media: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if item.FileID != nil {
		if err := s.storage.Delete(ctx, *item.FileID); err != nil {
			s.logger.Error("failed to delete CDN object",
				zap.Error(err),
				zap.String("file_id", *item.FileID))
		}
	}

	return nil
}

// DeleteMany removes the listed media records, skipping unknown IDs.
func (s *Service) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, apperr.BadRequest("no media ids given")
	}

	var items []models.Media
	if err := s.db.Where("id IN ?", ids).Find(&items).Error; err != nil {
		return 0, fmt.Errorf("failed to load media: %w", err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("media_id IN ?", ids).Delete(&models.ProductImage{}).Error; err != nil {
			return fmt.Errorf("failed to unlink product images: %w", err)
		}
		if err := tx.Where("id IN ?", ids).Delete(&models.Media{}).Error; err != nil {
			return fmt.Errorf("failed to delete media: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	for _, item := range items {
		if item.FileID == nil {
			continue
		}
		if err := s.storage.Delete(ctx, *item.FileID); err != nil {
			s.logger.Error("failed to delete CDN object",
				zap.Error(err),
				zap.String("file_id", *item.FileID))
		}
	}

	return int64(len(items)), nil
}

func (s *Service) ListFolders() ([]models.MediaFolder, error) {
	var folders []models.MediaFolder
	if err := s.db.Order("name").Find(&folders).Error; err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	return folders, nil
}

func (s *Service) CreateFolder(name string, parentID *string) (*models.MediaFolder, error) {
	query := s.db.Model(&models.MediaFolder{}).Where("name = ?", name)
	if parentID != nil {
		query = query.Where("parent_id = ?", *parentID)
	} else {
		query = query.Where("parent_id IS NULL")
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check folder name: %w", err)
	}
	if count > 0 {
		return nil, apperr.Conflict("folder with this name already exists")
	}

	folder := &models.MediaFolder{Name: name, ParentID: parentID}
	if err := s.db.Create(folder).Error; err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}
	return folder, nil
}

// DeleteFolder removes a folder, moving its contents into the default
// folder. The default folder itself cannot be deleted.
func (s *Service) DeleteFolder(id string) error {
	var folder models.MediaFolder
	err := s.db.First(&folder, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("media folder not found")
		}
		return fmt.Errorf("failed to load folder: %w", err)
	}

	if folder.Name == DefaultFolderName && folder.ParentID == nil {
		return apperr.BadRequest("the default folder cannot be deleted")
	}

	target, err := s.DefaultFolder()
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Media{}).Where("folder_id = ?", id).Update("folder_id", target.ID).Error; err != nil {
			return fmt.Errorf("failed to move media to default folder: %w", err)
		}
		if err := tx.Model(&models.MediaFolder{}).Where("parent_id = ?", id).Update("parent_id", folder.ParentID).Error; err != nil {
			return fmt.Errorf("failed to reparent child folders: %w", err)
		}
		if err := tx.Delete(&models.MediaFolder{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete folder: %w", err)
		}
		return nil
	})
}
