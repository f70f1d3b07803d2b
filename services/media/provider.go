package media

import (
	"context"

	"github.com/ak-shop/api/config"
	"github.com/ak-shop/api/services/logging"
	"github.com/ak-shop/api/services/media/imagekit"
	"go.uber.org/fx"
)

// imagekitStorage adapts the ImageKit client to the Storage interface.
type imagekitStorage struct {
	client *imagekit.Client
}

func (s *imagekitStorage) Upload(ctx context.Context, fileName string, content []byte) (*UploadResult, error) {
	fileID, url, err := s.client.Upload(ctx, fileName, content)
	if err != nil {
		return nil, err
	}
	return &UploadResult{URL: url, FileID: fileID}, nil
}

func (s *imagekitStorage) Delete(ctx context.Context, fileID string) error {
	return s.client.Delete(ctx, fileID)
}

// NewStorage picks ImageKit when keys are configured, otherwise an in-memory
// store so development setups work without a CDN account.
func NewStorage(cfg *config.Config, logger *logging.Service) Storage {
	if cfg.ImageKit.PrivateKey == "" {
		logger.Warn("ImageKit not configured, using in-memory media storage")
		return NewMemoryStorage()
	}
	return &imagekitStorage{client: imagekit.NewClient(&cfg.ImageKit)}
}

var Module = fx.Options(
	fx.Provide(NewStorage),
	fx.Provide(NewService),
)
