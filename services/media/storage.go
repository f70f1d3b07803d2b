package media

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// UploadResult is what the CDN hands back for a stored file.
type UploadResult struct {
	URL    string
	FileID string
}

// Storage is the CDN behind the media library.
type Storage interface {
	Upload(ctx context.Context, fileName string, content []byte) (*UploadResult, error)
	Delete(ctx context.Context, fileID string) error
}

// MemoryStorage keeps uploads in memory. Used in tests and as a fallback
// when no CDN is configured.
type MemoryStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{files: make(map[string][]byte)}
}

func (m *MemoryStorage) Upload(_ context.Context, fileName string, content []byte) (*UploadResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	fileID := uuid.NewString()
	m.files[fileID] = content
	return &UploadResult{
		URL:    fmt.Sprintf("memory://%s/%s", fileID, fileName),
		FileID: fileID,
	}, nil
}

func (m *MemoryStorage) Delete(_ context.Context, fileID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.files[fileID]; !ok {
		return fmt.Errorf("file %s not found", fileID)
	}
	delete(m.files, fileID)
	return nil
}

// Len reports how many files are stored. Test helper.
func (m *MemoryStorage) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}
