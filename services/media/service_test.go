package media

import (
	"context"
	"testing"

	"github.com/ak-shop/api/apperr"
	"github.com/ak-shop/api/models"
	"github.com/ak-shop/api/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// failingStorage errors on the nth upload.
type failingStorage struct {
	*MemoryStorage
	failAt  int
	uploads int
}

func (f *failingStorage) Upload(ctx context.Context, fileName string, content []byte) (*UploadResult, error) {
	f.uploads++
	if f.uploads == f.failAt {
		return nil, assert.AnError
	}
	return f.MemoryStorage.Upload(ctx, fileName, content)
}

func setupService(t *testing.T) (*Service, *gorm.DB, *MemoryStorage) {
	t.Helper()
	db := testutils.SetupFullTestDB(t)
	storage := NewMemoryStorage()
	return NewService(db, testutils.GetTestConfig(), nil, storage), db, storage
}

func pngFile(name string, size int) UploadFile {
	return UploadFile{
		FileName:    name,
		ContentType: "image/png",
		Content:     make([]byte, size),
	}
}

func TestUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("stores files in the default folder", func(t *testing.T) {
		service, db, storage := setupService(t)

		items, err := service.Upload(ctx, []UploadFile{pngFile("a.png", 10), pngFile("b.png", 20)}, nil)

		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, 2, storage.Len())
		assert.Equal(t, models.MediaTypeImage, items[0].FileType)
		require.NotNil(t, items[0].FileID)

		var folder models.MediaFolder
		require.NoError(t, db.Where("name = ?", DefaultFolderName).First(&folder).Error)
		require.NotNil(t, items[0].FolderID)
		assert.Equal(t, folder.ID, *items[0].FolderID)
	})

	t.Run("rejects disallowed type before touching the CDN", func(t *testing.T) {
		service, _, storage := setupService(t)

		_, err := service.Upload(ctx, []UploadFile{{
			FileName:    "malware.exe",
			ContentType: "application/octet-stream",
			Content:     []byte{1},
		}}, nil)

		assert.ErrorIs(t, err, apperr.ErrUnsupportedMedia)
		assert.Zero(t, storage.Len())
	})

	t.Run("rejects oversized file", func(t *testing.T) {
		service, _, _ := setupService(t)

		_, err := service.Upload(ctx, []UploadFile{pngFile("huge.png", 11*1024*1024)}, nil)

		assert.ErrorIs(t, err, apperr.ErrBadRequest)
	})

	t.Run("one bad file fails the whole batch", func(t *testing.T) {
		service, _, storage := setupService(t)

		_, err := service.Upload(ctx, []UploadFile{
			pngFile("ok.png", 10),
			{FileName: "nope.txt", ContentType: "text/plain", Content: []byte("x")},
		}, nil)

		assert.ErrorIs(t, err, apperr.ErrUnsupportedMedia)
		assert.Zero(t, storage.Len())
	})

	t.Run("CDN failure mid-batch returns 502 and rolls back", func(t *testing.T) {
		db := testutils.SetupFullTestDB(t)
		storage := &failingStorage{MemoryStorage: NewMemoryStorage(), failAt: 2}
		service := NewService(db, testutils.GetTestConfig(), nil, storage)

		_, err := service.Upload(ctx, []UploadFile{pngFile("a.png", 10), pngFile("b.png", 10)}, nil)

		assert.ErrorIs(t, err, apperr.ErrBadGateway)
		assert.Zero(t, storage.Len())

		var count int64
		require.NoError(t, db.Model(&models.Media{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("unknown folder", func(t *testing.T) {
		service, _, _ := setupService(t)
		missing := "no-such-folder"

		_, err := service.Upload(ctx, []UploadFile{pngFile("a.png", 10)}, &missing)

		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("empty batch", func(t *testing.T) {
		service, _, _ := setupService(t)

		_, err := service.Upload(ctx, nil, nil)
		assert.ErrorIs(t, err, apperr.ErrBadRequest)
	})
}

func TestListAndGet(t *testing.T) {
	ctx := context.Background()
	service, _, _ := setupService(t)

	items, err := service.Upload(ctx, []UploadFile{pngFile("a.png", 10), pngFile("b.png", 10)}, nil)
	require.NoError(t, err)

	t.Run("lists all", func(t *testing.T) {
		page, err := service.List(ListParams{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Total)
	})

	t.Run("filters by folder", func(t *testing.T) {
		folder, err := service.CreateFolder("Banners", nil)
		require.NoError(t, err)

		page, err := service.List(ListParams{FolderID: &folder.ID})
		require.NoError(t, err)
		assert.Zero(t, page.Total)
	})

	t.Run("gets by id", func(t *testing.T) {
		item, err := service.Get(items[0].ID)
		require.NoError(t, err)
		assert.Equal(t, items[0].FileName, item.FileName)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := service.Get("no-such-id")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	service, _, _ := setupService(t)
	items, err := service.Upload(ctx, []UploadFile{pngFile("a.png", 10)}, nil)
	require.NoError(t, err)

	t.Run("updates alt text and folder", func(t *testing.T) {
		folder, err := service.CreateFolder("Banners", nil)
		require.NoError(t, err)
		alt := "hero banner"

		updated, err := service.Update(items[0].ID, MediaUpdate{AltText: &alt, FolderID: &folder.ID})

		require.NoError(t, err)
		assert.Equal(t, "hero banner", updated.AltText)
		assert.Equal(t, folder.ID, *updated.FolderID)
	})

	t.Run("unknown folder", func(t *testing.T) {
		missing := "no-such-folder"

		_, err := service.Update(items[0].ID, MediaUpdate{FolderID: &missing})
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes record and CDN object", func(t *testing.T) {
		service, db, storage := setupService(t)
		items, err := service.Upload(ctx, []UploadFile{pngFile("a.png", 10)}, nil)
		require.NoError(t, err)

		require.NoError(t, service.Delete(ctx, items[0].ID))

		var count int64
		require.NoError(t, db.Model(&models.Media{}).Count(&count).Error)
		assert.Zero(t, count)
		assert.Zero(t, storage.Len())
	})

	t.Run("unknown id", func(t *testing.T) {
		service, _, _ := setupService(t)

		err := service.Delete(ctx, "no-such-id")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("delete many skips unknown ids", func(t *testing.T) {
		service, _, _ := setupService(t)
		items, err := service.Upload(ctx, []UploadFile{pngFile("a.png", 10), pngFile("b.png", 10)}, nil)
		require.NoError(t, err)

		deleted, err := service.DeleteMany(ctx, []string{items[0].ID, items[1].ID, "no-such-id"})

		require.NoError(t, err)
		assert.Equal(t, int64(2), deleted)
	})
}

func TestFolders(t *testing.T) {
	t.Run("default folder is created once", func(t *testing.T) {
		service, db, _ := setupService(t)

		first, err := service.DefaultFolder()
		require.NoError(t, err)
		second, err := service.DefaultFolder()
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)

		var count int64
		require.NoError(t, db.Model(&models.MediaFolder{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("duplicate folder name", func(t *testing.T) {
		service, _, _ := setupService(t)
		_, err := service.CreateFolder("Banners", nil)
		require.NoError(t, err)

		_, err = service.CreateFolder("Banners", nil)
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("deleting a folder moves its media to the default folder", func(t *testing.T) {
		ctx := context.Background()
		service, db, _ := setupService(t)
		folder, err := service.CreateFolder("Banners", nil)
		require.NoError(t, err)
		items, err := service.Upload(ctx, []UploadFile{pngFile("a.png", 10)}, &folder.ID)
		require.NoError(t, err)

		require.NoError(t, service.DeleteFolder(folder.ID))

		var moved models.Media
		require.NoError(t, db.First(&moved, "id = ?", items[0].ID).Error)
		target, err := service.DefaultFolder()
		require.NoError(t, err)
		require.NotNil(t, moved.FolderID)
		assert.Equal(t, target.ID, *moved.FolderID)
	})

	t.Run("default folder cannot be deleted", func(t *testing.T) {
		service, _, _ := setupService(t)
		folder, err := service.DefaultFolder()
		require.NoError(t, err)

		err = service.DeleteFolder(folder.ID)
		assert.ErrorIs(t, err, apperr.ErrBadRequest)
	})
}
