package collection

import (
	"testing"

	"github.com/ak-shop/api/apperr"
	"github.com/ak-shop/api/models"
	"github.com/ak-shop/api/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := testutils.SetupFullTestDB(t)
	return NewService(db, testutils.GetTestConfig(), nil), db
}

func createProduct(t *testing.T, db *gorm.DB, slug string) *models.Product {
	t.Helper()
	category := &models.Category{Name: "Cat " + slug, Slug: "cat-" + slug}
	require.NoError(t, db.Create(category).Error)
	product := &models.Product{Name: "Product " + slug, Slug: slug, Description: "d", CategoryID: category.ID}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestCollectionCreate(t *testing.T) {
	t.Run("creates collection", func(t *testing.T) {
		service, _ := setupService(t)

		collection, err := service.Create(CollectionInput{Name: "Summer", Slug: "summer", Description: "Summer picks"})

		require.NoError(t, err)
		assert.NotEmpty(t, collection.ID)
		assert.Equal(t, "Summer", collection.Name)
	})

	t.Run("duplicate name", func(t *testing.T) {
		service, _ := setupService(t)
		_, err := service.Create(CollectionInput{Name: "Summer", Slug: "summer"})
		require.NoError(t, err)

		_, err = service.Create(CollectionInput{Name: "Summer", Slug: "summer-2"})
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("duplicate slug", func(t *testing.T) {
		service, _ := setupService(t)
		_, err := service.Create(CollectionInput{Name: "Summer", Slug: "summer"})
		require.NoError(t, err)

		_, err = service.Create(CollectionInput{Name: "Winter", Slug: "summer"})
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})
}

func TestCollectionUpdate(t *testing.T) {
	service, _ := setupService(t)
	collection, err := service.Create(CollectionInput{Name: "Summer", Slug: "summer"})
	require.NoError(t, err)

	updated, err := service.Update(collection.ID, CollectionInput{Name: "Summer Sale", Slug: "summer-sale", Description: "Discounted"})

	require.NoError(t, err)
	assert.Equal(t, "Summer Sale", updated.Name)
	assert.Equal(t, "Discounted", updated.Description)
}

func TestCollectionDelete(t *testing.T) {
	t.Run("removes collection and links", func(t *testing.T) {
		service, db := setupService(t)
		collection, err := service.Create(CollectionInput{Name: "Summer", Slug: "summer"})
		require.NoError(t, err)
		product := createProduct(t, db, "shoe")
		_, err = service.AddProducts(collection.ID, []string{product.ID})
		require.NoError(t, err)

		require.NoError(t, service.Delete(collection.ID))

		var links int64
		require.NoError(t, db.Model(&models.ProductCollection{}).Count(&links).Error)
		assert.Zero(t, links)

		var products int64
		require.NoError(t, db.Model(&models.Product{}).Count(&products).Error)
		assert.Equal(t, int64(1), products)
	})

	t.Run("unknown id", func(t *testing.T) {
		service, _ := setupService(t)

		err := service.Delete("no-such-id")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestAddProducts(t *testing.T) {
	t.Run("links products and skips duplicates", func(t *testing.T) {
		service, db := setupService(t)
		collection, err := service.Create(CollectionInput{Name: "Summer", Slug: "summer"})
		require.NoError(t, err)
		product := createProduct(t, db, "shoe")

		_, err = service.AddProducts(collection.ID, []string{product.ID})
		require.NoError(t, err)
		loaded, err := service.AddProducts(collection.ID, []string{product.ID})
		require.NoError(t, err)

		assert.Len(t, loaded.Products, 1)
	})

	t.Run("unknown product rejected", func(t *testing.T) {
		service, db := setupService(t)
		collection, err := service.Create(CollectionInput{Name: "Summer", Slug: "summer"})
		require.NoError(t, err)
		product := createProduct(t, db, "shoe")

		_, err = service.AddProducts(collection.ID, []string{product.ID, "no-such-id"})
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("unknown collection", func(t *testing.T) {
		service, db := setupService(t)
		product := createProduct(t, db, "shoe")

		_, err := service.AddProducts("no-such-id", []string{product.ID})
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestRemoveProduct(t *testing.T) {
	t.Run("unlinks product", func(t *testing.T) {
		service, db := setupService(t)
		collection, err := service.Create(CollectionInput{Name: "Summer", Slug: "summer"})
		require.NoError(t, err)
		product := createProduct(t, db, "shoe")
		_, err = service.AddProducts(collection.ID, []string{product.ID})
		require.NoError(t, err)

		require.NoError(t, service.RemoveProduct(collection.ID, product.ID))

		loaded, err := service.Get(collection.ID)
		require.NoError(t, err)
		assert.Empty(t, loaded.Products)
	})

	t.Run("product not in collection", func(t *testing.T) {
		service, db := setupService(t)
		collection, err := service.Create(CollectionInput{Name: "Summer", Slug: "summer"})
		require.NoError(t, err)
		product := createProduct(t, db, "shoe")

		err = service.RemoveProduct(collection.ID, product.ID)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestCollectionList(t *testing.T) {
	service, _ := setupService(t)
	for _, name := range []string{"Winter", "Autumn", "Spring", "Summer"} {
		_, err := service.Create(CollectionInput{Name: name, Slug: "c-" + name})
		require.NoError(t, err)
	}

	t.Run("pages in name order", func(t *testing.T) {
		page, err := service.List(ListParams{Page: 1, Limit: 2})

		require.NoError(t, err)
		assert.Equal(t, int64(4), page.Total)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 2, page.Limit)
		require.Len(t, page.Items, 2)
		assert.Equal(t, "Autumn", page.Items[0].Name)
		assert.Equal(t, "Spring", page.Items[1].Name)
	})

	t.Run("later pages pick up where the first left off", func(t *testing.T) {
		page, err := service.List(ListParams{Page: 2, Limit: 2})

		require.NoError(t, err)
		require.Len(t, page.Items, 2)
		assert.Equal(t, "Summer", page.Items[0].Name)
		assert.Equal(t, "Winter", page.Items[1].Name)
	})

	t.Run("defaults apply to zero params", func(t *testing.T) {
		page, err := service.List(ListParams{})

		require.NoError(t, err)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 20, page.Limit)
		assert.Len(t, page.Items, 4)
	})
}
