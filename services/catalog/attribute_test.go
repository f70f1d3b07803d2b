package catalog

import (
	"testing"

	"github.com/ak-shop/api/apperr"
	"github.com/ak-shop/api/models"
	"github.com/ak-shop/api/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAttributeService(t *testing.T) (*AttributeService, *gorm.DB) {
	t.Helper()
	db := testutils.SetupFullTestDB(t)
	return NewAttributeService(db, testutils.GetTestConfig(), nil), db
}

func TestAttributeCreate(t *testing.T) {
	t.Run("creates attribute with values", func(t *testing.T) {
		service, _ := setupAttributeService(t)

		attribute, err := service.Create("Size", []string{"S", "M", "L"})

		require.NoError(t, err)
		assert.Equal(t, "Size", attribute.Name)
		assert.Len(t, attribute.Values, 3)
	})

	t.Run("duplicate name", func(t *testing.T) {
		service, _ := setupAttributeService(t)
		_, err := service.Create("Size", nil)
		require.NoError(t, err)

		_, err = service.Create("Size", nil)
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})
}

func TestAttributeAddValue(t *testing.T) {
	t.Run("appends a value", func(t *testing.T) {
		service, _ := setupAttributeService(t)
		attribute, err := service.Create("Color", []string{"Red"})
		require.NoError(t, err)

		value, err := service.AddValue(attribute.ID, "Blue")

		require.NoError(t, err)
		assert.Equal(t, "Blue", value.Value)

		loaded, err := service.Get(attribute.ID)
		require.NoError(t, err)
		assert.Len(t, loaded.Values, 2)
	})

	t.Run("duplicate value returns the existing row", func(t *testing.T) {
		service, _ := setupAttributeService(t)
		attribute, err := service.Create("Color", []string{"Red"})
		require.NoError(t, err)

		value, err := service.AddValue(attribute.ID, "Red")

		require.NoError(t, err)
		assert.Equal(t, attribute.Values[0].ID, value.ID)
	})

	t.Run("unknown attribute", func(t *testing.T) {
		service, _ := setupAttributeService(t)

		_, err := service.AddValue("no-such-id", "Red")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestAttributeDelete(t *testing.T) {
	t.Run("removes values and links", func(t *testing.T) {
		service, db := setupAttributeService(t)
		attribute, err := service.Create("Size", []string{"S", "M"})
		require.NoError(t, err)

		require.NoError(t, service.Delete(attribute.ID))

		var values int64
		require.NoError(t, db.Model(&models.AttributeValue{}).Count(&values).Error)
		assert.Zero(t, values)
	})

	t.Run("unknown id", func(t *testing.T) {
		service, _ := setupAttributeService(t)

		err := service.Delete("no-such-id")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestAttributeList(t *testing.T) {
	service, _ := setupAttributeService(t)
	_, err := service.Create("Size", []string{"S"})
	require.NoError(t, err)
	_, err = service.Create("Color", []string{"Red"})
	require.NoError(t, err)

	attributes, err := service.List()

	require.NoError(t, err)
	require.Len(t, attributes, 2)
	assert.Equal(t, "Color", attributes[0].Name)
}

func TestAttributeDeleteMany(t *testing.T) {
	t.Run("removes attributes with their values", func(t *testing.T) {
		service, db := setupAttributeService(t)
		size, err := service.Create("Size", []string{"S", "M"})
		require.NoError(t, err)
		color, err := service.Create("Color", []string{"Red"})
		require.NoError(t, err)
		_, err = service.Create("Material", []string{"Cotton"})
		require.NoError(t, err)

		deleted, err := service.DeleteMany([]string{size.ID, color.ID})

		require.NoError(t, err)
		assert.Equal(t, int64(2), deleted)

		var attrCount, valueCount int64
		require.NoError(t, db.Model(&models.Attribute{}).Count(&attrCount).Error)
		require.NoError(t, db.Model(&models.AttributeValue{}).Count(&valueCount).Error)
		assert.Equal(t, int64(1), attrCount)
		assert.Equal(t, int64(1), valueCount)
	})

	t.Run("empty input", func(t *testing.T) {
		service, _ := setupAttributeService(t)

		_, err := service.DeleteMany(nil)
		assert.ErrorIs(t, err, apperr.ErrBadRequest)
	})
}
