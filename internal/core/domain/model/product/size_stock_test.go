package product_test

import (
	"testing"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSize(t *testing.T) {
	assert.Equal(t, "m", product.NormalizeSize("M"))
	assert.Equal(t, "m", product.NormalizeSize(" m "))
	assert.Equal(t, "xl", product.NormalizeSize("XL"))
	assert.Equal(t, "", product.NormalizeSize("   "))
}

func TestNewSizeStock(t *testing.T) {
	validID := kernel.NewUUID()

	t.Run("should create entry with normalized name", func(t *testing.T) {
		s, err := product.NewSizeStock(validID, " M ", 5)

		require.NoError(t, err)
		require.NoError(t, s.Validate())
		assert.Equal(t, "m", s.Name())
		assert.Equal(t, 5, s.Count())
	})

	t.Run("should accept zero count", func(t *testing.T) {
		s, err := product.NewSizeStock(validID, "L", 0)

		require.NoError(t, err)
		assert.Equal(t, 0, s.Count())
	})

	t.Run("should fail with blank name", func(t *testing.T) {
		s, err := product.NewSizeStock(validID, "   ", 5)

		require.Error(t, err)
		assert.Nil(t, s)
		assert.ErrorIs(t, err, product.ErrSizeNameIsRequired)
	})

	t.Run("should fail with negative count", func(t *testing.T) {
		s, err := product.NewSizeStock(validID, "M", -1)

		require.Error(t, err)
		assert.Nil(t, s)
		assert.Contains(t, err.Error(), "count")
	})

	t.Run("should fail with invalid UUID", func(t *testing.T) {
		var invalidID kernel.UUID

		s, err := product.NewSizeStock(invalidID, "M", 5)

		require.Error(t, err)
		assert.Nil(t, s)
	})
}
