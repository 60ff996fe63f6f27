package services_test

import (
	"testing"

	"storefront/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartValidator_Validate(t *testing.T) {
	validator := services.NewCartValidator()

	t.Run("should accept a well-formed cart", func(t *testing.T) {
		err := validator.Validate([]services.CartLine{
			{ProductID: "p1", SizeName: "M", Quantity: 2},
			{ProductID: "p1", SizeName: "L", Quantity: 1},
			{ProductID: "p2", SizeName: "M", Quantity: 1},
		})

		assert.NoError(t, err)
	})

	t.Run("should reject an empty cart", func(t *testing.T) {
		assert.ErrorIs(t, validator.Validate(nil), services.ErrEmptyCart)
		assert.ErrorIs(t, validator.Validate([]services.CartLine{}), services.ErrEmptyCart)
	})

	t.Run("should reject a line without a product", func(t *testing.T) {
		err := validator.Validate([]services.CartLine{
			{ProductID: "p1", SizeName: "M", Quantity: 1},
			{ProductID: "", SizeName: "M", Quantity: 1},
		})

		var invalid *services.InvalidItemError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, 1, invalid.Index)
	})

	t.Run("should reject non-positive quantities", func(t *testing.T) {
		for _, quantity := range []int{0, -1} {
			err := validator.Validate([]services.CartLine{
				{ProductID: "p1", SizeName: "M", Quantity: quantity},
			})

			var invalid *services.InvalidItemError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, 0, invalid.Index)
		}
	})

	t.Run("should reject duplicate product and size pairs", func(t *testing.T) {
		err := validator.Validate([]services.CartLine{
			{ProductID: "p1", SizeName: "M", Quantity: 1},
			{ProductID: "p1", SizeName: " m ", Quantity: 2},
		})

		var duplicate *services.DuplicateItemError
		require.ErrorAs(t, err, &duplicate)
		assert.Equal(t, "p1", duplicate.ProductID)
		assert.Equal(t, "m", duplicate.SizeName)
	})

	t.Run("should treat two any-size lines for one product as duplicates", func(t *testing.T) {
		err := validator.Validate([]services.CartLine{
			{ProductID: "p1", SizeName: "", Quantity: 1},
			{ProductID: "p1", SizeName: "  ", Quantity: 1},
		})

		var duplicate *services.DuplicateItemError
		require.ErrorAs(t, err, &duplicate)
	})
}
