package commands_test

import (
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_Success(t *testing.T) {
	lines := []services.CartLine{
		{ProductID: kernel.NewUUID().String(), SizeName: "M", Quantity: 2},
		{ProductID: kernel.NewUUID().String(), SizeName: "L", Quantity: 1},
	}

	cmd, err := commands.NewCreateOrderCommand(lines, validShippingInfo(), "leave at door", "", nil)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Len(t, cmd.Lines(), 2)
	assert.Equal(t, "leave at door", cmd.Notes())
	assert.Nil(t, cmd.ExpectedTotal())
}

func TestNewCreateOrderCommand_EmptyCart(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(nil, validShippingInfo(), "", "", nil)

	require.Error(t, err)
	require.ErrorIs(t, err, services.ErrEmptyCart)
}

func TestNewCreateOrderCommand_InvalidQuantity(t *testing.T) {
	lines := []services.CartLine{
		{ProductID: kernel.NewUUID().String(), SizeName: "M", Quantity: 0},
	}

	_, err := commands.NewCreateOrderCommand(lines, validShippingInfo(), "", "", nil)

	require.Error(t, err)
	var invalid *services.InvalidItemError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, 0, invalid.Index)
}

func TestNewCreateOrderCommand_DuplicateLine(t *testing.T) {
	productID := kernel.NewUUID().String()
	lines := []services.CartLine{
		{ProductID: productID, SizeName: "M", Quantity: 1},
		{ProductID: productID, SizeName: " m ", Quantity: 2}, // same pair after normalization
	}

	_, err := commands.NewCreateOrderCommand(lines, validShippingInfo(), "", "", nil)

	require.Error(t, err)
	var duplicate *services.DuplicateItemError
	require.ErrorAs(t, err, &duplicate)
	assert.Equal(t, productID, duplicate.ProductID)
}

func TestCreateOrderCommand_Validate_NotConstructed(t *testing.T) {
	var cmd commands.CreateOrderCommand

	err := cmd.Validate()

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
}
