package commands_test

import (
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeleteOrderCommandHandler_Handle_RestocksPendingOrder(t *testing.T) {
	ctx := t.Context()

	productID := kernel.NewUUID()
	target := testPendingOrder(t, nil, productID, "M", 2)
	testProd := testProduct(t, productID, 100, "M", 1)

	cmd, err := commands.NewDeleteOrderCommand(target.ID().String())
	require.NoError(t, err)

	m := newOrderStockMocks()
	mock.InOrder(
		m.uow.On("Begin", ctx).Return(nil).Once(),
		m.orderRepo.On("Get", ctx, target.ID()).Return(target, nil).Once(),
		m.productRepo.On("GetForUpdate", ctx, productID).Return(testProd, nil).Once(),
		m.productRepo.On("Update", ctx, mock.AnythingOfType("*product.Product")).Return(nil).Once(),
		m.orderRepo.On("Delete", ctx, target.ID()).Return(nil).Once(),
		m.uow.On("Commit", ctx).Return(nil).Once(),
		m.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewDeleteOrderCommandHandler(m.factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 3, testProd.Available("M"))
	m.assertExpectations(t)
}

func TestDeleteOrderCommandHandler_Handle_CancelledOrderSkipsRestock(t *testing.T) {
	ctx := t.Context()

	userID := kernel.NewUUID()
	productID := kernel.NewUUID()
	target := testPendingOrder(t, &userID, productID, "M", 2)
	require.NoError(t, target.ChangeStatus(order.Cancelled, order.RoleUser))

	cmd, err := commands.NewDeleteOrderCommand(target.ID().String())
	require.NoError(t, err)

	m := newOrderStockMocks()
	mock.InOrder(
		m.uow.On("Begin", ctx).Return(nil).Once(),
		m.orderRepo.On("Get", ctx, target.ID()).Return(target, nil).Once(),
		m.orderRepo.On("Delete", ctx, target.ID()).Return(nil).Once(),
		m.uow.On("Commit", ctx).Return(nil).Once(),
		m.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewDeleteOrderCommandHandler(m.factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	// cancellation already restocked; deleting must not restock again
	m.productRepo.AssertNotCalled(t, "GetForUpdate", mock.Anything, mock.Anything)
	m.assertExpectations(t)
}

func TestDeleteOrderCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	cmd, err := commands.NewDeleteOrderCommand(orderID.String())
	require.NoError(t, err)

	m := newOrderStockMocks()
	mock.InOrder(
		m.uow.On("Begin", ctx).Return(nil).Once(),
		m.orderRepo.On("Get", ctx, orderID).
			Return(nil, errs.NewObjectNotFoundError("order", orderID.String())).
			Once(),
		m.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewDeleteOrderCommandHandler(m.factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	var notFound *errs.ObjectNotFoundError
	require.ErrorAs(t, err, &notFound)
	m.orderRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	m.assertExpectations(t)
}

func TestDeleteOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.DeleteOrderCommand{} // not constructed properly

	factory := new(MockOrderStockUoWFactory)
	handler := commands.NewDeleteOrderCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrDeleteOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestNewDeleteOrderCommand_EmptyID(t *testing.T) {
	_, err := commands.NewDeleteOrderCommand("")

	require.Error(t, err)
	var required *errs.ValueIsRequiredError
	require.ErrorAs(t, err, &required)
}
