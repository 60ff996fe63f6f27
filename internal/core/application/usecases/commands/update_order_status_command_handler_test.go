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

func testPendingOrder(t *testing.T, userID *kernel.UUID, productID kernel.UUID, sizeName string, quantity int) *order.Order {
	t.Helper()

	item, err := order.NewItem(productID, "Test Sneaker", sizeName, quantity, kernel.MustMoneyFromFloat(100))
	require.NoError(t, err)

	address, err := order.NewAddress("Jane Smith", "12 Main St", "US", "CA", "", "", "")
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(), order.NewOrderNumber(), userID,
		[]order.Item{item}, kernel.MustMoneyFromFloat(50), address, "",
	)
	require.NoError(t, err)
	return o
}

type orderStockMocks struct {
	orderRepo   *MockOrderRepository
	productRepo *MockProductRepository
	uow         *MockOrderStockUoW
	factory     *MockOrderStockUoWFactory
}

func newOrderStockMocks() *orderStockMocks {
	m := &orderStockMocks{
		orderRepo:   new(MockOrderRepository),
		productRepo: new(MockProductRepository),
		uow:         new(MockOrderStockUoW),
		factory:     new(MockOrderStockUoWFactory),
	}

	m.factory.On("Create").Return(m.uow).Once()
	m.uow.On("OrderRepository").Return(m.orderRepo).Maybe()
	m.uow.On("ProductRepository").Return(m.productRepo).Maybe()

	return m
}

func (m *orderStockMocks) assertExpectations(t *testing.T) {
	t.Helper()
	m.orderRepo.AssertExpectations(t)
	m.productRepo.AssertExpectations(t)
	m.uow.AssertExpectations(t)
	m.factory.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_AdminCompletes(t *testing.T) {
	ctx := t.Context()

	productID := kernel.NewUUID()
	target := testPendingOrder(t, nil, productID, "M", 2)

	cmd, err := commands.NewUpdateOrderStatusCommand(
		target.ID().String(), "completed", kernel.NewUUID().String(), order.RoleAdmin,
	)
	require.NoError(t, err)

	m := newOrderStockMocks()
	mock.InOrder(
		m.uow.On("Begin", ctx).Return(nil).Once(),
		m.orderRepo.On("Get", ctx, target.ID()).Return(target, nil).Once(),
		m.orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		m.uow.On("Commit", ctx).Return(nil).Once(),
		m.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewUpdateOrderStatusCommandHandler(m.factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Completed, target.Status())
	// completion keeps the stock sold, so no product access at all
	m.productRepo.AssertNotCalled(t, "GetForUpdate", mock.Anything, mock.Anything)
	m.assertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_OwnerCancelsAndRestocks(t *testing.T) {
	ctx := t.Context()

	userID := kernel.NewUUID()
	productID := kernel.NewUUID()
	target := testPendingOrder(t, &userID, productID, "M", 2)
	testProd := testProduct(t, productID, 100, "M", 3)

	cmd, err := commands.NewUpdateOrderStatusCommand(
		target.ID().String(), "cancelled", userID.String(), order.RoleUser,
	)
	require.NoError(t, err)

	m := newOrderStockMocks()
	mock.InOrder(
		m.uow.On("Begin", ctx).Return(nil).Once(),
		m.orderRepo.On("Get", ctx, target.ID()).Return(target, nil).Once(),
		m.productRepo.On("GetForUpdate", ctx, productID).Return(testProd, nil).Once(),
		m.productRepo.On("Update", ctx, mock.AnythingOfType("*product.Product")).Return(nil).Once(),
		m.orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		m.uow.On("Commit", ctx).Return(nil).Once(),
		m.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewUpdateOrderStatusCommandHandler(m.factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, target.Status())
	// the two cancelled units went back to the size entry
	assert.Equal(t, 5, testProd.Available("M"))
	m.assertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_NotOwner(t *testing.T) {
	ctx := t.Context()

	ownerID := kernel.NewUUID()
	strangerID := kernel.NewUUID()
	productID := kernel.NewUUID()
	target := testPendingOrder(t, &ownerID, productID, "M", 1)

	cmd, err := commands.NewUpdateOrderStatusCommand(
		target.ID().String(), "cancelled", strangerID.String(), order.RoleUser,
	)
	require.NoError(t, err)

	m := newOrderStockMocks()
	mock.InOrder(
		m.uow.On("Begin", ctx).Return(nil).Once(),
		m.orderRepo.On("Get", ctx, target.ID()).Return(target, nil).Once(),
		m.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewUpdateOrderStatusCommandHandler(m.factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrNotOrderOwner)
	assert.Equal(t, order.Pending, target.Status())
	m.assertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_UserCannotComplete(t *testing.T) {
	ctx := t.Context()

	userID := kernel.NewUUID()
	productID := kernel.NewUUID()
	target := testPendingOrder(t, &userID, productID, "M", 1)

	cmd, err := commands.NewUpdateOrderStatusCommand(
		target.ID().String(), "completed", userID.String(), order.RoleUser,
	)
	require.NoError(t, err)

	m := newOrderStockMocks()
	mock.InOrder(
		m.uow.On("Begin", ctx).Return(nil).Once(),
		m.orderRepo.On("Get", ctx, target.ID()).Return(target, nil).Once(),
		m.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewUpdateOrderStatusCommandHandler(m.factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	var forbidden *order.ForbiddenTransitionError
	require.ErrorAs(t, err, &forbidden)
	assert.Equal(t, order.Pending, target.Status())
	m.assertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_AlreadyCancelled(t *testing.T) {
	ctx := t.Context()

	userID := kernel.NewUUID()
	productID := kernel.NewUUID()
	target := testPendingOrder(t, &userID, productID, "M", 1)
	require.NoError(t, target.ChangeStatus(order.Cancelled, order.RoleUser))

	cmd, err := commands.NewUpdateOrderStatusCommand(
		target.ID().String(), "cancelled", userID.String(), order.RoleUser,
	)
	require.NoError(t, err)

	m := newOrderStockMocks()
	mock.InOrder(
		m.uow.On("Begin", ctx).Return(nil).Once(),
		m.orderRepo.On("Get", ctx, target.ID()).Return(target, nil).Once(),
		m.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewUpdateOrderStatusCommandHandler(m.factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, order.ErrAlreadyCancelled)
	// no second restock for an order that already gave its stock back
	m.productRepo.AssertNotCalled(t, "GetForUpdate", mock.Anything, mock.Anything)
	m.assertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_RestockProductGone(t *testing.T) {
	ctx := t.Context()

	userID := kernel.NewUUID()
	productID := kernel.NewUUID()
	target := testPendingOrder(t, &userID, productID, "M", 2)

	cmd, err := commands.NewUpdateOrderStatusCommand(
		target.ID().String(), "cancelled", userID.String(), order.RoleUser,
	)
	require.NoError(t, err)

	m := newOrderStockMocks()
	mock.InOrder(
		m.uow.On("Begin", ctx).Return(nil).Once(),
		m.orderRepo.On("Get", ctx, target.ID()).Return(target, nil).Once(),
		// product deleted since the order was placed; cancellation still succeeds
		m.productRepo.On("GetForUpdate", ctx, productID).
			Return(nil, errs.NewObjectNotFoundError("product", productID.String())).
			Once(),
		m.orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		m.uow.On("Commit", ctx).Return(nil).Once(),
		m.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewUpdateOrderStatusCommandHandler(m.factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, target.Status())
	m.productRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	m.assertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_RestockFallsBackToFirstSize(t *testing.T) {
	ctx := t.Context()

	userID := kernel.NewUUID()
	productID := kernel.NewUUID()
	target := testPendingOrder(t, &userID, productID, "XL", 2)
	// the catalog no longer carries XL; only M remains
	testProd := testProduct(t, productID, 100, "M", 1)

	cmd, err := commands.NewUpdateOrderStatusCommand(
		target.ID().String(), "cancelled", userID.String(), order.RoleUser,
	)
	require.NoError(t, err)

	m := newOrderStockMocks()
	mock.InOrder(
		m.uow.On("Begin", ctx).Return(nil).Once(),
		m.orderRepo.On("Get", ctx, target.ID()).Return(target, nil).Once(),
		m.productRepo.On("GetForUpdate", ctx, productID).Return(testProd, nil).Once(),
		m.productRepo.On("Update", ctx, mock.AnythingOfType("*product.Product")).Return(nil).Once(),
		m.orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		m.uow.On("Commit", ctx).Return(nil).Once(),
		m.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewUpdateOrderStatusCommandHandler(m.factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 3, testProd.Available("M"))
	m.assertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_MalformedOrderID(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewUpdateOrderStatusCommand(
		"not-a-uuid", "cancelled", kernel.NewUUID().String(), order.RoleAdmin,
	)
	require.NoError(t, err)

	factory := new(MockOrderStockUoWFactory)
	handler := commands.NewUpdateOrderStatusCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	var notFound *errs.ObjectNotFoundError
	require.ErrorAs(t, err, &notFound)
	factory.AssertNotCalled(t, "Create")
}

func TestUpdateOrderStatusCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.UpdateOrderStatusCommand{} // not constructed properly

	factory := new(MockOrderStockUoWFactory)
	handler := commands.NewUpdateOrderStatusCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrUpdateOrderStatusCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestNewUpdateOrderStatusCommand_UnknownStatus(t *testing.T) {
	_, err := commands.NewUpdateOrderStatusCommand(
		kernel.NewUUID().String(), "shipped", kernel.NewUUID().String(), order.RoleAdmin,
	)

	require.Error(t, err)
	require.ErrorIs(t, err, order.ErrInvalidStatus)
}
