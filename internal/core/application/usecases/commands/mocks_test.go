package commands_test

import (
	"context"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/product"
	"storefront/internal/core/domain/model/settings"
	"storefront/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) DecrementStock(
	ctx context.Context, productID kernel.UUID, sizeName string, quantity int,
) (bool, error) {
	args := m.Called(ctx, productID, sizeName, quantity)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, p *product.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type MockSettingsRepository struct{ mock.Mock }

func (m *MockSettingsRepository) GetOrCreateActive(ctx context.Context) (*settings.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settings.Settings), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Exists(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockCheckoutUoW struct{ mock.Mock }

func (m *MockCheckoutUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCheckoutUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCheckoutUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCheckoutUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockCheckoutUoW) ProductRepository() ports.ProductRepository {
	args := m.Called()
	return args.Get(0).(ports.ProductRepository)
}

func (m *MockCheckoutUoW) SettingsRepository() ports.SettingsRepository {
	args := m.Called()
	return args.Get(0).(ports.SettingsRepository)
}

func (m *MockCheckoutUoW) UserRepository() ports.UserRepository {
	args := m.Called()
	return args.Get(0).(ports.UserRepository)
}

type MockCheckoutUoWFactory struct{ mock.Mock }

func (m *MockCheckoutUoWFactory) Create() commands.CheckoutUoW {
	args := m.Called()
	return args.Get(0).(commands.CheckoutUoW)
}

type MockOrderStockUoW struct{ mock.Mock }

func (m *MockOrderStockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderStockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderStockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderStockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOrderStockUoW) ProductRepository() ports.ProductRepository {
	args := m.Called()
	return args.Get(0).(ports.ProductRepository)
}

type MockOrderStockUoWFactory struct{ mock.Mock }

func (m *MockOrderStockUoWFactory) Create() commands.OrderStockUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderStockUoW)
}
