package cmd

import (
	"storefront/internal/adapters/out/postgres"
	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/adapters/out/postgres/productrepo"
	"storefront/internal/adapters/out/postgres/settingsrepo"
	"storefront/internal/adapters/out/postgres/userrepo"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

// MigrateDatabase creates or updates the schema for every persisted aggregate.
func MigrateDatabase(gormDB *gorm.DB) error {
	return gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&productrepo.ProductDTO{},
		&productrepo.ProductSizeDTO{},
		&settingsrepo.SettingsDTO{},
		&userrepo.UserDTO{},
	)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	var f commands.OrderStockUoWFactory = FuncOrderStockUoWFactory(func() commands.OrderStockUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	var f commands.OrderStockUoWFactory = FuncOrderStockUoWFactory(func() commands.OrderStockUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderByIDQueryHandler() queries.GetOrderByIDQueryHandler {
	return queries.NewGetOrderByIDQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetMyOrdersQueryHandler() queries.GetMyOrdersQueryHandler {
	return queries.NewGetMyOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderStatsQueryHandler() queries.GetOrderStatsQueryHandler {
	return queries.NewGetOrderStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetShippingInfoQueryHandler() queries.GetShippingInfoQueryHandler {
	return queries.NewGetShippingInfoQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateCalculateShippingQueryHandler() queries.CalculateShippingQueryHandler {
	return queries.NewCalculateShippingQueryHandler(c.gormDB)
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

type FuncOrderStockUoWFactory func() commands.OrderStockUoW

func (f FuncOrderStockUoWFactory) Create() commands.OrderStockUoW {
	return f()
}
