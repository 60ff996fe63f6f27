package postgres_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/adapters/out/postgres"
	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/adapters/out/postgres/productrepo"
	"storefront/internal/adapters/out/postgres/settingsrepo"
	"storefront/internal/adapters/out/postgres/userrepo"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/product"
	"storefront/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies that the checkout transaction is
// atomic: the order row and the stock decrement commit together or not at all.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&productrepo.ProductDTO{},
		&productrepo.ProductSizeDTO{},
		&settingsrepo.SettingsDTO{},
		&userrepo.UserDTO{},
	))

	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(
		suite.db.Exec("TRUNCATE TABLE orders, order_items, products, product_sizes, settings, users").Error,
	)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsOrderAndDecrement() {
	ctx := context.Background()

	productID := suite.seedProduct(5)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	testOrder := suite.buildOrder(productID, 2)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	applied, err := uow.ProductRepository().DecrementStock(ctx, productID, "m", 2)
	suite.Require().NoError(err)
	suite.True(applied)

	suite.Require().NoError(uow.Commit(ctx))

	suite.assertOrderCount(1)
	suite.assertStock(productID, 3)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsOrderAndDecrement() {
	ctx := context.Background()

	productID := suite.seedProduct(5)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	testOrder := suite.buildOrder(productID, 2)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	applied, err := uow.ProductRepository().DecrementStock(ctx, productID, "m", 2)
	suite.Require().NoError(err)
	suite.True(applied)

	suite.Require().NoError(uow.Rollback(ctx))

	suite.assertOrderCount(0)
	suite.assertStock(productID, 5)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentDecrements_NeverOversell() {
	ctx := context.Background()

	// 3 units; two competing orders for 2 units each, only one may win
	productID := suite.seedProduct(3)

	results := make(chan bool, 2)
	for range 2 {
		go func() {
			uow := suite.factory.Create()
			if err := uow.Begin(ctx); err != nil {
				results <- false
				return
			}

			applied, err := uow.ProductRepository().DecrementStock(ctx, productID, "m", 2)
			if err != nil || !applied {
				_ = uow.Rollback(ctx)
				results <- false
				return
			}

			if err = uow.Commit(ctx); err != nil {
				results <- false
				return
			}
			results <- true
		}()
	}

	wins := 0
	for range 2 {
		if <-results {
			wins++
		}
	}

	suite.Equal(1, wins)
	suite.assertStock(productID, 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRepositories_WithoutBegin_UseMainConnection() {
	ctx := context.Background()

	productID := suite.seedProduct(4)

	uow := suite.factory.Create()
	retrieved, err := uow.ProductRepository().Get(ctx, productID)

	suite.Require().NoError(err)
	suite.Equal(4, retrieved.Available("m"))
}

func (suite *UnitOfWorkIntegrationTestSuite) seedProduct(count int) kernel.UUID {
	size, err := product.NewSizeStock(kernel.NewUUID(), "m", count)
	suite.Require().NoError(err)

	testProduct, err := product.NewProduct(
		kernel.NewUUID(), "Test Sneaker", kernel.MustMoneyFromFloat(100), nil,
		[]*product.SizeStock{size},
	)
	suite.Require().NoError(err)

	repo := productrepo.NewGormProductRepository(suite.db, noopTracker{})
	suite.Require().NoError(repo.Add(context.Background(), testProduct))
	return testProduct.ID()
}

func (suite *UnitOfWorkIntegrationTestSuite) buildOrder(productID kernel.UUID, quantity int) *order.Order {
	item, err := order.NewItem(productID, "Test Sneaker", "m", quantity, kernel.MustMoneyFromFloat(100))
	suite.Require().NoError(err)

	address, err := order.NewAddress("Jane Smith", "12 Main St", "US", "CA", "", "", "")
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(), order.NewOrderNumber(), nil,
		[]order.Item{item}, kernel.MustMoneyFromFloat(50), address, "",
	)
	suite.Require().NoError(err)
	return testOrder
}

func (suite *UnitOfWorkIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(int64(expected), count)
}

func (suite *UnitOfWorkIntegrationTestSuite) assertStock(productID kernel.UUID, expected int) {
	var count int
	suite.Require().NoError(suite.db.Model(&productrepo.ProductSizeDTO{}).
		Select("count").
		Where("product_id = ?", productID.Bytes()).
		Scan(&count).Error)
	suite.Equal(expected, count)
}

// noopTracker satisfies the repositories' tracker dependency for seeding.
type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

var _ ports.UnitOfWorkFactory = (*postgres.GormUnitOfWorkFactory)(nil)

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
