package queries_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/adapters/out/postgres/settingsrepo"
	"storefront/internal/core/application/usecases/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type ShippingQueryHandlersTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB

	infoHandler      queries.GetShippingInfoQueryHandler
	calculateHandler queries.CalculateShippingQueryHandler
}

func (suite *ShippingQueryHandlersTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&settingsrepo.SettingsDTO{}))

	suite.infoHandler = queries.NewGetShippingInfoQueryHandler(db)
	suite.calculateHandler = queries.NewCalculateShippingQueryHandler(db)
}

func (suite *ShippingQueryHandlersTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ShippingQueryHandlersTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE settings").Error)
}

func (suite *ShippingQueryHandlersTestSuite) seedSettings(cost, threshold float64, isActive bool) {
	dto := settingsrepo.SettingsDTO{
		ID:                    uuid.New(),
		ShippingCost:          decimal.NewFromFloat(cost),
		FreeShippingThreshold: decimal.NewFromFloat(threshold),
		IsActive:              isActive,
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
}

func (suite *ShippingQueryHandlersTestSuite) TestGetShippingInfo_ReturnsStoredSettings() {
	suite.seedSettings(75, 900, true)

	result, err := suite.infoHandler.Handle(context.Background(), queries.NewGetShippingInfoQuery())

	suite.Require().NoError(err)
	suite.InDelta(75, result.ShippingCost, 0.001)
	suite.InDelta(900, result.FreeShippingThreshold, 0.001)
}

func (suite *ShippingQueryHandlersTestSuite) TestGetShippingInfo_NoRow_AnswersDefaultsWithoutPersisting() {
	result, err := suite.infoHandler.Handle(context.Background(), queries.NewGetShippingInfoQuery())

	suite.Require().NoError(err)
	suite.InDelta(50, result.ShippingCost, 0.001)
	suite.InDelta(500, result.FreeShippingThreshold, 0.001)

	var count int64
	suite.Require().NoError(suite.db.Table("settings").Count(&count).Error)
	suite.Equal(int64(0), count)
}

func (suite *ShippingQueryHandlersTestSuite) TestGetShippingInfo_SkipsInactiveSettings() {
	suite.seedSettings(120, 2000, false)

	result, err := suite.infoHandler.Handle(context.Background(), queries.NewGetShippingInfoQuery())

	suite.Require().NoError(err)
	suite.InDelta(50, result.ShippingCost, 0.001)
	suite.InDelta(500, result.FreeShippingThreshold, 0.001)
}

func (suite *ShippingQueryHandlersTestSuite) TestCalculateShipping_BelowThreshold_ChargesCost() {
	suite.seedSettings(75, 900, true)

	query, err := queries.NewCalculateShippingQuery(899.99)
	suite.Require().NoError(err)

	result, err := suite.calculateHandler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.False(result.IsFree)
	suite.InDelta(75, result.ShippingCost, 0.001)
	suite.InDelta(974.99, result.Total, 0.001)
}

func (suite *ShippingQueryHandlersTestSuite) TestCalculateShipping_AtThreshold_IsFree() {
	suite.seedSettings(75, 900, true)

	query, err := queries.NewCalculateShippingQuery(900)
	suite.Require().NoError(err)

	result, err := suite.calculateHandler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.True(result.IsFree)
	suite.InDelta(0, result.ShippingCost, 0.001)
	suite.InDelta(900, result.Total, 0.001)
}

func (suite *ShippingQueryHandlersTestSuite) TestCalculateShipping_NoRow_UsesDefaults() {
	query, err := queries.NewCalculateShippingQuery(120)
	suite.Require().NoError(err)

	result, err := suite.calculateHandler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.False(result.IsFree)
	suite.InDelta(50, result.ShippingCost, 0.001)
	suite.InDelta(170, result.Total, 0.001)
}

func (suite *ShippingQueryHandlersTestSuite) TestCalculateShipping_InvalidQuery_ReturnsError() {
	invalidQuery := queries.CalculateShippingQuery{}

	_, err := suite.calculateHandler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, queries.ErrCalculateShippingQueryIsNotConstructed)
}

func TestShippingQueryHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(ShippingQueryHandlersTestSuite))
}
