package userrepo_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/adapters/out/postgres/userrepo"
	"storefront/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UserRepositoryIntegrationTestSuite verifies the existence check against the
// shared users table.
type UserRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *userrepo.GormUserRepository
}

func (suite *UserRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
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

	suite.Require().NoError(db.AutoMigrate(&userrepo.UserDTO{}))
}

func (suite *UserRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE users").Error)
	suite.repository = userrepo.NewGormUserRepository(suite.db)
}

func (suite *UserRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UserRepositoryIntegrationTestSuite) TestExists_KnownUser_ReturnsTrue() {
	ctx := context.Background()

	userID := kernel.NewUUID()
	suite.Require().NoError(suite.db.Create(&userrepo.UserDTO{
		ID:    userID.Bytes(),
		Name:  "Jane Smith",
		Email: "jane@example.com",
		Role:  "user",
	}).Error)

	exists, err := suite.repository.Exists(ctx, userID)

	suite.Require().NoError(err)
	suite.True(exists)
}

func (suite *UserRepositoryIntegrationTestSuite) TestExists_UnknownUser_ReturnsFalse() {
	ctx := context.Background()

	exists, err := suite.repository.Exists(ctx, kernel.NewUUID())

	suite.Require().NoError(err)
	suite.False(exists)
}

func TestUserRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepositoryIntegrationTestSuite))
}
