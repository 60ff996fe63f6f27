package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"storefront/cmd"
	_ "storefront/docs"
	adapterhttp "storefront/internal/adapters/in/http"
	"storefront/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	echoswagger "github.com/swaggo/echo-swagger"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// @title Storefront Order API
// @version 1.0
// @description Order placement and inventory workflow: cart validation, atomic stock reservation, cancellation with restock, and shipping quotes.
// @BasePath /api/v1
func main() {
	configs := getConfigs()

	gormDB, err := gorm.Open(postgresdriver.Open(configs.PostgresDSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err = cmd.MigrateDatabase(gormDB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	jobManager := jobs.NewJobManager(app.CreateGetOrderStatsQueryHandler(), logger)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()

	server := adapterhttp.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateUpdateOrderStatusCommandHandler(),
		app.CreateDeleteOrderCommandHandler(),
		app.CreateGetOrdersQueryHandler(),
		app.CreateGetOrderByIDQueryHandler(),
		app.CreateGetMyOrdersQueryHandler(),
		app.CreateGetOrderStatsQueryHandler(),
		app.CreateGetShippingInfoQueryHandler(),
		app.CreateCalculateShippingQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoswagger.WrapHandler)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
