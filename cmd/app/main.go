package main

import (
	"fmt"
	"log/slog"
	"os"

	"formation/cmd"
	httpin "formation/internal/adapters/in/http"
	"formation/internal/adapters/out/postgres/documentrepo"
	"formation/internal/adapters/out/postgres/historyrepo"
	"formation/internal/adapters/out/postgres/orderrepo"
	"formation/internal/adapters/out/storage"
	"formation/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := mustConnectDB(configs)
	documentStore := mustCreateDocumentStore(configs)

	app := cmd.NewCompositionRoot(configs, gormDB, documentStore)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	jobManager := jobs.NewJobManager(app.CreateReconcileOrderStatusesCommandHandler(), logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:            goDotEnvVariable("HTTP_PORT"),
		DBHost:              goDotEnvVariable("DB_HOST"),
		DBPort:              goDotEnvVariable("DB_PORT"),
		DBUser:              goDotEnvVariable("DB_USER"),
		DBPassword:          goDotEnvVariable("DB_PASSWORD"),
		DBName:              goDotEnvVariable("DB_NAME"),
		DBSslMode:           goDotEnvVariable("DB_SSLMODE"),
		DocumentStoragePath: goDotEnvVariable("DOCUMENT_STORAGE_PATH"),
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

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ProgressEventDTO{},
		&documentrepo.DocumentDTO{},
		&historyrepo.StatusChangeDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func mustCreateDocumentStore(configs cmd.Config) *storage.LocalDocumentStore {
	store, err := storage.NewLocalDocumentStore(configs.DocumentStoragePath)
	if err != nil {
		log.Fatalf("Failed to create document store: %v", err)
	}
	return store
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()

	server := httpin.NewServer(
		app.CreateUpdateProgressCommandHandler(),
		app.CreateUploadDocumentCommandHandler(),
		app.CreateChangeOrderStatusCommandHandler(),
		app.CreateGetOrderProgressQueryHandler(),
		app.CreateGetOrdersQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
