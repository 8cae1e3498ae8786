package main

import (
	"log"
	"os"

	"github.com/ImpulsoLocal2024/impulso-local-back/src/db"
	"github.com/ImpulsoLocal2024/impulso-local-back/src/middleware"
	"github.com/ImpulsoLocal2024/impulso-local-back/src/models"
	"github.com/ImpulsoLocal2024/impulso-local-back/src/routes"
	"github.com/ImpulsoLocal2024/impulso-local-back/src/services"
	"github.com/gin-gonic/gin"
)

func main() {

	// Database connection
	database, err := db.Connect()
	if err != nil {
		log.Fatalf("Error connecting to database: %v\n", err)
	}

	// Auto-migrate the fixed metadata models. Dynamic tables are never
	// migrated here: their lifecycle belongs to the schema service.
	if err := database.AutoMigrate(
		&models.TableRegistryModel{},
		&models.FileAttachmentModel{},
		&models.FieldPreferenceModel{},
		&models.UserModel{},
	); err != nil {
		log.Fatalf("Error during auto-migration: %v\n", err)
	}

	middleware.SetSecretKey(os.Getenv("JWT_SECRET"))

	// Port and host setup
	host := os.Getenv("SERVER_HOST")
	if host == "" {
		host = ":8080"
	}

	uploadsDir := os.Getenv("UPLOADS_DIR")
	if uploadsDir == "" {
		uploadsDir = "uploads"
	}

	// Gin router setup
	router := gin.Default()
	router.Use(middleware.SetupCORS())

	// Uploaded files are served back under the same prefix stored in the DB
	router.Static("/uploads", uploadsDir)

	// Services setup
	catalogService := services.NewCatalogService(database)
	relationService := services.NewRelationService(database, catalogService)
	schemaService := services.NewSchemaService(database, catalogService)
	recordService := services.NewRecordService(database, catalogService, relationService)
	transferService := services.NewTransferService(database, catalogService)
	fileService := services.NewFileService(database, uploadsDir)
	userService := services.NewUserService(database)

	// Routes setup
	routes.SetupTableRoutes(router, schemaService)
	routes.SetupRecordRoutes(router, recordService)
	routes.SetupTransferRoutes(router, transferService)
	routes.SetupFileRoutes(router, fileService)
	routes.SetupUserRoutes(router, userService)

	// Server run
	if err := router.Run(host); err != nil {
		log.Fatalf("Error starting server on %s: %v\n", host, err)
	}
}
