package main

import (
	"context"
	"log"
	"os"

	"github.com/AngelRL115/SEHC/cmd"
	_ "github.com/AngelRL115/SEHC/docs"
	"github.com/AngelRL115/SEHC/internal/core/container"
	"github.com/AngelRL115/SEHC/internal/core/logger"
	"github.com/AngelRL115/SEHC/internal/core/routes"
	"github.com/AngelRL115/SEHC/internal/database"
	"github.com/AngelRL115/SEHC/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// @title           API documentation for SEHC
// @version         1.0.0
// @description     Documentacion de los endpoints para el sistema de control de taller especializado honda

// @BasePath  /SEHC

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token obtained from login.

func init() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load .env file, but don't overwrite system environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, falling back to system environment variables.")
	}

	cmd.Execute(ctx)
}

func main() {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	zapLogger := logger.NewLogger()
	defer zapLogger.Sync()

	db, err := database.NewPostgresConnection(dbURL)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	defer db.Close()

	appContainer := container.NewAppContainer(db, zapLogger)

	router := gin.Default()
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RecoveryMiddleware(zapLogger))

	routes.RegisterUtilityRoutes(router)

	base := router.Group("/SEHC")
	routes.RegisterPublicRoutes(base, appContainer)
	routes.RegisterProtectedRoutes(base, appContainer)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start the server: %v", err)
	}
}
