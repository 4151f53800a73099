package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/marcomamdouh99/pro/cmd"
	"github.com/marcomamdouh99/pro/internal/core/container"
	"github.com/marcomamdouh99/pro/internal/core/routes"
	"github.com/marcomamdouh99/pro/internal/database"
	"github.com/marcomamdouh99/pro/internal/middleware"
)

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
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := database.NewPostgresConnection(dbURL)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	defer db.Close()

	log.Println("Connected to the database successfully!")

	appContainer := container.NewAppContainer(db)

	router := gin.Default()
	router.Use(middleware.RecoveryMiddleware())

	routes.RegisterPublicRoutes(router, appContainer)
	routes.RegisterProtectedRoutes(router, appContainer)
	routes.RegisterUtilityRoutes(router, appContainer)

	if err := router.Run(os.Getenv("APP_HOST")); err != nil {
		panic(err)
	}
}
