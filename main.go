package main

import (
	"log"
	"os"

	"Gamenight/config"
	"Gamenight/middleware"
	"Gamenight/routes"
	"Gamenight/services/socket_io"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// @title Gamenight API
// @version 1.0
// @description Gin-Gonic server for the Gamenight realtime lobby coordinator
// @BasePath /
func main() {
	godotenv.Load()
	log.Println("Setting up server...")

	if os.Getenv("PROD") == "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	// The user-record store is an external collaborator: the coordinator
	// keeps working in memory when it is unavailable.
	gormDB, err := config.ConnectGORM()
	if err != nil {
		log.Printf("Warning: PostgreSQL unavailable, continuing without user records: %v", err)
		gormDB = nil
	} else {
		log.Println("GORM Connected")

		if os.Getenv("MIGRATE_POSTGRES") == "true" {
			log.Println("Migrating PostgreSQL database...")
			if err := config.MigrateDatabase(gormDB); err != nil {
				log.Printf("Warning: Database migration failed: %v", err)
			} else {
				log.Println("Database migrated successfully")
			}
		}

		sqlDB, err := gormDB.DB()
		if err != nil {
			log.Fatalf("Error reading GORM PostgreSQL instance: %v", err)
		}
		defer sqlDB.Close()
	}

	r := gin.Default()

	middleware.SetUpMiddleware(r)

	stores := socket_io.NewStores()

	routes.SetupRoutes(r, gormDB, stores)

	sio := &socket_io.MySocketServer{}
	sio.Start(r, gormDB, stores)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
