package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"marketplace-api/internal/config"
	"marketplace-api/internal/database"
	"marketplace-api/internal/handlers"
	"marketplace-api/internal/routes"
	"marketplace-api/internal/store"
)

func main() {
	cfg := config.Load()

	// The service starts without a database so /test can report the
	// degraded state instead of the process crashing.
	var gw store.Gateway
	if cfg.DatabaseURL == "" {
		log.Println("⚠️ DATABASE_URL not set, running without a database")
	} else if client, err := database.Connect(cfg.DatabaseURL); err != nil {
		log.Println("⚠️ MongoDB connection failed:", err)
	} else {
		gw = store.NewMongoStore(client.Database(cfg.DatabaseName))
		log.Println("✅ Connected to MongoDB database", cfg.DatabaseName)
	}

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))

	h := handlers.NewMarketplace(gw, cfg.DatabaseName)
	routes.RegisterRoutes(router, h)

	log.Println("🚀 Server running on port", cfg.Port)
	router.Run(":" + cfg.Port)
}
