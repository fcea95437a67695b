package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/shakirkaki-dev/fudpin-backend-v3/auth"
	"github.com/shakirkaki-dev/fudpin-backend-v3/config"
	"github.com/shakirkaki-dev/fudpin-backend-v3/database"
	"github.com/shakirkaki-dev/fudpin-backend-v3/middleware"
	"github.com/shakirkaki-dev/fudpin-backend-v3/routes"
)

func main() {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.DebugMode)
	}

	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("Failed to initialize database: ", err)
	}
	log.Println("Database connected and migrated")

	tokens := auth.NewService(cfg)

	r := gin.Default()
	r.Use(cors.Default())
	r.Use(middleware.Metrics())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "Fudpin Backend Running"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "Fudpin Backend"})
	})
	r.GET("/metrics", middleware.MetricsHandler())

	routes.Setup(r, db, tokens)

	log.Printf("Server running on http://localhost:%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
