package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shakirkaki-dev/fudpin-backend-v3/auth"
	"github.com/shakirkaki-dev/fudpin-backend-v3/handlers"
	"github.com/shakirkaki-dev/fudpin-backend-v3/middleware"
)

// Setup registers every route on the engine.
func Setup(r *gin.Engine, db *gorm.DB, tokens *auth.Service) {
	authHandler := handlers.NewAuthHandler(db, tokens)
	restaurantHandler := handlers.NewRestaurantHandler(db)
	menuItemHandler := handlers.NewMenuItemHandler(db)
	searchHandler := handlers.NewSearchHandler(db)

	requireAuth := middleware.AuthRequired(tokens, db)

	// ── Auth ───────────────────────────────────────────────────────
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/logout", authHandler.Logout)
	}

	// ── Public reads ───────────────────────────────────────────────
	r.GET("/search", searchHandler.Search)
	r.GET("/restaurants", restaurantHandler.List)
	r.GET("/restaurants/:id", restaurantHandler.Get)
	r.GET("/restaurants/:id/menu", restaurantHandler.GetMenu)
	r.GET("/menu-items/:id", menuItemHandler.Get)

	// ── Owner/admin mutations ──────────────────────────────────────
	r.POST("/restaurants", requireAuth, restaurantHandler.Create)
	r.PUT("/restaurants/:id", requireAuth, restaurantHandler.Update)
	r.DELETE("/restaurants/:id", requireAuth, restaurantHandler.Delete)

	r.POST("/menu-items", requireAuth, menuItemHandler.Create)
	r.PUT("/menu-items/:id", requireAuth, menuItemHandler.Update)
	r.DELETE("/menu-items/:id", requireAuth, menuItemHandler.Delete)
}
