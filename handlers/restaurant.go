package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shakirkaki-dev/fudpin-backend-v3/middleware"
	"github.com/shakirkaki-dev/fudpin-backend-v3/models"
)

// CreateRestaurantRequest uses pointer coordinates so that 0 (the equator,
// the prime meridian) still satisfies the required rule.
type CreateRestaurantRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Address     string   `json:"address" binding:"required"`
	Landmark    string   `json:"landmark"`
	Phone       string   `json:"phone"`
	Latitude    *float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
}

// UpdateRestaurantRequest is a partial update: only non-nil fields are
// written, so a PUT carrying {"phone": "..."} leaves everything else alone.
type UpdateRestaurantRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Address     *string  `json:"address"`
	Landmark    *string  `json:"landmark"`
	Phone       *string  `json:"phone"`
	Latitude    *float64 `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
	IsActive    *bool    `json:"is_active"`
}

func (r *UpdateRestaurantRequest) changes() map[string]interface{} {
	update := map[string]interface{}{}
	if r.Name != nil {
		update["name"] = *r.Name
	}
	if r.Description != nil {
		update["description"] = *r.Description
	}
	if r.Address != nil {
		update["address"] = *r.Address
	}
	if r.Landmark != nil {
		update["landmark"] = *r.Landmark
	}
	if r.Phone != nil {
		update["phone"] = *r.Phone
	}
	if r.Latitude != nil {
		update["latitude"] = *r.Latitude
	}
	if r.Longitude != nil {
		update["longitude"] = *r.Longitude
	}
	if r.IsActive != nil {
		update["is_active"] = *r.IsActive
	}
	return update
}

type RestaurantHandler struct {
	DB *gorm.DB
}

func NewRestaurantHandler(db *gorm.DB) *RestaurantHandler {
	return &RestaurantHandler{DB: db}
}

// Create registers a new restaurant owned by the caller
func (h *RestaurantHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	restaurant := models.Restaurant{
		OwnerID:     user.ID,
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Landmark:    req.Landmark,
		Phone:       req.Phone,
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
		IsActive:    true,
	}
	if err := h.DB.Create(&restaurant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}
	c.JSON(http.StatusCreated, restaurant)
}

// List returns all active restaurants (public)
func (h *RestaurantHandler) List(c *gin.Context) {
	var restaurants []models.Restaurant
	if err := h.DB.Where("is_active = ?", true).Find(&restaurants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(restaurants), "restaurants": restaurants})
}

// Get returns a single restaurant (public)
func (h *RestaurantHandler) Get(c *gin.Context) {
	var restaurant models.Restaurant
	if err := h.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Restaurant not found"})
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

// Update applies a partial update; only the owner or an admin may do it
func (h *RestaurantHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var restaurant models.Restaurant
	if err := h.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Restaurant not found"})
		return
	}
	if restaurant.OwnerID != user.ID && !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"detail": "You don't own this restaurant"})
		return
	}

	var req UpdateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	if update := req.changes(); len(update) > 0 {
		if err := h.DB.Model(&restaurant).Updates(update).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
			return
		}
	}
	c.JSON(http.StatusOK, restaurant)
}

// Delete removes a restaurant and everything hanging off it in one
// transaction: menu items, their variants and their specifications.
func (h *RestaurantHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var restaurant models.Restaurant
	if err := h.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Restaurant not found"})
		return
	}
	if restaurant.OwnerID != user.ID && !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"detail": "You don't own this restaurant"})
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var itemIDs []uint
		if err := tx.Model(&models.FoodItem{}).
			Where("restaurant_id = ?", restaurant.ID).
			Pluck("id", &itemIDs).Error; err != nil {
			return err
		}
		if len(itemIDs) > 0 {
			if err := tx.Where("food_item_id IN ?", itemIDs).Delete(&models.FoodVariant{}).Error; err != nil {
				return err
			}
			if err := tx.Where("food_item_id IN ?", itemIDs).Delete(&models.FoodSpecification{}).Error; err != nil {
				return err
			}
			if err := tx.Where("restaurant_id = ?", restaurant.ID).Delete(&models.FoodItem{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&restaurant).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant deleted successfully"})
}

// GetMenu returns the restaurant's available menu items with variants and
// specifications (public)
func (h *RestaurantHandler) GetMenu(c *gin.Context) {
	var restaurant models.Restaurant
	if err := h.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Restaurant not found"})
		return
	}

	var items []models.FoodItem
	if err := h.DB.Preload("Variants").Preload("Specifications").
		Where("restaurant_id = ? AND is_available = ?", restaurant.ID, true).
		Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant_id":   restaurant.ID,
		"restaurant_name": restaurant.Name,
		"menu":            items,
	})
}
