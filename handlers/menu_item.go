package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shakirkaki-dev/fudpin-backend-v3/middleware"
	"github.com/shakirkaki-dev/fudpin-backend-v3/models"
)

type CreateVariantRequest struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price" binding:"required,gt=0"`
}

type CreateSpecificationRequest struct {
	Label string `json:"label" binding:"required"`
	Value string `json:"value" binding:"required"`
}

type CreateMenuItemRequest struct {
	Name           string                       `json:"name" binding:"required"`
	Description    string                       `json:"description"`
	Rating         float64                      `json:"rating" binding:"omitempty,gte=0,lte=5"`
	RestaurantID   uint                         `json:"restaurant_id" binding:"required"`
	IsAvailable    *bool                        `json:"is_available"`
	Variants       []CreateVariantRequest       `json:"variants" binding:"dive"`
	Specifications []CreateSpecificationRequest `json:"specifications" binding:"dive"`
}

type UpdateMenuItemRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Rating      *float64 `json:"rating" binding:"omitempty,gte=0,lte=5"`
	IsAvailable *bool    `json:"is_available"`
}

func (r *UpdateMenuItemRequest) changes() map[string]interface{} {
	update := map[string]interface{}{}
	if r.Name != nil {
		update["name"] = *r.Name
	}
	if r.Description != nil {
		update["description"] = *r.Description
	}
	if r.Rating != nil {
		update["rating"] = *r.Rating
	}
	if r.IsAvailable != nil {
		update["is_available"] = *r.IsAvailable
	}
	return update
}

type MenuItemHandler struct {
	DB *gorm.DB
}

func NewMenuItemHandler(db *gorm.DB) *MenuItemHandler {
	return &MenuItemHandler{DB: db}
}

// Create adds a food item with its variants and specifications to a
// restaurant the caller owns
func (h *MenuItemHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	var restaurant models.Restaurant
	if err := h.DB.First(&restaurant, req.RestaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Restaurant not found"})
		return
	}
	if restaurant.OwnerID != user.ID && !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"detail": "You don't own this restaurant"})
		return
	}

	item := models.FoodItem{
		RestaurantID: restaurant.ID,
		Name:         req.Name,
		Description:  req.Description,
		Rating:       req.Rating,
		IsAvailable:  true,
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	for _, v := range req.Variants {
		item.Variants = append(item.Variants, models.FoodVariant{Name: v.Name, Price: v.Price})
	}
	for _, s := range req.Specifications {
		item.Specifications = append(item.Specifications, models.FoodSpecification{Label: s.Label, Value: s.Value})
	}

	// gorm inserts the item and its children in one transaction
	if err := h.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Get returns a single food item with variants and specifications (public)
func (h *MenuItemHandler) Get(c *gin.Context) {
	var item models.FoodItem
	if err := h.DB.Preload("Variants").Preload("Specifications").
		First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Food item not found"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// Update applies a partial update; gated through the parent restaurant's owner
func (h *MenuItemHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var item models.FoodItem
	if err := h.DB.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Food item not found"})
		return
	}
	if err := h.authorize(user, item.RestaurantID); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"detail": "You don't own this food item"})
		return
	}

	var req UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	if update := req.changes(); len(update) > 0 {
		if err := h.DB.Model(&item).Updates(update).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
			return
		}
	}
	c.JSON(http.StatusOK, item)
}

// Delete removes a food item with its variants and specifications
func (h *MenuItemHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var item models.FoodItem
	if err := h.DB.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Food item not found"})
		return
	}
	if err := h.authorize(user, item.RestaurantID); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"detail": "You don't own this food item"})
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("food_item_id = ?", item.ID).Delete(&models.FoodVariant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("food_item_id = ?", item.ID).Delete(&models.FoodSpecification{}).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Food item deleted successfully"})
}

// authorize resolves the item's parent restaurant and checks owner-or-admin.
func (h *MenuItemHandler) authorize(user *models.User, restaurantID uint) error {
	if user.IsAdmin() {
		return nil
	}
	var restaurant models.Restaurant
	return h.DB.Where("id = ? AND owner_id = ?", restaurantID, user.ID).
		First(&restaurant).Error
}
