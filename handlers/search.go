package handlers

import (
	"math"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shakirkaki-dev/fudpin-backend-v3/geo"
	"github.com/shakirkaki-dev/fudpin-backend-v3/models"
)

// SearchQuery binds /search query parameters. Lat, lng and radius are
// pointers so that a legitimate zero value (the equator, the prime meridian)
// still satisfies the required rule.
type SearchQuery struct {
	Food   string   `form:"food" binding:"required"`
	Lat    *float64 `form:"lat" binding:"required,gte=-90,lte=90"`
	Lng    *float64 `form:"lng" binding:"required,gte=-180,lte=180"`
	Radius *float64 `form:"radius" binding:"required"`
	Page   int      `form:"page,default=1" binding:"gte=1"`
	Limit  int      `form:"limit,default=10" binding:"gte=1,lte=100"`
}

type SearchResult struct {
	RestaurantID   uint     `json:"restaurant_id"`
	RestaurantName string   `json:"restaurant_name"`
	FoodItemID     uint     `json:"food_item_id"`
	FoodName       string   `json:"food_name"`
	DistanceKm     float64  `json:"distance_km"`
	StartingPrice  *float64 `json:"starting_price"`
}

type SearchResponse struct {
	Page         int            `json:"page"`
	Limit        int            `json:"limit"`
	TotalResults int            `json:"total_results"`
	TotalPages   int            `json:"total_pages"`
	Results      []SearchResult `json:"results"`
}

type SearchHandler struct {
	DB *gorm.DB
}

func NewSearchHandler(db *gorm.DB) *SearchHandler {
	return &SearchHandler{DB: db}
}

// Search finds available food items whose name contains the query fragment
// and whose restaurant lies within the given radius of the query point,
// sorted by ascending distance and paginated.
func (h *SearchHandler) Search(c *gin.Context) {
	var q SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	results, err := h.search(q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	totalResults := len(results)
	totalPages := 0
	if totalResults > 0 {
		totalPages = (totalResults + q.Limit - 1) / q.Limit
	}

	offset := (q.Page - 1) * q.Limit
	page := []SearchResult{}
	if offset < totalResults {
		end := offset + q.Limit
		if end > totalResults {
			end = totalResults
		}
		page = results[offset:end]
	}

	c.JSON(http.StatusOK, SearchResponse{
		Page:         q.Page,
		Limit:        q.Limit,
		TotalResults: totalResults,
		TotalPages:   totalPages,
		Results:      page,
	})
}

// search returns every qualifying row, sorted but not yet paginated.
func (h *SearchHandler) search(q SearchQuery) ([]SearchResult, error) {
	var restaurants []models.Restaurant
	if err := h.DB.Where("is_active = ?", true).Find(&restaurants).Error; err != nil {
		return nil, err
	}

	// Distance filter first: items of out-of-range restaurants never need
	// to be fetched at all.
	type nearby struct {
		name     string
		distance float64
	}
	inRange := map[uint]nearby{}
	var ids []uint
	for _, r := range restaurants {
		d := geo.DistanceKm(*q.Lat, *q.Lng, r.Latitude, r.Longitude)
		if d <= *q.Radius {
			inRange[r.ID] = nearby{name: r.Name, distance: d}
			ids = append(ids, r.ID)
		}
	}
	if len(ids) == 0 {
		return []SearchResult{}, nil
	}

	var items []models.FoodItem
	if err := h.DB.Preload("Variants").
		Where("restaurant_id IN ? AND is_available = ?", ids, true).
		Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q.Food)+"%").
		Find(&items).Error; err != nil {
		return nil, err
	}

	// Sort on the exact distance; rounding happens only at the edge of
	// the response. food_item_id breaks ties so pages are stable.
	sort.Slice(items, func(i, j int) bool {
		di := inRange[items[i].RestaurantID].distance
		dj := inRange[items[j].RestaurantID].distance
		if di != dj {
			return di < dj
		}
		return items[i].ID < items[j].ID
	})

	results := make([]SearchResult, 0, len(items))
	for i := range items {
		item := &items[i]
		r := inRange[item.RestaurantID]
		results = append(results, SearchResult{
			RestaurantID:   item.RestaurantID,
			RestaurantName: r.name,
			FoodItemID:     item.ID,
			FoodName:       item.Name,
			DistanceKm:     roundKm(r.distance),
			StartingPrice:  item.StartingPrice(),
		})
	}
	return results, nil
}

func roundKm(d float64) float64 {
	if math.IsNaN(d) {
		return 0
	}
	return math.Round(d*100) / 100
}
