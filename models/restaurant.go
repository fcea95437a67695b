package models

import "time"

// Restaurant references its owner by id only; handlers resolve the owner
// through the database when they need it, so the object graph stays acyclic.
type Restaurant struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	OwnerID     uint       `json:"owner_id" gorm:"not null;index"`
	Name        string     `json:"name" gorm:"not null"`
	Description string     `json:"description"`
	Address     string     `json:"address"`
	Landmark    string     `json:"landmark"`
	Phone       string     `json:"phone"`
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	// No gorm default tag, so an explicit false survives the INSERT.
	// Creation paths set this field explicitly.
	IsActive bool `json:"is_active"`
	MenuItems   []FoodItem `json:"menu_items,omitempty" gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
