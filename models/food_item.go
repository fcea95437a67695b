package models

import "time"

type FoodItem struct {
	ID             uint                `json:"id" gorm:"primaryKey"`
	RestaurantID   uint                `json:"restaurant_id" gorm:"not null;index"`
	Name           string              `json:"name" gorm:"not null"`
	Description    string              `json:"description"`
	Rating         float64             `json:"rating" gorm:"default:0"`
	// No gorm default tag: gorm drops zero-valued defaulted fields from
	// the INSERT, which would turn an explicit false into true. Creation
	// paths set this field explicitly instead.
	IsAvailable bool `json:"is_available"`
	Variants       []FoodVariant       `json:"variants,omitempty" gorm:"foreignKey:FoodItemID;constraint:OnDelete:CASCADE"`
	Specifications []FoodSpecification `json:"specifications,omitempty" gorm:"foreignKey:FoodItemID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

func (FoodItem) TableName() string {
	return "food_items"
}

// FoodVariant is a purchasable size/option of a food item. The cheapest
// variant price is surfaced as the item's starting price in search results.
type FoodVariant struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	FoodItemID uint    `json:"food_item_id" gorm:"not null;index"`
	Name       string  `json:"name" gorm:"not null"`
	Price      float64 `json:"price" gorm:"not null"`
}

func (FoodVariant) TableName() string {
	return "food_variants"
}

// FoodSpecification is a free-form label/value pair on a food item
// (e.g. "spice level" / "medium").
type FoodSpecification struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	FoodItemID uint   `json:"food_item_id" gorm:"not null;index"`
	Label      string `json:"label" gorm:"not null"`
	Value      string `json:"value" gorm:"not null"`
}

func (FoodSpecification) TableName() string {
	return "food_specifications"
}

// StartingPrice returns the minimum variant price, or nil when the item has
// no variants.
func (f *FoodItem) StartingPrice() *float64 {
	if len(f.Variants) == 0 {
		return nil
	}
	min := f.Variants[0].Price
	for _, v := range f.Variants[1:] {
		if v.Price < min {
			min = v.Price
		}
	}
	return &min
}
