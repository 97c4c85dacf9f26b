package domain

// MenuItem Model
type MenuItem struct {
	ID    uint    `gorm:"primaryKey" json:"id"`                  // Primary key
	Name  string  `gorm:"size:100;not null" json:"name"`         // Dish name
	Price float64 `gorm:"not null" json:"price"`                 // Non-negative price
	Image string  `gorm:"size:100" json:"image,omitempty"`       // Optional image file name
	Hotel string  `gorm:"size:100;not null;index" json:"hotel"` // Hotel tag, groups items
}
