package domain

import "time" // Time for creation timestamps

// Order Model
type Order struct {
	ID        uint      `gorm:"primaryKey" json:"id"`             // Primary key
	Name      string    `gorm:"size:100;not null" json:"name"`    // Recipient name
	Mobile    string    `gorm:"size:15;not null" json:"mobile"`   // Recipient mobile number
	Address   string    `gorm:"size:200;not null" json:"address"` // Free-text delivery address
	Items     string    `gorm:"type:text;not null" json:"items"`  // Cart items exactly as submitted
	Total     float64   `gorm:"not null" json:"total"`            // Order total
	UserID    uint      `gorm:"not null;index" json:"user_id"`    // Foreign key to the owning User
	CreatedAt time.Time `json:"created_at"`                       // Timestamp of creation
}
