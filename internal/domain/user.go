package domain

import "time" // Time for creation timestamps

// User Model
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`                        // Primary key
	Username     string    `gorm:"size:80;uniqueIndex;not null" json:"username"` // Unique username
	Email        string    `gorm:"size:120;uniqueIndex;not null" json:"email"`   // Unique email
	PasswordHash string    `gorm:"size:200;not null" json:"-"`                   // Bcrypt digest, never serialized
	Orders       []Order   `gorm:"constraint:OnUpdate:CASCADE;" json:"-"`        // Declares the users.id foreign key on orders
	CreatedAt    time.Time `json:"created_at"`                                   // Timestamp of creation
}
