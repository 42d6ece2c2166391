package models

import "time"

// Vendor represents a food vendor that owns menu items and receives orders
type Vendor struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"` // bcrypt hash, never serialized
	Name      string    `gorm:"not null" json:"name"`
	Phone     string    `json:"phone"`
	Location  string    `gorm:"not null" json:"location"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for the Vendor model
func (Vendor) TableName() string {
	return "vendors"
}
