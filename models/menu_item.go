package models

import "time"

// MenuItem represents a dish or drink offered by a vendor
type MenuItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description *string   `json:"description,omitempty"`
	Price       float64   `gorm:"not null;check:price > 0" json:"price"`
	Available   bool      `gorm:"not null;default:true" json:"available"`
	ImageS3Key  *string   `json:"imageS3Key,omitempty"`           // S3 key for the uploaded photo
	ImageURL    *string   `gorm:"-" json:"imageUrl,omitempty"`    // computed field, presigned URL for the photo
	CategoryID  uint      `gorm:"not null;index" json:"categoryId"`
	Category    *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	VendorID    uint      `gorm:"not null;index" json:"vendorId"` // foreign key to vendors table
	Vendor      *Vendor   `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName specifies the table name for the MenuItem model
func (MenuItem) TableName() string {
	return "menu_items"
}
