package models

// Category groups menu items (e.g. Rice, Swallow, Drinks). Seeded at startup
// and immutable in normal operation.
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// TableName specifies the table name for the Category model
func (Category) TableName() string {
	return "categories"
}
