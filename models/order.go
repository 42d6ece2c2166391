package models

import "time"

// Order status values. COMPLETED and CANCELLED are terminal.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusAccepted  = "ACCEPTED"
	OrderStatusPreparing = "PREPARING"
	OrderStatusReady     = "READY"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCancelled = "CANCELLED"
)

// OrderStatuses lists every valid status value
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusAccepted,
	OrderStatusPreparing,
	OrderStatusReady,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// IsTerminalStatus reports whether a status permits no further transitions
func IsTerminalStatus(status string) bool {
	return status == OrderStatusCompleted || status == OrderStatusCancelled
}

// Order represents a student's order placed with a single vendor.
// TotalAmount is a snapshot computed at creation time, never recomputed.
type Order struct {
	ID               uint        `gorm:"primaryKey" json:"id"`
	StudentID        uint        `gorm:"not null;index" json:"studentId"`
	Student          *Student    `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	VendorID         uint        `gorm:"not null;index" json:"vendorId"`
	Vendor           *Vendor     `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
	TotalAmount      float64     `gorm:"not null" json:"totalAmount"`
	DeliveryLocation string      `gorm:"not null" json:"deliveryLocation"`
	DeliveryNotes    *string     `json:"deliveryNotes,omitempty"`
	Status           string      `gorm:"not null;default:'PENDING'" json:"status"`
	OrderItems       []OrderItem `gorm:"foreignKey:OrderID" json:"orderItems"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one line of an order. UnitPrice snapshots the menu item's
// price at order time and must not change if the menu item is repriced later.
type OrderItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OrderID    uint      `gorm:"not null;index" json:"orderId"`
	MenuItemID uint      `gorm:"not null;index" json:"menuItemId"`
	MenuItem   *MenuItem `gorm:"foreignKey:MenuItemID" json:"menuItem,omitempty"`
	Quantity   int       `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice  float64   `gorm:"not null" json:"unitPrice"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
