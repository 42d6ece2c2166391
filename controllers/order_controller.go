package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/campuscrave/campuscrave-api/config"
	"github.com/campuscrave/campuscrave-api/middleware"
	"github.com/campuscrave/campuscrave-api/models"
)

// OrderItemRequest is one requested line of a new order
type OrderItemRequest struct {
	MenuItemID uint `json:"menuItemId"`
	Quantity   int  `json:"quantity"`
}

// CreateOrderRequest represents the request body for creating an order
type CreateOrderRequest struct {
	VendorID         uint               `json:"vendorId"`
	Items            []OrderItemRequest `json:"items"`
	DeliveryLocation string             `json:"deliveryLocation"`
	DeliveryNotes    *string            `json:"deliveryNotes"`
}

// UpdateOrderStatusRequest represents the request body for a status update
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING ACCEPTED PREPARING READY COMPLETED CANCELLED"`
}

// CreateOrder handles POST /api/orders/student - creates an order with its
// line items in a single transaction (students only)
func CreateOrder(c *gin.Context) {
	studentID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Not authenticated",
		})
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
		})
		return
	}

	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Order must contain at least one item",
		})
		return
	}
	if req.VendorID == 0 || req.DeliveryLocation == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Missing required order fields",
		})
		return
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Item quantity must be a positive integer",
			})
			return
		}
	}

	// Resolve every menu item, snapshot unit prices and create the order
	// with all of its lines atomically. A missing item aborts the whole
	// transaction so no partial order is ever observable.
	db := config.GetDB()
	var order models.Order
	err = db.Transaction(func(tx *gorm.DB) error {
		var totalAmount float64
		orderItems := make([]models.OrderItem, 0, len(req.Items))

		for _, item := range req.Items {
			var menuItem models.MenuItem
			if err := tx.First(&menuItem, item.MenuItemID).Error; err != nil {
				return err
			}

			totalAmount += menuItem.Price * float64(item.Quantity)
			orderItems = append(orderItems, models.OrderItem{
				MenuItemID: item.MenuItemID,
				Quantity:   item.Quantity,
				UnitPrice:  menuItem.Price,
			})
		}

		order = models.Order{
			StudentID:        studentID,
			VendorID:         req.VendorID,
			TotalAmount:      totalAmount,
			DeliveryLocation: req.DeliveryLocation,
			DeliveryNotes:    req.DeliveryNotes,
			Status:           models.OrderStatusPending,
			OrderItems:       orderItems,
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Menu item not found",
			})
			return
		}
		log.Printf("Failed to create order: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Something went wrong",
		})
		return
	}

	// Reload with line items to return complete data
	if err := db.Preload("OrderItems").First(&order, order.ID).Error; err != nil {
		log.Printf("Failed to load created order: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Something went wrong",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   order,
	})
}

// GetStudentOrders handles GET /api/orders/student - lists the student's own
// orders, newest first
func GetStudentOrders(c *gin.Context) {
	studentID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Not authenticated",
		})
		return
	}

	db := config.GetDB()
	var orders []models.Order
	if err := db.Where("student_id = ?", studentID).
		Preload("OrderItems.MenuItem").
		Preload("Vendor").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		log.Printf("Failed to list student orders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Something went wrong",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(orders),
		"data":    orders,
	})
}

// GetStudentOrderByID handles GET /api/orders/student/:orderId. Ownership is
// part of the lookup, so another student's order is indistinguishable from a
// nonexistent one.
func GetStudentOrderByID(c *gin.Context) {
	studentID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Not authenticated",
		})
		return
	}

	orderID, err := parseIDParam(c, "orderId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid order id",
		})
		return
	}

	db := config.GetDB()
	var order models.Order
	if err := db.Where("id = ? AND student_id = ?", orderID, studentID).
		Preload("OrderItems.MenuItem").
		Preload("Vendor").
		First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Order not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   order,
	})
}

// TrackOrderStatus handles GET /api/orders/student/:orderId/trackstatus -
// minimal status projection of the student's own order
func TrackOrderStatus(c *gin.Context) {
	studentID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Not authenticated",
		})
		return
	}

	orderID, err := parseIDParam(c, "orderId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid order id",
		})
		return
	}

	db := config.GetDB()
	var order models.Order
	if err := db.Where("id = ? AND student_id = ?", orderID, studentID).
		First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Order not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"order": gin.H{
				"id":        order.ID,
				"status":    order.Status,
				"updatedAt": order.UpdatedAt,
			},
		},
	})
}

// GetVendorOrders handles GET /api/orders/vendor - lists orders received by
// the vendor, newest first
func GetVendorOrders(c *gin.Context) {
	vendorID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Not authenticated",
		})
		return
	}

	db := config.GetDB()
	var orders []models.Order
	if err := db.Where("vendor_id = ?", vendorID).
		Preload("OrderItems.MenuItem").
		Preload("Student").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		log.Printf("Failed to list vendor orders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Something went wrong",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(orders),
		"data":    orders,
	})
}

// GetVendorOrderByID handles GET /api/orders/vendor/:orderId
func GetVendorOrderByID(c *gin.Context) {
	vendorID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Not authenticated",
		})
		return
	}

	orderID, err := parseIDParam(c, "orderId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid order id",
		})
		return
	}

	db := config.GetDB()
	var order models.Order
	if err := db.Where("id = ? AND vendor_id = ?", orderID, vendorID).
		Preload("OrderItems.MenuItem").
		Preload("Student").
		First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Order not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   order,
	})
}

// UpdateOrderStatus handles PATCH /api/orders/vendor/:orderId/status. Only the
// owning vendor may call it. Terminal orders reject any update; beyond that
// the vendor may move to any status, the transition order is not enforced.
func UpdateOrderStatus(c *gin.Context) {
	vendorID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Not authenticated",
		})
		return
	}

	orderID, err := parseIDParam(c, "orderId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid order id",
		})
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Status must be one of " + strings.Join(models.OrderStatuses, ", "),
		})
		return
	}

	db := config.GetDB()
	var order models.Order
	if err := db.Where("id = ? AND vendor_id = ?", orderID, vendorID).
		First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Order not found",
		})
		return
	}

	if models.IsTerminalStatus(order.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": fmt.Sprintf("Order is already %s and cannot be updated", strings.ToLower(order.Status)),
		})
		return
	}

	if err := db.Model(&order).Update("status", req.Status).Error; err != nil {
		log.Printf("Failed to update order status: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Something went wrong",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   order,
	})
}

// CancelOrder handles PATCH /api/orders/{student,vendor}/:orderId/cancel.
// Either the owning student or the owning vendor may cancel; anyone else is
// rejected. There is no terminal-state guard here: a completed order can
// still be cancelled, matching the status-update asymmetry this system has
// always had.
func CancelOrder(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Not authenticated",
		})
		return
	}
	role, err := middleware.GetUserRole(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Not authenticated",
		})
		return
	}

	orderID, err := parseIDParam(c, "orderId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid order id",
		})
		return
	}

	db := config.GetDB()
	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Order not found",
		})
		return
	}

	if (role == models.RoleStudent && order.StudentID != userID) ||
		(role == models.RoleVendor && order.VendorID != userID) {
		c.JSON(http.StatusForbidden, gin.H{
			"status":  "error",
			"message": "You are not authorized to cancel this order",
		})
		return
	}

	if err := db.Model(&order).Update("status", models.OrderStatusCancelled).Error; err != nil {
		log.Printf("Failed to cancel order: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Something went wrong",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   order,
	})
}

// parseIDParam parses a numeric path parameter
func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return uint(id), nil
}
