package services

import (
	"sort"

	"gorm.io/gorm"

	"github.com/campuscrave/campuscrave-api/models"
)

// recommendationLimit caps how many menu items a recommendation returns
const recommendationLimit = 10

type scoredMenu struct {
	menu  models.MenuItem
	score int
}

// GetRecommendedMenus ranks the currently available menu items for a student
// based on their order history. A menu item scores +3 when the student has
// ever ordered from its category and +2 when they have ever ordered from its
// vendor; presence counts, not magnitude. The result is deterministic for a
// fixed data snapshot: candidates load in id order and the sort is stable, so
// ties keep id order.
func GetRecommendedMenus(db *gorm.DB, studentID uint) ([]models.MenuItem, error) {
	// Every past order with its items, menu items and categories
	var orders []models.Order
	if err := db.Where("student_id = ?", studentID).
		Preload("OrderItems.MenuItem.Category").
		Find(&orders).Error; err != nil {
		return nil, err
	}

	// Category tally bumps once per order item, vendor tally once per order
	categoryCount := make(map[string]int)
	vendorCount := make(map[uint]int)
	for _, order := range orders {
		vendorCount[order.VendorID]++
		for _, item := range order.OrderItems {
			if item.MenuItem != nil && item.MenuItem.Category != nil {
				categoryCount[item.MenuItem.Category.Name]++
			}
		}
	}

	var menus []models.MenuItem
	if err := db.Where("available = ?", true).
		Preload("Category").
		Order("id ASC").
		Find(&menus).Error; err != nil {
		return nil, err
	}

	scored := make([]scoredMenu, 0, len(menus))
	for _, menu := range menus {
		score := 0
		if menu.Category != nil && categoryCount[menu.Category.Name] > 0 {
			score += 3
		}
		if vendorCount[menu.VendorID] > 0 {
			score += 2
		}
		scored = append(scored, scoredMenu{menu: menu, score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if len(scored) > recommendationLimit {
		scored = scored[:recommendationLimit]
	}

	recommended := make([]models.MenuItem, len(scored))
	for i, s := range scored {
		recommended[i] = s.menu
	}
	return recommended, nil
}
