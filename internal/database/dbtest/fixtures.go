package dbtest

import (
	"testing"
	"time"

	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/models"

	"gorm.io/gorm"
)

func create(t testing.TB, db *gorm.DB, v any) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("create %T: %v", v, err)
	}
}

func Branch(t testing.TB, db *gorm.DB, name string) models.Branch {
	t.Helper()
	b := models.Branch{
		Name:    name,
		Address: "1 Main St",
		City:    "Springfield",
		Phone:   "555-0100",
		Email:   name + "@franchise.test",
		Status:  models.BranchActive,
	}
	create(t, db, &b)
	return b
}

// User inserts an active user whose password hash is not usable for login.
func User(t testing.TB, db *gorm.DB, username string, role models.UserRole, branchID *uint) models.User {
	t.Helper()
	u := models.User{
		Username:     username,
		Email:        username + "@franchise.test",
		PasswordHash: "x",
		Role:         role,
		BranchID:     branchID,
		IsActive:     true,
	}
	create(t, db, &u)
	return u
}

func Item(t testing.TB, db *gorm.DB, branchID uint, sku string, qty, reorderLevel int) models.Inventory {
	t.Helper()
	item := models.Inventory{
		Name:         "Item " + sku,
		SKU:          sku,
		Category:     models.CategoryLaptops,
		Quantity:     qty,
		ReorderLevel: reorderLevel,
		Price:        100,
		BranchID:     branchID,
	}
	create(t, db, &item)
	return item
}

func Staff(t testing.TB, db *gorm.DB, branchID uint, name string) models.Staff {
	t.Helper()
	s := models.Staff{
		Name:     name,
		Email:    name + "@franchise.test",
		Phone:    "555-0101",
		Role:     models.StaffCashier,
		Salary:   30000,
		BranchID: branchID,
		Status:   models.StaffActive,
		JoinDate: time.Now(),
	}
	create(t, db, &s)
	return s
}

func Sale(t testing.TB, db *gorm.DB, item models.Inventory, qty int, unitPrice float64, at time.Time) models.Sale {
	t.Helper()
	s := models.Sale{
		ProductID:     item.ID,
		Quantity:      qty,
		UnitPrice:     unitPrice,
		TotalAmount:   float64(qty) * unitPrice,
		BranchID:      item.BranchID,
		SaleDate:      at,
		PaymentMethod: models.PaymentCash,
	}
	create(t, db, &s)
	return s
}
