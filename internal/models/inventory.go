package models

import "time"

type InventoryCategory string

const (
	CategoryLaptops      InventoryCategory = "Laptops"
	CategoryMobilePhones InventoryCategory = "Mobile Phones"
	CategoryTablets      InventoryCategory = "Tablets"
	CategoryAccessories  InventoryCategory = "Accessories"
	CategoryPeripherals  InventoryCategory = "Peripherals"
	CategoryOther        InventoryCategory = "Other"
)

func (c InventoryCategory) Valid() bool {
	switch c {
	case CategoryLaptops, CategoryMobilePhones, CategoryTablets,
		CategoryAccessories, CategoryPeripherals, CategoryOther:
		return true
	}
	return false
}

// DefaultReorderLevel is applied when an item is created without one.
const DefaultReorderLevel = 10

// Inventory is one stocked product at one branch. Quantity is not guarded
// against going negative by updates; the sale path guards its own decrement.
type Inventory struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	Name          string            `gorm:"size:150;not null" json:"name"`
	SKU           string            `gorm:"column:sku;size:64;uniqueIndex;not null" json:"sku"`
	Category      InventoryCategory `gorm:"size:32;not null;index" json:"category"`
	Quantity      int               `gorm:"not null" json:"quantity"`
	ReorderLevel  int               `gorm:"not null" json:"reorderLevel"`
	Price         float64           `gorm:"not null" json:"price"`
	BranchID      uint              `gorm:"index;not null" json:"branchId"`
	Branch        *Branch           `json:"branch,omitempty"`
	Supplier      string            `gorm:"size:150" json:"supplier"`
	LastRestocked *time.Time        `json:"lastRestocked"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// IsLowStock reports whether the item is at or below its reorder threshold.
func (i Inventory) IsLowStock() bool {
	return i.Quantity <= i.ReorderLevel
}
