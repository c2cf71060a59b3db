package inventory

import (
	"strings"

	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/apperr"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/audit"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/auth"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/database"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/models"

	"gorm.io/gorm"
)

type CreateInput struct {
	Name         string                   `json:"name"`
	SKU          string                   `json:"sku"`
	Category     models.InventoryCategory `json:"category"`
	Quantity     *int                     `json:"quantity"`
	ReorderLevel *int                     `json:"reorderLevel"`
	Price        float64                  `json:"price"`
	BranchID     uint                     `json:"branch"`
	Supplier     string                   `json:"supplier"`
}

// UpdateInput is a partial patch. SKU and branch are fixed after creation.
type UpdateInput struct {
	Name         *string                   `json:"name"`
	Category     *models.InventoryCategory `json:"category"`
	Quantity     *int                      `json:"quantity"`
	ReorderLevel *int                      `json:"reorderLevel"`
	Price        *float64                  `json:"price"`
	Supplier     *string                   `json:"supplier"`
}

func withBranch(db *gorm.DB) *gorm.DB {
	return db.Preload("Branch")
}

func Create(db *gorm.DB, caller auth.Caller, in CreateInput) (*models.Inventory, error) {
	if err := auth.Admin(caller); err != nil {
		return nil, err
	}

	in.Name = strings.TrimSpace(in.Name)
	in.SKU = strings.TrimSpace(in.SKU)
	if in.Name == "" || in.SKU == "" || in.Category == "" || in.Price <= 0 || in.BranchID == 0 {
		return nil, apperr.Validation("Required fields missing")
	}
	if !in.Category.Valid() {
		return nil, apperr.Validation("Invalid inventory category")
	}
	if err := db.Select("id").First(&models.Branch{}, in.BranchID).Error; err != nil {
		return nil, apperr.FromStore(err, "Branch not found")
	}

	item := models.Inventory{
		Name:         in.Name,
		SKU:          in.SKU,
		Category:     in.Category,
		ReorderLevel: models.DefaultReorderLevel,
		Price:        in.Price,
		BranchID:     in.BranchID,
		Supplier:     strings.TrimSpace(in.Supplier),
	}
	if in.Quantity != nil {
		item.Quantity = *in.Quantity
	}
	if in.ReorderLevel != nil {
		item.ReorderLevel = *in.ReorderLevel
	}

	if err := db.Create(&item).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperr.Conflict("SKU already exists")
		}
		return nil, apperr.Internal("create inventory", err)
	}
	audit.Record(db, audit.LogOptions{
		Caller:      caller,
		BranchID:    &item.BranchID,
		EntityType:  audit.EntityInventory,
		EntityID:    item.ID,
		Action:      models.AuditActionCreate,
		Description: "Inventory item created: " + item.SKU,
		After:       item,
	})
	return Get(db, caller, item.ID)
}

func Get(db *gorm.DB, caller auth.Caller, id uint) (*models.Inventory, error) {
	if err := auth.Authenticated(caller); err != nil {
		return nil, err
	}
	var item models.Inventory
	if err := withBranch(db).First(&item, id).Error; err != nil {
		return nil, apperr.FromStore(err, "Inventory item not found")
	}
	return &item, nil
}

// List returns items newest first, restricted to the caller's branch scope.
func List(db *gorm.DB, caller auth.Caller, branchID *uint) ([]models.Inventory, error) {
	if err := auth.Authenticated(caller); err != nil {
		return nil, err
	}
	scope, err := auth.Scope(caller, branchID)
	if err != nil {
		return nil, err
	}
	q := withBranch(db)
	if scope != nil {
		q = q.Where("branch_id = ?", *scope)
	}
	var items []models.Inventory
	if err := q.Order("created_at DESC").Order("id DESC").Find(&items).Error; err != nil {
		return nil, apperr.Internal("list inventory", err)
	}
	return items, nil
}

// LowStock returns items with quantity at or below their reorder level,
// lowest quantity first.
func LowStock(db *gorm.DB, caller auth.Caller, branchID *uint) ([]models.Inventory, error) {
	if err := auth.Authenticated(caller); err != nil {
		return nil, err
	}
	scope, err := auth.Scope(caller, branchID)
	if err != nil {
		return nil, err
	}
	q := withBranch(db).Where("quantity <= reorder_level")
	if scope != nil {
		q = q.Where("branch_id = ?", *scope)
	}
	var items []models.Inventory
	if err := q.Order("quantity ASC").Order("id ASC").Find(&items).Error; err != nil {
		return nil, apperr.Internal("list low stock", err)
	}
	return items, nil
}

func Update(db *gorm.DB, caller auth.Caller, id uint, in UpdateInput) (*models.Inventory, error) {
	if err := auth.BranchManagerOrAdmin(caller); err != nil {
		return nil, err
	}

	var item models.Inventory
	if err := db.First(&item, id).Error; err != nil {
		return nil, apperr.FromStore(err, "Inventory item not found")
	}
	before := item

	if in.Name != nil {
		if name := strings.TrimSpace(*in.Name); name != "" {
			item.Name = name
		}
	}
	if in.Category != nil {
		if !in.Category.Valid() {
			return nil, apperr.Validation("Invalid inventory category")
		}
		item.Category = *in.Category
	}
	if in.Quantity != nil {
		item.Quantity = *in.Quantity
	}
	if in.ReorderLevel != nil {
		item.ReorderLevel = *in.ReorderLevel
	}
	if in.Price != nil {
		if *in.Price <= 0 {
			return nil, apperr.Validation("Price must be positive")
		}
		item.Price = *in.Price
	}
	if in.Supplier != nil {
		item.Supplier = strings.TrimSpace(*in.Supplier)
	}

	if err := db.Omit("Branch").Save(&item).Error; err != nil {
		return nil, apperr.Internal("update inventory", err)
	}
	audit.Record(db, audit.LogOptions{
		Caller:      caller,
		BranchID:    &item.BranchID,
		EntityType:  audit.EntityInventory,
		EntityID:    item.ID,
		Action:      models.AuditActionUpdate,
		Description: "Inventory item updated: " + item.SKU,
		Before:      before,
		After:       item,
	})
	return Get(db, caller, item.ID)
}

func Delete(db *gorm.DB, caller auth.Caller, id uint) error {
	if err := auth.Admin(caller); err != nil {
		return err
	}
	var item models.Inventory
	if err := db.First(&item, id).Error; err != nil {
		return apperr.FromStore(err, "Inventory item not found")
	}
	if err := db.Delete(&item).Error; err != nil {
		return apperr.Internal("delete inventory", err)
	}
	audit.Record(db, audit.LogOptions{
		Caller:      caller,
		BranchID:    &item.BranchID,
		EntityType:  audit.EntityInventory,
		EntityID:    item.ID,
		Action:      models.AuditActionDelete,
		Description: "Inventory item deleted: " + item.SKU,
		Before:      item,
	})
	return nil
}
