package inventory

import (
	"testing"

	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/apperr"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/auth"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/database/dbtest"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/models"
)

var admin = auth.Caller{UserID: 1, Username: "root", Role: models.RoleAdmin}

func intPtr(v int) *int { return &v }

func managerOf(branchID uint) auth.Caller {
	return auth.Caller{UserID: 2, Username: "bm", Role: models.RoleBranchManager, BranchID: &branchID}
}

func TestCreateDefaultsAndValidation(t *testing.T) {
	db := dbtest.Open(t)
	b := dbtest.Branch(t, db, "B1")

	item, err := Create(db, admin, CreateInput{
		Name: "ThinkPad", SKU: "LAP-1", Category: models.CategoryLaptops, Price: 999, BranchID: b.ID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if item.Quantity != 0 || item.ReorderLevel != models.DefaultReorderLevel {
		t.Errorf("defaults: quantity=%d reorderLevel=%d", item.Quantity, item.ReorderLevel)
	}
	if item.Branch == nil || item.Branch.Name != "B1" {
		t.Errorf("branch not resolved: %+v", item.Branch)
	}

	cases := []struct {
		name string
		in   CreateInput
		want apperr.Kind
	}{
		{"missing price", CreateInput{Name: "x", SKU: "X", Category: models.CategoryOther, BranchID: b.ID}, apperr.KindValidation},
		{"bad category", CreateInput{Name: "x", SKU: "X", Category: "Toys", Price: 1, BranchID: b.ID}, apperr.KindValidation},
		{"unknown branch", CreateInput{Name: "x", SKU: "X", Category: models.CategoryOther, Price: 1, BranchID: 99}, apperr.KindNotFound},
		{"duplicate sku", CreateInput{Name: "x", SKU: "LAP-1", Category: models.CategoryOther, Price: 1, BranchID: b.ID}, apperr.KindConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Create(db, admin, tc.in); apperr.KindOf(err) != tc.want {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}

	if _, err := Create(db, managerOf(b.ID), CreateInput{}); apperr.KindOf(err) != apperr.KindForbidden {
		t.Fatalf("manager create: %v", err)
	}
}

func TestListScopedToManagerBranch(t *testing.T) {
	db := dbtest.Open(t)
	b1 := dbtest.Branch(t, db, "B1")
	b2 := dbtest.Branch(t, db, "B2")
	dbtest.Item(t, db, b1.ID, "A", 5, 10)
	dbtest.Item(t, db, b2.ID, "B", 5, 10)
	dbtest.Item(t, db, b2.ID, "C", 5, 10)

	items, err := List(db, managerOf(b1.ID), nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 || items[0].BranchID != b1.ID {
		t.Fatalf("manager saw %d items: %+v", len(items), items)
	}

	all, err := List(db, admin, nil)
	if err != nil || len(all) != 3 {
		t.Fatalf("admin list = %d, %v", len(all), err)
	}
	filtered, err := List(db, admin, &b2.ID)
	if err != nil || len(filtered) != 2 {
		t.Fatalf("admin filtered list = %d, %v", len(filtered), err)
	}

	orphan := auth.Caller{UserID: 9, Role: models.RoleBranchManager}
	if _, err := List(db, orphan, nil); apperr.KindOf(err) != apperr.KindForbidden {
		t.Fatalf("manager without branch: %v", err)
	}
}

func TestLowStockExactlyAtOrBelowReorderLevel(t *testing.T) {
	db := dbtest.Open(t)
	b1 := dbtest.Branch(t, db, "B1")
	b2 := dbtest.Branch(t, db, "B2")
	at := dbtest.Item(t, db, b1.ID, "AT", 10, 10)
	below := dbtest.Item(t, db, b1.ID, "BELOW", 2, 10)
	dbtest.Item(t, db, b1.ID, "ABOVE", 11, 10)
	other := dbtest.Item(t, db, b2.ID, "OTHER", 0, 5)

	for _, tc := range []struct {
		name   string
		caller auth.Caller
		branch *uint
		want   []uint
	}{
		{"admin all branches", admin, nil, []uint{other.ID, below.ID, at.ID}},
		{"admin branch filter", admin, &b1.ID, []uint{below.ID, at.ID}},
		{"manager default scope", managerOf(b2.ID), nil, []uint{other.ID}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			items, err := LowStock(db, tc.caller, tc.branch)
			if err != nil {
				t.Fatalf("LowStock: %v", err)
			}
			if len(items) != len(tc.want) {
				t.Fatalf("got %d items, want %d", len(items), len(tc.want))
			}
			for i, it := range items {
				if it.ID != tc.want[i] {
					t.Errorf("item %d = %d, want %d", i, it.ID, tc.want[i])
				}
				if !it.IsLowStock() {
					t.Errorf("item %s is not low stock", it.SKU)
				}
			}
		})
	}
}

func TestUpdatePartialAllowsNegativeQuantity(t *testing.T) {
	db := dbtest.Open(t)
	b := dbtest.Branch(t, db, "B1")
	item := dbtest.Item(t, db, b.ID, "A", 5, 10)

	got, err := Update(db, managerOf(b.ID), item.ID, UpdateInput{Quantity: intPtr(-3)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Quantity != -3 || got.Name != item.Name || got.ReorderLevel != 10 {
		t.Errorf("updated %+v", got)
	}

	bad := models.InventoryCategory("Toys")
	if _, err := Update(db, admin, item.ID, UpdateInput{Category: &bad}); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("bad category: %v", err)
	}
}

func TestDelete(t *testing.T) {
	db := dbtest.Open(t)
	b := dbtest.Branch(t, db, "B1")
	item := dbtest.Item(t, db, b.ID, "A", 5, 10)

	if err := Delete(db, managerOf(b.ID), item.ID); apperr.KindOf(err) != apperr.KindForbidden {
		t.Fatalf("manager delete: %v", err)
	}
	if err := Delete(db, admin, item.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := Get(db, admin, item.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("Get after delete: %v", err)
	}
}
