package sales

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/apperr"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/auth"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/database/dbtest"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/models"

	"gorm.io/gorm"
)

var admin = auth.Caller{UserID: 1, Username: "root", Role: models.RoleAdmin}

func managerOf(branchID uint) auth.Caller {
	return auth.Caller{UserID: 2, Username: "bm", Role: models.RoleBranchManager, BranchID: &branchID}
}

func quantityOf(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var item models.Inventory
	if err := db.First(&item, id).Error; err != nil {
		t.Fatal(err)
	}
	return item.Quantity
}

func TestLineTotal(t *testing.T) {
	cases := []struct {
		qty   int
		price float64
		want  float64
	}{
		{3, 19.99, 59.97},
		{10, 0.1, 1},
		{1, 1234.5, 1234.5},
	}
	for _, tc := range cases {
		if got := LineTotal(tc.qty, tc.price); got != tc.want {
			t.Errorf("LineTotal(%d, %v) = %v, want %v", tc.qty, tc.price, got, tc.want)
		}
	}
}

func TestRecordDecrementsStockAndComputesTotal(t *testing.T) {
	db := dbtest.Open(t)
	b := dbtest.Branch(t, db, "B1")
	item := dbtest.Item(t, db, b.ID, "LAP-1", 20, 10)

	sale, err := Record(db, managerOf(b.ID), CreateInput{
		ProductID: item.ID, Quantity: 15, UnitPrice: 250.5, BranchID: b.ID, PaymentMethod: models.PaymentCard,
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if sale.TotalAmount != 3757.5 {
		t.Errorf("totalAmount = %v, want 3757.5", sale.TotalAmount)
	}
	if sale.Product == nil || sale.Product.ID != item.ID {
		t.Errorf("product not resolved: %+v", sale.Product)
	}
	if q := quantityOf(t, db, item.ID); q != 5 {
		t.Errorf("inventory quantity = %d, want 5", q)
	}
}

func TestRecordInsufficientStockLeavesInventoryUnchanged(t *testing.T) {
	db := dbtest.Open(t)
	b := dbtest.Branch(t, db, "B1")
	item := dbtest.Item(t, db, b.ID, "LAP-1", 4, 10)

	_, err := Record(db, admin, CreateInput{
		ProductID: item.ID, Quantity: 5, UnitPrice: 10, BranchID: b.ID, PaymentMethod: models.PaymentCash,
	})
	if !errors.Is(err, apperr.ErrInsufficientStock) {
		t.Fatalf("err = %v, want InsufficientStock", err)
	}
	if q := quantityOf(t, db, item.ID); q != 4 {
		t.Errorf("inventory quantity = %d, want 4", q)
	}
	var count int64
	db.Model(&models.Sale{}).Count(&count)
	if count != 0 {
		t.Errorf("sale rows = %d, want 0", count)
	}
}

func TestRecordValidation(t *testing.T) {
	db := dbtest.Open(t)
	b := dbtest.Branch(t, db, "B1")
	item := dbtest.Item(t, db, b.ID, "LAP-1", 4, 10)

	valid := CreateInput{ProductID: item.ID, Quantity: 1, UnitPrice: 10, BranchID: b.ID, PaymentMethod: models.PaymentCash}
	cases := []struct {
		name   string
		mutate func(*CreateInput)
		want   apperr.Kind
	}{
		{"zero quantity", func(in *CreateInput) { in.Quantity = 0 }, apperr.KindValidation},
		{"zero price", func(in *CreateInput) { in.UnitPrice = 0 }, apperr.KindValidation},
		{"no branch", func(in *CreateInput) { in.BranchID = 0 }, apperr.KindValidation},
		{"bad payment", func(in *CreateInput) { in.PaymentMethod = "Barter" }, apperr.KindValidation},
		{"unknown product", func(in *CreateInput) { in.ProductID = 999 }, apperr.KindNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			if _, err := Record(db, admin, in); apperr.KindOf(err) != tc.want {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
	if _, err := Record(db, auth.Caller{}, valid); apperr.KindOf(err) != apperr.KindUnauthorized {
		t.Fatalf("anonymous: %v", err)
	}
}

func TestConcurrentSalesNeverOversell(t *testing.T) {
	db := dbtest.Open(t)
	b := dbtest.Branch(t, db, "B1")
	item := dbtest.Item(t, db, b.ID, "LAP-1", 10, 2)

	const workers = 5
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := Record(db, admin, CreateInput{
				ProductID: item.ID, Quantity: 3, UnitPrice: 1, BranchID: b.ID, PaymentMethod: models.PaymentCash,
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			} else if apperr.KindOf(err) != apperr.KindInsufficientStock {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if succeeded != 3 {
		t.Errorf("succeeded = %d, want 3", succeeded)
	}
	if q := quantityOf(t, db, item.ID); q != 1 {
		t.Errorf("inventory quantity = %d, want 1", q)
	}
	var count int64
	db.Model(&models.Sale{}).Count(&count)
	if int(count) != succeeded {
		t.Errorf("sale rows = %d, successes = %d", count, succeeded)
	}
}

func TestListAndSummaryScope(t *testing.T) {
	db := dbtest.Open(t)
	b1 := dbtest.Branch(t, db, "B1")
	b2 := dbtest.Branch(t, db, "B2")
	i1 := dbtest.Item(t, db, b1.ID, "A", 100, 10)
	i2 := dbtest.Item(t, db, b2.ID, "B", 100, 10)

	jan := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC)
	dbtest.Sale(t, db, i1, 2, 10, jan)
	dbtest.Sale(t, db, i1, 1, 40, feb)
	dbtest.Sale(t, db, i2, 5, 100, feb)

	list, err := List(db, managerOf(b1.ID), Filter{})
	if err != nil || len(list) != 2 {
		t.Fatalf("manager list = %d, %v", len(list), err)
	}
	if !list[0].SaleDate.After(list[1].SaleDate) {
		t.Error("sales not newest first")
	}

	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC)
	febOnly, err := List(db, admin, Filter{StartDate: &start, EndDate: &end})
	if err != nil || len(febOnly) != 2 {
		t.Fatalf("february list = %d, %v", len(febOnly), err)
	}

	s, err := Summarize(db, managerOf(b1.ID), Filter{})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	want := Summary{TotalSales: 60, TotalQuantity: 3, AverageOrderValue: 30, Count: 2}
	if *s != want {
		t.Errorf("summary = %+v, want %+v", *s, want)
	}

	empty, err := Summarize(db, admin, Filter{StartDate: &end})
	if err != nil {
		t.Fatalf("empty Summarize: %v", err)
	}
	if *empty != (Summary{}) {
		t.Errorf("empty summary = %+v", *empty)
	}
}

func TestDecrementStockRefusesToGoNegative(t *testing.T) {
	db := dbtest.Open(t)
	b := dbtest.Branch(t, db, "B1")
	item := dbtest.Item(t, db, b.ID, "LAP-1", 2, 1)

	if err := decrementStock(db, item.ID, 3); !errors.Is(err, apperr.ErrInsufficientStock) {
		t.Fatalf("err = %v, want InsufficientStock", err)
	}
	if q := quantityOf(t, db, item.ID); q != 2 {
		t.Errorf("quantity = %d, want 2", q)
	}
	if err := decrementStock(db, item.ID, 2); err != nil {
		t.Fatalf("exact decrement: %v", err)
	}
	if q := quantityOf(t, db, item.ID); q != 0 {
		t.Errorf("quantity = %d, want 0", q)
	}
}

// A competing sale drains the stock between the availability read and the
// decrement; the losing sale must fail and leave no Sale row behind.
func TestRecordLosesRaceAfterStockRead(t *testing.T) {
	db := dbtest.Open(t)
	b := dbtest.Branch(t, db, "B1")
	item := dbtest.Item(t, db, b.ID, "LAP-1", 10, 2)

	err := db.Callback().Create().Before("gorm:create").Register("test:drain_stock", func(tx *gorm.DB) {
		if tx.Statement.Table != "sales" {
			return
		}
		if _, err := tx.Statement.ConnPool.ExecContext(tx.Statement.Context,
			"UPDATE inventories SET quantity = ? WHERE id = ?", 1, item.ID); err != nil {
			tx.AddError(err)
		}
	})
	if err != nil {
		t.Fatal(err)
	}

	_, err = Record(db, admin, CreateInput{
		ProductID: item.ID, Quantity: 3, UnitPrice: 10, BranchID: b.ID, PaymentMethod: models.PaymentCash,
	})
	if !errors.Is(err, apperr.ErrInsufficientStock) {
		t.Fatalf("err = %v, want InsufficientStock", err)
	}

	var sales int64
	db.Model(&models.Sale{}).Count(&sales)
	if sales != 0 {
		t.Errorf("sale rows = %d, want 0", sales)
	}
	// the drain ran inside the rolled back transaction
	if q := quantityOf(t, db, item.ID); q != 10 {
		t.Errorf("quantity = %d, want 10", q)
	}
}
