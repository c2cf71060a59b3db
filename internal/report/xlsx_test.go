package report

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/apperr"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/auth"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/database/dbtest"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/models"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/sales"

	"github.com/xuri/excelize/v2"
)

func managerOf(branchID uint) auth.Caller {
	return auth.Caller{UserID: 2, Username: "bm", Role: models.RoleBranchManager, BranchID: &branchID}
}

func readRows(t *testing.T, data []byte, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	return rows
}

func TestSalesWorkbookIsScoped(t *testing.T) {
	db := dbtest.Open(t)
	b1 := dbtest.Branch(t, db, "B1")
	b2 := dbtest.Branch(t, db, "B2")
	mine := dbtest.Item(t, db, b1.ID, "LAP-1", 10, 2)
	theirs := dbtest.Item(t, db, b2.ID, "LAP-2", 10, 2)
	dbtest.Sale(t, db, mine, 2, 50, time.Now())
	dbtest.Sale(t, db, theirs, 1, 75, time.Now())

	data, err := Sales(db, managerOf(b1.ID), sales.Filter{})
	if err != nil {
		t.Fatalf("Sales: %v", err)
	}
	rows := readRows(t, data, SalesSheet)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want header + 1", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][7] != "Total" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][2] != "B1" || rows[1][4] != "LAP-1" || rows[1][7] != "100" {
		t.Errorf("row = %v", rows[1])
	}
}

func TestInventoryWorkbookFlagsLowStock(t *testing.T) {
	db := dbtest.Open(t)
	b := dbtest.Branch(t, db, "B1")
	dbtest.Item(t, db, b.ID, "OK-1", 50, 10)
	dbtest.Item(t, db, b.ID, "LOW-1", 3, 10)

	admin := auth.Caller{UserID: 1, Role: models.RoleAdmin}
	data, err := Inventory(db, admin, nil)
	if err != nil {
		t.Fatalf("Inventory: %v", err)
	}
	rows := readRows(t, data, InventorySheet)
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	flags := map[string]string{}
	for _, r := range rows[1:] {
		flags[r[2]] = r[9]
	}
	if flags["OK-1"] != "no" || flags["LOW-1"] != "yes" {
		t.Errorf("low stock flags = %v", flags)
	}
}

func TestReportsRequireSession(t *testing.T) {
	db := dbtest.Open(t)
	if _, err := Inventory(db, auth.Caller{}, nil); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Errorf("err = %v, want Unauthorized", err)
	}
}

func TestFilename(t *testing.T) {
	id := uint(7)
	if got := Filename("sales", &id); got != "sales_branch_7.xlsx" {
		t.Errorf("Filename = %q", got)
	}
	if got := Filename("inventory", nil); got != "inventory_all.xlsx" {
		t.Errorf("Filename = %q", got)
	}
}
