package report

import (
	"fmt"

	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/apperr"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/auth"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/inventory"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/models"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/sales"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const (
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	SalesSheet     = "Sales"
	InventorySheet = "Inventory"
)

type column struct {
	title string
	width float64
}

var salesColumns = []column{
	{"ID", 8}, {"Date", 20}, {"Branch", 20}, {"Product", 28}, {"SKU", 14},
	{"Quantity", 10}, {"Unit Price", 12}, {"Total", 14}, {"Payment", 10}, {"Notes", 30},
}

var inventoryColumns = []column{
	{"ID", 8}, {"Name", 28}, {"SKU", 14}, {"Category", 16}, {"Branch", 20},
	{"Quantity", 10}, {"Reorder Level", 14}, {"Price", 12}, {"Supplier", 20}, {"Low Stock", 10},
}

// writeSheet renders a header row and data rows into a fresh workbook.
func writeSheet(sheet string, cols []column, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, apperr.Internal("create sheet", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, apperr.Internal("delete default sheet", err)
	}
	f.SetActiveSheet(index)

	for c, col := range cols {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		if err := f.SetCellValue(sheet, cell, col.title); err != nil {
			return nil, apperr.Internal("write header", err)
		}
		name, _ := excelize.ColumnNumberToName(c + 1)
		_ = f.SetColWidth(sheet, name, name, col.width)
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, apperr.Internal("write row", err)
			}
		}
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F2937"}, Pattern: 1},
	})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(cols), 1)
		_ = f.SetCellStyle(sheet, "A1", last, style)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, apperr.Internal("write workbook", err)
	}
	return buf.Bytes(), nil
}

func branchName(b *models.Branch) string {
	if b == nil {
		return ""
	}
	return b.Name
}

// Sales exports the caller's scoped sales list.
func Sales(db *gorm.DB, caller auth.Caller, f sales.Filter) ([]byte, error) {
	list, err := sales.List(db, caller, f)
	if err != nil {
		return nil, err
	}
	rows := make([][]any, 0, len(list))
	for _, s := range list {
		var product, sku string
		if s.Product != nil {
			product, sku = s.Product.Name, s.Product.SKU
		}
		rows = append(rows, []any{
			s.ID,
			s.SaleDate.Format("2006-01-02 15:04"),
			branchName(s.Branch),
			product,
			sku,
			s.Quantity,
			s.UnitPrice,
			s.TotalAmount,
			string(s.PaymentMethod),
			s.Notes,
		})
	}
	return writeSheet(SalesSheet, salesColumns, rows)
}

// Inventory exports the caller's scoped inventory list.
func Inventory(db *gorm.DB, caller auth.Caller, branchID *uint) ([]byte, error) {
	list, err := inventory.List(db, caller, branchID)
	if err != nil {
		return nil, err
	}
	rows := make([][]any, 0, len(list))
	for _, it := range list {
		low := "no"
		if it.Quantity <= it.ReorderLevel {
			low = "yes"
		}
		rows = append(rows, []any{
			it.ID, it.Name, it.SKU, string(it.Category), branchName(it.Branch),
			it.Quantity, it.ReorderLevel, it.Price, it.Supplier, low,
		})
	}
	return writeSheet(InventorySheet, inventoryColumns, rows)
}

func Filename(kind string, branchID *uint) string {
	if branchID == nil {
		return fmt.Sprintf("%s_all.xlsx", kind)
	}
	return fmt.Sprintf("%s_branch_%d.xlsx", kind, *branchID)
}
