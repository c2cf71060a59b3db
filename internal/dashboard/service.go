package dashboard

import (
	"sort"
	"time"

	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/apperr"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/auth"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/expense"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/models"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/sales"

	"gorm.io/gorm"
)

const (
	trailingWindow   = 30 * 24 * time.Hour
	summaryListLimit = 5
	defaultMonths    = 12
	maxMonths        = 120
)

type SalesTotals struct {
	Total float64 `json:"total"`
	Count int64   `json:"count"`
}

type ExpenseTotals struct {
	Total float64 `json:"total"`
}

type TopProduct struct {
	ProductID     uint    `json:"productId"`
	Name          string  `json:"name"`
	SKU           string  `json:"sku"`
	TotalQuantity int64   `json:"totalQuantity"`
	TotalSales    float64 `json:"totalSales"`
}

type AdminSummary struct {
	TotalBranches      int64              `json:"totalBranches"`
	ActiveBranches     int64              `json:"activeBranches"`
	TotalStaff         int64              `json:"totalStaff"`
	MonthlySales       SalesTotals        `json:"monthlySales"`
	LowStockItems      []models.Inventory `json:"lowStockItems"`
	TopSellingProducts []TopProduct       `json:"topSellingProducts"`
}

type BranchSummary struct {
	BranchID           uint               `json:"branchId"`
	Branch             string             `json:"branch"`
	TotalStaff         int64              `json:"totalStaff"`
	TotalProducts      int64              `json:"totalProducts"`
	MonthlySales       SalesTotals        `json:"monthlySales"`
	MonthlyExpenses    ExpenseTotals      `json:"monthlyExpenses"`
	LowStockItems      []models.Inventory `json:"lowStockItems"`
	TopSellingProducts []TopProduct       `json:"topSellingProducts"`
}

type BranchComparison struct {
	BranchID          uint    `json:"branchId"`
	BranchName        string  `json:"branchName"`
	TotalSales        float64 `json:"totalSales"`
	TotalTransactions int64   `json:"totalTransactions"`
	AverageOrderValue float64 `json:"averageOrderValue"`
}

type CategoryRevenue struct {
	Category     models.InventoryCategory `json:"category"`
	TotalRevenue float64                  `json:"totalRevenue"`
	TotalItems   int64                    `json:"totalItems"`
}

func count(db *gorm.DB, model any, where ...any) (int64, error) {
	var n int64
	q := db.Model(model)
	if len(where) > 0 {
		q = q.Where(where[0], where[1:]...)
	}
	if err := q.Count(&n).Error; err != nil {
		return 0, apperr.Internal("count", err)
	}
	return n, nil
}

func salesSince(db *gorm.DB, since time.Time, branchID *uint) (SalesTotals, error) {
	q := db.Model(&models.Sale{}).Where("sale_date >= ?", since)
	if branchID != nil {
		q = q.Where("branch_id = ?", *branchID)
	}
	var row struct {
		Total float64
		Count int64
	}
	if err := q.Select("COALESCE(SUM(total_amount), 0) AS total, COUNT(*) AS count").
		Scan(&row).Error; err != nil {
		return SalesTotals{}, apperr.Internal("sum sales", err)
	}
	return SalesTotals{Total: sales.Round2(row.Total), Count: row.Count}, nil
}

func lowStock(db *gorm.DB, branchID *uint) ([]models.Inventory, error) {
	q := db.Preload("Branch").Where("quantity <= reorder_level")
	if branchID != nil {
		q = q.Where("branch_id = ?", *branchID)
	}
	items := make([]models.Inventory, 0, summaryListLimit)
	if err := q.Order("quantity ASC").Order("id ASC").Limit(summaryListLimit).Find(&items).Error; err != nil {
		return nil, apperr.Internal("low stock", err)
	}
	return items, nil
}

func topProducts(db *gorm.DB, since time.Time, branchID *uint) ([]TopProduct, error) {
	q := db.Table("sales").
		Select("sales.product_id AS product_id, inventories.name AS name, inventories.sku AS sku, " +
			"SUM(sales.quantity) AS total_quantity, SUM(sales.total_amount) AS total_sales").
		Joins("JOIN inventories ON inventories.id = sales.product_id").
		Where("sales.sale_date >= ?", since)
	if branchID != nil {
		q = q.Where("sales.branch_id = ?", *branchID)
	}
	out := make([]TopProduct, 0, summaryListLimit)
	if err := q.Group("sales.product_id, inventories.name, inventories.sku").
		Order("total_quantity DESC").Order("sales.product_id ASC").
		Limit(summaryListLimit).
		Scan(&out).Error; err != nil {
		return nil, apperr.Internal("top products", err)
	}
	for i := range out {
		out[i].TotalSales = sales.Round2(out[i].TotalSales)
	}
	return out, nil
}

// Admin summarizes every branch over the trailing 30 days.
func Admin(db *gorm.DB, caller auth.Caller) (*AdminSummary, error) {
	if err := auth.Admin(caller); err != nil {
		return nil, err
	}
	since := time.Now().Add(-trailingWindow)

	var s AdminSummary
	var err error
	if s.TotalBranches, err = count(db, &models.Branch{}); err != nil {
		return nil, err
	}
	if s.ActiveBranches, err = count(db, &models.Branch{}, "status = ?", models.BranchActive); err != nil {
		return nil, err
	}
	if s.TotalStaff, err = count(db, &models.Staff{}); err != nil {
		return nil, err
	}
	if s.MonthlySales, err = salesSince(db, since, nil); err != nil {
		return nil, err
	}
	if s.LowStockItems, err = lowStock(db, nil); err != nil {
		return nil, err
	}
	if s.TopSellingProducts, err = topProducts(db, since, nil); err != nil {
		return nil, err
	}
	return &s, nil
}

// Branch summarizes one branch: the requested one, or the caller's own.
func Branch(db *gorm.DB, caller auth.Caller, requested *uint) (*BranchSummary, error) {
	if err := auth.BranchManagerOrAdmin(caller); err != nil {
		return nil, err
	}
	scope, err := auth.Scope(caller, requested)
	if err != nil {
		return nil, err
	}
	if scope == nil {
		return nil, apperr.Validation("Branch ID is required")
	}

	var b models.Branch
	if err := db.First(&b, *scope).Error; err != nil {
		return nil, apperr.FromStore(err, "Branch not found")
	}
	since := time.Now().Add(-trailingWindow)

	s := BranchSummary{BranchID: b.ID, Branch: b.Name}
	if s.TotalStaff, err = count(db, &models.Staff{}, "branch_id = ?", b.ID); err != nil {
		return nil, err
	}
	if s.TotalProducts, err = count(db, &models.Inventory{}, "branch_id = ?", b.ID); err != nil {
		return nil, err
	}
	if s.MonthlySales, err = salesSince(db, since, &b.ID); err != nil {
		return nil, err
	}
	total, err := expense.TotalSince(db, b.ID, since)
	if err != nil {
		return nil, err
	}
	s.MonthlyExpenses.Total = sales.Round2(total)
	if s.LowStockItems, err = lowStock(db, &b.ID); err != nil {
		return nil, err
	}
	if s.TopSellingProducts, err = topProducts(db, since, &b.ID); err != nil {
		return nil, err
	}
	return &s, nil
}

// CompareBranches ranks branches by sales total over [start, end]. Missing
// bounds default to the trailing 30 days.
func CompareBranches(db *gorm.DB, caller auth.Caller, start, end *time.Time) ([]BranchComparison, error) {
	if err := auth.Admin(caller); err != nil {
		return nil, err
	}
	to := time.Now()
	if end != nil {
		to = *end
	}
	from := to.Add(-trailingWindow)
	if start != nil {
		from = *start
	}

	type row struct {
		BranchID   uint
		BranchName string
		Total      float64
		Count      int64
	}
	var rows []row
	if err := db.Table("sales").
		Select("sales.branch_id AS branch_id, COALESCE(branches.name, '') AS branch_name, " +
			"SUM(sales.total_amount) AS total, COUNT(*) AS count").
		Joins("LEFT JOIN branches ON branches.id = sales.branch_id").
		Where("sales.sale_date >= ? AND sales.sale_date <= ?", from, to).
		Group("sales.branch_id, branches.name").
		Order("sales.branch_id ASC").
		Scan(&rows).Error; err != nil {
		return nil, apperr.Internal("compare branches", err)
	}

	out := make([]BranchComparison, 0, len(rows))
	for _, r := range rows {
		out = append(out, BranchComparison{
			BranchID:          r.BranchID,
			BranchName:        r.BranchName,
			TotalSales:        sales.Round2(r.Total),
			TotalTransactions: r.Count,
			AverageOrderValue: sales.Average(r.Total, r.Count),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalSales > out[j].TotalSales })
	return out, nil
}

// RevenueByCategory totals sales per product category, largest first.
func RevenueByCategory(db *gorm.DB, caller auth.Caller, requested *uint) ([]CategoryRevenue, error) {
	if err := auth.Authenticated(caller); err != nil {
		return nil, err
	}
	scope, err := auth.Scope(caller, requested)
	if err != nil {
		return nil, err
	}

	q := db.Table("sales").
		Select("inventories.category AS category, SUM(sales.total_amount) AS total_revenue, " +
			"SUM(sales.quantity) AS total_items").
		Joins("JOIN inventories ON inventories.id = sales.product_id")
	if scope != nil {
		q = q.Where("sales.branch_id = ?", *scope)
	}
	out := make([]CategoryRevenue, 0, 6)
	if err := q.Group("inventories.category").
		Order("total_revenue DESC").Order("category ASC").
		Scan(&out).Error; err != nil {
		return nil, apperr.Internal("revenue by category", err)
	}
	for i := range out {
		out[i].TotalRevenue = sales.Round2(out[i].TotalRevenue)
	}
	return out, nil
}
