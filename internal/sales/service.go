package sales

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/apperr"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/audit"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/auth"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/metrics"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateInput struct {
	ProductID     uint                 `json:"product"`
	Quantity      int                  `json:"quantity"`
	UnitPrice     float64              `json:"unitPrice"`
	BranchID      uint                 `json:"branch"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod"`
	Notes         string               `json:"notes"`
	SaleDate      *models.Date         `json:"saleDate"`
}

type Filter struct {
	BranchID  *uint
	StartDate *time.Time
	EndDate   *time.Time
}

type Summary struct {
	TotalSales        float64 `json:"totalSales"`
	TotalQuantity     int64   `json:"totalQuantity"`
	AverageOrderValue float64 `json:"averageOrderValue"`
	Count             int64   `json:"count"`
}

// LineTotal is quantity x unitPrice rounded to cents.
func LineTotal(quantity int, unitPrice float64) float64 {
	return decimal.NewFromInt(int64(quantity)).
		Mul(decimal.NewFromFloat(unitPrice)).
		Round(2).
		InexactFloat64()
}

// Record persists a sale and takes its quantity out of stock in one
// transaction. The stock decrement only applies while enough stock remains,
// so two concurrent sales can never drive the quantity negative.
func Record(db *gorm.DB, caller auth.Caller, in CreateInput) (*models.Sale, error) {
	if err := auth.BranchManagerOrAdmin(caller); err != nil {
		return nil, err
	}
	if in.ProductID == 0 || in.Quantity <= 0 || in.UnitPrice <= 0 || in.BranchID == 0 || in.PaymentMethod == "" {
		return nil, apperr.Validation("Required fields missing")
	}
	if !in.PaymentMethod.Valid() {
		return nil, apperr.Validation("Invalid payment method")
	}

	sale := models.Sale{
		ProductID:     in.ProductID,
		Quantity:      in.Quantity,
		UnitPrice:     in.UnitPrice,
		TotalAmount:   LineTotal(in.Quantity, in.UnitPrice),
		BranchID:      in.BranchID,
		SaleDate:      time.Now(),
		PaymentMethod: in.PaymentMethod,
		Notes:         strings.TrimSpace(in.Notes),
	}
	if in.SaleDate != nil {
		sale.SaleDate = in.SaleDate.Time
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var item models.Inventory
		if err := tx.First(&item, in.ProductID).Error; err != nil {
			return apperr.FromStore(err, "Inventory item not found")
		}
		if item.Quantity < in.Quantity {
			return apperr.InsufficientStock(fmt.Sprintf("Insufficient inventory: %d available", item.Quantity))
		}

		if err := tx.Create(&sale).Error; err != nil {
			return apperr.Internal("create sale", err)
		}

		if err := decrementStock(tx, item.ID, in.Quantity); err != nil {
			return err
		}

		return audit.WriteLog(tx, audit.LogOptions{
			Caller:      caller,
			BranchID:    &sale.BranchID,
			EntityType:  audit.EntitySale,
			EntityID:    sale.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Sale of %d x %s", sale.Quantity, item.SKU),
			After:       sale,
		})
	})
	if err != nil {
		if k := apperr.KindOf(err); k == apperr.KindInsufficientStock || k == apperr.KindNotFound {
			metrics.SalesRejected.WithLabelValues(k.String()).Inc()
		}
		return nil, err
	}

	metrics.SalesRecorded.WithLabelValues(string(sale.PaymentMethod)).Inc()
	metrics.SalesRevenue.Add(sale.TotalAmount)
	slog.Info("sale recorded", "saleId", sale.ID, "productId", sale.ProductID,
		"quantity", sale.Quantity, "total", sale.TotalAmount, "branchId", sale.BranchID)

	return Get(db, caller, sale.ID)
}

// decrementStock takes qty units only while at least qty remain, so a sale
// that lost a race with another one fails instead of driving stock negative.
func decrementStock(tx *gorm.DB, itemID uint, qty int) error {
	res := tx.Model(&models.Inventory{}).
		Where("id = ? AND quantity >= ?", itemID, qty).
		Updates(map[string]any{
			"quantity":   gorm.Expr("quantity - ?", qty),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return apperr.Internal("decrement inventory", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.InsufficientStock("Insufficient inventory")
	}
	return nil
}

func Get(db *gorm.DB, caller auth.Caller, id uint) (*models.Sale, error) {
	if err := auth.Authenticated(caller); err != nil {
		return nil, err
	}
	var sale models.Sale
	if err := db.Preload("Product").Preload("Branch").First(&sale, id).Error; err != nil {
		return nil, apperr.FromStore(err, "Sale not found")
	}
	return &sale, nil
}

func scoped(db *gorm.DB, caller auth.Caller, f Filter) (*gorm.DB, error) {
	scope, err := auth.Scope(caller, f.BranchID)
	if err != nil {
		return nil, err
	}
	q := db
	if scope != nil {
		q = q.Where("sales.branch_id = ?", *scope)
	}
	if f.StartDate != nil {
		q = q.Where("sales.sale_date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("sales.sale_date <= ?", *f.EndDate)
	}
	return q, nil
}

// List returns sales newest first within the caller's branch scope.
func List(db *gorm.DB, caller auth.Caller, f Filter) ([]models.Sale, error) {
	if err := auth.Authenticated(caller); err != nil {
		return nil, err
	}
	q, err := scoped(db.Model(&models.Sale{}), caller, f)
	if err != nil {
		return nil, err
	}
	var list []models.Sale
	if err := q.Preload("Product").Preload("Branch").
		Order("sales.sale_date DESC").Order("sales.id DESC").
		Find(&list).Error; err != nil {
		return nil, apperr.Internal("list sales", err)
	}
	return list, nil
}

func Summarize(db *gorm.DB, caller auth.Caller, f Filter) (*Summary, error) {
	if err := auth.Authenticated(caller); err != nil {
		return nil, err
	}
	q, err := scoped(db.Model(&models.Sale{}), caller, f)
	if err != nil {
		return nil, err
	}

	var row struct {
		Total    float64
		Quantity int64
		Count    int64
	}
	if err := q.Select("COALESCE(SUM(sales.total_amount), 0) AS total, " +
		"COALESCE(SUM(sales.quantity), 0) AS quantity, COUNT(*) AS count").
		Scan(&row).Error; err != nil {
		return nil, apperr.Internal("summarize sales", err)
	}

	return &Summary{
		TotalSales:        Round2(row.Total),
		TotalQuantity:     row.Quantity,
		AverageOrderValue: Average(row.Total, row.Count),
		Count:             row.Count,
	}, nil
}

// Average divides total by count, rounded to cents; zero when count is zero.
func Average(total float64, count int64) float64 {
	if count == 0 {
		return 0
	}
	return decimal.NewFromFloat(total).
		Div(decimal.NewFromInt(count)).
		Round(2).
		InexactFloat64()
}

func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
