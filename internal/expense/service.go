package expense

import (
	"sort"
	"strings"
	"time"

	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/apperr"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/audit"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/auth"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateInput struct {
	Category    models.ExpenseCategory `json:"category"`
	Amount      float64                `json:"amount"`
	Description string                 `json:"description"`
	BranchID    uint                   `json:"branch"`
	ExpenseDate *models.Date           `json:"expenseDate"`
}

type Filter struct {
	BranchID  *uint
	StartDate *time.Time
	EndDate   *time.Time
}

type CategoryTotal struct {
	Category models.ExpenseCategory `json:"category"`
	Total    float64                `json:"total"`
}

type CategorySummary struct {
	Items      []CategoryTotal `json:"items"`
	GrandTotal float64         `json:"grandTotal"`
}

func Create(db *gorm.DB, caller auth.Caller, in CreateInput) (*models.Expense, error) {
	if err := auth.BranchManagerOrAdmin(caller); err != nil {
		return nil, err
	}
	in.Description = strings.TrimSpace(in.Description)
	if in.Category == "" || in.Amount <= 0 || in.Description == "" || in.BranchID == 0 {
		return nil, apperr.Validation("Required fields missing")
	}
	if !in.Category.Valid() {
		return nil, apperr.Validation("Invalid expense category")
	}
	if err := db.Select("id").First(&models.Branch{}, in.BranchID).Error; err != nil {
		return nil, apperr.FromStore(err, "Branch not found")
	}

	e := models.Expense{
		Category:    in.Category,
		Amount:      decimal.NewFromFloat(in.Amount).Round(2).InexactFloat64(),
		Description: in.Description,
		BranchID:    in.BranchID,
		ExpenseDate: time.Now(),
		CreatedByID: caller.UserID,
	}
	if in.ExpenseDate != nil {
		e.ExpenseDate = in.ExpenseDate.Time
	}

	if err := db.Create(&e).Error; err != nil {
		return nil, apperr.Internal("create expense", err)
	}
	audit.Record(db, audit.LogOptions{
		Caller:      caller,
		BranchID:    &e.BranchID,
		EntityType:  audit.EntityExpense,
		EntityID:    e.ID,
		Action:      models.AuditActionCreate,
		Description: "Expense recorded: " + string(e.Category),
		After:       e,
	})

	var out models.Expense
	if err := db.Preload("Branch").Preload("CreatedBy").First(&out, e.ID).Error; err != nil {
		return nil, apperr.FromStore(err, "Expense not found")
	}
	return &out, nil
}

func scoped(db *gorm.DB, caller auth.Caller, f Filter) (*gorm.DB, error) {
	scope, err := auth.Scope(caller, f.BranchID)
	if err != nil {
		return nil, err
	}
	q := db
	if scope != nil {
		q = q.Where("branch_id = ?", *scope)
	}
	if f.StartDate != nil {
		q = q.Where("expense_date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("expense_date <= ?", *f.EndDate)
	}
	return q, nil
}

// List returns expenses newest first within the caller's branch scope.
func List(db *gorm.DB, caller auth.Caller, f Filter) ([]models.Expense, error) {
	if err := auth.Authenticated(caller); err != nil {
		return nil, err
	}
	q, err := scoped(db.Model(&models.Expense{}), caller, f)
	if err != nil {
		return nil, err
	}
	var list []models.Expense
	if err := q.Preload("Branch").Preload("CreatedBy").
		Order("expense_date DESC").Order("id DESC").
		Find(&list).Error; err != nil {
		return nil, apperr.Internal("list expenses", err)
	}
	return list, nil
}

// SummarizeByCategory totals expenses per category, largest first.
func SummarizeByCategory(db *gorm.DB, caller auth.Caller, f Filter) (*CategorySummary, error) {
	if err := auth.Authenticated(caller); err != nil {
		return nil, err
	}
	q, err := scoped(db.Model(&models.Expense{}), caller, f)
	if err != nil {
		return nil, err
	}

	type row struct {
		Category models.ExpenseCategory `gorm:"column:category"`
		Total    float64                `gorm:"column:total"`
	}
	var rows []row
	if err := q.Select("category, SUM(amount) AS total").
		Group("category").
		Scan(&rows).Error; err != nil {
		return nil, apperr.Internal("summarize expenses", err)
	}

	resp := &CategorySummary{Items: make([]CategoryTotal, 0, len(rows))}
	grand := decimal.Zero
	for _, r := range rows {
		resp.Items = append(resp.Items, CategoryTotal{
			Category: r.Category,
			Total:    decimal.NewFromFloat(r.Total).Round(2).InexactFloat64(),
		})
		grand = grand.Add(decimal.NewFromFloat(r.Total))
	}
	sort.SliceStable(resp.Items, func(i, j int) bool {
		a, b := resp.Items[i], resp.Items[j]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return a.Category < b.Category
	})
	resp.GrandTotal = grand.Round(2).InexactFloat64()
	return resp, nil
}

// TotalSince sums one branch's expenses from the given instant on.
func TotalSince(db *gorm.DB, branchID uint, since time.Time) (float64, error) {
	var total float64
	if err := db.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("branch_id = ? AND expense_date >= ?", branchID, since).
		Scan(&total).Error; err != nil {
		return 0, apperr.Internal("sum expenses", err)
	}
	return total, nil
}
