// Package seed loads a demo data set: an admin, three branches with their
// managers, staff, stock, a month of sales and expenses.
package seed

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/apperr"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/auth"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/models"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/sales"

	"gorm.io/gorm"
)

const DefaultPassword = "password123"

type Options struct {
	// Reset wipes every table first. Without it seeding an existing
	// database fails with Conflict.
	Reset    bool
	Password string
	Seed     uint64
	Now      time.Time
}

type Result struct {
	Branches int `json:"branches"`
	Managers int `json:"managers"`
	Staff    int `json:"staff"`
	Items    int `json:"items"`
	Sales    int `json:"sales"`
	Expenses int `json:"expenses"`
}

var branchSeeds = []models.Branch{
	{Name: "Delhi North Branch", Address: "123 Main Street, Sector 5", City: "Delhi", Phone: "9876543210", Email: "delhi-north@example.com"},
	{Name: "Mumbai Central Branch", Address: "456 Business Park, Fort", City: "Mumbai", Phone: "9876543211", Email: "mumbai@example.com"},
	{Name: "Bangalore Tech Branch", Address: "789 IT Hub, Whitefield", City: "Bangalore", Phone: "9876543212", Email: "bangalore@example.com"},
}

var productSeeds = []struct {
	name     string
	category models.InventoryCategory
	price    float64
}{
	{"Dell XPS 13", models.CategoryLaptops, 89999},
	{"HP Pavilion 15", models.CategoryLaptops, 49999},
	{"iPhone 14 Pro", models.CategoryMobilePhones, 129999},
	{"Samsung S23", models.CategoryMobilePhones, 74999},
	{"iPad Air", models.CategoryTablets, 59999},
	{"USB-C Cable", models.CategoryAccessories, 599},
	{"Wireless Mouse", models.CategoryPeripherals, 1999},
	{"USB Hub", models.CategoryPeripherals, 2999},
}

var staffRoles = []models.StaffRole{
	models.StaffSalesAssociate, models.StaffTechnician, models.StaffCashier, models.StaffStockManager,
}

var (
	seedPayments = []models.PaymentMethod{models.PaymentCash, models.PaymentCard, models.PaymentOnline}
	seedExpenses = []models.ExpenseCategory{
		models.ExpenseUtilities, models.ExpenseRent, models.ExpenseSalaries,
		models.ExpenseMaintenance, models.ExpenseMarketing,
	}
)

// children first
var resetOrder = []any{
	&models.AuditLog{}, &models.Attendance{}, &models.RestockRequest{}, &models.Sale{},
	&models.Expense{}, &models.Staff{}, &models.Inventory{}, &models.User{}, &models.Branch{},
}

func reset(tx *gorm.DB) error {
	for _, m := range resetOrder {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
			return apperr.Internal(fmt.Sprintf("reset %T", m), err)
		}
	}
	return nil
}

// Run seeds the database in one transaction.
func Run(db *gorm.DB, opts Options) (*Result, error) {
	if opts.Password == "" {
		opts.Password = DefaultPassword
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	hash, err := auth.HashPassword(opts.Password)
	if err != nil {
		return nil, err
	}
	// trailing 30 days
	backdate := func() time.Time {
		return opts.Now.Add(-time.Duration(rng.Int64N(int64(30 * 24 * time.Hour))))
	}

	var res Result
	err = db.Transaction(func(tx *gorm.DB) error {
		if opts.Reset {
			if err := reset(tx); err != nil {
				return err
			}
		} else {
			var users int64
			if err := tx.Model(&models.User{}).Count(&users).Error; err != nil {
				return apperr.Internal("count users", err)
			}
			if users > 0 {
				return apperr.Conflict("Database already has users; seed with reset to replace them")
			}
		}

		admin := models.User{
			Username: "admin", Email: "admin@example.com", PasswordHash: hash,
			Role: models.RoleAdmin, IsActive: true,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return apperr.Internal("create admin", err)
		}

		sku := 1000
		for i, bs := range branchSeeds {
			b := bs
			b.Status = models.BranchActive
			if err := tx.Create(&b).Error; err != nil {
				return apperr.Internal("create branch", err)
			}
			res.Branches++

			manager := models.User{
				Username:     fmt.Sprintf("manager%d", i+1),
				Email:        fmt.Sprintf("manager%d@example.com", i+1),
				PasswordHash: hash,
				Role:         models.RoleBranchManager,
				BranchID:     &b.ID,
				IsActive:     true,
			}
			if err := tx.Create(&manager).Error; err != nil {
				return apperr.Internal("create manager", err)
			}
			if err := tx.Model(&b).Update("manager_id", manager.ID).Error; err != nil {
				return apperr.Internal("assign manager", err)
			}
			res.Managers++

			for j, role := range staffRoles {
				s := models.Staff{
					Name:     fmt.Sprintf("%s - %s %d", b.Name, role, j+1),
					Email:    fmt.Sprintf("staff-%d-%d@example.com", b.ID, j),
					Phone:    fmt.Sprintf("987654%04d", rng.IntN(10000)),
					Role:     role,
					Salary:   sales.Round2(20000 + rng.Float64()*30000),
					BranchID: b.ID,
					Status:   models.StaffActive,
					JoinDate: opts.Now.AddDate(0, -rng.IntN(24), 0),
				}
				if err := tx.Create(&s).Error; err != nil {
					return apperr.Internal("create staff", err)
				}
				res.Staff++
			}

			items := make([]models.Inventory, 0, len(productSeeds))
			for _, p := range productSeeds {
				it := models.Inventory{
					Name:         p.name,
					SKU:          fmt.Sprintf("SKU-%d", sku),
					Category:     p.category,
					Quantity:     rng.IntN(100) + 5,
					ReorderLevel: 10,
					Price:        p.price,
					BranchID:     b.ID,
					Supplier:     "Tech Distributors Ltd",
				}
				sku++
				if err := tx.Create(&it).Error; err != nil {
					return apperr.Internal("create inventory", err)
				}
				items = append(items, it)
				res.Items++
			}

			for k := 0; k < 10; k++ {
				it := &items[rng.IntN(len(items))]
				qty := rng.IntN(3) + 1
				if it.Quantity < qty {
					continue
				}
				sale := models.Sale{
					ProductID:     it.ID,
					Quantity:      qty,
					UnitPrice:     it.Price,
					TotalAmount:   sales.LineTotal(qty, it.Price),
					BranchID:      b.ID,
					SaleDate:      backdate(),
					PaymentMethod: seedPayments[rng.IntN(len(seedPayments))],
				}
				if err := tx.Create(&sale).Error; err != nil {
					return apperr.Internal("create sale", err)
				}
				it.Quantity -= qty
				if err := tx.Model(it).Update("quantity", it.Quantity).Error; err != nil {
					return apperr.Internal("decrement stock", err)
				}
				res.Sales++
			}

			for k := 0; k < 5; k++ {
				e := models.Expense{
					Category:    seedExpenses[rng.IntN(len(seedExpenses))],
					Amount:      float64(rng.IntN(50000) + 5000),
					Description: "Monthly expense entry",
					BranchID:    b.ID,
					ExpenseDate: backdate(),
					CreatedByID: manager.ID,
				}
				if err := tx.Create(&e).Error; err != nil {
					return apperr.Internal("create expense", err)
				}
				res.Expenses++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("database seeded",
		"branches", res.Branches, "staff", res.Staff, "items", res.Items,
		"sales", res.Sales, "expenses", res.Expenses)
	return &res, nil
}
