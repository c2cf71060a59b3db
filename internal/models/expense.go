package models

import "time"

type ExpenseCategory string

const (
	ExpenseUtilities   ExpenseCategory = "Utilities"
	ExpenseRent        ExpenseCategory = "Rent"
	ExpenseSalaries    ExpenseCategory = "Salaries"
	ExpenseMaintenance ExpenseCategory = "Maintenance"
	ExpenseMarketing   ExpenseCategory = "Marketing"
	ExpenseOther       ExpenseCategory = "Other"
)

func (c ExpenseCategory) Valid() bool {
	switch c {
	case ExpenseUtilities, ExpenseRent, ExpenseSalaries,
		ExpenseMaintenance, ExpenseMarketing, ExpenseOther:
		return true
	}
	return false
}

type Expense struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Category    ExpenseCategory `gorm:"size:32;not null" json:"category"`
	Amount      float64         `gorm:"not null" json:"amount"`
	Description string          `gorm:"size:255;not null" json:"description"`
	BranchID    uint            `gorm:"index;not null" json:"branchId"`
	Branch      *Branch         `json:"branch,omitempty"`
	ExpenseDate time.Time       `gorm:"index;not null" json:"expenseDate"`
	CreatedByID uint            `gorm:"index;not null" json:"createdById"`
	CreatedBy   *User           `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}
