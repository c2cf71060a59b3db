package models

import "time"

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "Cash"
	PaymentCard   PaymentMethod = "Card"
	PaymentCheck  PaymentMethod = "Check"
	PaymentOnline PaymentMethod = "Online"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCash, PaymentCard, PaymentCheck, PaymentOnline:
		return true
	}
	return false
}

// Sale: TotalAmount is fixed at creation (quantity x unit price) and never recomputed.
type Sale struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	ProductID     uint          `gorm:"index;not null" json:"productId"`
	Product       *Inventory    `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity      int           `gorm:"not null" json:"quantity"`
	UnitPrice     float64       `gorm:"not null" json:"unitPrice"`
	TotalAmount   float64       `gorm:"not null" json:"totalAmount"`
	BranchID      uint          `gorm:"index;not null" json:"branchId"`
	Branch        *Branch       `json:"branch,omitempty"`
	SaleDate      time.Time     `gorm:"index;not null" json:"saleDate"`
	PaymentMethod PaymentMethod `gorm:"size:20;not null" json:"paymentMethod"`
	Notes         string        `gorm:"size:500" json:"notes"`
	CreatedAt     time.Time     `json:"createdAt"`
}
