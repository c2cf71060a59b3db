package models

import "time"

type RestockStatus string

const (
	RestockPending   RestockStatus = "Pending"
	RestockApproved  RestockStatus = "Approved"
	RestockRejected  RestockStatus = "Rejected"
	RestockFulfilled RestockStatus = "Fulfilled"
)

func (s RestockStatus) Valid() bool {
	switch s {
	case RestockPending, RestockApproved, RestockRejected, RestockFulfilled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s RestockStatus) Terminal() bool {
	return s == RestockRejected || s == RestockFulfilled
}

// RestockRequest moves Pending -> Approved|Rejected, Approved -> Fulfilled.
type RestockRequest struct {
	ID                uint          `gorm:"primaryKey" json:"id"`
	ProductID         uint          `gorm:"index;not null" json:"productId"`
	Product           *Inventory    `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	BranchID          uint          `gorm:"index;not null" json:"branchId"`
	Branch            *Branch       `json:"branch,omitempty"`
	RequestedQuantity int           `gorm:"not null" json:"requestedQuantity"`
	ApprovedQuantity  *int          `json:"approvedQuantity"`
	Status            RestockStatus `gorm:"size:20;not null;index" json:"status"`
	Reason            string        `gorm:"size:500;not null" json:"reason"`
	RequestedByID     uint          `gorm:"index;not null" json:"requestedById"`
	RequestedBy       *User         `gorm:"foreignKey:RequestedByID" json:"requestedBy,omitempty"`
	ApprovedByID      *uint         `json:"approvedById"`
	ApprovedBy        *User         `gorm:"foreignKey:ApprovedByID" json:"approvedBy,omitempty"`
	RequestDate       time.Time     `gorm:"index;not null" json:"requestDate"`
	ApprovalDate      *time.Time    `json:"approvalDate"`
	AdminNotes        string        `gorm:"size:500" json:"adminNotes"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}
