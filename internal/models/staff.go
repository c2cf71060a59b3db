package models

import "time"

type StaffRole string

const (
	StaffSalesAssociate StaffRole = "Sales Associate"
	StaffTechnician     StaffRole = "Technician"
	StaffCashier        StaffRole = "Cashier"
	StaffStockManager   StaffRole = "Stock Manager"
)

func (r StaffRole) Valid() bool {
	switch r {
	case StaffSalesAssociate, StaffTechnician, StaffCashier, StaffStockManager:
		return true
	}
	return false
}

type StaffStatus string

const (
	StaffActive   StaffStatus = "Active"
	StaffInactive StaffStatus = "Inactive"
)

func (s StaffStatus) Valid() bool {
	return s == StaffActive || s == StaffInactive
}

type Staff struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	Name      string      `gorm:"size:100;not null" json:"name"`
	Email     string      `gorm:"size:100;not null" json:"email"`
	Phone     string      `gorm:"size:50;not null" json:"phone"`
	Role      StaffRole   `gorm:"size:32;not null" json:"role"`
	Salary    float64     `gorm:"not null" json:"salary"`
	BranchID  uint        `gorm:"index;not null" json:"branchId"`
	Branch    *Branch     `json:"branch,omitempty"`
	Status    StaffStatus `gorm:"size:20;not null" json:"status"`
	JoinDate  time.Time   `json:"joinDate"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func (Staff) TableName() string {
	return "staff"
}
