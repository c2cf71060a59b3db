package models

import "time"

type BranchStatus string

const (
	BranchActive   BranchStatus = "Active"
	BranchInactive BranchStatus = "Inactive"
)

func (s BranchStatus) Valid() bool {
	return s == BranchActive || s == BranchInactive
}

type Branch struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"size:100;not null" json:"name"`
	Address   string       `gorm:"size:255;not null" json:"address"`
	City      string       `gorm:"size:100;not null" json:"city"`
	Phone     string       `gorm:"size:50;not null" json:"phone"`
	Email     string       `gorm:"size:100;not null" json:"email"`
	ManagerID *uint        `gorm:"index" json:"managerId"`
	Manager   *User        `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
	Status    BranchStatus `gorm:"size:20;not null" json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}
