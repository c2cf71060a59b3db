package models

import "time"

type UserRole string

const (
	RoleAdmin         UserRole = "Admin"
	RoleBranchManager UserRole = "Branch Manager"
)

func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleBranchManager
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         UserRole  `gorm:"size:20;not null" json:"role"`
	BranchID     *uint     `gorm:"index" json:"branchId"`
	Branch       *Branch   `json:"branch,omitempty"`
	IsActive     bool      `gorm:"not null" json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
