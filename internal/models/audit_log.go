package models

import "time"

type AuditAction string

const (
	AuditActionCreate  AuditAction = "create"
	AuditActionUpdate  AuditAction = "update"
	AuditActionDelete  AuditAction = "delete"
	AuditActionApprove AuditAction = "approve"
	AuditActionReject  AuditAction = "reject"
	AuditActionFulfill AuditAction = "fulfill"
	AuditActionAssign  AuditAction = "assign"
)

// AuditEntityUser is written by auth, which cannot import the audit package.
const AuditEntityUser = "user"

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	BranchID *uint `gorm:"index" json:"branchId"`

	UserID   uint   `gorm:"index" json:"userId"`
	Username string `gorm:"size:100" json:"username"` // denormalized

	// entity_type is one of: branch, user, inventory, sale, expense, staff, attendance, restock_request
	EntityType string `gorm:"size:50;index" json:"entityType"`
	EntityID   uint   `gorm:"index" json:"entityId"`

	Action      AuditAction `gorm:"size:20" json:"action"`
	Description string      `gorm:"size:255" json:"description"`

	BeforeData string `gorm:"type:jsonb" json:"beforeData"`
	AfterData  string `gorm:"type:jsonb" json:"afterData"`
}
