package audit

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/apperr"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/auth"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/models"

	"gorm.io/gorm"
)

const (
	EntityBranch         = "branch"
	EntityUser           = models.AuditEntityUser
	EntityInventory      = "inventory"
	EntitySale           = "sale"
	EntityExpense        = "expense"
	EntityStaff          = "staff"
	EntityAttendance     = "attendance"
	EntityRestockRequest = "restock_request"
)

type LogOptions struct {
	Caller      auth.Caller
	BranchID    *uint
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

// WriteLog stores one audit row. Pass the transaction when the change is
// part of one so the row commits or rolls back with it.
func WriteLog(db *gorm.DB, opts LogOptions) error {
	// jsonb rejects the empty string
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	log := models.AuditLog{
		BranchID:    opts.BranchID,
		UserID:      opts.Caller.UserID,
		Username:    opts.Caller.Username,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
	}

	if err := db.Create(&log).Error; err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}
	return nil
}

// Record is WriteLog for callers that must not fail on audit errors.
func Record(db *gorm.DB, opts LogOptions) {
	if err := WriteLog(db, opts); err != nil {
		slog.Warn("audit log failed", "entity", opts.EntityType, "id", opts.EntityID, "err", err)
	}
}

type Filter struct {
	BranchID   *uint
	UserID     *uint
	EntityType string
	EntityID   *uint
	Limit      int
}

const defaultListLimit = 200

func List(db *gorm.DB, caller auth.Caller, f Filter) ([]models.AuditLog, error) {
	if err := auth.Admin(caller); err != nil {
		return nil, err
	}

	q := db.Model(&models.AuditLog{})
	if f.BranchID != nil {
		q = q.Where("branch_id = ?", *f.BranchID)
	}
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.EntityType != "" {
		q = q.Where("entity_type = ?", f.EntityType)
	}
	if f.EntityID != nil {
		q = q.Where("entity_id = ?", *f.EntityID)
	}
	limit := f.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	var logs []models.AuditLog
	if err := q.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, apperr.Internal("list audit logs", err)
	}
	return logs, nil
}
