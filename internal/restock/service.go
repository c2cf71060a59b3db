package restock

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/apperr"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/audit"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/auth"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/metrics"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/models"

	"gorm.io/gorm"
)

type CreateInput struct {
	ProductID         uint   `json:"product"`
	BranchID          uint   `json:"branch"`
	RequestedQuantity int    `json:"requestedQuantity"`
	Reason            string `json:"reason"`
}

type DecisionInput struct {
	ApprovedQuantity *int   `json:"approvedQuantity"`
	AdminNotes       string `json:"adminNotes"`
}

type Filter struct {
	Status   models.RestockStatus
	BranchID *uint
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Product").Preload("Branch").Preload("RequestedBy").Preload("ApprovedBy")
}

func Create(db *gorm.DB, caller auth.Caller, in CreateInput) (*models.RestockRequest, error) {
	if err := auth.BranchManagerOrAdmin(caller); err != nil {
		return nil, err
	}
	in.Reason = strings.TrimSpace(in.Reason)
	if in.ProductID == 0 || in.BranchID == 0 || in.RequestedQuantity <= 0 || in.Reason == "" {
		return nil, apperr.Validation("Required fields missing")
	}
	if err := db.Select("id").First(&models.Inventory{}, in.ProductID).Error; err != nil {
		return nil, apperr.FromStore(err, "Product not found")
	}
	if err := db.Select("id").First(&models.Branch{}, in.BranchID).Error; err != nil {
		return nil, apperr.FromStore(err, "Branch not found")
	}

	r := models.RestockRequest{
		ProductID:         in.ProductID,
		BranchID:          in.BranchID,
		RequestedQuantity: in.RequestedQuantity,
		Status:            models.RestockPending,
		Reason:            in.Reason,
		RequestedByID:     caller.UserID,
		RequestDate:       time.Now(),
	}
	if err := db.Create(&r).Error; err != nil {
		return nil, apperr.Internal("create restock request", err)
	}
	metrics.RestockTransitions.WithLabelValues(string(models.RestockPending)).Inc()
	audit.Record(db, audit.LogOptions{
		Caller:      caller,
		BranchID:    &r.BranchID,
		EntityType:  audit.EntityRestockRequest,
		EntityID:    r.ID,
		Action:      models.AuditActionCreate,
		Description: fmt.Sprintf("Restock of %d requested", r.RequestedQuantity),
		After:       r,
	})
	return Get(db, caller, r.ID)
}

func Get(db *gorm.DB, caller auth.Caller, id uint) (*models.RestockRequest, error) {
	if err := auth.Authenticated(caller); err != nil {
		return nil, err
	}
	var r models.RestockRequest
	if err := withRelations(db).First(&r, id).Error; err != nil {
		return nil, apperr.FromStore(err, "Request not found")
	}
	return &r, nil
}

// List returns requests newest first within the caller's branch scope.
func List(db *gorm.DB, caller auth.Caller, f Filter) ([]models.RestockRequest, error) {
	if err := auth.Authenticated(caller); err != nil {
		return nil, err
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, apperr.Validation("Invalid restock status")
	}
	scope, err := auth.Scope(caller, f.BranchID)
	if err != nil {
		return nil, err
	}
	q := withRelations(db)
	if scope != nil {
		q = q.Where("branch_id = ?", *scope)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var list []models.RestockRequest
	if err := q.Order("request_date DESC").Order("id DESC").Find(&list).Error; err != nil {
		return nil, apperr.Internal("list restock requests", err)
	}
	return list, nil
}

// transition moves a request from one status to another only if it is still
// in the expected status. It returns the request as it was before.
func transition(tx *gorm.DB, id uint, from, to models.RestockStatus, fields map[string]any) (*models.RestockRequest, error) {
	var r models.RestockRequest
	if err := tx.First(&r, id).Error; err != nil {
		return nil, apperr.FromStore(err, "Request not found")
	}
	if r.Status != from {
		return nil, apperr.InvalidState(fmt.Sprintf("Request is %s; only %s requests can become %s", r.Status, from, to))
	}

	fields["status"] = to
	fields["updated_at"] = time.Now()
	res := tx.Model(&models.RestockRequest{}).
		Where("id = ? AND status = ?", id, from).
		Updates(fields)
	if res.Error != nil {
		return nil, apperr.Internal("update restock request", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.InvalidState(fmt.Sprintf("Request is no longer %s", from))
	}
	return &r, nil
}

func decide(db *gorm.DB, caller auth.Caller, id uint, to models.RestockStatus, fields map[string]any, action models.AuditAction) (*models.RestockRequest, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		before, err := transition(tx, id, models.RestockPending, to, fields)
		if err != nil {
			return err
		}
		var after models.RestockRequest
		if err := tx.First(&after, id).Error; err != nil {
			return apperr.FromStore(err, "Request not found")
		}
		return audit.WriteLog(tx, audit.LogOptions{
			Caller:      caller,
			BranchID:    &after.BranchID,
			EntityType:  audit.EntityRestockRequest,
			EntityID:    id,
			Action:      action,
			Description: "Restock request " + strings.ToLower(string(to)),
			Before:      before,
			After:       after,
		})
	})
	if err != nil {
		return nil, err
	}
	metrics.RestockTransitions.WithLabelValues(string(to)).Inc()
	slog.Info("restock request decided", "requestId", id, "status", to, "by", caller.UserID)
	return Get(db, caller, id)
}

// Approve moves a Pending request to Approved. The approved quantity
// defaults to the requested one.
func Approve(db *gorm.DB, caller auth.Caller, id uint, in DecisionInput) (*models.RestockRequest, error) {
	if err := auth.Admin(caller); err != nil {
		return nil, err
	}
	if in.ApprovedQuantity != nil && *in.ApprovedQuantity <= 0 {
		return nil, apperr.Validation("approvedQuantity must be positive")
	}

	var current models.RestockRequest
	if err := db.Select("id", "requested_quantity").First(&current, id).Error; err != nil {
		return nil, apperr.FromStore(err, "Request not found")
	}
	qty := current.RequestedQuantity
	if in.ApprovedQuantity != nil {
		qty = *in.ApprovedQuantity
	}

	now := time.Now()
	return decide(db, caller, id, models.RestockApproved, map[string]any{
		"approved_quantity": qty,
		"approved_by_id":    caller.UserID,
		"approval_date":     now,
		"admin_notes":       strings.TrimSpace(in.AdminNotes),
	}, models.AuditActionApprove)
}

// Reject moves a Pending request to Rejected; approvedQuantity stays empty.
func Reject(db *gorm.DB, caller auth.Caller, id uint, in DecisionInput) (*models.RestockRequest, error) {
	if err := auth.Admin(caller); err != nil {
		return nil, err
	}
	now := time.Now()
	return decide(db, caller, id, models.RestockRejected, map[string]any{
		"approved_by_id": caller.UserID,
		"approval_date":  now,
		"admin_notes":    strings.TrimSpace(in.AdminNotes),
	}, models.AuditActionReject)
}

var errNoApprovedQuantity = errors.New("approved request has no approved quantity")

// Fulfill marks an Approved request Fulfilled and credits the inventory by
// the approved quantity in one transaction.
func Fulfill(db *gorm.DB, caller auth.Caller, id uint) (*models.RestockRequest, error) {
	if err := auth.Admin(caller); err != nil {
		return nil, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		before, err := transition(tx, id, models.RestockApproved, models.RestockFulfilled, map[string]any{})
		if err != nil {
			return err
		}
		if before.ApprovedQuantity == nil {
			return apperr.Internal("fulfill restock request", errNoApprovedQuantity)
		}
		qty := *before.ApprovedQuantity

		now := time.Now()
		res := tx.Model(&models.Inventory{}).
			Where("id = ?", before.ProductID).
			Updates(map[string]any{
				"quantity":       gorm.Expr("quantity + ?", qty),
				"last_restocked": now,
				"updated_at":     now,
			})
		if res.Error != nil {
			return apperr.Internal("credit inventory", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("Inventory item not found")
		}

		return audit.WriteLog(tx, audit.LogOptions{
			Caller:      caller,
			BranchID:    &before.BranchID,
			EntityType:  audit.EntityRestockRequest,
			EntityID:    id,
			Action:      models.AuditActionFulfill,
			Description: fmt.Sprintf("Restock fulfilled, %d units credited", qty),
			Before:      before,
		})
	})
	if err != nil {
		return nil, err
	}

	metrics.RestockTransitions.WithLabelValues(string(models.RestockFulfilled)).Inc()
	slog.Info("restock request fulfilled", "requestId", id, "by", caller.UserID)
	return Get(db, caller, id)
}
