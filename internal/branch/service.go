package branch

import (
	"log/slog"
	"strings"

	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/apperr"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/audit"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/auth"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/models"

	"gorm.io/gorm"
)

type CreateInput struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	ManagerID *uint  `json:"manager"`
}

// UpdateInput is a partial patch; nil fields are left alone.
type UpdateInput struct {
	Name      *string              `json:"name"`
	Address   *string              `json:"address"`
	City      *string              `json:"city"`
	Phone     *string              `json:"phone"`
	Email     *string              `json:"email"`
	ManagerID *uint                `json:"manager"`
	Status    *models.BranchStatus `json:"status"`
}

func withManager(db *gorm.DB) *gorm.DB {
	return db.Preload("Manager")
}

func requireUser(db *gorm.DB, id uint) error {
	if err := db.Select("id").First(&models.User{}, id).Error; err != nil {
		return apperr.FromStore(err, "Manager user not found")
	}
	return nil
}

func Create(db *gorm.DB, caller auth.Caller, in CreateInput) (*models.Branch, error) {
	if err := auth.Admin(caller); err != nil {
		return nil, err
	}

	b := models.Branch{
		Name:      strings.TrimSpace(in.Name),
		Address:   strings.TrimSpace(in.Address),
		City:      strings.TrimSpace(in.City),
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		ManagerID: in.ManagerID,
		Status:    models.BranchActive,
	}
	if b.Name == "" || b.Address == "" || b.City == "" || b.Phone == "" || b.Email == "" {
		return nil, apperr.Validation("All fields are required")
	}
	if in.ManagerID != nil {
		if err := requireUser(db, *in.ManagerID); err != nil {
			return nil, err
		}
	}

	if err := db.Create(&b).Error; err != nil {
		return nil, apperr.Internal("create branch", err)
	}
	audit.Record(db, audit.LogOptions{
		Caller:      caller,
		BranchID:    &b.ID,
		EntityType:  audit.EntityBranch,
		EntityID:    b.ID,
		Action:      models.AuditActionCreate,
		Description: "Branch created: " + b.Name,
		After:       b,
	})
	return Get(db, caller, b.ID)
}

func Get(db *gorm.DB, caller auth.Caller, id uint) (*models.Branch, error) {
	if err := auth.Authenticated(caller); err != nil {
		return nil, err
	}
	var b models.Branch
	if err := withManager(db).First(&b, id).Error; err != nil {
		return nil, apperr.FromStore(err, "Branch not found")
	}
	return &b, nil
}

func List(db *gorm.DB, caller auth.Caller) ([]models.Branch, error) {
	if err := auth.Authenticated(caller); err != nil {
		return nil, err
	}
	var branches []models.Branch
	if err := withManager(db).Order("name ASC").Find(&branches).Error; err != nil {
		return nil, apperr.Internal("list branches", err)
	}
	return branches, nil
}

func Update(db *gorm.DB, caller auth.Caller, id uint, in UpdateInput) (*models.Branch, error) {
	if err := auth.Admin(caller); err != nil {
		return nil, err
	}

	var b models.Branch
	if err := db.First(&b, id).Error; err != nil {
		return nil, apperr.FromStore(err, "Branch not found")
	}
	before := b

	if in.ManagerID != nil {
		if err := requireUser(db, *in.ManagerID); err != nil {
			return nil, err
		}
		b.ManagerID = in.ManagerID
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, apperr.Validation("Invalid branch status")
		}
		b.Status = *in.Status
	}
	setIfPresent(&b.Name, in.Name)
	setIfPresent(&b.Address, in.Address)
	setIfPresent(&b.City, in.City)
	setIfPresent(&b.Phone, in.Phone)
	setIfPresent(&b.Email, in.Email)

	if err := db.Omit("Manager").Save(&b).Error; err != nil {
		return nil, apperr.Internal("update branch", err)
	}
	audit.Record(db, audit.LogOptions{
		Caller:      caller,
		BranchID:    &b.ID,
		EntityType:  audit.EntityBranch,
		EntityID:    b.ID,
		Action:      models.AuditActionUpdate,
		Description: "Branch updated: " + b.Name,
		Before:      before,
		After:       b,
	})
	return Get(db, caller, b.ID)
}

// setIfPresent copies a supplied, non-blank value.
func setIfPresent(dst *string, v *string) {
	if v == nil {
		return
	}
	if s := strings.TrimSpace(*v); s != "" {
		*dst = s
	}
}

func Delete(db *gorm.DB, caller auth.Caller, id uint) error {
	if err := auth.Admin(caller); err != nil {
		return err
	}
	var b models.Branch
	if err := db.First(&b, id).Error; err != nil {
		return apperr.FromStore(err, "Branch not found")
	}
	if err := db.Delete(&b).Error; err != nil {
		return apperr.Internal("delete branch", err)
	}
	audit.Record(db, audit.LogOptions{
		Caller:      caller,
		BranchID:    &b.ID,
		EntityType:  audit.EntityBranch,
		EntityID:    b.ID,
		Action:      models.AuditActionDelete,
		Description: "Branch deleted: " + b.Name,
		Before:      b,
	})
	return nil
}

// AssignManager points the branch at the user and the user at the branch in
// one transaction.
func AssignManager(db *gorm.DB, caller auth.Caller, branchID, managerID uint) (*models.Branch, error) {
	if err := auth.Admin(caller); err != nil {
		return nil, err
	}
	if managerID == 0 {
		return nil, apperr.Validation("managerId is required")
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var b models.Branch
		if err := tx.First(&b, branchID).Error; err != nil {
			return apperr.FromStore(err, "Branch not found")
		}
		var u models.User
		if err := tx.First(&u, managerID).Error; err != nil {
			return apperr.FromStore(err, "Manager not found")
		}

		if err := tx.Model(&models.Branch{}).Where("id = ?", b.ID).
			Update("manager_id", u.ID).Error; err != nil {
			return apperr.Internal("assign branch manager", err)
		}
		if err := tx.Model(&models.User{}).Where("id = ?", u.ID).
			Update("branch_id", b.ID).Error; err != nil {
			return apperr.Internal("assign user branch", err)
		}

		return audit.WriteLog(tx, audit.LogOptions{
			Caller:      caller,
			BranchID:    &b.ID,
			EntityType:  audit.EntityBranch,
			EntityID:    b.ID,
			Action:      models.AuditActionAssign,
			Description: "Manager " + u.Username + " assigned to " + b.Name,
			Before:      map[string]*uint{"manager": b.ManagerID, "userBranch": u.BranchID},
			After:       map[string]uint{"manager": u.ID, "userBranch": b.ID},
		})
	})
	if err != nil {
		return nil, err
	}

	slog.Info("manager assigned", "branchId", branchID, "managerId", managerID)
	return Get(db, caller, branchID)
}
