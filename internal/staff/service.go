package staff

import (
	"strings"
	"time"

	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/apperr"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/audit"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/auth"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/models"

	"gorm.io/gorm"
)

type CreateInput struct {
	Name     string           `json:"name"`
	Email    string           `json:"email"`
	Phone    string           `json:"phone"`
	Role     models.StaffRole `json:"role"`
	Salary   float64          `json:"salary"`
	BranchID uint             `json:"branch"`
	JoinDate *models.Date     `json:"joinDate"`
}

// UpdateInput is a partial patch; the branch is fixed after creation.
type UpdateInput struct {
	Name     *string             `json:"name"`
	Email    *string             `json:"email"`
	Phone    *string             `json:"phone"`
	Role     *models.StaffRole   `json:"role"`
	Salary   *float64            `json:"salary"`
	Status   *models.StaffStatus `json:"status"`
	JoinDate *models.Date        `json:"joinDate"`
}

func Create(db *gorm.DB, caller auth.Caller, in CreateInput) (*models.Staff, error) {
	if err := auth.BranchManagerOrAdmin(caller); err != nil {
		return nil, err
	}

	s := models.Staff{
		Name:     strings.TrimSpace(in.Name),
		Email:    strings.TrimSpace(strings.ToLower(in.Email)),
		Phone:    strings.TrimSpace(in.Phone),
		Role:     in.Role,
		Salary:   in.Salary,
		BranchID: in.BranchID,
		Status:   models.StaffActive,
		JoinDate: time.Now(),
	}
	if s.Name == "" || s.Email == "" || s.Phone == "" || s.Role == "" || s.Salary <= 0 || s.BranchID == 0 {
		return nil, apperr.Validation("Required fields missing")
	}
	if !s.Role.Valid() {
		return nil, apperr.Validation("Invalid staff role")
	}
	if in.JoinDate != nil {
		s.JoinDate = in.JoinDate.Time
	}
	if err := db.Select("id").First(&models.Branch{}, s.BranchID).Error; err != nil {
		return nil, apperr.FromStore(err, "Branch not found")
	}

	if err := db.Create(&s).Error; err != nil {
		return nil, apperr.Internal("create staff", err)
	}
	audit.Record(db, audit.LogOptions{
		Caller:      caller,
		BranchID:    &s.BranchID,
		EntityType:  audit.EntityStaff,
		EntityID:    s.ID,
		Action:      models.AuditActionCreate,
		Description: "Staff created: " + s.Name,
		After:       s,
	})
	return Get(db, caller, s.ID)
}

func Get(db *gorm.DB, caller auth.Caller, id uint) (*models.Staff, error) {
	if err := auth.Authenticated(caller); err != nil {
		return nil, err
	}
	var s models.Staff
	if err := db.Preload("Branch").First(&s, id).Error; err != nil {
		return nil, apperr.FromStore(err, "Staff not found")
	}
	return &s, nil
}

func List(db *gorm.DB, caller auth.Caller, branchID *uint) ([]models.Staff, error) {
	if err := auth.Authenticated(caller); err != nil {
		return nil, err
	}
	scope, err := auth.Scope(caller, branchID)
	if err != nil {
		return nil, err
	}
	q := db.Preload("Branch")
	if scope != nil {
		q = q.Where("branch_id = ?", *scope)
	}
	var list []models.Staff
	if err := q.Order("created_at DESC").Order("id DESC").Find(&list).Error; err != nil {
		return nil, apperr.Internal("list staff", err)
	}
	return list, nil
}

func Update(db *gorm.DB, caller auth.Caller, id uint, in UpdateInput) (*models.Staff, error) {
	if err := auth.BranchManagerOrAdmin(caller); err != nil {
		return nil, err
	}
	var s models.Staff
	if err := db.First(&s, id).Error; err != nil {
		return nil, apperr.FromStore(err, "Staff not found")
	}
	before := s

	if in.Role != nil {
		if !in.Role.Valid() {
			return nil, apperr.Validation("Invalid staff role")
		}
		s.Role = *in.Role
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, apperr.Validation("Invalid staff status")
		}
		s.Status = *in.Status
	}
	if in.Salary != nil {
		if *in.Salary <= 0 {
			return nil, apperr.Validation("Salary must be positive")
		}
		s.Salary = *in.Salary
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		s.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil && strings.TrimSpace(*in.Email) != "" {
		s.Email = strings.TrimSpace(strings.ToLower(*in.Email))
	}
	if in.Phone != nil && strings.TrimSpace(*in.Phone) != "" {
		s.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.JoinDate != nil {
		s.JoinDate = in.JoinDate.Time
	}

	if err := db.Omit("Branch").Save(&s).Error; err != nil {
		return nil, apperr.Internal("update staff", err)
	}
	audit.Record(db, audit.LogOptions{
		Caller:      caller,
		BranchID:    &s.BranchID,
		EntityType:  audit.EntityStaff,
		EntityID:    s.ID,
		Action:      models.AuditActionUpdate,
		Description: "Staff updated: " + s.Name,
		Before:      before,
		After:       s,
	})
	return Get(db, caller, s.ID)
}

func Delete(db *gorm.DB, caller auth.Caller, id uint) error {
	if err := auth.BranchManagerOrAdmin(caller); err != nil {
		return err
	}
	var s models.Staff
	if err := db.First(&s, id).Error; err != nil {
		return apperr.FromStore(err, "Staff not found")
	}
	if err := db.Delete(&s).Error; err != nil {
		return apperr.Internal("delete staff", err)
	}
	audit.Record(db, audit.LogOptions{
		Caller:      caller,
		BranchID:    &s.BranchID,
		EntityType:  audit.EntityStaff,
		EntityID:    s.ID,
		Action:      models.AuditActionDelete,
		Description: "Staff deleted: " + s.Name,
		Before:      s,
	})
	return nil
}
