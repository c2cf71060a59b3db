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

type AttendanceInput struct {
	StaffID      uint                    `json:"staff"`
	BranchID     uint                    `json:"branch"`
	Date         *models.Date            `json:"date"`
	Status       models.AttendanceStatus `json:"status"`
	CheckInTime  string                  `json:"checkInTime"`
	CheckOutTime string                  `json:"checkOutTime"`
	Notes        string                  `json:"notes"`
}

type AttendanceFilter struct {
	BranchID  *uint
	StaffID   *uint
	StartDate *time.Time
	EndDate   *time.Time
}

// DayBounds returns the first and last millisecond of t's calendar day in
// t's own location.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.Add(24*time.Hour - time.Millisecond)
}

// RecordAttendance keeps one record per staff member and calendar day. A
// repeat call overwrites the status, and overwrites check-in, check-out and
// notes only when they are supplied.
func RecordAttendance(db *gorm.DB, caller auth.Caller, in AttendanceInput) (*models.Attendance, error) {
	if err := auth.BranchManagerOrAdmin(caller); err != nil {
		return nil, err
	}
	if in.StaffID == 0 || in.BranchID == 0 || in.Date == nil || in.Date.IsZero() || in.Status == "" {
		return nil, apperr.Validation("Required fields missing")
	}
	if !in.Status.Valid() {
		return nil, apperr.Validation("Invalid attendance status")
	}
	checkIn := strings.TrimSpace(in.CheckInTime)
	checkOut := strings.TrimSpace(in.CheckOutTime)
	notes := strings.TrimSpace(in.Notes)

	dayStart, dayEnd := DayBounds(in.Date.Time)
	var rec models.Attendance
	action := models.AuditActionCreate

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.Staff{}, in.StaffID).Error; err != nil {
			return apperr.FromStore(err, "Staff not found")
		}

		// UTC bounds keep the comparison exact on stores that hold text timestamps
		res := tx.Where("staff_id = ? AND date >= ? AND date <= ?", in.StaffID, dayStart.UTC(), dayEnd.UTC()).
			Limit(1).Find(&rec)
		if res.Error != nil {
			return apperr.Internal("find attendance", res.Error)
		}

		var before *models.Attendance
		if res.RowsAffected > 0 {
			prev := rec
			before = &prev
			action = models.AuditActionUpdate
			rec.Status = in.Status
			if checkIn != "" {
				rec.CheckInTime = checkIn
			}
			if checkOut != "" {
				rec.CheckOutTime = checkOut
			}
			if notes != "" {
				rec.Notes = notes
			}
			if err := tx.Save(&rec).Error; err != nil {
				return apperr.Internal("update attendance", err)
			}
		} else {
			rec = models.Attendance{
				StaffID:      in.StaffID,
				BranchID:     in.BranchID,
				Date:         in.Date.UTC(),
				Status:       in.Status,
				CheckInTime:  checkIn,
				CheckOutTime: checkOut,
				Notes:        notes,
			}
			if err := tx.Create(&rec).Error; err != nil {
				return apperr.Internal("create attendance", err)
			}
		}

		opts := audit.LogOptions{
			Caller:      caller,
			BranchID:    &rec.BranchID,
			EntityType:  audit.EntityAttendance,
			EntityID:    rec.ID,
			Action:      action,
			Description: "Attendance " + string(rec.Status) + " on " + dayStart.Format(models.DateLayout),
			After:       rec,
		}
		if before != nil {
			opts.Before = before
		}
		return audit.WriteLog(tx, opts)
	})
	if err != nil {
		return nil, err
	}

	var out models.Attendance
	if err := db.Preload("Staff").Preload("Branch").First(&out, rec.ID).Error; err != nil {
		return nil, apperr.FromStore(err, "Attendance not found")
	}
	return &out, nil
}

// ListAttendance returns records newest first within the caller's branch scope.
func ListAttendance(db *gorm.DB, caller auth.Caller, f AttendanceFilter) ([]models.Attendance, error) {
	if err := auth.Authenticated(caller); err != nil {
		return nil, err
	}
	scope, err := auth.Scope(caller, f.BranchID)
	if err != nil {
		return nil, err
	}
	q := db.Preload("Staff").Preload("Branch")
	if scope != nil {
		q = q.Where("branch_id = ?", *scope)
	}
	if f.StaffID != nil {
		q = q.Where("staff_id = ?", *f.StaffID)
	}
	if f.StartDate != nil {
		q = q.Where("date >= ?", f.StartDate.UTC())
	}
	if f.EndDate != nil {
		q = q.Where("date <= ?", f.EndDate.UTC())
	}
	var list []models.Attendance
	if err := q.Order("date DESC").Order("id DESC").Find(&list).Error; err != nil {
		return nil, apperr.Internal("list attendance", err)
	}
	return list, nil
}
