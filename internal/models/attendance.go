package models

import "time"

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
	AttendanceLeave   AttendanceStatus = "Leave"
	AttendanceHalfDay AttendanceStatus = "Half Day"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLeave, AttendanceHalfDay:
		return true
	}
	return false
}

// Attendance holds at most one row per (staff, calendar day).
// CheckInTime and CheckOutTime are wall-clock strings such as "09:05".
type Attendance struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	StaffID      uint             `gorm:"index;not null" json:"staffId"`
	Staff        *Staff           `json:"staff,omitempty"`
	BranchID     uint             `gorm:"index;not null" json:"branchId"`
	Branch       *Branch          `json:"branch,omitempty"`
	Date         time.Time        `gorm:"index;not null" json:"date"`
	Status       AttendanceStatus `gorm:"size:20;not null" json:"status"`
	CheckInTime  string           `gorm:"size:20" json:"checkInTime"`
	CheckOutTime string           `gorm:"size:20" json:"checkOutTime"`
	Notes        string           `gorm:"size:255" json:"notes"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

func (Attendance) TableName() string {
	return "attendance"
}
