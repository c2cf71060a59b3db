package staff

import (
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/auth"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/database"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/request"

	"github.com/gofiber/fiber/v2"
)

// GET /api/staff?branchId=
func ListStaffHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		branchID, err := request.OptionalUint(c, "branchId")
		if err != nil {
			return err
		}
		list, err := List(database.DB.WithContext(c.UserContext()), auth.CallerFrom(c), branchID)
		if err != nil {
			return err
		}
		return c.JSON(list)
	}
}

func GetStaffHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := request.ParamID(c)
		if err != nil {
			return err
		}
		s, err := Get(database.DB.WithContext(c.UserContext()), auth.CallerFrom(c), id)
		if err != nil {
			return err
		}
		return c.JSON(s)
	}
}

func CreateStaffHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateInput
		if err := request.Body(c, &body); err != nil {
			return err
		}
		s, err := Create(database.DB.WithContext(c.UserContext()), auth.CallerFrom(c), body)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Staff created successfully",
			"staff":   s,
		})
	}
}

func UpdateStaffHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := request.ParamID(c)
		if err != nil {
			return err
		}
		var body UpdateInput
		if err := request.Body(c, &body); err != nil {
			return err
		}
		s, err := Update(database.DB.WithContext(c.UserContext()), auth.CallerFrom(c), id, body)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"message": "Staff updated successfully",
			"staff":   s,
		})
	}
}

func DeleteStaffHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := request.ParamID(c)
		if err != nil {
			return err
		}
		if err := Delete(database.DB.WithContext(c.UserContext()), auth.CallerFrom(c), id); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "Staff deleted successfully"})
	}
}

// POST /api/staff/attendance/record
func RecordAttendanceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AttendanceInput
		if err := request.Body(c, &body); err != nil {
			return err
		}
		rec, err := RecordAttendance(database.DB.WithContext(c.UserContext()), auth.CallerFrom(c), body)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":    "Attendance recorded successfully",
			"attendance": rec,
		})
	}
}

// GET /api/staff/attendance/records?branchId=&staffId=&startDate=&endDate=
func ListAttendanceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var f AttendanceFilter
		var err error
		if f.BranchID, err = request.OptionalUint(c, "branchId"); err != nil {
			return err
		}
		if f.StaffID, err = request.OptionalUint(c, "staffId"); err != nil {
			return err
		}
		if f.StartDate, f.EndDate, err = request.DateRange(c); err != nil {
			return err
		}
		list, err := ListAttendance(database.DB.WithContext(c.UserContext()), auth.CallerFrom(c), f)
		if err != nil {
			return err
		}
		return c.JSON(list)
	}
}
