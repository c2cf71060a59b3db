package dashboard

import (
	"strconv"

	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/apperr"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/auth"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/database"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/request"

	"github.com/gofiber/fiber/v2"
)

// GET /api/dashboard/admin/summary
func AdminSummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := Admin(database.DB.WithContext(c.UserContext()), auth.CallerFrom(c))
		if err != nil {
			return err
		}
		return c.JSON(s)
	}
}

// GET /api/dashboard/branch/summary?branchId=
// Branch managers get their own branch when branchId is omitted.
func BranchSummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		branchID, err := request.OptionalUint(c, "branchId")
		if err != nil {
			return err
		}
		s, err := Branch(database.DB.WithContext(c.UserContext()), auth.CallerFrom(c), branchID)
		if err != nil {
			return err
		}
		return c.JSON(s)
	}
}

// GET /api/dashboard/admin/branch-comparison?startDate=&endDate=
func BranchComparisonHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, end, err := request.DateRange(c)
		if err != nil {
			return err
		}
		list, err := CompareBranches(database.DB.WithContext(c.UserContext()), auth.CallerFrom(c), start, end)
		if err != nil {
			return err
		}
		return c.JSON(list)
	}
}

// GET /api/dashboard/sales-trend?branchId=&months=12
func SalesTrendHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		branchID, err := request.OptionalUint(c, "branchId")
		if err != nil {
			return err
		}
		months := 0
		if raw := c.Query("months"); raw != "" {
			if months, err = strconv.Atoi(raw); err != nil || months < 1 {
				return apperr.Validation("Invalid months")
			}
		}
		points, err := SalesTrend(database.DB.WithContext(c.UserContext()), auth.CallerFrom(c), branchID, months)
		if err != nil {
			return err
		}
		return c.JSON(points)
	}
}

// GET /api/dashboard/revenue-by-category?branchId=
func RevenueByCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		branchID, err := request.OptionalUint(c, "branchId")
		if err != nil {
			return err
		}
		list, err := RevenueByCategory(database.DB.WithContext(c.UserContext()), auth.CallerFrom(c), branchID)
		if err != nil {
			return err
		}
		return c.JSON(list)
	}
}
