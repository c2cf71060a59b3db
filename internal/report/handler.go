package report

import (
	"fmt"

	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/auth"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/database"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/request"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/sales"

	"github.com/gofiber/fiber/v2"
)

func sendWorkbook(c *fiber.Ctx, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}

// GET /api/reports/sales.xlsx?branchId=&startDate=&endDate=
func SalesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := sales.FilterFromQuery(c)
		if err != nil {
			return err
		}
		data, err := Sales(database.DB.WithContext(c.UserContext()), auth.CallerFrom(c), f)
		if err != nil {
			return err
		}
		return sendWorkbook(c, Filename("sales", f.BranchID), data)
	}
}

// GET /api/reports/inventory.xlsx?branchId=
func InventoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		branchID, err := request.OptionalUint(c, "branchId")
		if err != nil {
			return err
		}
		data, err := Inventory(database.DB.WithContext(c.UserContext()), auth.CallerFrom(c), branchID)
		if err != nil {
			return err
		}
		return sendWorkbook(c, Filename("inventory", branchID), data)
	}
}
