package sales

import (
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/auth"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/database"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/request"

	"github.com/gofiber/fiber/v2"
)

// FilterFromQuery reads branchId, startDate and endDate.
func FilterFromQuery(c *fiber.Ctx) (Filter, error) {
	var f Filter
	var err error
	if f.BranchID, err = request.OptionalUint(c, "branchId"); err != nil {
		return f, err
	}
	f.StartDate, f.EndDate, err = request.DateRange(c)
	return f, err
}

func CreateSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateInput
		if err := request.Body(c, &body); err != nil {
			return err
		}
		sale, err := Record(database.DB.WithContext(c.UserContext()), auth.CallerFrom(c), body)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Sale recorded successfully",
			"sale":    sale,
		})
	}
}

// GET /api/sales?branchId=&startDate=&endDate=
func ListSalesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := FilterFromQuery(c)
		if err != nil {
			return err
		}
		list, err := List(database.DB.WithContext(c.UserContext()), auth.CallerFrom(c), f)
		if err != nil {
			return err
		}
		return c.JSON(list)
	}
}

func GetSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := request.ParamID(c)
		if err != nil {
			return err
		}
		sale, err := Get(database.DB.WithContext(c.UserContext()), auth.CallerFrom(c), id)
		if err != nil {
			return err
		}
		return c.JSON(sale)
	}
}

// GET /api/sales/summary/monthly?branchId=&startDate=&endDate=
func SummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := FilterFromQuery(c)
		if err != nil {
			return err
		}
		s, err := Summarize(database.DB.WithContext(c.UserContext()), auth.CallerFrom(c), f)
		if err != nil {
			return err
		}
		return c.JSON(s)
	}
}
