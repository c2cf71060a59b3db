package expense

import (
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/auth"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/database"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/request"

	"github.com/gofiber/fiber/v2"
)

func filterFromQuery(c *fiber.Ctx) (Filter, error) {
	var f Filter
	var err error
	if f.BranchID, err = request.OptionalUint(c, "branchId"); err != nil {
		return f, err
	}
	f.StartDate, f.EndDate, err = request.DateRange(c)
	return f, err
}

// POST /api/sales/expense/create
func CreateExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateInput
		if err := request.Body(c, &body); err != nil {
			return err
		}
		e, err := Create(database.DB.WithContext(c.UserContext()), auth.CallerFrom(c), body)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Expense recorded successfully",
			"expense": e,
		})
	}
}

// GET /api/sales/expense/all?branchId=&startDate=&endDate=
func ListExpensesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := filterFromQuery(c)
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

// GET /api/sales/expense/summary?branchId=&startDate=&endDate=
func CategorySummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := filterFromQuery(c)
		if err != nil {
			return err
		}
		s, err := SummarizeByCategory(database.DB.WithContext(c.UserContext()), auth.CallerFrom(c), f)
		if err != nil {
			return err
		}
		return c.JSON(s)
	}
}
