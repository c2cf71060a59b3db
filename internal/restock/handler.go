package restock

import (
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/auth"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/database"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/models"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/request"

	"github.com/gofiber/fiber/v2"
)

func CreateRestockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateInput
		if err := request.Body(c, &body); err != nil {
			return err
		}
		r, err := Create(database.DB.WithContext(c.UserContext()), auth.CallerFrom(c), body)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":        "Restock request created successfully",
			"restockRequest": r,
		})
	}
}

// GET /api/restock?status=Pending&branchId=1
func ListRestockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		f := Filter{Status: models.RestockStatus(c.Query("status"))}
		var err error
		if f.BranchID, err = request.OptionalUint(c, "branchId"); err != nil {
			return err
		}
		list, err := List(database.DB.WithContext(c.UserContext()), auth.CallerFrom(c), f)
		if err != nil {
			return err
		}
		return c.JSON(list)
	}
}

func GetRestockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := request.ParamID(c)
		if err != nil {
			return err
		}
		r, err := Get(database.DB.WithContext(c.UserContext()), auth.CallerFrom(c), id)
		if err != nil {
			return err
		}
		return c.JSON(r)
	}
}

func ApproveRestockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := request.ParamID(c)
		if err != nil {
			return err
		}
		var body DecisionInput
		if len(c.Body()) > 0 {
			if err := request.Body(c, &body); err != nil {
				return err
			}
		}
		r, err := Approve(database.DB.WithContext(c.UserContext()), auth.CallerFrom(c), id, body)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"message":        "Restock request approved successfully",
			"restockRequest": r,
		})
	}
}

func RejectRestockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := request.ParamID(c)
		if err != nil {
			return err
		}
		var body DecisionInput
		if len(c.Body()) > 0 {
			if err := request.Body(c, &body); err != nil {
				return err
			}
		}
		r, err := Reject(database.DB.WithContext(c.UserContext()), auth.CallerFrom(c), id, body)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"message":        "Restock request rejected successfully",
			"restockRequest": r,
		})
	}
}

func FulfillRestockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := request.ParamID(c)
		if err != nil {
			return err
		}
		r, err := Fulfill(database.DB.WithContext(c.UserContext()), auth.CallerFrom(c), id)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"message":        "Restock request fulfilled successfully",
			"restockRequest": r,
		})
	}
}
