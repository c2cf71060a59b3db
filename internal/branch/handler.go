package branch

import (
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/auth"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/database"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/request"

	"github.com/gofiber/fiber/v2"
)

type AssignManagerRequest struct {
	ManagerID uint `json:"managerId"`
}

func ListBranchesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		branches, err := List(database.DB.WithContext(c.UserContext()), auth.CallerFrom(c))
		if err != nil {
			return err
		}
		return c.JSON(branches)
	}
}

func GetBranchHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := request.ParamID(c)
		if err != nil {
			return err
		}
		b, err := Get(database.DB.WithContext(c.UserContext()), auth.CallerFrom(c), id)
		if err != nil {
			return err
		}
		return c.JSON(b)
	}
}

func CreateBranchHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateInput
		if err := request.Body(c, &body); err != nil {
			return err
		}
		b, err := Create(database.DB.WithContext(c.UserContext()), auth.CallerFrom(c), body)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Branch created successfully",
			"branch":  b,
		})
	}
}

func UpdateBranchHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := request.ParamID(c)
		if err != nil {
			return err
		}
		var body UpdateInput
		if err := request.Body(c, &body); err != nil {
			return err
		}
		b, err := Update(database.DB.WithContext(c.UserContext()), auth.CallerFrom(c), id, body)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"message": "Branch updated successfully",
			"branch":  b,
		})
	}
}

func DeleteBranchHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := request.ParamID(c)
		if err != nil {
			return err
		}
		if err := Delete(database.DB.WithContext(c.UserContext()), auth.CallerFrom(c), id); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "Branch deleted successfully"})
	}
}

func AssignManagerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := request.ParamID(c)
		if err != nil {
			return err
		}
		var body AssignManagerRequest
		if err := request.Body(c, &body); err != nil {
			return err
		}
		b, err := AssignManager(database.DB.WithContext(c.UserContext()), auth.CallerFrom(c), id, body.ManagerID)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"message": "Manager assigned successfully",
			"branch":  b,
		})
	}
}
