package inventory

import (
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/auth"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/database"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/request"

	"github.com/gofiber/fiber/v2"
)

// GET /api/inventory?branchId=
func ListInventoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		branchID, err := request.OptionalUint(c, "branchId")
		if err != nil {
			return err
		}
		items, err := List(database.DB.WithContext(c.UserContext()), auth.CallerFrom(c), branchID)
		if err != nil {
			return err
		}
		return c.JSON(items)
	}
}

// GET /api/inventory/low-stock/items?branchId=
func LowStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		branchID, err := request.OptionalUint(c, "branchId")
		if err != nil {
			return err
		}
		items, err := LowStock(database.DB.WithContext(c.UserContext()), auth.CallerFrom(c), branchID)
		if err != nil {
			return err
		}
		return c.JSON(items)
	}
}

func GetInventoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := request.ParamID(c)
		if err != nil {
			return err
		}
		item, err := Get(database.DB.WithContext(c.UserContext()), auth.CallerFrom(c), id)
		if err != nil {
			return err
		}
		return c.JSON(item)
	}
}

func CreateInventoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateInput
		if err := request.Body(c, &body); err != nil {
			return err
		}
		item, err := Create(database.DB.WithContext(c.UserContext()), auth.CallerFrom(c), body)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":   "Inventory item created successfully",
			"inventory": item,
		})
	}
}

func UpdateInventoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := request.ParamID(c)
		if err != nil {
			return err
		}
		var body UpdateInput
		if err := request.Body(c, &body); err != nil {
			return err
		}
		item, err := Update(database.DB.WithContext(c.UserContext()), auth.CallerFrom(c), id, body)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"message":   "Inventory updated successfully",
			"inventory": item,
		})
	}
}

func DeleteInventoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := request.ParamID(c)
		if err != nil {
			return err
		}
		if err := Delete(database.DB.WithContext(c.UserContext()), auth.CallerFrom(c), id); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "Inventory item deleted successfully"})
	}
}
