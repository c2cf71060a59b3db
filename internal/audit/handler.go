package audit

import (
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/auth"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/database"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/request"

	"github.com/gofiber/fiber/v2"
)

// GET /api/audit-logs?entityType=sale&entityId=1&branchId=1&userId=2&limit=50
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var f Filter
		var err error
		if f.BranchID, err = request.OptionalUint(c, "branchId"); err != nil {
			return err
		}
		if f.UserID, err = request.OptionalUint(c, "userId"); err != nil {
			return err
		}
		if f.EntityID, err = request.OptionalUint(c, "entityId"); err != nil {
			return err
		}
		f.EntityType = c.Query("entityType")
		f.Limit = c.QueryInt("limit", 0)

		logs, err := List(database.DB.WithContext(c.UserContext()), auth.CallerFrom(c), f)
		if err != nil {
			return err
		}
		return c.JSON(logs)
	}
}
