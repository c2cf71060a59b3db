package server

import (
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/audit"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/auth"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/branch"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/config"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/dashboard"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/database"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/expense"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/inventory"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/metrics"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/report"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/restock"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/sales"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/staff"

	"github.com/gofiber/fiber/v2"
)

func healthHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if database.DB == nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "down"})
		}
		if err := database.Health(c.UserContext(), database.DB); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "down",
				"error":  err.Error(),
			})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}

func registerRoutes(app *fiber.App, cfg *config.Config, sessions *auth.Sessions) {
	authed := auth.Require(auth.Authenticated)
	admin := auth.Require(auth.Admin)
	manager := auth.Require(auth.BranchManagerOrAdmin)

	app.Get("/metrics", metrics.Handler())

	api := app.Group("/api")
	api.Get("/health", healthHandler())

	// Auth
	login := []fiber.Handler{auth.LoginHandler(sessions)}
	if cfg.LoginRateLimit > 0 {
		login = append([]fiber.Handler{loginLimiter(cfg.LoginRateLimit)}, login...)
	}
	api.Post("/auth/login", login...)
	api.Post("/auth/register", auth.RegisterHandler())
	api.Post("/auth/logout", auth.LogoutHandler(sessions))
	api.Get("/auth/current-user", authed, auth.CurrentUserHandler())
	api.Get("/users", admin, auth.ListUsersHandler())

	// Branches
	branches := api.Group("/branches", authed)
	branches.Get("/", branch.ListBranchesHandler())
	branches.Get("/:id", branch.GetBranchHandler())
	branches.Post("/", admin, branch.CreateBranchHandler())
	branches.Put("/:id", admin, branch.UpdateBranchHandler())
	branches.Delete("/:id", admin, branch.DeleteBranchHandler())
	branches.Post("/:id/assign-manager", admin, branch.AssignManagerHandler())

	// Inventory
	inv := api.Group("/inventory", authed)
	inv.Get("/", inventory.ListInventoryHandler())
	inv.Get("/low-stock/items", inventory.LowStockHandler())
	inv.Get("/:id", inventory.GetInventoryHandler())
	inv.Post("/", admin, inventory.CreateInventoryHandler())
	inv.Put("/:id", manager, inventory.UpdateInventoryHandler())
	inv.Delete("/:id", admin, inventory.DeleteInventoryHandler())

	// Sales and expenses
	sl := api.Group("/sales", authed)
	sl.Get("/", sales.ListSalesHandler())
	sl.Post("/", manager, sales.CreateSaleHandler())
	sl.Get("/summary/monthly", sales.SummaryHandler())
	sl.Post("/expense/create", manager, expense.CreateExpenseHandler())
	sl.Get("/expense/all", expense.ListExpensesHandler())
	sl.Get("/expense/summary", expense.CategorySummaryHandler())
	sl.Get("/:id", sales.GetSaleHandler())

	// Staff and attendance
	st := api.Group("/staff", authed)
	st.Get("/", staff.ListStaffHandler())
	st.Post("/", manager, staff.CreateStaffHandler())
	st.Post("/attendance/record", manager, staff.RecordAttendanceHandler())
	st.Get("/attendance/records", staff.ListAttendanceHandler())
	st.Get("/:id", staff.GetStaffHandler())
	st.Put("/:id", manager, staff.UpdateStaffHandler())
	st.Delete("/:id", manager, staff.DeleteStaffHandler())

	// Restock workflow
	rs := api.Group("/restock", authed)
	rs.Get("/", restock.ListRestockHandler())
	rs.Post("/", manager, restock.CreateRestockHandler())
	rs.Get("/:id", restock.GetRestockHandler())
	rs.Post("/:id/approve", admin, restock.ApproveRestockHandler())
	rs.Post("/:id/reject", admin, restock.RejectRestockHandler())
	rs.Post("/:id/fulfill", admin, restock.FulfillRestockHandler())

	// Dashboard
	dash := api.Group("/dashboard", authed)
	dash.Get("/admin/summary", admin, dashboard.AdminSummaryHandler())
	dash.Get("/admin/branch-comparison", admin, dashboard.BranchComparisonHandler())
	dash.Get("/branch/summary", manager, dashboard.BranchSummaryHandler())
	dash.Get("/sales-trend", dashboard.SalesTrendHandler())
	dash.Get("/revenue-by-category", dashboard.RevenueByCategoryHandler())

	// Audit and reports
	api.Get("/audit-logs", admin, audit.ListAuditLogsHandler())
	api.Get("/reports/sales.xlsx", authed, report.SalesHandler())
	api.Get("/reports/inventory.xlsx", authed, report.InventoryHandler())
}
