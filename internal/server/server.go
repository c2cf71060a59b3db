// Package server assembles the fiber application: middleware, error mapping
// and the route table.
package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/apperr"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/auth"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/config"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// ErrorHandler renders every error as {"message", "error"} with the status
// of its kind.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		if ae.Kind == apperr.KindInternal {
			slog.Error("request failed", "method", c.Method(), "path", c.Path(), "err", err)
		}
		return c.Status(ae.Kind.Status()).JSON(fiber.Map{
			"message": ae.Message,
			"error":   ae.Kind.String(),
		})
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{
			"message": fe.Message,
			"error":   http.StatusText(fe.Code),
		})
	}

	slog.Error("unexpected error", "method", c.Method(), "path", c.Path(), "err", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Internal server error",
		"error":   apperr.KindInternal.String(),
	})
}

func corsOrigins(raw string) string {
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ",")
}

func loginLimiter(max int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "Too many login attempts, try again later",
				"error":   http.StatusText(fiber.StatusTooManyRequests),
			})
		},
	})
}

// New builds the application. The database handle is read from
// database.DB by the handlers.
func New(cfg *config.Config, sessions *auth.Sessions) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "franchise-api",
		ErrorHandler: ErrorHandler,
	})

	app.Use(recover.New())
	if !cfg.IsProduction() {
		app.Use(logger.New())
	}
	origins := corsOrigins(cfg.CORSOrigins)
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowCredentials: origins != "*",
	}))
	app.Use(metrics.Middleware())
	app.Use(sessions.Middleware())

	registerRoutes(app, cfg, sessions)
	return app
}
