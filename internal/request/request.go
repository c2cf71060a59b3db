// Package request holds the small parsing helpers shared by the HTTP handlers.
package request

import (
	"strconv"
	"strings"
	"time"

	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/apperr"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ParamID parses the :id route parameter.
func ParamID(c *fiber.Ctx) (uint, error) {
	return parseID(c.Params("id"), "id")
}

// OptionalUint parses an optional positive integer query parameter.
func OptionalUint(c *fiber.Ctx, key string) (*uint, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	id, err := parseID(raw, key)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseID(raw, name string) (uint, error) {
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, apperr.Validation("Invalid " + name)
	}
	return uint(n), nil
}

// ParseDate is models.ParseDate reporting a validation error.
func ParseDate(raw string) (time.Time, error) {
	t, err := models.ParseDate(raw)
	if err != nil {
		return time.Time{}, apperr.Validation("Invalid date: " + strings.TrimSpace(raw))
	}
	return t, nil
}

// OptionalDate parses an optional date query parameter. A bare date used as
// an upper bound (endOfDay) is widened to the last instant of that day.
func OptionalDate(c *fiber.Ctx, key string, endOfDay bool) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	t, err := ParseDate(raw)
	if err != nil {
		return nil, err
	}
	if endOfDay && len(raw) == len(models.DateLayout) {
		t = t.Add(24*time.Hour - time.Millisecond)
	}
	return &t, nil
}

// DateRange reads startDate and endDate.
func DateRange(c *fiber.Ctx) (start, end *time.Time, err error) {
	if start, err = OptionalDate(c, "startDate", false); err != nil {
		return nil, nil, err
	}
	if end, err = OptionalDate(c, "endDate", true); err != nil {
		return nil, nil, err
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, nil, apperr.Validation("endDate must not be before startDate")
	}
	return start, end, nil
}

// Body decodes the JSON body into v.
func Body(c *fiber.Ctx, v any) error {
	if err := c.BodyParser(v); err != nil {
		return apperr.Validation("Invalid request body")
	}
	return nil
}
