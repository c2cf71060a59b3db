package request

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/apperr"

	"github.com/gofiber/fiber/v2"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2024-03-05", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), true},
		{"2024-03-05T10:30:00Z", time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC), true},
		{"05/03/2024", time.Time{}, false},
		{"", time.Time{}, false},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in)
		if !tc.ok {
			if apperr.KindOf(err) != apperr.KindValidation {
				t.Errorf("ParseDate(%q) err = %v, want validation", tc.in, err)
			}
			continue
		}
		if err != nil || !got.Equal(tc.want) {
			t.Errorf("ParseDate(%q) = %v, %v", tc.in, got, err)
		}
	}
}

func TestQueryHelpers(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(apperr.KindOf(err).Status()).SendString(err.Error())
		},
	})
	var (
		branch     *uint
		start, end *time.Time
	)
	app.Get("/", func(c *fiber.Ctx) error {
		var err error
		if branch, err = OptionalUint(c, "branchId"); err != nil {
			return err
		}
		start, end, err = DateRange(c)
		if err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/?branchId=4&startDate=2024-01-01&endDate=2024-01-31", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusNoContent {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if branch == nil || *branch != 4 {
		t.Errorf("branch = %v", branch)
	}
	wantEnd := time.Date(2024, 1, 31, 23, 59, 59, int(999*time.Millisecond), time.UTC)
	if start == nil || end == nil || !end.Equal(wantEnd) {
		t.Errorf("range = %v .. %v", start, end)
	}

	for _, q := range []string{"/?branchId=abc", "/?branchId=0", "/?startDate=2024-02-01&endDate=2024-01-01"} {
		resp, err := app.Test(httptest.NewRequest("GET", q, nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != fiber.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", q, resp.StatusCode)
		}
	}
}
