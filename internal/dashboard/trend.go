package dashboard

import (
	"sort"
	"time"

	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/apperr"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/auth"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TrendPoint struct {
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	TotalSales float64 `json:"totalSales"`
	Count      int64   `json:"count"`
}

// TrendStart is the first instant of the window covering the current month
// and the months-1 before it, in UTC.
func TrendStart(now time.Time, months int) time.Time {
	now = now.UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, -(months - 1), 0)
}

// SalesTrend buckets sales by calendar month (UTC). Months with no sales are
// omitted.
func SalesTrend(db *gorm.DB, caller auth.Caller, requested *uint, months int) ([]TrendPoint, error) {
	if err := auth.Authenticated(caller); err != nil {
		return nil, err
	}
	if months == 0 {
		months = defaultMonths
	}
	if months < 1 || months > maxMonths {
		return nil, apperr.Validation("months must be between 1 and 120")
	}
	scope, err := auth.Scope(caller, requested)
	if err != nil {
		return nil, err
	}

	q := db.Model(&models.Sale{}).Where("sale_date >= ?", TrendStart(time.Now(), months))
	if scope != nil {
		q = q.Where("branch_id = ?", *scope)
	}
	var rows []struct {
		SaleDate    time.Time
		TotalAmount float64
	}
	if err := q.Select("sale_date, total_amount").Scan(&rows).Error; err != nil {
		return nil, apperr.Internal("sales trend", err)
	}

	type key struct{ year, month int }
	sums := map[key]decimal.Decimal{}
	counts := map[key]int64{}
	for _, r := range rows {
		t := r.SaleDate.UTC()
		k := key{t.Year(), int(t.Month())}
		sums[k] = sums[k].Add(decimal.NewFromFloat(r.TotalAmount))
		counts[k]++
	}

	out := make([]TrendPoint, 0, len(sums))
	for k, sum := range sums {
		out = append(out, TrendPoint{
			Year:       k.year,
			Month:      k.month,
			TotalSales: sum.Round(2).InexactFloat64(),
			Count:      counts[k],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out, nil
}
