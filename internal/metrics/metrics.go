// Package metrics exposes Prometheus counters for the API and its domain events.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "franchise"

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route pattern and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route pattern.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	SalesRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sales_recorded_total",
		Help:      "Sales recorded, by payment method.",
	}, []string{"payment_method"})

	SalesRevenue = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sales_revenue_total",
		Help:      "Sum of recorded sale totals.",
	})

	SalesRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sales_rejected_total",
		Help:      "Sales refused, by error kind.",
	}, []string{"reason"})

	RestockTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "restock_transitions_total",
		Help:      "Restock requests entering each status.",
	}, []string{"status"})
)

// Middleware counts every request once it has been handled.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// fasthttp reuses the request buffers; label values must own their bytes
		method := utils.CopyString(c.Method())
		start := time.Now()
		err := c.Next()
		route := utils.CopyString(c.Route().Path)
		HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())

		status := c.Response().StatusCode()
		if err != nil {
			status = statusOf(err)
		}
		HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		return err
	}
}

func statusOf(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return apperr.KindOf(err).Status()
}

// Handler serves the default registry in the Prometheus text format.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
