// Package metrics holds the domain counters exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shopadmin_orders_created_total",
		Help: "Orders accepted from the storefront",
	})

	OrderRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shopadmin_order_tx_retries_total",
		Help: "Order transactions retried after a deadlock or lock wait timeout",
	})

	ReviewsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shopadmin_reviews_submitted_total",
		Help: "Reviews submitted for moderation",
	})

	// FilesStored counts uploads by resource prefix.
	FilesStored = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shopadmin_files_stored_total",
		Help: "Uploaded files written to storage",
	}, []string{"resource"})

	FilesDeleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shopadmin_files_deleted_total",
		Help: "Stored files removed, by outcome",
	}, []string{"outcome"})

	RateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shopadmin_rate_limited_total",
		Help: "Requests rejected by the rate limiter",
	}, []string{"route"})
)
