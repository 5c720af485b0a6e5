package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SignupsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "signups_total",
		Help: "Total number of successful signups",
	})

	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "logins_total",
		Help: "Total number of login attempts",
	}, []string{"result"})

	OTPIssuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "otp_issued_total",
		Help: "Total number of one-time codes issued",
	})

	OTPVerifiedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "otp_verified_total",
		Help: "Total number of OTP verification attempts",
	}, []string{"result"})

	PasswordResetsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "password_resets_total",
		Help: "Total number of completed password resets",
	})

	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders created",
	})

	OrdersCancelledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_cancelled_total",
		Help: "Total number of cancelled orders",
	})

	EmailsSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "emails_sent_total",
		Help: "Total number of outbound emails",
	}, []string{"kind"})

	ProductCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "product_cache_requests_total",
		Help: "Product cache lookups by outcome",
	}, []string{"outcome"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
