package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type BusinessMetrics struct {
	CustomersCreatedTotal prometheus.Counter
	AddressesAddedTotal   prometheus.Counter
	AddressesRemovedTotal prometheus.Counter
	VerificationsTotal    *prometheus.CounterVec
	UnverifiedEmailGauge  prometheus.Gauge
	UnverifiedPhoneGauge  prometheus.Gauge
	ValidationFailuresVec *prometheus.CounterVec
}

var (
	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pharmacy_customers_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Business = BusinessMetrics{
		CustomersCreatedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pharmacy_customers_created_total",
			Help: "Total number of customers created.",
		}),
		AddressesAddedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pharmacy_customers_addresses_added_total",
			Help: "Total number of addresses appended to customer records.",
		}),
		AddressesRemovedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pharmacy_customers_addresses_removed_total",
			Help: "Total number of addresses removed from customer records.",
		}),
		VerificationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "pharmacy_customers_verifications_total",
			Help: "Total number of successful contact verifications.",
		}, []string{"channel"}),
		UnverifiedEmailGauge: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "pharmacy_customers_unverified_email",
			Help: "Number of customers whose email is not verified (updated by the nightly report job).",
		}),
		UnverifiedPhoneGauge: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "pharmacy_customers_unverified_phone",
			Help: "Number of customers whose phone is not verified (updated by the nightly report job).",
		}),
		ValidationFailuresVec: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "pharmacy_customers_validation_failures_total",
			Help: "Total number of rejected create/append requests by failing check.",
		}, []string{"check"}),
	}
)

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}
