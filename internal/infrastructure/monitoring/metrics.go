package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	LoginOutcomeSuccess = "success"
	LoginOutcomeFailure = "failure"
)

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type BusinessMetrics struct {
	CustomersRegisteredTotal prometheus.Counter
	CustomerLoginsTotal      *prometheus.CounterVec
	CustomersRegistered      prometheus.Gauge
}

var (
	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "customer_service_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Business = BusinessMetrics{
		CustomersRegisteredTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "customer_service_customers_registered_total",
				Help: "Total number of customers successfully registered.",
			},
		),
		CustomerLoginsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "customer_service_customer_logins_total",
				Help: "Total number of login attempts by outcome.",
			},
			[]string{"outcome"},
		),
		CustomersRegistered: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "customer_service_customers_registered",
				Help: "Number of customers currently stored, refreshed by the stats job.",
			},
		),
	}
)

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}

func RecordCustomerRegistered() {
	Business.CustomersRegisteredTotal.Inc()
}

func RecordLogin(outcome string) {
	Business.CustomerLoginsTotal.WithLabelValues(outcome).Inc()
}

func SetCustomersRegistered(count int) {
	Business.CustomersRegistered.Set(float64(count))
}
