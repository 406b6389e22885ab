package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

type PrometheusMetrics struct {
	operationsTotal *prometheus.CounterVec
	amountObserved  *prometheus.HistogramVec
	openAccounts    prometheus.Gauge
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		operationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "account_operations_total",
				Help: "Total number of account operations by outcome",
			},
			[]string{"operation", "status"},
		),
		amountObserved: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "account_operation_amount",
				Help:    "Monetary amounts moved by successful operations",
				Buckets: prometheus.ExponentialBuckets(1, 10, 8),
			},
			[]string{"operation"},
		),
		openAccounts: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "open_accounts",
				Help: "Number of accounts currently registered",
			},
		),
	}
}

func (m *PrometheusMetrics) RecordOperation(operation, status string) {
	m.operationsTotal.WithLabelValues(operation, status).Inc()
}

func (m *PrometheusMetrics) ObserveAmount(operation string, amount decimal.Decimal) {
	value, _ := amount.Float64()
	m.amountObserved.WithLabelValues(operation).Observe(value)
}

func (m *PrometheusMetrics) SetOpenAccounts(count int) {
	m.openAccounts.Set(float64(count))
}
