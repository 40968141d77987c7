// Package metrics holds the prometheus collectors for the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// LedgerSizer is the part of the ledger the size gauges read.
type LedgerSizer interface {
	AssetCount() int
	WalletCount() int
}

type Registry struct {
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	CacheRequests    *prometheus.CounterVec
	LedgerOperations *prometheus.CounterVec
}

func New() *Registry {
	return &Registry{
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tokenize_http_requests_total",
				Help: "HTTP requests by method, route and status code",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tokenize_http_request_duration_seconds",
				Help:    "HTTP request latency by method and route",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"method", "route"},
		),
		CacheRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tokenize_cache_requests_total",
				Help: "Component cache lookups by result (hit, miss, error)",
			},
			[]string{"result"},
		),
		LedgerOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tokenize_ledger_operations_total",
				Help: "Ledger operations by name and result",
			},
			[]string{"operation", "result"},
		),
	}
}

// MustRegister registers every collector plus gauges reporting the
// ledger's table sizes.
func (r *Registry) MustRegister(reg prometheus.Registerer, ledger LedgerSizer) {
	reg.MustRegister(r.HTTPRequests, r.HTTPDuration, r.CacheRequests, r.LedgerOperations)
	if ledger == nil {
		return
	}
	reg.MustRegister(
		prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "tokenize_ledger_assets",
				Help: "Assets currently stored in the ledger",
			},
			func() float64 { return float64(ledger.AssetCount()) },
		),
		prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "tokenize_ledger_wallets",
				Help: "Wallets currently stored in the ledger",
			},
			func() float64 { return float64(ledger.WalletCount()) },
		),
	)
}
