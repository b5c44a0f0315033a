package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal           = "http_requests_total"
	HTTPRequestDurationSeconds = "http_request_duration_seconds"
	FeedRequestDurationSeconds = "feed_request_duration_seconds"
	MarketFallbackTotal        = "market_fallback_total"
	ClickTotal                 = "click_total"
)

var (
	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"path", "status_code"}),
		MarketFallbackTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MarketFallbackTotal,
			Help: "Count of market data responses served from the fallback dataset",
		}, []string{"reason"}),
		ClickTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: ClickTotal,
			Help: "Count of tracked airdrop clicks",
		}, []string{"sink"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help: "Duration of all HTTP requests",
		}, []string{"path", "status_code"}),
		FeedRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: FeedRequestDurationSeconds,
			Help: "Duration of outgoing requests to third-party feeds",
		}, []string{"method", "path", "status_code"}),
	}
)

// RegisterMetrics registers every metric of this package to the registerer.
func RegisterMetrics(r prometheus.Registerer) {
	for _, c := range PromCounters {
		r.MustRegister(c)
	}

	for _, h := range PromHistograms {
		r.MustRegister(h)
	}
}
