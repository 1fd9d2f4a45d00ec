package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// requestsTotal counts proxied requests by method, path and status.
var requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "eaglechat_http_requests_total",
	Help: "Total HTTP requests handled by the proxy.",
}, []string{"method", "path", "status"})
