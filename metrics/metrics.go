package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var HttpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "deployments_http_requests_total",
}, []string{"host", "action", "method"})
var HttpResponses = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "deployments_http_responses_total",
}, []string{"host", "action", "method", "statusCode"})
var HttpResponseTime = prometheus.NewHistogramVec(prometheus.HistogramOpts{
	Name: "deployments_http_response_time_seconds",
}, []string{"host", "action", "method"})
var CatalogBuilds = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "deployments_catalog_builds_total",
}, []string{"outcome"})
var CatalogBuildTime = prometheus.NewHistogram(prometheus.HistogramOpts{
	Name: "deployments_catalog_build_time_seconds",
})
var DeploymentsDigested = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "deployments_digested_total",
}, []string{"valid"})
var DeploymentsOnDisk = prometheus.NewGaugeVec(prometheus.GaugeOpts{
	Name: "deployments_on_disk",
}, []string{"valid"})

func init() {
	prometheus.MustRegister(HttpRequests)
	prometheus.MustRegister(HttpResponses)
	prometheus.MustRegister(HttpResponseTime)
	prometheus.MustRegister(CatalogBuilds)
	prometheus.MustRegister(CatalogBuildTime)
	prometheus.MustRegister(DeploymentsDigested)
	prometheus.MustRegister(DeploymentsOnDisk)
}
