package metrics

import (
	"net/http"
	"sync"
)

var beforeMetricsCalledFns = make([]func(), 0)
var listenersLock = &sync.Mutex{}

// OnBeforeMetricsRequested registers fn to refresh gauges right before a scrape.
func OnBeforeMetricsRequested(fn func()) {
	listenersLock.Lock()
	defer listenersLock.Unlock()
	beforeMetricsCalledFns = append(beforeMetricsCalledFns, fn)
}

func runBeforeMetricsFns() {
	listenersLock.Lock()
	fns := make([]func(), len(beforeMetricsCalledFns))
	copy(fns, beforeMetricsCalledFns)
	listenersLock.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func withListeners(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		runBeforeMetricsFns()
		next.ServeHTTP(w, r)
	})
}
