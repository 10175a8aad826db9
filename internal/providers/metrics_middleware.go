package providers

import (
	"net/http"
	"time"
)

// unroutedEndpoint labels every path outside the route table, so scanners
// probing random URLs cannot grow the request series without bound.
const unroutedEndpoint = "other"

type responseRecorder struct {
	http.ResponseWriter
	code int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// MetricsMiddleware counts ops requests per registered route.
func MetricsMiddleware(metrics MetricsProviderInterface, routes []string, next http.Handler) http.Handler {
	known := make(map[string]struct{}, len(routes))
	for _, route := range routes {
		known[route] = struct{}{}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &responseRecorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rec, r)

		endpoint := unroutedEndpoint
		if _, ok := known[r.URL.Path]; ok {
			endpoint = r.URL.Path
		}
		metrics.IncRequestsTotal(endpoint, rec.code)
		metrics.ObserveRequestDuration(endpoint, time.Since(started))
	})
}
