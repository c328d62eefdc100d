package apiclient

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PromObserver records upstream latency per method, route template and status.
type PromObserver struct {
	duration *prometheus.HistogramVec
}

// NewPromObserver registers the upstream histogram on reg.
func NewPromObserver(reg prometheus.Registerer) *PromObserver {
	h := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "admin",
		Subsystem: "upstream",
		Name:      "request_duration_seconds",
		Help:      "Latency of calls to the marketplace API.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "code"})
	reg.MustRegister(h)
	return &PromObserver{duration: h}
}

func (o *PromObserver) Observe(method, path string, status int, elapsed time.Duration) {
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	o.duration.WithLabelValues(method, RouteLabel(path), code).Observe(elapsed.Seconds())
}

// RouteLabel collapses ids so label cardinality stays bounded:
// /admin/users/abc -> /admin/users/:id
func RouteLabel(path string) string {
	path = strings.SplitN(path, "?", 2)[0]
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) <= 2 {
		return "/" + strings.Join(parts, "/")
	}
	return "/" + parts[0] + "/" + parts[1] + "/:id"
}
