package pubview

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics are registered per App so several Apps (tests) can coexist.
type metrics struct {
	renders        *prometheus.CounterVec
	renderErrors   *prometheus.CounterVec
	imports        *prometheus.CounterVec
	importDuration prometheus.Histogram
	postsLoaded    prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		renders: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pubview_page_renders_total",
				Help: "The total number of rendered pages",
			},
			[]string{"view"},
		),
		renderErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pubview_render_errors_total",
				Help: "The total number of pages that failed to render",
			},
			[]string{"view"},
		),
		imports: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pubview_content_imports_total",
				Help: "The total number of content imports",
			},
			[]string{"status"},
		),
		importDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pubview_content_import_duration_seconds",
				Help:    "Duration of content imports",
				Buckets: prometheus.DefBuckets,
			},
		),
		postsLoaded: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "pubview_posts_loaded",
				Help: "Number of published posts in the store after the last import",
			},
		),
	}
}
