package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AngelCh415/stratis/internal/models"
)

// Metrics owns a private registry so tests can create as many as they want.
type Metrics struct {
	reg *prometheus.Registry

	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	build    prometheus.Gauge
	records  *prometheus.GaugeVec
}

func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stratis", Subsystem: "http", Name: "requests_total",
			Help: "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "stratis", Subsystem: "http", Name: "request_duration_seconds",
			Help:    "HTTP latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		build: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "stratis", Subsystem: "dataset", Name: "build_seconds",
			Help: "Duration of the last dataset build.",
		}),
		records: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "stratis", Subsystem: "dataset", Name: "records",
			Help: "Records in the built dataset by kind.",
		}, []string{"kind"}),
	}
	m.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests, m.latency, m.build, m.records,
	)
	return m
}

// ObserveRequest records one finished request. route is the pattern, not the path.
func (m *Metrics) ObserveRequest(method, route string, status int, took time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(method, route).Observe(took.Seconds())
}

// ObserveBuild implements store.BuildObserver.
func (m *Metrics) ObserveBuild(took time.Duration, ds *models.Dataset) {
	m.build.Set(took.Seconds())
	days := 0
	for _, byCh := range ds.DailyData {
		for _, series := range byCh {
			days += len(series)
		}
	}
	m.records.WithLabelValues("campaigns").Set(float64(len(ds.Campaigns)))
	m.records.WithLabelValues("daily").Set(float64(days))
	m.records.WithLabelValues("anomalies").Set(float64(len(ds.Anomalies)))
	m.records.WithLabelValues("news").Set(float64(len(ds.News)))
	m.records.WithLabelValues("insights").Set(float64(len(ds.Insights)))
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

func (m *Metrics) Registry() *prometheus.Registry { return m.reg }
