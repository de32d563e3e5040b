package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics métricas Prometheus del servidor HTTP, en un registro propio.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	formRejections  *prometheus.CounterVec
}

// NewMetrics crea y registra las métricas HTTP junto con los colectores de proceso y runtime.
func NewMetrics() (*Metrics, error) {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status_code"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Time taken for HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		formRejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crm_form_rejections_total",
				Help: "Total number of form submissions rejected by validation",
			},
			[]string{"form"},
		),
	}
	for _, c := range []prometheus.Collector{
		m.requestsTotal,
		m.requestDuration,
		m.formRejections,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := m.registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Middleware mide cada petición. La ruta se etiqueta con el patrón registrado
// (/contacts/:id) y no con la URL concreta.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		route := c.Route().Path
		method := c.Method()
		m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Response().StatusCode())).Inc()
		m.requestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler expone el registro en formato de texto de Prometheus.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// Registry devuelve el registro (usado en tests).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRejection cuenta un formulario rechazado. Admite receptor nil.
func (m *Metrics) ObserveRejection(form string) {
	if m == nil {
		return
	}
	m.formRejections.WithLabelValues(form).Inc()
}
