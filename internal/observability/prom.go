package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

type Prom struct {
	RequestsTotal    *prometheus.CounterVec
	RequestsDuration *prometheus.HistogramVec
	InFlight         *prometheus.GaugeVec

	// Mail dispatch

	MailSendDuration *prometheus.HistogramVec
	MailResults      *prometheus.CounterVec

	// Webhook deliveries

	WebhookEvents *prometheus.CounterVec
}

func NewProm(reg prometheus.Registerer) *Prom {
	p := &Prom{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ticketstore",
				Name:      "http_requests_total",
				Help:      "Total HTTP requests processed",
			},
			[]string{"method", "route", "status"},
		),
		RequestsDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "ticketstore",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency distributions.",
				// Sane initial defaults
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"method", "route", "status"},
		),
		InFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "ticketstore",
				Name:      "http_in_flight_requests",
				Help:      "Current number of in-flight HTTP requests.",
			},
			[]string{"method", "route"},
		),
		MailSendDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "ticketstore",
				Subsystem: "mail",
				Name:      "send_duration_seconds",
				Help:      "Mail dispatch latency by outcome.",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 15, 30},
			},
			[]string{"result"}, // result=sent|transport_error|rejected|circuit_open
		),
		MailResults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ticketstore",
				Subsystem: "mail",
				Name:      "results_total",
				Help:      "Mail dispatch outcomes.",
			},
			[]string{"result"},
		),
		WebhookEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ticketstore",
				Subsystem: "webhook",
				Name:      "events_total",
				Help:      "Webhook deliveries by event type and outcome.",
			},
			[]string{"event", "outcome"}, // outcome=processed|unhandled|duplicate|bad_signature|malformed|delivery_failed
		),
	}
	reg.MustRegister(p.RequestsTotal, p.RequestsDuration, p.InFlight, p.MailSendDuration, p.MailResults, p.WebhookEvents)

	return p
}

func (p *Prom) GinHandleMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		// route template is only available after routing; best effort:
		route := ctx.FullPath()

		if route == "" {
			route = "unmatched"
		}

		method := ctx.Request.Method
		p.InFlight.WithLabelValues(method, route).Inc()
		defer p.InFlight.WithLabelValues(method, route).Dec()
		ctx.Next()

		status := strconv.Itoa(ctx.Writer.Status())
		secs := time.Since(start).Seconds()

		p.RequestsTotal.WithLabelValues(method, route, status).Inc()
		p.RequestsDuration.WithLabelValues(method, route, status).Observe(secs)
	}
}

// ObserveMailSend records one dispatch attempt.
func (p *Prom) ObserveMailSend(result string, elapsed time.Duration) {
	p.MailResults.WithLabelValues(result).Inc()
	p.MailSendDuration.WithLabelValues(result).Observe(elapsed.Seconds())
}
