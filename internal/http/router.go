package http

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/lagosinph/ticketstore/internal/config"
	"github.com/lagosinph/ticketstore/internal/dedup"
	"github.com/lagosinph/ticketstore/internal/http/handlers"
	"github.com/lagosinph/ticketstore/internal/http/middlewares"
	"github.com/lagosinph/ticketstore/internal/mailer"
	"github.com/lagosinph/ticketstore/internal/observability"
)

const maxBodyBytes = 1 << 20 // webhook payloads are small JSON documents

func NewRouter(cfg config.Config, log *slog.Logger, m mailer.Mailer, seen dedup.Store, prom *observability.Prom, reg *prometheus.Registry) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(maxBodyBytes))
	r.Use(otelgin.Middleware("ticketstore"))

	if prom != nil {
		r.Use(prom.GinHandleMiddleware())
	}

	// health + metrics

	pings := []func(ctx context.Context) error{m.Verify}

	if seen != nil {
		pings = append(pings, seen.Ping)
	}

	h := handlers.NewHealthHandler(pings...)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if reg != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	// storefront API

	ticketsHandler := handlers.NewTicketsHandler()
	sendHandler := handlers.NewSendTicketHandler(m, cfg.SMTPFrom, prom, log)
	webhookHandler := handlers.NewWebhookHandler(cfg.PaystackSecretKey, m, cfg.SMTPFrom, seen, prom, log)

	limiter := middlewares.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)

	api := r.Group("/api")
	api.GET("/tickets", ticketsHandler.ListCategories)
	api.POST("/send-ticket",
		middlewares.RequireJSON(),
		limiter.RateLimiterMiddleware(middlewares.KeyByIP),
		sendHandler.SendTicket,
	)
	// no rate limit on the webhook: deliveries come from Paystack and are
	// already gated by the signature check
	api.POST("/webhook", webhookHandler.Handle)

	return r
}
