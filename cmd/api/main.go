package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/lagosinph/ticketstore/internal/config"
	"github.com/lagosinph/ticketstore/internal/dedup"
	httpx "github.com/lagosinph/ticketstore/internal/http"
	"github.com/lagosinph/ticketstore/internal/mailer"
	"github.com/lagosinph/ticketstore/internal/observability"
)

func main() {
	// Load the config set up
	cfg, err := config.Load()

	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	// start up the observability logger
	log := observability.NewLogger(cfg.Env)

	// optional tracing
	if cfg.TracingEnabled {
		shutdownTracer, err := observability.InitTracer(context.Background(), "ticketstore", cfg.OTLPEndpoint)

		if err != nil {
			log.Error("tracer init failed", "err", err)
			os.Exit(1)
		}

		defer func() {
			ctx, cancel := config.WithTimeout(5 * time.Second)
			defer cancel()
			_ = shutdownTracer(ctx)
		}()
	}

	// metrics registry
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := observability.NewProm(reg)

	// mail dispatcher: real SMTP when configured, log sink otherwise
	var base mailer.Mailer

	if cfg.SMTPHost != "" {
		base = mailer.NewSMTPMailer(mailer.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			SSL:      cfg.SMTPSecure,
			From:     cfg.SMTPFrom,
		})
		log.Info("using smtp mailer", "host", cfg.SMTPHost, "port", cfg.SMTPPort)
	} else {
		base = mailer.NewLogMailer()
		log.Warn("SMTP_HOST not set, ticket emails will only be logged")
	}

	m := mailer.NewProtectedMailer(base, mailer.ProtectedConfig{
		Timeout: cfg.SendTimeout,
	})

	// seen-reference store for replayed webhook deliveries
	var seen dedup.Store

	switch {
	case cfg.DedupTTL <= 0:
		log.Warn("webhook dedup disabled, replayed deliveries will resend tickets")
	case cfg.RedisAddr != "":
		seen = dedup.NewRedis(dedup.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.DedupTTL,
		})
		log.Info("webhook dedup via redis", "addr", cfg.RedisAddr, "ttl", cfg.DedupTTL)
	default:
		seen = dedup.NewMemory(cfg.DedupTTL)
		log.Info("webhook dedup in memory", "ttl", cfg.DedupTTL)
	}

	// set up routers with the log
	router := httpx.NewRouter(cfg, log, m, seen, prom, reg)

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// start server using a concurrent go-routine driven anonymous function.

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)

		defer cancel()

		err := srv.Shutdown(ctx)

		if err != nil {
			log.Error("graceful shutdown failed", "err", err)

			return
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
