package mailer

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker open")

type ProtectedConfig struct {
	Timeout          time.Duration // hard timeout per send
	FailureThreshold int           // consecutive failures to open circuit
	Cooldown         time.Duration // how long to stay open before half-open
	HalfOpenMaxCalls int           // allow N trial calls in half-open
}

// ProtectedMailer wraps a Mailer with a per-call timeout and a circuit
// breaker, so a dead SMTP provider fails fast instead of tying up every
// webhook delivery for the full timeout. It never retries.
type ProtectedMailer struct {
	inner Mailer
	cfg   ProtectedConfig
	mu    sync.Mutex

	state string // "closed" | "open" | "half_open"

	consecutiveFailures int
	openedAt            time.Time
	halfOpenInFlight    int
}

func NewProtectedMailer(inner Mailer, cfg ProtectedConfig) *ProtectedMailer {
	//defaults
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 3
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 15 * time.Second
	}
	if cfg.HalfOpenMaxCalls <= 0 {
		cfg.HalfOpenMaxCalls = 1
	}

	return &ProtectedMailer{
		inner: inner,
		cfg:   cfg,
		state: "closed",
	}
}

func (m *ProtectedMailer) Verify(ctx context.Context) error {
	vctx, cancel := context.WithTimeout(ctx, m.cfg.Timeout)
	defer cancel()

	return m.inner.Verify(vctx)
}

func (m *ProtectedMailer) Send(ctx context.Context, msg Message) (string, error) {
	// fail-fast gate

	if !m.allowRequest() {
		return "", ErrCircuitOpen
	}
	// enforce timeout

	sendCtx, cancel := context.WithTimeout(ctx, m.cfg.Timeout)
	defer cancel()

	id, err := m.inner.Send(sendCtx, msg)

	m.afterRequest(err)

	return id, err
}

func (m *ProtectedMailer) allowRequest() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state {
	case "closed":
		return true
	case "open":
		// cooldown has passed? move to half open

		if time.Since(m.openedAt) >= m.cfg.Cooldown {
			m.state = "half_open"
			m.halfOpenInFlight = 0
			return true
		}
		return false
	case "half_open":
		if m.halfOpenInFlight >= m.cfg.HalfOpenMaxCalls {
			return false
		}
		m.halfOpenInFlight++
		return true

	default:
		// safe fallback
		return true
	}
}

func (m *ProtectedMailer) afterRequest(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// half-open call just finished
	if m.state == "half_open" && m.halfOpenInFlight > 0 {
		m.halfOpenInFlight--
	}

	if err == nil {
		// success => close circuit and reset counters
		m.consecutiveFailures = 0
		m.state = "closed"
		return
	}

	// failure
	m.consecutiveFailures++

	// if half-open failed, reopen immediately
	if m.state == "half_open" {
		m.state = "open"
		m.openedAt = time.Now()
		return
	}

	// if failures reached threshold, open circuit
	if m.consecutiveFailures >= m.cfg.FailureThreshold {
		m.state = "open"
		m.openedAt = time.Now()
	}
}
