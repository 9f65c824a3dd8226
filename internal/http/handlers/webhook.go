package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lagosinph/ticketstore/internal/dedup"
	"github.com/lagosinph/ticketstore/internal/domain/ticket"
	"github.com/lagosinph/ticketstore/internal/mailer"
	"github.com/lagosinph/ticketstore/internal/observability"
	"github.com/lagosinph/ticketstore/internal/paystack"
	"github.com/lagosinph/ticketstore/internal/ticketmail"
)

// WebhookHandler processes Paystack deliveries. Responses are plain text
// because the consumer is the payment processor, not a browser: it only
// looks at the status code.
type WebhookHandler struct {
	secret string
	mailer mailer.Mailer
	from   string
	seen   dedup.Store // nil keeps the resend-on-replay behavior
	prom   *observability.Prom
	log    *slog.Logger
}

func NewWebhookHandler(secret string, m mailer.Mailer, from string, seen dedup.Store, prom *observability.Prom, log *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		secret: secret,
		mailer: m,
		from:   from,
		seen:   seen,
		prom:   prom,
		log:    log,
	}
}

func (h *WebhookHandler) Handle(ctx *gin.Context) {
	body, err := io.ReadAll(ctx.Request.Body)

	if err != nil {
		h.countEvent("unknown", "malformed")
		ctx.String(http.StatusInternalServerError, "Webhook error")
		return
	}

	// fail closed before anything else; a bad signature has no side effects
	sig := ctx.GetHeader(paystack.SignatureHeader)

	if !paystack.ValidSignature(body, h.secret, sig) {
		h.countEvent("unknown", "bad_signature")
		h.log.Warn("webhook signature mismatch")
		ctx.String(http.StatusBadRequest, "Invalid signature")
		return
	}

	ev, err := paystack.ParseEvent(body)

	if err != nil {
		h.countEvent("unknown", "malformed")
		ctx.String(http.StatusBadRequest, "Malformed payload")
		return
	}

	if ev.Event != paystack.EventChargeSuccess {
		h.countEvent(ev.Event, "unhandled")
		ctx.String(http.StatusOK, "Unhandled event type")
		return
	}

	ticketType, err := ev.TicketType()

	if err == nil {
		var qty int
		qty, err = ev.Quantity()

		if err == nil {
			h.deliver(ctx, ev, ticketType, qty)
			return
		}
	}

	h.countEvent(ev.Event, "malformed")
	h.log.Warn("charge.success with unusable metadata", "reference", ev.Data.Reference, "err", err)
	ctx.String(http.StatusBadRequest, "Malformed payload")
}

func (h *WebhookHandler) deliver(ctx *gin.Context, ev paystack.Event, ticketType string, qty int) {
	cat, err := ticket.CategoryFromPayment(ticketType, ev.Data.Amount)

	if err != nil {
		h.countEvent(ev.Event, "malformed")
		h.log.Warn("charge.success for unknown ticket type", "ticket_type", ticketType, "reference", ev.Data.Reference)
		ctx.String(http.StatusBadRequest, "Unknown ticket type")
		return
	}

	// replayed deliveries are a documented possibility with Paystack; with
	// a store wired the reference wins exactly once inside the TTL window
	marked := false

	if h.seen != nil && ev.Data.Reference != "" {
		first, err := h.seen.MarkSeen(ctx.Request.Context(), ev.Data.Reference)

		if err != nil {
			// fail open: a broken store should not block ticket delivery
			h.log.Error("dedup store unavailable", "err", err)
		} else if !first {
			h.countEvent(ev.Event, "duplicate")
			h.log.Info("duplicate webhook delivery ignored", "reference", ev.Data.Reference)
			ctx.String(http.StatusOK, "Duplicate delivery ignored")
			return
		} else {
			marked = true
		}
	}

	_, err = dispatchTicket(ctx.Request.Context(), h.mailer, h.prom, h.from, ev.Data.Email, ticketmail.RenderInput{
		Category:  cat,
		Quantity:  qty,
		Reference: ev.Data.Reference,
	})

	if err != nil {
		// the redelivery must not be swallowed as a duplicate: release the
		// reference so the next attempt for it counts as first again
		if marked {
			if ferr := h.seen.Forget(ctx.Request.Context(), ev.Data.Reference); ferr != nil {
				h.log.Error("dedup rollback failed, redelivery may be dropped", "reference", ev.Data.Reference, "err", ferr)
			}
		}

		if errors.Is(err, ticketmail.ErrAssetNotFound) {
			h.countEvent(ev.Event, "malformed")
			ctx.String(http.StatusBadRequest, "Unknown ticket type")
			return
		}

		h.countEvent(ev.Event, "delivery_failed")
		h.log.Error("webhook ticket email failed", "reference", ev.Data.Reference, "err", err)
		// 500 tells Paystack the delivery failed; it may redeliver at its
		// own discretion, we do not retry internally
		ctx.String(http.StatusInternalServerError, "Email sending failed")
		return
	}

	h.countEvent(ev.Event, "processed")
	h.log.Info("webhook ticket email sent",
		"reference", ev.Data.Reference,
		"ticket_type", cat.Name,
		"quantity", qty,
		"amount_minor", ev.Data.Amount,
	)
	ctx.String(http.StatusOK, "Webhook processed")
}

func (h *WebhookHandler) countEvent(event, outcome string) {
	if h.prom != nil {
		h.prom.WebhookEvents.WithLabelValues(event, outcome).Inc()
	}
}
