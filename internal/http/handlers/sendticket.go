package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lagosinph/ticketstore/internal/domain/ticket"
	"github.com/lagosinph/ticketstore/internal/mailer"
	"github.com/lagosinph/ticketstore/internal/observability"
	"github.com/lagosinph/ticketstore/internal/ticketmail"
)

// SendTicketRequest is what the storefront posts right after the payment
// popup's success callback. Quantity defaults to 1 when omitted.
type SendTicketRequest struct {
	Email      string `json:"email" binding:"required,email"`
	TicketType string `json:"ticketType" binding:"required"`
	Quantity   int    `json:"quantity" binding:"omitempty,min=1"`
}

type SendTicketHandler struct {
	mailer mailer.Mailer
	from   string
	prom   *observability.Prom
	log    *slog.Logger
}

func NewSendTicketHandler(m mailer.Mailer, from string, prom *observability.Prom, log *slog.Logger) *SendTicketHandler {
	return &SendTicketHandler{
		mailer: m,
		from:   from,
		prom:   prom,
		log:    log,
	}
}

func (h *SendTicketHandler) SendTicket(ctx *gin.Context) {
	var req SendTicketRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if req.Quantity == 0 {
		req.Quantity = 1
	}

	// everything that can be rejected without touching the network goes first

	cat, err := ticket.CategoryByName(req.TicketType)

	if err != nil {
		RespondError(ctx, http.StatusBadRequest, "unknown_ticket_type", "Invalid ticket type", gin.H{
			"ticketType": req.TicketType,
		})
		return
	}

	// proactive transport check: a broken SMTP config produces a clear
	// error here instead of a mid-send failure
	if err := h.mailer.Verify(ctx.Request.Context()); err != nil {
		h.log.Error("smtp verify failed", "err", err)

		RespondError(ctx, http.StatusInternalServerError, "delivery_failed", "Email service is not properly configured", gin.H{
			"details": "SMTP connection failed",
			"type":    errType(err),
		})
		return
	}

	id, err := dispatchTicket(ctx.Request.Context(), h.mailer, h.prom, h.from, req.Email, ticketmail.RenderInput{
		Category: cat,
		Quantity: req.Quantity,
	})

	if err != nil {
		if errors.Is(err, ticketmail.ErrAssetNotFound) {
			h.log.Error("ticket artwork missing", "ticket_type", req.TicketType)
			RespondInternal(ctx, "Ticket artwork is not available")
			return
		}

		h.log.Error("ticket email failed", "to", req.Email, "err", err)

		RespondError(ctx, http.StatusInternalServerError, "delivery_failed", "Failed to send ticket email", gin.H{
			"details": err.Error(),
			"type":    errType(err),
		})
		return
	}

	h.log.Info("ticket email sent", "to", req.Email, "ticket_type", req.TicketType, "quantity", req.Quantity, "message_id", id)

	ctx.JSON(http.StatusOK, gin.H{
		"success":   true,
		"messageId": id,
	})
}

func errType(err error) string {
	switch {
	case errors.Is(err, mailer.ErrCircuitOpen):
		return "CircuitOpen"
	case errors.Is(err, mailer.ErrRejected):
		return "SendRejected"
	case errors.Is(err, mailer.ErrTransport):
		return "TransportError"
	default:
		return "Unknown"
	}
}
