package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/lagosinph/ticketstore/internal/mailer"
	"github.com/lagosinph/ticketstore/internal/observability"
	"github.com/lagosinph/ticketstore/internal/ticketmail"
)

// dispatchTicket renders the ticket email and hands it to the mailer,
// recording the outcome. Rendering failures surface before any connection
// is opened.
func dispatchTicket(ctx context.Context, m mailer.Mailer, prom *observability.Prom, from, to string, in ticketmail.RenderInput) (string, error) {
	content, err := ticketmail.Render(in)

	if err != nil {
		return "", err
	}

	start := time.Now()

	id, err := m.Send(ctx, mailer.Message{
		From:        from,
		To:          to,
		Subject:     content.Subject,
		HTML:        content.HTML,
		Attachments: []mailer.Attachment{content.Attachment},
	})

	if prom != nil {
		prom.ObserveMailSend(mailResult(err), time.Since(start))
	}

	return id, err
}

func mailResult(err error) string {
	switch {
	case err == nil:
		return "sent"
	case errors.Is(err, mailer.ErrCircuitOpen):
		return "circuit_open"
	case errors.Is(err, mailer.ErrRejected):
		return "rejected"
	default:
		return "transport_error"
	}
}
