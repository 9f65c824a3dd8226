package ticketmail

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/lagosinph/ticketstore/internal/domain/ticket"
	"github.com/lagosinph/ticketstore/internal/mailer"
)

//go:embed assets/*.svg
var assets embed.FS

// artwork maps a catalog name to its embedded asset. Embedding keeps the
// renderer independent of any filesystem layout at send time.
var artwork = map[string]string{
	ticket.NameRavers:    "assets/ravers-ticket.svg",
	ticket.NameGengOfSix: "assets/geng-ticket.svg",
}

var ErrAssetNotFound = errors.New("ticket artwork not found")

const (
	eventName  = "Lagos in Port Harcourt"
	eventDate  = "19th of May 2025"
	eventVenue = "Port Harcourt, Rivers State"
)

type RenderInput struct {
	Category  ticket.Category
	Quantity  int
	Reference string // payment reference, empty on the direct send path
}

// Content is everything the dispatcher needs for one ticket email.
type Content struct {
	Subject    string
	HTML       string
	Attachment mailer.Attachment
}

// Render produces the subject, HTML body and artwork attachment for a ticket
// email. Unknown categories and missing artwork fail here, before any mail
// connection is opened.
func Render(in RenderInput) (Content, error) {
	if _, err := ticket.CategoryByName(in.Category.Name); err != nil {
		return Content{}, err
	}

	path, ok := artwork[in.Category.Name]

	if !ok {
		return Content{}, fmt.Errorf("%w: %s", ErrAssetNotFound, in.Category.Name)
	}

	art, err := assets.ReadFile(path)

	if err != nil {
		return Content{}, fmt.Errorf("%w: %s", ErrAssetNotFound, path)
	}

	ticketName := in.Category.Name + " Ticket"

	plural := ""
	if in.Quantity > 1 {
		plural = "s"
	}

	entrance := fmt.Sprintf("Please present this ticket%s at the event entrance.", plural)
	if in.Quantity > 1 {
		entrance = "Please present one of these tickets at the event entrance."
	}

	var b strings.Builder
	b.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">`)
	b.WriteString(`<h1 style="color: #067976; text-align: center;">Thank You for Your Purchase!</h1>`)
	b.WriteString(`<p>Dear Customer,</p>`)
	fmt.Fprintf(&b, `<p>Thank you for purchasing %d %s%s for %s.</p>`, in.Quantity, ticketName, plural, eventName)
	fmt.Fprintf(&b, `<p>Please find your ticket%s attached to this email.</p>`, plural)
	b.WriteString(`<p>Important Information:</p><ul>`)
	fmt.Fprintf(&b, `<li>Event: %s</li>`, eventName)
	fmt.Fprintf(&b, `<li>Date: %s</li>`, eventDate)
	fmt.Fprintf(&b, `<li>Location: %s</li>`, eventVenue)
	fmt.Fprintf(&b, `<li>Ticket Type: %s</li>`, in.Category.Name)
	fmt.Fprintf(&b, `<li>Quantity: %d</li>`, in.Quantity)
	if in.Reference != "" {
		fmt.Fprintf(&b, `<li>Reference: %s</li>`, in.Reference)
	}
	b.WriteString(`</ul>`)
	fmt.Fprintf(&b, `<p>%s</p>`, entrance)
	b.WriteString(`<p>We look forward to seeing you at the event!</p>`)
	fmt.Fprintf(&b, `<p style="margin-top: 20px; text-align: center; color: #067976; font-weight: bold;">%s Team</p>`, eventName)
	b.WriteString(`</div>`)

	return Content{
		Subject: fmt.Sprintf("Your %s for %s", ticketName, eventName),
		HTML:    b.String(),
		Attachment: mailer.Attachment{
			Filename: ticket.Slug(ticketName) + ".svg",
			Content:  art,
			MIME:     "image/svg+xml",
		},
	}, nil
}
