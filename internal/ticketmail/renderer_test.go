package ticketmail_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/lagosinph/ticketstore/internal/domain/ticket"
	"github.com/lagosinph/ticketstore/internal/ticketmail"
)

func mustCategory(t *testing.T, name string) ticket.Category {
	t.Helper()

	cat, err := ticket.CategoryByName(name)
	if err != nil {
		t.Fatalf("category %q: %v", name, err)
	}
	return cat
}

func TestRenderRaversPlural(t *testing.T) {
	content, err := ticketmail.Render(ticketmail.RenderInput{
		Category: mustCategory(t, "RAVERS"),
		Quantity: 2,
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(content.Subject, "RAVERS Ticket") {
		t.Fatalf("subject %q should mention the ticket name", content.Subject)
	}

	if !strings.Contains(content.HTML, "2 RAVERS Tickets") {
		t.Fatalf("body should use plural phrasing, got: %s", content.HTML)
	}

	if !strings.HasPrefix(content.Attachment.Filename, "ravers-ticket.") {
		t.Fatalf("attachment = %q, want ravers-ticket.*", content.Attachment.Filename)
	}

	if len(content.Attachment.Content) == 0 {
		t.Fatal("attachment content must not be empty")
	}
}

func TestRenderSingular(t *testing.T) {
	content, err := ticketmail.Render(ticketmail.RenderInput{
		Category: mustCategory(t, "GENG OF SIX"),
		Quantity: 1,
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(content.HTML, "1 GENG OF SIX Ticket for") {
		t.Fatalf("body should use singular phrasing, got: %s", content.HTML)
	}

	if strings.Contains(content.HTML, "Tickets for") {
		t.Fatal("singular render must not pluralize the ticket name")
	}

	if content.Attachment.Filename != "geng-of-six-ticket.svg" {
		t.Fatalf("attachment = %q", content.Attachment.Filename)
	}
}

func TestRenderIncludesReference(t *testing.T) {
	content, err := ticketmail.Render(ticketmail.RenderInput{
		Category:  mustCategory(t, "RAVERS"),
		Quantity:  1,
		Reference: "ref-42",
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(content.HTML, "ref-42") {
		t.Fatal("body should carry the payment reference when present")
	}
}

func TestRenderUnknownCategory(t *testing.T) {
	_, err := ticketmail.Render(ticketmail.RenderInput{
		Category: ticket.Category{ID: "vip", Name: "VIP"},
		Quantity: 1,
	})

	if !errors.Is(err, ticket.ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
}
