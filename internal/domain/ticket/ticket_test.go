package ticket_test

import (
	"errors"
	"testing"

	"github.com/lagosinph/ticketstore/internal/domain/ticket"
)

func TestCategoryByName(t *testing.T) {
	tests := []struct {
		name    string
		lookup  string
		wantID  string
		wantErr bool
	}{
		{name: "ravers", lookup: "RAVERS", wantID: "ravers"},
		{name: "geng of six", lookup: "GENG OF SIX", wantID: "geng-of-six"},
		{name: "unknown type", lookup: "VIP", wantErr: true},
		{name: "wrong case is not a match", lookup: "ravers", wantErr: true},
		{name: "empty", lookup: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, err := ticket.CategoryByName(tt.lookup)

			if tt.wantErr {
				if !errors.Is(err, ticket.ErrUnknownType) {
					t.Fatalf("expected ErrUnknownType, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if cat.ID != tt.wantID {
				t.Fatalf("id = %q, want %q", cat.ID, tt.wantID)
			}

			if cat.Price <= 0 {
				t.Fatalf("price must be positive, got %d", cat.Price)
			}
		})
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "RAVERS", want: "ravers"},
		{in: "GENG OF SIX", want: "geng-of-six"},
		{in: "GENG  OF   SIX", want: "geng-of-six"},
		{in: "RAVERS Ticket", want: "ravers-ticket"},
	}

	for _, tt := range tests {
		if got := ticket.Slug(tt.in); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCategoryFromPayment(t *testing.T) {
	// 10,000,000 kobo -> ₦100,000 (the GENG OF SIX charge for quantity 1)
	cat, err := ticket.CategoryFromPayment("GENG OF SIX", 10000000)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cat.Price != 100000 {
		t.Fatalf("price = %d, want 100000", cat.Price)
	}

	if cat.ID != "geng-of-six" {
		t.Fatalf("id = %q", cat.ID)
	}

	if _, err := ticket.CategoryFromPayment("UNKNOWN", 100); !errors.Is(err, ticket.ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
}

func TestCatalogIsACopy(t *testing.T) {
	first := ticket.Catalog()
	first[0].Price = 1

	second := ticket.Catalog()

	if second[0].Price == 1 {
		t.Fatal("mutating the returned catalog must not affect the fixed one")
	}
}
