package paystack_test

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"testing"

	"github.com/lagosinph/ticketstore/internal/paystack"
)

func TestValidSignature(t *testing.T) {
	body := []byte(`{"event":"charge.success"}`)
	secret := "sk_test_abc123"

	h := hmac.New(sha512.New, []byte(secret))
	h.Write(body)
	good := hex.EncodeToString(h.Sum(nil))

	tests := []struct {
		name     string
		body     []byte
		secret   string
		provided string
		want     bool
	}{
		{name: "matching signature", body: body, secret: secret, provided: good, want: true},
		{name: "wrong signature", body: body, secret: secret, provided: "deadbeef", want: false},
		{name: "signature for different body", body: []byte(`{}`), secret: secret, provided: good, want: false},
		{name: "signature under different secret", body: body, secret: "sk_test_other", provided: good, want: false},
		{name: "missing signature header", body: body, secret: secret, provided: "", want: false},
		{name: "empty secret never validates", body: body, secret: "", provided: good, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := paystack.ValidSignature(tt.body, tt.secret, tt.provided)

			if got != tt.want {
				t.Fatalf("ValidSignature() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSignRoundTrips(t *testing.T) {
	body := []byte("any body at all")

	sig := paystack.Sign(body, "secret")

	if !paystack.ValidSignature(body, "secret", sig) {
		t.Fatal("signature produced by Sign should validate")
	}
}
