package paystack

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
)

// SignatureHeader is the header Paystack signs webhook deliveries with.
const SignatureHeader = "x-paystack-signature"

// Sign computes the hex-encoded HMAC-SHA512 of body keyed by secret. This is
// the value Paystack puts in the signature header; tests use it to build
// valid deliveries.
func Sign(body []byte, secret string) string {
	h := hmac.New(sha512.New, []byte(secret))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// ValidSignature reports whether provided matches the HMAC-SHA512 of body
// under secret. The comparison is constant-time so response timing leaks
// nothing about the expected value. Missing header or empty secret never
// validates.
func ValidSignature(body []byte, secret, provided string) bool {
	if secret == "" || provided == "" {
		return false
	}

	expected := Sign(body, secret)

	return hmac.Equal([]byte(expected), []byte(provided))
}
