package paystack

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const EventChargeSuccess = "charge.success"

var ErrMalformedPayload = errors.New("malformed webhook payload")

// Event mirrors the webhook body Paystack delivers. Only the fields the
// ticket flow reads are declared; everything else in the payload is ignored.
// Custom field 0 carries the ticket type label, custom field 1 the quantity.
type Event struct {
	Event string    `json:"event"`
	Data  EventData `json:"data"`
}

type EventData struct {
	Email     string   `json:"email"`
	Amount    int64    `json:"amount"` // minor units (kobo)
	Reference string   `json:"reference"`
	Metadata  Metadata `json:"metadata"`
}

type Metadata struct {
	CustomFields []CustomField `json:"custom_fields"`
}

type CustomField struct {
	Value string `json:"value"`
}

// ParseEvent decodes a raw webhook body. Only called after the signature
// has been verified.
func ParseEvent(body []byte) (Event, error) {
	var ev Event

	if err := json.Unmarshal(body, &ev); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	if ev.Event == "" {
		return Event{}, fmt.Errorf("%w: missing event type", ErrMalformedPayload)
	}

	return ev, nil
}

// TicketType returns the ticket type label carried in custom field 0.
func (e Event) TicketType() (string, error) {
	fields := e.Data.Metadata.CustomFields

	if len(fields) < 1 || strings.TrimSpace(fields[0].Value) == "" {
		return "", fmt.Errorf("%w: missing ticket type metadata", ErrMalformedPayload)
	}

	return fields[0].Value, nil
}

// Quantity returns the purchased quantity carried in custom field 1.
func (e Event) Quantity() (int, error) {
	fields := e.Data.Metadata.CustomFields

	if len(fields) < 2 {
		return 0, fmt.Errorf("%w: missing quantity metadata", ErrMalformedPayload)
	}

	q, err := strconv.Atoi(strings.TrimSpace(fields[1].Value))

	if err != nil || q < 1 {
		return 0, fmt.Errorf("%w: quantity must be a positive integer", ErrMalformedPayload)
	}

	return q, nil
}
