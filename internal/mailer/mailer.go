package mailer

import (
	"context"
	"errors"
)

var (
	// ErrTransport covers dial, auth and timeout failures before the
	// message is handed to the server.
	ErrTransport = errors.New("mail transport failure")
	// ErrRejected means the server took the connection but refused the
	// message or a recipient.
	ErrRejected = errors.New("message rejected by server")
)

type Attachment struct {
	Filename string
	Content  []byte
	MIME     string
}

// Message is built once per request, sent once and discarded.
type Message struct {
	From        string
	To          string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Mailer sends one message per call. A single attempt, no retries; retry
// policy belongs to the caller. Send returns the generated message id.
type Mailer interface {
	Send(ctx context.Context, msg Message) (string, error)
	Verify(ctx context.Context) error
}
