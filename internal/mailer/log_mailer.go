package mailer

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// LogMailer is the dev/test sink: it logs the message instead of sending it.
type LogMailer struct{}

func NewLogMailer() *LogMailer { return &LogMailer{} }

func (m *LogMailer) Verify(ctx context.Context) error {
	if os.Getenv("MAILER_FAIL") == "1" {
		return fmt.Errorf("%w: provider down (simulated)", ErrTransport)
	}
	return nil
}

func (m *LogMailer) Send(ctx context.Context, msg Message) (string, error) {
	// Optional: simulate slow provider
	if msStr := os.Getenv("MAILER_SLEEP_MS"); msStr != "" {
		ms, _ := strconv.Atoi(msStr)
		if ms > 0 {
			select {
			case <-time.After(time.Duration(ms) * time.Millisecond):
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %v", ErrTransport, ctx.Err())
			}
		}
	}

	// Optional: simulate provider outage
	if os.Getenv("MAILER_FAIL") == "1" {
		return "", fmt.Errorf("%w: provider down (simulated)", ErrTransport)
	}

	id := fmt.Sprintf("<%s@log>", uuid.NewString())

	log.Printf("mail.send to=%s subject=%q attachments=%d id=%s",
		msg.To, msg.Subject, len(msg.Attachments), id,
	)
	return id, nil
}
