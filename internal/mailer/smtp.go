package mailer

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	SSL      bool
	From     string
}

// SMTPMailer dispatches through a plain SMTP server using gomail. The dialer
// is cheap to keep around; every Send opens its own connection, so concurrent
// sends do not share state.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.SSL = cfg.SSL

	return &SMTPMailer{
		dialer: d,
		from:   cfg.From,
	}
}

// Verify dials and authenticates without sending, so a broken configuration
// surfaces as a clear error instead of a mid-send failure.
func (m *SMTPMailer) Verify(ctx context.Context) error {
	type dialResult struct {
		closer gomail.SendCloser
		err    error
	}

	ch := make(chan dialResult, 1)

	go func() {
		sc, err := m.dialer.Dial()
		ch <- dialResult{closer: sc, err: err}
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrTransport, ctx.Err())
	case res := <-ch:
		if res.err != nil {
			return fmt.Errorf("%w: %v", ErrTransport, res.err)
		}
		_ = res.closer.Close()
		return nil
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) (string, error) {
	from := msg.From

	if from == "" {
		from = m.from
	}

	id := fmt.Sprintf("<%s@%s>", uuid.NewString(), m.dialer.Host)

	gm := gomail.NewMessage()
	gm.SetHeader("From", from)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetHeader("Message-ID", id)
	gm.SetBody("text/html", msg.HTML)

	for _, att := range msg.Attachments {
		content := att.Content

		settings := []gomail.FileSetting{
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(content)
				return err
			}),
		}

		if att.MIME != "" {
			settings = append(settings, gomail.SetHeader(map[string][]string{
				"Content-Type": {att.MIME},
			}))
		}

		gm.Attach(att.Filename, settings...)
	}

	// gomail has no context support, so the blocking dial+send runs on its
	// own goroutine and the deadline is enforced here.
	errCh := make(chan error, 1)

	go func() {
		sc, err := m.dialer.Dial()

		if err != nil {
			errCh <- fmt.Errorf("%w: %v", ErrTransport, err)
			return
		}

		defer sc.Close()

		if err := gomail.Send(sc, gm); err != nil {
			errCh <- fmt.Errorf("%w: %v", ErrRejected, err)
			return
		}

		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %v", ErrTransport, ctx.Err())
	case err := <-errCh:
		if err != nil {
			return "", err
		}
		return id, nil
	}
}
