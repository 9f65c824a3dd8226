package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lagosinph/ticketstore/internal/http/handlers"
	"github.com/lagosinph/ticketstore/internal/mailer"
)

// Make sure Gin does not spam the console during the test

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Fake mailer with function fields, shared by every handler test here

type fakeMailer struct {
	sendFn   func(ctx context.Context, msg mailer.Message) (string, error)
	verifyFn func(ctx context.Context) error

	sent []mailer.Message
}

func (f *fakeMailer) Send(ctx context.Context, msg mailer.Message) (string, error) {
	f.sent = append(f.sent, msg)
	if f.sendFn != nil {
		return f.sendFn(ctx, msg)
	}
	return "<id@test>", nil
}

func (f *fakeMailer) Verify(ctx context.Context) error {
	if f.verifyFn != nil {
		return f.verifyFn(ctx)
	}
	return nil
}

// small helper function which returns the gin engine to mount one handler per test

func setupRouter(method, path string, h gin.HandlerFunc) *gin.Engine {
	r := gin.New()

	r.Handle(method, path, h)

	return r
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestSendTicketHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		sendErr    error
		verifyErr  error
		wantStatus int
		wantCode   string
		wantSends  int
	}{
		{
			name:       "valid request sends exactly one email",
			body:       `{"email":"a@b.com","ticketType":"RAVERS","quantity":2}`,
			wantStatus: http.StatusOK,
			wantSends:  1,
		},
		{
			name:       "quantity defaults to one",
			body:       `{"email":"a@b.com","ticketType":"GENG OF SIX"}`,
			wantStatus: http.StatusOK,
			wantSends:  1,
		},
		{
			name:       "unknown ticket type is rejected before any send",
			body:       `{"email":"a@b.com","ticketType":"VIP","quantity":1}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "unknown_ticket_type",
			wantSends:  0,
		},
		{
			name:       "malformed email is rejected before any send",
			body:       `{"email":"bad","ticketType":"RAVERS","quantity":1}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_request",
			wantSends:  0,
		},
		{
			name:       "email without domain dot is rejected",
			body:       `{"email":"a@b","ticketType":"RAVERS","quantity":1}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_request",
			wantSends:  0,
		},
		{
			name:       "missing fields are rejected",
			body:       `{"quantity":1}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_request",
			wantSends:  0,
		},
		{
			// zero is indistinguishable from an omitted quantity after
			// decoding, so it takes the same default
			name:       "explicit zero quantity is treated as one",
			body:       `{"email":"a@b.com","ticketType":"RAVERS","quantity":0}`,
			wantStatus: http.StatusOK,
			wantSends:  1,
		},
		{
			name:       "negative quantity is rejected",
			body:       `{"email":"a@b.com","ticketType":"RAVERS","quantity":-1}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_request",
			wantSends:  0,
		},
		{
			name:       "transport failure surfaces as delivery error",
			body:       `{"email":"a@b.com","ticketType":"RAVERS","quantity":1}`,
			sendErr:    mailer.ErrTransport,
			wantStatus: http.StatusInternalServerError,
			wantCode:   "delivery_failed",
			wantSends:  1,
		},
		{
			name:       "failed smtp verify stops before the send",
			body:       `{"email":"a@b.com","ticketType":"RAVERS","quantity":1}`,
			verifyErr:  mailer.ErrTransport,
			wantStatus: http.StatusInternalServerError,
			wantCode:   "delivery_failed",
			wantSends:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm := &fakeMailer{}

			if tt.sendErr != nil {
				fm.sendFn = func(context.Context, mailer.Message) (string, error) {
					return "", tt.sendErr
				}
			}
			if tt.verifyErr != nil {
				fm.verifyFn = func(context.Context) error {
					return tt.verifyErr
				}
			}

			h := handlers.NewSendTicketHandler(fm, "tickets@lagosinph.com", nil, discardLogger())
			r := setupRouter(http.MethodPost, "/api/send-ticket", h.SendTicket)

			req := httptest.NewRequest(http.MethodPost, "/api/send-ticket", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d, body=%s", w.Code, tt.wantStatus, w.Body.String())
			}

			if len(fm.sent) != tt.wantSends {
				t.Fatalf("mailer calls = %d, want %d", len(fm.sent), tt.wantSends)
			}

			if tt.wantCode != "" {
				var resp errorEnvelope
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("unmarshal error response: %v body=%s", err, w.Body.String())
				}
				if resp.Error.Code != tt.wantCode {
					t.Fatalf("error code = %q, want %q", resp.Error.Code, tt.wantCode)
				}
			}
		})
	}
}

func TestSendTicketMessageContent(t *testing.T) {
	fm := &fakeMailer{}

	h := handlers.NewSendTicketHandler(fm, "tickets@lagosinph.com", nil, discardLogger())
	r := setupRouter(http.MethodPost, "/api/send-ticket", h.SendTicket)

	body := `{"email":"a@b.com","ticketType":"RAVERS","quantity":2}`
	req := httptest.NewRequest(http.MethodPost, "/api/send-ticket", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", w.Code, w.Body.String())
	}

	if len(fm.sent) != 1 {
		t.Fatalf("mailer calls = %d, want 1", len(fm.sent))
	}

	msg := fm.sent[0]

	if msg.To != "a@b.com" {
		t.Fatalf("to = %q", msg.To)
	}
	if msg.From != "tickets@lagosinph.com" {
		t.Fatalf("from = %q", msg.From)
	}
	if !strings.Contains(msg.Subject, "RAVERS Ticket") {
		t.Fatalf("subject = %q", msg.Subject)
	}
	if !strings.Contains(msg.HTML, "2 RAVERS Tickets") {
		t.Fatal("body should use plural phrasing for quantity 2")
	}
	if len(msg.Attachments) != 1 {
		t.Fatalf("attachments = %d, want 1", len(msg.Attachments))
	}
	if !strings.HasPrefix(msg.Attachments[0].Filename, "ravers-ticket.") {
		t.Fatalf("attachment = %q, want ravers-ticket.*", msg.Attachments[0].Filename)
	}
}
