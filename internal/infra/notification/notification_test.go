package notification

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"identity/config"
	"identity/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	content, err := render("Acme", service.Notification{
		Kind: service.NotificationVerificationEmail,
		To:   "alice@example.com",
		Name: "Alice <script>",
		Link: "https://app.example.com/verify-email?token=abc",
	}, 24*time.Hour)
	require.NoError(t, err)

	assert.Equal(t, "Verify your email address - Acme", content.Subject)
	assert.Contains(t, content.HTML, "https://app.example.com/verify-email?token=abc")
	assert.Contains(t, content.HTML, "1 day")
	assert.Contains(t, content.HTML, "Alice &lt;script&gt;")

	_, err = render("Acme", service.Notification{Kind: "SMS"}, 0)
	assert.Error(t, err)
}

func TestRender_FallsBackToAddress(t *testing.T) {
	content, err := render("Acme", service.Notification{
		Kind: service.NotificationWelcomeEmail,
		To:   "bob@example.com",
	}, 0)
	require.NoError(t, err)
	assert.Contains(t, content.HTML, "Welcome, bob@example.com!")
}

func TestHumanizeDuration(t *testing.T) {
	tests := map[time.Duration]string{
		0:                  "a short time",
		time.Hour:          "1 hour",
		2 * time.Hour:      "2 hours",
		48 * time.Hour:     "2 days",
		90 * time.Minute:   "90 minutes",
		time.Minute:        "1 minute",
		24 * time.Hour:     "1 day",
		36 * time.Hour:     "36 hours",
		15 * time.Minute:   "15 minutes",
		30 * time.Second:   "1 minute",
		7 * 24 * time.Hour: "7 days",
	}

	for d, want := range tests {
		assert.Equal(t, want, humanizeDuration(d), d.String())
	}
}

func TestNewNotifier_LogsWithoutSMTP(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	notifier, err := NewNotifier(NotifierParams{
		Config: &config.Config{PasswordReset: &config.TicketConfig{TTL: time.Hour}},
		Logger: logger,
	})
	require.NoError(t, err)

	err = notifier.Notify(context.Background(), service.Notification{
		Kind: service.NotificationPasswordResetEmail,
		To:   "carol@example.com",
		Link: "https://app.example.com/reset-password?token=xyz",
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "carol@example.com")
	assert.Contains(t, buf.String(), "reset-password?token=xyz")
}

func TestSMTPNotifier_BuildMessage(t *testing.T) {
	cfg := &config.Config{
		SMTP:         &config.SMTPConfig{Host: "smtp.example.com", Port: 587, From: "noreply@example.com", FromName: "Acme", TLS: true},
		Verification: &config.TicketConfig{TTL: 24 * time.Hour},
	}
	notifier, err := NewNotifier(NotifierParams{Config: cfg, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	require.NoError(t, err)

	smtp, ok := notifier.(*smtpNotifier)
	require.True(t, ok)

	msg, err := smtp.buildMessage(service.Notification{
		Kind: service.NotificationVerificationEmail,
		To:   "dave@example.com",
		Link: "https://app.example.com/verify-email?token=abc",
	})
	require.NoError(t, err)

	var out bytes.Buffer
	_, err = msg.WriteTo(&out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "dave@example.com")
	assert.Contains(t, out.String(), "Verify your email address - Acme")
	assert.Contains(t, out.String(), "text/html")

	_, err = smtp.buildMessage(service.Notification{Kind: service.NotificationWelcomeEmail, To: "not an address"})
	assert.Error(t, err)
}

func TestNewNotifier_RequiresFromAddress(t *testing.T) {
	_, err := NewNotifier(NotifierParams{
		Config: &config.Config{SMTP: &config.SMTPConfig{Host: "smtp.example.com"}},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	assert.Error(t, err)
}
