package notification

import (
	"context"
	"log/slog"
	"time"

	"identity/internal/domain/service"
)

// logNotifier renders emails and logs them instead of sending. Used when SMTP is not configured.
type logNotifier struct {
	product string
	ttls    map[service.NotificationKind]time.Duration
	logger  *slog.Logger
}

// Notify implements service.Notifier.
func (n *logNotifier) Notify(ctx context.Context, notification service.Notification) error {
	content, err := render(n.product, notification, n.ttls[notification.Kind])
	if err != nil {
		return err
	}

	n.logger.InfoContext(ctx, "Email delivery disabled, logging message",
		slog.String("kind", string(notification.Kind)),
		slog.String("to", notification.To),
		slog.String("subject", content.Subject),
		slog.String("link", notification.Link),
	)

	return nil
}
