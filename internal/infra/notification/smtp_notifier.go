// Package notification delivers account emails over SMTP.
package notification

import (
	"context"
	"log/slog"
	"time"

	"identity/config"
	"identity/internal/domain/service"
	"identity/internal/errors"

	"github.com/wneessen/go-mail"
)

const defaultProduct = "Identity"

// smtpNotifier sends HTML emails through an SMTP relay using go-mail.
type smtpNotifier struct {
	cfg     *config.SMTPConfig
	product string
	ttls    map[service.NotificationKind]time.Duration
	logger  *slog.Logger
}

func newSMTPNotifier(cfg *config.Config, logger *slog.Logger) (*smtpNotifier, error) {
	if cfg.SMTP.From == "" {
		return nil, errors.New("SMTP from address is required")
	}

	return &smtpNotifier{
		cfg:     cfg.SMTP,
		product: productName(cfg),
		ttls:    ticketTTLs(cfg),
		logger:  logger,
	}, nil
}

// Notify implements service.Notifier.
func (n *smtpNotifier) Notify(ctx context.Context, notification service.Notification) error {
	msg, err := n.buildMessage(notification)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(n.cfg.Host, n.clientOptions()...)
	if err != nil {
		return errors.Wrap(err, "creating mail client")
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return errors.Wrapf(err, "sending %s", notification.Kind)
	}

	n.logger.Info("Email sent",
		slog.String("kind", string(notification.Kind)),
		slog.String("to", notification.To),
	)

	return nil
}

func (n *smtpNotifier) buildMessage(notification service.Notification) (*mail.Msg, error) {
	content, err := render(n.product, notification, n.ttls[notification.Kind])
	if err != nil {
		return nil, err
	}

	msg := mail.NewMsg()
	if n.cfg.FromName != "" {
		if err := msg.FromFormat(n.cfg.FromName, n.cfg.From); err != nil {
			return nil, errors.Wrap(err, "setting from address")
		}
	} else {
		if err := msg.From(n.cfg.From); err != nil {
			return nil, errors.Wrap(err, "setting from address")
		}
	}

	if err := msg.To(notification.To); err != nil {
		return nil, errors.Wrap(err, "setting to address")
	}

	msg.Subject(content.Subject)
	msg.SetBodyString(mail.TypeTextHTML, content.HTML)

	return msg, nil
}

func (n *smtpNotifier) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(n.cfg.Port),
	}

	// Implicit TLS on 465, STARTTLS elsewhere
	if n.cfg.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
		if n.cfg.Port == 465 {
			opts = append(opts, mail.WithSSL())
		}
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	if n.cfg.Username != "" && n.cfg.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(n.cfg.Username),
			mail.WithPassword(n.cfg.Password),
		)
	}

	return opts
}

func productName(cfg *config.Config) string {
	if cfg.SMTP != nil && cfg.SMTP.FromName != "" {
		return cfg.SMTP.FromName
	}
	if cfg.Env.ServiceName != "" {
		return cfg.Env.ServiceName
	}

	return defaultProduct
}

func ticketTTLs(cfg *config.Config) map[service.NotificationKind]time.Duration {
	ttls := make(map[service.NotificationKind]time.Duration, 2)
	if cfg.Verification != nil {
		ttls[service.NotificationVerificationEmail] = cfg.Verification.TTL
	}
	if cfg.PasswordReset != nil {
		ttls[service.NotificationPasswordResetEmail] = cfg.PasswordReset.TTL
	}

	return ttls
}
