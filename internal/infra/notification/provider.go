package notification

import (
	"log/slog"

	"identity/config"
	"identity/internal/domain/service"

	"go.uber.org/fx"
)

// NotifierParams holds dependencies for Notifier, injected by Fx
type NotifierParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewNotifier returns an SMTP notifier when a host is configured, otherwise one that only logs.
func NewNotifier(params NotifierParams) (service.Notifier, error) {
	cfg := params.Config
	if cfg.SMTP == nil || cfg.SMTP.Host == "" {
		params.Logger.Warn("SMTP not configured, emails will only be logged")

		return &logNotifier{
			product: productName(cfg),
			ttls:    ticketTTLs(cfg),
			logger:  params.Logger,
		}, nil
	}

	params.Logger.Info("Using SMTP notifier",
		slog.String("host", cfg.SMTP.Host),
		slog.Int("port", cfg.SMTP.Port),
	)

	return newSMTPNotifier(cfg, params.Logger)
}
