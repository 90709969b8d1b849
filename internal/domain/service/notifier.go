package service

import "context"

// NotificationKind enumerates the emails the service sends.
type NotificationKind string

const (
	NotificationVerificationEmail  NotificationKind = "VERIFICATION_EMAIL"
	NotificationWelcomeEmail       NotificationKind = "WELCOME_EMAIL"
	NotificationPasswordResetEmail NotificationKind = "PASSWORD_RESET_EMAIL"
)

// Notification is one outbound message to an account holder.
type Notification struct {
	Kind NotificationKind
	To   string
	Name string
	Link string // Verification or reset link; empty for welcome emails.
}

// Notifier delivers notifications. Callers never depend on its outcome.
type Notifier interface {
	Notify(ctx context.Context, notification Notification) error
}
