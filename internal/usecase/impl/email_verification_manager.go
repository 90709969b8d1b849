package impl

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"identity/config"
	deliverycontext "identity/internal/delivery/context"
	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/repository"
	"identity/internal/domain/service"
	"identity/internal/errors"
	"identity/internal/usecase"

	"go.uber.org/fx"
)

const defaultVerificationTTL = 24 * time.Hour

type emailVerificationManager struct {
	txManager   repository.TransactionManager
	accountRepo repository.AccountRepository
	ticketRepo  repository.VerificationTicketRepository
	notifier    service.Notifier
	dispatcher  service.Dispatcher
	ttl         time.Duration
	frontendURL string
	now         func() time.Time
	logger      *slog.Logger
}

// EmailVerificationManagerParams holds dependencies for the verification manager, injected by Fx.
type EmailVerificationManagerParams struct {
	fx.In

	TxManager   repository.TransactionManager
	AccountRepo repository.AccountRepository
	TicketRepo  repository.VerificationTicketRepository
	Notifier    service.Notifier
	Dispatcher  service.Dispatcher
	Config      *config.Config
	Logger      *slog.Logger
}

// NewEmailVerificationManager creates the email verification manager.
func NewEmailVerificationManager(params EmailVerificationManagerParams) usecase.EmailVerificationManager {
	ttl := defaultVerificationTTL
	frontendURL := ""
	if params.Config != nil {
		if params.Config.Verification != nil && params.Config.Verification.TTL > 0 {
			ttl = params.Config.Verification.TTL
		}
		frontendURL = params.Config.Frontend.URL
	}

	return &emailVerificationManager{
		txManager:   params.TxManager,
		accountRepo: params.AccountRepo,
		ticketRepo:  params.TicketRepo,
		notifier:    params.Notifier,
		dispatcher:  params.Dispatcher,
		ttl:         ttl,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		now:         time.Now,
		logger:      params.Logger,
	}
}

func (m *emailVerificationManager) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, m.logger)
}

// Issue implements usecase.EmailVerificationManager.
func (m *emailVerificationManager) Issue(ctx context.Context, account *entity.Account) (*usecase.IssueResult, error) {
	if account.EmailVerified {
		return &usecase.IssueResult{AlreadyVerified: true}, nil
	}

	var result *usecase.IssueResult
	err := m.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		result, err = m.IssueWithRepo(ctx, repoFactory, account)

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue verification ticket")
	}

	m.SendVerificationEmail(ctx, account, result)

	return result, nil
}

// IssueWithRepo implements usecase.EmailVerificationManager. The account row is locked
// before the old tickets are deleted, so concurrent issuers for one account run one
// after the other and the last one leaves the only unverified ticket.
func (m *emailVerificationManager) IssueWithRepo(ctx context.Context, repoFactory repository.RepositoryFactory, account *entity.Account) (*usecase.IssueResult, error) {
	locked, err := repoFactory.AccountRepo().LockByID(ctx, account.ID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "verification ticket owner not found")
		}

		return nil, errors.Wrap(err, "failed to lock account")
	}
	if locked.EmailVerified {
		return &usecase.IssueResult{AlreadyVerified: true}, nil
	}

	token, hash, err := newOpaqueToken()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate verification token")
	}

	now := m.now().UTC()
	ticket := &entity.EmailVerificationTicket{
		TokenHash: hash,
		AccountID: account.ID,
		ExpiresAt: now.Add(m.ttl),
		CreatedAt: now,
	}

	ticketRepo := repoFactory.VerificationTicketRepo()
	if _, err := ticketRepo.DeleteUnverifiedByAccountID(ctx, account.ID); err != nil {
		return nil, errors.Wrap(err, "failed to delete previous verification tickets")
	}
	if err := ticketRepo.Create(ctx, ticket); err != nil {
		return nil, errors.Wrap(err, "failed to create verification ticket")
	}
	ticket.Token = token

	return &usecase.IssueResult{Ticket: ticket}, nil
}

// SendVerificationEmail implements usecase.EmailVerificationManager.
func (m *emailVerificationManager) SendVerificationEmail(ctx context.Context, account *entity.Account, result *usecase.IssueResult) {
	if result == nil || result.AlreadyVerified || result.Ticket == nil {
		return
	}

	m.notify(ctx, service.Notification{
		Kind: service.NotificationVerificationEmail,
		To:   account.Email,
		Name: account.DisplayName(),
		Link: m.link("/verify-email", result.Ticket.Token),
	})

	m.log(ctx).Info("Verification ticket issued", slog.Any("accountID", account.ID), slog.Time("expiresAt", result.Ticket.ExpiresAt))
}

// Resend implements usecase.EmailVerificationManager.
func (m *emailVerificationManager) Resend(ctx context.Context, email string) (*usecase.IssueResult, error) {
	account, err := m.accountRepo.FindByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "no account for email")
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	return m.Issue(ctx, account)
}

// Consume implements usecase.EmailVerificationManager.
func (m *emailVerificationManager) Consume(ctx context.Context, token string) (*usecase.ConsumeResult, error) {
	now := m.now().UTC()
	hash := hashOpaqueToken(token)

	var account *entity.Account
	result := &usecase.ConsumeResult{}
	err := m.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		ticketRepo := repoFactory.VerificationTicketRepo()
		accountRepo := repoFactory.AccountRepo()

		ticket, err := ticketRepo.FindByTokenHash(ctx, hash)
		if err != nil {
			if errors.Is(err, repository.ErrVerificationTicketNotFound) {
				return errors.Wrap(domainerrors.ErrTokenInvalid, "verification token not found")
			}

			return errors.Wrap(err, "failed to find verification ticket")
		}

		if ticket.IsExpired(now) {
			return errors.Wrap(domainerrors.ErrTokenExpired, "verification token expired")
		}

		account, err = accountRepo.FindByID(ctx, ticket.AccountID)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return errors.Wrap(domainerrors.ErrTokenInvalid, "verification ticket owner not found")
			}

			return errors.Wrap(err, "failed to load verification ticket owner")
		}
		result.AccountID = account.ID
		result.Email = account.Email

		if ticket.IsVerified() {
			result.AlreadyVerified = true

			return nil
		}

		marked, err := ticketRepo.MarkVerified(ctx, ticket.ID, now)
		if err != nil {
			return errors.Wrap(err, "failed to mark verification ticket")
		}
		if !marked {
			// A concurrent consume won the conditional update.
			result.AlreadyVerified = true

			return nil
		}

		if err := accountRepo.MarkEmailVerified(ctx, account.ID); err != nil {
			return errors.Wrap(err, "failed to mark email verified")
		}
		account.EmailVerified = true

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to consume verification token")
	}

	if result.AlreadyVerified {
		m.log(ctx).Debug("Verification token already consumed", slog.Any("accountID", result.AccountID))

		return result, nil
	}

	m.notify(ctx, service.Notification{
		Kind: service.NotificationWelcomeEmail,
		To:   account.Email,
		Name: account.DisplayName(),
	})

	m.log(ctx).Info("Email verified", slog.Any("accountID", account.ID))

	return result, nil
}

// Status implements usecase.EmailVerificationManager.
func (m *emailVerificationManager) Status(ctx context.Context, email string) (*usecase.VerificationStatus, error) {
	account, err := m.accountRepo.FindByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "no account for email")
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	status := &usecase.VerificationStatus{
		Email:         account.Email,
		EmailVerified: account.EmailVerified,
	}
	if account.EmailVerified {
		return status, nil
	}

	pending, err := m.ticketRepo.HasPendingByAccountID(ctx, account.ID, m.now().UTC())
	if err != nil {
		return nil, errors.Wrap(err, "failed to check pending verification tickets")
	}
	status.HasPendingTicket = pending

	return status, nil
}

// SweepExpired implements usecase.EmailVerificationManager.
func (m *emailVerificationManager) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	count, err := m.ticketRepo.DeleteExpired(ctx, now.UTC())
	if err != nil {
		return 0, errors.Wrap(err, "failed to delete expired verification tickets")
	}

	return count, nil
}

func (m *emailVerificationManager) link(path, token string) string {
	return m.frontendURL + path + "?token=" + url.QueryEscape(token)
}

func (m *emailVerificationManager) notify(ctx context.Context, notification service.Notification) {
	dispatchNotification(m.dispatcher, m.notifier, m.log(ctx), notification)
}

// dispatchNotification hands a notification to the background dispatcher.
// The caller never observes the delivery outcome.
func dispatchNotification(dispatcher service.Dispatcher, notifier service.Notifier, logger *slog.Logger, notification service.Notification) {
	dispatcher.Go("notify:"+string(notification.Kind), func(taskCtx context.Context) error {
		if err := notifier.Notify(deliverycontext.WithLogger(taskCtx, logger), notification); err != nil {
			return errors.Wrapf(err, "failed to send %s", notification.Kind)
		}

		return nil
	})
}
