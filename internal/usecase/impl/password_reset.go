package impl

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/repository"
	"identity/internal/domain/service"
	"identity/internal/errors"
)

// RequestPasswordReset emails a reset link to password accounts. It answers the same
// way whether or not the email is registered.
func (a *identityAuthority) RequestPasswordReset(ctx context.Context, email string) error {
	email = entity.NormalizeEmail(email)

	account, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			a.log(ctx).Info("Password reset requested for unknown email")

			return nil
		}

		return errors.Wrap(err, "failed to find account by email")
	}
	if !account.HasPassword() {
		a.log(ctx).Info("Password reset requested for account without password", slog.Any("accountID", account.ID))

		return nil
	}

	token, hash, err := newOpaqueToken()
	if err != nil {
		return errors.Wrap(err, "failed to generate password reset token")
	}

	now := a.now().UTC()
	ticket := &entity.PasswordResetTicket{
		TokenHash: hash,
		AccountID: account.ID,
		ExpiresAt: now.Add(a.resetTTL),
		CreatedAt: now,
	}
	err = a.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		// Concurrent requests for the same account queue on the account row.
		if _, err := repoFactory.AccountRepo().LockByID(ctx, account.ID); err != nil {
			return translateAccountErr(err, "failed to lock account")
		}

		resetRepo := repoFactory.PasswordResetRepo()
		if _, err := resetRepo.DeleteUnusedByAccountID(ctx, account.ID); err != nil {
			return errors.Wrap(err, "failed to delete previous password reset tickets")
		}
		if err := resetRepo.Create(ctx, ticket); err != nil {
			return errors.Wrap(err, "failed to create password reset ticket")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to issue password reset ticket")
	}

	dispatchNotification(a.dispatcher, a.notifier, a.log(ctx), service.Notification{
		Kind: service.NotificationPasswordResetEmail,
		To:   account.Email,
		Name: account.DisplayName(),
		Link: a.frontendURL + "/reset-password?token=" + url.QueryEscape(token),
	})
	a.log(ctx).Info("Password reset ticket issued", slog.Any("accountID", account.ID))

	return nil
}

// ConfirmPasswordReset redeems a reset token and replaces the password.
func (a *identityAuthority) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	ticket, err := a.resetRepo.FindByTokenHash(ctx, hashOpaqueToken(token))
	if err != nil {
		if errors.Is(err, repository.ErrPasswordResetTicketNotFound) {
			return errors.Wrap(domainerrors.ErrTokenInvalid, "password reset token not found")
		}

		return errors.Wrap(err, "failed to find password reset ticket")
	}

	now := a.now().UTC()
	if ticket.IsExpired(now) {
		return errors.Wrap(domainerrors.ErrTokenExpired, "password reset token expired")
	}
	if ticket.IsUsed() {
		return errors.Wrap(domainerrors.ErrTokenRevoked, "password reset token already used")
	}

	account, err := a.GetAccount(ctx, ticket.AccountID)
	if err != nil {
		return err
	}

	return a.replacePassword(ctx, account, newPassword, func(repoFactory repository.RepositoryFactory) error {
		marked, err := repoFactory.PasswordResetRepo().MarkUsed(ctx, ticket.ID, now)
		if err != nil {
			return errors.Wrap(err, "failed to mark password reset ticket used")
		}
		if !marked {
			return errors.Wrap(domainerrors.ErrTokenRevoked, "password reset token already used")
		}

		return nil
	})
}

// SweepExpiredPasswordResets deletes reset tickets past their expiry.
func (a *identityAuthority) SweepExpiredPasswordResets(ctx context.Context, now time.Time) (int64, error) {
	count, err := a.resetRepo.DeleteExpired(ctx, now.UTC())
	if err != nil {
		return 0, errors.Wrap(err, "failed to delete expired password reset tickets")
	}

	return count, nil
}
