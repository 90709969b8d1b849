package impl

import (
	"context"
	"log/slog"

	"identity/internal/domain/constants"
	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/repository"
	"identity/internal/errors"
	"identity/internal/usecase"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ResetPassword sets a new password on behalf of an administrator.
func (a *identityAuthority) ResetPassword(ctx context.Context, accountID uuid.UUID, newPassword string) error {
	account, err := a.GetAccount(ctx, accountID)
	if err != nil {
		return err
	}

	return a.replacePassword(ctx, account, newPassword, nil)
}

// ChangePassword replaces the password after checking the current one.
func (a *identityAuthority) ChangePassword(ctx context.Context, input *usecase.ChangePasswordInput) error {
	account, err := a.GetAccount(ctx, input.AccountID)
	if err != nil {
		return err
	}

	if !account.HasPassword() || !a.hasher.Check(input.CurrentPassword, account.PasswordHash) {
		a.log(ctx).Warn("Password change rejected: current password mismatch", slog.Any("accountID", account.ID))

		return errors.Wrap(domainerrors.ErrInvalidCredentials, "current password mismatch")
	}

	return a.replacePassword(ctx, account, input.NewPassword, nil)
}

// replacePassword updates the hash and revokes every session in one transaction.
// before runs first inside the same transaction when set.
func (a *identityAuthority) replacePassword(
	ctx context.Context,
	account *entity.Account,
	newPassword string,
	before func(repoFactory repository.RepositoryFactory) error,
) error {
	if err := a.hasher.ValidatePasswordStrength(newPassword); err != nil {
		return errors.Wrap(err, "new password does not meet security requirements")
	}

	passwordHash, err := a.hasher.Hash(newPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash new password")
	}

	now := a.now().UTC()
	var revoked int64
	err = a.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if before != nil {
			if err := before(repoFactory); err != nil {
				return err
			}
		}

		if err := repoFactory.AccountRepo().UpdatePassword(ctx, account.ID, passwordHash, now); err != nil {
			return translateAccountErr(err, "failed to update password")
		}

		var err error
		revoked, err = repoFactory.RefreshSessionRepo().RevokeAllByAccountID(ctx, account.ID, now)
		if err != nil {
			return errors.Wrap(err, "failed to revoke sessions after password change")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to replace password")
	}

	account.PasswordHash = passwordHash
	account.PasswordLastChanged = &now
	a.events.publish(ctx, a.log(ctx), constants.EventUserUpdated, account)
	a.log(ctx).Info("Password replaced", slog.Any("accountID", account.ID), slog.Int64("revokedSessions", revoked))

	return nil
}

// UpdateRole changes the role and revokes every session so no token carries a stale role.
func (a *identityAuthority) UpdateRole(ctx context.Context, accountID uuid.UUID, role entity.Role) error {
	if !role.IsValid() {
		return errors.Wrapf(domainerrors.ErrValidationFailed, "invalid role %q", role)
	}

	account, err := a.GetAccount(ctx, accountID)
	if err != nil {
		return err
	}

	now := a.now().UTC()
	err = a.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.AccountRepo().UpdateRole(ctx, accountID, role); err != nil {
			return translateAccountErr(err, "failed to update role")
		}
		if _, err := repoFactory.RefreshSessionRepo().RevokeAllByAccountID(ctx, accountID, now); err != nil {
			return errors.Wrap(err, "failed to revoke sessions after role change")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to update role")
	}

	account.Role = role
	a.events.publish(ctx, a.log(ctx), constants.EventUserUpdated, account)
	a.log(ctx).Info("Role updated", slog.Any("accountID", accountID), slog.String("role", role.String()))

	return nil
}

// DeleteAccount announces the deletion, then removes the account with its tickets.
// Sessions are revoked rather than deleted and are purged by the sweeper.
func (a *identityAuthority) DeleteAccount(ctx context.Context, accountID uuid.UUID) error {
	account, err := a.GetAccount(ctx, accountID)
	if err != nil {
		return err
	}

	a.events.publish(ctx, a.log(ctx), constants.EventUserDeleted, account)

	now := a.now().UTC()
	err = a.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.RefreshSessionRepo().RevokeAllByAccountID(ctx, accountID, now); err != nil {
			return errors.Wrap(err, "failed to revoke sessions")
		}
		if err := repoFactory.VerificationTicketRepo().DeleteByAccountID(ctx, accountID); err != nil {
			return errors.Wrap(err, "failed to delete verification tickets")
		}
		if err := repoFactory.PasswordResetRepo().DeleteByAccountID(ctx, accountID); err != nil {
			return errors.Wrap(err, "failed to delete password reset tickets")
		}
		if err := repoFactory.AccountRepo().Delete(ctx, accountID); err != nil {
			return translateAccountErr(err, "failed to delete account")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete account")
	}

	a.log(ctx).Info("Account deleted", slog.Any("accountID", accountID))

	return nil
}

// GetAccount loads one account.
func (a *identityAuthority) GetAccount(ctx context.Context, accountID uuid.UUID) (*entity.Account, error) {
	account, err := a.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, translateAccountErr(err, "failed to find account")
	}

	return account, nil
}

// ListAccounts returns one page of accounts. Pages start at 1.
func (a *identityAuthority) ListAccounts(ctx context.Context, page, size int) (*usecase.AccountPage, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	accounts, total, err := a.accountRepo.List(ctx, (page-1)*size, size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list accounts")
	}

	return &usecase.AccountPage{
		Accounts: accounts,
		Total:    total,
		Page:     page,
		Size:     size,
	}, nil
}

// ListSessions lists the live sessions of an account.
func (a *identityAuthority) ListSessions(ctx context.Context, accountID uuid.UUID) ([]*entity.RefreshSession, error) {
	sessions, err := a.sessions.ListActive(ctx, accountID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sessions")
	}

	return sessions, nil
}

// translateAccountErr maps the repository miss onto the user-facing error.
func translateAccountErr(err error, message string) error {
	if errors.Is(err, repository.ErrAccountNotFound) {
		return errors.Wrap(domainerrors.ErrUserNotFound, message)
	}

	return errors.Wrap(err, message)
}
