package impl

import (
	"context"
	"log/slog"

	deliverycontext "identity/internal/delivery/context"
	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/repository"
	"identity/internal/domain/service"
	"identity/internal/errors"
	"identity/internal/usecase"

	"go.uber.org/fx"
)

// dummyPassword is hashed once at construction so unknown emails cost one bcrypt comparison too.
const dummyPassword = "identity-timing-equalizer"

type credentialAuthenticator struct {
	accountRepo repository.AccountRepository
	hasher      service.PasswordHasher
	dummyHash   string
	logger      *slog.Logger
}

// CredentialAuthenticatorParams holds dependencies for the authenticator, injected by Fx.
type CredentialAuthenticatorParams struct {
	fx.In

	AccountRepo repository.AccountRepository
	Hasher      service.PasswordHasher
	Logger      *slog.Logger
}

// NewCredentialAuthenticator creates the password authenticator.
func NewCredentialAuthenticator(params CredentialAuthenticatorParams) (usecase.CredentialAuthenticator, error) {
	dummyHash, err := params.Hasher.Hash(dummyPassword)
	if err != nil {
		return nil, errors.Wrap(err, "failed to prepare dummy password hash")
	}

	return &credentialAuthenticator{
		accountRepo: params.AccountRepo,
		hasher:      params.Hasher,
		dummyHash:   dummyHash,
		logger:      params.Logger,
	}, nil
}

func (a *credentialAuthenticator) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, a.logger)
}

// Authenticate implements usecase.CredentialAuthenticator.
func (a *credentialAuthenticator) Authenticate(ctx context.Context, email, password string) (*entity.Account, error) {
	account, err := a.accountRepo.FindByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		if !errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(err, "failed to find account by email")
		}
		a.hasher.Check(password, a.dummyHash)
		a.log(ctx).Debug("Authentication failed: unknown email")

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "authentication failed")
	}

	if !account.HasPassword() {
		a.hasher.Check(password, a.dummyHash)
		a.log(ctx).Debug("Authentication failed: account has no password", slog.Any("accountID", account.ID))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "authentication failed")
	}

	if !a.hasher.Check(password, account.PasswordHash) {
		a.log(ctx).Debug("Authentication failed: password mismatch", slog.Any("accountID", account.ID))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "authentication failed")
	}

	return account, nil
}
