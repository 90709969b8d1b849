package impl

import (
	"context"
	"testing"

	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/repository"
	"identity/internal/errors"
	mockRepo "identity/internal/mocks/repository"
	mockSvc "identity/internal/mocks/service"
	"identity/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialAuthenticator_Authenticate(t *testing.T) {
	f := newIdentityFixture(t)
	ctx := context.Background()
	seeded := f.seedLocalAccount(t, "bob@example.com", "Secret123!")

	social := &entity.Account{
		Email:      "carol@example.com",
		Provider:   entity.ProviderTypeGoogle,
		ProviderID: "google-carol",
	}
	require.NoError(t, f.store.AccountRepo().Create(ctx, social))

	t.Run("success with case-insensitive email", func(t *testing.T) {
		account, err := f.authenticator.Authenticate(ctx, "  Bob@Example.com ", "Secret123!")

		require.NoError(t, err)
		assert.Equal(t, seeded.ID, account.ID)
	})

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "unknown email", email: "nobody@example.com", password: "Secret123!"},
		{name: "wrong password", email: "bob@example.com", password: "wrong"},
		{name: "account without password", email: "carol@example.com", password: "anything"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := f.hasher.checkCount()

			account, err := f.authenticator.Authenticate(ctx, tt.email, tt.password)

			require.Error(t, err)
			assert.Nil(t, account)
			assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
			assert.Equal(t, before+1, f.hasher.checkCount(), "every failure runs exactly one hash comparison")
		})
	}
}

func newMockedAuthenticator(t *testing.T) (usecase.CredentialAuthenticator, *mockRepo.MockAccountRepository, *mockSvc.MockPasswordHasher) {
	t.Helper()

	accountRepo := mockRepo.NewMockAccountRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	hasher.EXPECT().Hash(dummyPassword).Return("dummy-hash", nil).Once()

	authenticator, err := NewCredentialAuthenticator(CredentialAuthenticatorParams{
		AccountRepo: accountRepo,
		Hasher:      hasher,
		Logger:      newDiscardLogger(),
	})
	require.NoError(t, err)

	return authenticator, accountRepo, hasher
}

func TestCredentialAuthenticator_RepositoryFailure(t *testing.T) {
	authenticator, accountRepo, _ := newMockedAuthenticator(t)
	ctx := context.Background()

	accountRepo.EXPECT().FindByEmail(ctx, "bob@example.com").Return(nil, errors.New("connection reset"))

	_, err := authenticator.Authenticate(ctx, "Bob@Example.com", "Secret123!")

	require.Error(t, err)
	assert.False(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestCredentialAuthenticator_UnknownEmailComparesAgainstDummyHash(t *testing.T) {
	authenticator, accountRepo, hasher := newMockedAuthenticator(t)
	ctx := context.Background()

	accountRepo.EXPECT().FindByEmail(ctx, "ghost@example.com").Return(nil, repository.ErrAccountNotFound)
	hasher.EXPECT().Check("Secret123!", "dummy-hash").Return(false).Once()

	_, err := authenticator.Authenticate(ctx, "ghost@example.com", "Secret123!")

	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestNewCredentialAuthenticator_HasherFailure(t *testing.T) {
	hasher := mockSvc.NewMockPasswordHasher(t)
	hasher.EXPECT().Hash(dummyPassword).Return("", errors.New("entropy exhausted"))

	_, err := NewCredentialAuthenticator(CredentialAuthenticatorParams{
		AccountRepo: mockRepo.NewMockAccountRepository(t),
		Hasher:      hasher,
		Logger:      newDiscardLogger(),
	})

	assert.Error(t, err)
}
