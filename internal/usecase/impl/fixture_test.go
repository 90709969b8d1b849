package impl

import (
	"context"
	"testing"

	"identity/internal/domain/entity"
	"identity/internal/domain/service"
	"identity/internal/usecase"

	"github.com/stretchr/testify/require"
)

// identityFixture wires the real use cases over in-memory collaborators.
type identityFixture struct {
	store      *memStore
	clock      *testClock
	hasher     *fakeHasher
	tokens     *fakeTokenIssuer
	notifier   *recordingNotifier
	publisher  *recordingPublisher
	dispatcher *inlineDispatcher
	google     *fakeFetcher
	facebook   *fakeFetcher

	authenticator usecase.CredentialAuthenticator
	sessions      usecase.RefreshTokenStore
	verification  usecase.EmailVerificationManager
	social        usecase.SocialIdentityResolver
	authority     usecase.IdentityAuthority
}

func newIdentityFixture(t *testing.T) *identityFixture {
	t.Helper()

	f := &identityFixture{
		store:      newMemStore(),
		clock:      newTestClock(),
		hasher:     &fakeHasher{},
		tokens:     &fakeTokenIssuer{},
		notifier:   &recordingNotifier{},
		publisher:  &recordingPublisher{},
		dispatcher: &inlineDispatcher{},
		google:     &fakeFetcher{provider: entity.ProviderTypeGoogle},
		facebook:   &fakeFetcher{provider: entity.ProviderTypeFacebook},
	}
	cfg := newTestConfig()
	logger := newDiscardLogger()

	authenticator, err := NewCredentialAuthenticator(CredentialAuthenticatorParams{
		AccountRepo: f.store.AccountRepo(),
		Hasher:      f.hasher,
		Logger:      logger,
	})
	require.NoError(t, err)
	f.authenticator = authenticator

	sessions := NewRefreshTokenStore(RefreshTokenStoreParams{
		TxManager:   f.store,
		SessionRepo: f.store.RefreshSessionRepo(),
		Config:      cfg,
		Logger:      logger,
	})
	sessions.(*refreshTokenStore).now = f.clock.Now
	f.sessions = sessions

	verification := NewEmailVerificationManager(EmailVerificationManagerParams{
		TxManager:   f.store,
		AccountRepo: f.store.AccountRepo(),
		TicketRepo:  f.store.VerificationTicketRepo(),
		Notifier:    f.notifier,
		Dispatcher:  f.dispatcher,
		Config:      cfg,
		Logger:      logger,
	})
	verification.(*emailVerificationManager).now = f.clock.Now
	f.verification = verification

	f.social = NewSocialIdentityResolver(SocialIdentityResolverParams{
		Fetchers:  []service.SocialProfileFetcher{f.google, f.facebook},
		TxManager: f.store,
		Config:    cfg,
		Logger:    logger,
	})

	authority := NewIdentityAuthority(IdentityAuthorityParams{
		TxManager:     f.store,
		AccountRepo:   f.store.AccountRepo(),
		ResetRepo:     f.store.PasswordResetRepo(),
		Hasher:        f.hasher,
		Tokens:        f.tokens,
		Authenticator: f.authenticator,
		Sessions:      f.sessions,
		Verification:  f.verification,
		Social:        f.social,
		Notifier:      f.notifier,
		Publisher:     f.publisher,
		Dispatcher:    f.dispatcher,
		Config:        cfg,
		Logger:        logger,
	})
	authority.(*identityAuthority).now = f.clock.Now
	authority.(*identityAuthority).events.now = f.clock.Now
	f.authority = authority

	return f
}

// seedLocalAccount stores a password account directly.
func (f *identityFixture) seedLocalAccount(t *testing.T, email, password string) *entity.Account {
	t.Helper()

	account := &entity.Account{
		Email:        email,
		PasswordHash: "hashed:" + password,
		Role:         entity.RoleUser,
		Provider:     entity.ProviderTypeLocal,
		FirstName:    "Test",
		LastName:     "User",
	}
	require.NoError(t, f.store.AccountRepo().Create(context.Background(), account))

	return account
}
