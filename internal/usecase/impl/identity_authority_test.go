package impl

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"identity/internal/domain/constants"
	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/service"
	"identity/internal/domain/repository"
	"identity/internal/errors"
	mockRepo "identity/internal/mocks/repository"
	mockSvc "identity/internal/mocks/service"
	"identity/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func registerInput(email string) *usecase.RegisterInput {
	return &usecase.RegisterInput{
		Email:      email,
		Password:   "Secret123!",
		FirstName:  "Alice",
		LastName:   "Liddell",
		DeviceInfo: "Firefox",
	}
}

func TestIdentityAuthority_Register(t *testing.T) {
	f := newIdentityFixture(t)
	ctx := context.Background()

	result, err := f.authority.Register(ctx, registerInput(" Alice@Example.com "))

	require.NoError(t, err)
	assert.True(t, result.IsNewAccount)
	assert.Equal(t, "alice@example.com", result.Email)
	assert.Equal(t, entity.RoleUser, result.Role)
	assert.False(t, result.EmailVerified)
	assert.Equal(t, constants.TokenTypeBearer, result.TokenType)
	assert.Equal(t, int64(900), result.ExpiresIn)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)

	stored, ok := f.store.accountByEmail("alice@example.com")
	require.True(t, ok)
	assert.Equal(t, entity.ProviderTypeLocal, stored.Provider)
	assert.False(t, stored.EmailVerified)
	assert.Equal(t, "hashed:Secret123!", stored.PasswordHash)
	require.NotNil(t, stored.PasswordLastChanged)

	tickets := f.store.ticketsOf(stored.ID)
	require.Len(t, tickets, 1)
	assert.True(t, tickets[0].IsPending(f.clock.Now()))
	assert.Len(t, f.notifier.ofKind(service.NotificationVerificationEmail), 1)

	sessions := f.store.sessionsOf(stored.ID)
	require.Len(t, sessions, 1)
	assert.Equal(t, "Firefox", sessions[0].DeviceInfo)

	assert.Equal(t, []string{constants.TopicUserCreated}, f.publisher.topics())
	event := f.publisher.last()
	assert.Equal(t, stored.ID.String(), event.Key)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(event.Payload, &payload))
	assert.Equal(t, stored.ID.String(), payload["userId"])
	assert.Equal(t, "alice@example.com", payload["email"])
	assert.Equal(t, constants.EventUserCreated, payload["eventType"])
	assert.Equal(t, "USER", payload["role"])
	assert.Equal(t, "LOCAL", payload["provider"])
	assert.Equal(t, constants.EventSource, payload["eventSource"])
	assert.Equal(t, constants.EventVersion, payload["eventVersion"])
	assert.Equal(t, "Alice", payload["firstName"])
}

func TestIdentityAuthority_RegisterDuplicateEmail(t *testing.T) {
	f := newIdentityFixture(t)
	ctx := context.Background()

	_, err := f.authority.Register(ctx, registerInput("alice@example.com"))
	require.NoError(t, err)

	_, err = f.authority.Register(ctx, registerInput("ALICE@example.com"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailAlreadyInUse))
	assert.Equal(t, 1, f.store.accountCount())
	assert.Len(t, f.publisher.topics(), 1)
}

func TestIdentityAuthority_RegisterValidation(t *testing.T) {
	f := newIdentityFixture(t)
	ctx := context.Background()

	input := registerInput("alice@example.com")
	input.Password = "short"
	_, err := f.authority.Register(ctx, input)
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordStrength))

	_, err = f.authority.Register(ctx, registerInput("   "))
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	assert.Equal(t, 0, f.store.accountCount())
}

func TestIdentityAuthority_RegisterIsAtomic(t *testing.T) {
	tests := []struct {
		name string
		op   string
	}{
		{name: "verification ticket insert fails", op: "ticket.create"},
		{name: "refresh session insert fails", op: "session.create"},
		{name: "account lock fails", op: "account.lock"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newIdentityFixture(t)
			f.store.failOn(tt.op, errors.New("disk full"))

			result, err := f.authority.Register(context.Background(), registerInput("alice@example.com"))

			require.Error(t, err)
			assert.Nil(t, result)
			assert.Equal(t, 0, f.store.accountCount(), "the account insert is rolled back")
			assert.Empty(t, f.notifier.ofKind(service.NotificationVerificationEmail))
			assert.Empty(t, f.publisher.topics())

			f.store.failOn(tt.op, nil)
			retry, err := f.authority.Register(context.Background(), registerInput("alice@example.com"))
			require.NoError(t, err)
			assert.Len(t, f.store.ticketsOf(retry.AccountID), 1)
			assert.Len(t, f.store.sessionsOf(retry.AccountID), 1)
		})
	}
}

func TestIdentityAuthority_LoginAndRefresh(t *testing.T) {
	f := newIdentityFixture(t)
	ctx := context.Background()
	account := f.seedLocalAccount(t, "bob@example.com", "Secret123!")

	_, err := f.authority.Login(ctx, &usecase.LoginInput{Email: "bob@example.com", Password: "nope"})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))

	_, err = f.authority.Login(ctx, &usecase.LoginInput{Email: "ghost@example.com", Password: "Secret123!"})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))

	login, err := f.authority.Login(ctx, &usecase.LoginInput{Email: "bob@example.com", Password: "Secret123!"})
	require.NoError(t, err)
	assert.Equal(t, account.ID, login.AccountID)
	assert.False(t, login.IsNewAccount)

	refreshed, err := f.authority.RefreshAccessToken(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, login.RefreshToken, refreshed.RefreshToken)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, account.ID, refreshed.AccountID)

	require.NoError(t, f.authority.Logout(ctx, login.RefreshToken))
	require.NoError(t, f.authority.Logout(ctx, login.RefreshToken))

	_, err = f.authority.RefreshAccessToken(ctx, login.RefreshToken)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenRevoked))
}

func TestIdentityAuthority_LogoutAll(t *testing.T) {
	f := newIdentityFixture(t)
	ctx := context.Background()
	account := f.seedLocalAccount(t, "bob@example.com", "Secret123!")

	for range 2 {
		_, err := f.authority.Login(ctx, &usecase.LoginInput{Email: "bob@example.com", Password: "Secret123!"})
		require.NoError(t, err)
	}

	require.NoError(t, f.authority.LogoutAll(ctx, account.ID))

	sessions, err := f.authority.ListSessions(ctx, account.ID)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestIdentityAuthority_SecurityMutationsRevokeOnlyOwnerSessions(t *testing.T) {
	ctx := context.Background()

	mutations := []struct {
		name   string
		mutate func(f *identityFixture, id uuid.UUID) error
	}{
		{
			name: "change password",
			mutate: func(f *identityFixture, id uuid.UUID) error {
				return f.authority.ChangePassword(ctx, &usecase.ChangePasswordInput{
					AccountID:       id,
					CurrentPassword: "Secret123!",
					NewPassword:     "Another456!",
				})
			},
		},
		{
			name: "admin reset password",
			mutate: func(f *identityFixture, id uuid.UUID) error {
				return f.authority.ResetPassword(ctx, id, "Another456!")
			},
		},
		{
			name: "update role",
			mutate: func(f *identityFixture, id uuid.UUID) error {
				return f.authority.UpdateRole(ctx, id, entity.RoleAdmin)
			},
		},
	}

	for _, tt := range mutations {
		t.Run(tt.name, func(t *testing.T) {
			f := newIdentityFixture(t)
			target := f.seedLocalAccount(t, "bob@example.com", "Secret123!")
			f.seedLocalAccount(t, "dave@example.com", "Secret123!")

			targetLogin, err := f.authority.Login(ctx, &usecase.LoginInput{Email: "bob@example.com", Password: "Secret123!"})
			require.NoError(t, err)
			otherLogin, err := f.authority.Login(ctx, &usecase.LoginInput{Email: "dave@example.com", Password: "Secret123!"})
			require.NoError(t, err)

			require.NoError(t, tt.mutate(f, target.ID))

			_, err = f.authority.RefreshAccessToken(ctx, targetLogin.RefreshToken)
			assert.True(t, errors.Is(err, domainerrors.ErrTokenRevoked))

			_, err = f.authority.RefreshAccessToken(ctx, otherLogin.RefreshToken)
			assert.NoError(t, err)

			assert.Equal(t, []string{constants.TopicUserUpdated}, f.publisher.topics())
		})
	}
}

func TestIdentityAuthority_ChangePasswordRejections(t *testing.T) {
	f := newIdentityFixture(t)
	ctx := context.Background()
	account := f.seedLocalAccount(t, "bob@example.com", "Secret123!")
	login, err := f.authority.Login(ctx, &usecase.LoginInput{Email: "bob@example.com", Password: "Secret123!"})
	require.NoError(t, err)

	err = f.authority.ChangePassword(ctx, &usecase.ChangePasswordInput{
		AccountID:       account.ID,
		CurrentPassword: "wrong",
		NewPassword:     "Another456!",
	})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))

	err = f.authority.ChangePassword(ctx, &usecase.ChangePasswordInput{
		AccountID:       account.ID,
		CurrentPassword: "Secret123!",
		NewPassword:     "short",
	})
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordStrength))

	err = f.authority.ChangePassword(ctx, &usecase.ChangePasswordInput{
		AccountID:       uuid.New(),
		CurrentPassword: "Secret123!",
		NewPassword:     "Another456!",
	})
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))

	// Nothing above may have touched the session.
	_, err = f.authority.RefreshAccessToken(ctx, login.RefreshToken)
	assert.NoError(t, err)
	assert.Empty(t, f.publisher.topics())
}

func TestIdentityAuthority_PasswordChangeRollsBackOnRevokeFailure(t *testing.T) {
	f := newIdentityFixture(t)
	ctx := context.Background()
	account := f.seedLocalAccount(t, "bob@example.com", "Secret123!")
	f.store.failOn("session.revokeAll", errors.New("lock timeout"))

	err := f.authority.ResetPassword(ctx, account.ID, "Another456!")

	require.Error(t, err)
	stored, _ := f.store.accountByEmail("bob@example.com")
	assert.Equal(t, "hashed:Secret123!", stored.PasswordHash)
	assert.Empty(t, f.publisher.topics())
}

func TestIdentityAuthority_UpdateRoleInvalid(t *testing.T) {
	f := newIdentityFixture(t)
	account := f.seedLocalAccount(t, "bob@example.com", "Secret123!")

	err := f.authority.UpdateRole(context.Background(), account.ID, entity.Role("ROOT"))

	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestIdentityAuthority_DeleteAccount(t *testing.T) {
	f := newIdentityFixture(t)
	ctx := context.Background()

	registered, err := f.authority.Register(ctx, registerInput("alice@example.com"))
	require.NoError(t, err)
	require.NoError(t, f.authority.RequestPasswordReset(ctx, "alice@example.com"))

	require.NoError(t, f.authority.DeleteAccount(ctx, registered.AccountID))

	assert.Equal(t, 0, f.store.accountCount())
	assert.Empty(t, f.store.ticketsOf(registered.AccountID))
	assert.Empty(t, f.store.resetsOf(registered.AccountID))
	for _, session := range f.store.sessionsOf(registered.AccountID) {
		assert.True(t, session.Revoked)
	}
	assert.Equal(t, []string{constants.TopicUserCreated, constants.TopicUserDeleted}, f.publisher.topics())

	err = f.authority.DeleteAccount(ctx, registered.AccountID)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestIdentityAuthority_SocialLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("new account", func(t *testing.T) {
		f := newIdentityFixture(t)
		f.google.profile = googleProfile("new@example.com")

		result, err := f.authority.SocialLogin(ctx, &usecase.SocialLoginInput{Provider: "google", AccessToken: "tok"})

		require.NoError(t, err)
		assert.True(t, result.IsNewAccount)
		assert.True(t, result.EmailVerified)
		assert.Equal(t, []string{constants.TopicUserCreated}, f.publisher.topics())

		sessions := f.store.sessionsOf(result.AccountID)
		require.Len(t, sessions, 1)
		assert.Equal(t, "Social Login - GOOGLE", sessions[0].DeviceInfo)
	})

	t.Run("links local account", func(t *testing.T) {
		f := newIdentityFixture(t)
		local := f.seedLocalAccount(t, "alice@example.com", "Secret123!")
		f.google.profile = googleProfile("alice@example.com")

		result, err := f.authority.SocialLogin(ctx, &usecase.SocialLoginInput{Provider: "GOOGLE", AccessToken: "tok", DeviceInfo: "Pixel"})

		require.NoError(t, err)
		assert.False(t, result.IsNewAccount)
		assert.Equal(t, local.ID, result.AccountID)
		assert.Equal(t, 1, f.store.accountCount())
		assert.Equal(t, []string{constants.TopicUserUpdated}, f.publisher.topics())
		assert.Equal(t, "Pixel", f.store.sessionsOf(local.ID)[0].DeviceInfo)
	})

	t.Run("local provider tag is rejected", func(t *testing.T) {
		f := newIdentityFixture(t)

		_, err := f.authority.SocialLogin(ctx, &usecase.SocialLoginInput{Provider: "local", AccessToken: "tok"})

		assert.True(t, errors.Is(err, domainerrors.ErrUnsupportedProvider))
	})

	t.Run("provider failure", func(t *testing.T) {
		f := newIdentityFixture(t)
		f.facebook.err = errors.New("timeout")

		_, err := f.authority.SocialLogin(ctx, &usecase.SocialLoginInput{Provider: "facebook", AccessToken: "tok"})

		assert.True(t, errors.Is(err, domainerrors.ErrProviderFetchFailure))
		assert.Equal(t, 0, f.store.accountCount())
	})
}

func TestIdentityAuthority_PasswordReset(t *testing.T) {
	f := newIdentityFixture(t)
	ctx := context.Background()
	account := f.seedLocalAccount(t, "bob@example.com", "Secret123!")
	login, err := f.authority.Login(ctx, &usecase.LoginInput{Email: "bob@example.com", Password: "Secret123!"})
	require.NoError(t, err)

	require.NoError(t, f.authority.RequestPasswordReset(ctx, "bob@example.com"))
	require.NoError(t, f.authority.RequestPasswordReset(ctx, "Bob@Example.com"))

	sent := f.notifier.ofKind(service.NotificationPasswordResetEmail)
	require.Len(t, sent, 2)
	assert.Len(t, f.store.resetsOf(account.ID), 1, "a new request replaces the unused ticket")

	const prefix = "https://app.example.com/reset-password?token="
	require.Contains(t, sent[1].Link, prefix)
	staleToken := sent[0].Link[len(prefix):]
	token := sent[1].Link[len(prefix):]

	err = f.authority.ConfirmPasswordReset(ctx, staleToken, "Another456!")
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))

	require.NoError(t, f.authority.ConfirmPasswordReset(ctx, token, "Another456!"))

	err = f.authority.ConfirmPasswordReset(ctx, token, "Third789!")
	assert.True(t, errors.Is(err, domainerrors.ErrTokenRevoked))

	_, err = f.authority.RefreshAccessToken(ctx, login.RefreshToken)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenRevoked))

	_, err = f.authority.Login(ctx, &usecase.LoginInput{Email: "bob@example.com", Password: "Another456!"})
	assert.NoError(t, err)
}

func TestIdentityAuthority_PasswordResetEdgeCases(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown email is silent", func(t *testing.T) {
		f := newIdentityFixture(t)

		require.NoError(t, f.authority.RequestPasswordReset(ctx, "ghost@example.com"))
		assert.Empty(t, f.notifier.ofKind(service.NotificationPasswordResetEmail))
	})

	t.Run("expired ticket", func(t *testing.T) {
		f := newIdentityFixture(t)
		f.seedLocalAccount(t, "bob@example.com", "Secret123!")
		require.NoError(t, f.authority.RequestPasswordReset(ctx, "bob@example.com"))
		link := f.notifier.ofKind(service.NotificationPasswordResetEmail)[0].Link
		token := link[len("https://app.example.com/reset-password?token="):]

		f.clock.Advance(2 * time.Hour)
		err := f.authority.ConfirmPasswordReset(ctx, token, "Another456!")

		assert.True(t, errors.Is(err, domainerrors.ErrTokenExpired))

		count, err := f.authority.SweepExpiredPasswordResets(ctx, f.clock.Now())
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestIdentityAuthority_ListAccounts(t *testing.T) {
	f := newIdentityFixture(t)
	ctx := context.Background()
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		f.seedLocalAccount(t, email, "Secret123!")
	}

	page, err := f.authority.ListAccounts(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	require.Len(t, page.Accounts, 1)
	assert.Equal(t, "c@example.com", page.Accounts[0].Email)

	page, err = f.authority.ListAccounts(ctx, 0, 1000)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, maxPageSize, page.Size)
	assert.Len(t, page.Accounts, 3)
}

// TestIdentityAuthority_AliceScenario walks registration through verification with a resend in between.
func TestIdentityAuthority_AliceScenario(t *testing.T) {
	f := newIdentityFixture(t)
	ctx := context.Background()

	registered, err := f.authority.Register(ctx, registerInput("alice@example.com"))
	require.NoError(t, err)
	t1 := f.notifier.ofKind(service.NotificationVerificationEmail)[0].Link

	_, err = f.verification.Resend(ctx, "alice@example.com")
	require.NoError(t, err)
	t2 := f.notifier.ofKind(service.NotificationVerificationEmail)[1].Link
	assert.NotEqual(t, t1, t2)
	assert.Len(t, f.store.ticketsOf(registered.AccountID), 1)

	status, err := f.verification.Status(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.False(t, status.EmailVerified)
	assert.True(t, status.HasPendingTicket)

	const prefix = "https://app.example.com/verify-email?token="
	consumed, err := f.verification.Consume(ctx, t2[len(prefix):])
	require.NoError(t, err)
	assert.False(t, consumed.AlreadyVerified)

	status, err = f.verification.Status(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, status.EmailVerified)

	_, err = f.verification.Consume(ctx, t1[len(prefix):])
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
}

func TestIdentityAuthority_PasswordResetTicketFailureSendsNothing(t *testing.T) {
	txManager := mockRepo.NewMockTransactionManager(t)
	accountRepo := mockRepo.NewMockAccountRepository(t)
	notifier := mockSvc.NewMockNotifier(t)
	authority := NewIdentityAuthority(IdentityAuthorityParams{
		TxManager:   txManager,
		AccountRepo: accountRepo,
		Notifier:    notifier,
		Publisher:   mockSvc.NewMockEventPublisher(t),
		Dispatcher:  &inlineDispatcher{},
		Config:      newTestConfig(),
		Logger:      newDiscardLogger(),
	})

	ctx := context.Background()
	account := &entity.Account{ID: uuid.New(), Email: "bob@example.com", PasswordHash: "hashed:Secret123!"}
	accountRepo.EXPECT().FindByEmail(ctx, "bob@example.com").Return(account, nil)

	txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAccountRepo := mockRepo.NewMockAccountRepository(t)
			mockResetRepo := mockRepo.NewMockPasswordResetRepository(t)

			mockFactory.EXPECT().AccountRepo().Return(mockAccountRepo)
			mockFactory.EXPECT().PasswordResetRepo().Return(mockResetRepo)

			mockAccountRepo.EXPECT().LockByID(ctx, account.ID).Return(account, nil).Once()
			mockResetRepo.EXPECT().DeleteUnusedByAccountID(ctx, account.ID).Return(0, nil).Once()
			mockResetRepo.EXPECT().
				Create(ctx, mock.MatchedBy(func(ticket *entity.PasswordResetTicket) bool {
					return ticket.AccountID == account.ID && ticket.TokenHash != ""
				})).
				Return(errors.New("disk full")).
				Once()

			return fn(mockFactory)
		})

	err := authority.RequestPasswordReset(ctx, "bob@example.com")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestIdentityAuthority_PasswordResetSkipsSocialOnlyAccount(t *testing.T) {
	accountRepo := mockRepo.NewMockAccountRepository(t)
	authority := NewIdentityAuthority(IdentityAuthorityParams{
		TxManager:   mockRepo.NewMockTransactionManager(t),
		AccountRepo: accountRepo,
		Notifier:    mockSvc.NewMockNotifier(t),
		Publisher:   mockSvc.NewMockEventPublisher(t),
		Dispatcher:  &inlineDispatcher{},
		Config:      newTestConfig(),
		Logger:      newDiscardLogger(),
	})

	ctx := context.Background()
	accountRepo.EXPECT().
		FindByEmail(ctx, "carol@example.com").
		Return(&entity.Account{ID: uuid.New(), Email: "carol@example.com", Provider: entity.ProviderTypeGoogle, ProviderID: "g-7"}, nil)

	assert.NoError(t, authority.RequestPasswordReset(ctx, "carol@example.com"))
}
