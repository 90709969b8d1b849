package impl

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/repository"
	"identity/internal/domain/service"
	"identity/internal/errors"
	mockRepo "identity/internal/mocks/repository"
	mockSvc "identity/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEmailVerificationManager_Issue(t *testing.T) {
	f := newIdentityFixture(t)
	ctx := context.Background()
	account := f.seedLocalAccount(t, "bob@example.com", "Secret123!")

	result, err := f.verification.Issue(ctx, account)

	require.NoError(t, err)
	require.NotNil(t, result.Ticket)
	assert.False(t, result.AlreadyVerified)
	assert.Equal(t, f.clock.Now().Add(24*time.Hour), result.Ticket.ExpiresAt)

	sent := f.notifier.ofKind(service.NotificationVerificationEmail)
	require.Len(t, sent, 1)
	assert.Equal(t, "bob@example.com", sent[0].To)
	assert.Equal(t, "Test User", sent[0].Name)
	assert.Equal(t, "https://app.example.com/verify-email?token="+result.Ticket.Token, sent[0].Link)

	stored := f.store.ticketsOf(account.ID)
	require.Len(t, stored, 1)
	assert.Empty(t, stored[0].Token)
	assert.Equal(t, hashOpaqueToken(result.Ticket.Token), stored[0].TokenHash)
}

func TestEmailVerificationManager_ReissueKeepsSingleTicket(t *testing.T) {
	f := newIdentityFixture(t)
	ctx := context.Background()
	account := f.seedLocalAccount(t, "bob@example.com", "Secret123!")

	first, err := f.verification.Issue(ctx, account)
	require.NoError(t, err)
	second, err := f.verification.Issue(ctx, account)
	require.NoError(t, err)

	stored := f.store.ticketsOf(account.ID)
	require.Len(t, stored, 1)
	assert.Equal(t, second.Ticket.ID, stored[0].ID)

	_, err = f.verification.Consume(ctx, first.Ticket.Token)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
}

func TestEmailVerificationManager_IssueForVerifiedAccount(t *testing.T) {
	f := newIdentityFixture(t)
	account := f.seedLocalAccount(t, "bob@example.com", "Secret123!")
	account.EmailVerified = true

	result, err := f.verification.Issue(context.Background(), account)

	require.NoError(t, err)
	assert.True(t, result.AlreadyVerified)
	assert.Nil(t, result.Ticket)
	assert.Empty(t, f.store.ticketsOf(account.ID))
	assert.Empty(t, f.notifier.ofKind(service.NotificationVerificationEmail))
}

func TestEmailVerificationManager_ConsumeTwice(t *testing.T) {
	f := newIdentityFixture(t)
	ctx := context.Background()
	account := f.seedLocalAccount(t, "bob@example.com", "Secret123!")
	issued, err := f.verification.Issue(ctx, account)
	require.NoError(t, err)

	first, err := f.verification.Consume(ctx, issued.Ticket.Token)
	require.NoError(t, err)
	assert.False(t, first.AlreadyVerified)
	assert.Equal(t, account.ID, first.AccountID)
	assert.Equal(t, "bob@example.com", first.Email)

	stored, ok := f.store.accountByEmail("bob@example.com")
	require.True(t, ok)
	assert.True(t, stored.EmailVerified)

	second, err := f.verification.Consume(ctx, issued.Ticket.Token)
	require.NoError(t, err)
	assert.True(t, second.AlreadyVerified)

	assert.Len(t, f.notifier.ofKind(service.NotificationWelcomeEmail), 1)
}

func TestEmailVerificationManager_ConsumeRejections(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown token", func(t *testing.T) {
		f := newIdentityFixture(t)

		_, err := f.verification.Consume(ctx, "bogus")

		assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
	})

	t.Run("expired token", func(t *testing.T) {
		f := newIdentityFixture(t)
		account := f.seedLocalAccount(t, "bob@example.com", "Secret123!")
		issued, err := f.verification.Issue(ctx, account)
		require.NoError(t, err)

		f.clock.Advance(25 * time.Hour)
		_, err = f.verification.Consume(ctx, issued.Ticket.Token)

		assert.True(t, errors.Is(err, domainerrors.ErrTokenExpired))
		stored, _ := f.store.accountByEmail("bob@example.com")
		assert.False(t, stored.EmailVerified)
	})
}

func TestEmailVerificationManager_ResendAndStatus(t *testing.T) {
	f := newIdentityFixture(t)
	ctx := context.Background()
	account := f.seedLocalAccount(t, "bob@example.com", "Secret123!")

	status, err := f.verification.Status(ctx, "BOB@example.com")
	require.NoError(t, err)
	assert.False(t, status.EmailVerified)
	assert.False(t, status.HasPendingTicket)

	_, err = f.verification.Resend(ctx, "bob@example.com")
	require.NoError(t, err)

	status, err = f.verification.Status(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.True(t, status.HasPendingTicket)

	f.clock.Advance(25 * time.Hour)
	status, err = f.verification.Status(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.False(t, status.HasPendingTicket, "expired tickets are not pending")
	assert.Len(t, f.store.ticketsOf(account.ID), 1)

	_, err = f.verification.Resend(ctx, "nobody@example.com")
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))

	_, err = f.verification.Status(ctx, "nobody@example.com")
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestEmailVerificationManager_SweepExpired(t *testing.T) {
	f := newIdentityFixture(t)
	ctx := context.Background()
	stale := f.seedLocalAccount(t, "bob@example.com", "Secret123!")
	fresh := f.seedLocalAccount(t, "dave@example.com", "Secret123!")

	_, err := f.verification.Issue(ctx, stale)
	require.NoError(t, err)
	f.clock.Advance(23 * time.Hour)
	_, err = f.verification.Issue(ctx, fresh)
	require.NoError(t, err)

	count, err := f.verification.SweepExpired(ctx, f.clock.Now().Add(2*time.Hour))

	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Empty(t, f.store.ticketsOf(stale.ID))
	assert.Len(t, f.store.ticketsOf(fresh.ID), 1)
}

func TestEmailVerificationManager_NotifierFailureDoesNotFailIssue(t *testing.T) {
	f := newIdentityFixture(t)
	f.notifier.err = errors.New("smtp down")
	account := f.seedLocalAccount(t, "bob@example.com", "Secret123!")

	result, err := f.verification.Issue(context.Background(), account)

	require.NoError(t, err)
	assert.NotNil(t, result.Ticket)
	assert.Len(t, f.dispatcher.errs, 1)
}

func TestEmailVerificationManager_ConcurrentResendLeavesOneTicket(t *testing.T) {
	const callers = 12
	f := newIdentityFixture(t)
	ctx := context.Background()
	account := f.seedLocalAccount(t, "bob@example.com", "Secret123!")

	tokens := make([]string, callers)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			result, err := f.verification.Resend(ctx, "bob@example.com")
			if assert.NoError(t, err) {
				tokens[i] = result.Ticket.Token
			}
		}()
	}
	close(start)
	wg.Wait()

	stored := f.store.ticketsOf(account.ID)
	require.Len(t, stored, 1)

	var live int
	for _, token := range tokens {
		if hashOpaqueToken(token) == stored[0].TokenHash {
			live++
		}
	}
	assert.Equal(t, 1, live, "exactly one of the issued tokens survives")
	assert.Len(t, f.notifier.ofKind(service.NotificationVerificationEmail), callers)
}

func TestEmailVerificationManager_IssueRereadsLockedAccount(t *testing.T) {
	f := newIdentityFixture(t)
	ctx := context.Background()
	account := f.seedLocalAccount(t, "bob@example.com", "Secret123!")
	issued, err := f.verification.Issue(ctx, account)
	require.NoError(t, err)
	_, err = f.verification.Consume(ctx, issued.Ticket.Token)
	require.NoError(t, err)

	// account still carries the pre-verification snapshot.
	result, err := f.verification.Issue(ctx, account)

	require.NoError(t, err)
	assert.True(t, result.AlreadyVerified)
	assert.Len(t, f.store.ticketsOf(account.ID), 1)
	assert.Len(t, f.notifier.ofKind(service.NotificationVerificationEmail), 1)
}

func TestEmailVerificationManager_IssueForDeletedAccount(t *testing.T) {
	f := newIdentityFixture(t)
	ctx := context.Background()
	account := f.seedLocalAccount(t, "bob@example.com", "Secret123!")
	require.NoError(t, f.store.AccountRepo().Delete(ctx, account.ID))

	_, err := f.verification.Issue(ctx, account)

	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
	assert.Empty(t, f.store.ticketsOf(account.ID))
}

type mockedVerification struct {
	manager     *emailVerificationManager
	txManager   *mockRepo.MockTransactionManager
	accountRepo *mockRepo.MockAccountRepository
	notifier    *mockSvc.MockNotifier
}

func newMockedVerification(t *testing.T) *mockedVerification {
	t.Helper()

	m := &mockedVerification{
		txManager:   mockRepo.NewMockTransactionManager(t),
		accountRepo: mockRepo.NewMockAccountRepository(t),
		notifier:    mockSvc.NewMockNotifier(t),
	}
	m.manager = NewEmailVerificationManager(EmailVerificationManagerParams{
		TxManager:   m.txManager,
		AccountRepo: m.accountRepo,
		TicketRepo:  mockRepo.NewMockVerificationTicketRepository(t),
		Notifier:    m.notifier,
		Dispatcher:  &inlineDispatcher{},
		Config:      newTestConfig(),
		Logger:      newDiscardLogger(),
	}).(*emailVerificationManager)

	return m
}

func TestEmailVerificationManager_IssueEmailsLinkForStoredTicket(t *testing.T) {
	m := newMockedVerification(t)
	ctx := context.Background()
	account := &entity.Account{ID: uuid.New(), Email: "bob@example.com", FirstName: "Bob"}

	var stored *entity.EmailVerificationTicket
	m.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAccountRepo := mockRepo.NewMockAccountRepository(t)
			mockTicketRepo := mockRepo.NewMockVerificationTicketRepository(t)

			mockFactory.EXPECT().AccountRepo().Return(mockAccountRepo)
			mockFactory.EXPECT().VerificationTicketRepo().Return(mockTicketRepo)

			mockAccountRepo.EXPECT().LockByID(ctx, account.ID).Return(account, nil).Once()
			mockTicketRepo.EXPECT().DeleteUnverifiedByAccountID(ctx, account.ID).Return(1, nil).Once()
			mockTicketRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.EmailVerificationTicket")).
				Run(func(_ context.Context, ticket *entity.EmailVerificationTicket) { stored = ticket }).
				Return(nil).
				Once()

			return fn(mockFactory)
		})

	m.notifier.EXPECT().
		Notify(mock.Anything, mock.MatchedBy(func(n service.Notification) bool {
			return n.Kind == service.NotificationVerificationEmail &&
				n.To == "bob@example.com" &&
				n.Name == "Bob" &&
				strings.HasPrefix(n.Link, "https://app.example.com/verify-email?token=")
		})).
		Return(nil).
		Once()

	result, err := m.manager.Issue(ctx, account)

	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, account.ID, stored.AccountID)
	assert.Equal(t, hashOpaqueToken(result.Ticket.Token), stored.TokenHash)
	assert.NotEqual(t, result.Ticket.Token, stored.TokenHash)
}

func TestEmailVerificationManager_IssueTransactionFailureSendsNothing(t *testing.T) {
	m := newMockedVerification(t)
	ctx := context.Background()
	account := &entity.Account{ID: uuid.New(), Email: "bob@example.com"}

	m.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Return(errors.New("could not serialize access"))

	result, err := m.manager.Issue(ctx, account)

	require.Error(t, err)
	assert.Nil(t, result)
}

func TestEmailVerificationManager_ResendRepositoryFailure(t *testing.T) {
	m := newMockedVerification(t)
	ctx := context.Background()

	m.accountRepo.EXPECT().FindByEmail(ctx, "bob@example.com").Return(nil, errors.New("connection reset"))

	_, err := m.manager.Resend(ctx, " Bob@Example.com ")

	require.Error(t, err)
	assert.False(t, errors.Is(err, domainerrors.ErrUserNotFound))
}
