package impl

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"identity/config"
	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/repository"
	"identity/internal/domain/service"
	"identity/internal/errors"

	"github.com/google/uuid"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Auth:          &config.AuthConfig{RefreshTokenTTL: 7 * 24 * time.Hour},
		Verification:  &config.TicketConfig{TTL: 24 * time.Hour},
		PasswordReset: &config.TicketConfig{TTL: time.Hour},
		Social: &config.SocialConfig{
			Timeout:  time.Second,
			Google:   &config.GoogleOAuthConfig{Enabled: true, ClientID: "client-123"},
			Facebook: &config.FacebookOAuthConfig{Enabled: true},
		},
	}
	cfg.Frontend.URL = "https://app.example.com/"

	return cfg
}

// testClock is a settable time source shared by every component under test.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

// memStore is an in-memory implementation of every repository. Execute serializes
// transactions and restores a snapshot when the callback fails.
type memStore struct {
	mu       sync.Mutex
	txMu     sync.Mutex
	seq      int
	order    map[uuid.UUID]int
	accounts map[uuid.UUID]entity.Account
	sessions map[uuid.UUID]entity.RefreshSession
	tickets  map[uuid.UUID]entity.EmailVerificationTicket
	resets   map[uuid.UUID]entity.PasswordResetTicket
	failures map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		order:    make(map[uuid.UUID]int),
		accounts: make(map[uuid.UUID]entity.Account),
		sessions: make(map[uuid.UUID]entity.RefreshSession),
		tickets:  make(map[uuid.UUID]entity.EmailVerificationTicket),
		resets:   make(map[uuid.UUID]entity.PasswordResetTicket),
		failures: make(map[string]error),
	}
}

// failOn makes the named operation return err until cleared with a nil err.
func (s *memStore) failOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err == nil {
		delete(s.failures, op)

		return
	}
	s.failures[op] = err
}

func (s *memStore) failure(op string) error {
	return s.failures[op]
}

type memSnapshot struct {
	accounts map[uuid.UUID]entity.Account
	sessions map[uuid.UUID]entity.RefreshSession
	tickets  map[uuid.UUID]entity.EmailVerificationTicket
	resets   map[uuid.UUID]entity.PasswordResetTicket
}

func copyMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}

	return out
}

func (s *memStore) snapshot() memSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return memSnapshot{
		accounts: copyMap(s.accounts),
		sessions: copyMap(s.sessions),
		tickets:  copyMap(s.tickets),
		resets:   copyMap(s.resets),
	}
}

func (s *memStore) restore(snap memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = snap.accounts
	s.sessions = snap.sessions
	s.tickets = snap.tickets
	s.resets = snap.resets
}

// Execute implements repository.TransactionManager.
func (s *memStore) Execute(_ context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(s); err != nil {
		s.restore(snap)

		return err
	}

	return nil
}

func (s *memStore) AccountRepo() repository.AccountRepository                       { return memAccountRepo{s} }
func (s *memStore) RefreshSessionRepo() repository.RefreshSessionRepository         { return memSessionRepo{s} }
func (s *memStore) VerificationTicketRepo() repository.VerificationTicketRepository { return memTicketRepo{s} }
func (s *memStore) PasswordResetRepo() repository.PasswordResetRepository           { return memResetRepo{s} }

func (s *memStore) accountCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.accounts)
}

func (s *memStore) accountByEmail(email string) (entity.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, account := range s.accounts {
		if account.Email == email {
			return account, true
		}
	}

	return entity.Account{}, false
}

func (s *memStore) sessionsOf(accountID uuid.UUID) []entity.RefreshSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []entity.RefreshSession
	for _, session := range s.sessions {
		if session.AccountID == accountID {
			out = append(out, session)
		}
	}

	return out
}

func (s *memStore) ticketsOf(accountID uuid.UUID) []entity.EmailVerificationTicket {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []entity.EmailVerificationTicket
	for _, ticket := range s.tickets {
		if ticket.AccountID == accountID {
			out = append(out, ticket)
		}
	}

	return out
}

func (s *memStore) resetsOf(accountID uuid.UUID) []entity.PasswordResetTicket {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []entity.PasswordResetTicket
	for _, ticket := range s.resets {
		if ticket.AccountID == accountID {
			out = append(out, ticket)
		}
	}

	return out
}

type memAccountRepo struct{ s *memStore }

func (r memAccountRepo) Create(_ context.Context, account *entity.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("account.create"); err != nil {
		return err
	}
	for _, existing := range r.s.accounts {
		if existing.Email == account.Email {
			return domainerrors.ErrEmailAlreadyInUse.WrapMessage("duplicate email")
		}
		if account.ProviderID != "" && existing.Provider == account.Provider && existing.ProviderID == account.ProviderID {
			return domainerrors.ErrSocialIdentityInUse.WrapMessage("duplicate provider identity")
		}
	}
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	if account.Role == "" {
		account.Role = entity.RoleUser
	}
	r.s.seq++
	r.s.order[account.ID] = r.s.seq
	r.s.accounts[account.ID] = *account

	return nil
}

func (r memAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	account, ok := r.s.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	return &account, nil
}

// LockByID needs no lock of its own: Execute already serializes transactions.
func (r memAccountRepo) LockByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	r.s.mu.Lock()
	err := r.s.failure("account.lock")
	r.s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	return r.FindByID(ctx, id)
}

func (r memAccountRepo) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("account.findByEmail"); err != nil {
		return nil, err
	}
	for _, account := range r.s.accounts {
		if account.Email == email {
			return &account, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (r memAccountRepo) Update(_ context.Context, account *entity.Account) error {
	return r.mutate(account.ID, func(stored *entity.Account) {
		*stored = *account
	})
}

func (r memAccountRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string, changedAt time.Time) error {
	return r.mutate(id, func(stored *entity.Account) {
		stored.PasswordHash = passwordHash
		stored.PasswordLastChanged = &changedAt
	})
}

func (r memAccountRepo) UpdateRole(_ context.Context, id uuid.UUID, role entity.Role) error {
	return r.mutate(id, func(stored *entity.Account) {
		stored.Role = role
	})
}

func (r memAccountRepo) MarkEmailVerified(_ context.Context, id uuid.UUID) error {
	return r.mutate(id, func(stored *entity.Account) {
		stored.EmailVerified = true
	})
}

func (r memAccountRepo) mutate(id uuid.UUID, fn func(*entity.Account)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.accounts[id]
	if !ok {
		return repository.ErrAccountNotFound
	}
	fn(&stored)
	r.s.accounts[id] = stored

	return nil
}

func (r memAccountRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.accounts[id]; !ok {
		return repository.ErrAccountNotFound
	}
	delete(r.s.accounts, id)

	return nil
}

func (r memAccountRepo) List(_ context.Context, offset, limit int) ([]*entity.Account, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all := make([]entity.Account, 0, len(r.s.accounts))
	for _, account := range r.s.accounts {
		all = append(all, account)
	}
	sort.Slice(all, func(i, j int) bool {
		return r.s.order[all[i].ID] < r.s.order[all[j].ID]
	})

	var page []*entity.Account
	for i := offset; i < len(all) && i < offset+limit; i++ {
		account := all[i]
		page = append(page, &account)
	}

	return page, int64(len(all)), nil
}

type memSessionRepo struct{ s *memStore }

func (r memSessionRepo) Create(_ context.Context, session *entity.RefreshSession) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("session.create"); err != nil {
		return err
	}
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	stored := *session
	stored.Token = ""
	r.s.sessions[session.ID] = stored

	return nil
}

func (r memSessionRepo) FindByTokenHash(_ context.Context, tokenHash string) (*entity.RefreshSession, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, session := range r.s.sessions {
		if session.TokenHash == tokenHash {
			return &session, nil
		}
	}

	return nil, repository.ErrRefreshSessionNotFound
}

func (r memSessionRepo) FindByTokenHashForUpdate(ctx context.Context, tokenHash string) (*entity.RefreshSession, error) {
	return r.FindByTokenHash(ctx, tokenHash)
}

func (r memSessionRepo) Revoke(_ context.Context, id uuid.UUID, at time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	session, ok := r.s.sessions[id]
	if !ok || session.Revoked {
		return false, nil
	}
	session.Revoked = true
	session.RevokedAt = &at
	r.s.sessions[id] = session

	return true, nil
}

func (r memSessionRepo) RevokeByTokenHash(ctx context.Context, tokenHash string, at time.Time) (bool, error) {
	session, err := r.FindByTokenHash(ctx, tokenHash)
	if err != nil {
		return false, nil //nolint:nilerr // unknown hashes report false
	}

	return r.Revoke(ctx, session.ID, at)
}

func (r memSessionRepo) RevokeAllByAccountID(_ context.Context, accountID uuid.UUID, at time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("session.revokeAll"); err != nil {
		return 0, err
	}
	var count int64
	for id, session := range r.s.sessions {
		if session.AccountID != accountID || session.Revoked {
			continue
		}
		session.Revoked = true
		session.RevokedAt = &at
		r.s.sessions[id] = session
		count++
	}

	return count, nil
}

func (r memSessionRepo) Touch(_ context.Context, id uuid.UUID, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	session, ok := r.s.sessions[id]
	if !ok {
		return repository.ErrRefreshSessionNotFound
	}
	session.LastUsedAt = &at
	r.s.sessions[id] = session

	return nil
}

func (r memSessionRepo) ListActiveByAccountID(_ context.Context, accountID uuid.UUID, now time.Time) ([]*entity.RefreshSession, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*entity.RefreshSession
	for _, session := range r.s.sessions {
		if session.AccountID == accountID && session.IsActive(now) {
			out = append(out, &session)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].IssuedAt.After(out[j].IssuedAt)
	})

	return out, nil
}

func (r memSessionRepo) DeleteExpiredBefore(_ context.Context, cutoff time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var count int64
	for id, session := range r.s.sessions {
		expired := session.ExpiresAt.Before(cutoff)
		revokedLongAgo := session.Revoked && session.RevokedAt != nil && session.RevokedAt.Before(cutoff)
		if expired || revokedLongAgo {
			delete(r.s.sessions, id)
			count++
		}
	}

	return count, nil
}

type memTicketRepo struct{ s *memStore }

func (r memTicketRepo) Create(_ context.Context, ticket *entity.EmailVerificationTicket) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("ticket.create"); err != nil {
		return err
	}
	if ticket.ID == uuid.Nil {
		ticket.ID = uuid.New()
	}
	stored := *ticket
	stored.Token = ""
	r.s.tickets[ticket.ID] = stored

	return nil
}

func (r memTicketRepo) FindByTokenHash(_ context.Context, tokenHash string) (*entity.EmailVerificationTicket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, ticket := range r.s.tickets {
		if ticket.TokenHash == tokenHash {
			return &ticket, nil
		}
	}

	return nil, repository.ErrVerificationTicketNotFound
}

func (r memTicketRepo) DeleteUnverifiedByAccountID(_ context.Context, accountID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var count int64
	for id, ticket := range r.s.tickets {
		if ticket.AccountID == accountID && !ticket.IsVerified() {
			delete(r.s.tickets, id)
			count++
		}
	}

	return count, nil
}

func (r memTicketRepo) MarkVerified(_ context.Context, id uuid.UUID, at time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ticket, ok := r.s.tickets[id]
	if !ok || ticket.IsVerified() {
		return false, nil
	}
	ticket.VerifiedAt = &at
	r.s.tickets[id] = ticket

	return true, nil
}

func (r memTicketRepo) HasPendingByAccountID(_ context.Context, accountID uuid.UUID, now time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, ticket := range r.s.tickets {
		if ticket.AccountID == accountID && ticket.IsPending(now) {
			return true, nil
		}
	}

	return false, nil
}

func (r memTicketRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var count int64
	for id, ticket := range r.s.tickets {
		if ticket.ExpiresAt.Before(now) {
			delete(r.s.tickets, id)
			count++
		}
	}

	return count, nil
}

func (r memTicketRepo) DeleteByAccountID(_ context.Context, accountID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, ticket := range r.s.tickets {
		if ticket.AccountID == accountID {
			delete(r.s.tickets, id)
		}
	}

	return nil
}

type memResetRepo struct{ s *memStore }

func (r memResetRepo) Create(_ context.Context, ticket *entity.PasswordResetTicket) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if ticket.ID == uuid.Nil {
		ticket.ID = uuid.New()
	}
	stored := *ticket
	stored.Token = ""
	r.s.resets[ticket.ID] = stored

	return nil
}

func (r memResetRepo) FindByTokenHash(_ context.Context, tokenHash string) (*entity.PasswordResetTicket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, ticket := range r.s.resets {
		if ticket.TokenHash == tokenHash {
			return &ticket, nil
		}
	}

	return nil, repository.ErrPasswordResetTicketNotFound
}

func (r memResetRepo) DeleteUnusedByAccountID(_ context.Context, accountID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var count int64
	for id, ticket := range r.s.resets {
		if ticket.AccountID == accountID && !ticket.IsUsed() {
			delete(r.s.resets, id)
			count++
		}
	}

	return count, nil
}

func (r memResetRepo) MarkUsed(_ context.Context, id uuid.UUID, at time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ticket, ok := r.s.resets[id]
	if !ok || ticket.IsUsed() {
		return false, nil
	}
	ticket.UsedAt = &at
	r.s.resets[id] = ticket

	return true, nil
}

func (r memResetRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var count int64
	for id, ticket := range r.s.resets {
		if ticket.ExpiresAt.Before(now) {
			delete(r.s.resets, id)
			count++
		}
	}

	return count, nil
}

func (r memResetRepo) DeleteByAccountID(_ context.Context, accountID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, ticket := range r.s.resets {
		if ticket.AccountID == accountID {
			delete(r.s.resets, id)
		}
	}

	return nil
}

// fakeHasher stores passwords with a readable prefix and counts comparisons.
type fakeHasher struct {
	mu     sync.Mutex
	checks int
}

func (h *fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (h *fakeHasher) Check(password, hash string) bool {
	h.mu.Lock()
	h.checks++
	h.mu.Unlock()

	return hash == "hashed:"+password
}

func (h *fakeHasher) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return errors.Wrap(domainerrors.ErrPasswordStrength, "password must be at least 8 characters long")
	}

	return nil
}

func (h *fakeHasher) checkCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.checks
}

// fakeTokenIssuer signs nothing; tokens encode the account and role for assertions.
type fakeTokenIssuer struct {
	mu     sync.Mutex
	issued int
}

func (f *fakeTokenIssuer) IssueAccessToken(account *entity.Account) (string, time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.issued++

	return "access." + account.ID.String() + "." + account.Role.String(), time.Now().Add(15 * time.Minute), nil
}

func (f *fakeTokenIssuer) ValidateAccessToken(token string) (*service.AccessClaims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 || parts[0] != "access" {
		return nil, domainerrors.ErrTokenInvalid
	}
	id, err := uuid.Parse(parts[1])
	if err != nil {
		return nil, domainerrors.ErrTokenInvalid
	}

	return &service.AccessClaims{AccountID: id, Role: entity.Role(parts[2]), Type: "access"}, nil
}

func (f *fakeTokenIssuer) AccessTokenTTL() time.Duration { return 15 * time.Minute }
func (f *fakeTokenIssuer) Algorithm() string             { return "RS256" }
func (f *fakeTokenIssuer) PublicKeyPEM() string          { return "" }
func (f *fakeTokenIssuer) JWKS() service.JWKSet          { return service.JWKSet{} }

// inlineDispatcher runs tasks synchronously so assertions can follow the call.
type inlineDispatcher struct {
	mu    sync.Mutex
	names []string
	errs  []error
}

func (d *inlineDispatcher) Go(name string, task func(ctx context.Context) error) bool {
	err := task(context.Background())

	d.mu.Lock()
	defer d.mu.Unlock()
	d.names = append(d.names, name)
	if err != nil {
		d.errs = append(d.errs, err)
	}

	return true
}

func (d *inlineDispatcher) taskNames() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]string(nil), d.names...)
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []service.Notification
	err  error
}

func (n *recordingNotifier) Notify(_ context.Context, notification service.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, notification)

	return nil
}

func (n *recordingNotifier) ofKind(kind service.NotificationKind) []service.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	var out []service.Notification
	for _, notification := range n.sent {
		if notification.Kind == kind {
			out = append(out, notification)
		}
	}

	return out
}

type publishedEvent struct {
	Topic   string
	Key     string
	Payload []byte
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(_ context.Context, topic, key string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, publishedEvent{Topic: topic, Key: key, Payload: payload})

	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]string, 0, len(p.events))
	for _, event := range p.events {
		out = append(out, event.Topic)
	}

	return out
}

func (p *recordingPublisher) last() publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.events[len(p.events)-1]
}

type fakeFetcher struct {
	provider entity.ProviderType
	profile  *service.SocialProfile
	err      error
	tokens   []string
}

func (f *fakeFetcher) Provider() entity.ProviderType { return f.provider }

func (f *fakeFetcher) FetchProfile(ctx context.Context, token string) (*service.SocialProfile, error) {
	f.tokens = append(f.tokens, token)
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("fetch called without a deadline")
	}
	if f.profile == nil {
		return nil, nil
	}
	profile := *f.profile

	return &profile, nil
}
