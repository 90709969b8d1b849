package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"identity/config"
	deliverycontext "identity/internal/delivery/context"
	"identity/internal/domain/constants"
	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/repository"
	"identity/internal/domain/service"
	"identity/internal/errors"
	"identity/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const defaultPasswordResetTTL = time.Hour

// identityAuthority implements the IdentityAuthority interface.
type identityAuthority struct {
	txManager     repository.TransactionManager
	accountRepo   repository.AccountRepository
	resetRepo     repository.PasswordResetRepository
	hasher        service.PasswordHasher
	tokens        service.TokenIssuer
	authenticator usecase.CredentialAuthenticator
	sessions      usecase.RefreshTokenStore
	verification  usecase.EmailVerificationManager
	social        usecase.SocialIdentityResolver
	notifier      service.Notifier
	dispatcher    service.Dispatcher
	events        *accountEventPublisher
	resetTTL      time.Duration
	frontendURL   string
	now           func() time.Time
	logger        *slog.Logger
}

// IdentityAuthorityParams holds dependencies for the IdentityAuthority, injected by Fx.
type IdentityAuthorityParams struct {
	fx.In

	TxManager     repository.TransactionManager
	AccountRepo   repository.AccountRepository
	ResetRepo     repository.PasswordResetRepository
	Hasher        service.PasswordHasher
	Tokens        service.TokenIssuer
	Authenticator usecase.CredentialAuthenticator
	Sessions      usecase.RefreshTokenStore
	Verification  usecase.EmailVerificationManager
	Social        usecase.SocialIdentityResolver
	Notifier      service.Notifier
	Publisher     service.EventPublisher
	Dispatcher    service.Dispatcher
	Config        *config.Config
	Logger        *slog.Logger
}

// NewIdentityAuthority is the constructor for identityAuthority.
func NewIdentityAuthority(params IdentityAuthorityParams) usecase.IdentityAuthority {
	resetTTL := defaultPasswordResetTTL
	frontendURL := ""
	if params.Config != nil {
		if params.Config.PasswordReset != nil && params.Config.PasswordReset.TTL > 0 {
			resetTTL = params.Config.PasswordReset.TTL
		}
		frontendURL = params.Config.Frontend.URL
	}

	return &identityAuthority{
		txManager:     params.TxManager,
		accountRepo:   params.AccountRepo,
		resetRepo:     params.ResetRepo,
		hasher:        params.Hasher,
		tokens:        params.Tokens,
		authenticator: params.Authenticator,
		sessions:      params.Sessions,
		verification:  params.Verification,
		social:        params.Social,
		notifier:      params.Notifier,
		dispatcher:    params.Dispatcher,
		events: &accountEventPublisher{
			publisher:  params.Publisher,
			dispatcher: params.Dispatcher,
			now:        time.Now,
		},
		resetTTL:    resetTTL,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		now:         time.Now,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (a *identityAuthority) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, a.logger)
}

// Register creates a password account, signs it in and starts email verification.
func (a *identityAuthority) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthResult, error) {
	email := entity.NormalizeEmail(input.Email)
	a.log(ctx).Info("Starting registration", slog.String("email", email))

	if email == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "email is required")
	}
	if err := a.hasher.ValidatePasswordStrength(input.Password); err != nil {
		a.log(ctx).Warn("Password validation failed during registration", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "password does not meet security requirements")
	}

	// Hash outside any transaction; bcrypt is CPU-bound.
	passwordHash, err := a.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	now := a.now().UTC()
	account := &entity.Account{
		Email:               email,
		PasswordHash:        passwordHash,
		Role:                entity.RoleUser,
		Provider:            entity.ProviderTypeLocal,
		FirstName:           strings.TrimSpace(input.FirstName),
		LastName:            strings.TrimSpace(input.LastName),
		Phone:               strings.TrimSpace(input.Phone),
		PasswordLastChanged: &now,
	}

	// The account, its first session and its verification ticket commit together.
	var session *entity.RefreshSession
	var issued *usecase.IssueResult
	err = a.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		if err = repoFactory.AccountRepo().Create(ctx, account); err != nil {
			return errors.Wrap(err, "failed to create account")
		}

		session, err = a.sessions.CreateWithRepo(ctx, repoFactory.RefreshSessionRepo(), account, input.DeviceInfo)
		if err != nil {
			return errors.Wrap(err, "failed to create refresh session")
		}

		issued, err = a.verification.IssueWithRepo(ctx, repoFactory, account)
		if err != nil {
			return errors.Wrap(err, "failed to issue verification ticket")
		}

		return nil
	})
	if err != nil {
		a.log(ctx).Warn("Registration failed", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to register account")
	}

	result, err := a.accessResult(account)
	if err != nil {
		return nil, err
	}
	result.RefreshToken = session.Token
	result.IsNewAccount = true

	a.verification.SendVerificationEmail(ctx, account, issued)
	a.events.publish(ctx, a.log(ctx), constants.EventUserCreated, account)
	a.log(ctx).Info("Registration completed", slog.Any("accountID", account.ID))

	return result, nil
}

// Login authenticates with email and password and opens a new session.
func (a *identityAuthority) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthResult, error) {
	account, err := a.authenticator.Authenticate(ctx, input.Email, input.Password)
	if err != nil {
		a.log(ctx).Warn("Login failed", slog.String("email", entity.NormalizeEmail(input.Email)), slog.Any("error", err))

		return nil, errors.Wrap(err, "login failed")
	}

	result, err := a.signIn(ctx, account, input.DeviceInfo, false)
	if err != nil {
		return nil, err
	}
	a.log(ctx).Debug("User logged in successfully", slog.Any("accountID", account.ID))

	return result, nil
}

// RefreshAccessToken mints a new access token. The refresh token is returned unchanged.
func (a *identityAuthority) RefreshAccessToken(ctx context.Context, refreshToken string) (*usecase.AuthResult, error) {
	account, err := a.sessions.VerifyAndConsume(ctx, refreshToken)
	if err != nil {
		return nil, errors.Wrap(err, "failed to refresh access token")
	}

	result, err := a.accessResult(account)
	if err != nil {
		return nil, err
	}
	result.RefreshToken = refreshToken

	return result, nil
}

// Logout revokes one refresh session. Unknown tokens succeed.
func (a *identityAuthority) Logout(ctx context.Context, refreshToken string) error {
	if err := a.sessions.Revoke(ctx, refreshToken); err != nil {
		return errors.Wrap(err, "failed to logout")
	}

	return nil
}

// LogoutAll revokes every session of the account.
func (a *identityAuthority) LogoutAll(ctx context.Context, accountID uuid.UUID) error {
	if _, err := a.sessions.RevokeAll(ctx, accountID); err != nil {
		return errors.Wrap(err, "failed to logout all sessions")
	}

	return nil
}

// SocialLogin signs in with a provider token, linking or creating the account by email.
func (a *identityAuthority) SocialLogin(ctx context.Context, input *usecase.SocialLoginInput) (*usecase.AuthResult, error) {
	provider := entity.ParseProviderType(input.Provider)
	if !provider.IsSocial() {
		return nil, errors.Wrapf(domainerrors.ErrUnsupportedProvider, "provider %q", input.Provider)
	}

	profile, err := a.social.Resolve(ctx, provider, input.AccessToken)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve social identity")
	}

	account, created, err := a.social.LinkOrCreate(ctx, profile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to link social identity")
	}

	deviceInfo := input.DeviceInfo
	if strings.TrimSpace(deviceInfo) == "" {
		deviceInfo = "Social Login - " + provider.String()
	}

	result, err := a.signIn(ctx, account, deviceInfo, created)
	if err != nil {
		return nil, err
	}

	if created {
		a.events.publish(ctx, a.log(ctx), constants.EventUserCreated, account)
	} else {
		a.events.publish(ctx, a.log(ctx), constants.EventUserUpdated, account)
	}

	return result, nil
}

// signIn opens a refresh session and signs an access token for the account.
func (a *identityAuthority) signIn(ctx context.Context, account *entity.Account, deviceInfo string, isNew bool) (*usecase.AuthResult, error) {
	session, err := a.sessions.Create(ctx, account, deviceInfo)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create refresh session")
	}

	result, err := a.accessResult(account)
	if err != nil {
		return nil, err
	}
	result.RefreshToken = session.Token
	result.IsNewAccount = isNew

	return result, nil
}

func (a *identityAuthority) accessResult(account *entity.Account) (*usecase.AuthResult, error) {
	accessToken, _, err := a.tokens.IssueAccessToken(account)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	return &usecase.AuthResult{
		AccessToken:   accessToken,
		TokenType:     constants.TokenTypeBearer,
		ExpiresIn:     int64(a.tokens.AccessTokenTTL().Seconds()),
		AccountID:     account.ID,
		Email:         account.Email,
		Role:          account.Role,
		EmailVerified: account.EmailVerified,
	}, nil
}
