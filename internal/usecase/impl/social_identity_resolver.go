package impl

import (
	"context"
	"log/slog"
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

const defaultSocialTimeout = 10 * time.Second

type socialIdentityResolver struct {
	fetchers  map[entity.ProviderType]service.SocialProfileFetcher
	txManager repository.TransactionManager
	timeout   time.Duration
	logger    *slog.Logger
}

// SocialIdentityResolverParams holds dependencies for the resolver, injected by Fx.
type SocialIdentityResolverParams struct {
	fx.In

	Fetchers  []service.SocialProfileFetcher `group:"social_fetchers"`
	TxManager repository.TransactionManager
	Config    *config.Config
	Logger    *slog.Logger
}

// NewSocialIdentityResolver registers every fetcher whose provider is enabled in config.
func NewSocialIdentityResolver(params SocialIdentityResolverParams) usecase.SocialIdentityResolver {
	timeout := defaultSocialTimeout
	if params.Config != nil && params.Config.Social != nil && params.Config.Social.Timeout > 0 {
		timeout = params.Config.Social.Timeout
	}

	fetchers := make(map[entity.ProviderType]service.SocialProfileFetcher, len(params.Fetchers))
	for _, fetcher := range params.Fetchers {
		if !providerEnabled(params.Config, fetcher.Provider()) {
			params.Logger.Info("Social provider disabled", slog.String("provider", fetcher.Provider().String()))

			continue
		}
		fetchers[fetcher.Provider()] = fetcher
	}

	return &socialIdentityResolver{
		fetchers:  fetchers,
		txManager: params.TxManager,
		timeout:   timeout,
		logger:    params.Logger,
	}
}

func providerEnabled(cfg *config.Config, provider entity.ProviderType) bool {
	if cfg == nil || cfg.Social == nil {
		return false
	}

	switch provider {
	case entity.ProviderTypeGoogle:
		return cfg.Social.Google != nil && cfg.Social.Google.Enabled
	case entity.ProviderTypeFacebook:
		return cfg.Social.Facebook != nil && cfg.Social.Facebook.Enabled
	default:
		return false
	}
}

func (r *socialIdentityResolver) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, r.logger)
}

// Resolve implements usecase.SocialIdentityResolver.
func (r *socialIdentityResolver) Resolve(ctx context.Context, provider entity.ProviderType, token string) (*service.SocialProfile, error) {
	fetcher, ok := r.fetchers[provider]
	if !ok {
		return nil, errors.Wrapf(domainerrors.ErrUnsupportedProvider, "provider %q", provider)
	}

	fetchCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	profile, err := fetcher.FetchProfile(fetchCtx, token)
	if err != nil {
		r.log(ctx).Warn("Social profile fetch failed", slog.String("provider", provider.String()), slog.Any("error", err))

		if errors.Is(err, domainerrors.ErrProviderFetchFailure) {
			return nil, err
		}

		return nil, errors.Wrap(domainerrors.ErrProviderFetchFailure, err.Error())
	}

	if profile == nil || strings.TrimSpace(profile.Email) == "" || profile.ExternalID == "" {
		return nil, errors.Wrap(domainerrors.ErrProviderFetchFailure, "provider returned an incomplete profile")
	}
	profile.Email = entity.NormalizeEmail(profile.Email)
	profile.Provider = provider

	return profile, nil
}

// LinkOrCreate implements usecase.SocialIdentityResolver.
func (r *socialIdentityResolver) LinkOrCreate(ctx context.Context, profile *service.SocialProfile) (*entity.Account, bool, error) {
	var account *entity.Account
	created := false

	err := r.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		existing, err := accountRepo.FindByEmail(ctx, entity.NormalizeEmail(profile.Email))
		if err != nil && !errors.Is(err, repository.ErrAccountNotFound) {
			return errors.Wrap(err, "failed to find account by email")
		}

		switch {
		case existing == nil:
			account = newSocialAccount(profile)
			if err := accountRepo.Create(ctx, account); err != nil {
				return errors.Wrap(err, "failed to create social account")
			}
			created = true

		case existing.Provider == entity.ProviderTypeLocal:
			linkSocialProfile(existing, profile)
			if err := accountRepo.Update(ctx, existing); err != nil {
				return errors.Wrap(err, "failed to link social profile")
			}
			account = existing

		default:
			account = existing
		}

		return nil
	})
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to link or create social account")
	}

	r.log(ctx).Info("Social identity resolved",
		slog.Any("accountID", account.ID),
		slog.String("provider", profile.Provider.String()),
		slog.Bool("created", created),
	)

	return account, created, nil
}

func newSocialAccount(profile *service.SocialProfile) *entity.Account {
	return &entity.Account{
		Email:         entity.NormalizeEmail(profile.Email),
		Role:          entity.RoleUser,
		EmailVerified: profile.EmailVerified,
		Provider:      profile.Provider,
		ProviderID:    profile.ExternalID,
		FirstName:     profile.FirstName,
		LastName:      profile.LastName,
		AvatarURL:     profile.AvatarURL,
	}
}

// linkSocialProfile attaches a provider identity to a password account. The password stays usable.
func linkSocialProfile(account *entity.Account, profile *service.SocialProfile) {
	account.Provider = profile.Provider
	account.ProviderID = profile.ExternalID
	if profile.FirstName != "" {
		account.FirstName = profile.FirstName
	}
	if profile.LastName != "" {
		account.LastName = profile.LastName
	}
	if profile.AvatarURL != "" {
		account.AvatarURL = profile.AvatarURL
	}
	if profile.EmailVerified {
		account.EmailVerified = true
	}
}
