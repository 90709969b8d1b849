package google

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"identity/config"
	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/service"
	"identity/internal/errors"

	"golang.org/x/oauth2"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/idtoken"
	"google.golang.org/api/option"
)

const defaultTimeout = 10 * time.Second

// idTokenValidator matches idtoken.Validate.
type idTokenValidator func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// Fetcher resolves Google tokens into social profiles. ID tokens (JWTs) are verified
// locally against Google's certificates; opaque access tokens are exchanged through
// the OAuth2 userinfo API.
type Fetcher struct {
	clientID         string
	userInfoEndpoint string
	timeout          time.Duration
	httpClient       *http.Client
	validate         idTokenValidator
	logger           *slog.Logger
}

// NewFetcher creates a Google profile fetcher from config. An enabled provider needs
// a client ID, since ID tokens are only accepted for that audience.
func NewFetcher(cfg *config.Config, logger *slog.Logger) (*Fetcher, error) {
	fetcher := &Fetcher{
		timeout:  defaultTimeout,
		validate: idtoken.Validate,
		logger:   logger,
	}
	if cfg.Social != nil {
		if cfg.Social.Timeout > 0 {
			fetcher.timeout = cfg.Social.Timeout
		}
		if google := cfg.Social.Google; google != nil {
			fetcher.clientID = strings.TrimSpace(google.ClientID)
			fetcher.userInfoEndpoint = google.UserInfoEndpoint
			if google.Enabled && fetcher.clientID == "" {
				return nil, errors.New("social.google.clientId is required when google login is enabled")
			}
		}
	}
	fetcher.httpClient = &http.Client{Timeout: fetcher.timeout}

	return fetcher, nil
}

// Provider implements service.SocialProfileFetcher.
func (f *Fetcher) Provider() entity.ProviderType {
	return entity.ProviderTypeGoogle
}

// FetchProfile implements service.SocialProfileFetcher.
func (f *Fetcher) FetchProfile(ctx context.Context, token string) (*service.SocialProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	var (
		profile *service.SocialProfile
		err     error
	)
	if isJWT(token) {
		profile, err = f.fromIDToken(ctx, token)
	} else {
		profile, err = f.fromUserInfo(ctx, token)
	}
	if err != nil {
		f.logger.Warn("Google profile fetch failed", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrProviderFetchFailure, err.Error())
	}

	if profile.ExternalID == "" {
		return nil, errors.Wrap(domainerrors.ErrProviderFetchFailure, "google profile has no subject")
	}
	if profile.Email == "" {
		return nil, errors.Wrap(domainerrors.ErrProviderFetchFailure, "google profile has no email")
	}

	return profile, nil
}

func (f *Fetcher) fromIDToken(ctx context.Context, token string) (*service.SocialProfile, error) {
	// idtoken.Validate skips the audience check for an empty audience.
	if f.clientID == "" {
		return nil, errors.New("google client ID not configured")
	}

	payload, err := f.validate(ctx, token, f.clientID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to validate ID token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return nil, errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	emailVerified, _ := payload.Claims["email_verified"].(bool)

	return &service.SocialProfile{
		ExternalID:    payload.Subject,
		Email:         stringClaim(payload.Claims, "email"),
		FirstName:     stringClaim(payload.Claims, "given_name"),
		LastName:      stringClaim(payload.Claims, "family_name"),
		AvatarURL:     stringClaim(payload.Claims, "picture"),
		Provider:      entity.ProviderTypeGoogle,
		EmailVerified: emailVerified,
	}, nil
}

func (f *Fetcher) fromUserInfo(ctx context.Context, token string) (*service.SocialProfile, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, f.httpClient)
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))

	opts := []option.ClientOption{option.WithHTTPClient(client)}
	if f.userInfoEndpoint != "" {
		opts = append(opts, option.WithEndpoint(f.userInfoEndpoint))
	}

	api, err := oauth2api.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create userinfo client")
	}

	info, err := api.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, errors.Wrap(err, "userinfo request failed")
	}

	emailVerified := info.VerifiedEmail != nil && *info.VerifiedEmail

	return &service.SocialProfile{
		ExternalID:    info.Id,
		Email:         info.Email,
		FirstName:     info.GivenName,
		LastName:      info.FamilyName,
		AvatarURL:     info.Picture,
		Provider:      entity.ProviderTypeGoogle,
		EmailVerified: emailVerified,
	}, nil
}

func isJWT(token string) bool {
	return strings.Count(token, ".") == 2
}

func stringClaim(claims map[string]any, key string) string {
	value, _ := claims[key].(string)

	return value
}
