// Package facebook resolves Facebook Login access tokens through the Graph API.
package facebook

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"identity/config"
	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/service"
	"identity/internal/errors"

	"golang.org/x/oauth2"
)

const (
	defaultGraphURL = "https://graph.facebook.com"
	defaultTimeout  = 10 * time.Second
	profileFields   = "id,email,first_name,last_name,picture.type(large)"
	maxResponseSize = 1 << 20
)

type graphProfile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Picture   struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	} `json:"picture"`
}

type graphError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// Fetcher implements service.SocialProfileFetcher for Facebook.
type Fetcher struct {
	graphURL   string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// NewFetcher creates a Facebook profile fetcher from config.
func NewFetcher(cfg *config.Config, logger *slog.Logger) *Fetcher {
	fetcher := &Fetcher{
		graphURL: defaultGraphURL,
		timeout:  defaultTimeout,
		logger:   logger,
	}
	if cfg.Social != nil {
		if cfg.Social.Timeout > 0 {
			fetcher.timeout = cfg.Social.Timeout
		}
		if cfg.Social.Facebook != nil && cfg.Social.Facebook.GraphURL != "" {
			fetcher.graphURL = strings.TrimRight(cfg.Social.Facebook.GraphURL, "/")
		}
	}
	fetcher.httpClient = &http.Client{Timeout: fetcher.timeout}

	return fetcher
}

// Provider implements service.SocialProfileFetcher.
func (f *Fetcher) Provider() entity.ProviderType {
	return entity.ProviderTypeFacebook
}

// FetchProfile implements service.SocialProfileFetcher.
// Facebook only returns an email once the user confirmed it, so a present email is verified.
func (f *Fetcher) FetchProfile(ctx context.Context, token string) (*service.SocialProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	profile, err := f.fetch(ctx, token)
	if err != nil {
		f.logger.Warn("Facebook profile fetch failed", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrProviderFetchFailure, err.Error())
	}

	if profile.ID == "" {
		return nil, errors.Wrap(domainerrors.ErrProviderFetchFailure, "facebook profile has no id")
	}
	if profile.Email == "" {
		return nil, errors.Wrap(domainerrors.ErrProviderFetchFailure, "facebook profile has no email")
	}

	return &service.SocialProfile{
		ExternalID:    profile.ID,
		Email:         profile.Email,
		FirstName:     profile.FirstName,
		LastName:      profile.LastName,
		AvatarURL:     profile.Picture.Data.URL,
		Provider:      entity.ProviderTypeFacebook,
		EmailVerified: true,
	}, nil
}

func (f *Fetcher) fetch(ctx context.Context, token string) (*graphProfile, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, f.httpClient)
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))

	endpoint := f.graphURL + "/me?fields=" + url.QueryEscape(profileFields)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create graph request")
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "graph request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read graph response")
	}

	if resp.StatusCode != http.StatusOK {
		var gerr graphError
		if json.Unmarshal(body, &gerr) == nil && gerr.Error.Message != "" {
			return nil, errors.Errorf("graph API returned %d: %s", resp.StatusCode, gerr.Error.Message)
		}

		return nil, errors.Errorf("graph API returned %d", resp.StatusCode)
	}

	var profile graphProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, errors.Wrap(err, "malformed graph response")
	}

	return &profile, nil
}
