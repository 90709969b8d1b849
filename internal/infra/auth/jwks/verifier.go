// Package jwks verifies access tokens against a JSON Web Key Set, the same way an
// independent resource server would.
package jwks

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"identity/config"
	"identity/internal/domain/service"
	"identity/internal/errors"
	"identity/internal/infra/auth"

	"github.com/MicahParks/keyfunc/v2"
	"go.uber.org/fx"
)

// Verifier validates RS256 access tokens using keys from a JWK set.
type Verifier struct {
	keys   *keyfunc.JWKS
	issuer string
}

// NewVerifierFromJSON builds a verifier from a static JWK set document.
func NewVerifierFromJSON(raw json.RawMessage, issuer string) (*Verifier, error) {
	keys, err := keyfunc.NewJSON(raw)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse JWK set")
	}

	return &Verifier{keys: keys, issuer: issuer}, nil
}

// NewVerifierFromSet builds a verifier from an in-memory JWK set.
func NewVerifierFromSet(set service.JWKSet, issuer string) (*Verifier, error) {
	raw, err := json.Marshal(set)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return NewVerifierFromJSON(raw, issuer)
}

// NewRemoteVerifier fetches the JWK set from url and refreshes it in the background.
// Unknown key ids trigger a rate limited refresh so key rotation is picked up.
func NewRemoteVerifier(url, issuer string, logger *slog.Logger) (*Verifier, error) {
	keys, err := keyfunc.Get(url, keyfunc.Options{
		RefreshErrorHandler: func(err error) {
			logger.Warn("Failed to refresh JWK set", slog.String("url", url), slog.Any("error", err))
		},
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  5 * time.Minute,
		RefreshTimeout:    10 * time.Second,
		RefreshUnknownKID: true,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch JWK set from %s", url)
	}

	return &Verifier{keys: keys, issuer: issuer}, nil
}

// ValidateAccessToken implements service.AccessTokenVerifier.
func (v *Verifier) ValidateAccessToken(token string) (*service.AccessClaims, error) {
	return auth.ParseAccessToken(token, v.keys.Keyfunc, v.issuer, nil)
}

// Close stops the background refresh, if any.
func (v *Verifier) Close() {
	v.keys.EndBackground()
}

// VerifierParams holds dependencies for NewAccessTokenVerifier, injected by Fx.
type VerifierParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Issuer service.TokenIssuer
	Logger *slog.Logger
}

// NewAccessTokenVerifier selects how inbound bearer tokens are checked: against a remote
// key set when auth.jwksUrl is configured, otherwise against the local issuer's key.
func NewAccessTokenVerifier(params VerifierParams) (service.AccessTokenVerifier, error) {
	if params.Config.Auth == nil || params.Config.Auth.JWKSURL == "" {
		return params.Issuer, nil
	}

	verifier, err := NewRemoteVerifier(params.Config.Auth.JWKSURL, params.Config.Auth.Issuer, params.Logger)
	if err != nil {
		return nil, err
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			verifier.Close()

			return nil
		},
	})

	params.Logger.Info("Verifying access tokens against remote JWK set", slog.String("url", params.Config.Auth.JWKSURL))

	return verifier, nil
}
