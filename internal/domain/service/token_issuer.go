package service

import (
	"time"

	"identity/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessClaims are the claims carried by every access token.
type AccessClaims struct {
	AccountID uuid.UUID   `json:"-"`
	Email     string      `json:"email"`
	Role      entity.Role `json:"role"`
	Type      string      `json:"typ"`
	jwt.RegisteredClaims
}

// JWK is a single RSA public key in JSON Web Key form.
type JWK struct {
	Kty string `json:"kty"`
	Use string `json:"use"`
	Alg string `json:"alg"`
	Kid string `json:"kid"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// JWKSet is the document served at the JWKS endpoint.
type JWKSet struct {
	Keys []JWK `json:"keys"`
}

// AccessTokenVerifier validates access tokens offline.
type AccessTokenVerifier interface {
	// ValidateAccessToken returns the claims of a valid token, or domainerrors.ErrTokenExpired /
	// domainerrors.ErrTokenInvalid.
	ValidateAccessToken(token string) (*AccessClaims, error)
}

// TokenIssuer mints signed access tokens and exposes the material needed to verify them.
type TokenIssuer interface {
	AccessTokenVerifier

	// IssueAccessToken signs a short-lived access token for the account.
	IssueAccessToken(account *entity.Account) (token string, expiresAt time.Time, err error)

	// AccessTokenTTL is the lifetime of issued access tokens.
	AccessTokenTTL() time.Duration

	// Algorithm is the JWS algorithm tag, e.g. "RS256".
	Algorithm() string

	// PublicKeyPEM returns the PKIX public key in PEM form.
	PublicKeyPEM() string

	// JWKS returns the public key as a JWK set.
	JWKS() JWKSet
}
