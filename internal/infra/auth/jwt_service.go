package auth

import (
	"crypto/rsa"
	"log/slog"
	"time"

	"identity/config"
	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/service"
	"identity/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/fx"
)

const (
	signingAlgorithm = "RS256"
	tokenTypeAccess  = "access"
)

// jwtService signs access tokens with an RSA key. Verification only needs the public half.
type jwtService struct {
	privateKey *rsa.PrivateKey
	keyID      string
	issuer     string
	accessTTL  time.Duration
	publicPEM  string
	now        func() time.Time
}

// JWTServiceParams holds dependencies for the token issuer, injected by Fx.
type JWTServiceParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewJWTService loads the signing key and builds the issuer. A missing key is fatal.
func NewJWTService(params JWTServiceParams) (service.TokenIssuer, error) {
	cfg := params.Config.Auth
	if cfg == nil {
		return nil, errors.New("auth configuration is required")
	}

	key, err := loadSigningKey(cfg, params.Logger)
	if err != nil {
		return nil, err
	}

	return NewJWTServiceWithKey(key, cfg.KeyID, cfg.Issuer, cfg.AccessTokenTTL)
}

func loadSigningKey(cfg *config.AuthConfig, logger *slog.Logger) (*rsa.PrivateKey, error) {
	switch {
	case cfg.PrivateKey != "":
		return ParseRSAPrivateKey([]byte(cfg.PrivateKey))
	case cfg.PrivateKeyPath != "":
		return LoadRSAPrivateKeyFile(cfg.PrivateKeyPath)
	case cfg.GenerateKey:
		logger.Warn("No signing key configured, generating an ephemeral RSA key; tokens will not survive a restart")

		return GenerateRSAPrivateKey()
	default:
		return nil, errors.New("signing key is not configured: set auth.privateKey or auth.privateKeyPath")
	}
}

// NewJWTServiceWithKey builds an issuer around an existing key.
func NewJWTServiceWithKey(key *rsa.PrivateKey, keyID, issuer string, accessTTL time.Duration) (service.TokenIssuer, error) {
	if key == nil {
		return nil, errors.New("signing key is required")
	}
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if keyID == "" {
		keyID = KeyID(&key.PublicKey)
	}

	publicPEM, err := EncodePublicKeyPEM(&key.PublicKey)
	if err != nil {
		return nil, err
	}

	return &jwtService{
		privateKey: key,
		keyID:      keyID,
		issuer:     issuer,
		accessTTL:  accessTTL,
		publicPEM:  publicPEM,
		now:        time.Now,
	}, nil
}

// IssueAccessToken signs an access token carrying the account's id, email and role.
func (s *jwtService) IssueAccessToken(account *entity.Account) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.accessTTL)

	claims := &service.AccessClaims{
		Email: account.Email,
		Role:  account.Role,
		Type:  tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = s.keyID

	signed, err := token.SignedString(s.privateKey)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "failed to sign access token")
	}

	return signed, expiresAt, nil
}

// ValidateAccessToken verifies signature, expiry and issuer with the local public key.
func (s *jwtService) ValidateAccessToken(tokenString string) (*service.AccessClaims, error) {
	return ParseAccessToken(tokenString, func(*jwt.Token) (any, error) {
		return &s.privateKey.PublicKey, nil
	}, s.issuer, s.now)
}

// AccessTokenTTL returns the configured lifetime of access tokens.
func (s *jwtService) AccessTokenTTL() time.Duration {
	return s.accessTTL
}

// Algorithm returns the JWS algorithm used for signing.
func (s *jwtService) Algorithm() string {
	return signingAlgorithm
}

// PublicKeyPEM returns the verification key in PEM form.
func (s *jwtService) PublicKeyPEM() string {
	return s.publicPEM
}

// JWKS returns the verification key as a JWK set.
func (s *jwtService) JWKS() service.JWKSet {
	return service.JWKSet{
		Keys: []service.JWK{PublicJWK(&s.privateKey.PublicKey, s.keyID, signingAlgorithm)},
	}
}

// ParseAccessToken validates an RS256 access token with the given key function and maps
// failures onto ErrTokenExpired or ErrTokenInvalid. An empty issuer skips the issuer check.
func ParseAccessToken(tokenString string, keyFunc jwt.Keyfunc, issuer string, now func() time.Time) (*service.AccessClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{signingAlgorithm}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	if now != nil {
		opts = append(opts, jwt.WithTimeFunc(now))
	}

	claims := &service.AccessClaims{}
	if _, err := jwt.ParseWithClaims(tokenString, claims, keyFunc, opts...); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.Wrap(domainerrors.ErrTokenExpired, "access token expired")
		}

		return nil, errors.Wrap(domainerrors.ErrTokenInvalid, err.Error())
	}

	if claims.Type != tokenTypeAccess {
		return nil, errors.Wrap(domainerrors.ErrTokenInvalid, "not an access token")
	}

	accountID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrTokenInvalid, "subject is not an account id")
	}
	claims.AccountID = accountID

	return claims, nil
}
