package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"identity/config"
	apimiddleware "identity/internal/delivery/api/middleware"
	"identity/internal/delivery/api/router"
	"identity/internal/delivery/api/router/handler"
	deliverycontext "identity/internal/delivery/context"
	"identity/internal/domain/entity"
	"identity/internal/domain/service"
	"identity/internal/errors"
	"identity/internal/infra/auth"
	"identity/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthority struct {
	usecase.IdentityAuthority

	account *entity.Account
	err     error
}

func (s *stubAuthority) GetAccount(_ context.Context, accountID uuid.UUID) (*entity.Account, error) {
	if s.err != nil {
		return nil, s.err
	}
	account := *s.account
	account.ID = accountID

	return &account, nil
}

func (s *stubAuthority) ListAccounts(context.Context, int, int) (*usecase.AccountPage, error) {
	return &usecase.AccountPage{Page: 1, Size: 20}, nil
}

type serverFixture struct {
	echo   *echo.Echo
	tokens service.TokenIssuer
}

func newServerFixture(t *testing.T, authority usecase.IdentityAuthority) *serverFixture {
	t.Helper()

	key, err := auth.GenerateRSAPrivateKey()
	require.NoError(t, err)
	tokens, err := auth.NewJWTServiceWithKey(key, "", "identity-test", 0)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{}
	cfg.HTTP.MaxRequestBodySize = "1KB"

	params := ServerParams{
		Cfg:    cfg,
		Logger: logger,
		RouterParams: router.RouterParams{
			AuthHandler:         handler.NewAuthHandler(handler.AuthHandlerParams{Authority: authority, Logger: logger}),
			KeyHandler:          handler.NewKeyHandler(tokens),
			VerificationHandler: handler.NewVerificationHandler(handler.VerificationHandlerParams{Logger: logger}),
			UserHandler:         handler.NewUserHandler(handler.UserHandlerParams{Authority: authority, Logger: logger}),
			AdminHandler:        handler.NewAdminHandler(handler.AdminHandlerParams{Authority: authority, Logger: logger}),
			AuthMiddleware:      apimiddleware.NewAuthMiddleware(apimiddleware.AuthMiddlewareParams{Verifier: tokens, Logger: logger}),
		},
	}

	return &serverFixture{echo: newEcho(params), tokens: tokens}
}

func (f *serverFixture) do(t *testing.T, method, target string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)

	return rec
}

func (f *serverFixture) bearer(t *testing.T, role entity.Role) http.Header {
	t.Helper()

	token, _, err := f.tokens.IssueAccessToken(&entity.Account{ID: uuid.New(), Email: "alice@example.com", Role: role})
	require.NoError(t, err)

	return http.Header{echo.HeaderAuthorization: []string{"Bearer " + token}}
}

type errorBody struct {
	Error struct {
		Code string `json:"code"`
	} `json:"error"`
	Meta struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())

	return body.Error.Code
}

func TestServer_HealthEchoesRequestID(t *testing.T) {
	f := newServerFixture(t, &stubAuthority{})

	rec := f.do(t, http.MethodGet, "/health", http.Header{deliverycontext.HeaderXRequestID: []string{"req-123"}})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-123", rec.Header().Get(deliverycontext.HeaderXRequestID))
	assert.Contains(t, rec.Body.String(), `"request_id":"req-123"`)
}

func TestServer_ReplacesUnsafeRequestID(t *testing.T) {
	f := newServerFixture(t, &stubAuthority{})

	rec := f.do(t, http.MethodGet, "/health", http.Header{deliverycontext.HeaderXRequestID: []string{"bad id\twith space"}})

	_, err := uuid.Parse(rec.Header().Get(deliverycontext.HeaderXRequestID))
	assert.NoError(t, err)
}

func TestServer_Authentication(t *testing.T) {
	f := newServerFixture(t, &stubAuthority{account: &entity.Account{Email: "alice@example.com", Role: entity.RoleUser}})

	tests := []struct {
		name   string
		header http.Header
		status int
		code   string
	}{
		{name: "missing header", header: nil, status: http.StatusUnauthorized, code: "UNAUTHORIZED"},
		{name: "not bearer", header: http.Header{echo.HeaderAuthorization: []string{"Basic abc"}}, status: http.StatusUnauthorized, code: "TOKEN_INVALID"},
		{name: "garbage token", header: http.Header{echo.HeaderAuthorization: []string{"Bearer not.a.jwt"}}, status: http.StatusUnauthorized, code: "TOKEN_INVALID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodGet, "/api/user/me", tt.header)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, errorCode(t, rec))
		})
	}

	t.Run("valid token", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/user/me", f.bearer(t, entity.RoleUser))

		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Contains(t, rec.Body.String(), `"email":"alice@example.com"`)
	})
}

func TestServer_AdminRoutesRequireAdminRole(t *testing.T) {
	f := newServerFixture(t, &stubAuthority{})

	rec := f.do(t, http.MethodGet, "/api/admin/users", f.bearer(t, entity.RoleUser))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(t, rec))

	rec = f.do(t, http.MethodGet, "/api/admin/users", f.bearer(t, entity.RoleAdmin))
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestServer_UnhandledErrorsAreHidden(t *testing.T) {
	f := newServerFixture(t, &stubAuthority{err: errors.New("connection reset by peer")})

	rec := f.do(t, http.MethodGet, "/api/user/me", f.bearer(t, entity.RoleUser))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_ERROR", errorCode(t, rec))
	assert.NotContains(t, rec.Body.String(), "connection reset")
}

func TestServer_UnknownRouteUsesEnvelope(t *testing.T) {
	f := newServerFixture(t, &stubAuthority{})

	rec := f.do(t, http.MethodGet, "/api/nope", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "HTTP_ERROR", errorCode(t, rec))
}

func TestServer_JWKSVerifiesIssuedTokens(t *testing.T) {
	f := newServerFixture(t, &stubAuthority{})

	rec := f.do(t, http.MethodGet, "/.well-known/jwks.json", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var set service.JWKSet
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &set))
	require.Len(t, set.Keys, 1)
	assert.Equal(t, "RS256", set.Keys[0].Alg)
	assert.Equal(t, f.tokens.JWKS(), set)
}
