package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"identity/internal/delivery/api/validator"
	"identity/internal/domain/entity"
	"identity/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

// fakeAuthority stubs the methods a test sets; calling any other method panics.
type fakeAuthority struct {
	usecase.IdentityAuthority

	register      func(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthResult, error)
	login         func(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthResult, error)
	socialLogin   func(ctx context.Context, input *usecase.SocialLoginInput) (*usecase.AuthResult, error)
	logoutAll     func(ctx context.Context, accountID uuid.UUID) error
	getAccount    func(ctx context.Context, accountID uuid.UUID) (*entity.Account, error)
	listAccounts  func(ctx context.Context, page, size int) (*usecase.AccountPage, error)
	updateRole    func(ctx context.Context, accountID uuid.UUID, role entity.Role) error
	deleteAccount func(ctx context.Context, accountID uuid.UUID) error
	requestReset  func(ctx context.Context, email string) error
}

func (f *fakeAuthority) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthResult, error) {
	return f.register(ctx, input)
}

func (f *fakeAuthority) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthResult, error) {
	return f.login(ctx, input)
}

func (f *fakeAuthority) SocialLogin(ctx context.Context, input *usecase.SocialLoginInput) (*usecase.AuthResult, error) {
	return f.socialLogin(ctx, input)
}

func (f *fakeAuthority) LogoutAll(ctx context.Context, accountID uuid.UUID) error {
	return f.logoutAll(ctx, accountID)
}

func (f *fakeAuthority) GetAccount(ctx context.Context, accountID uuid.UUID) (*entity.Account, error) {
	return f.getAccount(ctx, accountID)
}

func (f *fakeAuthority) ListAccounts(ctx context.Context, page, size int) (*usecase.AccountPage, error) {
	return f.listAccounts(ctx, page, size)
}

func (f *fakeAuthority) UpdateRole(ctx context.Context, accountID uuid.UUID, role entity.Role) error {
	return f.updateRole(ctx, accountID, role)
}

func (f *fakeAuthority) DeleteAccount(ctx context.Context, accountID uuid.UUID) error {
	return f.deleteAccount(ctx, accountID)
}

func (f *fakeAuthority) RequestPasswordReset(ctx context.Context, email string) error {
	return f.requestReset(ctx, email)
}

type fakeVerification struct {
	usecase.EmailVerificationManager

	consume func(ctx context.Context, token string) (*usecase.ConsumeResult, error)
	resend  func(ctx context.Context, email string) (*usecase.IssueResult, error)
	status  func(ctx context.Context, email string) (*usecase.VerificationStatus, error)
}

func (f *fakeVerification) Consume(ctx context.Context, token string) (*usecase.ConsumeResult, error) {
	return f.consume(ctx, token)
}

func (f *fakeVerification) Resend(ctx context.Context, email string) (*usecase.IssueResult, error) {
	return f.resend(ctx, email)
}

func (f *fakeVerification) Status(ctx context.Context, email string) (*usecase.VerificationStatus, error) {
	return f.status(ctx, email)
}

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newEchoContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validator.New()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

// envelope mirrors response.SuccessResponse and response.ErrorResponse with raw data.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
	Meta struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())

	return env
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &out))

	return out
}

func requireErrorCode(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) envelope {
	t.Helper()

	require.Equal(t, status, rec.Code, rec.Body.String())
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	require.Equal(t, code, env.Error.Code)

	return env
}
