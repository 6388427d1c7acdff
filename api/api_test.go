package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Domenick1991/flightdesk/config"
	"github.com/Domenick1991/flightdesk/internal/apperr"
	"github.com/Domenick1991/flightdesk/internal/auth"
	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/Domenick1991/flightdesk/internal/patch"
	"github.com/Domenick1991/flightdesk/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockUseCase[T any] struct {
	mock.Mock
}

func (m *MockUseCase[T]) List(ctx context.Context, page, pageSize int, c repository.Criteria) (*domain.Page[T], error) {
	args := m.Called(ctx, page, pageSize, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page[T]), args.Error(1)
}

func (m *MockUseCase[T]) Get(ctx context.Context, id int64) (*T, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockUseCase[T]) Create(ctx context.Context, entity *T) (*T, error) {
	args := m.Called(ctx, entity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockUseCase[T]) Replace(ctx context.Context, id int64, entity *T) error {
	args := m.Called(ctx, id, entity)
	return args.Error(0)
}

func (m *MockUseCase[T]) Patch(ctx context.Context, id int64, doc patch.Document) (*T, error) {
	args := m.Called(ctx, id, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockUseCase[T]) Delete(ctx context.Context, id int64) (domain.DeleteOutcome, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.DeleteOutcome), args.Error(1)
}

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Authenticate(ctx context.Context, userName, password string) (string, error) {
	args := m.Called(ctx, userName, password)
	return args.String(0), args.Error(1)
}

func testTokens() *auth.TokenService {
	return auth.NewTokenService(config.AuthConfig{JWTSecret: "test-secret", Issuer: "flightdesk", TokenTTLMinutes: 5})
}

func newTestRouter(authenticator Authenticator, resources ...Registrar) *gin.Engine {
	gin.SetMode(gin.TestMode)
	if authenticator == nil {
		authenticator = &MockAuthenticator{}
	}
	return NewRouter(RouterConfig{
		Log:       zap.NewNop(),
		Tokens:    testTokens(),
		Auth:      NewAuthHandler(authenticator),
		Resources: resources,
	})
}

func bearer(t *testing.T, roles ...string) string {
	t.Helper()
	token, err := testTokens().Issue(auth.Principal{UserName: "tester", Roles: roles})
	require.NoError(t, err)
	return "Bearer " + token
}

func do(t *testing.T, router http.Handler, method, path, body, authorization string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) apperr.Response {
	t.Helper()
	var resp apperr.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}
