package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Domenick1991/flightdesk/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_signIn(t *testing.T) {
	authenticator := &MockAuthenticator{}
	router := newTestRouter(authenticator)

	authenticator.On("Authenticate", mock.Anything, "admin", "secret").Return("signed.jwt.token", nil).Once()
	authenticator.On("Authenticate", mock.Anything, "admin", "wrong").Return("", apperr.ErrUnauthorized).Once()

	w := do(t, router, http.MethodPost, "/api/v1/Authentication", `{"userName":"admin","password":"secret"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	var token string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &token))
	assert.Equal(t, "signed.jwt.token", token)

	w = do(t, router, http.MethodPost, "/api/v1/Authentication", `{"userName":"admin","password":"wrong"}`, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apperr.MsgUnauthorized, errorBody(t, w).ResponseMessage)

	w = do(t, router, http.MethodPost, "/api/v1/Authentication", `{"userName":"admin"}`, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperr.MsgValidationFailed, errorBody(t, w).ResponseMessage)

	authenticator.AssertExpectations(t)
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(nil)

	w := do(t, router, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(t, router, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
