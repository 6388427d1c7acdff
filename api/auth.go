package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/Domenick1991/flightdesk/internal/apperr"
	"github.com/Domenick1991/flightdesk/internal/auth"
	"github.com/gin-gonic/gin"
)

type Authenticator interface {
	Authenticate(ctx context.Context, userName, password string) (string, error)
}

type TokenParser interface {
	Parse(token string) (auth.Principal, error)
}

type AuthHandler struct {
	authenticator Authenticator
}

type signInRequest struct {
	UserName string `json:"userName" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func NewAuthHandler(authenticator Authenticator) *AuthHandler {
	return &AuthHandler{authenticator: authenticator}
}

func (h *AuthHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.signIn)
}

// signIn answers with the bearer token as a bare JSON string.
func (h *AuthHandler) signIn(c *gin.Context) {
	var req signInRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	token, err := h.authenticator.Authenticate(c.Request.Context(), req.UserName, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, token)
}

// Authenticate requires a valid bearer token and puts its principal into the
// request context.
func Authenticate(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || token == "" {
			fail(c, apperr.ErrUnauthorized)
			return
		}

		principal, err := tokens.Parse(token)
		if err != nil {
			fail(c, err)
			return
		}
		c.Request = c.Request.WithContext(auth.NewContext(c.Request.Context(), principal))
		c.Next()
	}
}

// RequireRole passes callers holding any of roles. With no roles every
// authenticated caller passes.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(roles) == 0 {
			c.Next()
			return
		}
		principal, ok := auth.PrincipalFrom(c.Request.Context())
		if !ok {
			fail(c, apperr.ErrUnauthorized)
			return
		}
		if !principal.HasAnyRole(roles...) {
			forbid(c)
			return
		}
		c.Next()
	}
}
