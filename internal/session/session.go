// Package session keeps presentation-tier session state. The session travels in
// the request context; nothing about the signed-in user is process-global.
package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNoSession = errors.New("no session in context")

type Session struct {
	ID       string `json:"id"`
	Token    string `json:"token,omitempty"`
	UserName string `json:"user_name,omitempty"`
}

func New() *Session {
	return &Session{ID: uuid.NewString()}
}

func (s *Session) SignedIn() bool {
	return s != nil && s.Token != ""
}

// Empty sessions are not persisted.
func (s *Session) Empty() bool {
	return s.Token == "" && s.UserName == ""
}

func (s *Session) Clear() {
	s.Token = ""
	s.UserName = ""
}

type Store interface {
	// Load returns a fresh session when id is unknown or expired.
	Load(ctx context.Context, id string) (*Session, error)
	Commit(ctx context.Context, s *Session) error
	// Renew moves s to a fresh id and drops whatever was stored under the old one.
	Renew(ctx context.Context, s *Session) error
}

type sessionCtxKey struct{}

func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, s)
}

func FromContext(ctx context.Context) (*Session, error) {
	s, ok := ctx.Value(sessionCtxKey{}).(*Session)
	if !ok || s == nil {
		return nil, ErrNoSession
	}
	return s, nil
}

// TokenFrom returns the bearer token of the session in ctx, or "".
func TokenFrom(ctx context.Context) string {
	s, err := FromContext(ctx)
	if err != nil {
		return ""
	}
	return s.Token
}
