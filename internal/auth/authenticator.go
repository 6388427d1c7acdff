package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/flightdesk/config"
	"github.com/Domenick1991/flightdesk/internal/apperr"
	"github.com/Domenick1991/flightdesk/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserStore interface {
	GetByUserName(ctx context.Context, userName string) (*domain.PrivilegedUser, error)
	Create(ctx context.Context, user *domain.PrivilegedUser) error
}

type Authenticator struct {
	users  UserStore
	tokens *TokenService
	log    *zap.Logger
}

func NewAuthenticator(users UserStore, tokens *TokenService, log *zap.Logger) *Authenticator {
	return &Authenticator{users: users, tokens: tokens, log: log}
}

// Authenticate exchanges credentials for a signed token. An unknown user and a
// wrong password are indistinguishable to the caller.
func (a *Authenticator) Authenticate(ctx context.Context, userName, password string) (string, error) {
	user, err := a.users.GetByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			a.log.Info("sign-in rejected", zap.String("user", userName), zap.String("reason", "unknown user"))
			return "", apperr.ErrUnauthorized
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		a.log.Info("sign-in rejected", zap.String("user", userName), zap.String("reason", "bad password"))
		return "", apperr.ErrUnauthorized
	}
	return a.tokens.Issue(Principal{UserName: user.UserName, Roles: user.Roles})
}

func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// SeedSuperAdmin creates the configured super administrator unless an account
// with that name already exists.
func SeedSuperAdmin(ctx context.Context, users UserStore, cfg config.AuthConfig, log *zap.Logger) error {
	seed := cfg.SuperAdmin
	if seed.UserName == "" || seed.Password == "" {
		return nil
	}

	_, err := users.GetByUserName(ctx, seed.UserName)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return fmt.Errorf("look up super admin: %w", err)
	}

	hash, err := HashPassword(seed.Password, cfg.BcryptCost)
	if err != nil {
		return err
	}
	user := &domain.PrivilegedUser{
		UserName: seed.UserName,
		Password: hash,
		Roles:    []string{domain.RoleSuperAdmin, domain.RoleAdmin},
	}
	if err := users.Create(ctx, user); err != nil {
		return fmt.Errorf("create super admin: %w", err)
	}
	log.Info("seeded super admin", zap.String("user", seed.UserName), zap.Int64("id", user.ID))
	return nil
}
