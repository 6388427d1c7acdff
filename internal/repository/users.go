package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/flightdesk/internal/apperr"
	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/jackc/pgx/v5"
)

type UserRepository interface {
	Repository[domain.PrivilegedUser]
	GetByUserName(ctx context.Context, userName string) (*domain.PrivilegedUser, error)
}

type PGUserRepository struct {
	*PGRepository[domain.PrivilegedUser]
}

func NewUserRepository(db DB) *PGUserRepository {
	return &PGUserRepository{PGRepository: NewRepository(db, PrivilegedUsers())}
}

func (r *PGUserRepository) GetByUserName(ctx context.Context, userName string) (*domain.PrivilegedUser, error) {
	var u domain.PrivilegedUser
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE user_name = $1`, r.desc.selectColumns(), r.desc.Table)
	if err := r.db.QueryRow(ctx, query, userName).Scan(r.desc.scanTargets(&u)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %q: %w", userName, apperr.ErrNotFound)
		}
		return nil, apperr.Store(err)
	}
	return &u, nil
}

var _ UserRepository = (*PGUserRepository)(nil)
