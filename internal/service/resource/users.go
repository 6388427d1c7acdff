package resource

import (
	"github.com/Domenick1991/flightdesk/internal/apperr"
	"github.com/Domenick1991/flightdesk/internal/auth"
	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/Domenick1991/flightdesk/internal/repository"
)

// NewUserService wires the privileged-user resource: passwords are stored as
// bcrypt hashes and never returned.
func NewUserService(repo repository.Repository[domain.PrivilegedUser], bcryptCost, maxPageSize int, opts ...Option[domain.PrivilegedUser]) *Service[domain.PrivilegedUser] {
	opts = append(opts,
		WithPrepare(func(current, next *domain.PrivilegedUser) error {
			return prepareUser(current, next, bcryptCost)
		}),
		WithRedact(func(u *domain.PrivilegedUser) { u.Password = "" }),
	)
	return NewService(repo, repository.PrivilegedUsers(), maxPageSize, opts...)
}

func prepareUser(current, next *domain.PrivilegedUser, cost int) error {
	if next.Roles == nil && current != nil {
		next.Roles = current.Roles
	}
	if len(next.Roles) == 0 {
		return apperr.Validation("roles are required")
	}
	for _, role := range next.Roles {
		if role != domain.RoleAdmin && role != domain.RoleSuperAdmin {
			return apperr.Validation("unknown role " + role)
		}
	}

	switch {
	case next.Password == "" && current == nil:
		return apperr.Validation("password is required")
	case next.Password == "":
		next.Password = current.Password
	case current != nil && next.Password == current.Password:
		// unchanged hash carried through a patch
	default:
		hash, err := auth.HashPassword(next.Password, cost)
		if err != nil {
			return err
		}
		next.Password = hash
	}
	return nil
}
