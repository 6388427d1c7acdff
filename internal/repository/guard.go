package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Dependent names a column whose rows reference the guarded entity by id.
type Dependent struct {
	Table  string
	Column string
}

type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Guard refuses deletion while any dependent row references the entity.
type Guard struct {
	dependents []Dependent
}

func NewGuard(dependents ...Dependent) Guard {
	return Guard{dependents: dependents}
}

func (g Guard) CanDelete(ctx context.Context, q Querier, id int64) (bool, error) {
	for _, d := range g.dependents {
		var referenced bool
		query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1)`, d.Table, d.Column)
		if err := q.QueryRow(ctx, query, id).Scan(&referenced); err != nil {
			return false, fmt.Errorf("check %s.%s: %w", d.Table, d.Column, err)
		}
		if referenced {
			return false, nil
		}
	}
	return true, nil
}
