package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Domenick1991/flightdesk/internal/apperr"
	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of *pgxpool.Pool the repositories use.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type Repository[T any] interface {
	List(ctx context.Context, c Criteria, limit, offset int) ([]T, error)
	Count(ctx context.Context, c Criteria) (int, error)
	GetByID(ctx context.Context, id int64) (*T, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, entity *T) error
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id int64) (domain.DeleteOutcome, error)
}

type PGRepository[T any] struct {
	db    DB
	desc  Descriptor[T]
	guard Guard
}

func NewRepository[T any](db DB, desc Descriptor[T]) *PGRepository[T] {
	return &PGRepository[T]{
		db:    db,
		desc:  desc,
		guard: NewGuard(desc.Dependents...),
	}
}

func (r *PGRepository[T]) List(ctx context.Context, c Criteria, limit, offset int) ([]T, error) {
	w := buildWhere(r.desc.Filters, c)
	query := fmt.Sprintf(`SELECT %s FROM %s%s ORDER BY %s LIMIT %s OFFSET %s`,
		r.desc.selectColumns(), r.desc.Table, w.String(), r.desc.OrderBy, w.arg(limit), w.arg(offset))

	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		return nil, apperr.Store(err)
	}
	defer rows.Close()

	items := make([]T, 0, limit)
	for rows.Next() {
		var e T
		if err := rows.Scan(r.desc.scanTargets(&e)...); err != nil {
			return nil, apperr.Store(err)
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store(err)
	}
	return items, nil
}

func (r *PGRepository[T]) Count(ctx context.Context, c Criteria) (int, error) {
	w := buildWhere(r.desc.Filters, c)
	var total int64
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s%s`, r.desc.Table, w.String())
	if err := r.db.QueryRow(ctx, query, w.args...).Scan(&total); err != nil {
		return 0, apperr.Store(err)
	}
	return int(total), nil
}

func (r *PGRepository[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	var e T
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, r.desc.selectColumns(), r.desc.Table)
	if err := r.db.QueryRow(ctx, query, id).Scan(r.desc.scanTargets(&e)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s %d: %w", r.desc.Name, id, apperr.ErrNotFound)
		}
		return nil, apperr.Store(err)
	}
	return &e, nil
}

func (r *PGRepository[T]) Exists(ctx context.Context, id int64) (bool, error) {
	exists, err := r.exists(ctx, r.db, id)
	if err != nil {
		return false, apperr.Store(err)
	}
	return exists, nil
}

func (r *PGRepository[T]) exists(ctx context.Context, q Querier, id int64) (bool, error) {
	var exists bool
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE id = $1)`, r.desc.Table)
	err := q.QueryRow(ctx, query, id).Scan(&exists)
	return exists, err
}

func (r *PGRepository[T]) Create(ctx context.Context, entity *T) error {
	placeholders := make([]string, len(r.desc.Columns))
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING id`,
		r.desc.Table, strings.Join(r.desc.Columns, ", "), strings.Join(placeholders, ", "))

	if err := r.db.QueryRow(ctx, query, r.desc.Fields(entity)...).Scan(r.desc.ID(entity)); err != nil {
		return apperr.Store(err)
	}
	return nil
}

func (r *PGRepository[T]) Update(ctx context.Context, entity *T) error {
	assignments := make([]string, len(r.desc.Columns))
	for i, col := range r.desc.Columns {
		assignments[i] = fmt.Sprintf("%s = $%d", col, i+1)
	}
	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = $%d`,
		r.desc.Table, strings.Join(assignments, ", "), len(r.desc.Columns)+1)

	args := append(r.desc.Fields(entity), *r.desc.ID(entity))
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return apperr.Store(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %d: %w", r.desc.Name, *r.desc.ID(entity), apperr.ErrNotFound)
	}
	return nil
}

// Delete checks existence and dependents and removes the row in one
// serializable transaction, so a dependent inserted concurrently aborts the
// delete instead of being orphaned.
func (r *PGRepository[T]) Delete(ctx context.Context, id int64) (domain.DeleteOutcome, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return domain.NotFound, apperr.Store(err)
	}
	defer tx.Rollback(ctx)

	exists, err := r.exists(ctx, tx, id)
	if err != nil {
		return domain.NotFound, apperr.Store(err)
	}
	if !exists {
		return domain.NotFound, nil
	}

	ok, err := r.guard.CanDelete(ctx, tx, id)
	if err != nil {
		return domain.NotFound, apperr.Store(err)
	}
	if !ok {
		return domain.Referenced, nil
	}

	if _, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.desc.Table), id); err != nil {
		return domain.NotFound, apperr.Store(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.NotFound, apperr.Store(err)
	}
	return domain.Deleted, nil
}

var _ Repository[domain.Airline] = (*PGRepository[domain.Airline])(nil)
