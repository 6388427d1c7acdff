package repository

import (
	"fmt"
	"strings"

	"github.com/Domenick1991/flightdesk/internal/domain"
)

// Descriptor tells the generic repository how one entity type maps onto its table.
type Descriptor[T any] struct {
	// Name is the logical resource name, e.g. "Airline".
	Name  string
	Table string
	// Columns lists every persisted column except id, in Fields order.
	Columns    []string
	OrderBy    string
	Filters    []Filter
	Dependents []Dependent

	ID func(*T) *int64
	// Fields returns pointers to the column fields. The same pointers are used
	// as scan targets and as statement arguments; pgx dereferences pointer args.
	Fields func(*T) []any
}

func (d Descriptor[T]) selectColumns() string {
	return "id, " + strings.Join(d.Columns, ", ")
}

func (d Descriptor[T]) scanTargets(e *T) []any {
	return append([]any{d.ID(e)}, d.Fields(e)...)
}

// Criteria carries the fixed per-resource filters of a listing.
type Criteria struct {
	Name     string
	From     *domain.Date
	To       *domain.Date
	MinPrice *float64
	MaxPrice *float64
}

type Filter func(c Criteria, w *where)

// likeEscaper quotes LIKE metacharacters for the default backslash escape.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ByName matches a case-insensitive substring against any of columns.
func ByName(columns ...string) Filter {
	return func(c Criteria, w *where) {
		if c.Name == "" {
			return
		}
		p := w.arg("%" + likeEscaper.Replace(c.Name) + "%")
		parts := make([]string, len(columns))
		for i, col := range columns {
			parts[i] = col + " ILIKE " + p
		}
		w.add("(" + strings.Join(parts, " OR ") + ")")
	}
}

// ByDateRange bounds column inclusively by From and To.
func ByDateRange(column string) Filter {
	return func(c Criteria, w *where) {
		if c.From != nil {
			w.add(column + " >= " + w.arg(*c.From))
		}
		if c.To != nil {
			w.add(column + " <= " + w.arg(*c.To))
		}
	}
}

// ByPriceRange bounds column inclusively by MinPrice and MaxPrice.
func ByPriceRange(column string) Filter {
	return func(c Criteria, w *where) {
		if c.MinPrice != nil {
			w.add(column + " >= " + w.arg(*c.MinPrice))
		}
		if c.MaxPrice != nil {
			w.add(column + " <= " + w.arg(*c.MaxPrice))
		}
	}
}

type where struct {
	clauses []string
	args    []any
}

func buildWhere(filters []Filter, c Criteria) *where {
	w := &where{}
	for _, f := range filters {
		f(c, w)
	}
	return w
}

func (w *where) arg(v any) string {
	w.args = append(w.args, v)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *where) add(clause string) {
	w.clauses = append(w.clauses, clause)
}

func (w *where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}
