package store

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/aussiebroadwan/panel/internal/panel/domain"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ClientFilter narrows Find. Zero fields are ignored.
type ClientFilter struct {
	Status        *domain.ClientStatus
	Search        string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

type Pagination struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// Page is one slice of a paginated result.
type Page[T any] struct {
	Data       []T
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

func NewPage[T any](data []T, total int, p Pagination) Page[T] {
	return Page[T]{
		Data:       data,
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(p.Limit))),
	}
}

func (p Page[T]) HasNext() bool     { return p.Page < p.TotalPages }
func (p Page[T]) HasPrevious() bool { return p.Page > 1 }

// sortColumns maps accepted sort keys to columns.
var sortColumns = map[string]string{
	"created_at": "created_at",
	"createdat":  "created_at",
	"updated_at": "updated_at",
	"updatedat":  "updated_at",
	"name":       "name",
	"email":      "email",
	"tax_id":     "tax_id",
	"taxid":      "tax_id",
	"status":     "status",
}

// Normalize fills defaults and clamps the limit. An unknown sort key or
// order is a validation error.
func (p Pagination) Normalize() (Pagination, error) {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}

	if p.SortBy == "" {
		p.SortBy = "created_at"
	}
	col, ok := sortColumns[strings.ToLower(p.SortBy)]
	if !ok {
		return p, domain.Validation("Invalid sort field: " + p.SortBy)
	}
	p.SortBy = col

	switch strings.ToLower(p.SortOrder) {
	case "", "desc":
		p.SortOrder = "DESC"
	case "asc":
		p.SortOrder = "ASC"
	default:
		return p, domain.Validation("Sort order must be asc or desc")
	}
	return p, nil
}

func (p Pagination) Offset() int { return (p.Page - 1) * p.Limit }

// Placeholder renders the nth (1-based) bind parameter for a dialect.
type Placeholder func(n int) string

func QuestionMark(int) string   { return "?" }
func DollarNumber(n int) string { return fmt.Sprintf("$%d", n) }

// Dialect is what the client query builder needs to know about a driver.
// Lower must fold case for all of Unicode, matching strings.ToLower.
type Dialect struct {
	Placeholder Placeholder
	Lower       string
}

var (
	// SQLiteDialect relies on the unicode_lower function registered by the
	// sqlite driver; the built-in LOWER only folds ASCII.
	SQLiteDialect   = Dialect{Placeholder: QuestionMark, Lower: "unicode_lower"}
	PostgresDialect = Dialect{Placeholder: DollarNumber, Lower: "LOWER"}
)

// ClientQuery is a WHERE clause built from a filter for one dialect.
type ClientQuery struct {
	Where string
	Args  []any
	ph    Placeholder
}

// BuildClientQuery renders f as a WHERE clause (empty when f is empty).
func BuildClientQuery(f ClientFilter, d Dialect) ClientQuery {
	q := ClientQuery{ph: d.Placeholder}
	var conds []string

	if f.Status != nil {
		conds = append(conds, "status = "+q.bind(string(*f.Status)))
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		like := "%" + EscapeLike(strings.ToLower(term)) + "%"
		conds = append(conds, fmt.Sprintf(
			`(%[1]s(name) LIKE %[2]s ESCAPE '\' OR %[1]s(email) LIKE %[3]s ESCAPE '\' OR %[1]s(tax_id) LIKE %[4]s ESCAPE '\')`,
			d.Lower, q.bind(like), q.bind(like), q.bind(like),
		))
	}
	if f.CreatedAfter != nil {
		conds = append(conds, "created_at >= "+q.bind(f.CreatedAfter.UTC()))
	}
	if f.CreatedBefore != nil {
		conds = append(conds, "created_at <= "+q.bind(f.CreatedBefore.UTC()))
	}

	if len(conds) > 0 {
		q.Where = " WHERE " + strings.Join(conds, " AND ")
	}
	return q
}

func (q *ClientQuery) bind(v any) string {
	q.Args = append(q.Args, v)
	return q.ph(len(q.Args))
}

// Page appends ORDER BY, LIMIT and OFFSET for a normalized pagination.
func (q ClientQuery) Page(p Pagination) (string, []any) {
	args := append([]any(nil), q.Args...)
	n := len(args)
	args = append(args, p.Limit, p.Offset())
	return fmt.Sprintf("%s ORDER BY %s %s, id %s LIMIT %s OFFSET %s",
		q.Where, p.SortBy, p.SortOrder, p.SortOrder, q.ph(n+1), q.ph(n+2)), args
}

// EscapeLike escapes LIKE wildcards with a backslash.
func EscapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
