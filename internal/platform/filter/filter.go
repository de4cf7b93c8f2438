// Package filter composes optional query conditions into one conjunction.
//
// Every method takes a possibly-absent value; absent values add nothing, so a
// Builder with no present values renders no WHERE clause at all.
package filter

import (
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Builder is immutable: each method returns a new Builder.
type Builder struct {
	exprs []exp.Expression
}

func New() Builder { return Builder{} }

// Equal adds col = v. Used for enumerations (compared by their canonical text)
// and for exact id matches.
func (b Builder) Equal(col string, v *string) Builder {
	if v == nil || *v == "" {
		return b
	}
	return b.with(goqu.I(col).Eq(*v))
}

// EqualInt adds col = v for numeric keys.
func (b Builder) EqualInt(col string, v *int64) Builder {
	if v == nil {
		return b
	}
	return b.with(goqu.I(col).Eq(*v))
}

// ContainsFold adds a case-insensitive substring match. An empty or blank
// needle counts as absent.
func (b Builder) ContainsFold(col string, needle *string) Builder {
	if needle == nil || strings.TrimSpace(*needle) == "" {
		return b
	}
	// Caser は goroutine 間で共有しない
	lowered := cases.Lower(language.Und).String(*needle)
	pattern := "%" + escapeLike(lowered) + "%"
	return b.with(goqu.Func("LOWER", goqu.I(col)).ILike(pattern))
}

// Range adds from <= col <= to. Either bound may be nil.
func (b Builder) Range(col string, from, to *time.Time) Builder {
	out := b
	if from != nil && !from.IsZero() {
		out = out.with(goqu.I(col).Gte(*from))
	}
	if to != nil && !to.IsZero() {
		out = out.with(goqu.I(col).Lte(*to))
	}
	return out
}

// IsNull adds col IS NULL unconditionally (soft-delete guards and the like).
func (b Builder) IsNull(col string) Builder {
	return b.with(goqu.I(col).IsNull())
}

// Len is the number of conditions collected so far.
func (b Builder) Len() int { return len(b.exprs) }

// Expression returns the AND of all collected conditions. goqu drops an empty
// list, so no conditions means "match everything".
func (b Builder) Expression() exp.ExpressionList {
	return goqu.And(b.exprs...)
}

// Apply adds the conjunction to ds.
func (b Builder) Apply(ds *goqu.SelectDataset) *goqu.SelectDataset {
	if len(b.exprs) == 0 {
		return ds
	}
	return ds.Where(b.Expression())
}

func (b Builder) with(e exp.Expression) Builder {
	next := make([]exp.Expression, len(b.exprs), len(b.exprs)+1)
	copy(next, b.exprs)
	return Builder{exprs: append(next, e)}
}

// Text converts an optional typed string (enum) to the form Equal expects.
func Text[T ~string](v *T) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
