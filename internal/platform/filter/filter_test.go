package filter

import (
	"testing"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ds = goqu.Dialect("mysql").From("t")

func render(t *testing.T, b Builder) (string, []any) {
	t.Helper()
	q, args, err := b.Apply(ds).Prepared(true).ToSQL()
	require.NoError(t, err)
	return q, args
}

func ptr[T any](v T) *T { return &v }

func TestAllAbsentIsIdentity(t *testing.T) {
	b := New().
		Equal("status", nil).
		Equal("id", ptr("")).
		EqualInt("genre_id", nil).
		ContainsFold("username", ptr("   ")).
		Range("created_at", nil, nil)

	assert.Equal(t, 0, b.Len())
	q, args := render(t, b)
	assert.Equal(t, "SELECT * FROM `t`", q)
	assert.Empty(t, args)
}

func TestConjunctionOfPresentOnly(t *testing.T) {
	from := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	b := New().
		Equal("status", ptr("BORROWED")).
		Equal("id", nil).
		Range("borrowed_at", &from, nil)

	q, args := render(t, b)
	assert.Contains(t, q, "`status` = ?")
	assert.Contains(t, q, "`borrowed_at` >= ?")
	assert.NotContains(t, q, "`id`")
	assert.NotContains(t, q, "<=")
	assert.Contains(t, q, " AND ")
	assert.Equal(t, []any{"BORROWED", from}, args)
}

func TestOrderDoesNotMatter(t *testing.T) {
	a := New().Equal("role_type", ptr("ADMIN")).Equal("user_state", ptr("ACTIVE"))
	b := New().Equal("user_state", ptr("ACTIVE")).Equal("role_type", ptr("ADMIN"))

	qa, argsA := render(t, a)
	qb, argsB := render(t, b)
	// 同じ条件集合（並びだけが違う）
	assert.ElementsMatch(t, argsA, argsB)
	assert.Len(t, qa, len(qb))
}

func TestBuilderIsImmutable(t *testing.T) {
	base := New().Equal("a", ptr("1"))
	left := base.Equal("b", ptr("2"))
	right := base.Equal("c", ptr("3"))

	assert.Equal(t, 1, base.Len())
	ql, _ := render(t, left)
	qr, _ := render(t, right)
	assert.NotContains(t, ql, "`c`")
	assert.NotContains(t, qr, "`b`")
}

func TestContainsFoldEscapesAndLowers(t *testing.T) {
	q, args := render(t, New().ContainsFold("username", ptr("50%_OFF")))
	assert.Contains(t, q, "LOWER(`username`) LIKE ?")
	assert.Equal(t, []any{`%50\%\_off%`}, args)
}

func TestRangeInclusiveBothBounds(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	q, args := render(t, New().Range("created_at", &from, &to))
	assert.Contains(t, q, "`created_at` >= ?")
	assert.Contains(t, q, "`created_at` <= ?")
	assert.Equal(t, []any{from, to}, args)
}

func TestTextAndIsNull(t *testing.T) {
	type Role string
	assert.Nil(t, Text[Role](nil))
	r := Role("READER")
	assert.Equal(t, "READER", *Text(&r))

	q, _ := render(t, New().IsNull("deleted_at"))
	assert.Contains(t, q, "`deleted_at` IS NULL")
}
