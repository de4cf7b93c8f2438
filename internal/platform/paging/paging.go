package paging

import (
	"strconv"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	DirAsc  = "asc"
	DirDesc = "desc"
)

// Request はクエリパラメータそのまま（未検証）。
type Request struct {
	PageSize   int
	PageNumber int
	Sort       string // "author,createdAt"
	Direction  string
}

// SortSpec describes which fields a resource may be ordered by.
type SortSpec struct {
	// API field name -> column
	Fields map[string]string
	// columns used when the request names no usable field
	Default []string
	// final tie-breaker so that equal sort keys still page deterministically
	TieBreaker string
}

// Window is the bounded, ordered slice of the result set to fetch.
type Window struct {
	Size   int
	Number int
	Order  []exp.OrderedExpression
}

func (w Window) Offset() uint { return uint(w.Size) * uint(w.Number) }

// Translate clamps the page and resolves sort fields against the resource's allow-list.
func Translate(r Request, spec SortSpec) Window {
	size := r.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	number := r.PageNumber
	if number < 0 {
		number = 0
	}

	desc := !strings.EqualFold(strings.TrimSpace(r.Direction), DirAsc)

	var cols []string
	seen := map[string]bool{}
	for _, f := range strings.Split(r.Sort, ",") {
		col, ok := spec.Fields[strings.TrimSpace(f)]
		if !ok || seen[col] {
			continue
		}
		seen[col] = true
		cols = append(cols, col)
	}
	if len(cols) == 0 {
		for _, col := range spec.Default {
			seen[col] = true
			cols = append(cols, col)
		}
	}
	if spec.TieBreaker != "" && !seen[spec.TieBreaker] {
		cols = append(cols, spec.TieBreaker)
	}

	order := make([]exp.OrderedExpression, 0, len(cols))
	for _, col := range cols {
		if desc {
			order = append(order, goqu.I(col).Desc())
		} else {
			order = append(order, goqu.I(col).Asc())
		}
	}
	return Window{Size: size, Number: number, Order: order}
}

// Apply adds ORDER BY / LIMIT / OFFSET to ds.
func (w Window) Apply(ds *goqu.SelectDataset) *goqu.SelectDataset {
	return ds.Order(w.Order...).Limit(uint(w.Size)).Offset(w.Offset())
}

// Page is the listing envelope.
type Page[T any] struct {
	PageSize   int   `json:"pageSize"`
	PageNumber int   `json:"pageNumber"`
	Total      int64 `json:"total"`
	Items      []T   `json:"items"`
}

func NewPage[T any](w Window, total int64, items []T) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{PageSize: w.Size, PageNumber: w.Number, Total: total, Items: items}
}

// ---------- gin helpers ----------

// FromQuery reads pageSize, pageNumber, sort and direction.
func FromQuery(c *gin.Context) Request {
	return Request{
		PageSize:   atoiDef(c.Query("pageSize"), DefaultPageSize),
		PageNumber: atoiDef(c.Query("pageNumber"), 0),
		Sort:       c.Query("sort"),
		Direction:  c.DefaultQuery("direction", DirDesc),
	}
}

func atoiDef(s string, d int) int {
	if s == "" {
		return d
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return v
}
