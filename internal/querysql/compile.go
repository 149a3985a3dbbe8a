// Package querysql compiles partial-key filters and per-field orderings
// into parameterized SQL fragments for the guideline store.
//
// The compiler is pure and stateless per call: it returns clause text,
// positional parameter values, and ORDER BY fragments for an external
// executor to run, and never executes anything itself.
//
// Values are NEVER interpolated into clause text. Every literal binds a
// numbered placeholder (?1, ?2, ...) and the returned parameter list is
// positionally aligned with those numbers, with no gaps.
package querysql

import (
	"fmt"
	"log/slog"
	"strings"
)

// Direction selects the sort direction for one order field.
// The zero value means "omit this field from ordering", not "unordered".
type Direction int

const (
	// DirectionNone omits the field from the compiled ordering.
	DirectionNone Direction = iota
	// Ascending sorts the field ascending.
	Ascending
	// Descending sorts the field descending.
	Descending
)

// sql returns the SQL keyword for the direction.
func (d Direction) sql() string {
	switch d {
	case Ascending:
		return "ASC"
	case Descending:
		return "DESC"
	default:
		return ""
	}
}

// FilterTerm is one field of a partial-key filter. IsNull compiles to an
// IS NULL clause with no bound parameter; otherwise Value binds an equality
// placeholder.
type FilterTerm struct {
	Field  string
	Value  any
	IsNull bool
}

// OrderTerm is one field of a caller-supplied ordering.
type OrderTerm struct {
	Field     string
	Direction Direction
}

// Options adjusts a single compilation.
type Options struct {
	// FirstPlaceholder is the number assigned to the first dynamic
	// placeholder. Set it past any fixed placeholders already present in
	// the base query. Zero means 1.
	FirstPlaceholder int
}

// Compiled is the output of one Compile call.
//
// Params is positionally aligned with the placeholder numbers embedded in
// Where: Params[i] binds placeholder number FirstPlaceholder+i.
type Compiled struct {
	// Where holds predicate clauses in filter-term order, e.g.
	// "form = ?1" or "level IS NULL". Join with AND.
	Where []string

	// Params holds the bound values, one per distinct placeholder.
	Params []any

	// OrderBy holds "column ASC|DESC" fragments in order-term order.
	// Fragments are appended after the caller's fixed base ordering.
	OrderBy []string
}

// WhereSQL joins the predicate clauses with AND. Empty when no clause
// compiled.
func (c Compiled) WhereSQL() string {
	return strings.Join(c.Where, " AND ")
}

// OrderSQL joins the order fragments with commas. Empty when no fragment
// compiled.
func (c Compiled) OrderSQL() string {
	return strings.Join(c.OrderBy, ", ")
}

// columns is the fixed allow-list of filterable/orderable fields, mapped to
// their store columns. Any other field name is silently dropped (and logged)
// rather than compiled: a predicate must never reference an unexpected
// column, and a caller typo must not become a SQL error.
var columns = map[string]string{
	"form":      "form",
	"technique": "technique",
	"level":     "level",
	"name":      "name",
}

// placeholders assigns numbered placeholders with per-field deduplication.
// Built fresh for every Compile call, so the compiler stays reentrant.
type placeholders struct {
	next    int
	byField map[string]int
	params  []any
}

// bind returns the placeholder number for a field, assigning the next free
// number (and recording the value) only the first time the field is seen.
// A field seen again reuses its number; the first value wins.
func (p *placeholders) bind(field string, value any) int {
	if n, ok := p.byField[field]; ok {
		return n
	}
	n := p.next
	p.next++
	p.byField[field] = n
	p.params = append(p.params, value)
	return n
}

// Compile translates a filter and an optional ordering into parameterized
// SQL fragments.
//
// Filter terms compile in supply order: IS NULL terms bind nothing, literal
// terms bind one numbered placeholder each, deduplicated per field. Order
// terms compile to "column ASC|DESC" fragments in supply order; terms with
// DirectionNone are omitted. Fields outside the allow-list are dropped from
// both, logged, and never cause an error.
func Compile(filter []FilterTerm, order []OrderTerm, opts Options) Compiled {
	first := opts.FirstPlaceholder
	if first <= 0 {
		first = 1
	}

	ph := &placeholders{next: first, byField: make(map[string]int)}
	var out Compiled

	for _, term := range filter {
		col, ok := columns[term.Field]
		if !ok {
			slog.Warn("dropping unknown filter field", "field", term.Field)
			continue
		}
		if term.IsNull {
			out.Where = append(out.Where, col+" IS NULL")
			continue
		}
		out.Where = append(out.Where, fmt.Sprintf("%s = ?%d", col, ph.bind(term.Field, term.Value)))
	}

	for _, term := range order {
		col, ok := columns[term.Field]
		if !ok {
			slog.Warn("dropping unknown order field", "field", term.Field)
			continue
		}
		dir := term.Direction.sql()
		if dir == "" {
			continue
		}
		out.OrderBy = append(out.OrderBy, col+" "+dir)
	}

	out.Params = ph.params
	return out
}
