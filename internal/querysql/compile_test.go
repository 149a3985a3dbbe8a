package querysql

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_EqualityAndNull(t *testing.T) {
	// {form: "Animal", level: null} compiles to exactly two clauses and
	// exactly one bound parameter.
	compiled := Compile([]FilterTerm{
		{Field: "form", Value: "Animal"},
		{Field: "level", IsNull: true},
	}, nil, Options{})

	require.Len(t, compiled.Where, 2)
	assert.Equal(t, "form = ?1", compiled.Where[0])
	assert.Equal(t, "level IS NULL", compiled.Where[1])
	assert.Equal(t, []any{"Animal"}, compiled.Params)
	assert.Empty(t, compiled.OrderBy)

	assert.Equal(t, "form = ?1 AND level IS NULL", compiled.WhereSQL())
}

func TestCompile_ValuesNeverInterpolated(t *testing.T) {
	compiled := Compile([]FilterTerm{
		{Field: "name", Value: "Cure'; DROP TABLE guidelines; --"},
	}, nil, Options{})

	require.Len(t, compiled.Where, 1)
	assert.Equal(t, "name = ?1", compiled.Where[0])
	assert.NotContains(t, compiled.WhereSQL(), "DROP TABLE")
	assert.Equal(t, []any{"Cure'; DROP TABLE guidelines; --"}, compiled.Params)
}

func TestCompile_PlaceholderDeduplication(t *testing.T) {
	// A field seen more than once reuses its placeholder and its first
	// value: one placeholder per distinct field per compiled query.
	compiled := Compile([]FilterTerm{
		{Field: "form", Value: "Animal"},
		{Field: "technique", Value: "Creo"},
		{Field: "form", Value: "Ignem"},
	}, []OrderTerm{
		{Field: "form", Direction: Ascending},
	}, Options{})

	assert.Equal(t, []string{"form = ?1", "technique = ?2", "form = ?1"}, compiled.Where)
	assert.Equal(t, []any{"Animal", "Creo"}, compiled.Params)
	assert.Equal(t, []string{"form ASC"}, compiled.OrderBy)
}

func TestCompile_FirstPlaceholderOffset(t *testing.T) {
	// Dynamic placeholders number after the base query's fixed ones;
	// the parameter list still aligns positionally with no gaps.
	compiled := Compile([]FilterTerm{
		{Field: "form", Value: "Animal"},
		{Field: "level", Value: 5},
	}, nil, Options{FirstPlaceholder: 3})

	assert.Equal(t, []string{"form = ?3", "level = ?4"}, compiled.Where)
	assert.Equal(t, []any{"Animal", 5}, compiled.Params)
}

func TestCompile_UnknownFieldsSilentlyDropped(t *testing.T) {
	// Fields outside the allow-list disappear from filter and order alike.
	// That is recovery, not an error: the remaining terms still compile,
	// and placeholder numbering has no gaps.
	compiled := Compile([]FilterTerm{
		{Field: "grimoire", Value: "forbidden"},
		{Field: "form", Value: "Animal"},
	}, []OrderTerm{
		{Field: "grimoire", Direction: Descending},
		{Field: "level", Direction: Descending},
	}, Options{})

	assert.Equal(t, []string{"form = ?1"}, compiled.Where)
	assert.Equal(t, []any{"Animal"}, compiled.Params)
	assert.Equal(t, []string{"level DESC"}, compiled.OrderBy)
}

func TestCompile_DirectionNoneOmitsField(t *testing.T) {
	compiled := Compile(nil, []OrderTerm{
		{Field: "level", Direction: DirectionNone},
		{Field: "name", Direction: Ascending},
	}, Options{})

	assert.Equal(t, []string{"name ASC"}, compiled.OrderBy)
}

func TestCompile_EmptyInputs(t *testing.T) {
	compiled := Compile(nil, nil, Options{})
	assert.Empty(t, compiled.Where)
	assert.Empty(t, compiled.Params)
	assert.Empty(t, compiled.OrderBy)
	assert.Equal(t, "", compiled.WhereSQL())
	assert.Equal(t, "", compiled.OrderSQL())
}

func TestCompile_OrderPreservesSupplyOrder(t *testing.T) {
	compiled := Compile(nil, []OrderTerm{
		{Field: "name", Direction: Descending},
		{Field: "level", Direction: Ascending},
	}, Options{})

	assert.Equal(t, "name DESC, level ASC", compiled.OrderSQL())
}

// renderCompiled formats a compilation for golden comparison.
func renderCompiled(c Compiled) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "WHERE:  %s\n", c.WhereSQL())
	fmt.Fprintf(&b, "PARAMS: %v\n", c.Params)
	fmt.Fprintf(&b, "ORDER:  %s\n", c.OrderSQL())
	return []byte(b.String())
}

func TestCompile_Golden(t *testing.T) {
	g := goldie.New(t)

	testCases := []struct {
		name   string
		filter []FilterTerm
		order  []OrderTerm
		opts   Options
	}{
		{
			name: "equality_and_null",
			filter: []FilterTerm{
				{Field: "form", Value: "Animal"},
				{Field: "level", IsNull: true},
			},
		},
		{
			name: "dedup_with_order",
			filter: []FilterTerm{
				{Field: "form", Value: "Animal"},
				{Field: "form", Value: "Ignem"},
			},
			order: []OrderTerm{
				{Field: "form", Direction: Ascending},
			},
		},
		{
			name: "full_query",
			filter: []FilterTerm{
				{Field: "form", Value: "Animal"},
				{Field: "technique", Value: "Creo"},
				{Field: "level", Value: 5},
				{Field: "name", Value: "Cure X"},
			},
			order: []OrderTerm{
				{Field: "level", Direction: Descending},
				{Field: "name", Direction: Ascending},
			},
			opts: Options{FirstPlaceholder: 2},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			compiled := Compile(tc.filter, tc.order, tc.opts)
			g.Assert(t, tc.name, renderCompiled(compiled))
		})
	}
}
