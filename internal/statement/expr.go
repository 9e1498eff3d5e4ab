package statement

import (
	"fmt"
	"strings"

	"fuzzql/internal/randgen"
	"fuzzql/internal/sqltype"
)

// comparisonOps are the boolean comparison operators expression synthesis
// draws from when building a WHERE/HAVING predicate over a column.
var comparisonOps = []string{">", ">=", "<", "<=", "=", "!="}

// aggregateFuncs names the aggregate functions usable when
// allowAggregates is set, matching the "catalog aggregate/window/scalar
// functions" language of spec.md §4.6's expression synthesis paragraph.
// windowFuncs reuses the same pool for window function calls, since any
// ClickHouse aggregate function doubles as a window function under OVER(...).
var aggregateFuncs = []string{"count", "sum", "avg", "min", "max"}

// scalarFuncs names the scalar functions expression synthesis can wrap a
// column reference in, alongside the bare column/aggregate/literal choices.
var scalarFuncs = []string{"abs", "length", "upper", "lower", "toString", "negate"}

// columnRefExpr picks a visible column and renders a reference to it,
// qualified by its relation alias when more than one relation is visible.
func (g *Generator) columnRefExpr(level *Level) (string, sqltype.Type, bool) {
	cols := g.scope.VisibleColumns(true)
	if len(cols) == 0 {
		return "", nil, false
	}
	c := randgen.Pick(g.rng, cols)
	if len(level.Relations) > 1 {
		return c.RelationName + "." + c.Name, c.Type, true
	}
	return c.Name, c.Type, true
}

// predicateExpr builds a boolean-valued expression over the current
// level's visible columns: `<col> <op> <literal>`, falling back to a
// constant boolean literal when no column is visible (an empty FROM, or
// the level has no relations yet).
func (g *Generator) predicateExpr(level *Level) string {
	colExpr, typ, ok := g.columnRefExpr(level)
	if !ok {
		if g.rng.Bool(0.5) {
			return "true"
		}
		return "false"
	}
	op := randgen.Pick(g.rng, comparisonOps)
	lit := g.values.Literal(typ, false)
	return fmt.Sprintf("(%s %s %s)", colExpr, op, lit)
}

// generalExpr builds a scalar-valued expression for a SELECT list entry:
// a bare column reference, an aggregate call (when allowed and not
// already inside one, matching I5), a literal, a scalar function call, a
// window function call (when the level permits one), or an uncorrelated
// scalar subquery.
func (g *Generator) generalExpr(level *Level) string {
	choices := []randgen.WeightedItem[int]{
		{Value: 0, Weight: 35}, // column
		{Value: 1, Weight: weightIf(level.AllowAggregates && !level.InsideAggregate, 25)},
		{Value: 2, Weight: 15}, // literal
		{Value: 3, Weight: 10}, // scalar function
		{Value: 4, Weight: weightIf(level.AllowWindowFuncs && !level.InsideAggregate, 8)},
		{Value: 5, Weight: weightIf(len(g.allAttachedTables()) >= 1, 7)}, // subquery
	}
	switch randgen.WeightedPick(g.rng, choices) {
	case 1:
		return g.aggregateCallExpr(level)
	case 2:
		return g.values.Literal(g.types.BottomType(), false)
	case 3:
		return g.scalarFuncExpr(level)
	case 4:
		return g.windowFuncExpr(level)
	case 5:
		return g.subqueryExpr()
	default:
		if expr, _, ok := g.columnRefExpr(level); ok {
			return expr
		}
		return g.values.Literal(g.types.BottomType(), false)
	}
}

// scalarFuncExpr wraps a column reference (or a fallback literal) in one
// scalar function call.
func (g *Generator) scalarFuncExpr(level *Level) string {
	fn := randgen.Pick(g.rng, scalarFuncs)
	arg, _, ok := g.columnRefExpr(level)
	if !ok {
		arg = g.values.Literal(g.types.BottomType(), false)
	}
	return fmt.Sprintf("%s(%s)", fn, arg)
}

// windowFuncExpr renders `<aggFunc>(<arg>) OVER (PARTITION BY <col> ORDER
// BY <col>)`, reusing aggregateFuncs since any of them is a valid window
// function when paired with an OVER clause.
func (g *Generator) windowFuncExpr(level *Level) string {
	fn := randgen.Pick(g.rng, aggregateFuncs)
	arg := "*"
	if fn != "count" || g.rng.Bool(0.5) {
		if expr, _, ok := g.columnRefExpr(level); ok {
			arg = expr
		} else {
			arg = "1"
		}
	}
	partCol, _, partOK := g.columnRefExpr(level)
	orderCol, _, orderOK := g.columnRefExpr(level)
	var over strings.Builder
	over.WriteString("OVER (")
	if partOK {
		fmt.Fprintf(&over, "PARTITION BY %s", partCol)
	}
	if orderOK {
		if partOK {
			over.WriteString(" ")
		}
		fmt.Fprintf(&over, "ORDER BY %s", orderCol)
	}
	over.WriteString(")")
	return fmt.Sprintf("%s(%s) %s", fn, arg, over.String())
}

// subqueryExpr renders an uncorrelated scalar subquery over a randomly
// picked attached table: `(SELECT <col> FROM t LIMIT 1)`.
func (g *Generator) subqueryExpr() string {
	t := randgen.Pick(g.rng, g.allAttachedTables())
	cols := t.SortedColumnIDs()
	colExpr := "1"
	if len(cols) > 0 {
		id := randgen.Pick(g.rng, cols)
		colExpr = t.Columns[id].Name
	}
	return fmt.Sprintf("(SELECT %s FROM %s LIMIT 1)", colExpr, t.QualifiedName())
}

// aggregateCallExpr renders one aggregate call over a column, toggling
// InsideAggregate while synthesizing the argument so a nested aggregate
// cannot be chosen (I5 scope discipline).
func (g *Generator) aggregateCallExpr(level *Level) string {
	fn := randgen.Pick(g.rng, aggregateFuncs)
	level.InsideAggregate = true
	var arg string
	if fn == "count" && g.rng.Bool(0.3) {
		arg = "*"
	} else if expr, _, ok := g.columnRefExpr(level); ok {
		arg = expr
	} else {
		arg = "1"
	}
	level.InsideAggregate = false
	return fmt.Sprintf("%s(%s)", fn, arg)
}
