package statement

import (
	"strings"
	"testing"
)

func TestColumnRefExprQualifiesWhenMultipleRelationsVisible(t *testing.T) {
	g, table := newTestGenerator(1, 2)
	level := g.pushSingleTableLevel(table)
	defer g.scope.Pop()
	level.Relations = append(level.Relations, Relation{Name: "extra", Columns: []RelationColumn{{RelationName: "extra", Name: "z"}}})

	expr, _, ok := g.columnRefExpr(level)
	if !ok {
		t.Fatal("columnRefExpr returned ok=false with visible columns present")
	}
	if !strings.Contains(expr, ".") {
		t.Fatalf("expected a qualified reference with >1 relation, got %q", expr)
	}
}

func TestColumnRefExprUnqualifiedWithSingleRelation(t *testing.T) {
	g, table := newTestGenerator(2, 2)
	level := g.pushSingleTableLevel(table)
	defer g.scope.Pop()

	expr, _, ok := g.columnRefExpr(level)
	if !ok {
		t.Fatal("columnRefExpr returned ok=false")
	}
	if strings.Contains(expr, ".") {
		t.Fatalf("expected an unqualified reference with 1 relation, got %q", expr)
	}
}

func TestColumnRefExprFailsWithNoVisibleColumns(t *testing.T) {
	g, _ := newTestGenerator(3, 0)
	level := g.scope.Push(true, true)
	defer g.scope.Pop()
	if _, _, ok := g.columnRefExpr(level); ok {
		t.Fatal("columnRefExpr should fail with no visible columns")
	}
}

func TestPredicateExprFallsBackToBooleanLiteral(t *testing.T) {
	g, _ := newTestGenerator(4, 0)
	level := g.scope.Push(true, true)
	defer g.scope.Pop()
	for i := 0; i < 20; i++ {
		pred := g.predicateExpr(level)
		if pred != "true" && pred != "false" {
			t.Fatalf("predicateExpr with no columns = %q, want true/false", pred)
		}
	}
}

func TestPredicateExprProducesComparisonOverColumn(t *testing.T) {
	g, table := newTestGenerator(5, 2)
	level := g.pushSingleTableLevel(table)
	defer g.scope.Pop()

	pred := g.predicateExpr(level)
	if !strings.HasPrefix(pred, "(") || !strings.HasSuffix(pred, ")") {
		t.Fatalf("predicateExpr = %q, want parenthesized comparison", pred)
	}
}

func TestAggregateCallExprResetsInsideAggregateFlag(t *testing.T) {
	g, table := newTestGenerator(6, 2)
	level := g.pushSingleTableLevel(table)
	defer g.scope.Pop()
	level.AllowAggregates = true

	expr := g.aggregateCallExpr(level)
	if level.InsideAggregate {
		t.Fatal("InsideAggregate left set after aggregateCallExpr returned")
	}
	found := false
	for _, fn := range aggregateFuncs {
		if strings.HasPrefix(expr, fn+"(") {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("aggregateCallExpr = %q, does not start with a known aggregate function", expr)
	}
}

func TestGeneralExprNeverPicksAggregateWhenDisallowed(t *testing.T) {
	g, table := newTestGenerator(7, 2)
	level := g.pushSingleTableLevel(table)
	defer g.scope.Pop()
	level.AllowAggregates = false

	for i := 0; i < 50; i++ {
		expr := g.generalExpr(level)
		for _, fn := range aggregateFuncs {
			if strings.HasPrefix(expr, fn+"(") {
				t.Fatalf("generalExpr produced an aggregate despite AllowAggregates=false: %q", expr)
			}
		}
	}
}
