package statement

import (
	"strings"
	"testing"
)

func TestGenerateCorrectnessPairSharesFromClause(t *testing.T) {
	for _, shape := range []CorrectnessShape{ShapeWhere, ShapeGroupBy, ShapeBoth} {
		g, _ := newTestGenerator(1, 3)
		first, second := g.GenerateCorrectnessPair(shape)

		if !strings.HasPrefix(first, "SELECT count()") {
			t.Fatalf("shape %v: first query = %q", shape, first)
		}
		if !strings.HasPrefix(second, "SELECT ifNull(sum(") {
			t.Fatalf("shape %v: second query = %q", shape, second)
		}

		firstFrom := strings.SplitN(first, " FROM ", 2)[1]
		secondFrom := strings.SplitN(second, " FROM ", 2)[1]
		firstFrom = strings.SplitN(firstFrom, " WHERE", 2)[0]
		firstFrom = strings.SplitN(firstFrom, " GROUP BY", 2)[0]
		secondFrom = strings.SplitN(secondFrom, " WHERE", 2)[0]
		secondFrom = strings.SplitN(secondFrom, " GROUP BY", 2)[0]
		if firstFrom != secondFrom {
			t.Fatalf("shape %v: FROM clauses diverge: %q vs %q", shape, firstFrom, secondFrom)
		}

		if g.scope.Current() != nil {
			t.Fatalf("shape %v: scope level leaked", shape)
		}
	}
}

func TestGenerateCorrectnessPairShapeWhereHasNoGroupBy(t *testing.T) {
	g, _ := newTestGenerator(2, 3)
	first, second := g.GenerateCorrectnessPair(ShapeWhere)
	if strings.Contains(first, "GROUP BY") || strings.Contains(second, "GROUP BY") {
		t.Fatalf("ShapeWhere produced a GROUP BY: first=%q second=%q", first, second)
	}
	if !strings.Contains(first, "WHERE") || !strings.Contains(second, "WHERE") {
		t.Fatalf("ShapeWhere missing WHERE: first=%q second=%q", first, second)
	}
}

func TestGenerateCorrectnessPairShapeGroupByHasNoWhere(t *testing.T) {
	g, _ := newTestGenerator(3, 3)
	first, second := g.GenerateCorrectnessPair(ShapeGroupBy)
	if strings.Contains(first, "WHERE") || strings.Contains(second, "WHERE") {
		t.Fatalf("ShapeGroupBy produced a WHERE: first=%q second=%q", first, second)
	}
	if !strings.Contains(first, "GROUP BY") || !strings.Contains(second, "GROUP BY") {
		t.Fatalf("ShapeGroupBy missing GROUP BY: first=%q second=%q", first, second)
	}
	if !strings.Contains(first, "HAVING") {
		t.Fatalf("ShapeGroupBy's count() form missing HAVING: %q", first)
	}
}

func TestGroupByClauseEmptyWhenNoColumns(t *testing.T) {
	if got := groupByClause(nil); got != "" {
		t.Fatalf("groupByClause(nil) = %q, want empty", got)
	}
}

func TestGroupByClauseJoinsColumnNames(t *testing.T) {
	got := groupByClause([]string{"a", "b"})
	want := " GROUP BY a, b"
	if got != want {
		t.Fatalf("groupByClause = %q, want %q", got, want)
	}
}
