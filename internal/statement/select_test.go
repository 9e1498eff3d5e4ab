package statement

import (
	"strings"
	"testing"
)

func TestGenerateSelectProjectsRequestedColumnCount(t *testing.T) {
	g, _ := newTestGenerator(1, 3)
	// AllowCTE is cleared so the statement always starts with "SELECT "
	// (a WITH prefix would otherwise make prefix-stripping ambiguous here).
	stmt := g.GenerateSelect(true, 4, AllClauses&^AllowCTE)
	if stmt.Kind != KindSelect {
		t.Fatalf("Kind = %v, want KindSelect", stmt.Kind)
	}
	selectList := strings.TrimPrefix(stmt.SQL, "SELECT ")
	selectList = strings.SplitN(selectList, " FROM", 2)[0]
	selectList = strings.SplitN(selectList, " WHERE", 2)[0]
	n := strings.Count(selectList, ",") + 1
	if n != 4 {
		t.Fatalf("projected %d expressions, want 4", n)
	}
}

func TestGenerateSelectBalancesScopeStack(t *testing.T) {
	g, _ := newTestGenerator(2, 2)
	for i := 0; i < 30; i++ {
		g.GenerateSelect(true, 2, AllClauses)
		if g.scope.Current() != nil {
			t.Fatalf("iteration %d: scope level leaked after GenerateSelect", i)
		}
	}
}

func TestGenerateSelectWithoutFromClauseOmitsFrom(t *testing.T) {
	g, _ := newTestGenerator(3, 2)
	stmt := g.GenerateSelect(true, 1, AllClauses&^AllowFrom)
	if strings.Contains(stmt.SQL, " FROM ") {
		t.Fatalf("FROM present despite AllowFrom cleared: %q", stmt.SQL)
	}
}

func TestGenerateFromBindsAliasedRelationColumns(t *testing.T) {
	g, table := newTestGenerator(4, 3)
	level := g.scope.Push(true, true)
	defer g.scope.Pop()

	sql, fromTable := g.generateFrom(level, true)
	if fromTable == nil || fromTable.ID != table.ID {
		t.Fatal("generateFrom did not return the committed table")
	}
	if len(level.Relations) != 1 {
		t.Fatalf("expected 1 relation bound, got %d", len(level.Relations))
	}
	if len(level.Relations[0].Columns) != len(table.Columns) {
		t.Fatalf("relation has %d columns, want %d", len(level.Relations[0].Columns), len(table.Columns))
	}
	if !strings.Contains(sql, "AS ") {
		t.Fatalf("FROM source not aliased: %q", sql)
	}
}

func TestGenerateFromReturnsEmptyWhenDisallowed(t *testing.T) {
	g, _ := newTestGenerator(5, 1)
	level := g.scope.Push(true, true)
	defer g.scope.Pop()
	sql, table := g.generateFrom(level, false)
	if sql != "" || table != nil {
		t.Fatal("generateFrom should return zero values when allowFrom is false")
	}
}
