package statement

import (
	"strings"
	"testing"

	"fuzzql/internal/catalog"
	"fuzzql/internal/randgen"
	"fuzzql/internal/typegen"
)

func TestGenerateInsertValuesShapeMatchesColumnCount(t *testing.T) {
	g, table := newTestGenerator(1, 3)
	stmt := g.generateInsert()
	if stmt.Kind != KindInsert {
		t.Fatalf("Kind = %v, want KindInsert", stmt.Kind)
	}
	if stmt.Table.ID != table.ID {
		t.Fatal("INSERT targeted an unexpected table")
	}
	if !strings.HasPrefix(stmt.SQL, "INSERT INTO ") {
		t.Fatalf("SQL = %q", stmt.SQL)
	}
}

func TestGenerateInsertWithNoColumnsFallsBackToDefaultValues(t *testing.T) {
	rng := randgen.New(2)
	cat := catalog.New()
	g := New(rng, typegen.DefaultBudget, cat, DefaultConfig)
	db := cat.StageDatabase("d0")
	cat.CommitDatabase(db.ID)
	table := db.StageTable("t0", catalog.EngineMergeTree)
	db.CommitTable(table.ID)

	stmt := g.generateInsert()
	if !strings.Contains(stmt.SQL, "DEFAULT VALUES") {
		t.Fatalf("expected DEFAULT VALUES fallback, got %q", stmt.SQL)
	}
}

func TestGenerateLightDeleteBindsPredicateToPickedTable(t *testing.T) {
	g, table := newTestGenerator(3, 2)
	stmt := g.generateLightDelete()
	if stmt.Table.ID != table.ID {
		t.Fatal("DELETE targeted an unexpected table")
	}
	if !strings.Contains(stmt.SQL, "DELETE FROM") || !strings.Contains(stmt.SQL, "WHERE") {
		t.Fatalf("SQL missing DELETE/WHERE: %q", stmt.SQL)
	}
	// The scope stack must be balanced: no level should leak past the call.
	if g.scope.Current() != nil {
		t.Fatal("scope level leaked after generateLightDelete")
	}
}

func TestPushSingleTableLevelExposesTableColumns(t *testing.T) {
	g, table := newTestGenerator(4, 2)
	level := g.pushSingleTableLevel(table)
	defer g.scope.Pop()

	if len(level.Relations) != 1 || level.Relations[0].Name != table.Name {
		t.Fatalf("unexpected relations: %+v", level.Relations)
	}
	if len(level.Relations[0].Columns) != len(table.Columns) {
		t.Fatalf("relation has %d columns, want %d", len(level.Relations[0].Columns), len(table.Columns))
	}
	cols := g.scope.VisibleColumns(true)
	if len(cols) != len(table.Columns) {
		t.Fatalf("VisibleColumns returned %d, want %d", len(cols), len(table.Columns))
	}
}

func TestInsertableColumnsPreservesIDOrder(t *testing.T) {
	_, table := newTestGenerator(5, 4)
	cols := insertableColumns(table)
	if len(cols) != 4 {
		t.Fatalf("got %d insertable columns, want 4", len(cols))
	}
	ids := table.SortedColumnIDs()
	for i, id := range ids {
		if cols[i].Name != table.Columns[id].Name {
			t.Fatalf("index %d: got %s, want %s", i, cols[i].Name, table.Columns[id].Name)
		}
	}
}
