package statement

import (
	"testing"

	"fuzzql/internal/catalog"
)

func TestGenerateNextStatementNeverPicksZeroWeightCandidate(t *testing.T) {
	// An empty catalog: only opSelect (FROM-less), opSet and
	// opCreateDatabase have nonzero weight (opCreateTable needs an
	// attached database).
	g, _ := emptyTestGenerator(1)
	for i := 0; i < 200; i++ {
		stmt := g.GenerateNextStatement()
		switch stmt.Kind {
		case KindInsert, KindAlterTable, KindTruncate, KindOptimize, KindCheck,
			KindDesc, KindAttach, KindDetach, KindExchange:
			t.Fatalf("iteration %d: got Kind %v with an empty catalog", i, stmt.Kind)
		}
	}
}

func TestGenerateNextStatementExplainWrapping(t *testing.T) {
	g, _ := newTestGenerator(2, 2)
	sawExplained, sawPlain := false, false
	for i := 0; i < 300 && !(sawExplained && sawPlain); i++ {
		stmt := g.GenerateNextStatement()
		if stmt.Explained {
			sawExplained = true
			if stmt.String()[:7] != "EXPLAIN" {
				t.Fatalf("Explained=true but String() = %q", stmt.String())
			}
		} else {
			sawPlain = true
			if stmt.String() != stmt.SQL {
				t.Fatalf("Explained=false but String() != SQL: %q vs %q", stmt.String(), stmt.SQL)
			}
		}
	}
	if !sawExplained || !sawPlain {
		t.Fatal("did not observe both explained and plain statements across 300 draws")
	}
}

func TestWeightIf(t *testing.T) {
	if weightIf(true, 7) != 7 {
		t.Fatal("weightIf(true, 7) != 7")
	}
	if weightIf(false, 7) != 0 {
		t.Fatal("weightIf(false, 7) != 0")
	}
}

func TestTruncableTablesExcludesNotTruncableEngines(t *testing.T) {
	g, table := newTestGenerator(3, 1)
	nullTable := table.Database.StageTable("t1", catalog.EngineNull)
	table.Database.CommitTable(nullTable.ID)

	got := g.TruncableTables()
	for _, tb := range got {
		if tb.ID == nullTable.ID {
			t.Fatal("TruncableTables included a Null-engine table")
		}
	}
}

// emptyTestGenerator builds a Generator over a completely empty catalog (no
// databases, tables, or views at all).
func emptyTestGenerator(seed uint64) (*Generator, struct{}) {
	g, table := newTestGenerator(seed, 0)
	// Discard the seeded table/database entirely to leave a bare catalog.
	table.Database.DropTable(table.ID)
	delete(g.Catalog().Databases, table.Database.ID)
	return g, struct{}{}
}
