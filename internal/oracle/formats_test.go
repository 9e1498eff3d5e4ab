package oracle

import (
	"testing"

	"fuzzql/internal/catalog"
	"fuzzql/internal/sqltype"
)

func newSingleColumnTable(typ sqltype.Type) *catalog.Table {
	cat := catalog.New()
	db := cat.StageDatabase("d0")
	cat.CommitDatabase(db.ID)
	table := db.StageTable("t0", catalog.EngineMergeTree)
	table.StageColumn("c0", typ)
	db.CommitTable(table.ID)
	return table
}

func TestPickExportFormatCyclesThroughOutFormats(t *testing.T) {
	table := newSingleColumnTable(sqltype.IntType{Width: sqltype.Int32})
	seen := map[Format]bool{}
	for i := 0; i < len(outFormats); i++ {
		seen[PickExportFormat(i, table)] = true
	}
	if len(seen) < 2 {
		t.Fatal("PickExportFormat should cycle across distinct formats")
	}
}

func TestPickExportFormatDowngradesArrowStreamForUUIDTables(t *testing.T) {
	table := newSingleColumnTable(sqltype.UUIDType{})
	idx := -1
	for i, f := range outFormats {
		if f == "ArrowStream" {
			idx = i
			break
		}
	}
	if idx < 0 {
		t.Fatal("ArrowStream not present in outFormats")
	}
	if got := PickExportFormat(idx, table); got != "CSV" {
		t.Fatalf("PickExportFormat for a UUID table = %q, want CSV downgrade", got)
	}
}

func TestPickExportFormatKeepsArrowStreamWithoutUUID(t *testing.T) {
	table := newSingleColumnTable(sqltype.IntType{Width: sqltype.Int32})
	idx := -1
	for i, f := range outFormats {
		if f == "ArrowStream" {
			idx = i
			break
		}
	}
	if got := PickExportFormat(idx, table); got != "ArrowStream" {
		t.Fatalf("PickExportFormat = %q, want ArrowStream preserved", got)
	}
}

func TestTableHasUUIDColumnDetectsWrappedUUID(t *testing.T) {
	table := newSingleColumnTable(sqltype.NullableType{Inner: sqltype.UUIDType{}})
	if !tableHasUUIDColumn(table) {
		t.Fatal("expected Nullable(UUID) to be detected as a UUID column")
	}
}
