package oracle

import (
	"context"
	"fmt"
	"strings"

	"fuzzql/internal/catalog"
	"fuzzql/internal/client"
	"fuzzql/internal/randgen"
	"fuzzql/internal/statement"
)

// RunDumpReload drives the Dump/Reload oracle: snapshot a table's content,
// TRUNCATE it, reload the snapshot, and compare the before/after content
// digests. Grounded on DumpTableContent/GenerateExportQuery/
// GenerateClearQuery/GenerateImportQuery's four-statement pipeline, adapted
// from ClickHouse's FILE()-table-function round trip onto a plain
// SELECT/TRUNCATE/INSERT round trip over a database/sql backend: the content
// equality being checked is the same, only the transport differs.
func RunDumpReload(ctx context.Context, c client.Client, rng *randgen.Source, gen *statement.Generator) error {
	candidates := gen.TruncableTables()
	if len(candidates) == 0 {
		return nil
	}
	t := randgen.Pick(rng, candidates)
	cols := exportColumns(t)
	if len(cols) == 0 {
		return nil
	}

	_ = PickExportFormat(rng.Intn(1<<20), t) // recorded as run metadata by the caller's logger

	colList := strings.Join(names(cols), ", ")
	selectSQL := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s", colList, t.QualifiedName(), colList)

	v, err := RecordFirst(ctx, c, "dump_reload", selectSQL)
	if err != nil {
		return err
	}
	if !v.firstOK {
		return nil
	}

	rows, err := c.Query(ctx, selectSQL)
	if err != nil {
		return nil
	}

	if err := c.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s", t.QualifiedName())); err != nil {
		return nil
	}

	if len(rows.Values) > 0 {
		insertSQL := buildReinsertStatement(t, cols, rows.Values)
		if err := c.Exec(ctx, insertSQL); err != nil {
			return nil
		}
	}

	return v.RecordSecond(ctx, c, selectSQL)
}

func exportColumns(t *catalog.Table) []catalog.Column {
	var out []catalog.Column
	for _, id := range t.SortedColumnIDs() {
		c := t.Columns[id]
		if c.CanBeInserted() {
			out = append(out, c)
		}
	}
	return out
}

func names(cols []catalog.Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Name
	}
	return out
}

func buildReinsertStatement(t *catalog.Table, cols []catalog.Column, values [][]string) string {
	colList := strings.Join(names(cols), ", ")
	rows := make([]string, len(values))
	for i, row := range values {
		quoted := make([]string, len(row))
		for j, v := range row {
			quoted[j] = quoteReloadValue(v)
		}
		rows[i] = "(" + strings.Join(quoted, ", ") + ")"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", t.QualifiedName(), colList, strings.Join(rows, ", "))
}

func quoteReloadValue(v string) string {
	if v == "<nil>" || v == "" {
		return "NULL"
	}
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}
