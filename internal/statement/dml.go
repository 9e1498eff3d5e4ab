package statement

import (
	"fmt"
	"strings"

	"fuzzql/internal/catalog"
	"fuzzql/internal/randgen"
)

type insertShape int

const (
	insertValues insertShape = iota
	insertSelect
	insertSingleExpr
)

// generateInsert builds one of the three shapes spec.md §4.6 lists:
// multi-row VALUES (~90%), INSERT ... SELECT (~5%), or a single-row
// VALUES() with an expression RHS (~5%). The column list is always
// explicit and drawn from insertable columns.
func (g *Generator) generateInsert() Statement {
	t := randgen.Pick(g.rng, g.allAttachedTables())
	cols := insertableColumns(t)
	if len(cols) == 0 {
		return Statement{Kind: KindInsert, SQL: fmt.Sprintf("INSERT INTO %s DEFAULT VALUES", t.QualifiedName()), Table: t}
	}

	shape := randgen.WeightedPick(g.rng, []randgen.WeightedItem[insertShape]{
		{Value: insertValues, Weight: 90},
		{Value: insertSelect, Weight: 5},
		{Value: insertSingleExpr, Weight: 5},
	})

	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	colList := strings.Join(names, ", ")

	var body string
	switch shape {
	case insertSelect:
		sub := g.GenerateSelect(false, len(cols), AllClauses&^AllowSet)
		body = sub.SQL
		return Statement{Kind: KindInsert, SQL: fmt.Sprintf("INSERT INTO %s (%s) %s", t.QualifiedName(), colList, body), Table: t}
	default:
		rowCount := 1
		if shape == insertValues {
			rowCount = g.rng.IntRange(1, 8)
		}
		rows := make([]string, rowCount)
		for r := 0; r < rowCount; r++ {
			vals := make([]string, len(cols))
			for i, c := range cols {
				if c.Special == catalog.SpecialSign {
					if g.rng.Bool(0.5) {
						vals[i] = "1"
					} else {
						vals[i] = "-1"
					}
					continue
				}
				vals[i] = g.values.Literal(c.Type, true)
			}
			rows[r] = "(" + strings.Join(vals, ", ") + ")"
		}
		body = "VALUES " + strings.Join(rows, ", ")
	}

	return Statement{Kind: KindInsert, SQL: fmt.Sprintf("INSERT INTO %s (%s) %s", t.QualifiedName(), colList, body), Table: t}
}

// insertableColumns returns committed columns that CanBeInserted, in id
// order (I7).
func insertableColumns(t *catalog.Table) []catalog.Column {
	var out []catalog.Column
	for _, id := range t.SortedColumnIDs() {
		c := t.Columns[id]
		if c.CanBeInserted() {
			out = append(out, c)
		}
	}
	return out
}

// generateLightDelete builds a lightweight `DELETE FROM t WHERE ...`
// (ClickHouse's mutation-free delete), distinct from ALTER TABLE's heavy
// DELETE mutation variant handled in alter.go.
func (g *Generator) generateLightDelete() Statement {
	t := randgen.Pick(g.rng, g.allAttachedTables())
	level := g.pushSingleTableLevel(t)
	defer g.scope.Pop()
	sql := fmt.Sprintf("DELETE FROM %s WHERE %s", t.QualifiedName(), g.predicateExpr(level))
	return Statement{Kind: KindAlterTable, SQL: sql, Table: t}
}

// pushSingleTableLevel pushes a fresh scope level bound to t's committed
// columns under its bare table name, for statements (light DELETE, heavy
// DELETE inside ALTER TABLE) that build a predicate outside GenerateSelect's
// own level management.
func (g *Generator) pushSingleTableLevel(t *catalog.Table) *Level {
	level := g.scope.Push(false, false)
	level.Relations = append(level.Relations, Relation{Name: t.Name, Columns: relationColumnsFor(t)})
	return level
}

func relationColumnsFor(t *catalog.Table) []RelationColumn {
	var out []RelationColumn
	for _, id := range t.SortedColumnIDs() {
		c := t.Columns[id]
		out = append(out, RelationColumn{RelationName: t.Name, Name: c.Name, Type: c.Type})
	}
	return out
}
