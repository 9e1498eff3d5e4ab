package statement

import (
	"fuzzql/internal/catalog"
	"fuzzql/internal/randgen"
	"fuzzql/internal/sqltype"
	"fuzzql/internal/typegen"
)

// newTestGenerator builds a Generator over a fresh catalog with one
// committed database containing one committed table of ncols plain Int32
// columns, ready for statement generation in tests.
func newTestGenerator(seed uint64, ncols int) (*Generator, *catalog.Table) {
	rng := randgen.New(seed)
	cat := catalog.New()
	g := New(rng, typegen.DefaultBudget, cat, DefaultConfig)

	db := cat.StageDatabase("d0")
	cat.CommitDatabase(db.ID)
	table := db.StageTable("t0", catalog.EngineMergeTree)
	for i := 0; i < ncols; i++ {
		table.StageColumn(g.ids.nextColumn(), sqltype.IntType{Width: sqltype.Int32})
	}
	db.CommitTable(table.ID)

	return g, table
}
