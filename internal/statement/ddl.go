package statement

import (
	"fmt"
	"strings"

	"fuzzql/internal/catalog"
	"fuzzql/internal/randgen"
	"fuzzql/internal/sqltype"
)

func (g *Generator) generateCreateDatabase() Statement {
	name := g.ids.nextDatabase()
	db := g.cat.StageDatabase(name)
	sql := fmt.Sprintf("CREATE DATABASE %s", name)
	return Statement{Kind: KindCreateDatabase, SQL: sql, StagedDatabase: db}
}

var tableEngines = []catalog.Engine{
	catalog.EngineMergeTree, catalog.EngineReplacingMergeTree, catalog.EngineCollapsingMergeTree,
	catalog.EngineVersionedCollapsingMergeTree, catalog.EngineSummingMergeTree, catalog.EngineAggregatingMergeTree,
	catalog.EngineFile, catalog.EngineJoin, catalog.EngineNull, catalog.EngineSet, catalog.EngineBuffer,
}

// engineOption is the Replicated/Shared axis spec.md §4.6 layers onto a
// MergeTree-family engine: "Replicated" prefixes the engine name with
// ZooKeeper path/replica-name arguments, "Shared" is the cloud-storage
// variant that additionally needs a storage_policy setting.
type engineOption int

const (
	engineOptionPlain engineOption = iota
	engineOptionReplicated
	engineOptionShared
)

// storagePolicies mirrors the small fixed pool of storage_policy values a
// real ClickHouse server ships with by default.
var storagePolicies = []string{"default", "s3_cache", "gcs_main"}

// indexTypes is the secondary index type catalog spec.md §3 lists.
var indexTypes = []string{
	"minmax", "set(100)", "bloom_filter", "ngrambf_v1(3, 256, 2, 0)",
	"tokenbf_v1(256, 2, 0)", "full_text", "inverted", "hypothesis",
}

func engineName(e catalog.Engine) string {
	switch e {
	case catalog.EngineMergeTree:
		return "MergeTree"
	case catalog.EngineReplacingMergeTree:
		return "ReplacingMergeTree"
	case catalog.EngineCollapsingMergeTree:
		return "CollapsingMergeTree"
	case catalog.EngineVersionedCollapsingMergeTree:
		return "VersionedCollapsingMergeTree"
	case catalog.EngineSummingMergeTree:
		return "SummingMergeTree"
	case catalog.EngineAggregatingMergeTree:
		return "AggregatingMergeTree"
	case catalog.EngineFile:
		return "File"
	case catalog.EngineJoin:
		return "Join"
	case catalog.EngineNull:
		return "Null"
	case catalog.EngineSet:
		return "Set"
	case catalog.EngineBuffer:
		return "Buffer"
	default:
		return "MergeTree"
	}
}

// renderEngineCall builds the full `EngineName(args...)` text for a
// MergeTree-family engine: the Replicated option prefixes the name and
// prepends ZooKeeper path/replica-name arguments (folding in db/table so
// two Replicated tables never collide); the Shared option only prefixes
// the name. extraArgs (sign/version columns) are appended last.
func renderEngineCall(base string, opt engineOption, db, table string, extraArgs []string) string {
	name := base
	var args []string
	switch opt {
	case engineOptionReplicated:
		name = "Replicated" + base
		args = append(args, fmt.Sprintf("'/clickhouse/tables/{shard}/%s/%s'", db, table), "'{replica}'")
	case engineOptionShared:
		name = "Shared" + base
	}
	args = append(args, extraArgs...)
	if len(args) == 0 {
		return name
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(args, ", "))
}

// generateCreateTable builds a CREATE TABLE statement. With ~16% chance
// and enough existing tables it reuses an id via CREATE OR REPLACE,
// matching spec.md §4.6's REPLACE path; otherwise it stages a fresh
// table in a randomly picked attached database. The body is either a
// plain column list or, with small probability and an existing donor
// table available, an `AS existing_table` clone that copies the donor's
// committed columns and engine.
func (g *Generator) generateCreateTable() Statement {
	dbs := g.allAttachedDatabases()
	db := randgen.Pick(g.rng, dbs)

	existing := g.totalTableCount()
	replace := existing >= 4 && g.rng.Bool(0.16)

	var name string
	var replacedID uint32
	if replace {
		all := g.allAttachedTables()
		target := randgen.Pick(g.rng, all)
		name = target.Name
		replacedID = target.ID
	} else {
		name = g.ids.nextTable()
	}

	if existing >= 1 && !replace && g.rng.Bool(0.08) {
		donor := randgen.Pick(g.rng, g.allAttachedTables())
		table := db.StageTable(name, donor.Engine)
		for _, id := range donor.SortedColumnIDs() {
			c := donor.Columns[id]
			table.StageSpecialColumn(c.Name, c.Type, c.Special)
		}
		sql := fmt.Sprintf("CREATE TABLE %s.%s AS %s", db.Name, name, donor.QualifiedName())
		return Statement{Kind: KindCreateTable, SQL: sql, Database: db, StagedTable: table}
	}

	engine := randgen.Pick(g.rng, tableEngines)
	opt := engineOptionPlain
	if engine.IsMergeTreeFamily() {
		opt = randgen.WeightedPick(g.rng, []randgen.WeightedItem[engineOption]{
			{Value: engineOptionPlain, Weight: 70},
			{Value: engineOptionReplicated, Weight: 20},
			{Value: engineOptionShared, Weight: 10},
		})
	}
	numCols := g.rng.IntRange(1, 5)

	table := db.StageTable(name, engine)

	var colDefs []string
	for i := 0; i < numCols; i++ {
		cname := g.ids.nextColumn()
		typ := g.types.RandomNextType(0)
		table.StageColumn(cname, typ)
		colDefs = append(colDefs, fmt.Sprintf("%s %s", cname, typ.String()))
	}

	// Optional index/projection/constraint items interleaved with plain
	// columns at weights 8/4/4/4, per spec.md §4.6.
	nExtra := g.rng.IntRange(0, 3)
	for i := 0; i < nExtra && len(colDefs) > 0; i++ {
		switch randgen.WeightedPick(g.rng, []randgen.WeightedItem[int]{
			{Value: 0, Weight: 8},
			{Value: 1, Weight: 4},
			{Value: 2, Weight: 4},
			{Value: 3, Weight: 4},
		}) {
		case 0:
			cname := g.ids.nextColumn()
			typ := g.types.RandomNextType(0)
			table.StageColumn(cname, typ)
			colDefs = append(colDefs, fmt.Sprintf("%s %s", cname, typ.String()))
		case 1:
			iname := g.ids.nextIndex()
			col := randgen.Pick(g.rng, stagedColumnNames(table))
			idxType := randgen.Pick(g.rng, indexTypes)
			table.StageIndex(iname)
			colDefs = append(colDefs, fmt.Sprintf("INDEX %s %s TYPE %s GRANULARITY 4", iname, col, idxType))
		case 2:
			pname := g.ids.nextProjection()
			col := randgen.Pick(g.rng, stagedColumnNames(table))
			table.StageProjection(pname)
			colDefs = append(colDefs, fmt.Sprintf("PROJECTION %s (SELECT %s ORDER BY %s)", pname, col, col))
		case 3:
			kname := g.ids.nextConstraint()
			col := randgen.Pick(g.rng, stagedColumnNames(table))
			isCheck := g.rng.Bool(0.7)
			table.StageConstraint(kname, isCheck)
			kind := "CHECK"
			if !isCheck {
				kind = "ASSUME"
			}
			colDefs = append(colDefs, fmt.Sprintf("CONSTRAINT %s %s (isNotNull(%s) OR isNull(%s))", kname, kind, col, col))
		}
	}

	var engineArgs []string
	var signCol, versionCol string
	if engine.HasSignColumn() && g.rng.Bool(0.6) {
		signCol = g.ids.nextColumn()
		table.StageSpecialColumn(signCol, sqltype.IntType{Width: sqltype.Int8}, catalog.SpecialSign)
		colDefs = append(colDefs, fmt.Sprintf("%s Int8", signCol))
	}
	if engine.HasVersionColumn() && g.rng.Bool(0.6) {
		versionCol = g.ids.nextColumn()
		table.StageSpecialColumn(versionCol, sqltype.IntType{Width: sqltype.UInt32}, catalog.SpecialVersion)
		colDefs = append(colDefs, fmt.Sprintf("%s UInt32", versionCol))
	}
	if signCol != "" {
		engineArgs = append(engineArgs, signCol)
	}
	if versionCol != "" {
		engineArgs = append(engineArgs, versionCol)
	}

	engineCall := renderEngineCall(engineName(engine), opt, db.Name, name, engineArgs)

	var b strings.Builder
	if replace {
		b.WriteString("CREATE OR REPLACE TABLE ")
	} else {
		b.WriteString("CREATE TABLE ")
	}
	fmt.Fprintf(&b, "%s.%s (%s) ENGINE = %s", db.Name, name, strings.Join(colDefs, ", "), engineCall)

	if engine.IsMergeTreeFamily() {
		b.WriteString(g.mergeTreeClauses(table))
		if opt == engineOptionShared {
			fmt.Fprintf(&b, ", storage_policy = '%s'", randgen.Pick(g.rng, storagePolicies))
		}
	}

	return Statement{Kind: KindCreateTable, SQL: b.String(), Database: db, StagedTable: table, IsReplace: replace, ReplacedTableID: replacedID}
}

func stagedColumnNames(t *catalog.Table) []string {
	var out []string
	for _, id := range sortedStagedColumnKeys(t.StagedColumns) {
		out = append(out, t.StagedColumns[id].Name)
	}
	return out
}

// mergeTreeClauses builds ORDER BY/PRIMARY KEY/PARTITION BY/SETTINGS for a
// MergeTree-family table, per spec.md §4.6's CREATE TABLE rules.
func (g *Generator) mergeTreeClauses(table *catalog.Table) string {
	var cols []string
	for _, id := range sortedStagedColumnKeys(table.StagedColumns) {
		cols = append(cols, table.StagedColumns[id].Name)
	}
	if len(cols) == 0 {
		return " SETTINGS allow_nullable_key = 1"
	}

	var b strings.Builder
	if g.rng.Bool(0.70) {
		n := g.rng.IntRange(1, min3(len(cols), 3))
		order := cols[:n]
		fmt.Fprintf(&b, " ORDER BY (%s)", strings.Join(order, ", "))
		if g.rng.Bool(0.50) {
			pkN := g.rng.IntRange(1, n)
			fmt.Fprintf(&b, " PRIMARY KEY (%s)", strings.Join(order[:pkN], ", "))
		}
	} else {
		b.WriteString(" ORDER BY tuple()")
	}
	if g.rng.Bool(0.50) {
		fmt.Fprintf(&b, " PARTITION BY %s", cols[0])
	}
	b.WriteString(" SETTINGS allow_nullable_key = 1")
	return b.String()
}

func min3(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func sortedStagedColumnKeys(m map[uint32]catalog.Column) []uint32 {
	keys := make([]uint32, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

// generateCreateView builds a regular or materialized view whose body is
// a SELECT with 1..5 output columns, per spec.md §4.6.
func (g *Generator) generateCreateView() Statement {
	db := randgen.Pick(g.rng, g.allAttachedDatabases())
	name := g.ids.nextView()
	materialized := g.rng.Bool(0.4)
	ncols := g.rng.IntRange(1, 5)

	body := g.GenerateSelect(false, ncols, AllClauses&^AllowSet)

	view := db.StageView(name, materialized, ncols)

	var b strings.Builder
	if materialized {
		fmt.Fprintf(&b, "CREATE MATERIALIZED VIEW %s.%s ENGINE = MergeTree ORDER BY tuple() AS %s", db.Name, name, body.SQL)
	} else {
		fmt.Fprintf(&b, "CREATE VIEW %s.%s AS %s", db.Name, name, body.SQL)
	}

	return Statement{Kind: KindCreateView, SQL: b.String(), Database: db, View: view}
}

// generateDrop targets any attached object: a table, a view, or a database,
// weighted 6/2/2 among the kinds that have an attached candidate, per
// spec.md §4.6's "any attached object" precondition.
func (g *Generator) generateDrop() Statement {
	tables := g.allAttachedTables()
	views := g.allAttachedViews()
	dbs := g.allAttachedDatabases()

	switch randgen.WeightedPick(g.rng, []randgen.WeightedItem[int]{
		{Value: 0, Weight: weightIf(len(tables) > 0, 6)},
		{Value: 1, Weight: weightIf(len(views) > 0, 2)},
		{Value: 2, Weight: weightIf(len(dbs) > 0, 2)},
	}) {
	case 0:
		t := randgen.Pick(g.rng, tables)
		return Statement{Kind: KindDrop, SQL: fmt.Sprintf("DROP TABLE %s", t.QualifiedName()), Table: t}
	case 1:
		v := randgen.Pick(g.rng, views)
		return Statement{Kind: KindDrop, SQL: fmt.Sprintf("DROP VIEW %s", v.QualifiedName()), View: v}
	default:
		db := randgen.Pick(g.rng, dbs)
		return Statement{Kind: KindDrop, SQL: fmt.Sprintf("DROP DATABASE %s", db.Name), Database: db}
	}
}

func (g *Generator) generateTruncate() Statement {
	t := randgen.Pick(g.rng, g.truncableTables())
	return Statement{Kind: KindTruncate, SQL: fmt.Sprintf("TRUNCATE TABLE %s", t.QualifiedName()), Table: t}
}

func (g *Generator) generateOptimize() Statement {
	t := randgen.Pick(g.rng, g.allAttachedTables())
	sql := fmt.Sprintf("OPTIMIZE TABLE %s", t.QualifiedName())
	if t.Engine.SupportsFinal() && g.rng.Bool(0.5) {
		sql += " FINAL"
	}
	return Statement{Kind: KindOptimize, SQL: sql, Table: t}
}

// generateCheck targets a table or a view, per spec.md §4.6.
func (g *Generator) generateCheck() Statement {
	views := g.allAttachedViews()
	if len(views) > 0 && g.rng.Bool(0.2) {
		v := randgen.Pick(g.rng, views)
		return Statement{Kind: KindCheck, SQL: fmt.Sprintf("CHECK TABLE %s", v.QualifiedName()), View: v}
	}
	t := randgen.Pick(g.rng, g.allAttachedTables())
	return Statement{Kind: KindCheck, SQL: fmt.Sprintf("CHECK TABLE %s", t.QualifiedName()), Table: t}
}

// generateDesc targets a table or a view, per spec.md §4.6.
func (g *Generator) generateDesc() Statement {
	views := g.allAttachedViews()
	if len(views) > 0 && g.rng.Bool(0.2) {
		v := randgen.Pick(g.rng, views)
		return Statement{Kind: KindDesc, SQL: fmt.Sprintf("DESCRIBE TABLE %s", v.QualifiedName()), View: v}
	}
	t := randgen.Pick(g.rng, g.allAttachedTables())
	return Statement{Kind: KindDesc, SQL: fmt.Sprintf("DESCRIBE TABLE %s", t.QualifiedName()), Table: t}
}

func (g *Generator) generateAttach() Statement {
	tables := g.allDetachedTables()
	views := g.allDetachedViews()
	if len(tables) == 0 || (len(views) > 0 && g.rng.Bool(0.3)) {
		v := randgen.Pick(g.rng, views)
		return Statement{Kind: KindAttach, SQL: fmt.Sprintf("ATTACH VIEW %s", v.QualifiedName()), View: v}
	}
	t := randgen.Pick(g.rng, tables)
	return Statement{Kind: KindAttach, SQL: fmt.Sprintf("ATTACH TABLE %s", t.QualifiedName()), Table: t}
}

func (g *Generator) generateDetach() Statement {
	tables := g.allAttachedTables()
	views := g.allAttachedViews()
	if len(tables) == 0 || (len(views) > 0 && g.rng.Bool(0.3)) {
		v := randgen.Pick(g.rng, views)
		return Statement{Kind: KindDetach, SQL: fmt.Sprintf("DETACH VIEW %s", v.QualifiedName()), View: v}
	}
	t := randgen.Pick(g.rng, tables)
	return Statement{Kind: KindDetach, SQL: fmt.Sprintf("DETACH TABLE %s", t.QualifiedName()), Table: t}
}

// generateExchange swaps two attached tables' identities (I6: applying it
// twice is the identity transform). Prefers two tables in the same database,
// since that's the pair catalog.Database.ExchangeTables can actually apply.
func (g *Generator) generateExchange() Statement {
	tables := g.allAttachedTables()
	a := randgen.Pick(g.rng, tables)

	candidates := a.Database.AttachedTables()
	if len(candidates) < 2 {
		candidates = tables
	}
	b := a
	for b.ID == a.ID {
		b = randgen.Pick(g.rng, candidates)
	}

	sql := fmt.Sprintf("EXCHANGE TABLES %s AND %s", a.QualifiedName(), b.QualifiedName())
	return Statement{Kind: KindExchange, SQL: sql, Table: a, SecondTable: b, Database: a.Database}
}
