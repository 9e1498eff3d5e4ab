package statement

import (
	"fuzzql/internal/catalog"
	"fuzzql/internal/randgen"
	"fuzzql/internal/settings"
	"fuzzql/internal/typegen"
	"fuzzql/internal/valuegen"
)

// Config bounds how many catalog objects a run may accumulate, matching
// spec.md §6's max_databases/max_tables/max_views configuration surface.
type Config struct {
	MaxDatabases int
	MaxTables    int
	MaxViews     int
}

// DefaultConfig matches the modest defaults used across spec.md's
// end-to-end scenarios.
var DefaultConfig = Config{MaxDatabases: 8, MaxTables: 64, MaxViews: 16}

// Generator is the statement generator (C6): it owns the scope stack and
// delegates to C1 (randgen), C3 (typegen), C4 (valuegen), C5 (catalog),
// and C7 (settings) to compose one statement at a time.
type Generator struct {
	rng    *randgen.Source
	types  *typegen.Generator
	values *valuegen.Generator
	cat    *catalog.Catalog
	ids    idCounters
	scope  Stack
	cfg    Config
}

// New builds a Generator over an existing catalog (empty or already
// warmed up) sharing the given random source with the rest of the run.
func New(rng *randgen.Source, budget typegen.Budget, cat *catalog.Catalog, cfg Config) *Generator {
	return &Generator{
		rng:    rng,
		types:  typegen.New(rng, budget, typegen.AllCapabilities),
		values: valuegen.New(rng),
		cat:    cat,
		cfg:    cfg,
	}
}

// Catalog exposes the underlying catalog for callers (the driver, the
// oracle engine) that need to inspect state alongside generation.
func (g *Generator) Catalog() *catalog.Catalog { return g.cat }

// allAttachedTables flattens AttachedTables across every committed
// database, sorted by database id then table id (I7).
func (g *Generator) allAttachedTables() []*catalog.Table {
	var out []*catalog.Table
	for _, dbID := range sortedDBKeys(g.cat.Databases) {
		out = append(out, g.cat.Databases[dbID].AttachedTables()...)
	}
	return out
}

func (g *Generator) allAttachedDatabases() []*catalog.Database {
	var out []*catalog.Database
	for _, dbID := range sortedDBKeys(g.cat.Databases) {
		db := g.cat.Databases[dbID]
		if db.Attached == catalog.Attached {
			out = append(out, db)
		}
	}
	return out
}

func (g *Generator) allDetachedTables() []*catalog.Table {
	var out []*catalog.Table
	for _, dbID := range sortedDBKeys(g.cat.Databases) {
		out = append(out, g.cat.Databases[dbID].DetachedTables()...)
	}
	return out
}

func (g *Generator) allAttachedViews() []*catalog.View {
	var out []*catalog.View
	for _, dbID := range sortedDBKeys(g.cat.Databases) {
		out = append(out, g.cat.Databases[dbID].AttachedViews()...)
	}
	return out
}

func (g *Generator) allDetachedViews() []*catalog.View {
	var out []*catalog.View
	for _, dbID := range sortedDBKeys(g.cat.Databases) {
		out = append(out, g.cat.Databases[dbID].DetachedViews()...)
	}
	return out
}

func (g *Generator) totalTableCount() int {
	n := 0
	for _, db := range g.cat.Databases {
		n += len(db.Tables) + len(db.StagedTables)
	}
	return n
}

// opKind identifies one candidate entry in GenerateNextStatement's
// weighted dispatch table.
type opKind int

const (
	opSelect opKind = iota
	opInsert
	opCreateView
	opLightDelete
	opCreateTable
	opAlterTable
	opSet
	opTruncate
	opOptimize
	opCheck
	opDesc
	opAttach
	opDetach
	opCreateDatabase
	opDrop
	opExchange
)

// GenerateNextStatement is the top-level entry point: wrap in EXPLAIN with
// ~10% probability, then dispatch over the weighted table from spec.md
// §4.6, gating each candidate's weight to 0 when its precondition fails.
func (g *Generator) GenerateNextStatement() Statement {
	candidates := []randgen.WeightedItem[opKind]{
		{Value: opSelect, Weight: 300},
		{Value: opInsert, Weight: weightIf(len(g.allAttachedTables()) >= 1, 100)},
		{Value: opCreateView, Weight: weightIf(len(g.allAttachedDatabases()) >= 1 && g.totalViewCount() < g.cfg.MaxViews, 10)},
		{Value: opLightDelete, Weight: weightIf(len(g.allAttachedTables()) >= 1, 6)},
		{Value: opCreateTable, Weight: weightIf(len(g.allAttachedDatabases()) >= 1 && g.totalTableCount() < g.cfg.MaxTables, 6)},
		{Value: opAlterTable, Weight: weightIf(len(g.allAttachedTables())+len(g.allAttachedViews()) >= 1, 6)},
		{Value: opSet, Weight: 5},
		{Value: opTruncate, Weight: weightIf(len(g.truncableTables()) >= 1, 2)},
		{Value: opOptimize, Weight: weightIf(len(g.allAttachedTables()) >= 1, 2)},
		{Value: opCheck, Weight: weightIf(len(g.allAttachedTables())+len(g.allAttachedViews()) >= 1, 2)},
		{Value: opDesc, Weight: weightIf(len(g.allAttachedTables())+len(g.allAttachedViews()) >= 1, 2)},
		{Value: opAttach, Weight: weightIf(len(g.allDetachedTables())+len(g.allDetachedViews()) >= 1, 2)},
		{Value: opDetach, Weight: weightIf(len(g.allAttachedTables())+len(g.allAttachedViews()) >= 1, 2)},
		{Value: opCreateDatabase, Weight: weightIf(len(g.cat.Databases)+len(g.cat.StagedDatabases) < g.cfg.MaxDatabases, 2)},
		{Value: opDrop, Weight: weightIf(len(g.allAttachedTables())+len(g.allAttachedViews())+len(g.allAttachedDatabases()) >= 1, 1)},
		{Value: opExchange, Weight: weightIf(len(g.allAttachedTables()) >= 2, 1)},
	}

	op := randgen.WeightedPick(g.rng, candidates)
	stmt := g.generateOp(op)
	stmt.Explained = g.rng.Bool(0.10)
	return stmt
}

func weightIf(ok bool, w int) int {
	if ok {
		return w
	}
	return 0
}

func (g *Generator) generateOp(op opKind) Statement {
	switch op {
	case opInsert:
		return g.generateInsert()
	case opCreateView:
		return g.generateCreateView()
	case opLightDelete:
		return g.generateLightDelete()
	case opCreateTable:
		return g.generateCreateTable()
	case opAlterTable:
		return g.generateAlterTable()
	case opSet:
		return g.generateSet()
	case opTruncate:
		return g.generateTruncate()
	case opOptimize:
		return g.generateOptimize()
	case opCheck:
		return g.generateCheck()
	case opDesc:
		return g.generateDesc()
	case opAttach:
		return g.generateAttach()
	case opDetach:
		return g.generateDetach()
	case opCreateDatabase:
		return g.generateCreateDatabase()
	case opDrop:
		return g.generateDrop()
	case opExchange:
		return g.generateExchange()
	default:
		return g.GenerateSelect(true, g.rng.IntRange(1, 5), AllClauses)
	}
}

// TruncableTables exposes the Dump/Reload oracle's candidate pool: attached
// tables whose engine supports TRUNCATE.
func (g *Generator) TruncableTables() []*catalog.Table {
	return g.truncableTables()
}

func (g *Generator) truncableTables() []*catalog.Table {
	var out []*catalog.Table
	for _, dbID := range sortedDBKeys(g.cat.Databases) {
		out = append(out, g.cat.Databases[dbID].AttachedTablesForOracle()...)
	}
	return out
}

func (g *Generator) totalViewCount() int {
	n := 0
	for _, db := range g.cat.Databases {
		n += len(db.Views) + len(db.StagedViews)
	}
	return n
}

func (g *Generator) generateSet() Statement {
	picked, values := settings.FirstSetting(g.rng)
	sql := "SET "
	for i, idx := range picked {
		if i > 0 {
			sql += ", "
		}
		sql += settings.Registry[idx].Name + " = " + values[i]
	}
	return Statement{Kind: KindSet, SQL: sql}
}

func sortedDBKeys(m map[uint32]*catalog.Database) []uint32 {
	keys := make([]uint32, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// simple insertion sort: database counts stay small for a fuzz run
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

func sortedTableKeys(m map[uint32]*catalog.Table) []uint32 {
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
