// Package catalog models the staged/committed schema-object lifecycle
// (C5): DDL stages an object, a server acceptance promotes staged to
// committed, a rejection discards the staged copy. Grounded on sql_catalog.h
// (SQLDatabase/SQLTable/SQLView/SQLFunction, DetachStatus, ColumnSpecial)
// adapted onto the Database/Table/Column shape of internal/core/schema.go.
package catalog

import (
	"fmt"
	"sort"

	"fuzzql/internal/sqltype"
)

// DetachStatus is the three-state attachment status carried by every
// catalog object, matching sql_catalog.h's DetachStatus enum.
type DetachStatus int

const (
	Attached DetachStatus = iota
	Detached
	PermanentlyDetached
)

// ColumnSpecial marks a column as playing a special role for engines in
// the CollapsingMergeTree/VersionedCollapsingMergeTree family.
type ColumnSpecial int

const (
	SpecialNone ColumnSpecial = iota
	SpecialSign
	SpecialIsDeleted
	SpecialVersion
)

// Engine enumerates the table engine families the catalog understands.
// The contiguous MergeTree..AggregatingMergeTree family range, the
// Replacing..VersionedCollapsing FINAL range, and the not-truncable set
// below mirror the ranges sql_catalog.h checks with relational operators on
// the underlying enum value.
type Engine int

const (
	EngineMergeTree Engine = iota
	EngineReplacingMergeTree
	EngineCollapsingMergeTree
	EngineVersionedCollapsingMergeTree
	EngineSummingMergeTree
	EngineAggregatingMergeTree
	EngineFile
	EngineJoin
	EngineNull
	EngineSet
	EngineBuffer
	EngineMySQL
	EnginePostgreSQL
	EngineSQLite
	EngineMongoDB
	EngineRedis
	EngineS3
	EngineS3Queue
	EngineHudi
	EngineDeltaLake
	EngineIceberg
)

// IsMergeTreeFamily reports whether the engine is one of the MergeTree
// variants, the range over which ORDER BY/PARTITION BY clauses apply.
func (e Engine) IsMergeTreeFamily() bool {
	return e >= EngineMergeTree && e <= EngineAggregatingMergeTree
}

// SupportsFinal mirrors SQLTable::SupportsFinal: the Replacing/Collapsing/
// VersionedCollapsing range, plus Buffer.
func (e Engine) SupportsFinal() bool {
	return (e >= EngineReplacingMergeTree && e <= EngineVersionedCollapsingMergeTree) || e == EngineBuffer
}

// HasSignColumn mirrors SQLTable::HasSignColumn: Collapsing and
// VersionedCollapsing engines carry a sign column.
func (e Engine) HasSignColumn() bool {
	return e == EngineCollapsingMergeTree || e == EngineVersionedCollapsingMergeTree
}

// HasVersionColumn mirrors SQLTable::HasVersionColumn.
func (e Engine) HasVersionColumn() bool {
	return e == EngineVersionedCollapsingMergeTree
}

// IsNotTruncableEngine mirrors SQLBase::IsNotTruncableEngine: these
// engines don't support TRUNCATE, so the Dump/Reload oracle must exclude
// tables using them from its candidate pool.
func (e Engine) IsNotTruncableEngine() bool {
	switch e {
	case EngineNull, EngineSet, EngineMySQL, EnginePostgreSQL, EngineSQLite,
		EngineRedis, EngineMongoDB, EngineS3, EngineS3Queue, EngineHudi,
		EngineDeltaLake, EngineIceberg:
		return true
	}
	return false
}

// Column is one column of a staged or committed table.
type Column struct {
	Name     string
	Type     sqltype.Type
	Special  ColumnSpecial
	Nullable *bool
}

// CanBeInserted mirrors SQLColumn::CanBeInserted: a column with a
// materialized/alias default modifier cannot receive an explicit INSERT
// value. This catalog does not yet model default modifiers beyond the
// ordinary case, so it always returns true; the field exists so
// internal/statement has a single call site to extend later.
func (c Column) CanBeInserted() bool { return true }

// Index is a secondary index staged or committed on a table.
type Index struct {
	Name string
}

// Projection is a table projection staged or committed on a table.
type Projection struct {
	Name string
}

// Constraint is a CHECK/ASSUME boolean constraint staged or committed on a
// table.
type Constraint struct {
	Name    string
	IsCheck bool // false means ASSUME
}

// Table is one staged-or-committed table, keyed by an internal numeric id
// the way sql_catalog.h keys SQLTable.cols by a uint32 cname rather than
// by name directly (renames and drops don't need to touch every caller's
// stored name).
type Table struct {
	ID       uint32
	Name     string
	Database *Database
	IsTemp   bool
	Attached DetachStatus
	Engine   Engine

	columnCounter     uint32
	indexCounter      uint32
	projectionCounter uint32
	constraintCounter uint32

	Columns           map[uint32]Column
	StagedColumns     map[uint32]Column
	Indexes           map[uint32]Index
	StagedIndexes     map[uint32]Index
	Projections       map[uint32]Projection
	StagedProjections map[uint32]Projection
	Constraints       map[uint32]Constraint
	StagedConstraints map[uint32]Constraint
}

// RealNumberOfColumns expands Nested-typed columns into their subtype
// count, mirroring SQLTable::RealNumberOfColumns.
func (t *Table) RealNumberOfColumns() int {
	n := 0
	for _, c := range t.Columns {
		if nested, ok := sqltype.Unwrap(c.Type).(sqltype.NestedType); ok {
			n += nested.RealWidth()
		} else {
			n++
		}
	}
	return n
}

// StageColumn adds a new column to the staged set and returns its id.
func (t *Table) StageColumn(name string, typ sqltype.Type) uint32 {
	t.columnCounter++
	id := t.columnCounter
	if t.StagedColumns == nil {
		t.StagedColumns = map[uint32]Column{}
	}
	t.StagedColumns[id] = Column{Name: name, Type: typ}
	return id
}

// StageSpecialColumn adds a new column marked with a ColumnSpecial role
// (sign/is-deleted/version) to the staged set and returns its id.
func (t *Table) StageSpecialColumn(name string, typ sqltype.Type, special ColumnSpecial) uint32 {
	t.columnCounter++
	id := t.columnCounter
	if t.StagedColumns == nil {
		t.StagedColumns = map[uint32]Column{}
	}
	t.StagedColumns[id] = Column{Name: name, Type: typ, Special: special}
	return id
}

// DropColumn removes a committed column in place, the ALTER TABLE DROP
// COLUMN acceptance path.
func (t *Table) DropColumn(id uint32) {
	delete(t.Columns, id)
}

// RenameColumn renames a committed column in place, the ALTER TABLE RENAME
// COLUMN acceptance path.
func (t *Table) RenameColumn(id uint32, newName string) {
	if c, ok := t.Columns[id]; ok {
		c.Name = newName
		t.Columns[id] = c
	}
}

// StageIndex adds a new index to the staged set and returns its id.
func (t *Table) StageIndex(name string) uint32 {
	t.indexCounter++
	id := t.indexCounter
	if t.StagedIndexes == nil {
		t.StagedIndexes = map[uint32]Index{}
	}
	t.StagedIndexes[id] = Index{Name: name}
	return id
}

// StageProjection adds a new projection to the staged set and returns its id.
func (t *Table) StageProjection(name string) uint32 {
	t.projectionCounter++
	id := t.projectionCounter
	if t.StagedProjections == nil {
		t.StagedProjections = map[uint32]Projection{}
	}
	t.StagedProjections[id] = Projection{Name: name}
	return id
}

// StageConstraint adds a new constraint to the staged set and returns its id.
func (t *Table) StageConstraint(name string, isCheck bool) uint32 {
	t.constraintCounter++
	id := t.constraintCounter
	if t.StagedConstraints == nil {
		t.StagedConstraints = map[uint32]Constraint{}
	}
	t.StagedConstraints[id] = Constraint{Name: name, IsCheck: isCheck}
	return id
}

// DropProjection removes a committed projection in place.
func (t *Table) DropProjection(id uint32) {
	delete(t.Projections, id)
}

// DropConstraint removes a committed constraint in place.
func (t *Table) DropConstraint(id uint32) {
	delete(t.Constraints, id)
}

// DropIndex removes a committed index in place.
func (t *Table) DropIndex(id uint32) {
	delete(t.Indexes, id)
}

// SortedColumnIDs returns committed column ids in ascending order so
// iteration-dependent random choices stay deterministic (I7).
func (t *Table) SortedColumnIDs() []uint32 {
	return sortedKeys(t.Columns)
}

// View is one staged-or-committed view.
type View struct {
	ID            uint32
	Name          string
	Database      *Database
	Attached      DetachStatus
	IsMaterialized bool
	NumCols       int
	StagedNumCols int
}

// StageNumCols stages a pending column-count change for an already
// committed view, the ALTER TABLE ... MODIFY QUERY acceptance path.
func (v *View) StageNumCols(n int) { v.StagedNumCols = n }

// CommitNumCols promotes a staged column-count change onto NumCols.
func (v *View) CommitNumCols() { v.NumCols = v.StagedNumCols }

// Function is one staged-or-committed user-defined function.
type Function struct {
	ID            uint32
	Name          string
	IsDeterministic bool
	NumArgs       int
}

// Database is the top-level catalog container. Like Table, it keeps
// staged and committed maps of its children so a rejected CREATE leaves
// the committed state untouched.
type Database struct {
	ID       uint32
	Name     string
	Attached DetachStatus

	tableCounter    uint32
	viewCounter     uint32
	functionCounter uint32

	Tables          map[uint32]*Table
	StagedTables    map[uint32]*Table
	Views           map[uint32]*View
	StagedViews     map[uint32]*View
	Functions       map[uint32]*Function
	StagedFunctions map[uint32]*Function
}

// Catalog is the full server-side state the generator tracks: one or more
// databases, each with staged and committed children.
type Catalog struct {
	databaseCounter uint32
	Databases       map[uint32]*Database
	StagedDatabases map[uint32]*Database
}

// New returns an empty Catalog.
func New() *Catalog {
	return &Catalog{
		Databases:       map[uint32]*Database{},
		StagedDatabases: map[uint32]*Database{},
	}
}

// StageDatabase creates a new staged database and returns it.
func (c *Catalog) StageDatabase(name string) *Database {
	c.databaseCounter++
	db := &Database{
		ID:              c.databaseCounter,
		Name:            name,
		Tables:          map[uint32]*Table{},
		StagedTables:    map[uint32]*Table{},
		Views:           map[uint32]*View{},
		StagedViews:     map[uint32]*View{},
		Functions:       map[uint32]*Function{},
		StagedFunctions: map[uint32]*Function{},
	}
	c.StagedDatabases[db.ID] = db
	return db
}

// CommitDatabase promotes a staged database to committed, called after the
// server accepts the corresponding CREATE DATABASE (C9).
func (c *Catalog) CommitDatabase(id uint32) {
	if db, ok := c.StagedDatabases[id]; ok {
		c.Databases[id] = db
		delete(c.StagedDatabases, id)
	}
}

// DiscardStagedDatabase drops a staged database after server rejection.
func (c *Catalog) DiscardStagedDatabase(id uint32) {
	delete(c.StagedDatabases, id)
}

// DropDatabase removes a committed database entirely, cascading to every
// table and view it contains (DROP DATABASE acceptance).
func (c *Catalog) DropDatabase(id uint32) {
	delete(c.Databases, id)
}

// StageView creates a new staged view inside db.
func (db *Database) StageView(name string, materialized bool, ncols int) *View {
	db.viewCounter++
	v := &View{ID: db.viewCounter, Name: name, Database: db, IsMaterialized: materialized, StagedNumCols: ncols}
	db.StagedViews[v.ID] = v
	return v
}

// CommitView promotes a staged view to committed.
func (db *Database) CommitView(id uint32) {
	v, ok := db.StagedViews[id]
	if !ok {
		return
	}
	v.NumCols = v.StagedNumCols
	db.Views[id] = v
	delete(db.StagedViews, id)
}

// DiscardStagedView drops a staged view after server rejection.
func (db *Database) DiscardStagedView(id uint32) {
	delete(db.StagedViews, id)
}

// DropView removes a committed view entirely (DROP VIEW acceptance).
func (db *Database) DropView(id uint32) {
	delete(db.Views, id)
}

// StageFunction creates a new staged function inside db.
func (db *Database) StageFunction(name string, numArgs int, deterministic bool) *Function {
	db.functionCounter++
	f := &Function{ID: db.functionCounter, Name: name, NumArgs: numArgs, IsDeterministic: deterministic}
	db.StagedFunctions[f.ID] = f
	return f
}

// CommitFunction promotes a staged function to committed.
func (db *Database) CommitFunction(id uint32) {
	if f, ok := db.StagedFunctions[id]; ok {
		db.Functions[id] = f
		delete(db.StagedFunctions, id)
	}
}

// DiscardStagedFunction drops a staged function after server rejection.
func (db *Database) DiscardStagedFunction(id uint32) {
	delete(db.StagedFunctions, id)
}

// StageTable creates a new staged table inside db.
func (db *Database) StageTable(name string, engine Engine) *Table {
	db.tableCounter++
	t := &Table{
		ID:                db.tableCounter,
		Name:              name,
		Database:          db,
		Engine:            engine,
		Columns:           map[uint32]Column{},
		StagedColumns:     map[uint32]Column{},
		Indexes:           map[uint32]Index{},
		StagedIndexes:     map[uint32]Index{},
		Projections:       map[uint32]Projection{},
		StagedProjections: map[uint32]Projection{},
		Constraints:       map[uint32]Constraint{},
		StagedConstraints: map[uint32]Constraint{},
	}
	db.StagedTables[t.ID] = t
	return t
}

// CommitTable promotes a staged table (and any staged columns/indexes on
// it) to committed.
func (db *Database) CommitTable(id uint32) {
	t, ok := db.StagedTables[id]
	if !ok {
		return
	}
	for cid, col := range t.StagedColumns {
		t.Columns[cid] = col
	}
	t.StagedColumns = map[uint32]Column{}
	for iid, idx := range t.StagedIndexes {
		t.Indexes[iid] = idx
	}
	t.StagedIndexes = map[uint32]Index{}
	for pid, proj := range t.StagedProjections {
		t.Projections[pid] = proj
	}
	t.StagedProjections = map[uint32]Projection{}
	for kid, con := range t.StagedConstraints {
		t.Constraints[kid] = con
	}
	t.StagedConstraints = map[uint32]Constraint{}
	db.Tables[id] = t
	delete(db.StagedTables, id)
}

// CommitStagedProjections promotes an already-committed table's staged
// projections, the ALTER TABLE ADD PROJECTION acceptance path.
func (t *Table) CommitStagedProjections() {
	for id, p := range t.StagedProjections {
		t.Projections[id] = p
	}
	t.StagedProjections = map[uint32]Projection{}
}

// DiscardStagedProjections drops staged projections after a rejected ALTER.
func (t *Table) DiscardStagedProjections() {
	t.StagedProjections = map[uint32]Projection{}
}

// CommitStagedConstraints promotes an already-committed table's staged
// constraints, the ALTER TABLE ADD CONSTRAINT acceptance path.
func (t *Table) CommitStagedConstraints() {
	for id, c := range t.StagedConstraints {
		t.Constraints[id] = c
	}
	t.StagedConstraints = map[uint32]Constraint{}
}

// DiscardStagedConstraints drops staged constraints after a rejected ALTER.
func (t *Table) DiscardStagedConstraints() {
	t.StagedConstraints = map[uint32]Constraint{}
}

// CommitStagedColumns promotes an already-committed table's staged
// columns, the ALTER TABLE ADD COLUMN acceptance path.
func (t *Table) CommitStagedColumns() {
	for id, col := range t.StagedColumns {
		t.Columns[id] = col
	}
	t.StagedColumns = map[uint32]Column{}
}

// DiscardStagedColumns drops staged columns after a rejected ALTER.
func (t *Table) DiscardStagedColumns() {
	t.StagedColumns = map[uint32]Column{}
}

// CommitStagedIndexes promotes an already-committed table's staged
// indexes, the ALTER TABLE ADD INDEX acceptance path.
func (t *Table) CommitStagedIndexes() {
	for id, idx := range t.StagedIndexes {
		t.Indexes[id] = idx
	}
	t.StagedIndexes = map[uint32]Index{}
}

// DiscardStagedIndexes drops staged indexes after a rejected ALTER.
func (t *Table) DiscardStagedIndexes() {
	t.StagedIndexes = map[uint32]Index{}
}

// DiscardStagedTable drops a staged table after server rejection.
func (db *Database) DiscardStagedTable(id uint32) {
	delete(db.StagedTables, id)
}

// DropTable removes a committed table entirely (DROP TABLE acceptance).
func (db *Database) DropTable(id uint32) {
	delete(db.Tables, id)
}

// ExchangeTables swaps two committed tables' names in place (I6: applying it
// twice is the identity transform). Each Table keeps its own ID and map
// slot; only the name a query refers to it by changes, so pointers callers
// already hold (the generator's *catalog.Table references) stay valid.
func (db *Database) ExchangeTables(aID, bID uint32) {
	a, aOK := db.Tables[aID]
	b, bOK := db.Tables[bID]
	if !aOK || !bOK {
		return
	}
	a.Name, b.Name = b.Name, a.Name
}

// Filter collections, mirroring the original's attached_tables /
// detached_tables / attached_tables_for_oracle lambdas.

// AttachedTables returns committed tables in db with Attached status,
// sorted by id for determinism (I7).
func (db *Database) AttachedTables() []*Table {
	return filterTables(db.Tables, func(t *Table) bool { return t.Attached == Attached })
}

// DetachedTables returns committed tables in db that are Detached (not
// PermanentlyDetached), sorted by id.
func (db *Database) DetachedTables() []*Table {
	return filterTables(db.Tables, func(t *Table) bool { return t.Attached == Detached })
}

// AttachedTablesForOracle additionally excludes not-truncable engines,
// since the Dump/Reload oracle issues TRUNCATE against its candidate.
func (db *Database) AttachedTablesForOracle() []*Table {
	return filterTables(db.Tables, func(t *Table) bool {
		return t.Attached == Attached && !t.Engine.IsNotTruncableEngine()
	})
}

func filterTables(m map[uint32]*Table, pred func(*Table) bool) []*Table {
	ids := sortedKeys(m)
	var out []*Table
	for _, id := range ids {
		if t := m[id]; pred(t) {
			out = append(out, t)
		}
	}
	return out
}

// AttachedViews returns committed views in db with Attached status, sorted
// by id for determinism (I7).
func (db *Database) AttachedViews() []*View {
	return filterViews(db.Views, func(v *View) bool { return v.Attached == Attached })
}

// DetachedViews returns committed views in db that are Detached (not
// PermanentlyDetached), sorted by id.
func (db *Database) DetachedViews() []*View {
	return filterViews(db.Views, func(v *View) bool { return v.Attached == Detached })
}

func filterViews(m map[uint32]*View, pred func(*View) bool) []*View {
	ids := sortedKeys(m)
	var out []*View
	for _, id := range ids {
		if v := m[id]; pred(v) {
			out = append(out, v)
		}
	}
	return out
}

// sortedKeys snapshots a map's keys into ascending order. Every
// collection walk that feeds a random choice must go through this (or an
// equivalent sort) rather than ranging the map directly, because Go
// deliberately randomizes map iteration order (I7).
func sortedKeys[V any](m map[uint32]V) []uint32 {
	keys := make([]uint32, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// QualifiedName renders db.table the way generated DDL references it.
func (t *Table) QualifiedName() string {
	return fmt.Sprintf("%s.%s", t.Database.Name, t.Name)
}

// QualifiedName renders db.view the way generated DDL references it.
func (v *View) QualifiedName() string {
	return fmt.Sprintf("%s.%s", v.Database.Name, v.Name)
}
