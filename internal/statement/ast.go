// Package statement is the statement generator (C6): it composes DDL,
// DML, and SELECT statements honoring catalog and scope invariants, and
// renders them to SQL text. Grounded on statement_generator.h's
// QueryLevel/bitmask scope stack and its weighted GenerateNextStatement
// dispatch table, with rendering style borrowed from internal/dialect/mysql.
package statement

import "fuzzql/internal/catalog"

// Kind tags which concrete Statement a value holds, mirroring the
// core-to-printer tagged union spec.md §6 describes.
type Kind int

const (
	KindSelect Kind = iota
	KindInsert
	KindCreateDatabase
	KindCreateTable
	KindCreateView
	KindDrop
	KindTruncate
	KindOptimize
	KindCheck
	KindDesc
	KindAlterTable
	KindExchange
	KindAttach
	KindDetach
	KindSet
	KindExplain
)

// Statement is the abstract tagged-union node the generator hands to the
// renderer. Which typed fields are populated depends on Kind, and several
// may be set together (CREATE TABLE sets Database and StagedTable; EXCHANGE
// sets Table, SecondTable and Database).
type Statement struct {
	Kind Kind
	SQL  string // rendered text; String adds the EXPLAIN prefix when Explained

	// The catalog pointers below let the update
	// pipeline (C9) know which catalog object this statement concerns
	// without re-parsing the rendered SQL.
	Database       *catalog.Database
	StagedDatabase *catalog.Database
	Table          *catalog.Table
	StagedTable    *catalog.Table
	SecondTable    *catalog.Table // EXCHANGE's second operand
	View           *catalog.View
	StagedColumns  []uint32 // ids newly staged on Table by this statement
	IsReplace       bool
	ReplacedTableID uint32 // CREATE OR REPLACE's evicted table id, valid when IsReplace
	Explained       bool

	// ALTER TABLE bookkeeping (C9): ids this statement asks the catalog
	// mirror to drop/rename/stage in place once the server's verdict is
	// known. Exactly the items relevant to the issued ALTER are populated.
	DroppedColumnIDs     []uint32
	RenamedColumns       []ColumnRename
	StagedIndexes        []uint32
	DroppedIndexIDs      []uint32
	StagedProjections    []uint32
	DroppedProjectionIDs []uint32
	StagedConstraints    []uint32
	DroppedConstraintIDs []uint32
	ViewNCols            *int // ALTER ... MODIFY QUERY's new output width, staged on View
}

// ColumnRename pairs a column id with the new name an ALTER TABLE RENAME
// COLUMN item requests for it.
type ColumnRename struct {
	ID      uint32
	NewName string
}

// String renders the statement, wrapping it in EXPLAIN when requested.
func (s Statement) String() string {
	if s.Explained {
		return "EXPLAIN " + s.SQL
	}
	return s.SQL
}
