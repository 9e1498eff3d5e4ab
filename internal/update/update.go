// Package update is the update pipeline (C9): it applies a server's
// accept/reject verdict for one generated statement back onto the catalog,
// matching the staged/committed promotion-or-discard rule every DDL path in
// sql_catalog.h follows (I3: a rejected statement must leave committed state
// untouched). It never inspects the statement's rendered SQL, only the
// catalog pointers internal/statement.Statement already carries.
package update

import (
	"fuzzql/internal/catalog"
	"fuzzql/internal/statement"
)

// Apply promotes or discards whatever the statement staged, depending on
// whether the server accepted it. Statements with nothing staged (SELECT,
// INSERT, TRUNCATE, OPTIMIZE, CHECK, DESC, SET) are no-ops either way.
func Apply(cat *catalog.Catalog, stmt statement.Statement, accepted bool) {
	switch stmt.Kind {
	case statement.KindCreateDatabase:
		applyCreateDatabase(cat, stmt, accepted)
	case statement.KindCreateTable:
		applyCreateTable(stmt, accepted)
	case statement.KindCreateView:
		applyCreateView(stmt, accepted)
	case statement.KindAlterTable:
		applyAlterTable(stmt, accepted)
	case statement.KindDrop:
		applyDrop(cat, stmt, accepted)
	case statement.KindAttach:
		applyAttach(stmt, accepted)
	case statement.KindDetach:
		applyDetach(stmt, accepted)
	case statement.KindExchange:
		applyExchange(stmt, accepted)
	}
}

func applyCreateDatabase(cat *catalog.Catalog, stmt statement.Statement, accepted bool) {
	if stmt.StagedDatabase == nil {
		return
	}
	if accepted {
		cat.CommitDatabase(stmt.StagedDatabase.ID)
	} else {
		cat.DiscardStagedDatabase(stmt.StagedDatabase.ID)
	}
}

// applyCreateTable commits the staged table (and, with it, every column
// staged alongside it — see catalog.Database.CommitTable). A REPLACE drops
// the table it evicted only once the replacement is itself accepted, so a
// rejected CREATE OR REPLACE leaves the original table fully intact.
func applyCreateTable(stmt statement.Statement, accepted bool) {
	if stmt.StagedTable == nil || stmt.Database == nil {
		return
	}
	if accepted {
		if stmt.IsReplace {
			stmt.Database.DropTable(stmt.ReplacedTableID)
		}
		stmt.Database.CommitTable(stmt.StagedTable.ID)
	} else {
		stmt.Database.DiscardStagedTable(stmt.StagedTable.ID)
	}
}

func applyCreateView(stmt statement.Statement, accepted bool) {
	if stmt.View == nil || stmt.Database == nil {
		return
	}
	if accepted {
		stmt.Database.CommitView(stmt.View.ID)
	} else {
		stmt.Database.DiscardStagedView(stmt.View.ID)
	}
}

// applyAlterTable promotes or discards whichever columns/indexes/
// projections/constraints this ALTER staged, and reflects any DROP/RENAME
// in place (spec.md §4.6 C9's contract: "apply rename-in-place; remove on
// drop"). A heavy DELETE/UPDATE or MODIFY SETTING item stages nothing, so
// they are no-ops here regardless of verdict — their effect (if accepted)
// is already final the moment the server ran them. A view-targeting ALTER
// (MODIFY QUERY) instead promotes its staged column count onto the view.
func applyAlterTable(stmt statement.Statement, accepted bool) {
	if stmt.View != nil {
		if accepted && stmt.ViewNCols != nil {
			stmt.View.StageNumCols(*stmt.ViewNCols)
			stmt.View.CommitNumCols()
		}
		return
	}
	if stmt.Table == nil {
		return
	}
	t := stmt.Table

	if accepted {
		t.CommitStagedColumns()
		t.CommitStagedIndexes()
		t.CommitStagedProjections()
		t.CommitStagedConstraints()
		for _, id := range stmt.DroppedColumnIDs {
			t.DropColumn(id)
		}
		for _, r := range stmt.RenamedColumns {
			t.RenameColumn(r.ID, r.NewName)
		}
		for _, id := range stmt.DroppedIndexIDs {
			t.DropIndex(id)
		}
		for _, id := range stmt.DroppedProjectionIDs {
			t.DropProjection(id)
		}
		for _, id := range stmt.DroppedConstraintIDs {
			t.DropConstraint(id)
		}
	} else {
		t.DiscardStagedColumns()
		t.DiscardStagedIndexes()
		t.DiscardStagedProjections()
		t.DiscardStagedConstraints()
	}
}

// applyDrop removes the dropped object from committed state only once the
// server confirms it; a rejected DROP leaves the catalog untouched.
func applyDrop(cat *catalog.Catalog, stmt statement.Statement, accepted bool) {
	if !accepted {
		return
	}
	switch {
	case stmt.Table != nil && stmt.Database != nil:
		stmt.Database.DropTable(stmt.Table.ID)
	case stmt.Table != nil:
		stmt.Table.Database.DropTable(stmt.Table.ID)
	case stmt.View != nil:
		stmt.View.Database.DropView(stmt.View.ID)
	case stmt.Database != nil:
		cat.DropDatabase(stmt.Database.ID)
	}
}

func applyAttach(stmt statement.Statement, accepted bool) {
	if !accepted {
		return
	}
	switch {
	case stmt.Table != nil:
		stmt.Table.Attached = catalog.Attached
	case stmt.View != nil:
		stmt.View.Attached = catalog.Attached
	}
}

func applyDetach(stmt statement.Statement, accepted bool) {
	if !accepted {
		return
	}
	switch {
	case stmt.Table != nil:
		stmt.Table.Attached = catalog.Detached
	case stmt.View != nil:
		stmt.View.Attached = catalog.Detached
	}
}

func applyExchange(stmt statement.Statement, accepted bool) {
	if stmt.Table == nil || stmt.SecondTable == nil || stmt.Database == nil || !accepted {
		return
	}
	stmt.Database.ExchangeTables(stmt.Table.ID, stmt.SecondTable.ID)
}
