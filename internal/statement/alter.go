package statement

import (
	"fmt"
	"strings"

	"fuzzql/internal/catalog"
	"fuzzql/internal/randgen"
)

type alterAction int

const (
	alterAddColumn alterAction = iota
	alterDropColumn
	alterRenameColumn
	alterHeavyDelete
	alterHeavyUpdate
	alterModifySetting
	alterAddIndex
	alterDropIndex
	alterMaterializeIndex
	alterClearIndex
	alterAddProjection
	alterDropProjection
	alterMaterializeProjection
	alterClearProjection
	alterAddConstraint
	alterDropConstraint
	alterResetOrderBy
)

// generateAlterTable builds one to four alter items against a randomly
// picked attached table or view, drawing each item's action from the
// weighted space spec.md §4.6 describes. Renames keep the column's id and
// are applied in place only once the update pipeline sees the statement
// accepted.
func (g *Generator) generateAlterTable() Statement {
	tables := g.allAttachedTables()
	views := g.allAttachedViews()
	if len(tables) == 0 || (len(views) > 0 && g.rng.Bool(0.15)) {
		return g.generateAlterView(views)
	}
	t := randgen.Pick(g.rng, tables)
	n := g.rng.IntRange(1, 4)

	items := make([]string, 0, n)
	var stagedCols []uint32
	var droppedCols []uint32
	var renamedCols []ColumnRename
	var stagedIdx, droppedIdx []uint32
	var stagedProj, droppedProj []uint32
	var stagedCon, droppedCon []uint32

	for i := 0; i < n; i++ {
		action := randgen.WeightedPick(g.rng, []randgen.WeightedItem[alterAction]{
			{Value: alterAddColumn, Weight: 20},
			{Value: alterDropColumn, Weight: weightIf(len(t.Columns) > 0, 10)},
			{Value: alterRenameColumn, Weight: weightIf(len(t.Columns) > 0, 8)},
			{Value: alterHeavyDelete, Weight: 8},
			{Value: alterHeavyUpdate, Weight: weightIf(len(t.Columns) > 0, 8)},
			{Value: alterModifySetting, Weight: 8},
			{Value: alterAddIndex, Weight: weightIf(len(t.Columns) > 0, 6)},
			{Value: alterDropIndex, Weight: weightIf(len(t.Indexes) > 0, 4)},
			{Value: alterMaterializeIndex, Weight: weightIf(len(t.Indexes) > 0, 2)},
			{Value: alterClearIndex, Weight: weightIf(len(t.Indexes) > 0, 2)},
			{Value: alterAddProjection, Weight: weightIf(len(t.Columns) > 0, 6)},
			{Value: alterDropProjection, Weight: weightIf(len(t.Projections) > 0, 4)},
			{Value: alterMaterializeProjection, Weight: weightIf(len(t.Projections) > 0, 2)},
			{Value: alterClearProjection, Weight: weightIf(len(t.Projections) > 0, 2)},
			{Value: alterAddConstraint, Weight: weightIf(len(t.Columns) > 0, 6)},
			{Value: alterDropConstraint, Weight: weightIf(len(t.Constraints) > 0, 4)},
			{Value: alterResetOrderBy, Weight: weightIf(t.Engine.IsMergeTreeFamily(), 2)},
		})

		switch action {
		case alterAddColumn:
			name := g.ids.nextColumn()
			typ := g.types.RandomNextType(0)
			id := t.StageColumn(name, typ)
			stagedCols = append(stagedCols, id)
			items = append(items, fmt.Sprintf("ADD COLUMN %s %s", name, typ.String()))
		case alterDropColumn:
			id, col := g.pickExistingColumn(t)
			droppedCols = append(droppedCols, id)
			items = append(items, fmt.Sprintf("DROP COLUMN %s", col.Name))
		case alterRenameColumn:
			id, col := g.pickExistingColumn(t)
			newName := g.ids.nextColumn()
			renamedCols = append(renamedCols, ColumnRename{ID: id, NewName: newName})
			items = append(items, fmt.Sprintf("RENAME COLUMN %s TO %s", col.Name, newName))
		case alterHeavyDelete:
			level := g.pushSingleTableLevel(t)
			items = append(items, fmt.Sprintf("DELETE WHERE %s", g.predicateExpr(level)))
			g.scope.Pop()
		case alterHeavyUpdate:
			level := g.pushSingleTableLevel(t)
			_, col := g.pickExistingColumn(t)
			lit := g.values.Literal(col.Type, true)
			items = append(items, fmt.Sprintf("UPDATE %s = %s WHERE %s", col.Name, lit, g.predicateExpr(level)))
			g.scope.Pop()
		case alterModifySetting:
			items = append(items, "MODIFY SETTING allow_nullable_key = 1")
		case alterAddIndex:
			iname := g.ids.nextIndex()
			col := randgen.Pick(g.rng, committedColumnNames(t))
			idxType := randgen.Pick(g.rng, indexTypes)
			id := t.StageIndex(iname)
			stagedIdx = append(stagedIdx, id)
			items = append(items, fmt.Sprintf("ADD INDEX %s %s TYPE %s GRANULARITY 4", iname, col, idxType))
		case alterDropIndex:
			id, name := g.pickExistingIndex(t)
			droppedIdx = append(droppedIdx, id)
			items = append(items, fmt.Sprintf("DROP INDEX %s", name))
		case alterMaterializeIndex:
			_, name := g.pickExistingIndex(t)
			items = append(items, fmt.Sprintf("MATERIALIZE INDEX %s", name))
		case alterClearIndex:
			_, name := g.pickExistingIndex(t)
			items = append(items, fmt.Sprintf("CLEAR INDEX %s", name))
		case alterAddProjection:
			pname := g.ids.nextProjection()
			col := randgen.Pick(g.rng, committedColumnNames(t))
			id := t.StageProjection(pname)
			stagedProj = append(stagedProj, id)
			items = append(items, fmt.Sprintf("ADD PROJECTION %s (SELECT %s ORDER BY %s)", pname, col, col))
		case alterDropProjection:
			id, name := g.pickExistingProjection(t)
			droppedProj = append(droppedProj, id)
			items = append(items, fmt.Sprintf("DROP PROJECTION %s", name))
		case alterMaterializeProjection:
			_, name := g.pickExistingProjection(t)
			items = append(items, fmt.Sprintf("MATERIALIZE PROJECTION %s", name))
		case alterClearProjection:
			_, name := g.pickExistingProjection(t)
			items = append(items, fmt.Sprintf("CLEAR PROJECTION %s", name))
		case alterAddConstraint:
			kname := g.ids.nextConstraint()
			col := randgen.Pick(g.rng, committedColumnNames(t))
			isCheck := g.rng.Bool(0.7)
			id := t.StageConstraint(kname, isCheck)
			stagedCon = append(stagedCon, id)
			kind := "CHECK"
			if !isCheck {
				kind = "ASSUME"
			}
			items = append(items, fmt.Sprintf("ADD CONSTRAINT %s %s (isNotNull(%s) OR isNull(%s))", kname, kind, col, col))
		case alterDropConstraint:
			id, name := g.pickExistingConstraint(t)
			droppedCon = append(droppedCon, id)
			items = append(items, fmt.Sprintf("DROP CONSTRAINT %s", name))
		case alterResetOrderBy:
			items = append(items, "RESET SETTING index_granularity")
		}
	}

	sql := fmt.Sprintf("ALTER TABLE %s %s", t.QualifiedName(), strings.Join(items, ", "))
	return Statement{
		Kind:                 KindAlterTable,
		SQL:                  sql,
		Table:                t,
		StagedColumns:        stagedCols,
		DroppedColumnIDs:     droppedCols,
		RenamedColumns:       renamedCols,
		StagedIndexes:        stagedIdx,
		DroppedIndexIDs:      droppedIdx,
		StagedProjections:    stagedProj,
		DroppedProjectionIDs: droppedProj,
		StagedConstraints:    stagedCon,
		DroppedConstraintIDs: droppedCon,
	}
}

// generateAlterView builds a view-only ALTER: either REFRESH (materialized
// views only) or MODIFY QUERY, the latter gated to a replacement SELECT
// with the same declared column count, per spec.md §4.6.
func (g *Generator) generateAlterView(views []*catalog.View) Statement {
	v := randgen.Pick(g.rng, views)
	if v.IsMaterialized && g.rng.Bool(0.5) {
		sql := fmt.Sprintf("ALTER TABLE %s MODIFY REFRESH EVERY 1 HOUR", v.QualifiedName())
		return Statement{Kind: KindAlterTable, SQL: sql, View: v}
	}
	body := g.GenerateSelect(false, v.NumCols, AllClauses&^AllowSet)
	sql := fmt.Sprintf("ALTER TABLE %s MODIFY QUERY %s", v.QualifiedName(), body.SQL)
	ncols := v.NumCols
	return Statement{Kind: KindAlterTable, SQL: sql, View: v, ViewNCols: &ncols}
}

// pickExistingColumn returns a random committed column's id alongside its
// value, so callers can reflect DROP/RENAME onto the catalog mirror once
// the statement is accepted.
func (g *Generator) pickExistingColumn(t *catalog.Table) (uint32, catalog.Column) {
	ids := t.SortedColumnIDs()
	id := randgen.Pick(g.rng, ids)
	return id, t.Columns[id]
}

func committedColumnNames(t *catalog.Table) []string {
	var out []string
	for _, id := range t.SortedColumnIDs() {
		out = append(out, t.Columns[id].Name)
	}
	return out
}

func (g *Generator) pickExistingIndex(t *catalog.Table) (uint32, string) {
	id := randgen.Pick(g.rng, sortedIndexKeys(t.Indexes))
	return id, t.Indexes[id].Name
}

func (g *Generator) pickExistingProjection(t *catalog.Table) (uint32, string) {
	id := randgen.Pick(g.rng, sortedProjectionKeys(t.Projections))
	return id, t.Projections[id].Name
}

func (g *Generator) pickExistingConstraint(t *catalog.Table) (uint32, string) {
	id := randgen.Pick(g.rng, sortedConstraintKeys(t.Constraints))
	return id, t.Constraints[id].Name
}

func sortedIndexKeys(m map[uint32]catalog.Index) []uint32 {
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

func sortedProjectionKeys(m map[uint32]catalog.Projection) []uint32 {
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

func sortedConstraintKeys(m map[uint32]catalog.Constraint) []uint32 {
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
