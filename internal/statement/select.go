package statement

import (
	"fmt"
	"strings"

	"fuzzql/internal/catalog"
	"fuzzql/internal/randgen"
	"fuzzql/internal/sqltype"
)

// GenerateSelect builds one SELECT, recursing through a pushed scope
// level per spec.md §4.6: FROM tree, optional WHERE, optional GROUP
// BY/HAVING, optional ORDER BY/LIMIT, and set-op combination at the top
// level when allowed. ncols bounds how many columns the projection
// contains (callers building a view body pass the view's declared ncols).
func (g *Generator) GenerateSelect(top bool, ncols int, allowed Clause) Statement {
	level := g.scope.Push(true, top)
	defer g.scope.Pop()

	var withSQL string
	if allowed&AllowCTE != 0 && len(g.allAttachedTables()) >= 1 && g.rng.Bool(0.15) {
		withSQL = g.generateCTE(level)
	}

	fromSQL, fromTable := g.generateFrom(level, allowed&AllowFrom != 0)

	var b strings.Builder
	b.WriteString(withSQL)
	b.WriteString("SELECT ")
	if allowed&AllowDistinct != 0 && g.rng.Bool(0.1) {
		b.WriteString("DISTINCT ")
	}

	exprs := make([]string, 0, ncols)
	for i := 0; i < ncols; i++ {
		exprs = append(exprs, g.generalExpr(level))
	}
	b.WriteString(strings.Join(exprs, ", "))

	if fromSQL != "" {
		fmt.Fprintf(&b, " FROM %s", fromSQL)
	}

	if allowed&AllowWhere != 0 && len(level.Relations) > 0 && g.rng.Bool(0.5) {
		// I5: while generating a WHERE predicate, aggregates/window
		// functions are disallowed at this level.
		saved := level.AllowAggregates
		level.AllowAggregates = false
		fmt.Fprintf(&b, " WHERE %s", g.predicateExpr(level))
		level.AllowAggregates = saved
	}

	if allowed&AllowGroupBy != 0 && len(level.Relations) > 0 && g.rng.Bool(0.25) {
		g.writeGroupBy(&b, level)
	}

	if allowed&AllowOrderBy != 0 && g.rng.Bool(0.3) {
		fmt.Fprintf(&b, " ORDER BY %d", g.rng.IntRange(1, ncols))
	}

	if allowed&AllowLimit != 0 && g.rng.Bool(0.2) {
		fmt.Fprintf(&b, " LIMIT %d", g.rng.IntRange(1, 100))
	}

	if top && allowed&AllowSet != 0 && g.rng.Bool(0.08) {
		g.writeSetOp(&b, ncols)
	}

	return Statement{Kind: KindSelect, SQL: b.String(), Table: fromTable}
}

func (g *Generator) writeGroupBy(b *strings.Builder, level *Level) {
	if level.GroupByAll = g.rng.Bool(0.3); level.GroupByAll {
		b.WriteString(" GROUP BY ALL")
	} else {
		n := g.rng.IntRange(1, len(level.Relations[0].Columns))
		var cols []string
		for i := 0; i < n && i < len(level.Relations[0].Columns); i++ {
			name := level.Relations[0].Columns[i].Name
			cols = append(cols, name)
			level.GroupCols = append(level.GroupCols, GroupCol{Expr: name})
		}
		fmt.Fprintf(b, " GROUP BY %s", strings.Join(cols, ", "))
	}
	if g.rng.Bool(0.3) {
		level.AllowAggregates = true
		fmt.Fprintf(b, " HAVING %s", g.predicateExpr(level))
	}
}

var setOps = []string{"UNION ALL", "INTERSECT", "EXCEPT"}

func (g *Generator) writeSetOp(b *strings.Builder, ncols int) {
	op := randgen.Pick(g.rng, setOps)
	other := g.GenerateSelect(false, ncols, AllClauses&^AllowSet)
	fmt.Fprintf(b, " %s %s", op, other.SQL)
}

// generateCTE builds one `WITH name AS (subselect)` prefix, binding the
// name into both the Stack's CTE map (for LookupCTE-based resolution) and
// the level's own CTENames (so generateFrom can offer it as a FROM source
// without re-deriving the binding).
func (g *Generator) generateCTE(level *Level) string {
	name := "cte_" + level.NextAlias()
	ncols := g.rng.IntRange(1, 3)
	body := g.GenerateSelect(false, ncols, AllClauses&^AllowSet&^AllowCTE)

	cols := make([]RelationColumn, ncols)
	for i := range cols {
		cols[i] = RelationColumn{RelationName: name, Name: fmt.Sprintf("col%d", i), Type: sqltype.IntType{Width: sqltype.Int32}}
	}
	g.scope.BindCTE(name, cols)
	level.CTENames = append(level.CTENames, name)

	return fmt.Sprintf("WITH %s AS (%s) ", name, body.SQL)
}

// generateFrom picks the FROM-tree source, per spec.md §4.6's grammar:
// a bound CTE, a plain table, a two-table JOIN, or a derived subquery —
// plus, for a plain table carrying an Array-typed column, an optional
// ARRAY JOIN. Returns an empty string (no FROM clause, matching a constant
// SELECT) when FROM is disallowed or no source exists yet.
func (g *Generator) generateFrom(level *Level, allowFrom bool) (string, *catalog.Table) {
	if !allowFrom {
		return "", nil
	}

	if len(level.CTENames) > 0 && g.rng.Bool(0.3) {
		name := level.CTENames[0]
		if cols, ok := g.scope.LookupCTE(name); ok {
			level.Relations = append(level.Relations, Relation{Name: name, Columns: cols})
			return name, nil
		}
	}

	tables := g.allAttachedTables()
	if len(tables) == 0 {
		return "", nil
	}

	sql, t := g.generateTableFrom(level, tables)

	switch randgen.WeightedPick(g.rng, []randgen.WeightedItem[int]{
		{Value: 0, Weight: 60},                                  // plain
		{Value: 1, Weight: weightIf(len(tables) >= 2, 20)},      // JOIN
		{Value: 2, Weight: 15},                                  // derived subquery (cross-joined)
	}) {
	case 1:
		sql += g.joinClause(level, t, tables)
	case 2:
		sql += g.crossJoinSubquery(level)
	default:
		if arr := g.arrayJoinClause(level); arr != "" {
			sql += arr
		}
	}

	return sql, t
}

// generateTableFrom binds a single table as the base FROM relation.
func (g *Generator) generateTableFrom(level *Level, tables []*catalog.Table) (string, *catalog.Table) {
	t := randgen.Pick(g.rng, tables)
	alias := level.NextAlias()

	var cols []RelationColumn
	for _, id := range t.SortedColumnIDs() {
		col := t.Columns[id]
		cols = append(cols, RelationColumn{RelationName: alias, Name: col.Name, Type: col.Type})
	}
	level.Relations = append(level.Relations, Relation{Name: alias, Columns: cols})

	sql := fmt.Sprintf("%s AS %s", t.QualifiedName(), alias)
	if t.Engine.SupportsFinal() && g.rng.Bool(0.2) {
		sql += " FINAL"
	}
	return sql, t
}

// joinClause appends a second table via JOIN, binding its columns as a new
// relation. The ON condition equates two columns of matching type kind
// when one exists, falling back to a tautology otherwise.
func (g *Generator) joinClause(level *Level, first *catalog.Table, tables []*catalog.Table) string {
	second := first
	for second.ID == first.ID {
		second = randgen.Pick(g.rng, tables)
	}
	alias := level.NextAlias()

	var cols []RelationColumn
	for _, id := range second.SortedColumnIDs() {
		col := second.Columns[id]
		cols = append(cols, RelationColumn{RelationName: alias, Name: col.Name, Type: col.Type})
	}
	level.Relations = append(level.Relations, Relation{Name: alias, Columns: cols})

	firstCols := level.Relations[len(level.Relations)-2].Columns
	cond := "1 = 1"
	for _, a := range firstCols {
		for _, b := range cols {
			if a.Type.Kind() == b.Type.Kind() {
				cond = fmt.Sprintf("%s.%s = %s.%s", a.RelationName, a.Name, b.RelationName, b.Name)
				break
			}
		}
		if cond != "1 = 1" {
			break
		}
	}

	joinKind := "JOIN"
	if g.rng.Bool(0.3) {
		joinKind = "LEFT JOIN"
	}
	return fmt.Sprintf(" %s %s AS %s ON %s", joinKind, second.QualifiedName(), alias, cond)
}

// crossJoinSubquery appends a derived-table subquery as an extra,
// comma-joined FROM source. Its output columns are deliberately left
// unbound (no Relation entry) since a synthesized select list has no
// stable, predictable column names to reference from the outer query.
func (g *Generator) crossJoinSubquery(level *Level) string {
	ncols := g.rng.IntRange(1, 3)
	sub := g.GenerateSelect(false, ncols, AllClauses&^AllowSet&^AllowCTE)
	alias := level.NextAlias()
	return fmt.Sprintf(", (%s) AS %s", sub.SQL, alias)
}

// arrayJoinClause appends `ARRAY JOIN <col>` for a visible Array-typed
// column, when one exists, with small probability.
func (g *Generator) arrayJoinClause(level *Level) string {
	if !g.rng.Bool(0.15) {
		return ""
	}
	var arrayCols []RelationColumn
	for _, rel := range level.Relations {
		for _, c := range rel.Columns {
			if _, ok := sqltype.Unwrap(c.Type).(sqltype.ArrayType); ok {
				arrayCols = append(arrayCols, c)
			}
		}
	}
	if len(arrayCols) == 0 {
		return ""
	}
	c := randgen.Pick(g.rng, arrayCols)
	return fmt.Sprintf(" ARRAY JOIN %s.%s", c.RelationName, c.Name)
}
