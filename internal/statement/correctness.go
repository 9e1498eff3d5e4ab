package statement

import "fmt"

// CorrectnessShape selects which clause combination the correctness oracle
// pairs a count() query against an ifNull(sum(...), 0) query with, mirroring
// GenerateCorrectnessTestFirstQuery's three-way combination switch.
type CorrectnessShape int

const (
	// ShapeWhere: COUNT(*) ... WHERE pred  vs  ifNull(SUM(pred),0) ... (no GROUP BY).
	ShapeWhere CorrectnessShape = iota
	// ShapeGroupBy: COUNT(*) ... GROUP BY cols HAVING pred  vs  ifNull(SUM(pred),0) ... GROUP BY cols.
	ShapeGroupBy
	// ShapeBoth: COUNT(*) ... WHERE pred1 GROUP BY cols HAVING pred2  vs  ifNull(SUM(pred2),0) ... WHERE pred1 GROUP BY cols.
	ShapeBoth
)

// GenerateCorrectnessPair builds the correctness oracle's two correlated
// queries over one freshly pushed FROM, so they share the exact same rows:
// a COUNT(*) form counting how many rows satisfy a predicate, and an
// ifNull(SUM(...),0) form summing the same boolean predicate as 0/1. If the
// server computes these consistently, the two counts must be equal.
func (g *Generator) GenerateCorrectnessPair(shape CorrectnessShape) (first, second string) {
	level := g.scope.Push(false, false)
	defer g.scope.Pop()

	fromSQL, _ := g.generateFrom(level, true)
	if fromSQL == "" {
		return "SELECT count()", "SELECT ifNull(sum(0),0)"
	}

	useWhere := shape != ShapeGroupBy
	useGroupBy := shape != ShapeWhere

	var wherePred string
	if useWhere {
		wherePred = g.predicateExpr(level)
	}

	var groupCols []string
	var havingPred string
	if useGroupBy && len(level.Relations[0].Columns) > 0 {
		n := g.rng.IntRange(1, len(level.Relations[0].Columns))
		for i := 0; i < n; i++ {
			groupCols = append(groupCols, level.Relations[0].Columns[i].Name)
		}
		level.AllowAggregates = true
		havingPred = g.predicateExpr(level)
		level.AllowAggregates = false
	}

	pred := wherePred
	if useGroupBy {
		pred = havingPred
	}

	first = fmt.Sprintf("SELECT count() FROM %s", fromSQL)
	second = fmt.Sprintf("SELECT ifNull(sum(%s), 0) FROM %s", pred, fromSQL)
	if useWhere {
		first += fmt.Sprintf(" WHERE %s", wherePred)
		second += fmt.Sprintf(" WHERE %s", wherePred)
	}
	if useGroupBy {
		clause := groupByClause(groupCols)
		first += clause + fmt.Sprintf(" HAVING %s", havingPred)
		second += clause
	}
	return first, second
}

func groupByClause(cols []string) string {
	if len(cols) == 0 {
		return ""
	}
	s := " GROUP BY "
	for i, c := range cols {
		if i > 0 {
			s += ", "
		}
		s += c
	}
	return s
}
