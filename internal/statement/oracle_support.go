package statement

import "fmt"

// GenerateSettingsQuery builds the Settings oracle's query: an arbitrary
// top-level SELECT wrapped as a derived table and re-ordered by every
// output column, matching GenerateSettingQuery's "wrap the select, ORDER BY
// ALL" transform. Wrapping in ORDER BY ALL makes row order deterministic so
// two runs under different settings are directly comparable.
func (g *Generator) GenerateSettingsQuery() string {
	ncols := g.rng.IntRange(1, 5)
	inner := g.GenerateSelect(true, ncols, AllClauses&^AllowSet)
	return fmt.Sprintf("SELECT * FROM (%s) AS s ORDER BY ALL", inner.SQL)
}
