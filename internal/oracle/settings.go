package oracle

import (
	"context"
	"fmt"

	"fuzzql/internal/client"
	"fuzzql/internal/randgen"
	"fuzzql/internal/settings"
	"fuzzql/internal/statement"
)

// RunSettings drives the Settings oracle: generate one query, run it twice
// under two settings assignments chosen so every picked setting takes a
// different candidate value each time, and compare. A genuine divergence
// means a setting changed the query's result, not just its execution plan.
func RunSettings(ctx context.Context, c client.Client, rng *randgen.Source, gen *statement.Generator) error {
	query := gen.GenerateSettingsQuery()

	picked, firstValues := settings.FirstSetting(rng)
	secondValues := settings.SecondSetting(picked, firstValues)

	firstQuery := fmt.Sprintf("%s %s", query, settings.RenderSettingsClause(picked, firstValues))
	secondQuery := fmt.Sprintf("%s %s", query, settings.RenderSettingsClause(picked, secondValues))

	return run(ctx, c, "settings", firstQuery, secondQuery)
}
