package oracle

import (
	"context"

	"fuzzql/internal/client"
	"fuzzql/internal/randgen"
	"fuzzql/internal/statement"
)

// RunCorrectness drives the correctness oracle: pick one of the three
// clause shapes, build the COUNT(*)/ifNull(SUM,0) pair sharing the same
// FROM and predicate, and compare. Returns a *fuzzerrors.OracleError wrapped
// by run() on mismatch, nil when either run was rejected or both agreed.
func RunCorrectness(ctx context.Context, c client.Client, rng *randgen.Source, gen *statement.Generator) error {
	shape := randgen.Pick(rng, []statement.CorrectnessShape{
		statement.ShapeWhere, statement.ShapeGroupBy, statement.ShapeBoth,
	})
	first, second := gen.GenerateCorrectnessPair(shape)
	return run(ctx, c, "correctness", first, second)
}
