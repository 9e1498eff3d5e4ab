package oracle

import (
	"context"

	"fuzzql/internal/client"
	"fuzzql/internal/digest"
	"fuzzql/internal/fuzzerrors"
)

// Verdict is one oracle run's pending state, mirroring QueryOracle's
// first_success/first_digest/second_sucess/second_digest fields.
// ProcessOracleQueryResult is split here into RecordFirst/RecordSecond: the
// first call never raises an error (there's nothing to compare against
// yet), the second does the comparison.
type Verdict struct {
	name string

	firstOK     bool
	firstDigest digest.Digest
	firstQuery  string

	secondOK     bool
	secondDigest digest.Digest
	secondQuery  string
}

// RecordFirst runs query against c and stores its digest, matching
// ProcessOracleQueryResult(first=true, ...). Any error from c.Query (a
// rejected statement or a client failure alike) is recorded as a
// non-comparable run, not an oracle failure.
func RecordFirst(ctx context.Context, c client.Client, name, query string) (Verdict, error) {
	v := Verdict{name: name, firstQuery: query}
	rows, err := c.Query(ctx, query)
	if err != nil {
		return v, nil
	}
	v.firstOK = true
	v.firstDigest = digest.OfStrings(rows.Lines())
	return v, nil
}

// RecordSecond runs query against c, stores its digest, and — only when both
// runs succeeded — compares the two digests, raising an OracleError on
// mismatch exactly as ProcessOracleQueryResult's tail does.
func (v Verdict) RecordSecond(ctx context.Context, c client.Client, query string) error {
	v.secondQuery = query
	rows, err := c.Query(ctx, query)
	if err != nil {
		return nil
	}
	v.secondOK = true
	v.secondDigest = digest.OfStrings(rows.Lines())

	if v.firstOK && v.secondOK && v.firstDigest != v.secondDigest {
		return fuzzerrors.NewOracleError(v.name, uint64(v.firstDigest), uint64(v.secondDigest), v.firstQuery, v.secondQuery)
	}
	return nil
}

// run is the shared two-query comparison every oracle variant reduces to:
// execute first, execute second, compare digests when both succeeded.
func run(ctx context.Context, c client.Client, name, firstQuery, secondQuery string) error {
	v, err := RecordFirst(ctx, c, name, firstQuery)
	if err != nil {
		return err
	}
	return v.RecordSecond(ctx, c, secondQuery)
}
