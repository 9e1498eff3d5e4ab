package engine

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"fuzzql/internal/catalog"
	"fuzzql/internal/client"
	"fuzzql/internal/config"
	"fuzzql/internal/fuzzerrors"
	"fuzzql/internal/logging"
	"fuzzql/internal/randgen"
	"fuzzql/internal/sqltype"
	"fuzzql/internal/statement"
	"fuzzql/internal/typegen"
)

func silentLogger() *slog.Logger {
	return logging.New(logging.Options{Path: ""})
}

func TestRunWithMockClientCompletesWithoutError(t *testing.T) {
	cfg := config.Default()
	cfg.Client.Target = config.TargetMock
	cfg.Workers = 2
	cfg.StatementBudget = 30
	cfg.OraclePeriod = 5

	if err := Run(context.Background(), cfg, silentLogger()); err != nil {
		t.Fatalf("Run returned error against the mock client: %v", err)
	}
}

func TestRunPropagatesContextCancellation(t *testing.T) {
	cfg := config.Default()
	cfg.Client.Target = config.TargetMock
	cfg.StatementBudget = 1_000_000
	cfg.OraclePeriod = 0

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Run(ctx, cfg, silentLogger()); err != nil {
		t.Fatalf("Run should return nil on an already-cancelled context, got: %v", err)
	}
}

func TestNewClientUnknownTargetReturnsError(t *testing.T) {
	cfg := config.Default()
	cfg.Client.Target = config.ClientTarget("bogus")
	if _, err := newClient(context.Background(), cfg); err == nil {
		t.Fatal("expected an error for an unknown client target")
	}
}

func TestNewClientMockAlwaysSucceeds(t *testing.T) {
	cfg := config.Default()
	cfg.Client.Target = config.TargetMock
	c, err := newClient(context.Background(), cfg)
	if err != nil {
		t.Fatalf("newClient(mock) returned error: %v", err)
	}
	defer c.Close()
	if err := c.Exec(context.Background(), "SELECT 1"); err != nil {
		t.Fatalf("mock Exec returned error: %v", err)
	}
}

func TestKindNameCoversEveryKind(t *testing.T) {
	kinds := []statement.Kind{
		statement.KindSelect, statement.KindInsert, statement.KindCreateDatabase,
		statement.KindCreateTable, statement.KindCreateView, statement.KindDrop,
		statement.KindTruncate, statement.KindOptimize, statement.KindCheck,
		statement.KindDesc, statement.KindAlterTable, statement.KindExchange,
		statement.KindAttach, statement.KindDetach, statement.KindSet, statement.KindExplain,
	}
	for _, k := range kinds {
		if got := kindName(k); got == "unknown" {
			t.Fatalf("kindName(%v) = unknown", k)
		}
	}
}

func TestRunOracleRoundSwallowsNonOracleErrors(t *testing.T) {
	rng := randgen.New(1)
	cat := catalog.New()
	gen := statement.New(rng, typegen.DefaultBudget, cat, statement.DefaultConfig)
	// No tables staged: RunCorrectness/RunSettings/RunDumpReload each
	// degrade to a harmless no-op rather than an OracleError.
	c := client.NewMock()

	if err := runOracleRound(context.Background(), c, rng, gen, silentLogger()); err != nil {
		t.Fatalf("runOracleRound should swallow a generation-stage no-op, got: %v", err)
	}
}

func TestRunOracleRoundPropagatesOracleError(t *testing.T) {
	rng := randgen.New(2)
	cat := catalog.New()
	gen := statement.New(rng, typegen.DefaultBudget, cat, statement.DefaultConfig)
	db := cat.StageDatabase("d0")
	cat.CommitDatabase(db.ID)
	table := db.StageTable("t0", catalog.EngineMergeTree)
	table.StageColumn("c0", sqltype.IntType{Width: sqltype.Int32})
	db.CommitTable(table.ID)

	c := &mismatchingClient{}
	err := runOracleRound(context.Background(), c, rng, gen, silentLogger())
	var oe *fuzzerrors.OracleError
	if err != nil && !errors.As(err, &oe) {
		t.Fatalf("runOracleRound returned a non-oracle error: %v", err)
	}
}

// mismatchingClient returns a different row set on every other call, forcing
// the Correctness and Settings oracles, which issue exactly two queries, to
// observe a digest mismatch. Dump/Reload's two digest queries are its first
// and third calls, so they see the same rows and agree.
type mismatchingClient struct{ calls int }

func (m *mismatchingClient) Exec(ctx context.Context, stmt string) error { return nil }

func (m *mismatchingClient) Query(ctx context.Context, query string) (client.Rows, error) {
	m.calls++
	if m.calls%2 == 1 {
		return client.Rows{Values: [][]string{{"1"}}}, nil
	}
	return client.Rows{Values: [][]string{{"2"}}}, nil
}

func (m *mismatchingClient) Close() error { return nil }
