// Package engine is the driver loop: it wires the random source (C1),
// catalog (C5), statement generator (C6), oracle engine (C8), and update
// pipeline (C9) to one external client.Client and runs them for a
// configured number of statements, optionally across several independent
// parallel workers. Grounded on internal/apply.Applier's connect-then-drive
// shape, generalized from "apply a fixed migration" to "generate and apply
// statements forever", and on §2.4's errgroup-based worker fan-out.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"fuzzql/internal/catalog"
	"fuzzql/internal/client"
	"fuzzql/internal/config"
	"fuzzql/internal/fuzzerrors"
	"fuzzql/internal/logging"
	"fuzzql/internal/oracle"
	"fuzzql/internal/randgen"
	"fuzzql/internal/statement"
	"fuzzql/internal/update"
)

// Run executes cfg.Workers independent generator instances concurrently,
// each with its own seed (cfg.Seed + worker index), catalog, and client
// connection, until each has run cfg.StatementBudget driver iterations
// (ordinary statements plus oracle rounds; no limit when it is 0). The
// first worker to hit an OracleError or a FatalError cancels the others via
// the errgroup's shared context.
func Run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < cfg.Workers; w++ {
		w := w
		g.Go(func() error {
			return runWorker(ctx, cfg, w, logging.WithWorker(logger, w))
		})
	}
	return g.Wait()
}

func runWorker(ctx context.Context, cfg config.Config, worker int, logger *slog.Logger) error {
	c, err := newClient(ctx, cfg)
	if err != nil {
		return fuzzerrors.NewFatalError("connect", err)
	}
	defer c.Close()

	seed := cfg.Seed + uint64(worker)
	rng := randgen.New(seed)
	cat := catalog.New()
	gen := statement.New(rng, cfg.Budget(), cat, statement.DefaultConfig)

	for i := 0; cfg.StatementBudget == 0 || i < cfg.StatementBudget; i++ {
		if err := ctx.Err(); err != nil {
			return nil
		}

		if cfg.OraclePeriod > 0 && i > 0 && i%cfg.OraclePeriod == 0 {
			if err := runOracleRound(ctx, c, rng, gen, logger); err != nil {
				return err
			}
			continue
		}

		stmt := gen.GenerateNextStatement()
		accepted := c.Exec(ctx, stmt.String()) == nil
		update.Apply(cat, stmt, accepted)
		logging.LogStatement(logger, seed, kindName(stmt.Kind), stmt.String(), accepted)
	}
	return nil
}

// runOracleRound picks one of the three oracles uniformly and runs it once.
// An OracleError propagates to the caller (and, through the errgroup, cancels
// every sibling worker); any other error is logged as a generation-stage
// problem and the worker moves on to its next statement.
func runOracleRound(ctx context.Context, c client.Client, rng *randgen.Source, gen *statement.Generator, logger *slog.Logger) error {
	var err error
	switch rng.Intn(3) {
	case 0:
		err = oracle.RunCorrectness(ctx, c, rng, gen)
	case 1:
		err = oracle.RunSettings(ctx, c, rng, gen)
	default:
		err = oracle.RunDumpReload(ctx, c, rng, gen)
	}
	if err == nil {
		return nil
	}

	var oracleErr *fuzzerrors.OracleError
	if errors.As(err, &oracleErr) {
		logger.Error("oracle mismatch", slog.String("oracle", oracleErr.Oracle))
		return err
	}
	logger.Warn("oracle round skipped", slog.String("error", err.Error()))
	return nil
}

func newClient(ctx context.Context, cfg config.Config) (client.Client, error) {
	switch cfg.Client.Target {
	case config.TargetMySQL:
		return client.NewMySQL(ctx, cfg.Client.DSN)
	case config.TargetLite:
		return client.NewLite(ctx, cfg.Client.Path)
	case config.TargetMock:
		return client.NewMock(), nil
	default:
		return nil, fmt.Errorf("engine: unknown client target %q", cfg.Client.Target)
	}
}

func kindName(k statement.Kind) string {
	names := map[statement.Kind]string{
		statement.KindSelect: "select", statement.KindInsert: "insert",
		statement.KindCreateDatabase: "create_database", statement.KindCreateTable: "create_table",
		statement.KindCreateView: "create_view", statement.KindDrop: "drop",
		statement.KindTruncate: "truncate", statement.KindOptimize: "optimize",
		statement.KindCheck: "check", statement.KindDesc: "desc",
		statement.KindAlterTable: "alter_table", statement.KindExchange: "exchange",
		statement.KindAttach: "attach", statement.KindDetach: "detach",
		statement.KindSet: "set", statement.KindExplain: "explain",
	}
	if n, ok := names[k]; ok {
		return n
	}
	return "unknown"
}
