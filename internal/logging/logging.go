// Package logging sets up structured logging for a fuzzing run: one line
// per generated statement and one line per oracle verdict, written to a
// rotated file so long runs don't grow an unbounded log.
package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures where and how logs rotate.
type Options struct {
	// Path to the log file. Empty means stderr only, no rotation (used by
	// `fuzzql replay` and tests).
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// DefaultOptions matches what `fuzzql run` uses absent config overrides.
var DefaultOptions = Options{
	Path:       "fuzzql.log",
	MaxSizeMB:  100,
	MaxBackups: 5,
	MaxAgeDays: 14,
}

// New builds a *slog.Logger writing JSON lines to the configured
// destination. The CLI calls New once per run and the engine derives each
// worker's logger from it via WithWorker, so interleaved output from
// parallel workers (§2.4) stays attributable to a single generator instance.
func New(opts Options) *slog.Logger {
	var w io.Writer = os.Stderr
	if opts.Path != "" {
		w = &lumberjack.Logger{
			Filename:   opts.Path,
			MaxSize:    orDefault(opts.MaxSizeMB, 100),
			MaxBackups: orDefault(opts.MaxBackups, 5),
			MaxAge:     orDefault(opts.MaxAgeDays, 14),
		}
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// WithWorker returns a child logger tagging every record with the given
// worker index.
func WithWorker(l *slog.Logger, worker int) *slog.Logger {
	return l.With(slog.Int("worker", worker))
}

// LogStatement records one generated statement's outcome.
func LogStatement(l *slog.Logger, seed uint64, kind string, sql string, accepted bool) {
	l.Info("statement",
		slog.Uint64("seed", seed),
		slog.String("kind", kind),
		slog.String("sql", sql),
		slog.Bool("accepted", accepted),
	)
}

// LogOracle records one oracle run's verdict.
func LogOracle(l *slog.Logger, oracle string, firstDigest, secondDigest uint64, match bool) {
	l.Info("oracle",
		slog.String("oracle", oracle),
		slog.Uint64("first_digest", firstDigest),
		slog.Uint64("second_digest", secondDigest),
		slog.Bool("match", match),
	)
}
