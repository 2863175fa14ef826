package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/garlicgarrison/chess-move-tests/metrics"
	"github.com/garlicgarrison/chess-move-tests/movegen"
	"github.com/garlicgarrison/chess-move-tests/suite"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type Config struct {
	Workers   int
	KeepOrder bool
}

// TestError ties a failure to the test definition that caused it.
type TestError struct {
	Index int
	FEN   string
	Err   error
}

func (e *TestError) Error() string {
	if e.FEN == "" {
		return fmt.Sprintf("test %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("test %d (%s): %v", e.Index, e.FEN, e.Err)
}

func (e *TestError) Unwrap() error {
	return e.Err
}

type Runner struct {
	cfg     Config
	gen     *movegen.Generator
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

func New(cfg Config, m *metrics.Metrics, logger zerolog.Logger) *Runner {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if m == nil {
		m = metrics.New()
	}

	return &Runner{
		cfg:     cfg,
		gen:     movegen.NewGenerator(movegen.Options{KeepOrder: cfg.KeepOrder}),
		metrics: m,
		logger:  logger,
	}
}

/*
	Run fills the moves of every test in s. Positions are generated concurrently
	but s is only modified once all of them succeeded, so a failed run leaves the
	suite untouched
*/
func (r *Runner) Run(ctx context.Context, s suite.Suite) error {
	logger := r.logger.With().Str("run_id", uuid.NewString()).Logger()
	start := time.Now()
	logger.Info().
		Int("tests", len(s)).
		Int("workers", r.cfg.Workers).
		Msg("generation started")

	results := make([][]movegen.Entry, len(s))
	err := r.each(ctx, s, func(i int, fen string) error {
		began := time.Now()
		entries, err := r.gen.Generate(fen)
		if err != nil {
			r.metrics.TestFailed()
			return err
		}
		r.metrics.ObserveTest(entries, time.Since(began))
		results[i] = entries

		logger.Debug().
			Int("test", i).
			Str("fen", fen).
			Int("moves", len(entries)).
			Msg("position generated")
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Msg("generation failed")
		return err
	}

	total := 0
	for i, test := range s {
		if err := test.Set(suite.MovesKey, results[i]); err != nil {
			return &TestError{Index: i, Err: err}
		}
		total += len(results[i])
	}

	r.metrics.RunFinished(time.Now())
	logger.Info().
		Int("moves", total).
		Dur("elapsed", time.Since(start)).
		Msg("generation finished")

	return nil
}

// each calls fn for every test with at most cfg.Workers calls in flight. The
// first error cancels the remaining tests.
func (r *Runner) each(ctx context.Context, s suite.Suite, fn func(i int, fen string) error) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)

	for i, test := range s {
		i, test := i, test
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			fen, err := suite.FEN(test)
			if err != nil {
				return &TestError{Index: i, Err: err}
			}
			if err := fn(i, fen); err != nil {
				return &TestError{Index: i, FEN: fen, Err: err}
			}
			return nil
		})
	}

	return g.Wait()
}
