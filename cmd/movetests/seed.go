package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/garlicgarrison/chess-move-tests/positions"
	"github.com/garlicgarrison/chess-move-tests/suite"
	"github.com/spf13/cobra"
)

func newSeedCmd(opts *options) *cobra.Command {
	var (
		count int
		seed  int64
	)

	cmd := &cobra.Command{
		Use:   "seed OUTPUT",
		Short: "Write test definitions for random legal positions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.app(cmd)
			if err != nil {
				return err
			}
			if count <= 0 {
				return fmt.Errorf("count must be positive, got %d", count)
			}
			if !cmd.Flags().Changed("seed") {
				seed = time.Now().UnixNano()
			}

			rng := rand.New(rand.NewSource(seed))
			s := make(suite.Suite, 0, count)
			for i := 0; i < count; i++ {
				fen, err := positions.Random(a.cfg.Pieces, rng)
				if err != nil {
					return fmt.Errorf("position %d: %w", i, err)
				}

				test := &suite.Object{}
				if err := test.Set(suite.FENKey, fen); err != nil {
					return err
				}
				s = append(s, test)
			}

			if err := suite.Write(args[0], s, a.format()); err != nil {
				return err
			}

			a.logger.Info().
				Int("count", count).
				Int64("seed", seed).
				Str("output", args[0]).
				Msg("test definitions written")
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 100, "Number of positions")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (default: current time)")

	return cmd
}
