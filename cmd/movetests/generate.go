package main

import (
	"context"

	"github.com/garlicgarrison/chess-move-tests/suite"
	"github.com/spf13/cobra"
)

func newGenerateCmd(opts *options) *cobra.Command {
	var minify bool

	cmd := &cobra.Command{
		Use:   "generate INPUT OUTPUT",
		Short: "Write every legal move of each test position to OUTPUT",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.app(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("minify") {
				a.cfg.Minify = minify
			}
			return a.generate(cmd.Context(), args[0], args[1])
		},
	}

	cmd.Flags().BoolVarP(&minify, "minify", "m", false, "Minify the output JSON file")

	return cmd
}

func (a *app) generate(ctx context.Context, input, output string) error {
	defer a.writeMetrics()

	s, err := suite.Read(input)
	if err != nil {
		return err
	}

	if err := a.runner.Run(ctx, s); err != nil {
		return err
	}

	if err := suite.Write(output, s, a.format()); err != nil {
		return err
	}

	a.logger.Info().
		Str("input", input).
		Str("output", output).
		Int("tests", len(s)).
		Msg("test data written")

	return nil
}
