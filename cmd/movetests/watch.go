package main

import (
	"context"

	"github.com/garlicgarrison/chess-move-tests/logging"
	"github.com/garlicgarrison/chess-move-tests/watch"
	"github.com/spf13/cobra"
)

func newWatchCmd(opts *options) *cobra.Command {
	var minify bool

	cmd := &cobra.Command{
		Use:   "watch INPUT OUTPUT",
		Short: "Regenerate OUTPUT whenever INPUT changes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.app(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("minify") {
				a.cfg.Minify = minify
			}

			input, output := args[0], args[1]
			w, err := watch.New(input, watch.DefaultDebounce, func(ctx context.Context) error {
				return a.generate(ctx, input, output)
			}, logging.WithComponent("watch"))
			if err != nil {
				return err
			}

			return w.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVarP(&minify, "minify", "m", false, "Minify the output JSON file")

	return cmd
}
