package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/garlicgarrison/chess-move-tests/runner"
	"github.com/garlicgarrison/chess-move-tests/suite"
	"github.com/spf13/cobra"
)

var ErrSuiteMismatch = errors.New("suite does not match generated moves")

func newVerifyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "verify SUITE",
		Short: "Check a generated suite against freshly generated moves",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.app(cmd)
			if err != nil {
				return err
			}

			s, err := suite.Read(args[0])
			if err != nil {
				return err
			}

			mismatches, err := a.runner.Verify(cmd.Context(), s)
			if err != nil {
				return err
			}
			if len(mismatches) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%d tests ok\n", len(s))
				return nil
			}

			printMismatches(cmd.OutOrStdout(), mismatches)
			return fmt.Errorf("%w: %d of %d tests differ", ErrSuiteMismatch, len(mismatches), len(s))
		},
	}
}

func printMismatches(w io.Writer, mismatches []runner.Mismatch) {
	for _, m := range mismatches {
		fmt.Fprintf(w, "test %d (%s)\n", m.Index, m.FEN)
		if len(m.Missing) > 0 {
			fmt.Fprintf(w, "  missing: %s\n", strings.Join(m.Missing, " "))
		}
		if len(m.Unexpected) > 0 {
			fmt.Fprintf(w, "  unexpected: %s\n", strings.Join(m.Unexpected, " "))
		}

		changed := make([]string, 0, len(m.Changed))
		for uci := range m.Changed {
			changed = append(changed, uci)
		}
		sort.Strings(changed)
		for _, uci := range changed {
			fmt.Fprintf(w, "  %s (-stored +generated):\n%s", uci, m.Changed[uci])
		}
	}
}
