package runner

import (
	"context"
	"errors"
	"sort"

	"github.com/garlicgarrison/chess-move-tests/movegen"
	"github.com/garlicgarrison/chess-move-tests/suite"
	"github.com/google/go-cmp/cmp"
)

var ErrNoMoves = errors.New("test has no generated moves")

// Mismatch lists how the stored moves of one test differ from a fresh
// generation. Moves are matched by their UCI string.
type Mismatch struct {
	Index      int
	FEN        string
	Missing    []string          // generated now but not stored
	Unexpected []string          // stored but no longer generated
	Changed    map[string]string // uci -> diff of stored against generated
}

func (m Mismatch) Empty() bool {
	return len(m.Missing) == 0 && len(m.Unexpected) == 0 && len(m.Changed) == 0
}

// Verify regenerates every test of a previously generated suite and returns
// the tests whose stored moves disagree. Errors are reserved for tests that
// cannot be checked at all.
func (r *Runner) Verify(ctx context.Context, s suite.Suite) ([]Mismatch, error) {
	found := make([]*Mismatch, len(s))
	err := r.each(ctx, s, func(i int, fen string) error {
		var stored []movegen.Entry
		ok, err := s[i].Decode(suite.MovesKey, &stored)
		if !ok {
			return ErrNoMoves
		}
		if err != nil {
			return err
		}

		fresh, err := r.gen.Generate(fen)
		if err != nil {
			return err
		}

		m := compare(stored, fresh)
		if !m.Empty() {
			m.Index, m.FEN = i, fen
			found[i] = &m
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var mismatches []Mismatch
	for _, m := range found {
		if m != nil {
			mismatches = append(mismatches, *m)
		}
	}

	r.logger.Info().
		Int("tests", len(s)).
		Int("mismatches", len(mismatches)).
		Msg("verification finished")

	return mismatches, nil
}

func compare(stored, fresh []movegen.Entry) Mismatch {
	var m Mismatch

	byUCI := make(map[string]movegen.Entry, len(stored))
	for _, e := range stored {
		byUCI[e.UCI] = e
	}

	for _, want := range fresh {
		got, ok := byUCI[want.UCI]
		if !ok {
			m.Missing = append(m.Missing, want.UCI)
			continue
		}
		delete(byUCI, want.UCI)

		if diff := cmp.Diff(got, want); diff != "" {
			if m.Changed == nil {
				m.Changed = make(map[string]string)
			}
			m.Changed[want.UCI] = diff
		}
	}

	for uci := range byUCI {
		m.Unexpected = append(m.Unexpected, uci)
	}
	sort.Strings(m.Unexpected)

	return m
}
