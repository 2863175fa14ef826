package movegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func strPtr(s string) *string {
	return &s
}

func find(t *testing.T, entries []Entry, uci string) Entry {
	t.Helper()
	for _, e := range entries {
		if e.UCI == uci {
			return e
		}
	}
	t.Fatalf("move %s not generated", uci)
	return Entry{}
}

func TestGenerateStartPosition(t *testing.T) {
	entries, err := NewGenerator(Options{}).Generate(startFEN)
	require.NoError(t, err)
	require.Len(t, entries, 20)

	e4 := find(t, entries, "e2e4")
	assert.Equal(t, Move{From: "e2", To: "e4", Piece: "P", Type: Basic}, e4.Move)
	assert.Equal(t, "e4", e4.SAN)
	assert.Equal(t, "e2-e4", e4.LAN)
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1", e4.FEN)

	nf3 := find(t, entries, "g1f3")
	assert.Equal(t, "N", nf3.Move.Piece)
	assert.Equal(t, "Nf3", nf3.SAN)
	assert.Equal(t, "Ng1-f3", nf3.LAN)

	for i := 1; i < len(entries); i++ {
		assert.Less(t, entries[i-1].UCI, entries[i].UCI)
	}
}

func TestGenerateMoveTypes(t *testing.T) {
	cases := []struct {
		name string
		fen  string
		uci  string
		want Entry
	}{
		{
			name: "en passant",
			fen:  "rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
			uci:  "e5f6",
			want: Entry{
				Move: Move{From: "e5", To: "f6", Piece: "P", Capture: strPtr("p"), Type: EnPassant},
				UCI:  "e5f6",
				SAN:  "exf6",
				LAN:  "e5xf6",
				FEN:  "rnbqkbnr/ppp1p1pp/5P2/3p4/8/8/PPPP1PPP/RNBQKBNR b KQkq - 0 3",
			},
		},
		{
			name: "king side castle",
			fen:  "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			uci:  "e1g1",
			want: Entry{
				Move: Move{From: "e1", To: "g1", Piece: "K", Type: KingSideCastle},
				UCI:  "e1g1",
				SAN:  "O-O",
				LAN:  "O-O",
				FEN:  "r3k2r/8/8/8/8/8/8/R4RK1 b kq - 1 1",
			},
		},
		{
			name: "queen side castle",
			fen:  "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			uci:  "e1c1",
			want: Entry{
				Move: Move{From: "e1", To: "c1", Piece: "K", Type: QueenSideCastle},
				UCI:  "e1c1",
				SAN:  "O-O-O",
				LAN:  "O-O-O",
				FEN:  "r3k2r/8/8/8/8/8/8/2KR3R b kq - 1 1",
			},
		},
		{
			name: "capture with check",
			fen:  "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			uci:  "a1a8",
			want: Entry{
				Move: Move{From: "a1", To: "a8", Piece: "R", Capture: strPtr("r"), Type: Capture},
				UCI:  "a1a8",
				SAN:  "Rxa8+",
				LAN:  "Ra1xa8+",
				FEN:  "R3k2r/8/8/8/8/8/8/4K2R b Kk - 0 1",
			},
		},
		{
			name: "promotion",
			fen:  "8/P7/8/8/8/8/8/K6k w - - 0 1",
			uci:  "a7a8r",
			want: Entry{
				Move: Move{From: "a7", To: "a8", Piece: "P", Promotion: strPtr("R"), Type: Promotion},
				UCI:  "a7a8r",
				SAN:  "a8=R",
				LAN:  "a7-a8=R",
				FEN:  "R7/8/8/8/8/8/8/K6k b - - 0 1",
			},
		},
		{
			name: "promotion with check",
			fen:  "8/P7/8/8/8/8/8/K6k w - - 0 1",
			uci:  "a7a8q",
			want: Entry{
				Move: Move{From: "a7", To: "a8", Piece: "P", Promotion: strPtr("Q"), Type: Promotion},
				UCI:  "a7a8q",
				SAN:  "a8=Q+",
				LAN:  "a7-a8=Q+",
				FEN:  "Q7/8/8/8/8/8/8/K6k b - - 0 1",
			},
		},
		{
			name: "promotion capture",
			fen:  "1n6/P7/8/8/8/8/8/K6k w - - 0 1",
			uci:  "a7b8q",
			want: Entry{
				Move: Move{From: "a7", To: "b8", Piece: "P", Capture: strPtr("n"), Promotion: strPtr("Q"), Type: PromotionCapture},
				UCI:  "a7b8q",
				SAN:  "axb8=Q",
				LAN:  "a7xb8=Q",
				FEN:  "1Q6/8/8/8/8/8/8/K6k b - - 0 1",
			},
		},
		{
			name: "mate",
			fen:  "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1",
			uci:  "a1a8",
			want: Entry{
				Move: Move{From: "a1", To: "a8", Piece: "R", Type: Basic},
				UCI:  "a1a8",
				SAN:  "Ra8#",
				LAN:  "Ra1-a8#",
				FEN:  "R5k1/5ppp/8/8/8/8/8/6K1 b - - 1 1",
			},
		},
	}

	g := NewGenerator(Options{})
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			entries, err := g.Generate(c.fen)
			require.NoError(t, err)
			assert.Equal(t, c.want, find(t, entries, c.uci))
		})
	}
}

func TestGenerateDropsUnbackedCastlingRights(t *testing.T) {
	g := NewGenerator(Options{})

	entries, err := g.Generate("4k3/8/8/8/8/8/8/4K3 w K - 0 1")
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotEqual(t, "e1g1", e.UCI)
		assert.NotEqual(t, KingSideCastle, e.Move.Type)
		assert.Equal(t, []string{"b", "-", "-"}, strings.Fields(e.FEN)[1:4], e.UCI)
	}

	// rook on h1 but king moved off e1
	entries, err = g.Generate("r3k3/8/8/8/8/8/8/5K1R w Kq - 0 1")
	require.NoError(t, err)
	assert.Equal(t, "r3k3/8/8/8/8/8/8/6KR b q - 1 1", find(t, entries, "f1g1").FEN)
}

func TestGenerateBlackPromotionIsLowercase(t *testing.T) {
	entries, err := NewGenerator(Options{}).Generate("K6k/8/8/8/8/8/p7/8 b - - 0 1")
	require.NoError(t, err)

	e := find(t, entries, "a2a1n")
	require.NotNil(t, e.Move.Promotion)
	assert.Equal(t, "n", *e.Move.Promotion)
	assert.Equal(t, "p", e.Move.Piece)
	assert.Equal(t, "a1=N", e.SAN)
}

func TestGenerateDisambiguation(t *testing.T) {
	cases := []struct {
		fen  string
		uci  string
		want string
	}{
		{"k7/8/8/8/8/8/8/1N3N1K w - - 0 1", "b1d2", "Nbd2"},
		{"k7/8/8/8/8/8/8/1N3N1K w - - 0 1", "f1d2", "Nfd2"},
		{"7k/8/8/8/N7/8/N7/7K w - - 0 1", "a2c3", "N2c3"},
		{"7k/8/8/8/N7/8/N7/7K w - - 0 1", "a4c3", "N4c3"},
		{"7k/8/8/8/N7/8/N7/7K w - - 0 1", "a4b6", "Nb6"},
		{"7k/8/8/8/8/1N6/8/1N3N1K w - - 0 1", "b1d2", "Nb1d2"},
	}

	g := NewGenerator(Options{})
	for _, c := range cases {
		t.Run(c.uci, func(t *testing.T) {
			entries, err := g.Generate(c.fen)
			require.NoError(t, err)
			assert.Equal(t, c.want, find(t, entries, c.uci).SAN)
		})
	}
}

func TestGenerateKeepsLegalEnPassantSquare(t *testing.T) {
	entries, err := NewGenerator(Options{}).Generate("rnbqkbnr/ppp1pppp/8/8/3p4/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	require.NoError(t, err)

	assert.Equal(t, "rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1", find(t, entries, "e2e4").FEN)
	assert.Equal(t, "rnbqkbnr/ppp1pppp/8/8/P2p4/8/1PPPPPPP/RNBQKBNR b KQkq - 0 1", find(t, entries, "a2a4").FEN)
}

func TestGenerateStalemate(t *testing.T) {
	entries, err := NewGenerator(Options{}).Generate("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestGenerateInvariants(t *testing.T) {
	fens := []string{
		startFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	}

	g := NewGenerator(Options{})
	for _, fen := range fens {
		entries, err := g.Generate(fen)
		require.NoError(t, err, fen)
		require.NotEmpty(t, entries, fen)

		seen := make(map[string]bool)
		for _, e := range entries {
			assert.False(t, seen[e.UCI], "duplicate %s in %s", e.UCI, fen)
			seen[e.UCI] = true

			promo := e.Move.Type == Promotion || e.Move.Type == PromotionCapture
			assert.Equal(t, promo, e.Move.Promotion != nil, e.UCI)

			capture := e.Move.Type == Capture || e.Move.Type == PromotionCapture || e.Move.Type == EnPassant
			assert.Equal(t, capture, e.Move.Capture != nil, e.UCI)
		}
	}
}

func TestGenerateKnownMoveCounts(t *testing.T) {
	cases := []struct {
		fen  string
		want int
	}{
		{startFEN, 20},
		{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 48},
		{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 14},
		{"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 6},
		{"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", 44},
	}

	g := NewGenerator(Options{KeepOrder: true})
	for _, c := range cases {
		entries, err := g.Generate(c.fen)
		require.NoError(t, err)
		assert.Len(t, entries, c.want, c.fen)
	}
}

func TestNewGame(t *testing.T) {
	_, err := NewGame("")
	assert.ErrorIs(t, err, ErrEmptyFEN)

	_, err = NewGame("not-a-board")
	assert.ErrorIs(t, err, ErrInvalidFEN)

	_, err = NewGame(startFEN + " extra")
	assert.ErrorIs(t, err, ErrInvalidFEN)

	game, err := NewGame("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR")
	require.NoError(t, err)
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1", game.Position().String())

	game, err = NewGame("4k3/8/8/8/8/8/8/4K3 w K - 0 1")
	require.NoError(t, err)
	assert.Equal(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1", game.Position().String())

	game, err = NewGame("r3k2r/8/8/8/8/8/8/R3K3 w KQkq - 0 1")
	require.NoError(t, err)
	assert.Equal(t, "r3k2r/8/8/8/8/8/8/R3K3 w Qkq - 0 1", game.Position().String())
}
