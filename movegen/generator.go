package movegen

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	chess "github.com/garlicgarrison/go-chess"
)

var (
	ErrEmptyFEN   = errors.New("empty fen")
	ErrInvalidFEN = errors.New("invalid fen")
)

// fields a FEN may omit, filled from the right
var fenDefaults = []string{"", "w", "-", "-", "0", "1"}

type Options struct {
	// KeepOrder leaves entries in the order the library enumerates them
	// instead of sorting by UCI.
	KeepOrder bool
}

type Generator struct {
	opts Options
}

func NewGenerator(opts Options) *Generator {
	return &Generator{opts: opts}
}

/*
	Generate enumerates every legal move from fen and returns one entry per
	move with the data a move generator is expected to reproduce
*/
func (g *Generator) Generate(fen string) ([]Entry, error) {
	game, err := NewGame(fen)
	if err != nil {
		return nil, err
	}

	legal := game.ValidMoves()

	entries := make([]Entry, 0, len(legal))
	for _, m := range legal {
		e, err := g.entry(game, m)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if !g.opts.KeepOrder {
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].UCI < entries[j].UCI
		})
	}

	return entries, nil
}

func (g *Generator) entry(game *chess.Game, m *chess.Move) (Entry, error) {
	pos := game.Position()
	board := pos.Board()
	turn := pos.Turn()

	move := Move{
		From:  m.S1().String(),
		To:    m.S2().String(),
		Piece: symbol(board.Piece(m.S1())),
		Type:  Classify(m),
	}

	if target := board.Piece(m.S2()); target != chess.NoPiece {
		s := symbol(target)
		move.Capture = &s
	}
	if move.Type == EnPassant {
		s := letter(chess.Pawn, turn.Other())
		move.Capture = &s
	}
	if m.Promo() != chess.NoPieceType {
		s := letter(m.Promo(), turn)
		move.Promotion = &s
	}

	after := game.Clone()
	if err := after.Move(m); err != nil {
		return Entry{}, fmt.Errorf("apply %s: %w", m.String(), err)
	}
	replies := after.ValidMoves()
	check := m.HasTag(chess.Check)
	suffix := checkSuffix(check, check && len(replies) == 0)

	return Entry{
		Move: move,
		UCI:  chess.UCINotation{}.Encode(pos, m),
		SAN:  san(pos, m),
		LAN:  lan(board, m, suffix),
		FEN:  legalEnPassantFEN(after.Position(), replies),
	}, nil
}

// NewGame parses fen into a game, padding omitted trailing fields.
func NewGame(fen string) (*chess.Game, error) {
	fields := strings.Fields(fen)
	if len(fields) == 0 {
		return nil, ErrEmptyFEN
	}
	if len(fields) > len(fenDefaults) {
		return nil, fmt.Errorf("%w %q: too many fields", ErrInvalidFEN, fen)
	}
	fields = append(fields, fenDefaults[len(fields):]...)

	opt, err := chess.FEN(strings.Join(fields, " "))
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidFEN, fen, err)
	}
	game := chess.NewGame(opt)

	rights := castlingRights(game.Position().Board(), fields[2])
	if rights == fields[2] {
		return game, nil
	}
	fields[2] = rights
	if opt, err = chess.FEN(strings.Join(fields, " ")); err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidFEN, fen, err)
	}

	return chess.NewGame(opt), nil
}

// castling rights need the king and that rook on their starting squares
var castlingHome = map[rune][2]struct {
	sq    chess.Square
	piece chess.Piece
}{
	'K': {{chess.E1, chess.WhiteKing}, {chess.H1, chess.WhiteRook}},
	'Q': {{chess.E1, chess.WhiteKing}, {chess.A1, chess.WhiteRook}},
	'k': {{chess.E8, chess.BlackKing}, {chess.H8, chess.BlackRook}},
	'q': {{chess.E8, chess.BlackKing}, {chess.A8, chess.BlackRook}},
}

// castlingRights drops every right in field the board cannot back.
func castlingRights(board *chess.Board, field string) string {
	var sb strings.Builder
	for _, r := range field {
		home, ok := castlingHome[r]
		if !ok {
			continue
		}
		if board.Piece(home[0].sq) == home[0].piece && board.Piece(home[1].sq) == home[1].piece {
			sb.WriteRune(r)
		}
	}

	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// legalEnPassantFEN keeps the en passant square only when some reply
// captures en passant.
func legalEnPassantFEN(pos *chess.Position, replies []*chess.Move) string {
	fields := strings.Fields(pos.String())
	if len(fields) < 4 || fields[3] == "-" {
		return pos.String()
	}

	for _, m := range replies {
		if m.HasTag(chess.EnPassant) {
			return pos.String()
		}
	}

	fields[3] = "-"
	return strings.Join(fields, " ")
}
