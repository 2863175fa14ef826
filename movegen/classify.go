package movegen

import (
	"strings"

	chess "github.com/garlicgarrison/go-chess"
)

// Classify returns the type of a legal move generated by the library. The
// first matching rule wins: castling, en passant, promotion, capture.
func Classify(m *chess.Move) MoveType {
	switch {
	case m.HasTag(chess.KingSideCastle):
		return KingSideCastle
	case m.HasTag(chess.QueenSideCastle):
		return QueenSideCastle
	case m.HasTag(chess.EnPassant):
		return EnPassant
	case m.Promo() != chess.NoPieceType && m.HasTag(chess.Capture):
		return PromotionCapture
	case m.Promo() != chess.NoPieceType:
		return Promotion
	case m.HasTag(chess.Capture):
		return Capture
	default:
		return Basic
	}
}

func isCapture(m *chess.Move) bool {
	return m.HasTag(chess.Capture) || m.HasTag(chess.EnPassant)
}

// letter is the FEN symbol for a piece type, uppercase for white.
func letter(t chess.PieceType, c chess.Color) string {
	var s string
	switch t {
	case chess.King:
		s = "k"
	case chess.Queen:
		s = "q"
	case chess.Rook:
		s = "r"
	case chess.Bishop:
		s = "b"
	case chess.Knight:
		s = "n"
	case chess.Pawn:
		s = "p"
	}

	if c == chess.White {
		return strings.ToUpper(s)
	}
	return s
}

func symbol(p chess.Piece) string {
	return letter(p.Type(), p.Color())
}
