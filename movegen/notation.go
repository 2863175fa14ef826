package movegen

import (
	"strings"

	chess "github.com/garlicgarrison/go-chess"
)

func san(pos *chess.Position, m *chess.Move) string {
	return chess.AlgebraicNotation{}.Encode(pos, m)
}

/*
	lan writes the origin square in full and separates quiet moves with '-',
	e.g. Ng1-f3, e7xd8=Q+. Castling and the check/mate suffix are as in SAN
*/
func lan(board *chess.Board, m *chess.Move, suffix string) string {
	switch {
	case m.HasTag(chess.KingSideCastle):
		return "O-O" + suffix
	case m.HasTag(chess.QueenSideCastle):
		return "O-O-O" + suffix
	}

	var sb strings.Builder
	if t := board.Piece(m.S1()).Type(); t != chess.Pawn {
		sb.WriteString(letter(t, chess.White))
	}
	sb.WriteString(m.S1().String())

	if isCapture(m) {
		sb.WriteByte('x')
	} else {
		sb.WriteByte('-')
	}
	sb.WriteString(m.S2().String())

	if m.Promo() != chess.NoPieceType {
		sb.WriteByte('=')
		sb.WriteString(letter(m.Promo(), chess.White))
	}
	sb.WriteString(suffix)

	return sb.String()
}

func checkSuffix(check, mate bool) string {
	switch {
	case mate:
		return "#"
	case check:
		return "+"
	default:
		return ""
	}
}
