package positions

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/garlicgarrison/chess-move-tests/movegen"
)

const maxPlacementAttempts = 1000

var (
	ErrInvalidConfig = errors.New("invalid piece config")
	ErrUnplaceable   = errors.New("no safe square left for a king")
)

var pieceToBit = map[rune]int8{
	'P': 1,
	'N': 2,
	'B': 3,
	'R': 4,
	'Q': 5,
	'K': 6,
	'p': 9,
	'n': 10,
	'b': 11,
	'r': 12,
	'q': 13,
	'k': 14,
}

var bitToPiece = map[int8]rune{
	1:  'P',
	2:  'N',
	3:  'B',
	4:  'R',
	5:  'Q',
	6:  'K',
	9:  'p',
	10: 'n',
	11: 'b',
	12: 'r',
	13: 'q',
	14: 'k',
}

// Config is how many of each non-king piece a random position holds.
type Config struct {
	WhiteQ int8 `yaml:"white_q"`
	WhiteR int8 `yaml:"white_r"`
	WhiteB int8 `yaml:"white_b"`
	WhiteN int8 `yaml:"white_n"`
	WhiteP int8 `yaml:"white_p"`
	BlackQ int8 `yaml:"black_q"`
	BlackR int8 `yaml:"black_r"`
	BlackB int8 `yaml:"black_b"`
	BlackN int8 `yaml:"black_n"`
	BlackP int8 `yaml:"black_p"`
}

func DefaultConfig() Config {
	return Config{
		WhiteQ: 1, WhiteR: 1, WhiteB: 1, WhiteN: 1, WhiteP: 4,
		BlackQ: 1, BlackR: 1, BlackB: 1, BlackN: 1, BlackP: 4,
	}
}

// placement order is fixed so a seeded generator is reproducible
func (c Config) counts() []struct {
	piece rune
	n     int8
} {
	return []struct {
		piece rune
		n     int8
	}{
		{'Q', c.WhiteQ}, {'R', c.WhiteR}, {'B', c.WhiteB}, {'N', c.WhiteN}, {'P', c.WhiteP},
		{'q', c.BlackQ}, {'r', c.BlackR}, {'b', c.BlackB}, {'n', c.BlackN}, {'p', c.BlackP},
	}
}

func (c Config) Validate() error {
	total := 0
	for _, pc := range c.counts() {
		if pc.n < 0 {
			return fmt.Errorf("%w: negative count for %c", ErrInvalidConfig, pc.piece)
		}
		total += int(pc.n)
	}
	if total > 30 {
		return fmt.Errorf("%w: %d pieces, at most 30 fit beside the kings", ErrInvalidConfig, total)
	}
	if c.WhiteP > 8 || c.BlackP > 8 {
		return fmt.Errorf("%w: more than 8 pawns", ErrInvalidConfig)
	}
	return nil
}

/*
	Random places the configured pieces on random squares, pawns never on the
	first or last rank, then both kings on squares the opponent does not attack.
	Neither side starts in check. Castling and en passant are never available
*/
func Random(cfg Config, rng *rand.Rand) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	board := [8][8]int8{}
	for _, pc := range cfg.counts() {
		for i := int8(0); i < pc.n; i++ {
			for {
				var row, col int8
				switch pc.piece {
				case 'P', 'p':
					row, col = int8(rng.Intn(6)+1), int8(rng.Intn(8))
				default:
					row, col = int8(rng.Intn(8)), int8(rng.Intn(8))
				}

				if board[row][col] == 0 {
					board[row][col] = pieceToBit[pc.piece]
					break
				}
			}
		}
	}

	whiteAttacks := make(map[int8]bool)
	blackAttacks := make(map[int8]bool)
	for i, row := range board {
		for j, val := range row {
			if val == 0 {
				continue
			}

			piece := bitToPiece[val]
			for _, a := range attacks(piece, board, int8(i), int8(j)) {
				if piece >= 'A' && piece <= 'Z' {
					whiteAttacks[a] = true
				} else {
					blackAttacks[a] = true
				}
			}
		}
	}

	row, col, err := placeKing(&board, 'K', blackAttacks, rng)
	if err != nil {
		return "", err
	}
	for _, a := range kingAttacks(row, col) {
		whiteAttacks[a] = true
	}

	if _, _, err := placeKing(&board, 'k', whiteAttacks, rng); err != nil {
		return "", err
	}

	fen := writeFEN(board, rng.Intn(2) == 0)
	if _, err := movegen.NewGame(fen); err != nil {
		return "", err
	}

	return fen, nil
}

func placeKing(board *[8][8]int8, king rune, attacked map[int8]bool, rng *rand.Rand) (int8, int8, error) {
	for i := 0; i < maxPlacementAttempts; i++ {
		row, col := int8(rng.Intn(8)), int8(rng.Intn(8))
		if board[row][col] == 0 && !attacked[squareHash(row, col)] {
			board[row][col] = pieceToBit[king]
			return row, col, nil
		}
	}
	return 0, 0, ErrUnplaceable
}

func squareHash(row, col int8) int8 {
	return row*8 + col
}

func attacks(piece rune, board [8][8]int8, row, col int8) []int8 {
	switch piece {
	case 'K', 'k':
		return kingAttacks(row, col)
	case 'P':
		return pawnAttacks(true, row, col)
	case 'p':
		return pawnAttacks(false, row, col)
	case 'N', 'n':
		return knightAttacks(row, col)
	case 'B', 'b':
		return slide(board, row, col, diagonals)
	case 'R', 'r':
		return slide(board, row, col, lines)
	case 'Q', 'q':
		return append(slide(board, row, col, diagonals), slide(board, row, col, lines)...)
	default:
		return nil
	}
}

func onBoard(row, col int8) bool {
	return row >= 0 && row < 8 && col >= 0 && col < 8
}

func kingAttacks(row, col int8) []int8 {
	attacks := make([]int8, 0, 8)
	for dr := int8(-1); dr <= 1; dr++ {
		for dc := int8(-1); dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if onBoard(row+dr, col+dc) {
				attacks = append(attacks, squareHash(row+dr, col+dc))
			}
		}
	}
	return attacks
}

// row 0 is the eighth rank, so white pawns attack towards lower rows
func pawnAttacks(white bool, row, col int8) []int8 {
	dr := int8(1)
	if white {
		dr = -1
	}

	attacks := make([]int8, 0, 2)
	for _, dc := range []int8{-1, 1} {
		if onBoard(row+dr, col+dc) {
			attacks = append(attacks, squareHash(row+dr, col+dc))
		}
	}
	return attacks
}

var knightMoves = [][2]int8{{-2, -1}, {-1, -2}, {1, -2}, {2, -1}, {2, 1}, {1, 2}, {-1, 2}, {-2, 1}}

func knightAttacks(row, col int8) []int8 {
	attacks := make([]int8, 0, 8)
	for _, m := range knightMoves {
		if onBoard(row+m[0], col+m[1]) {
			attacks = append(attacks, squareHash(row+m[0], col+m[1]))
		}
	}
	return attacks
}

var (
	diagonals = [][2]int8{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	lines     = [][2]int8{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
)

// slide walks each direction until the edge or the first occupied square,
// which is attacked as well.
func slide(board [8][8]int8, row, col int8, dirs [][2]int8) []int8 {
	attacks := make([]int8, 0)
	for _, d := range dirs {
		for r, c := row+d[0], col+d[1]; onBoard(r, c); r, c = r+d[0], c+d[1] {
			attacks = append(attacks, squareHash(r, c))
			if board[r][c] != 0 {
				break
			}
		}
	}
	return attacks
}

func writeFEN(board [8][8]int8, white bool) string {
	var sb strings.Builder
	for i, row := range board {
		empty := 0
		for _, val := range row {
			if val == 0 {
				empty++
				continue
			}
			if empty != 0 {
				sb.WriteString(fmt.Sprintf("%d", empty))
				empty = 0
			}
			sb.WriteRune(bitToPiece[val])
		}

		if empty != 0 {
			sb.WriteString(fmt.Sprintf("%d", empty))
		}
		if i != 7 {
			sb.WriteRune('/')
		}
	}

	if white {
		sb.WriteString(" w")
	} else {
		sb.WriteString(" b")
	}
	sb.WriteString(" - - 0 1")

	return sb.String()
}
