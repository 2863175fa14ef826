package movegen

type MoveType string

const (
	KingSideCastle   MoveType = "KingSideCastle"
	QueenSideCastle  MoveType = "QueenSideCastle"
	EnPassant        MoveType = "EnPassant"
	PromotionCapture MoveType = "PromotionCapture"
	Promotion        MoveType = "Promotion"
	Capture          MoveType = "Capture"
	Basic            MoveType = "Basic"
)

var MoveTypes = []MoveType{
	KingSideCastle,
	QueenSideCastle,
	EnPassant,
	PromotionCapture,
	Promotion,
	Capture,
	Basic,
}

// Move describes a legal move the way a move generator under test sees it.
// Capture and Promotion are FEN piece symbols, nil when absent.
type Move struct {
	From      string   `json:"from"`
	To        string   `json:"to"`
	Piece     string   `json:"piece"`
	Capture   *string  `json:"capture"`
	Promotion *string  `json:"promotion"`
	Type      MoveType `json:"type"`
}

type Entry struct {
	Move Move   `json:"move"`
	UCI  string `json:"uci"`
	SAN  string `json:"san"`
	LAN  string `json:"lan"`
	FEN  string `json:"fen"`
}
