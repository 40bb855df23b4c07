// Package rules defines the chess rules contract the search core consumes,
// together with adapters over third-party move generators.
package rules

import "errors"

var (
	ErrIllegalMove   = errors.New("rules: move is not legal in this position")
	ErrUndoMismatch  = errors.New("rules: undo does not match the last applied move")
	ErrNothingToUndo = errors.New("rules: no move to undo")
)

// Square indexes the board from a1 (0) to h8 (63), rank*8 + file.
type Square int8

func NewSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

func (sq Square) File() int { return int(sq) % 8 }
func (sq Square) Rank() int { return int(sq) / 8 }

// Light reports whether sq is a light square.
func (sq Square) Light() bool {
	return (sq.File()+sq.Rank())%2 == 1
}

func (sq Square) String() string {
	if sq < 0 || sq > 63 {
		return "-"
	}
	return string([]byte{byte('a' + sq.File()), byte('1' + sq.Rank())})
}

type Color int8

const (
	White Color = iota
	Black
)

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

type PieceType int8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// NumPieceTypes sizes arrays indexed by PieceType.
const NumPieceTypes = int(King) + 1

type Piece struct {
	Type  PieceType
	Color Color
}

// Position is the read-only view of a board state.
type Position interface {
	Turn() Color
	PieceAt(sq Square) (Piece, bool)
	IsCheckmate() bool
	IsStalemate() bool
	IsInsufficientMaterial() bool
	IsRepetition() bool
}

// Rules is a mutable position plus its move generator. Apply and Undo work in
// place and must be strictly paired: Undo reverses the most recent Apply,
// including castling rights, en passant target and repetition history.
type Rules[M comparable] interface {
	Position
	LegalMoves() []M
	Apply(m M) error
	Undo(m M) error
	IsCapture(m M) bool
	Squares(m M) (from, to Square)
	MoveString(m M) string
}

// IsTerminal reports whether no search should continue from pos.
func IsTerminal(pos Position) bool {
	return pos.IsCheckmate() || pos.IsStalemate() ||
		pos.IsInsufficientMaterial() || pos.IsRepetition()
}

// RepetitionCount is the number of occurrences of a position that makes it a draw.
const RepetitionCount = 3

// insufficientMaterial reports whether neither side can possibly mate: no
// pawns, rooks or queens, and either at most one minor piece or only bishops
// all standing on the same square colour.
func insufficientMaterial(pos Position) bool {
	minors := 0
	knights := 0
	light, dark := 0, 0
	for sq := Square(0); sq < 64; sq++ {
		p, ok := pos.PieceAt(sq)
		if !ok {
			continue
		}
		switch p.Type {
		case Pawn, Rook, Queen:
			return false
		case Knight:
			minors++
			knights++
		case Bishop:
			minors++
			if sq.Light() {
				light++
			} else {
				dark++
			}
		}
	}
	if minors <= 1 {
		return true
	}
	return knights == 0 && (light == 0 || dark == 0)
}
