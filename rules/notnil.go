package rules

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"
)

// Game adapts github.com/notnil/chess to Rules. notnil positions are
// immutable, so Apply pushes the successor position and Undo pops it.
type Game struct {
	positions []*chess.Position
	moves     []*chess.Move
	seen      map[string]int
}

var _ Rules[*chess.Move] = (*Game)(nil)

// NewGame snapshots g, including its position history for repetition
// detection. g itself is never modified.
func NewGame(g *chess.Game) *Game {
	history := g.Positions()
	r := &Game{
		positions: []*chess.Position{g.Position()},
		seen:      make(map[string]int, len(history)+16),
	}
	for _, pos := range history {
		r.seen[positionKey(pos)]++
	}
	if len(history) == 0 {
		r.seen[positionKey(g.Position())]++
	}
	return r
}

// FromFEN starts a game from the given FEN.
func FromFEN(fen string) (*Game, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("parse fen %q: %w", fen, err)
	}
	return NewGame(chess.NewGame(opt)), nil
}

// Position is the current position.
func (g *Game) Position() *chess.Position {
	return g.positions[len(g.positions)-1]
}

func (g *Game) FEN() string {
	return g.Position().String()
}

// ParseMove decodes a UCI move string in the current position.
func (g *Game) ParseMove(s string) (*chess.Move, error) {
	m, err := chess.UCINotation{}.Decode(g.Position(), s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrIllegalMove, s, err)
	}
	return g.legal(m)
}

func (g *Game) Turn() Color {
	return fromChessColor(g.Position().Turn())
}

func (g *Game) PieceAt(sq Square) (Piece, bool) {
	p := g.Position().Board().Piece(chess.Square(sq))
	if p == chess.NoPiece {
		return Piece{}, false
	}
	return Piece{Type: fromChessType(p.Type()), Color: fromChessColor(p.Color())}, true
}

func (g *Game) IsCheckmate() bool {
	return g.Position().Status() == chess.Checkmate
}

func (g *Game) IsStalemate() bool {
	return g.Position().Status() == chess.Stalemate
}

func (g *Game) IsInsufficientMaterial() bool {
	return insufficientMaterial(g)
}

func (g *Game) IsRepetition() bool {
	return g.seen[positionKey(g.Position())] >= RepetitionCount
}

func (g *Game) LegalMoves() []*chess.Move {
	return g.Position().ValidMoves()
}

func (g *Game) Apply(m *chess.Move) error {
	legal, err := g.legal(m)
	if err != nil {
		return err
	}
	next := g.Position().Update(legal)
	g.positions = append(g.positions, next)
	g.moves = append(g.moves, legal)
	g.seen[positionKey(next)]++
	return nil
}

func (g *Game) Undo(m *chess.Move) error {
	if len(g.moves) == 0 {
		return ErrNothingToUndo
	}
	last := g.moves[len(g.moves)-1]
	if m == nil || !sameMove(last, m) {
		return fmt.Errorf("%w: undo %s, last applied %s", ErrUndoMismatch, m, last)
	}
	key := positionKey(g.Position())
	if g.seen[key]--; g.seen[key] <= 0 {
		delete(g.seen, key)
	}
	g.positions = g.positions[:len(g.positions)-1]
	g.moves = g.moves[:len(g.moves)-1]
	return nil
}

func (g *Game) IsCapture(m *chess.Move) bool {
	return m.HasTag(chess.Capture) || m.HasTag(chess.EnPassant)
}

func (g *Game) Squares(m *chess.Move) (from, to Square) {
	return Square(m.S1()), Square(m.S2())
}

func (g *Game) MoveString(m *chess.Move) string {
	return m.String()
}

// legal returns the generator's own instance of m, or ErrIllegalMove.
func (g *Game) legal(m *chess.Move) (*chess.Move, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil move", ErrIllegalMove)
	}
	for _, v := range g.Position().ValidMoves() {
		if v == m || sameMove(v, m) {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: %s in %s", ErrIllegalMove, m, g.FEN())
}

func sameMove(a, b *chess.Move) bool {
	return a.S1() == b.S1() && a.S2() == b.S2() && a.Promo() == b.Promo()
}

// positionKey is the FEN without the move clocks.
func positionKey(pos *chess.Position) string {
	fields := strings.Fields(pos.String())
	if len(fields) > 4 {
		fields = fields[:4]
	}
	return strings.Join(fields, " ")
}

func fromChessColor(c chess.Color) Color {
	if c == chess.Black {
		return Black
	}
	return White
}

func fromChessType(t chess.PieceType) PieceType {
	switch t {
	case chess.Pawn:
		return Pawn
	case chess.Knight:
		return Knight
	case chess.Bishop:
		return Bishop
	case chess.Rook:
		return Rook
	case chess.Queen:
		return Queen
	case chess.King:
		return King
	default:
		return NoPieceType
	}
}
