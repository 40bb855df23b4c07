package rules

import (
	"fmt"
	"slices"

	dragon "github.com/dylhunn/dragontoothmg"
)

// Board adapts github.com/dylhunn/dragontoothmg to Rules. The generator
// already makes and unmakes moves in place; Board keeps the unapply closures
// on a stack so Undo can be checked against the last Apply.
type Board struct {
	board  dragon.Board
	frames []frame
	seen   map[uint64]int

	legal      []dragon.Move // generated moves of the current position
	legalValid bool
}

type frame struct {
	move    dragon.Move
	unapply func()
	key     uint64
}

var _ Rules[dragon.Move] = (*Board)(nil)

func NewBoard(fen string) *Board {
	b := &Board{
		board: dragon.ParseFen(fen),
		seen:  make(map[uint64]int),
	}
	b.seen[b.key()]++
	return b
}

// Board exposes the underlying generator state. Callers must not mutate it.
func (b *Board) Board() *dragon.Board {
	return &b.board
}

// ParseMove decodes a UCI move string and checks it is legal here.
func (b *Board) ParseMove(s string) (dragon.Move, error) {
	m, err := dragon.ParseMove(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrIllegalMove, s, err)
	}
	if !b.isLegal(m) {
		return 0, fmt.Errorf("%w: %s", ErrIllegalMove, s)
	}
	return m, nil
}

func (b *Board) Turn() Color {
	if b.board.Wtomove {
		return White
	}
	return Black
}

func (b *Board) PieceAt(sq Square) (Piece, bool) {
	if sq < 0 || sq > 63 {
		return Piece{}, false
	}
	bit := uint64(1) << uint(sq)
	if b.board.White.All&bit != 0 {
		return Piece{Type: bitboardType(&b.board.White, bit), Color: White}, true
	}
	if b.board.Black.All&bit != 0 {
		return Piece{Type: bitboardType(&b.board.Black, bit), Color: Black}, true
	}
	return Piece{}, false
}

func (b *Board) IsCheckmate() bool {
	return len(b.legalMoves()) == 0 && b.board.OurKingInCheck()
}

func (b *Board) IsStalemate() bool {
	return len(b.legalMoves()) == 0 && !b.board.OurKingInCheck()
}

func (b *Board) IsInsufficientMaterial() bool {
	return insufficientMaterial(b)
}

func (b *Board) IsRepetition() bool {
	return b.seen[b.key()] >= RepetitionCount
}

func (b *Board) LegalMoves() []dragon.Move {
	return slices.Clone(b.legalMoves())
}

func (b *Board) Apply(m dragon.Move) error {
	if !b.isLegal(m) {
		return fmt.Errorf("%w: %s", ErrIllegalMove, b.MoveString(m))
	}
	unapply := b.board.Apply(m)
	b.legalValid = false
	key := b.key()
	b.frames = append(b.frames, frame{move: m, unapply: unapply, key: key})
	b.seen[key]++
	return nil
}

func (b *Board) Undo(m dragon.Move) error {
	if len(b.frames) == 0 {
		return ErrNothingToUndo
	}
	top := b.frames[len(b.frames)-1]
	if top.move != m {
		return fmt.Errorf("%w: undo %s, last applied %s", ErrUndoMismatch, b.MoveString(m), b.MoveString(top.move))
	}
	if b.seen[top.key]--; b.seen[top.key] <= 0 {
		delete(b.seen, top.key)
	}
	top.unapply()
	b.legalValid = false
	b.frames = b.frames[:len(b.frames)-1]
	return nil
}

func (b *Board) IsCapture(m dragon.Move) bool {
	from, to := b.Squares(m)
	us, them := &b.board.White, &b.board.Black
	if !b.board.Wtomove {
		us, them = them, us
	}
	toBit := uint64(1) << uint(to)
	if them.All&toBit != 0 {
		return true
	}
	// en passant: a pawn changing file onto an empty square
	return us.Pawns&(uint64(1)<<uint(from)) != 0 && from.File() != to.File()
}

func (b *Board) Squares(m dragon.Move) (from, to Square) {
	return Square(m.From()), Square(m.To())
}

func (b *Board) MoveString(m dragon.Move) string {
	return m.String()
}

func (b *Board) legalMoves() []dragon.Move {
	if !b.legalValid {
		b.legal = b.board.GenerateLegalMoves()
		b.legalValid = true
	}
	return b.legal
}

func (b *Board) isLegal(m dragon.Move) bool {
	return slices.Contains(b.legalMoves(), m)
}

// key identifies the position for repetition: placement, side to move,
// castling rights and en passant square, but not the move clocks.
func (b *Board) key() uint64 {
	return b.board.Hash()
}

func bitboardType(bb *dragon.Bitboards, bit uint64) PieceType {
	switch {
	case bb.Pawns&bit != 0:
		return Pawn
	case bb.Knights&bit != 0:
		return Knight
	case bb.Bishops&bit != 0:
		return Bishop
	case bb.Rooks&bit != 0:
		return Rook
	case bb.Queens&bit != 0:
		return Queen
	case bb.Kings&bit != 0:
		return King
	}
	return NoPieceType
}
