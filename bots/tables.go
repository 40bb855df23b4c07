package bots

import "github.com/Harikrishnan-web/AI-mini-project/rules"

// PieceValues is the material value of each piece type in centipawns. The
// king has no material value: both sides always have one.
var PieceValues = [rules.NumPieceTypes]Score{
	rules.Pawn:   100,
	rules.Knight: 320,
	rules.Bishop: 330,
	rules.Rook:   500,
	rules.Queen:  900,
	rules.King:   0,
}

// PieceSquareTable holds positional bonuses from White's point of view,
// a8 first and h1 last, as the board is printed. Black reads it mirrored.
type PieceSquareTable [64]Score

// Bonus returns the bonus for a piece of colour c on sq.
func (t *PieceSquareTable) Bonus(c rules.Color, sq rules.Square) Score {
	if t == nil {
		return 0
	}
	rank := sq.Rank()
	if c == rules.White {
		rank = 7 - rank
	}
	return t[rank*8+sq.File()]
}

var pawnTable = PieceSquareTable{
	0, 0, 0, 0, 0, 0, 0, 0,
	50, 50, 50, 50, 50, 50, 50, 50,
	10, 10, 20, 30, 30, 20, 10, 10,
	5, 5, 10, 25, 25, 10, 5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, -5, -10, 0, 0, -10, -5, 5,
	5, 10, 10, -20, -20, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightTable = PieceSquareTable{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var bishopTable = PieceSquareTable{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var rookTable = PieceSquareTable{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, 10, 10, 10, 10, 5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	0, 0, 0, 5, 5, 0, 0, 0,
}

var queenTable = PieceSquareTable{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-5, 0, 5, 5, 5, 5, 0, -5,
	0, 0, 5, 5, 5, 5, 0, -5,
	-10, 5, 5, 5, 5, 5, 0, -10,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

// middlegame king: stay behind the castled pawns
var kingTable = PieceSquareTable{
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	20, 20, 0, 0, 0, 0, 20, 20,
	20, 30, 10, 0, 0, 10, 30, 20,
}

// PieceTables are the default positional tables per piece type.
var PieceTables = [rules.NumPieceTypes]*PieceSquareTable{
	rules.Pawn:   &pawnTable,
	rules.Knight: &knightTable,
	rules.Bishop: &bishopTable,
	rules.Rook:   &rookTable,
	rules.Queen:  &queenTable,
	rules.King:   &kingTable,
}
