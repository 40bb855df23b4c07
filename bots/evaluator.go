package bots

import (
	"math"

	"github.com/Harikrishnan-web/AI-mini-project/rules"
)

// Score is an evaluation in centipawns from White's point of view.
type Score int

const (
	// ScoreMate is returned for checkmate: -ScoreMate when White is mated,
	// +ScoreMate when Black is. It dominates every material+positional sum.
	ScoreMate     Score = 100000
	ScoreDraw     Score = 0
	ScoreInfinity Score = math.MaxInt32
)

// PositionEvaluator scores a position from White's point of view.
type PositionEvaluator interface {
	Evaluate(pos rules.Position) Score
}

// Evaluator sums material and piece-square bonuses. A nil table contributes
// material only.
type Evaluator struct {
	Material [rules.NumPieceTypes]Score
	Tables   [rules.NumPieceTypes]*PieceSquareTable
}

func NewEvaluator() *Evaluator {
	return &Evaluator{
		Material: PieceValues,
		Tables:   PieceTables,
	}
}

// Evaluate never mutates pos. The mate sign is absolute: it depends on who is
// mated, not on which side the search is maximizing for.
func (e *Evaluator) Evaluate(pos rules.Position) Score {
	if pos.IsCheckmate() {
		if pos.Turn() == rules.White {
			return -ScoreMate
		}
		return ScoreMate
	}
	if pos.IsStalemate() || pos.IsInsufficientMaterial() || pos.IsRepetition() {
		return ScoreDraw
	}

	var score Score
	for sq := rules.Square(0); sq < 64; sq++ {
		p, ok := pos.PieceAt(sq)
		if !ok {
			continue
		}
		v := e.Material[p.Type] + e.Tables[p.Type].Bonus(p.Color, sq)
		if p.Color == rules.White {
			score += v
		} else {
			score -= v
		}
	}
	return score
}
