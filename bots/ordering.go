package bots

import (
	"slices"

	"github.com/Harikrishnan-web/AI-mini-project/rules"
)

// CaptureBonus lifts every capture above every quiet move.
const CaptureBonus Score = 1000

// MovePriority is the ordering key of m: the captured piece's value plus
// CaptureBonus for captures, zero otherwise.
func MovePriority[M comparable](r rules.Rules[M], m M) Score {
	if !r.IsCapture(m) {
		return 0
	}
	_, to := r.Squares(m)
	victim := rules.Pawn // en passant lands on an empty square
	if p, ok := r.PieceAt(to); ok {
		victim = p.Type
	}
	return PieceValues[victim] + CaptureBonus
}

// OrderMoves returns moves sorted by descending priority. Equal priorities
// keep the generator's order, so the result is deterministic.
func OrderMoves[M comparable](r rules.Rules[M], moves []M) []M {
	type keyed struct {
		move     M
		priority Score
	}
	ks := make([]keyed, len(moves))
	for i, m := range moves {
		ks[i] = keyed{m, MovePriority(r, m)}
	}
	slices.SortStableFunc(ks, func(a, b keyed) int {
		return int(b.priority - a.priority)
	})
	ordered := make([]M, len(ks))
	for i, k := range ks {
		ordered[i] = k.move
	}
	return ordered
}
