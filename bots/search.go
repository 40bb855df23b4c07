package bots

import (
	"errors"
	"fmt"

	"github.com/Harikrishnan-web/AI-mini-project/rules"
)

var (
	ErrNoLegalMoves  = errors.New("search: no legal moves at the root")
	ErrNegativeDepth = errors.New("search: negative depth")
)

// Stats counts the work done by one Search call.
type Stats struct {
	Nodes   uint64 // positions visited, root included
	Leaves  uint64 // positions scored by the evaluator
	Cutoffs uint64 // move loops abandoned by alpha-beta
}

// Result is the outcome of a search. HasMove is false only for depth 0,
// where the root is evaluated without choosing a move.
type Result[M comparable] struct {
	Move    M
	Score   Score
	HasMove bool
	Stats   Stats
}

// Searcher runs a fixed-depth minimax with alpha-beta pruning over a Rules
// implementation. A Searcher is not safe for concurrent use; give each
// goroutine its own Searcher and its own position.
type Searcher[M comparable] struct {
	Evaluator PositionEvaluator
	// Ordering sorts captures first, most valuable victim first.
	Ordering bool
	// Pruning enables alpha-beta cutoffs. Without it the search is a plain
	// minimax over the full tree.
	Pruning bool
	// OnMove, if set, is called before each move is applied. ply is 0 at the root.
	OnMove func(ply int, m M)

	stats Stats
}

func NewSearcher[M comparable]() *Searcher[M] {
	return &Searcher[M]{
		Evaluator: NewEvaluator(),
		Ordering:  true,
		Pruning:   true,
	}
}

// Search returns the best move for the side to move and its score. Scores
// are from White's point of view, so maximizing is normally true exactly
// when White is to move. The position is left exactly as it was given.
//
// The first move reaching the best score wins; with ordering enabled that
// is the first in capture order, otherwise the first in generator order.
func (s *Searcher[M]) Search(r rules.Rules[M], depth int, maximizing bool) (res Result[M], err error) {
	if depth < 0 {
		return res, fmt.Errorf("%w: %d", ErrNegativeDepth, depth)
	}
	s.stats = Stats{}
	defer func() { res.Stats = s.stats }()

	if depth == 0 {
		s.stats.Nodes++
		s.stats.Leaves++
		res.Score = s.evaluator().Evaluate(r)
		return res, nil
	}

	moves := r.LegalMoves()
	if len(moves) == 0 {
		return res, ErrNoLegalMoves
	}
	s.stats.Nodes++

	alpha, beta := -ScoreInfinity, ScoreInfinity
	res.Score = worstScore(maximizing)
	for _, m := range s.order(r, moves) {
		score, err := s.try(r, m, 0, depth, alpha, beta, maximizing)
		if err != nil {
			return Result[M]{}, err
		}
		if better(score, res.Score, maximizing) || !res.HasMove {
			res.Move, res.Score, res.HasMove = m, score, true
		}
		if maximizing {
			alpha = max(alpha, res.Score)
		} else {
			beta = min(beta, res.Score)
		}
	}
	return res, nil
}

func (s *Searcher[M]) minimax(r rules.Rules[M], depth, ply int, alpha, beta Score, maximizing bool) (Score, error) {
	s.stats.Nodes++
	if depth == 0 || rules.IsTerminal(r) {
		s.stats.Leaves++
		return s.evaluator().Evaluate(r), nil
	}
	moves := r.LegalMoves()
	if len(moves) == 0 {
		s.stats.Leaves++
		return s.evaluator().Evaluate(r), nil
	}

	best := worstScore(maximizing)
	for _, m := range s.order(r, moves) {
		score, err := s.try(r, m, ply, depth, alpha, beta, maximizing)
		if err != nil {
			return 0, err
		}
		if better(score, best, maximizing) {
			best = score
		}
		if maximizing {
			alpha = max(alpha, best)
		} else {
			beta = min(beta, best)
		}
		if s.Pruning && beta <= alpha {
			s.stats.Cutoffs++
			break
		}
	}
	return best, nil
}

// try applies m, searches the child and undoes m again, also when the child
// search failed.
func (s *Searcher[M]) try(r rules.Rules[M], m M, ply, depth int, alpha, beta Score, maximizing bool) (Score, error) {
	if s.OnMove != nil {
		s.OnMove(ply, m)
	}
	if err := r.Apply(m); err != nil {
		return 0, fmt.Errorf("apply %s at ply %d: %w", r.MoveString(m), ply, err)
	}
	score, err := s.minimax(r, depth-1, ply+1, alpha, beta, !maximizing)
	if uerr := r.Undo(m); uerr != nil {
		return 0, errors.Join(err, fmt.Errorf("undo %s at ply %d: %w", r.MoveString(m), ply, uerr))
	}
	return score, err
}

func (s *Searcher[M]) order(r rules.Rules[M], moves []M) []M {
	if !s.Ordering {
		return moves
	}
	return OrderMoves(r, moves)
}

func (s *Searcher[M]) evaluator() PositionEvaluator {
	if s.Evaluator == nil {
		s.Evaluator = NewEvaluator()
	}
	return s.Evaluator
}

func worstScore(maximizing bool) Score {
	if maximizing {
		return -ScoreInfinity
	}
	return ScoreInfinity
}

// better is strict so that ties keep the earlier move.
func better(score, best Score, maximizing bool) bool {
	if maximizing {
		return score > best
	}
	return score < best
}
