package bots

import (
	"fmt"

	"github.com/Harikrishnan-web/AI-mini-project/rules"
	"github.com/notnil/chess"
)

// MinimaxBot searches a fixed number of plies with alpha-beta pruning.
type MinimaxBot struct {
	Depth    int
	Searcher *Searcher[*chess.Move]
}

func NewMinimaxBot(depth int) *MinimaxBot {
	return &MinimaxBot{
		Depth:    depth,
		Searcher: NewSearcher[*chess.Move](),
	}
}

func (b *MinimaxBot) Name() string {
	return fmt.Sprintf("Minimax Bot (depth %d)", b.Depth)
}

func (b *MinimaxBot) BestMove(game *chess.Game) (*chess.Move, error) {
	res, err := b.Analyze(game)
	if err != nil {
		return nil, err
	}
	return res.Move, nil
}

// Analyze searches the current position of game and returns the full result.
func (b *MinimaxBot) Analyze(game *chess.Game) (Result[*chess.Move], error) {
	if game == nil {
		return Result[*chess.Move]{}, errNilGame
	}
	if b.Depth < 1 {
		return Result[*chess.Move]{}, fmt.Errorf("%s: depth must be at least 1", b.Name())
	}
	if b.Searcher == nil {
		b.Searcher = NewSearcher[*chess.Move]()
	}
	r := rules.NewGame(game)
	return b.Searcher.Search(r, b.Depth, r.Turn() == rules.White)
}
