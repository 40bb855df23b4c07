package bots

import (
	"github.com/Harikrishnan-web/AI-mini-project/rules"
	"github.com/notnil/chess"
)

// NewbornBot plays the first legal move the generator offers.
type NewbornBot struct{}

func NewNewbornBot() *NewbornBot {
	return &NewbornBot{}
}

func (b *NewbornBot) BestMove(game *chess.Game) (*chess.Move, error) {
	if game == nil {
		return nil, errNilGame
	}
	moves := rules.NewGame(game).LegalMoves()
	if len(moves) == 0 {
		return nil, ErrNoLegalMoves
	}
	return moves[0], nil
}

func (b *NewbornBot) Name() string {
	return "Newborn"
}
