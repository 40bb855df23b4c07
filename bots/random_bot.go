package bots

import (
	"math/rand"
	"sync"

	"github.com/Harikrishnan-web/AI-mini-project/rules"
	"github.com/notnil/chess"
)

// RandomBot plays a uniformly random legal move.
type RandomBot struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomBot(seed int64) *RandomBot {
	return &RandomBot{rng: rand.New(rand.NewSource(seed))}
}

func (b *RandomBot) BestMove(game *chess.Game) (*chess.Move, error) {
	if game == nil {
		return nil, errNilGame
	}
	moves := rules.NewGame(game).LegalMoves()
	if len(moves) == 0 {
		return nil, ErrNoLegalMoves
	}
	b.mu.Lock()
	i := b.rng.Intn(len(moves))
	b.mu.Unlock()
	return moves[i], nil
}

func (b *RandomBot) Name() string {
	return "Random Bot"
}
