// bot.go
package bots

import (
	"errors"
	"time"

	"github.com/notnil/chess"
)

var errNilGame = errors.New("bots: nil game")

// ChessBot picks a move for the side to move in game. Implementations must
// not modify game.
type ChessBot interface {
	BestMove(game *chess.Game) (*chess.Move, error)
	Name() string
}

// DefaultRoster is the set of bots offered to a player, weakest first. The
// strongest searches one ply deeper than depth.
func DefaultRoster(depth int) []ChessBot {
	return []ChessBot{
		NewNewbornBot(),
		NewRandomBot(time.Now().UnixNano()),
		NewMinimaxBot(depth),
		NewMinimaxBot(depth + 1),
	}
}
