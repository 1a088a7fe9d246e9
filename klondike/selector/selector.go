package selector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"klondike-lite/klondike"
)

// ErrNoMoves is returned when the game offers no legal move.
var ErrNoMoves = errors.New("no legal moves")

// Selector picks the next move for an autoplaying game.
type Selector interface {
	// Select returns one member of g.PossibleMoves(). It must not mutate g.
	Select(ctx context.Context, g *klondike.Game, maxDepth int, maxTime time.Duration) (klondike.Move, error)
	// Name returns a human-readable identifier for logs.
	Name() string
}

func validateArgs(g *klondike.Game, maxDepth int, maxTime time.Duration) error {
	if g == nil {
		return fmt.Errorf("%w: game must not be nil", klondike.ErrInvalidArgument)
	}
	if maxDepth <= 0 {
		return fmt.Errorf("%w: max depth must be > 0, got %d", klondike.ErrInvalidArgument, maxDepth)
	}
	if maxTime <= 0 {
		return fmt.Errorf("%w: max time must be > 0, got %v", klondike.ErrInvalidArgument, maxTime)
	}
	return nil
}

// legalMoves returns the sorted legal moves or ErrNoMoves.
func legalMoves(g *klondike.Game) ([]klondike.Move, error) {
	moves := g.PossibleMoves().Sorted()
	if len(moves) == 0 {
		return nil, ErrNoMoves
	}
	return moves, nil
}
