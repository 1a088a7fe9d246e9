package selector

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"klondike-lite/klondike"
)

// RandomSelector draws uniformly from the sorted legal moves.
type RandomSelector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomSelector(seed int64) *RandomSelector {
	return &RandomSelector{rng: rand.New(rand.NewSource(seed))}
}

func (s *RandomSelector) Name() string { return "random" }

func (s *RandomSelector) Select(ctx context.Context, g *klondike.Game, maxDepth int, maxTime time.Duration) (klondike.Move, error) {
	if err := validateArgs(g, maxDepth, maxTime); err != nil {
		return klondike.Move{}, err
	}
	if err := ctx.Err(); err != nil {
		return klondike.Move{}, err
	}
	moves, err := legalMoves(g)
	if err != nil {
		return klondike.Move{}, err
	}

	s.mu.Lock()
	idx := s.rng.Intn(len(moves))
	s.mu.Unlock()
	return moves[idx], nil
}
