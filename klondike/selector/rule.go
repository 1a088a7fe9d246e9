package selector

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"klondike-lite/klondike"
)

// RuleSelector scores each legal move by a depth-limited lookahead over a
// weighted position evaluation.
type RuleSelector struct {
	Persona *Persona

	mu  sync.Mutex
	rng *rand.Rand
}

// NewRuleSelector creates a RuleSelector from a persona definition.
func NewRuleSelector(persona *Persona, seed int64) *RuleSelector {
	if persona == nil {
		persona = &Persona{ID: "greedy", Name: "greedy", Profile: DefaultProfile}
	}
	return &RuleSelector{
		Persona: persona,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

func (s *RuleSelector) Name() string { return s.Persona.Name }

// Select evaluates every legal move on a private copy of g. When maxTime
// runs out the best move found so far wins; if none was scored yet the
// context error is returned.
func (s *RuleSelector) Select(ctx context.Context, g *klondike.Game, maxDepth int, maxTime time.Duration) (klondike.Move, error) {
	if err := validateArgs(g, maxDepth, maxTime); err != nil {
		return klondike.Move{}, err
	}
	ctx, cancel := context.WithTimeout(ctx, maxTime)
	defer cancel()

	moves, err := legalMoves(g)
	if err != nil {
		return klondike.Move{}, err
	}

	work := g.DeepCopy()
	best, bestScore, scored := moves[0], math.Inf(-1), 0
	for _, m := range moves {
		if err := ctx.Err(); err != nil {
			if scored == 0 {
				return klondike.Move{}, err
			}
			break
		}
		if err := work.MakeMove(m); err != nil {
			continue
		}
		v := s.search(ctx, work, maxDepth-1)
		if err := work.UndoMove(); err != nil {
			return klondike.Move{}, err
		}
		v += s.noise()
		scored++
		if v > bestScore {
			best, bestScore = m, v
		}
	}
	return best, nil
}

// search returns the best evaluation reachable within depth further moves.
func (s *RuleSelector) search(ctx context.Context, g *klondike.Game, depth int) float64 {
	best := s.evaluate(g.Snapshot())
	if depth <= 0 {
		return best
	}
	for _, m := range g.PossibleMoves().Sorted() {
		if ctx.Err() != nil {
			break
		}
		if err := g.MakeMove(m); err != nil {
			continue
		}
		v := s.search(ctx, g, depth-1)
		if err := g.UndoMove(); err != nil {
			break
		}
		if v > best {
			best = v
		}
	}
	return best
}

func (s *RuleSelector) evaluate(snap klondike.Snapshot) float64 {
	p := s.Persona.Profile

	var foundation, flippable, empty int
	for _, f := range snap.Foundations {
		foundation += len(f)
	}
	for _, col := range snap.Columns {
		if len(col) == 0 {
			empty++
			continue
		}
		if col[len(col)-1].IsUnknown() {
			flippable++
		}
	}
	return p.Foundation*float64(foundation) +
		p.Reveal*float64(flippable) +
		p.Empty*float64(empty) -
		p.Stock*float64(len(snap.Stock))
}

func (s *RuleSelector) noise() float64 {
	r := s.Persona.Profile.Randomness
	if r <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return (s.rng.Float64() - 0.5) * r
}
