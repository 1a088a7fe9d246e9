package selector

import (
	"context"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"

	"klondike-lite/card"
	"klondike-lite/klondike"
)

// StopReason says why a Runner returned.
type StopReason string

const (
	StopWon   StopReason = "won"
	StopStuck StopReason = "stuck"
	StopLimit StopReason = "limit"
	StopCycle StopReason = "cycle"
)

// RunnerConfig bounds an autoplay session.
type RunnerConfig struct {
	MaxDepth int
	MaxTime  time.Duration // per decision
	MaxMoves int
	// RepeatWindow is how many recent positions are remembered to detect cycles.
	RepeatWindow int
}

func (c RunnerConfig) validate() error {
	if c.MaxDepth <= 0 || c.MaxTime <= 0 || c.MaxMoves <= 0 || c.RepeatWindow <= 0 {
		return fmt.Errorf("%w: runner budgets must be > 0: %+v", klondike.ErrInvalidArgument, c)
	}
	return nil
}

// Result summarises a finished run.
type Result struct {
	Reason  StopReason
	Moves   []klondike.Move
	Flipped []card.Card
}

// Runner drives a game with a Selector until it is won, stuck, repeats a
// recent position, or hits the move limit.
type Runner struct {
	sel Selector
	cfg RunnerConfig
	log zerolog.Logger
}

type RunnerOption func(*Runner)

// WithLogger sets the logger; the default discards everything.
func WithLogger(l zerolog.Logger) RunnerOption {
	return func(r *Runner) { r.log = l }
}

func NewRunner(sel Selector, cfg RunnerConfig, opts ...RunnerOption) (*Runner, error) {
	if sel == nil {
		return nil, fmt.Errorf("%w: selector must not be nil", klondike.ErrInvalidArgument)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	r := &Runner{sel: sel, cfg: cfg, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run plays g in place. Face-down column tops whose identity the deal knows
// are flipped after every move.
func (r *Runner) Run(ctx context.Context, g *klondike.Game) (Result, error) {
	if g == nil {
		return Result{}, fmt.Errorf("%w: game must not be nil", klondike.ErrInvalidArgument)
	}
	seen, err := lru.New[uint64, int](r.cfg.RepeatWindow)
	if err != nil {
		return Result{}, err
	}

	var res Result
	res.Flipped = append(res.Flipped, r.flip(g)...)
	seen.Add(g.Hash(), 0)

	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if g.Won() {
			res.Reason = StopWon
			break
		}
		if len(res.Moves) >= r.cfg.MaxMoves {
			res.Reason = StopLimit
			break
		}

		m, err := r.sel.Select(ctx, g, r.cfg.MaxDepth, r.cfg.MaxTime)
		if errors.Is(err, ErrNoMoves) {
			res.Reason = StopStuck
			break
		}
		if err != nil {
			return res, fmt.Errorf("select move %d: %w", len(res.Moves)+1, err)
		}
		if err := g.MakeMove(m); err != nil {
			return res, fmt.Errorf("apply %v from %s: %w", m, r.sel.Name(), err)
		}
		res.Moves = append(res.Moves, m)

		flipped := r.flip(g)
		res.Flipped = append(res.Flipped, flipped...)

		r.log.Debug().
			Str("selector", r.sel.Name()).
			Int("step", len(res.Moves)).
			Stringer("move", m).
			Int("flipped", len(flipped)).
			Msg("move applied")

		h := g.Hash()
		if seen.Contains(h) {
			res.Reason = StopCycle
			break
		}
		seen.Add(h, len(res.Moves))
	}

	r.log.Info().
		Str("selector", r.sel.Name()).
		Str("reason", string(res.Reason)).
		Int("moves", len(res.Moves)).
		Int("flipped", len(res.Flipped)).
		Msg("autoplay finished")
	return res, nil
}

// flip turns over every known face-down top. A column that cannot be flipped
// stays face down and play continues.
func (r *Runner) flip(g *klondike.Game) []card.Card {
	flipped, err := g.FlipTops()
	if err != nil {
		r.log.Warn().Err(err).Str("selector", r.sel.Name()).Msg("flip skipped")
	}
	return flipped
}
