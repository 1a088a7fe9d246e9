package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"klondike-lite/internal/config"
	"klondike-lite/klondike"
	"klondike-lite/klondike/selector"
	"klondike-lite/replay"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	zerolog.SetGlobalLevel(cfg.Level())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, os.Args[1:], os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("klondike failed")
	}
}

func run(ctx context.Context, cfg config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("klondike", flag.ContinueOnError)
	replayPath := fs.String("replay", "", "print the replay tape for a GameSpec JSON file")
	inspect := fs.String("inspect", "", "print the position and legal moves for a state_b64 value")
	seed := fs.Int64("seed", cfg.Seed, "deal seed (0 deals the canonical order)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch {
	case *replayPath != "":
		return printReplay(*replayPath, out)
	case *inspect != "":
		got, err := replay.InspectState(*inspect)
		if err != nil {
			return err
		}
		return writeJSON(out, got)
	default:
		cfg.Seed = *seed
		return autoplay(ctx, cfg, out)
	}
}

func printReplay(path string, out io.Writer) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read spec: %w", err)
	}
	var spec replay.GameSpec
	if err := json.Unmarshal(raw, &spec); err != nil {
		return fmt.Errorf("parse spec: %w", err)
	}
	tape, err := replay.GenerateReplayTape(spec)
	if err != nil {
		return err
	}
	return writeJSON(out, replay.ToWireReplayTape(tape))
}

type autoplaySummary struct {
	Seed     int64    `json:"seed"`
	Selector string   `json:"selector"`
	Reason   string   `json:"reason"`
	Moves    []string `json:"moves"`
	Flipped  []string `json:"flipped"`
	Won      bool     `json:"won"`
}

func autoplay(ctx context.Context, cfg config.Config, out io.Writer) error {
	registry := selector.NewRegistry()
	if cfg.PersonasFile != "" {
		if err := registry.LoadFromFile(cfg.PersonasFile); err != nil {
			return err
		}
	}
	sel, err := registry.New(cfg.Selector, cfg.Seed)
	if err != nil {
		return err
	}

	game, err := klondike.Deal(klondike.DealConfig{Seed: cfg.Seed})
	if err != nil {
		return err
	}

	runner, err := selector.NewRunner(sel, selector.RunnerConfig{
		MaxDepth:     cfg.MaxDepth,
		MaxTime:      cfg.MaxTime,
		MaxMoves:     cfg.MaxMoves,
		RepeatWindow: cfg.RepeatWindow,
	}, selector.WithLogger(log.Logger.With().Int64("seed", cfg.Seed).Logger()))
	if err != nil {
		return err
	}

	res, err := runner.Run(ctx, game)
	if err != nil {
		return err
	}

	summary := autoplaySummary{
		Seed:     cfg.Seed,
		Selector: sel.Name(),
		Reason:   string(res.Reason),
		Moves:    make([]string, 0, len(res.Moves)),
		Flipped:  make([]string, 0, len(res.Flipped)),
		Won:      game.Won(),
	}
	for _, m := range res.Moves {
		summary.Moves = append(summary.Moves, m.String())
	}
	for _, c := range res.Flipped {
		summary.Flipped = append(summary.Flipped, c.Code())
	}
	return writeJSON(out, summary)
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
