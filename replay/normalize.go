package replay

import (
	"encoding/base64"
	"fmt"
	"strings"

	"klondike-lite/card"
	"klondike-lite/klondike"
)

type normalizedStep struct {
	kind   string
	move   klondike.Move
	card   card.Card
	column int
	index  int
}

type normalizedSpec struct {
	// exactly one start is set
	deal   *klondike.DealConfig
	layout *klondike.Snapshot

	// reported when layout does not form a game
	layoutReason string

	steps []normalizedStep
}

func normalizeSpec(spec GameSpec) (normalizedSpec, error) {
	var out normalizedSpec

	starts := 0
	if spec.Deal != nil {
		starts++
	}
	if spec.Layout != nil {
		starts++
	}
	if spec.StateB64 != "" {
		starts++
	}
	if starts > 1 {
		return out, &ReplayError{StepIndex: -1, Reason: "invalid_start", Message: "at most one of deal, layout and state_b64 may be set"}
	}

	switch {
	case spec.Layout != nil:
		snap, err := parseLayout(*spec.Layout)
		if err != nil {
			return out, err
		}
		out.layout = &snap
		out.layoutReason = "invalid_layout"
	case spec.StateB64 != "":
		raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(spec.StateB64))
		if err != nil {
			return out, &ReplayError{StepIndex: -1, Reason: "invalid_state", Message: err.Error()}
		}
		snap, err := klondike.SnapshotFromKey(raw)
		if err != nil {
			return out, &ReplayError{StepIndex: -1, Reason: "invalid_state", Message: err.Error()}
		}
		out.layout = &snap
		out.layoutReason = "invalid_state"
	default:
		cfg := klondike.DealConfig{}
		if spec.Deal != nil {
			cfg.Seed = spec.Deal.Seed
			if len(spec.Deal.Deck) > 0 {
				deck, err := card.ParseList(spec.Deal.Deck)
				if err != nil {
					return out, &ReplayError{StepIndex: -1, Reason: "invalid_deck_card", Message: err.Error()}
				}
				cfg.Deck = deck
			}
		}
		out.deal = &cfg
	}

	out.steps = make([]normalizedStep, 0, len(spec.Steps))
	for i, s := range spec.Steps {
		step, err := parseStep(s)
		if err != nil {
			return out, &ReplayError{StepIndex: int32(i), Reason: "invalid_step", Message: err.Error()}
		}
		out.steps = append(out.steps, step)
	}
	return out, nil
}

func parseLayout(l LayoutSpec) (klondike.Snapshot, error) {
	snap := klondike.Snapshot{Waste: -1}
	for i, raw := range l.Foundations {
		cards, err := card.ParseList(raw)
		if err != nil {
			return snap, &ReplayError{StepIndex: -1, Reason: "invalid_layout", Message: fmt.Sprintf("foundation %d: %v", i, err)}
		}
		snap.Foundations = append(snap.Foundations, cards)
	}
	for i, raw := range l.Columns {
		cards, err := card.ParseList(raw)
		if err != nil {
			return snap, &ReplayError{StepIndex: -1, Reason: "invalid_layout", Message: fmt.Sprintf("column %d: %v", i, err)}
		}
		snap.Columns = append(snap.Columns, cards)
	}
	stock, err := card.ParseList(l.Stock)
	if err != nil {
		return snap, &ReplayError{StepIndex: -1, Reason: "invalid_layout", Message: fmt.Sprintf("stock: %v", err)}
	}
	snap.Stock = stock
	snap.Waste = len(stock) - 1
	if l.Waste != nil {
		snap.Waste = *l.Waste
	}
	return snap, nil
}

func parseStep(s StepSpec) (normalizedStep, error) {
	kind := strings.ToLower(strings.TrimSpace(s.Type))
	step := normalizedStep{kind: kind, column: s.Column, index: s.Index}

	switch kind {
	case StepUndo:
		return step, nil
	case StepFlip:
		if s.Column < 0 {
			return step, fmt.Errorf("flip column must be >= 0, got %d", s.Column)
		}
		return step, nil
	case StepMove:
		c, err := parseKnownCard(s.Card)
		if err != nil {
			return step, fmt.Errorf("card: %w", err)
		}
		step.move = klondike.MoveToEmpty(c)
		if strings.TrimSpace(s.To) != "" {
			to, err := parseKnownCard(s.To)
			if err != nil {
				return step, fmt.Errorf("to: %w", err)
			}
			step.move = klondike.MoveTo(c, to)
		}
		return step, nil
	case StepReveal:
		c, err := parseKnownCard(s.Card)
		if err != nil {
			return step, fmt.Errorf("card: %w", err)
		}
		if s.Column < 0 || s.Index < 0 {
			return step, fmt.Errorf("reveal position (%d, %d) must be >= 0", s.Column, s.Index)
		}
		step.card = c
		return step, nil
	default:
		return step, fmt.Errorf("unknown step type %q", s.Type)
	}
}

func parseKnownCard(s string) (card.Card, error) {
	c, err := card.Parse(s)
	if err != nil {
		return card.CardInvalid, err
	}
	if c.IsUnknown() {
		return card.CardInvalid, fmt.Errorf("%q is not a known card", s)
	}
	return c, nil
}
