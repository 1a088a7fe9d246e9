package replay

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"klondike-lite/card"
	"klondike-lite/klondike"
)

const tapeVersion = 1

// tapeNamespace seeds tape ids so the same spec always yields the same id.
var tapeNamespace = uuid.MustParse("6f0b7c52-8a1e-4d0c-9a53-3f2b1c7de401")

// Event types.
const (
	EventSnapshot = "snapshot"
	EventMove     = "move"
	EventUndo     = "undo"
	EventReveal   = "reveal"
	EventFlip     = "flip"
)

func GenerateReplayTape(spec GameSpec) (*ReplayTape, error) {
	ns, err := normalizeSpec(spec)
	if err != nil {
		return nil, err
	}

	game, err := startGame(ns)
	if err != nil {
		return nil, err
	}

	builder := newTapeBuilder()
	builder.push(EventSnapshot, -1, "", game)

	for stepIdx, step := range ns.steps {
		idx := int32(stepIdx)
		switch step.kind {
		case StepMove:
			if err := game.MakeMove(step.move); err != nil {
				return nil, &ReplayError{
					StepIndex: idx,
					Reason:    "illegal_move",
					Message:   err.Error(),
					Expected:  expectedState(game),
				}
			}
			builder.push(EventMove, idx, step.move.String(), game)

		case StepUndo:
			last, _ := game.LastMove()
			if err := game.UndoMove(); err != nil {
				reason := "undo_failed"
				if errors.Is(err, klondike.ErrEmptyHistory) {
					reason = "empty_history"
				}
				return nil, &ReplayError{StepIndex: idx, Reason: reason, Message: err.Error()}
			}
			builder.push(EventUndo, idx, last.String(), game)

		case StepReveal:
			if err := game.Reveal(step.column, step.index, step.card); err != nil {
				return nil, &ReplayError{StepIndex: idx, Reason: "reveal_failed", Message: err.Error()}
			}
			builder.push(EventReveal, idx, fmt.Sprintf("%s at column[%d][%d]", step.card.Code(), step.column, step.index), game)

		case StepFlip:
			c, err := game.FlipTop(step.column)
			if err != nil {
				return nil, &ReplayError{StepIndex: idx, Reason: "flip_failed", Message: err.Error()}
			}
			builder.push(EventFlip, idx, fmt.Sprintf("%s at column[%d]", c.Code(), step.column), game)
		}
	}

	return &ReplayTape{
		TapeVersion: tapeVersion,
		TapeID:      tapeID(spec),
		Events:      builder.events,
	}, nil
}

func startGame(ns normalizedSpec) (*klondike.Game, error) {
	if ns.layout != nil {
		g, err := klondike.FromSnapshot(*ns.layout)
		if err != nil {
			return nil, &ReplayError{StepIndex: -1, Reason: ns.layoutReason, Message: err.Error()}
		}
		return g, nil
	}
	g, err := klondike.Deal(*ns.deal)
	if err != nil {
		return nil, &ReplayError{StepIndex: -1, Reason: "invalid_deck", Message: err.Error()}
	}
	return g, nil
}

func expectedState(g *klondike.Game) *ExpectedState {
	moves := g.PossibleMoves().Sorted()
	legal := make([]string, 0, len(moves))
	for _, m := range moves {
		legal = append(legal, m.String())
	}
	return &ExpectedState{LegalMoves: legal, HistoryLen: g.HistoryLen()}
}

func tapeID(spec GameSpec) string {
	raw, err := json.Marshal(spec)
	if err != nil {
		return uuid.Nil.String()
	}
	return uuid.NewSHA1(tapeNamespace, raw).String()
}

type tapeBuilder struct {
	seq    uint64
	events []ReplayEvent
}

func newTapeBuilder() *tapeBuilder {
	return &tapeBuilder{events: make([]ReplayEvent, 0, 64)}
}

func (b *tapeBuilder) push(eventType string, stepIndex int32, detail string, g *klondike.Game) {
	b.seq++
	snap := g.Snapshot()
	b.events = append(b.events, ReplayEvent{
		Type:       eventType,
		Seq:        b.seq,
		StepIndex:  stepIndex,
		Detail:     detail,
		State:      toStateView(snap, g.Won()),
		LegalMoves: g.PossibleMoves().Len(),
		StateB64:   base64.StdEncoding.EncodeToString(snap.Key()),
	})
}

func toStateView(s klondike.Snapshot, won bool) *StateView {
	v := &StateView{
		Foundations: make([][]string, len(s.Foundations)),
		Columns:     make([][]string, len(s.Columns)),
		Stock:       cardCodes(s.Stock),
		Waste:       s.Waste,
		HistoryLen:  s.HistoryLen,
		Won:         won,
	}
	for i, f := range s.Foundations {
		v.Foundations[i] = cardCodes(f)
	}
	for i, col := range s.Columns {
		v.Columns[i] = cardCodes(col)
	}
	return v
}

func cardCodes(cards []card.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Code()
	}
	return out
}
