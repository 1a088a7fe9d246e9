package replay

type WireReplayTape struct {
	TapeVersion int               `json:"tapeVersion"`
	TapeID      string            `json:"tapeId"`
	Events      []WireReplayEvent `json:"events"`
}

type WireReplayEvent struct {
	Type       string     `json:"type"`
	Seq        uint64     `json:"seq"`
	StepIndex  int32      `json:"stepIndex"`
	Detail     string     `json:"detail,omitempty"`
	State      *WireState `json:"state"`
	LegalMoves int        `json:"legalMoves"`
	StateB64   string     `json:"stateB64"`
}

type WireState struct {
	Foundations [][]string `json:"foundations"`
	Columns     [][]string `json:"columns"`
	Stock       []string   `json:"stock"`
	Waste       int        `json:"waste"`
	HistoryLen  int        `json:"historyLen"`
	Won         bool       `json:"won"`
}

func ToWireReplayTape(tape *ReplayTape) *WireReplayTape {
	if tape == nil {
		return nil
	}
	out := &WireReplayTape{
		TapeVersion: tape.TapeVersion,
		TapeID:      tape.TapeID,
		Events:      make([]WireReplayEvent, 0, len(tape.Events)),
	}
	for _, e := range tape.Events {
		out.Events = append(out.Events, WireReplayEvent{
			Type:       e.Type,
			Seq:        e.Seq,
			StepIndex:  e.StepIndex,
			Detail:     e.Detail,
			State:      toWireState(e.State),
			LegalMoves: e.LegalMoves,
			StateB64:   e.StateB64,
		})
	}
	return out
}

func toWireState(v *StateView) *WireState {
	if v == nil {
		return nil
	}
	return &WireState{
		Foundations: v.Foundations,
		Columns:     v.Columns,
		Stock:       v.Stock,
		Waste:       v.Waste,
		HistoryLen:  v.HistoryLen,
		Won:         v.Won,
	}
}
