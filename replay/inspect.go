package replay

import (
	"encoding/base64"
	"strings"

	"klondike-lite/klondike"
)

// Inspection is a decoded position plus the moves it allows.
type Inspection struct {
	State      *StateView `json:"state"`
	LegalMoves []string   `json:"legal_moves"`
}

// InspectState decodes a StateB64 value as found on tape events.
func InspectState(stateB64 string) (*Inspection, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(stateB64))
	if err != nil {
		return nil, &ReplayError{StepIndex: -1, Reason: "invalid_state", Message: err.Error()}
	}
	snap, err := klondike.SnapshotFromKey(raw)
	if err != nil {
		return nil, &ReplayError{StepIndex: -1, Reason: "invalid_state", Message: err.Error()}
	}
	g, err := klondike.FromSnapshot(snap)
	if err != nil {
		return nil, &ReplayError{StepIndex: -1, Reason: "invalid_state", Message: err.Error()}
	}
	return &Inspection{
		State:      toStateView(g.Snapshot(), g.Won()),
		LegalMoves: expectedState(g).LegalMoves,
	}, nil
}
