package replay

// GameSpec describes a starting position and the steps to play from it. At
// most one of Deal, Layout and StateB64 may be set; none means the canonical deal.
type GameSpec struct {
	Deal     *DealSpec   `json:"deal,omitempty"`
	Layout   *LayoutSpec `json:"layout,omitempty"`
	StateB64 string      `json:"state_b64,omitempty"`
	Steps    []StepSpec  `json:"steps"`
}

type DealSpec struct {
	Seed int64    `json:"seed"`
	Deck []string `json:"deck,omitempty"`
}

// LayoutSpec lists every pile bottom first. "??" is a face-down card.
// Waste defaults to the last stock card.
type LayoutSpec struct {
	Foundations [][]string `json:"foundations"`
	Columns     [][]string `json:"columns"`
	Stock       []string   `json:"stock"`
	Waste       *int       `json:"waste,omitempty"`
}

// Step types.
const (
	StepMove   = "move"
	StepUndo   = "undo"
	StepReveal = "reveal"
	StepFlip   = "flip"
)

type StepSpec struct {
	Type   string `json:"type"`
	Card   string `json:"card,omitempty"`
	To     string `json:"to,omitempty"`
	Column int    `json:"column,omitempty"`
	Index  int    `json:"index,omitempty"`
}

type ReplayTape struct {
	TapeVersion int           `json:"tape_version"`
	TapeID      string        `json:"tape_id"`
	Events      []ReplayEvent `json:"events"`
}

type ReplayEvent struct {
	Type       string     `json:"type"`
	Seq        uint64     `json:"seq"`
	StepIndex  int32      `json:"step_index"`
	Detail     string     `json:"detail,omitempty"`
	State      *StateView `json:"state"`
	LegalMoves int        `json:"legal_moves"`
	StateB64   string     `json:"state_b64"`
}

// StateView is a game snapshot with cards rendered as codes.
type StateView struct {
	Foundations [][]string `json:"foundations"`
	Columns     [][]string `json:"columns"`
	Stock       []string   `json:"stock"`
	Waste       int        `json:"waste"`
	HistoryLen  int        `json:"history_len"`
	Won         bool       `json:"won"`
}
