package selector

// Profile holds the tunable weights of a RuleSelector.
type Profile struct {
	Foundation float64 `json:"foundation"` // per card on a foundation
	Reveal     float64 `json:"reveal"`     // per column whose top is face down and can be flipped
	Empty      float64 `json:"empty"`      // per empty column
	Stock      float64 `json:"stock"`      // penalty per card left in the stock
	Randomness float64 `json:"randomness"` // 0.0–1.0: decision noise
}

// Persona is a named Profile, loadable from JSON.
type Persona struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Profile Profile `json:"profile"`
}

// DefaultProfile favours foundations, then flips, then clearing the stock.
var DefaultProfile = Profile{
	Foundation: 10,
	Reveal:     6,
	Empty:      2,
	Stock:      0.5,
	Randomness: 0,
}
