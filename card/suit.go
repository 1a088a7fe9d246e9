package card

type Suit byte

const (
	Spade   Suit = iota // ♠️ black
	Heart               // ♥️ red
	Club                // ♣️ black
	Diamond             // ♦️ red
)

func (s Suit) String() string {
	switch s {
	case Diamond:
		return "♦️"
	case Club:
		return "♣️"
	case Heart:
		return "♥️"
	case Spade:
		return "♠️"
	}
	return "?"
}

// Letter is the single-letter code used by Parse.
func (s Suit) Letter() string {
	switch s {
	case Diamond:
		return "d"
	case Club:
		return "c"
	case Heart:
		return "h"
	case Spade:
		return "s"
	}
	return "?"
}

func (s Suit) IsRed() bool { return s == Heart || s == Diamond }
