package klondike

import (
	"fmt"
	"sort"

	"klondike-lite/card"
)

const (
	NumColumns     = 7
	NumFoundations = 4
	// MaxColumnCards: at most 6 face-down cards under a King run of 13.
	MaxColumnCards = 7 + 12
	StockDealSize  = 24
)

// Move is a value: the moved card plus the identifying top card of the
// destination. A zero Destination means "no destination": a King to any empty
// column or an Ace to any empty foundation.
type Move struct {
	Card        card.Card
	Destination card.Card
}

func MoveTo(c, destination card.Card) Move { return Move{Card: c, Destination: destination} }

func MoveToEmpty(c card.Card) Move { return Move{Card: c} }

func (m Move) HasDestination() bool { return m.Destination != card.CardInvalid }

func (m Move) Validate() error {
	if !m.Card.IsConcrete() {
		return invalidArgument("moved card %v must be a known card", m.Card)
	}
	if m.HasDestination() && !m.Destination.IsConcrete() {
		return invalidArgument("destination %v must be a known card", m.Destination)
	}
	return nil
}

func (m Move) String() string {
	if !m.HasDestination() {
		return fmt.Sprintf("%v->empty", m.Card)
	}
	return fmt.Sprintf("%v->%v", m.Card, m.Destination)
}

// MoveSet collapses duplicate moves.
type MoveSet map[Move]struct{}

func (s MoveSet) Add(m Move) { s[m] = struct{}{} }

func (s MoveSet) Contains(m Move) bool {
	_, ok := s[m]
	return ok
}

func (s MoveSet) Len() int { return len(s) }

// Sorted returns the moves ordered by card, then destination.
func (s MoveSet) Sorted() []Move {
	out := make([]Move, 0, len(s))
	for m := range s {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Card != out[j].Card {
			return out[i].Card < out[j].Card
		}
		return out[i].Destination < out[j].Destination
	})
	return out
}

// ContainerKind 牌堆类型
type ContainerKind byte

const (
	KindColumn     ContainerKind = 1
	KindFoundation ContainerKind = 2
	KindStock      ContainerKind = 3
)

var ContainerKindDictionary = map[ContainerKind]string{
	KindColumn:     "column",
	KindFoundation: "foundation",
	KindStock:      "stock",
}

func (k ContainerKind) String() string {
	if name, ok := ContainerKindDictionary[k]; ok {
		return name
	}
	return "unknown"
}

// ContainerID locates a container inside a Game.
type ContainerID struct {
	Kind  ContainerKind
	Index int
}

func (id ContainerID) String() string { return fmt.Sprintf("%s[%d]", id.Kind, id.Index) }

// UndoInfo is the inverse of one applied move. It holds ids and positions
// only, never container references.
type UndoInfo struct {
	Source      ContainerID
	Destination ContainerID
	// Count is the number of cards that travelled.
	Count int
	// Index and Waste are set by the stock: the position the card was taken
	// from and the waste pointer before the move.
	Index int
	Waste int
	// Covered is set by a column when the moved cards lay on a face-down card.
	Covered bool
}

type historyRecord struct {
	move Move
	info UndoInfo
}
