package klondike

import (
	"strings"

	"klondike-lite/card"
)

// Foundation is a single-suit pile built upward from the Ace.
type Foundation struct {
	cards card.CardList
}

var _ Container = (*Foundation)(nil)

func NewFoundation(cards ...card.Card) (*Foundation, error) {
	for _, c := range cards {
		if err := c.Validate(); err != nil {
			return nil, err
		}
	}
	if len(cards) > 0 && !cards[0].IsAce() {
		return nil, invalidArgument("foundation must start with an Ace, got %v", cards[0])
	}
	if !isFoundationRun(cards) {
		return nil, invalidArgument("invalid foundation sequence %v", cards)
	}
	f := &Foundation{cards: make(card.CardList, 0, card.King)}
	f.cards.Add(cards...)
	return f, nil
}

// NewFoundationUpTo builds Ace..top of top's suit.
func NewFoundationUpTo(top card.Card) (*Foundation, error) {
	if err := top.Validate(); err != nil {
		return nil, err
	}
	if top.IsUnknown() {
		return nil, invalidArgument("cannot build a foundation up to an unknown card")
	}
	ace := top &^ card.RankMask | card.Ace
	cards := make([]card.Card, 0, top.Rank())
	for c := ace; c <= top; c++ {
		cards = append(cards, c)
	}
	return NewFoundation(cards...)
}

func (f *Foundation) Kind() ContainerKind { return KindFoundation }

func (f *Foundation) IsEmpty() bool { return f.cards.Count() == 0 }

func (f *Foundation) Count() int { return f.cards.Count() }

func (f *Foundation) Cards() []card.Card { return cloneCards(f.cards) }

func (f *Foundation) Top() (card.Card, bool) {
	if f.IsEmpty() {
		return card.CardInvalid, false
	}
	return f.cards[f.cards.Count()-1], true
}

func (f *Foundation) anchor() (card.Card, bool) { return f.Top() }

// Complete reports Ace through King.
func (f *Foundation) Complete() bool { return f.cards.Count() == card.King }

func (f *Foundation) CanAccept(c card.Card) bool {
	if !c.IsConcrete() {
		return false
	}
	top, ok := f.Top()
	if !ok {
		return c.IsAce()
	}
	return !top.IsKing() && c == top+1
}

func (f *Foundation) Reachable() []card.Card {
	top, ok := f.Top()
	if !ok {
		return nil
	}
	return []card.Card{top}
}

func (f *Foundation) Move(c card.Card, destination Container) (UndoInfo, error) {
	if destination == nil {
		return UndoInfo{}, invalidArgument("destination must not be nil")
	}
	if same, ok := destination.(*Foundation); ok && same == f {
		return UndoInfo{}, illegalMove(ReasonRejected, c, "%v cannot be moved onto its own foundation", c)
	}
	if top, ok := f.Top(); !ok || top != c {
		return UndoInfo{}, illegalMove(ReasonPreconditionViolation, c, "%v cannot be moved from foundation %v", c, f)
	}
	if err := destination.Receive(c); err != nil {
		return UndoInfo{}, err
	}
	f.cards.PopCard()
	return UndoInfo{Count: 1}, nil
}

func (f *Foundation) Receive(cards ...card.Card) error {
	if len(cards) == 0 {
		return nil
	}
	if !f.CanAccept(cards[0]) {
		return illegalMove(ReasonRejected, cards[0], "%v cannot be moved to foundation %v", cards[0], f)
	}
	if !isFoundationRun(cards) {
		return illegalMove(ReasonInvalidSequence, cards[0], "%v is not a valid foundation run", cards)
	}
	f.cards.Add(cards...)
	return nil
}

func (f *Foundation) Undo(c card.Card, info UndoInfo, from Container) error {
	if from == nil {
		return invalidArgument("undo source must not be nil")
	}
	chunk, err := from.withdraw(c, info.Count)
	if err != nil {
		return err
	}
	f.cards.Add(chunk...)
	return nil
}

func (f *Foundation) withdraw(c card.Card, n int) ([]card.Card, error) {
	return withdrawTop(&f.cards, c, n)
}

func (f *Foundation) clone() *Foundation {
	out := &Foundation{cards: make(card.CardList, f.cards.Count(), card.King)}
	copy(out.cards, f.cards)
	return out
}

func (f *Foundation) String() string {
	parts := make([]string, f.cards.Count())
	for i, c := range f.cards {
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
