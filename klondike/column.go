package klondike

import (
	"fmt"
	"strings"

	"klondike-lite/card"
)

// Column is a tableau pile: a face-down prefix of placeholders under a
// face-up run that alternates colour and descends by one.
type Column struct {
	cards card.CardList
}

var _ Container = (*Column)(nil)

// NewColumn builds a column of faceDown placeholders topped by known.
func NewColumn(faceDown int, known ...card.Card) (*Column, error) {
	if faceDown < 0 {
		return nil, invalidArgument("face-down count must be >= 0, got %d", faceDown)
	}
	if total := faceDown + len(known); total > MaxColumnCards {
		return nil, invalidArgument("column holds at most %d cards, got %d", MaxColumnCards, total)
	}
	for _, c := range known {
		if err := c.Validate(); err != nil {
			return nil, err
		}
	}
	if !isColumnRun(known) {
		return nil, invalidArgument("invalid column sequence %v", known)
	}

	col := &Column{cards: make(card.CardList, 0, MaxColumnCards)}
	for i := 0; i < faceDown; i++ {
		col.cards.Add(card.CardUnknown)
	}
	col.cards.Add(known...)
	return col, nil
}

func (col *Column) Kind() ContainerKind { return KindColumn }

func (col *Column) IsEmpty() bool { return col.cards.Count() == 0 }

func (col *Column) Count() int { return col.cards.Count() }

// Cards returns a copy, bottom first.
func (col *Column) Cards() []card.Card { return cloneCards(col.cards) }

// Top returns the top card, which may be the unknown placeholder.
func (col *Column) Top() (card.Card, bool) {
	if col.IsEmpty() {
		return card.CardInvalid, false
	}
	return col.cards[col.cards.Count()-1], true
}

// anchor is the top card when it can identify the column as a destination.
func (col *Column) anchor() (card.Card, bool) {
	top, ok := col.Top()
	if !ok || top.IsUnknown() {
		return card.CardInvalid, false
	}
	return top, true
}

func (col *Column) Contains(c card.Card) bool { return col.cards.Contains(c) }

// Reveal turns the topmost placeholder, at index, into c.
func (col *Column) Reveal(c card.Card, index int) error {
	if !c.IsConcrete() {
		return invalidArgument("cannot reveal %v", c)
	}
	if index < 0 || index >= col.cards.Count() {
		return invalidArgument("index %d out of range [0, %d)", index, col.cards.Count())
	}
	if !col.cards[index].IsUnknown() {
		return fmt.Errorf("%w: card at index %d is already revealed", ErrInvalidOperation, index)
	}
	if index != col.faceUpStart()-1 {
		return fmt.Errorf("%w: only the topmost face-down card (index %d) can be revealed, got %d",
			ErrInvalidOperation, col.faceUpStart()-1, index)
	}
	// the revealed card must still extend the face-up run above it
	if index+1 < col.cards.Count() && !col.cards[index+1].IsUnknown() {
		if !isColumnRun([]card.Card{c, col.cards[index+1]}) {
			return invalidArgument("%v cannot lie under %v", c, col.cards[index+1])
		}
	}
	col.cards[index] = c
	return nil
}

func (col *Column) CanAccept(c card.Card) bool {
	if !c.IsConcrete() {
		return false
	}
	top, ok := col.Top()
	if !ok {
		return c.IsKing()
	}
	if top.IsUnknown() || top.SameColor(c) {
		return false
	}
	return top.Rank() == c.Rank()+1
}

// Reachable is the face-up run, scanned down from the top until the first placeholder.
func (col *Column) Reachable() []card.Card {
	start := col.faceUpStart()
	return cloneCards(col.cards[start:])
}

func (col *Column) faceUpStart() int {
	i := col.cards.Count()
	for i > 0 && !col.cards[i-1].IsUnknown() {
		i--
	}
	return i
}

func (col *Column) Move(c card.Card, destination Container) (UndoInfo, error) {
	if destination == nil {
		return UndoInfo{}, invalidArgument("destination must not be nil")
	}
	if same, ok := destination.(*Column); ok && same == col {
		return UndoInfo{}, illegalMove(ReasonRejected, c, "%v cannot be moved onto its own column", c)
	}
	start := col.faceUpStart()
	idx := col.cards.IndexOf(c)
	if idx < start || !c.IsConcrete() {
		return UndoInfo{}, illegalMove(ReasonPreconditionViolation, c, "%v cannot be moved from column %v", c, col)
	}

	chunk := cloneCards(col.cards[idx:])
	before := col.cards
	col.cards = col.cards[:idx]
	if err := destination.Receive(chunk...); err != nil {
		col.cards = before
		return UndoInfo{}, err
	}
	return UndoInfo{Count: len(chunk), Covered: idx > 0 && col.cards[idx-1].IsUnknown()}, nil
}

func (col *Column) Receive(cards ...card.Card) error {
	if len(cards) == 0 {
		return nil
	}
	if !col.CanAccept(cards[0]) {
		return illegalMove(ReasonRejected, cards[0], "%v cannot be moved to column %v", cards[0], col)
	}
	if !isColumnRun(cards) {
		return illegalMove(ReasonInvalidSequence, cards[0], "%v is not a valid column run", cards)
	}
	if col.cards.Count()+len(cards) > MaxColumnCards {
		return illegalMove(ReasonRejected, cards[0], "column would exceed %d cards", MaxColumnCards)
	}
	col.cards.Add(cards...)
	return nil
}

func (col *Column) Undo(c card.Card, info UndoInfo, from Container) error {
	if from == nil {
		return invalidArgument("undo source must not be nil")
	}
	chunk, err := from.withdraw(c, info.Count)
	if err != nil {
		return err
	}
	// a card revealed since the move goes back face down
	if top, ok := col.Top(); ok && info.Covered && !top.IsUnknown() {
		col.cards[col.cards.Count()-1] = card.CardUnknown
	}
	col.cards.Add(chunk...)
	return nil
}

func (col *Column) withdraw(c card.Card, n int) ([]card.Card, error) {
	return withdrawTop(&col.cards, c, n)
}

func (col *Column) clone() *Column {
	out := &Column{cards: make(card.CardList, col.cards.Count(), MaxColumnCards)}
	copy(out.cards, col.cards)
	return out
}

func (col *Column) String() string {
	parts := make([]string, col.cards.Count())
	for i, c := range col.cards {
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
