package klondike

import "klondike-lite/card"

// Container is the protocol shared by Column, Foundation and Stock. The set
// of implementations is closed: withdraw is unexported.
type Container interface {
	Kind() ContainerKind

	// CanAccept reports whether c may be placed on top during normal play.
	CanAccept(c card.Card) bool
	// Receive appends cards after checking the rules; on error nothing changes.
	Receive(cards ...card.Card) error
	// Move hands c, and everything above it, to destination. On rejection the
	// container is left exactly as it was and the rejection is returned.
	Move(c card.Card, destination Container) (UndoInfo, error)
	// Undo reverses a Move of c recorded in info by pulling the cards back
	// from the container they were moved to. Rules are not checked.
	Undo(c card.Card, info UndoInfo, from Container) error

	Reachable() []card.Card
	IsEmpty() bool
	Count() int

	// withdraw removes the top n cards, the first of which must be c.
	withdraw(c card.Card, n int) ([]card.Card, error)
}

// withdrawTop is the shared withdraw for push/pop piles.
func withdrawTop(pile *card.CardList, c card.Card, n int) ([]card.Card, error) {
	size := pile.Count()
	if n <= 0 || n > size {
		return nil, invalidArgument("cannot withdraw %d cards from a pile of %d", n, size)
	}
	if (*pile)[size-n] != c {
		return nil, invalidArgument("expected %v at depth %d, found %v", c, n, (*pile)[size-n])
	}
	out := make([]card.Card, n)
	copy(out, (*pile)[size-n:])
	*pile = (*pile)[:size-n]
	return out, nil
}

// isColumnRun: known cards, alternating colour, descending by one.
func isColumnRun(cards []card.Card) bool {
	for i, c := range cards {
		if !c.IsConcrete() {
			return false
		}
		if i == 0 {
			continue
		}
		prev := cards[i-1]
		if prev.SameColor(c) || prev.Rank() != c.Rank()+1 {
			return false
		}
	}
	return true
}

// isFoundationRun: known cards of one suit, ascending by one.
func isFoundationRun(cards []card.Card) bool {
	for i, c := range cards {
		if !c.IsConcrete() {
			return false
		}
		if i > 0 && (cards[i-1].IsKing() || c != cards[i-1]+1) {
			return false
		}
	}
	return true
}
