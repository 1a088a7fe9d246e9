package klondike

import (
	"strings"

	"klondike-lite/card"
)

// Stock is the draw pile, played draw-three. waste marks the top of the
// currently drawn run; a fresh stock starts with waste on the last card.
type Stock struct {
	cards card.CardList
	waste int
}

var _ Container = (*Stock)(nil)

// NewStock validates that every card is known and unique.
func NewStock(cards ...card.Card) (*Stock, error) {
	seen := make(map[card.Card]struct{}, len(cards))
	for _, c := range cards {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if c.IsUnknown() {
			return nil, invalidArgument("stock cards must be known")
		}
		if _, dup := seen[c]; dup {
			return nil, invalidArgument("duplicate stock card %v", c)
		}
		seen[c] = struct{}{}
	}
	s := &Stock{}
	s.cards.Init(cards)
	s.waste = len(cards) - 1
	return s, nil
}

// EmptyStock has no cards.
func EmptyStock() *Stock { return &Stock{waste: -1} }

func (s *Stock) Kind() ContainerKind { return KindStock }

func (s *Stock) IsEmpty() bool { return s.cards.Count() == 0 }

func (s *Stock) Count() int { return s.cards.Count() }

func (s *Stock) Cards() []card.Card { return cloneCards(s.cards) }

func (s *Stock) Waste() int { return s.waste }

func (s *Stock) Contains(c card.Card) bool { return s.cards.Contains(c) }

// CanAccept: the stock is never a destination.
func (s *Stock) CanAccept(card.Card) bool { return false }

// Reachable is the draw run from the waste pointer to the end, plus every
// third card from offset 2, which a full pass through the stock exposes.
// A negative waste pointer exposes no draw run.
func (s *Stock) Reachable() []card.Card {
	n := s.cards.Count()
	if n == 0 {
		return nil
	}
	exposed := make([]bool, n)
	for i := s.waste; i >= 0 && i < n; i++ {
		exposed[i] = true
	}
	for i := 2; i < n; i += 3 {
		exposed[i] = true
	}
	out := make([]card.Card, 0, n)
	for i, ok := range exposed {
		if ok {
			out = append(out, s.cards[i])
		}
	}
	return out
}

func (s *Stock) isReachable(c card.Card) bool {
	return containsCard(s.Reachable(), c)
}

// Take removes a reachable card; the waste pointer moves to the card below it.
// Taking index 0 leaves the pointer at -1, which exposes no draw run: only
// every third card from offset 2 stays reachable until the next take.
func (s *Stock) Take(c card.Card) (int, error) {
	if !c.IsConcrete() || !s.isReachable(c) {
		return -1, illegalMove(ReasonPreconditionViolation, c, "%v is not reachable in stock %v", c, s)
	}
	idx := s.cards.IndexOf(c)
	s.removeAt(idx)
	s.waste = idx - 1
	return idx, nil
}

func (s *Stock) Move(c card.Card, destination Container) (UndoInfo, error) {
	if destination == nil {
		return UndoInfo{}, invalidArgument("destination must not be nil")
	}
	premoveWaste := s.waste
	idx, err := s.Take(c)
	if err != nil {
		return UndoInfo{}, err
	}
	if err := destination.Receive(c); err != nil {
		s.insertAt(idx, c)
		s.waste = premoveWaste
		return UndoInfo{}, err
	}
	return UndoInfo{Count: 1, Index: idx, Waste: premoveWaste}, nil
}

// Receive always fails: no game move returns a card to the stock.
func (s *Stock) Receive(cards ...card.Card) error {
	var c card.Card
	if len(cards) > 0 {
		c = cards[0]
	}
	return illegalMove(ReasonStockReceive, c, "stock cannot receive cards")
}

// Undo re-inserts c at the recorded position and restores the waste pointer.
func (s *Stock) Undo(c card.Card, info UndoInfo, from Container) error {
	if from == nil {
		return invalidArgument("undo source must not be nil")
	}
	if info.Count != 1 {
		return invalidArgument("stock undo moves exactly one card, got %d", info.Count)
	}
	if info.Index < 0 || info.Index > s.cards.Count() {
		return invalidArgument("stock index %d out of range [0, %d]", info.Index, s.cards.Count())
	}
	if _, err := from.withdraw(c, 1); err != nil {
		return err
	}
	s.insertAt(info.Index, c)
	s.waste = info.Waste
	return nil
}

func (s *Stock) withdraw(c card.Card, _ int) ([]card.Card, error) {
	return nil, illegalMove(ReasonStockReceive, c, "stock is never a move destination")
}

func (s *Stock) removeAt(idx int) {
	s.cards = append(s.cards[:idx], s.cards[idx+1:]...)
}

func (s *Stock) insertAt(idx int, c card.Card) {
	s.cards = append(s.cards, card.CardInvalid)
	copy(s.cards[idx+1:], s.cards[idx:])
	s.cards[idx] = c
}

func (s *Stock) clone() *Stock {
	out := &Stock{waste: s.waste}
	out.cards.Init(s.cards)
	return out
}

func (s *Stock) String() string {
	parts := make([]string, s.cards.Count())
	for i, c := range s.cards {
		parts[i] = c.String()
		if i == s.waste {
			parts[i] += "*"
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
