package klondike

import "klondike-lite/card"

// DealConfig controls Deal.
type DealConfig struct {
	// RNG seed (0 => unshuffled canonical order)
	Seed int64
	// Deck overrides the full 52-card order when set.
	Deck []card.Card
}

func (c DealConfig) validate() error {
	if len(c.Deck) == 0 {
		return nil
	}
	if len(c.Deck) != card.DeckSize {
		return invalidArgument("deck must hold %d cards, got %d", card.DeckSize, len(c.Deck))
	}
	seen := make(map[card.Card]struct{}, len(c.Deck))
	for i, cc := range c.Deck {
		if !cc.IsConcrete() {
			return invalidArgument("deck card %d (0x%02x) is not a known card", i, byte(cc))
		}
		if _, dup := seen[cc]; dup {
			return invalidArgument("duplicate deck card %v", cc)
		}
		seen[cc] = struct{}{}
	}
	return nil
}
