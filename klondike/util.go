package klondike

import "klondike-lite/card"

// containsCard 工具：判断牌是否在切片里
func containsCard(cards []card.Card, c card.Card) bool {
	for _, cc := range cards {
		if cc == c {
			return true
		}
	}
	return false
}

func cloneCards(cards []card.Card) []card.Card {
	return append([]card.Card{}, cards...)
}
