package klondike

import "klondike-lite/card"

// PossibleMoves lists every legal move from the current position. Moves
// that differ only by which empty container they would land in collapse
// into one entry.
func (g *Game) PossibleMoves() MoveSet {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.possibleMovesLocked()
}

// IsLegalMove reports membership in PossibleMoves. A malformed move is an
// argument error, not an illegal one.
func (g *Game) IsLegalMove(m Move) (bool, error) {
	if err := m.Validate(); err != nil {
		return false, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.possibleMovesLocked().Contains(m), nil
}

func (g *Game) possibleMovesLocked() MoveSet {
	moves := make(MoveSet, 16)

	for i, col := range g.columns {
		// a known top may go up to a foundation
		if top, ok := col.anchor(); ok {
			g.addFoundationMoveLocked(moves, top)
		}
		for _, c := range col.Reachable() {
			g.addColumnMovesLocked(moves, c, i)
		}
	}

	for _, f := range g.foundations {
		if top, ok := f.Top(); ok {
			g.addColumnMovesLocked(moves, top, -1)
		}
	}

	for _, c := range g.stock.Reachable() {
		g.addFoundationMoveLocked(moves, c)
		g.addColumnMovesLocked(moves, c, -1)
	}
	return moves
}

// addFoundationMoveLocked adds c onto the first foundation that takes it.
func (g *Game) addFoundationMoveLocked(moves MoveSet, c card.Card) {
	for _, f := range g.foundations {
		if f.CanAccept(c) {
			dst, _ := f.anchor()
			moves.Add(Move{Card: c, Destination: dst})
			return
		}
	}
}

// addColumnMovesLocked adds c onto every column that takes it except skip.
func (g *Game) addColumnMovesLocked(moves MoveSet, c card.Card, skip int) {
	for i, col := range g.columns {
		if i == skip || !col.CanAccept(c) {
			continue
		}
		dst, _ := col.anchor()
		moves.Add(Move{Card: c, Destination: dst})
	}
}
