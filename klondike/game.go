package klondike

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"klondike-lite/card"
)

// Game owns four foundations, seven columns, the stock and the undo history.
// It is mutated only through MakeMove, UndoMove and the reveal operations.
type Game struct {
	mu sync.Mutex

	foundations []*Foundation
	columns     []*Column
	stock       *Stock

	history []historyRecord

	// hidden[i] holds the identities behind column i's placeholders, bottom
	// first, when the deal knows them.
	hidden map[int][]card.Card
}

// NewGame deals the canonical, unshuffled layout.
func NewGame() *Game {
	return deal(card.FullDeck())
}

// Deal lays out a game from cfg.Deck, or from a deck shuffled by cfg.Seed.
func Deal(cfg DealConfig) (*Game, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	var deck card.CardList
	if len(cfg.Deck) > 0 {
		deck.Init(cfg.Deck)
	} else {
		deck.Init(card.FullDeck())
		if cfg.Seed != 0 {
			deck.Shuffle(rand.New(rand.NewSource(cfg.Seed)))
		}
	}
	return deal(deck), nil
}

// deal expects 52 distinct known cards. Column i gets i placeholders under
// one face-up card, the stock gets the next 24, and the rest are the
// identities behind the placeholders.
func deal(deck card.CardList) *Game {
	g := &Game{hidden: make(map[int][]card.Card, NumColumns)}

	tops, _ := deck.PopCards(NumColumns)
	stockCards, _ := deck.PopCards(StockDealSize)

	g.columns = make([]*Column, NumColumns)
	for i := range g.columns {
		col := &Column{cards: make(card.CardList, 0, MaxColumnCards)}
		for j := 0; j < i; j++ {
			col.cards.Add(card.CardUnknown)
		}
		col.cards.Add(tops[i])
		g.columns[i] = col

		if i > 0 {
			faceDown, _ := deck.PopCards(i)
			g.hidden[i] = faceDown
		}
	}
	g.foundations = emptyFoundations()
	g.stock = &Stock{waste: len(stockCards) - 1}
	g.stock.cards.Init(stockCards)
	return g
}

func emptyFoundations() []*Foundation {
	out := make([]*Foundation, NumFoundations)
	for i := range out {
		out[i] = &Foundation{cards: make(card.CardList, 0, card.King)}
	}
	return out
}

// NewGameWithStock lays out seven columns where column i holds i face-down
// cards, four empty foundations, and the given stock.
func NewGameWithStock(stock *Stock) (*Game, error) {
	if stock == nil {
		return nil, invalidArgument("stock must not be nil")
	}
	columns := make([]*Column, NumColumns)
	for i := range columns {
		col, err := NewColumn(i)
		if err != nil {
			return nil, err
		}
		columns[i] = col
	}
	return New(emptyFoundations(), columns, stock)
}

// New assembles a game from explicit containers and takes ownership of them.
// Any number of foundations and columns is accepted.
func New(foundations []*Foundation, columns []*Column, stock *Stock) (*Game, error) {
	if stock == nil {
		return nil, invalidArgument("stock must not be nil")
	}
	seen := make(map[card.Card]string, card.DeckSize)
	track := func(where string, cards []card.Card) error {
		for _, c := range cards {
			if c.IsUnknown() {
				continue
			}
			if prev, dup := seen[c]; dup {
				return invalidArgument("card %v appears in both %s and %s", c, prev, where)
			}
			seen[c] = where
		}
		return nil
	}
	for i, f := range foundations {
		if f == nil {
			return nil, invalidArgument("foundation %d is nil", i)
		}
		if err := track(fmt.Sprintf("foundation %d", i), f.cards); err != nil {
			return nil, err
		}
	}
	for i, col := range columns {
		if col == nil {
			return nil, invalidArgument("column %d is nil", i)
		}
		if err := track(fmt.Sprintf("column %d", i), col.cards); err != nil {
			return nil, err
		}
	}
	if err := track("stock", stock.cards); err != nil {
		return nil, err
	}
	return &Game{
		foundations: append([]*Foundation{}, foundations...),
		columns:     append([]*Column{}, columns...),
		stock:       stock,
		hidden:      make(map[int][]card.Card),
	}, nil
}

// MakeMove resolves both endpoints and applies the move. On error the game is unchanged.
func (g *Game) MakeMove(m Move) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := m.Validate(); err != nil {
		return err
	}
	srcID, src, err := g.findSourceLocked(m.Card)
	if err != nil {
		return err
	}
	dstID, dst, err := g.findDestinationLocked(m)
	if err != nil {
		return err
	}
	if srcID == dstID {
		return illegalMove(ReasonRejected, m.Card, "source and destination are both %s", srcID)
	}

	info, err := src.Move(m.Card, dst)
	if err != nil {
		return err
	}
	info.Source = srcID
	info.Destination = dstID
	g.history = append(g.history, historyRecord{move: m, info: info})
	return nil
}

// UndoMove reverses the most recent move.
func (g *Game) UndoMove() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.history) == 0 {
		return ErrEmptyHistory
	}
	rec := g.history[len(g.history)-1]
	src, err := g.containerLocked(rec.info.Source)
	if err != nil {
		return err
	}
	dst, err := g.containerLocked(rec.info.Destination)
	if err != nil {
		return err
	}

	// the source's top may have been revealed since; Undo turns it back
	// face down, so keep its identity for FlipTop
	concealIdx, concealed := -1, card.CardInvalid
	if col, ok := src.(*Column); ok && rec.info.Covered {
		if top, ok := col.anchor(); ok {
			concealIdx, concealed = col.Count()-1, top
		}
	}

	if err := src.Undo(rec.move.Card, rec.info, dst); err != nil {
		return fmt.Errorf("undo %v: %w", rec.move, err)
	}
	if concealIdx >= 0 {
		g.rememberHiddenLocked(rec.info.Source.Index, concealIdx, concealed)
	}
	g.history = g.history[:len(g.history)-1]
	return nil
}

// rememberHiddenLocked records the identity behind a column placeholder.
func (g *Game) rememberHiddenLocked(column, index int, c card.Card) {
	h := g.hidden[column]
	for len(h) <= index {
		h = append(h, card.CardInvalid)
	}
	h[index] = c
	g.hidden[column] = h
}

// hiddenLocked returns the known identity behind a column placeholder.
func (g *Game) hiddenLocked(column, index int) (card.Card, bool) {
	h := g.hidden[column]
	if index < 0 || index >= len(h) || h[index] == card.CardInvalid {
		return card.CardInvalid, false
	}
	return h[index], true
}

func (g *Game) HistoryLen() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.history)
}

// LastMove returns the most recent applied move.
func (g *Game) LastMove() (Move, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.history) == 0 {
		return Move{}, false
	}
	return g.history[len(g.history)-1].move, true
}

// Reveal turns the placeholder at index of a column into c.
func (g *Game) Reveal(column, index int, c card.Card) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.revealLocked(column, index, c)
}

func (g *Game) revealLocked(column, index int, c card.Card) error {
	if column < 0 || column >= len(g.columns) {
		return invalidArgument("column %d out of range [0, %d)", column, len(g.columns))
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if g.containsLocked(c) {
		return invalidArgument("%v is already on the table", c)
	}
	return g.columns[column].Reveal(c, index)
}

// FlipTop reveals a column's top placeholder using the identity known from the deal.
func (g *Game) FlipTop(column int) (card.Card, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if column < 0 || column >= len(g.columns) {
		return card.CardInvalid, invalidArgument("column %d out of range [0, %d)", column, len(g.columns))
	}
	col := g.columns[column]
	top, ok := col.Top()
	if !ok || !top.IsUnknown() {
		return card.CardInvalid, fmt.Errorf("%w: column %d has no face-down top", ErrInvalidOperation, column)
	}
	idx := col.Count() - 1
	c, ok := g.hiddenLocked(column, idx)
	if !ok {
		return card.CardInvalid, fmt.Errorf("%w: identity of column %d index %d is not known", ErrInvalidOperation, column, idx)
	}
	if err := g.revealLocked(column, idx, c); err != nil {
		return card.CardInvalid, err
	}
	return c, nil
}

// FlipTops flips every column top whose identity is known from the deal and
// returns the revealed cards. Columns whose recorded identity cannot be placed
// are left face down and reported in the error; the other columns still flip.
func (g *Game) FlipTops() ([]card.Card, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var out []card.Card
	var errs []error
	for i, col := range g.columns {
		top, ok := col.Top()
		if !ok || !top.IsUnknown() {
			continue
		}
		idx := col.Count() - 1
		c, ok := g.hiddenLocked(i, idx)
		if !ok {
			continue
		}
		if err := g.revealLocked(i, idx, c); err != nil {
			errs = append(errs, fmt.Errorf("flip column %d: %w", i, err))
			continue
		}
		out = append(out, c)
	}
	return out, errors.Join(errs...)
}

// Won reports four complete foundations.
func (g *Game) Won() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	complete := 0
	for _, f := range g.foundations {
		if f.Complete() {
			complete++
		}
	}
	return complete == NumFoundations
}

// DeepCopy returns an independent game with the same contents and history.
func (g *Game) DeepCopy() *Game {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := &Game{
		foundations: make([]*Foundation, len(g.foundations)),
		columns:     make([]*Column, len(g.columns)),
		stock:       g.stock.clone(),
		history:     append([]historyRecord{}, g.history...),
		hidden:      make(map[int][]card.Card, len(g.hidden)),
	}
	for i, f := range g.foundations {
		out.foundations[i] = f.clone()
	}
	for i, col := range g.columns {
		out.columns[i] = col.clone()
	}
	for i, h := range g.hidden {
		out.hidden[i] = cloneCards(h)
	}
	return out
}

// Equal compares current contents only; history is ignored.
func (g *Game) Equal(other *Game) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g == other {
		return true
	}
	return g.Snapshot().Equal(other.Snapshot())
}

// Hash is consistent with Equal.
func (g *Game) Hash() uint64 {
	return g.Snapshot().Hash()
}

func (g *Game) findSourceLocked(c card.Card) (ContainerID, Container, error) {
	for i, col := range g.columns {
		if containsCard(col.Reachable(), c) {
			return ContainerID{Kind: KindColumn, Index: i}, col, nil
		}
	}
	for i, f := range g.foundations {
		if containsCard(f.Reachable(), c) {
			return ContainerID{Kind: KindFoundation, Index: i}, f, nil
		}
	}
	if g.stock.isReachable(c) {
		return ContainerID{Kind: KindStock}, g.stock, nil
	}
	return ContainerID{}, nil, illegalMove(ReasonCardNotReachable, c, "cannot find %v in any reachable card container", c)
}

func (g *Game) findDestinationLocked(m Move) (ContainerID, Container, error) {
	if m.HasDestination() {
		for i, col := range g.columns {
			if top, ok := col.anchor(); ok && top == m.Destination {
				return ContainerID{Kind: KindColumn, Index: i}, col, nil
			}
		}
		for i, f := range g.foundations {
			if top, ok := f.anchor(); ok && top == m.Destination {
				return ContainerID{Kind: KindFoundation, Index: i}, f, nil
			}
		}
		return ContainerID{}, nil, illegalMove(ReasonNoDestination, m.Card, "no container is topped by %v", m.Destination)
	}

	if m.Card.IsKing() {
		for i, col := range g.columns {
			if col.IsEmpty() {
				return ContainerID{Kind: KindColumn, Index: i}, col, nil
			}
		}
	}
	if m.Card.IsAce() {
		for i, f := range g.foundations {
			if f.IsEmpty() {
				return ContainerID{Kind: KindFoundation, Index: i}, f, nil
			}
		}
	}
	return ContainerID{}, nil, illegalMove(ReasonNoDestination, m.Card, "cannot find a destination for %v", m)
}

func (g *Game) containerLocked(id ContainerID) (Container, error) {
	switch id.Kind {
	case KindColumn:
		if id.Index >= 0 && id.Index < len(g.columns) {
			return g.columns[id.Index], nil
		}
	case KindFoundation:
		if id.Index >= 0 && id.Index < len(g.foundations) {
			return g.foundations[id.Index], nil
		}
	case KindStock:
		return g.stock, nil
	}
	return nil, invalidArgument("no container %s", id)
}

func (g *Game) containsLocked(c card.Card) bool {
	for _, col := range g.columns {
		if col.Contains(c) {
			return true
		}
	}
	for _, f := range g.foundations {
		if f.cards.Contains(c) {
			return true
		}
	}
	return g.stock.Contains(c)
}
