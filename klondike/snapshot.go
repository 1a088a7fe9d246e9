package klondike

import (
	"bytes"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"google.golang.org/protobuf/encoding/protowire"

	"klondike-lite/card"
)

// Snapshot is a detached copy of a game's contents, bottom card first in every pile.
type Snapshot struct {
	Foundations [][]card.Card
	Columns     [][]card.Card
	Stock       []card.Card
	Waste       int
	HistoryLen  int
}

// key field numbers
const (
	keyFoundation protowire.Number = 1
	keyColumn     protowire.Number = 2
	keyStock      protowire.Number = 3
	keyWaste      protowire.Number = 4
)

func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := Snapshot{
		Foundations: make([][]card.Card, len(g.foundations)),
		Columns:     make([][]card.Card, len(g.columns)),
		Stock:       cloneCards(g.stock.cards),
		Waste:       g.stock.waste,
		HistoryLen:  len(g.history),
	}
	for i, f := range g.foundations {
		s.Foundations[i] = cloneCards(f.cards)
	}
	for i, col := range g.columns {
		s.Columns[i] = cloneCards(col.cards)
	}
	return s
}

// Key encodes the game contents. Equal games have equal keys.
func (g *Game) Key() []byte {
	return g.Snapshot().Key()
}

// Equal ignores HistoryLen.
func (s Snapshot) Equal(o Snapshot) bool {
	return bytes.Equal(s.Key(), o.Key())
}

func (s Snapshot) Key() []byte {
	return s.AppendKey(make([]byte, 0, 2*card.DeckSize))
}

// AppendKey appends the protobuf wire encoding of the contents to b. Every
// pile is one length-delimited field, in container order, so empty piles
// still hold their position.
func (s Snapshot) AppendKey(b []byte) []byte {
	for _, f := range s.Foundations {
		b = protowire.AppendTag(b, keyFoundation, protowire.BytesType)
		b = protowire.AppendBytes(b, card.Cards2bytes(f))
	}
	for _, col := range s.Columns {
		b = protowire.AppendTag(b, keyColumn, protowire.BytesType)
		b = protowire.AppendBytes(b, card.Cards2bytes(col))
	}
	b = protowire.AppendTag(b, keyStock, protowire.BytesType)
	b = protowire.AppendBytes(b, card.Cards2bytes(s.Stock))
	b = protowire.AppendTag(b, keyWaste, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeZigZag(int64(s.Waste)))
	return b
}

func (s Snapshot) Hash() uint64 {
	return xxhash.Sum64(s.Key())
}

// SnapshotFromKey decodes a Key. HistoryLen is always zero.
func SnapshotFromKey(b []byte) (Snapshot, error) {
	var s Snapshot
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return Snapshot{}, fmt.Errorf("%w: key tag: %v", ErrInvalidArgument, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case typ == protowire.BytesType && (num == keyFoundation || num == keyColumn || num == keyStock):
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return Snapshot{}, fmt.Errorf("%w: key field %d: %v", ErrInvalidArgument, num, protowire.ParseError(n))
			}
			b = b[n:]
			cards := bytesToCards(v)
			switch num {
			case keyFoundation:
				s.Foundations = append(s.Foundations, cards)
			case keyColumn:
				s.Columns = append(s.Columns, cards)
			default:
				s.Stock = cards
			}
		case typ == protowire.VarintType && num == keyWaste:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return Snapshot{}, fmt.Errorf("%w: key waste: %v", ErrInvalidArgument, protowire.ParseError(n))
			}
			b = b[n:]
			s.Waste = int(protowire.DecodeZigZag(v))
		default:
			return Snapshot{}, invalidArgument("unexpected key field %d of type %d", num, typ)
		}
	}
	return s, nil
}

// FromSnapshot rebuilds a game with empty history. Every pile is validated
// as if constructed directly.
func FromSnapshot(s Snapshot) (*Game, error) {
	foundations := make([]*Foundation, len(s.Foundations))
	for i, cards := range s.Foundations {
		f, err := NewFoundation(cards...)
		if err != nil {
			return nil, fmt.Errorf("foundation %d: %w", i, err)
		}
		foundations[i] = f
	}

	columns := make([]*Column, len(s.Columns))
	for i, cards := range s.Columns {
		faceDown := 0
		for faceDown < len(cards) && cards[faceDown].IsUnknown() {
			faceDown++
		}
		col, err := NewColumn(faceDown, cards[faceDown:]...)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
		columns[i] = col
	}

	stock, err := NewStock(s.Stock...)
	if err != nil {
		return nil, fmt.Errorf("stock: %w", err)
	}
	if s.Waste < -1 || s.Waste >= stock.Count() {
		return nil, invalidArgument("waste %d out of range [-1, %d)", s.Waste, stock.Count())
	}
	stock.waste = s.Waste

	return New(foundations, columns, stock)
}

func bytesToCards(b []byte) []card.Card {
	out := make([]card.Card, len(b))
	for i, v := range b {
		out[i] = card.Card(v)
	}
	return out
}
