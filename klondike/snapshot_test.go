package klondike

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"klondike-lite/card"
)

func TestSnapshot_IsDetached(t *testing.T) {
	g := NewGame()
	snap := g.Snapshot()
	snap.Columns[0][0] = card.CardHeartK
	snap.Stock[0] = card.CardHeartK

	top, _ := g.columns[0].Top()
	assert.Equal(t, card.CardSpadeA, top)
	assert.Equal(t, card.CardDiamond2, g.stock.Cards()[0])
}

func TestSnapshot_KeyRoundTrip(t *testing.T) {
	g, err := Deal(DealConfig{Seed: 42})
	require.NoError(t, err)
	moves := g.PossibleMoves().Sorted()
	if len(moves) > 0 {
		require.NoError(t, g.MakeMove(moves[0]))
	}

	want := g.Snapshot()
	got, err := SnapshotFromKey(g.Key())
	require.NoError(t, err)

	want.HistoryLen = 0
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}

	restored, err := FromSnapshot(got)
	require.NoError(t, err)
	assert.True(t, g.Equal(restored))
	assert.Equal(t, g.Hash(), restored.Hash())
	assert.Equal(t, g.PossibleMoves(), restored.PossibleMoves())
}

func TestSnapshot_KeyKeepsEmptyPilesInPlace(t *testing.T) {
	a := mustGame(t, nil, []*Column{mustColumn(t, 0), mustColumn(t, 0, card.CardSpadeK)}, EmptyStock())
	b := mustGame(t, nil, []*Column{mustColumn(t, 0, card.CardSpadeK), mustColumn(t, 0)}, EmptyStock())
	assert.NotEqual(t, a.Key(), b.Key())
	assert.False(t, a.Equal(b))

	snap, err := SnapshotFromKey(a.Key())
	require.NoError(t, err)
	assert.Empty(t, snap.Columns[0])
	assert.Equal(t, []card.Card{card.CardSpadeK}, snap.Columns[1])
	assert.Equal(t, -1, snap.Waste)
}

func TestSnapshot_WasteIsPartOfKey(t *testing.T) {
	a := mustGame(t, nil, nil, mustStock(t, card.CardSpadeA, card.CardSpade2, card.CardSpade3))
	b := mustGame(t, nil, nil, mustStock(t, card.CardSpadeA, card.CardSpade2, card.CardSpade3))
	b.stock.waste = 0
	assert.False(t, a.Equal(b))
	assert.NotEqual(t, a.Hash(), b.Hash())
}

func TestSnapshotFromKey_Malformed(t *testing.T) {
	_, err := SnapshotFromKey([]byte{0x0a, 0x05, 0x01})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = SnapshotFromKey([]byte{0x38, 0x01})
	require.ErrorIs(t, err, ErrInvalidArgument)

	snap, err := SnapshotFromKey(nil)
	require.NoError(t, err)
	assert.Zero(t, snap.Waste)
}

func TestFromSnapshot_Validation(t *testing.T) {
	_, err := FromSnapshot(Snapshot{Stock: []card.Card{card.CardSpadeA}, Waste: 3})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = FromSnapshot(Snapshot{Columns: [][]card.Card{{card.CardSpadeK, card.CardUnknown}}, Waste: -1})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = FromSnapshot(Snapshot{Foundations: [][]card.Card{{card.CardSpade2}}, Waste: -1})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = FromSnapshot(Snapshot{
		Foundations: [][]card.Card{{card.CardSpadeA}},
		Stock:       []card.Card{card.CardSpadeA},
	})
	require.ErrorIs(t, err, ErrInvalidArgument)
}
