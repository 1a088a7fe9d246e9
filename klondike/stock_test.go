package klondike

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"klondike-lite/card"
)

func spadesAceToTen() []card.Card {
	return []card.Card{
		card.CardSpadeA, card.CardSpade2, card.CardSpade3, card.CardSpade4, card.CardSpade5,
		card.CardSpade6, card.CardSpade7, card.CardSpade8, card.CardSpade9, card.CardSpadeT,
	}
}

func TestStock_ReachableFresh(t *testing.T) {
	s, err := NewStock(spadesAceToTen()...)
	require.NoError(t, err)
	assert.Equal(t, 9, s.Waste())
	assert.ElementsMatch(t,
		[]card.Card{card.CardSpadeT, card.CardSpade3, card.CardSpade6, card.CardSpade9},
		s.Reachable())
}

func TestStock_TakeExposesCardBelow(t *testing.T) {
	s, err := NewStock(spadesAceToTen()...)
	require.NoError(t, err)

	idx, err := s.Take(card.CardSpade3)
	require.NoError(t, err)
	assert.Equal(t, 2, idx)
	assert.Equal(t, 1, s.Waste())
	assert.Equal(t, 9, s.Count())
	assert.Contains(t, s.Reachable(), card.CardSpade4)
	assert.NotContains(t, s.Reachable(), card.CardSpade3)
}

func TestStock_TakeUnreachable(t *testing.T) {
	s, err := NewStock(spadesAceToTen()...)
	require.NoError(t, err)

	_, err = s.Take(card.CardSpadeA)
	require.ErrorIs(t, err, ErrIllegalMove)
	var ime *IllegalMoveError
	require.ErrorAs(t, err, &ime)
	assert.Equal(t, ReasonPreconditionViolation, ime.Reason)
	assert.Equal(t, 10, s.Count())
	assert.Equal(t, 9, s.Waste())
}

func TestStock_NegativeWasteExposesOnlyThirds(t *testing.T) {
	s, err := NewStock(card.CardHeartA, card.CardHeart2, card.CardHeart3, card.CardHeart4)
	require.NoError(t, err)

	_, err = s.Take(card.CardHeart3)
	require.NoError(t, err)
	_, err = s.Take(card.CardHeart2)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Waste())

	_, err = s.Take(card.CardHeartA)
	require.NoError(t, err)
	assert.Equal(t, -1, s.Waste())
	assert.Empty(t, s.Reachable(), "only one card left and offset 2 is past the end")
	assert.Equal(t, 1, s.Count())
}

func TestStock_MoveRollsBackOnRejection(t *testing.T) {
	s, err := NewStock(spadesAceToTen()...)
	require.NoError(t, err)
	before := s.clone()

	_, err = s.Move(card.CardSpade6, &recordingContainer{accept: false})
	require.ErrorIs(t, err, ErrIllegalMove)
	assert.Equal(t, before.Cards(), s.Cards())
	assert.Equal(t, before.Waste(), s.Waste())
}

func TestStock_MoveAndUndoRestoresLayout(t *testing.T) {
	s, err := NewStock(spadesAceToTen()...)
	require.NoError(t, err)
	sink := &recordingContainer{accept: true}

	info, err := s.Move(card.CardSpade6, sink)
	require.NoError(t, err)
	assert.Equal(t, UndoInfo{Count: 1, Index: 5, Waste: 9}, info)
	assert.Equal(t, 4, s.Waste())
	assert.Equal(t, card.CardList{card.CardSpade6}, sink.received)

	require.NoError(t, s.Undo(card.CardSpade6, info, sink))
	assert.Equal(t, spadesAceToTen(), s.Cards())
	assert.Equal(t, 9, s.Waste())
	assert.Empty(t, sink.received)
}

func TestStock_NeverReceives(t *testing.T) {
	s := EmptyStock()
	assert.False(t, s.CanAccept(card.CardSpadeA))

	err := s.Receive(card.CardSpadeA)
	require.ErrorIs(t, err, ErrIllegalMove)
	var ime *IllegalMoveError
	require.ErrorAs(t, err, &ime)
	assert.Equal(t, ReasonStockReceive, ime.Reason)
	assert.True(t, s.IsEmpty())
}

func TestNewStock_Validation(t *testing.T) {
	_, err := NewStock(card.CardUnknown)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewStock(card.CardSpadeA, card.CardSpadeA)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewStock(card.Card(0x4A))
	require.ErrorIs(t, err, ErrInvalidCard)
}
