package card

import (
	"errors"
	"math/rand"
	"testing"
)

func TestFullDeck_HasFiftyTwoDistinctConcreteCards(t *testing.T) {
	deck := FullDeck()
	if len(deck) != DeckSize {
		t.Fatalf("expected %d cards, got %d", DeckSize, len(deck))
	}
	seen := make(map[Card]struct{}, len(deck))
	for _, c := range deck {
		if !c.IsValid() {
			t.Fatalf("deck contains invalid card 0x%02x", byte(c))
		}
		if c.IsUnknown() {
			t.Fatalf("deck contains unknown card %v", c)
		}
		if _, dup := seen[c]; dup {
			t.Fatalf("deck contains duplicate %v", c)
		}
		seen[c] = struct{}{}
	}
}

func TestFullDeck_IsDeterministic(t *testing.T) {
	a, b := FullDeck(), FullDeck()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("deck order differs at %d: %v vs %v", i, a[i], b[i])
		}
	}
	if a[0] != CardSpadeA || a[1] != CardHeartA || a[51] != CardDiamondK {
		t.Fatalf("unexpected deck order: first=%v second=%v last=%v", a[0], a[1], a[51])
	}
}

func TestCard_Validity(t *testing.T) {
	cases := []struct {
		name  string
		card  Card
		valid bool
	}{
		{"zero", CardInvalid, false},
		{"ace of spades", CardSpadeA, true},
		{"king of diamonds", CardDiamondK, true},
		{"unknown", CardUnknown, true},
		{"unknown with suit bits", CardUnknown | ColorBit, true},
		{"rank above unknown", Card(0x0F), false},
		{"stray high bit", CardSpadeA | 0x40, false},
		{"all bits", Card(0xFF), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.card.IsValid(); got != tc.valid {
				t.Fatalf("IsValid(0x%02x) = %v, want %v", byte(tc.card), got, tc.valid)
			}
			err := tc.card.Validate()
			if tc.valid && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.valid && !errors.Is(err, ErrInvalidCard) {
				t.Fatalf("expected ErrInvalidCard, got %v", err)
			}
		})
	}
}

func TestCard_ColorAndType(t *testing.T) {
	if CardSpade7.IsRed() || CardClub7.IsRed() {
		t.Fatalf("spades and clubs must be black")
	}
	if !CardHeart7.IsRed() || !CardDiamond7.IsRed() {
		t.Fatalf("hearts and diamonds must be red")
	}
	if !CardSpade7.SameColor(CardClubQ) || CardSpade7.SameColor(CardHeart7) {
		t.Fatalf("colour comparison is wrong")
	}
	if CardSpadeA.SuitType() == CardClubA.SuitType() {
		t.Fatalf("spade and club must differ in type bit")
	}
	if CardHeartA.SuitColor() != CardDiamondA.SuitColor() {
		t.Fatalf("heart and diamond must share colour bit")
	}
}

func TestCard_NextRankIsSameSuit(t *testing.T) {
	for _, c := range FullDeck() {
		if c.IsKing() {
			continue
		}
		next := c + 1
		if next.Suit() != c.Suit() || next.Rank() != c.Rank()+1 {
			t.Fatalf("%v + 1 = %v, want same suit next rank", c, next)
		}
	}
}

func TestParse(t *testing.T) {
	cases := map[string]Card{
		"As":  CardSpadeA,
		"Td":  CardDiamondT,
		"10h": CardHeartT,
		"kc":  CardClubK,
		"7H":  CardHeart7,
		"??":  CardUnknown,
	}
	for in, want := range cases {
		got, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q) err: %v", in, err)
		}
		if got != want {
			t.Fatalf("Parse(%q) = %v, want %v", in, got, want)
		}
	}

	for _, bad := range []string{"", "A", "Ax", "1s", "Zs"} {
		if _, err := Parse(bad); !errors.Is(err, ErrInvalidCard) {
			t.Fatalf("Parse(%q): expected ErrInvalidCard, got %v", bad, err)
		}
	}
}

func TestCode_RoundTripsThroughParse(t *testing.T) {
	for _, c := range FullDeck() {
		got, err := Parse(c.Code())
		if err != nil || got != c {
			t.Fatalf("Parse(%q) = %v, %v; want %v", c.Code(), got, err, c)
		}
	}
}

func TestCardList_ShuffleIsSeeded(t *testing.T) {
	var a, b CardList
	a.Init(FullDeck())
	b.Init(FullDeck())
	a.Shuffle(rand.New(rand.NewSource(7)))
	b.Shuffle(rand.New(rand.NewSource(7)))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed produced different order at %d", i)
		}
	}

	popped, ok := a.PopCards(3)
	if !ok || len(popped) != 3 || a.Count() != DeckSize-3 {
		t.Fatalf("PopCards: ok=%v len=%d remaining=%d", ok, len(popped), a.Count())
	}
	if a.Contains(popped[0]) {
		t.Fatalf("popped card still in list")
	}
}
