package card

import (
	"errors"
	"fmt"
	"strings"
)

// Card 牌枚举
//
// 编码规则:
// - 低4位: 点数 (1:A, 2..9, 10:T, 11:J, 12:Q, 13:K, 14:Unknown)
// - bit4: 颜色位 (set => red)
// - bit5: 类型位 (together with the colour bit selects one of the 4 suits)
type Card byte

const (
	RankMask  Card = 0x0F
	ColorBit  Card = 0x10
	TypeBit   Card = 0x20
	SuitMask       = ColorBit | TypeBit
	validMask      = RankMask | SuitMask
)

var ErrInvalidCard = errors.New("invalid card")

func (c Card) String() string {
	if c.IsUnknown() {
		return "??"
	}
	if !c.IsValid() {
		return "Invalid"
	}
	return c.Suit().String() + rankString(c.Rank())
}

func rankString(rank byte) string {
	switch rank {
	case Ace:
		return "A"
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return fmt.Sprintf("%d", rank)
	}
}

// Rank 获取牌面值 1-14 (A=1, K=13, Unknown=14)
func (c Card) Rank() byte {
	return byte(c & RankMask)
}

// Suit 花色 (0:Spades, 1:Hearts, 2:Clubs, 3:Diamonds)
func (c Card) Suit() Suit {
	return Suit((c & SuitMask) >> 4)
}

// SuitColor returns the colour bit. Two cards share a colour iff their colour bits match.
func (c Card) SuitColor() byte {
	return byte((c & ColorBit) >> 4)
}

// SuitType returns the type bit.
func (c Card) SuitType() byte {
	return byte((c & TypeBit) >> 5)
}

func (c Card) IsRed() bool { return c&ColorBit != 0 }

func (c Card) SameColor(o Card) bool { return c&ColorBit == o&ColorBit }

func (c Card) IsAce() bool  { return c.Rank() == Ace }
func (c Card) IsKing() bool { return c.Rank() == King }

// IsUnknown reports a face-down placeholder, whatever its suit bits.
func (c Card) IsUnknown() bool { return c.Rank() == Unknown }

// IsValid: rank in [Ace, Unknown] and no bits outside rank/suit.
func (c Card) IsValid() bool {
	if c&^validMask != 0 {
		return false
	}
	r := c.Rank()
	return r >= Ace && r <= Unknown
}

// IsConcrete reports a valid, face-up card.
func (c Card) IsConcrete() bool {
	return c.IsValid() && !c.IsUnknown()
}

func (c Card) Validate() error {
	if !c.IsValid() {
		return fmt.Errorf("%w: 0x%02x", ErrInvalidCard, byte(c))
	}
	return nil
}

// New packs a rank and suit into a Card.
func New(rank byte, suit Suit) (Card, error) {
	c := Card(suit)<<4 | Card(rank)
	if suit > Diamond || rank < Ace || rank > Unknown {
		return CardInvalid, fmt.Errorf("%w: rank=%d suit=%d", ErrInvalidCard, rank, suit)
	}
	return c, nil
}

// FullDeck returns the 52 concrete cards, rank-major, suits in Spade/Heart/Club/Diamond order.
func FullDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for r := byte(Ace); r <= King; r++ {
		for s := Spade; s <= Diamond; s++ {
			deck = append(deck, Card(s)<<4|Card(r))
		}
	}
	return deck
}

// Parse 将字符串 (如 "As", "Td", "10h") 转换为 Card; "??" yields CardUnknown.
func Parse(cardStr string) (Card, error) {
	cardStr = strings.TrimSpace(cardStr)
	if cardStr == "??" {
		return CardUnknown, nil
	}
	if len(cardStr) < 2 {
		return CardInvalid, fmt.Errorf("%w: %q", ErrInvalidCard, cardStr)
	}

	// 1. 解析花色 (取最后一个字符)
	var suit Suit
	switch cardStr[len(cardStr)-1] {
	case 's', 'S':
		suit = Spade
	case 'h', 'H':
		suit = Heart
	case 'c', 'C':
		suit = Club
	case 'd', 'D':
		suit = Diamond
	default:
		return CardInvalid, fmt.Errorf("%w: invalid suit in %q", ErrInvalidCard, cardStr)
	}

	// 2. 解析点数
	var rank byte
	switch strings.ToUpper(cardStr[:len(cardStr)-1]) {
	case "A":
		rank = Ace
	case "2", "3", "4", "5", "6", "7", "8", "9":
		rank = cardStr[0] - '0'
	case "T", "10":
		rank = Ten
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	default:
		return CardInvalid, fmt.Errorf("%w: invalid rank in %q", ErrInvalidCard, cardStr)
	}
	return New(rank, suit)
}

// ParseList parses every entry, failing on the first bad one.
func ParseList(raw []string) ([]Card, error) {
	out := make([]Card, 0, len(raw))
	for i, s := range raw {
		c, err := Parse(s)
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// Code renders a card in the form accepted by Parse.
func (c Card) Code() string {
	if c.IsUnknown() {
		return "??"
	}
	if !c.IsValid() {
		return ""
	}
	return rankString(c.Rank()) + c.Suit().Letter()
}
