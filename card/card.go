// Package card defines the playing card used by the board and the draw
// stack. Suits are irrelevant in this solitaire variant; a card is its
// rank plus enough position metadata to tell duplicates apart.
package card

import "fmt"

// King is the only rank that matches by itself.
const King = 13

// MatchSum is the rank total for a two-card match.
const MatchSum = 13

// Card is a single card. Row and Col identify its slot on the pyramid;
// a card in the draw stack has Row == -1 and Col set to its deal slot so
// that duplicate ranks stay distinguishable.
type Card struct {
	Rank int
	Row  int
	Col  int
}

// New returns a board card at the given pyramid position.
func New(rank, row, col int) Card {
	return Card{Rank: rank, Row: row, Col: col}
}

// NewStackCard returns a card that lives in the draw stack. The slot is
// the card's position in the original deal and never changes.
func NewStackCard(rank, slot int) Card {
	return Card{Rank: rank, Row: -1, Col: slot}
}

// IsEmpty reports whether this is the empty sentinel slot rather than a
// real card.
func (c Card) IsEmpty() bool {
	return c.Rank == 0
}

// OnBoard reports whether the card sits on the pyramid; otherwise it is
// in the draw stack.
func (c Card) OnBoard() bool {
	return c.Row >= 0
}

// Match is the rank that removes this card. A king matches itself and
// comes off alone.
func (c Card) Match() int {
	if m := MatchSum - c.Rank; m != 0 {
		return m
	}
	return King
}

// Glyph returns the single-character display value. Ten is rendered as
// "0" so that every rank is one column wide.
func (c Card) Glyph() string {
	switch c.Rank {
	case 1:
		return "A"
	case 10:
		return "0"
	case 11:
		return "J"
	case 12:
		return "D"
	case King:
		return "K"
	default:
		return fmt.Sprintf("%d", c.Rank)
	}
}

// PosDescription is a human-readable location, used by the shell when
// listing candidate moves.
func (c Card) PosDescription() string {
	if !c.OnBoard() {
		return "in stack"
	}
	return fmt.Sprintf("on board %s row, %s card", ordinal(c.Row+1), ordinal(c.Col+1))
}

func ordinal(n int) string {
	switch n {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	default:
		return fmt.Sprintf("%dth", n)
	}
}

func (c Card) String() string {
	return fmt.Sprintf("<Card %s: %s>", c.Glyph(), c.PosDescription())
}

// RankFromChar parses a single level-string character into a rank.
func RankFromChar(ch rune) (int, error) {
	switch ch {
	case 'a', 'A':
		return 1, nil
	case '0':
		return 10, nil
	case 'j', 'J':
		return 11, nil
	case 'd', 'D':
		return 12, nil
	case 'k', 'K':
		return King, nil
	}
	if ch >= '1' && ch <= '9' {
		return int(ch - '0'), nil
	}
	return 0, fmt.Errorf("unrecognized card character %q", ch)
}
