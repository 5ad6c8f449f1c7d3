// Package stack implements the circular draw pile. An index into a
// fixed card sequence advances on every draw instead of mutating the
// order, and a trailing empty sentinel slot lets the index wrap past
// the last card, briefly showing an empty pile before starting over.
//
// Two cards are visible at a time: the card at the index ("peek") and
// the one drawn just before it ("prev"). Both can take part in matches.
package stack

import (
	"fmt"
	"strings"

	"spidersolver/card"
	"spidersolver/move"
)

// Stack is the draw pile. The final element of cards is always the
// empty sentinel, so every index calculation runs modulo len(cards),
// which is the real card count plus one.
type Stack struct {
	cards []card.Card
	idx   int
}

// New creates a stack from deal-order ranks and appends the empty
// sentinel slot.
func New(ranks []int) *Stack {
	cards := make([]card.Card, 0, len(ranks)+1)
	for slot, r := range ranks {
		cards = append(cards, card.NewStackCard(r, slot))
	}
	cards = append(cards, card.Card{})
	return &Stack{cards: cards}
}

// Copy returns an independent copy for search isolation.
func (s *Stack) Copy() *Stack {
	cards := make([]card.Card, len(s.cards))
	copy(cards, s.cards)
	return &Stack{cards: cards, idx: s.idx}
}

// Len is the number of real cards left, excluding the sentinel.
func (s *Stack) Len() int {
	return len(s.cards) - 1
}

// Idx is the current position of the visible-window pointer.
func (s *Stack) Idx() int {
	return s.idx
}

// Draw advances the visible index by count and returns the newly
// visible card, which may be the empty sentinel.
func (s *Stack) Draw(count int) card.Card {
	s.idx = (s.idx + count) % len(s.cards)
	return s.Peek()
}

// Peek is the card at the top of the stack. It is the empty sentinel
// when the index sits on the wraparound slot.
func (s *Stack) Peek() card.Card {
	return s.cards[s.idx]
}

// Prev is the second visible card, the one drawn immediately before the
// current top. It is empty at index zero, where nothing has been drawn.
func (s *Stack) Prev() card.Card {
	if s.idx == 0 {
		return card.Card{}
	}
	return s.cards[s.idx-1]
}

// CardAt returns the card that would be on top after the given number
// of draws, without drawing.
func (s *Stack) CardAt(draws int) card.Card {
	n := len(s.cards)
	return s.cards[((s.idx+draws)%n+n)%n]
}

// VisibleAfter returns the two-card window as it would look after the
// given number of draws, without drawing. The second card is empty when
// the window would sit at index zero.
func (s *Stack) VisibleAfter(draws int) (peek, prev card.Card) {
	idx := (s.idx + draws) % len(s.cards)
	if idx != 0 {
		prev = s.cards[idx-1]
	}
	return s.cards[idx], prev
}

// DistancesTo returns every draw distance at which the given rank is
// visible. The prev card is reported as -1 to distinguish the left side
// of the window from the top; all other distances count sentinel-aware
// positions from the current index.
func (s *Stack) DistancesTo(rank int) []int {
	var dists []int
	if p := s.Prev(); !p.IsEmpty() && p.Rank == rank {
		dists = append(dists, -1)
	}
	// Walk the pile in draw order, skipping the visible prev card when
	// the index has moved past it.
	span := len(s.cards)
	if s.idx != 0 {
		span = len(s.cards) - 1
	}
	for d := 0; d < span; d++ {
		c := s.cards[(s.idx+d)%len(s.cards)]
		if !c.IsEmpty() && c.Rank == rank {
			dists = append(dists, d)
		}
	}
	return dists
}

// InternalMatches scans consecutive pairs in draw order, including the
// wraparound pair, for removals that live entirely inside the stack: an
// adjacent pair summing to thirteen, or a lone king. Each candidate is
// tagged with the draws needed to bring its second card to the top.
func (s *Stack) InternalMatches() []*move.Move {
	var moves []*move.Move
	n := len(s.cards)
	for i := 0; i < n; i++ {
		left := s.cards[i]
		right := s.cards[(i+1)%n]
		draws := (i + 1 - s.idx + n) % n
		switch {
		case right.Rank == card.King:
			moves = append(moves, move.NewStackMatch(draws, right))
		case !left.IsEmpty() && !right.IsEmpty() && left.Match() == right.Rank:
			moves = append(moves, move.NewStackMatch(draws, left, right))
		}
	}
	return moves
}

// Remove takes one or two cards out of the pile. Every card must be
// exactly the current peek or prev; anything else is an illegal move.
// All validation happens before any card comes out, so a rejected
// removal leaves the pile untouched. Removing the prev card shifts the
// index back by one so the visible window stays consistent.
func (s *Stack) Remove(cards ...card.Card) error {
	if len(cards) == 2 && cards[0] == cards[1] {
		return fmt.Errorf("card %s is listed twice: %w", cards[0].Glyph(), move.ErrIllegalMove)
	}
	for _, c := range cards {
		if c.IsEmpty() {
			return fmt.Errorf("can not remove the empty slot at the back of the stack: %w", move.ErrInvariant)
		}
		if s.Peek() != c && s.Prev() != c {
			return fmt.Errorf("card %s is not visible on the stack: %w", c.Glyph(), move.ErrIllegalMove)
		}
	}
	for _, c := range cards {
		if s.Prev() == c {
			s.idx--
		}
		slot := s.slotOf(c)
		s.cards = append(s.cards[:slot], s.cards[slot+1:]...)
	}
	return nil
}

func (s *Stack) slotOf(c card.Card) int {
	for i, sc := range s.cards {
		if sc == c {
			return i
		}
	}
	// Callers only ask for cards they just verified are present.
	return -1
}

// Signature renders the pile contents in deal order, used as part of
// the board's canonical state string.
func (s *Stack) Signature() string {
	var sb strings.Builder
	for _, c := range s.cards {
		if !c.IsEmpty() {
			sb.WriteString(c.Glyph())
		}
	}
	return sb.String()
}

// String shows the pile in draw order with the sentinel as "X".
func (s *Stack) String() string {
	parts := make([]string, 0, len(s.cards))
	for d := 0; d < len(s.cards); d++ {
		c := s.cards[(s.idx+d)%len(s.cards)]
		if c.IsEmpty() {
			parts = append(parts, "X")
		} else {
			parts = append(parts, fmt.Sprintf("%d", c.Rank))
		}
	}
	return fmt.Sprintf("<Stack %s>", strings.Join(parts, " "))
}
