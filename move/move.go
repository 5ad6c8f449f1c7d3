// Package move defines the move record exchanged between the board, the
// solver, and the shell, along with the shared error taxonomy for move
// application.
package move

import (
	"errors"
	"fmt"
	"strings"

	"spidersolver/card"
)

var (
	// ErrIllegalMove is returned when a move references a card that is
	// blocked, outside the stack's visible window, or otherwise not
	// currently playable. The board is left unchanged.
	ErrIllegalMove = errors.New("illegal move")
	// ErrCardNotFound is returned when a move references a card that is
	// no longer on the board.
	ErrCardNotFound = errors.New("card not found")
	// ErrInvariant flags an internal inconsistency, such as matching the
	// stack's empty sentinel slot. It should never surface during normal
	// play.
	ErrInvariant = errors.New("logic invariant violated")
)

// MoveType is the kind of match a move performs.
type MoveType uint8

const (
	// BoardMatch removes one king or two matching cards from the pyramid.
	BoardMatch MoveType = iota
	// BoardStackMatch pairs a pyramid leaf with a visible stack card.
	BoardStackMatch
	// StackMatch removes one or two visible cards from the stack alone.
	StackMatch
)

func (t MoveType) String() string {
	switch t {
	case BoardMatch:
		return "BoardMatch"
	case BoardStackMatch:
		return "BoardStackMatch"
	case StackMatch:
		return "StackMatch"
	}
	return "UNHANDLED"
}

// Move is a single removal: either a lone king or a pair of cards whose
// ranks sum to thirteen, plus the number of stack draws needed before
// the removal is possible.
type Move struct {
	kind  MoveType
	draws int
	cards []card.Card
}

// NewKingMove creates a single-card removal of a leaf king on the board.
func NewKingMove(k card.Card) *Move {
	return &Move{kind: BoardMatch, cards: []card.Card{k}}
}

// NewBoardMatch creates a two-card match between pyramid leaves. The
// lower rank is stored first so that duplicate generation orders
// identically.
func NewBoardMatch(a, b card.Card) *Move {
	if a.Rank > b.Rank {
		a, b = b, a
	}
	return &Move{kind: BoardMatch, cards: []card.Card{a, b}}
}

// NewBoardStackMatch creates a match between a board leaf and a stack
// card that is visible after the given number of draws.
func NewBoardStackMatch(draws int, boardCard, stackCard card.Card) *Move {
	return &Move{kind: BoardStackMatch, draws: draws, cards: []card.Card{boardCard, stackCard}}
}

// NewStackMatch creates a stack-internal removal: a lone king or an
// adjacent pair, visible after the given number of draws.
func NewStackMatch(draws int, cards ...card.Card) *Move {
	return &Move{kind: StackMatch, draws: draws, cards: cards}
}

// Type returns the kind of this move.
func (m *Move) Type() MoveType {
	return m.kind
}

// Draws is the number of stack draws required before the cards can be
// removed.
func (m *Move) Draws() int {
	return m.draws
}

// Cards returns the one or two cards this move removes.
func (m *Move) Cards() []card.Card {
	return m.cards
}

// SortKey is a stable ordering key over the cards. Sorting candidate
// moves by (Draws, SortKey) fixes the solver's branch order, which makes
// repeated runs deterministic.
func (m *Move) SortKey() string {
	var sb strings.Builder
	for _, c := range m.cards {
		fmt.Fprintf(&sb, "%d:%d:%d|", c.Rank, c.Row, c.Col)
	}
	return sb.String()
}

// Ranks returns the distinct ranks involved in this move.
func (m *Move) Ranks() []int {
	ranks := make([]int, 0, 2)
	for _, c := range m.cards {
		ranks = append(ranks, c.Rank)
	}
	if len(ranks) == 2 && ranks[0] == ranks[1] {
		ranks = ranks[:1]
	}
	return ranks
}

// ShortDescription is a compact description for logging and the shell.
func (m *Move) ShortDescription() string {
	var sb strings.Builder
	if m.draws > 0 {
		plural := ""
		if m.draws > 1 {
			plural = "s"
		}
		fmt.Fprintf(&sb, "draw %d card%s and ", m.draws, plural)
	}
	if len(m.cards) == 1 {
		fmt.Fprintf(&sb, "remove %s %s", m.cards[0].Glyph(), m.cards[0].PosDescription())
	} else {
		// The stack card reads more naturally first; that is where the
		// player looks when matching against the board.
		a, b := m.cards[0], m.cards[1]
		if m.kind == BoardStackMatch {
			a, b = b, a
		}
		fmt.Fprintf(&sb, "match %s %s and %s %s",
			a.Glyph(), a.PosDescription(), b.Glyph(), b.PosDescription())
	}
	return sb.String()
}

func (m *Move) String() string {
	return fmt.Sprintf("<%v draws: %d cards: %v>", m.kind, m.draws, m.cards)
}
