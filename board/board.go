// Package board holds the pyramid state: the 28-card arena, the leaf
// set, the draw stack, per-rank counts, and move application. Blocking
// is tracked incrementally; removing a card only ever touches the
// entries of its own ancestors, never a full rescan.
package board

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"spidersolver/card"
	"spidersolver/move"
	"spidersolver/stack"
)

// ErrInvalidDeal is wrapped by every construction validation failure;
// a board is never built from a malformed deal.
var ErrInvalidDeal = errors.New("invalid deal")

// TotalCards is the full deal size across board and stack.
const TotalCards = 52

// CopiesPerRank is the number of physical copies of each rank.
const CopiesPerRank = 4

// Board is a full game position. Copy it for search isolation; the
// struct is small and the only heap state is the stack's card slice.
type Board struct {
	cards [NumSlots]card.Card
	// present and leaves are slot bitmasks.
	present uint32
	leaves  uint32
	// blockerCount tracks, per slot, how many cards below it are still
	// on the board. A present slot with a zero count is a leaf.
	blockerCount [NumSlots]int8
	// counts holds remaining physical copies per rank across board and
	// stack; index 0 is unused.
	counts [card.King + 1]int8
	stack  *stack.Stack
	moves  int
}

const presentAll = 1<<NumSlots - 1

// New builds a board from seven rows of ranks plus the linear draw
// stack, validating that together they form exactly one full deal.
func New(rows [][]int, stackRanks []int) (*Board, error) {
	if len(rows) != NumRows {
		return nil, fmt.Errorf("%w: exactly %d rows of cards are required, got %d",
			ErrInvalidDeal, NumRows, len(rows))
	}
	total := len(stackRanks)
	for i, row := range rows {
		if len(row) != i+1 {
			return nil, fmt.Errorf("%w: row %d must hold %d cards, got %d",
				ErrInvalidDeal, i+1, i+1, len(row))
		}
		total += len(row)
	}
	if total != TotalCards {
		return nil, fmt.Errorf("%w: a full deal has %d cards, got %d",
			ErrInvalidDeal, TotalCards, total)
	}
	var perRank [card.King + 1]int
	for _, row := range rows {
		for _, r := range row {
			if r < 1 || r > card.King {
				return nil, fmt.Errorf("%w: rank %d is out of range", ErrInvalidDeal, r)
			}
			perRank[r]++
		}
	}
	for _, r := range stackRanks {
		if r < 1 || r > card.King {
			return nil, fmt.Errorf("%w: rank %d is out of range", ErrInvalidDeal, r)
		}
		perRank[r]++
	}
	for r := 1; r <= card.King; r++ {
		if perRank[r] != CopiesPerRank {
			return nil, fmt.Errorf("%w: rank %d appears %d times, want %d",
				ErrInvalidDeal, r, perRank[r], CopiesPerRank)
		}
	}
	return newBoard(rows, stackRanks), nil
}

// newBoard skips deal validation. Tests use it to build boards with
// artificial rank layouts.
func newBoard(rows [][]int, stackRanks []int) *Board {
	b := &Board{
		stack:   stack.New(stackRanks),
		present: presentAll,
	}
	for row, ranks := range rows {
		for col, r := range ranks {
			b.cards[slotIndex(row, col)] = card.New(r, row, col)
		}
	}
	for i := 0; i < NumSlots; i++ {
		n := int8(0)
		for m := blockedBy[i]; m != 0; m &= m - 1 {
			n++
		}
		b.blockerCount[i] = n
		if n == 0 {
			b.leaves |= 1 << uint(i)
		}
	}
	for _, c := range b.cards {
		b.incCount(c.Rank)
	}
	for _, r := range stackRanks {
		b.incCount(r)
	}
	return b
}

// Copy returns an independent deep copy for search branching.
func (b *Board) Copy() *Board {
	nb := *b
	nb.stack = b.stack.Copy()
	return &nb
}

// Moves is the cumulative move counter, draws included.
func (b *Board) Moves() int {
	return b.moves
}

// Cleared reports whether every pyramid card has been removed. The
// stack may still hold cards; the game only requires clearing the
// board.
func (b *Board) Cleared() bool {
	return b.present == 0
}

// Stack exposes the draw pile, read-only by convention; all mutation
// goes through PlayMove.
func (b *Board) Stack() *stack.Stack {
	return b.stack
}

// RankCount is the number of physical copies of a rank left across
// board and stack.
func (b *Board) RankCount(rank int) int {
	if rank < 1 || rank > card.King {
		return 0
	}
	return int(b.counts[rank])
}

// Leaves returns the currently unblocked board cards in slot order.
func (b *Board) Leaves() []card.Card {
	var out []card.Card
	for i := 0; i < NumSlots; i++ {
		if b.leaves&(1<<uint(i)) != 0 {
			out = append(out, b.cards[i])
		}
	}
	return out
}

// LeafCount is the size of the current leaf set.
func (b *Board) LeafCount() int {
	n := 0
	for m := b.leaves; m != 0; m &= m - 1 {
		n++
	}
	return n
}

func (b *Board) isPresent(i int) bool {
	return b.present&(1<<uint(i)) != 0
}

func (b *Board) isLeaf(i int) bool {
	return b.leaves&(1<<uint(i)) != 0
}

func (b *Board) incCount(rank int) {
	if rank >= 1 && rank <= card.King {
		b.counts[rank]++
	}
}

func (b *Board) decCount(rank int) {
	if rank >= 1 && rank <= card.King {
		b.counts[rank]--
	}
}

// indexOf resolves a move card back to its slot, confirming it is the
// same card and still on the board.
func (b *Board) indexOf(c card.Card) (int, error) {
	if !c.OnBoard() {
		return 0, fmt.Errorf("expected a board card, got %s: %w", c.Glyph(), move.ErrIllegalMove)
	}
	if c.Row >= NumRows || c.Col > c.Row {
		return 0, fmt.Errorf("no slot at row %d col %d: %w", c.Row, c.Col, move.ErrCardNotFound)
	}
	i := slotIndex(c.Row, c.Col)
	if !b.isPresent(i) || b.cards[i] != c {
		return 0, fmt.Errorf("card %s is not on the board: %w", c.Glyph(), move.ErrCardNotFound)
	}
	return i, nil
}

// removeBoardCard takes a card off the pyramid and trims the blocking
// entries of its ancestors. An ancestor whose last blocker goes away
// becomes a leaf, so a single removal can expose zero, one, or two new
// leaves depending on sibling state.
func (b *Board) removeBoardCard(i int) {
	bit := uint32(1) << uint(i)
	b.present &^= bit
	b.leaves &^= bit
	for _, a := range ancestorsOf[i] {
		b.blockerCount[a]--
		if b.blockerCount[a] == 0 && b.isPresent(a) {
			b.leaves |= 1 << uint(a)
		}
	}
	b.decCount(b.cards[i].Rank)
}

// PlayMove validates and applies a move. All validation happens before
// any mutation, so a rejected move leaves the board untouched.
func (b *Board) PlayMove(m *move.Move) error {
	cards := m.Cards()
	if len(cards) == 0 || len(cards) > 2 {
		return fmt.Errorf("move must remove one or two cards: %w", move.ErrIllegalMove)
	}
	if len(cards) == 2 && cards[0] == cards[1] {
		return fmt.Errorf("card %s is listed twice: %w", cards[0].Glyph(), move.ErrIllegalMove)
	}

	switch m.Type() {
	case move.BoardMatch:
		if len(cards) == 1 && cards[0].Rank != card.King {
			return fmt.Errorf("only a king comes off alone: %w", move.ErrIllegalMove)
		}
		idxs := make([]int, 0, 2)
		for _, c := range cards {
			i, err := b.indexOf(c)
			if err != nil {
				return err
			}
			if !b.isLeaf(i) {
				return fmt.Errorf("card %s is blocked by other cards: %w", c.Glyph(), move.ErrIllegalMove)
			}
			idxs = append(idxs, i)
		}
		b.advance(m.Draws())
		for _, i := range idxs {
			b.removeBoardCard(i)
		}

	case move.BoardStackMatch:
		if len(cards) != 2 {
			return fmt.Errorf("board-stack match needs two cards: %w", move.ErrIllegalMove)
		}
		bc, sc := cards[0], cards[1]
		if bc.OnBoard() == sc.OnBoard() {
			return fmt.Errorf("expected one card on the board and one in the stack: %w", move.ErrIllegalMove)
		}
		if !bc.OnBoard() {
			bc, sc = sc, bc
		}
		if sc.IsEmpty() {
			return fmt.Errorf("matched the empty slot in the stack: %w", move.ErrInvariant)
		}
		i, err := b.indexOf(bc)
		if err != nil {
			return err
		}
		if !b.isLeaf(i) {
			return fmt.Errorf("card %s is blocked by other cards: %w", bc.Glyph(), move.ErrIllegalMove)
		}
		if err := b.checkVisible(m.Draws(), sc); err != nil {
			return err
		}
		b.advance(m.Draws())
		if err := b.stack.Remove(sc); err != nil {
			return err
		}
		b.decCount(sc.Rank)
		b.removeBoardCard(i)

	case move.StackMatch:
		for _, c := range cards {
			if c.OnBoard() {
				return fmt.Errorf("stack match references a board card: %w", move.ErrIllegalMove)
			}
			if c.IsEmpty() {
				return fmt.Errorf("matched the empty slot in the stack: %w", move.ErrInvariant)
			}
			if err := b.checkVisible(m.Draws(), c); err != nil {
				return err
			}
		}
		b.advance(m.Draws())
		if err := b.stack.Remove(cards...); err != nil {
			return err
		}
		for _, c := range cards {
			b.decCount(c.Rank)
		}

	default:
		return fmt.Errorf("unmatched move type %v: %w", m.Type(), move.ErrIllegalMove)
	}

	b.moves++
	return nil
}

// checkVisible verifies a stack card will sit in the two-card visible
// window once the move's draws have been made.
func (b *Board) checkVisible(draws int, c card.Card) error {
	peek, prev := b.stack.VisibleAfter(draws)
	if peek != c && prev != c {
		return fmt.Errorf("unable to match a stack card that isn't visible: %w", move.ErrIllegalMove)
	}
	return nil
}

// advance draws from the stack and charges the draws to the move
// counter.
func (b *Board) advance(draws int) {
	if draws > 0 {
		b.stack.Draw(draws)
		b.moves += draws
	}
}

// State is the canonical position signature used for transposition
// dedup: move count, sorted leaf slots, stack index, stack contents.
func (b *Board) State() string {
	idxs := make([]string, 0, 8)
	for i := 0; i < NumSlots; i++ {
		if b.isLeaf(i) {
			idxs = append(idxs, fmt.Sprintf("%d", i))
		}
	}
	sort.Strings(idxs)
	return fmt.Sprintf("%d|%s|%d|%s",
		b.moves, strings.Join(idxs, ":"), b.stack.Idx(), b.stack.Signature())
}

// ToDisplayText renders the pyramid with removed slots as underscores,
// followed by the stack in draw order.
func (b *Board) ToDisplayText() string {
	var sb strings.Builder
	for row := 0; row < NumRows; row++ {
		sb.WriteString(strings.Repeat(" ", NumRows-row-1))
		for col := 0; col <= row; col++ {
			i := slotIndex(row, col)
			if b.isPresent(i) {
				sb.WriteString(b.cards[i].Glyph())
			} else {
				sb.WriteString("_")
			}
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(b.stack.String())
	sb.WriteString("\n")
	return sb.String()
}
