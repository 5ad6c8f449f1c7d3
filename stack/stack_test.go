package stack

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"spidersolver/card"
	"spidersolver/move"
)

func TestDraw(t *testing.T) {
	is := is.New(t)

	s := New([]int{1, 2, 3, 4})
	is.Equal(s.Len(), 4)
	is.Equal(s.Peek().Rank, 1)
	is.True(s.Prev().IsEmpty())

	c := s.Draw(1)
	is.Equal(c.Rank, 2)
	is.Equal(s.Prev().Rank, 1)
	is.Equal(s.String(), "<Stack 2 3 4 X 1>")
}

func TestDrawWrapsPastSentinel(t *testing.T) {
	is := is.New(t)

	s := New([]int{1, 2, 3, 4})
	// Index runs modulo length+1; the fifth draw shows the empty slot
	// and the sixth wraps back to the first card.
	c := s.Draw(4)
	is.True(c.IsEmpty())
	c = s.Draw(1)
	is.Equal(c.Rank, 1)
	is.Equal(s.Idx(), 0)
}

func TestDistancesTo(t *testing.T) {
	is := is.New(t)

	s := New([]int{1, 2, 5, 6, 2, 1})
	is.Equal(s.DistancesTo(1), []int{0, 5})
	is.Equal(s.DistancesTo(2), []int{1, 4})
	is.Equal(s.DistancesTo(3), []int(nil))
	is.Equal(s.DistancesTo(5), []int{2})
	is.Equal(s.DistancesTo(6), []int{3})

	// After two draws the prev card (rank 2) reports as -1 and the
	// walk skips it.
	s.Draw(2)
	is.Equal(s.DistancesTo(2), []int{-1, 2})
	is.Equal(s.DistancesTo(1), []int{3, 5})
	is.Equal(s.DistancesTo(5), []int{0})
	is.Equal(s.DistancesTo(6), []int{1})
}

func TestCardAt(t *testing.T) {
	is := is.New(t)

	s := New([]int{1, 2, 5, 6, 2, 1})
	is.Equal(s.CardAt(0).Rank, 1)
	is.Equal(s.CardAt(1).Rank, 2)
	is.Equal(s.CardAt(2).Rank, 5)

	s.Draw(2)
	is.Equal(s.CardAt(0).Rank, 5)
	is.Equal(s.CardAt(1).Rank, 6)
	is.Equal(s.CardAt(2).Rank, 2)
}

func drawsOf(moves []*move.Move) []int {
	out := make([]int, len(moves))
	for i, m := range moves {
		out[i] = m.Draws()
	}
	return out
}

func TestInternalMatches(t *testing.T) {
	is := is.New(t)

	s := New([]int{1, 2, 11, 2, 6, 1, 12, 5})
	moves := s.InternalMatches()
	is.Equal(drawsOf(moves), []int{2, 3, 6})

	s.Draw(3)
	moves = s.InternalMatches()
	is.Equal(drawsOf(moves), []int{8, 0, 3})
}

func TestInternalMatchesWithKings(t *testing.T) {
	is := is.New(t)

	s := New([]int{1, 2, 13, 4, 5, 13, 13, 6})
	moves := s.InternalMatches()
	is.Equal(drawsOf(moves), []int{2, 5, 6})
	for _, m := range moves {
		is.Equal(len(m.Cards()), 1)
		is.Equal(m.Cards()[0].Rank, card.King)
	}
}

func TestInternalMatchesKingAtFront(t *testing.T) {
	is := is.New(t)

	// The wraparound pair catches a king in the very first slot; it is
	// the current peek, so removing it needs no draws.
	s := New([]int{13, 6, 7})
	moves := s.InternalMatches()
	is.Equal(len(moves), 2)
	is.Equal(moves[0].Draws(), 2) // the 6/7 pair
	is.Equal(moves[1].Draws(), 0) // the king
	is.Equal(moves[1].Cards()[0].Rank, card.King)
}

func TestRemovePeek(t *testing.T) {
	is := is.New(t)

	s := New([]int{6, 13})
	s.Draw(1)
	king := s.Peek()
	is.Equal(king.Rank, card.King)

	is.NoErr(s.Remove(king))
	is.Equal(s.Len(), 1)
	is.Equal(s.Prev().Rank, 6)
	is.True(s.Peek().IsEmpty())
}

func TestRemovePrevShiftsIndex(t *testing.T) {
	is := is.New(t)

	s := New([]int{1, 12, 5})
	s.Draw(1)
	left, right := s.Prev(), s.Peek()
	is.Equal(left.Rank, 1)
	is.Equal(right.Rank, 12)

	is.NoErr(s.Remove(left, right))
	is.Equal(s.Len(), 1)
	is.Equal(s.Idx(), 0)
	is.Equal(s.Peek().Rank, 5)
}

func TestRemoveNotVisible(t *testing.T) {
	is := is.New(t)

	s := New([]int{1, 12, 5})
	buried := s.CardAt(2)
	err := s.Remove(buried)
	is.True(errors.Is(err, move.ErrIllegalMove))
	is.Equal(s.Len(), 3)
}

func TestRemoveDuplicateCard(t *testing.T) {
	is := is.New(t)

	s := New([]int{6, 7, 5})
	s.Draw(1)
	peek := s.Peek()

	err := s.Remove(peek, peek)
	is.True(errors.Is(err, move.ErrIllegalMove))
	is.Equal(s.Len(), 3)
	is.Equal(s.Idx(), 1)
}

func TestRemoveRejectedLeavesPileUntouched(t *testing.T) {
	is := is.New(t)

	// The first card is removable on its own; the second is buried.
	// The pair must be rejected with nothing taken out.
	s := New([]int{1, 12, 5})
	s.Draw(1)
	peek, buried := s.Peek(), s.CardAt(1)

	err := s.Remove(peek, buried)
	is.True(errors.Is(err, move.ErrIllegalMove))
	is.Equal(s.Len(), 3)
	is.Equal(s.Idx(), 1)
	is.Equal(s.Peek(), peek)
}

func TestRemoveSentinel(t *testing.T) {
	is := is.New(t)

	s := New([]int{1, 12})
	s.Draw(2)
	err := s.Remove(s.Peek())
	is.True(errors.Is(err, move.ErrInvariant))
}

func TestCopyIsIndependent(t *testing.T) {
	is := is.New(t)

	s := New([]int{1, 2, 3, 4})
	c := s.Copy()
	s.Draw(2)
	is.NoErr(s.Remove(s.Peek()))

	is.Equal(c.Idx(), 0)
	is.Equal(c.Len(), 4)
}
