package move

import (
	"testing"

	"github.com/matryer/is"

	"spidersolver/card"
)

func TestBoardMatchOrdersByRank(t *testing.T) {
	is := is.New(t)

	hi := card.New(9, 6, 0)
	lo := card.New(4, 6, 3)
	m := NewBoardMatch(hi, lo)
	is.Equal(m.Cards()[0], lo)
	is.Equal(m.Cards()[1], hi)

	// Same cards in the other order build an identical move.
	is.Equal(m.SortKey(), NewBoardMatch(lo, hi).SortKey())
}

func TestRanks(t *testing.T) {
	is := is.New(t)

	m := NewBoardMatch(card.New(4, 6, 0), card.New(9, 6, 1))
	is.Equal(m.Ranks(), []int{4, 9})

	k := NewKingMove(card.New(card.King, 6, 6))
	is.Equal(k.Ranks(), []int{13})
}

func TestShortDescription(t *testing.T) {
	is := is.New(t)

	k := NewKingMove(card.New(card.King, 6, 6))
	is.Equal(k.ShortDescription(), "remove K on board 7th row, 7th card")

	bs := NewBoardStackMatch(2, card.New(4, 6, 0), card.NewStackCard(9, 5))
	is.Equal(bs.ShortDescription(),
		"draw 2 cards and match 9 in stack and 4 on board 7th row, 1st card")

	s := NewStackMatch(1, card.NewStackCard(card.King, 3))
	is.Equal(s.ShortDescription(), "draw 1 card and remove K in stack")
}

func TestTypeStrings(t *testing.T) {
	is := is.New(t)

	is.Equal(BoardMatch.String(), "BoardMatch")
	is.Equal(BoardStackMatch.String(), "BoardStackMatch")
	is.Equal(StackMatch.String(), "StackMatch")
}
