package card

import (
	"testing"

	"github.com/matryer/is"
)

func TestMatch(t *testing.T) {
	is := is.New(t)

	is.Equal(New(1, 0, 0).Match(), 12)
	is.Equal(New(6, 0, 0).Match(), 7)
	// The king matches itself.
	is.Equal(New(King, 0, 0).Match(), King)
}

func TestGlyphs(t *testing.T) {
	is := is.New(t)

	glyphs := map[int]string{
		1: "A", 2: "2", 9: "9", 10: "0", 11: "J", 12: "D", 13: "K",
	}
	for rank, want := range glyphs {
		is.Equal(New(rank, 0, 0).Glyph(), want)
	}
}

func TestPosDescription(t *testing.T) {
	is := is.New(t)

	is.Equal(NewStackCard(5, 3).PosDescription(), "in stack")
	is.Equal(New(5, 2, 1).PosDescription(), "on board 3rd row, 2nd card")
	is.Equal(New(5, 6, 3).PosDescription(), "on board 7th row, 4th card")
}

func TestOnBoard(t *testing.T) {
	is := is.New(t)

	is.True(New(4, 3, 2).OnBoard())
	is.True(!NewStackCard(4, 0).OnBoard())
	is.True(!NewStackCard(4, 0).IsEmpty())
	is.True(Card{}.IsEmpty())
}

func TestRankFromChar(t *testing.T) {
	is := is.New(t)

	chars := map[rune]int{
		'a': 1, 'A': 1, '2': 2, '9': 9, '0': 10, 'j': 11, 'd': 12, 'k': 13, 'K': 13,
	}
	for ch, want := range chars {
		r, err := RankFromChar(ch)
		is.NoErr(err)
		is.Equal(r, want)
	}

	_, err := RankFromChar('x')
	is.True(err != nil)
}
