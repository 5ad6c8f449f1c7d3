package board

import (
	"spidersolver/card"
	"spidersolver/move"
)

// LegalMoves generates the current legal move set. Domain pruning rules
// are applied in order, and a rule that identifies a forced move
// short-circuits the rest:
//
//  1. A leaf king is always taken immediately; deferring it never helps.
//  2. A table match involving a solo rank is the last copy, so no
//     ordering choice remains.
//  3. A solo-rank leaf whose partner is already visible on the stack is
//     taken right away.
//  4. Otherwise table matches, board-stack matches at every reachable
//     draw distance, and stack-internal matches are all candidates.
//  5. With no table match available, a zero-draw stack-internal match
//     involving a king or solo rank is forced.
//  6. Stack-internal candidates that would strand a table pair are
//     filtered out (see isBadStackMatch).
func (b *Board) LegalMoves() []*move.Move {
	leaves := b.Leaves()

	for _, leaf := range leaves {
		if leaf.Rank == card.King {
			return []*move.Move{move.NewKingMove(leaf)}
		}
	}

	var solo [card.King + 1]bool
	for r := 1; r <= card.King; r++ {
		solo[r] = b.counts[r] == 1
	}
	soloRank := func(r int) bool {
		return r >= 1 && r <= card.King && solo[r]
	}

	var candidates []*move.Move
	movesOnTable := false

	for i := 0; i < len(leaves); i++ {
		for j := i + 1; j < len(leaves); j++ {
			a, c := leaves[i], leaves[j]
			if a.Match() != c.Rank {
				continue
			}
			m := move.NewBoardMatch(a, c)
			if soloRank(a.Rank) || soloRank(c.Rank) {
				return []*move.Move{m}
			}
			candidates = append(candidates, m)
			movesOnTable = true
		}
	}

	for _, leaf := range leaves {
		for _, d := range b.stack.DistancesTo(leaf.Match()) {
			sc := b.stack.CardAt(d)
			// The prev card is distance -1; it needs no draw.
			draws := d
			if draws < 0 {
				draws = 0
			}
			m := move.NewBoardStackMatch(draws, leaf, sc)
			if soloRank(leaf.Rank) && d <= 0 {
				return []*move.Move{m}
			}
			candidates = append(candidates, m)
		}
	}

	internal := b.stack.InternalMatches()
	if !movesOnTable {
		for _, m := range internal {
			if m.Draws() != 0 {
				continue
			}
			for _, c := range m.Cards() {
				if c.Rank == card.King || soloRank(c.Rank) {
					return []*move.Move{m}
				}
			}
		}
	}
	for _, m := range internal {
		if b.isBadStackMatch(m) {
			continue
		}
		candidates = append(candidates, m)
	}

	return candidates
}

// isBadStackMatch guesses whether removing a stack pair would strand
// the remaining same-rank pair on the table: if a rank has exactly one
// table copy left and that copy is still buried, taking the stack pair
// can leave the table pair mutually unreachable with no spare copies to
// break the deadlock. This is a search-space reducer, not a proof;
// whether the stranding always materializes is an open question, so it
// is never relied on for optimality claims.
func (b *Board) isBadStackMatch(m *move.Move) bool {
	if len(m.Cards()) != 2 {
		return false
	}
	for _, r := range m.Ranks() {
		count, slot := 0, -1
		for i := 0; i < NumSlots; i++ {
			if b.isPresent(i) && b.cards[i].Rank == r {
				count++
				slot = i
			}
		}
		if count == 1 && b.blockerCount[slot] > 0 {
			return true
		}
	}
	return false
}
