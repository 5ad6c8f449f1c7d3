// Package solver finds a minimal-move clearing sequence with a
// best-first branch-and-bound search over board snapshots. The search
// is driven by an explicit priority queue ordered by cumulative move
// count rather than recursion, so ordering is best-first and the call
// stack stays flat. Each frontier entry owns an independent board copy;
// nothing is shared between sibling branches.
package solver

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"spidersolver/board"
	"spidersolver/move"
)

// ErrNoSolution is returned when the frontier is exhausted without ever
// reaching a cleared board. A single dead-ended branch is just pruned;
// this error means every branch dead-ended.
var ErrNoSolution = errors.New("no solution found")

// Default branch widths. The search plays every zero-draw candidate and
// caps draw-requiring ones: a little wider during the opening window,
// narrower once the game is underway.
const (
	DefaultTopMoves      = 2
	DefaultFirstTopMoves = 3
	DefaultFirstGames    = 5
)

// Outcome classifies a search node against the caller-supplied known
// minimum bound.
type Outcome int8

const (
	// OutcomeDeadEnd marks a node with no legal moves left.
	OutcomeDeadEnd Outcome = -2
	// OutcomeBoundExceeded marks a branch pruned or solved past the
	// known minimum.
	OutcomeBoundExceeded Outcome = -1
	// OutcomeSolvedMatched marks a solution equal to the known minimum.
	// It is also the zero value carried by interior nodes.
	OutcomeSolvedMatched Outcome = 0
	// OutcomeSolvedImproved marks a solution better than the known
	// minimum.
	OutcomeSolvedImproved Outcome = 1
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDeadEnd:
		return "dead-end"
	case OutcomeBoundExceeded:
		return "bound-exceeded"
	case OutcomeSolvedMatched:
		return "solved-matched"
	case OutcomeSolvedImproved:
		return "solved-improved"
	}
	return "unknown"
}

// Result is a finished search: the move-index path (1-based indexes
// into each step's sorted legal-move list), the final move count, and
// how it compares to the known minimum.
type Result struct {
	Path    []int
	Moves   int
	Outcome Outcome
}

// Solver runs best-first searches. The zero value is not usable; use
// New.
type Solver struct {
	topMoves      int
	firstTopMoves int
	firstGames    int
	trace         *Trace
}

// New returns a solver with the default branch widths.
func New() *Solver {
	return &Solver{
		topMoves:      DefaultTopMoves,
		firstTopMoves: DefaultFirstTopMoves,
		firstGames:    DefaultFirstGames,
	}
}

// SetBranchWidths overrides the draw-move branch caps. firstGames is
// the cumulative move count under which the wider firstTopMoves cap
// applies.
func (s *Solver) SetBranchWidths(topMoves, firstTopMoves, firstGames int) {
	s.topMoves = topMoves
	s.firstTopMoves = firstTopMoves
	s.firstGames = firstGames
}

// SetTrace attaches a decision trace that records branch counts and
// outcome tags per expanded node. Nil disables tracing.
func (s *Solver) SetTrace(t *Trace) {
	s.trace = t
}

// SortedMoves returns the board's legal moves in the fixed branch
// order: fewest draws first, ties broken by a stable string key over
// the cards. Solution paths index into this ordering, so replay must
// use it too.
func SortedMoves(b *board.Board) []*move.Move {
	moves := b.LegalMoves()
	sort.Slice(moves, func(i, j int) bool {
		if moves[i].Draws() != moves[j].Draws() {
			return moves[i].Draws() < moves[j].Draws()
		}
		return moves[i].SortKey() < moves[j].SortKey()
	})
	return moves
}

// Solve searches from the initial board for a clearing sequence no
// worse than knownMin moves. The first cleared board popped from the
// frontier is minimal under the bound and the deterministic branch
// order. The context is the external budget; cancellation surfaces as
// ctx.Err().
func (s *Solver) Solve(ctx context.Context, initial *board.Board, knownMin int) (*Result, error) {
	seen := newDedupSet()
	fr := frontier{{cost: initial.Moves(), board: initial.Copy()}}
	heap.Init(&fr)

	dups := 0
	deepest := -1

	for fr.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n := heap.Pop(&fr).(*node)

		if n.board.Moves() > deepest {
			deepest = n.board.Moves()
			log.Debug().
				Int("moves", deepest).
				Int("bound", knownMin).
				Int("frontier", fr.Len()).
				Int("dups", dups).
				Msg("searching")
		}

		if n.board.Cleared() {
			outcome := classify(n.board.Moves(), knownMin)
			s.trace.record(n.path, 0, n.board.Moves(), outcome)
			log.Info().
				Int("moves", n.board.Moves()).
				Int("bound", knownMin).
				Str("outcome", outcome.String()).
				Msg("solution found")
			return &Result{Path: n.path, Moves: n.board.Moves(), Outcome: outcome}, nil
		}

		moves := SortedMoves(n.board)
		if len(moves) == 0 {
			// A dead end prunes this branch only; it is not an error.
			s.trace.record(n.path, 0, n.board.Moves(), OutcomeDeadEnd)
			continue
		}
		zeroDraw := lo.CountBy(moves, func(m *move.Move) bool { return m.Draws() == 0 })

		width := s.topMoves
		if n.board.Moves() <= s.firstGames {
			width = s.firstTopMoves
		}

		played := 0
		branches := 0
		for idx, m := range moves {
			if m.Draws() > 0 && played > width {
				break
			}
			if n.board.Moves()+m.Draws() > knownMin {
				// Everything after this candidate needs at least as many
				// draws; the whole tail is provably non-optimal.
				s.trace.record(childPath(n.path, idx), 0, n.board.Moves()+m.Draws(), OutcomeBoundExceeded)
				break
			}
			played++

			child := n.board.Copy()
			if err := child.PlayMove(m); err != nil {
				return nil, fmt.Errorf("applying generated move %s: %w", m, err)
			}
			if !seen.add(child.State()) {
				dups++
				continue
			}
			branches++
			heap.Push(&fr, &node{
				cost:  child.Moves(),
				path:  childPath(n.path, idx),
				board: child,
			})
		}
		s.trace.record(n.path, branches, n.board.Moves(), OutcomeSolvedMatched)
		log.Trace().
			Int("zeroDraw", zeroDraw).
			Int("branches", branches).
			Int("candidates", len(moves)).
			Msg("expanded")
	}

	log.Error().Int("dups", dups).Msg("search frontier exhausted")
	return nil, ErrNoSolution
}

func classify(moves, knownMin int) Outcome {
	switch {
	case moves < knownMin:
		return OutcomeSolvedImproved
	case moves == knownMin:
		return OutcomeSolvedMatched
	default:
		return OutcomeBoundExceeded
	}
}

func childPath(path []int, idx int) []int {
	p := make([]int, len(path)+1)
	copy(p, path)
	p[len(path)] = idx + 1
	return p
}

// Replay plays a move-index path through the board and returns the
// final cumulative move count. It mutates the board it is given.
func Replay(b *board.Board, path []int) (int, error) {
	for step, choice := range path {
		moves := SortedMoves(b)
		if choice < 1 || choice > len(moves) {
			return 0, fmt.Errorf("step %d: move index %d out of range (%d moves): %w",
				step, choice, len(moves), move.ErrIllegalMove)
		}
		if err := b.PlayMove(moves[choice-1]); err != nil {
			return 0, fmt.Errorf("step %d: %w", step, err)
		}
	}
	return b.Moves(), nil
}

// node is one frontier entry. It owns its board.
type node struct {
	cost  int
	path  []int
	board *board.Board
}

// frontier is a min-heap on cumulative moves. Ties break on the
// lexicographically smaller path so repeated runs pop in an identical
// order.
type frontier []*node

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].cost != f[j].cost {
		return f[i].cost < f[j].cost
	}
	return pathLess(f[i].path, f[j].path)
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) {
	*f = append(*f, x.(*node))
}

func (f *frontier) Pop() any {
	old := *f
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*f = old[:len(old)-1]
	return n
}

func pathLess(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
