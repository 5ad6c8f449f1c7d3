// Package automatic deals random boards and solves them in bulk. It is
// used for measuring how often the pruned search clears a random deal
// and what move counts it reaches.
package automatic

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"spidersolver/board"
	"spidersolver/solver"
)

// DefaultBound is the bound handed to the solver when no minimum is
// known for a random deal. It is loose on purpose; the first solution
// found under best-first ordering is still the best one reachable
// within the branch widths.
const DefaultBound = 100

// Deal shuffles a full 52-card deck into seven pyramid rows and a
// 24-card stack.
func Deal() ([][]int, []int) {
	deck := make([]int, 0, board.TotalCards)
	for rank := 1; rank <= 13; rank++ {
		for c := 0; c < board.CopiesPerRank; c++ {
			deck = append(deck, rank)
		}
	}
	frand.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	rows := make([][]int, board.NumRows)
	pos := 0
	for r := 0; r < board.NumRows; r++ {
		rows[r] = deck[pos : pos+r+1]
		pos += r + 1
	}
	return rows, deck[pos:]
}

// BatchResult aggregates a batch run.
type BatchResult struct {
	Games      int
	Solved     int
	DeadEnded  int
	TotalMoves int
	Elapsed    time.Duration
}

// AverageMoves is the mean move count over solved games.
func (r *BatchResult) AverageMoves() float64 {
	if r.Solved == 0 {
		return 0
	}
	return float64(r.TotalMoves) / float64(r.Solved)
}

// RunBatch solves n random deals across the given number of worker
// goroutines. Deals whose pruned search exhausts its frontier are
// counted as dead-ended, not failed; anything else is an error.
func RunBatch(ctx context.Context, n, workers int, widths [3]int) (*BatchResult, error) {
	if workers < 1 {
		workers = 1
	}
	start := time.Now()
	res := &BatchResult{Games: n}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			rows, stackRanks := Deal()
			b, err := board.New(rows, stackRanks)
			if err != nil {
				// A shuffled full deck always validates.
				return err
			}
			s := solver.New()
			s.SetBranchWidths(widths[0], widths[1], widths[2])
			result, err := s.Solve(ctx, b, DefaultBound)
			if errors.Is(err, solver.ErrNoSolution) {
				mu.Lock()
				res.DeadEnded++
				mu.Unlock()
				return nil
			}
			if err != nil {
				return err
			}
			mu.Lock()
			res.Solved++
			res.TotalMoves += result.Moves
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	res.Elapsed = time.Since(start)
	log.Info().
		Int("games", res.Games).
		Int("solved", res.Solved).
		Int("deadEnded", res.DeadEnded).
		Float64("avgMoves", res.AverageMoves()).
		Dur("elapsed", res.Elapsed).
		Msg("batch finished")
	return res, nil
}
