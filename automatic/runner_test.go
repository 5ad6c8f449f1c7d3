package automatic

import (
	"context"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"spidersolver/board"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	os.Exit(m.Run())
}

func TestDealIsAlwaysValid(t *testing.T) {
	is := is.New(t)

	for i := 0; i < 20; i++ {
		rows, stackRanks := Deal()
		is.Equal(len(rows), board.NumRows)
		is.Equal(len(stackRanks), board.TotalCards-board.NumSlots)
		_, err := board.New(rows, stackRanks)
		is.NoErr(err)
	}
}

func TestRunBatch(t *testing.T) {
	is := is.New(t)

	// Narrow widths keep each random search small; the batch outcome
	// itself is random, only the accounting is checked.
	res, err := RunBatch(context.Background(), 3, 2, [3]int{1, 2, 5})
	is.NoErr(err)
	is.Equal(res.Games, 3)
	is.Equal(res.Solved+res.DeadEnded, 3)
	is.True(res.Elapsed > 0)
	if res.Solved > 0 {
		is.True(res.AverageMoves() > 0)
	} else {
		is.Equal(res.AverageMoves(), 0.0)
	}
}

func TestRunBatchCancelled(t *testing.T) {
	is := is.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RunBatch(ctx, 2, 1, [3]int{1, 2, 5})
	is.True(err != nil)
}
