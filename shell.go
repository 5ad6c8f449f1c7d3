package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"spidersolver/automatic"
	"spidersolver/board"
	"spidersolver/config"
	"spidersolver/levels"
	"spidersolver/solver"
)

const topMovesShown = 5

func usage(w io.Writer) {
	io.WriteString(w, "commands:\n")
	io.WriteString(w, "load <path/to/levels.yaml> [name] - load a level file, pick a level by name\n")
	io.WriteString(w, "example - load the built-in example level\n")
	io.WriteString(w, "show - display the board and stack\n")
	io.WriteString(w, "moves - list the top candidate moves\n")
	io.WriteString(w, "play <n> - play the nth listed move\n")
	io.WriteString(w, "solve [bound] - search for a minimal clearing sequence from the current state\n")
	io.WriteString(w, "auto <games> [workers] - solve random deals in bulk\n")
	io.WriteString(w, "bye / exit - leave\n")
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

type shellState struct {
	cfg   *config.Config
	level *levels.Level
	board *board.Board
}

func (st *shellState) loadLevel(l levels.Level, w io.Writer) {
	b, err := l.NewBoard()
	if err != nil {
		showMessage("Error: "+err.Error(), w)
		return
	}
	st.level = &l
	st.board = b
	showMessage(b.ToDisplayText(), w)
}

// listMoves prints the top candidates in solver order.
func (st *shellState) listMoves(w io.Writer) {
	moves := solver.SortedMoves(st.board)
	if len(moves) == 0 {
		showMessage("No moves available!", w)
		return
	}
	shown := len(moves)
	if shown > topMovesShown {
		shown = topMovesShown
	}
	for i := 0; i < shown; i++ {
		showMessage(fmt.Sprintf("[%d] %s", i+1, moves[i].ShortDescription()), w)
	}
}

func (st *shellState) play(choice int, w io.Writer) {
	moves := solver.SortedMoves(st.board)
	if choice < 1 || choice > len(moves) {
		showMessage("Invalid option", w)
		return
	}
	if err := st.board.PlayMove(moves[choice-1]); err != nil {
		showMessage("Error: "+err.Error(), w)
		return
	}
	showMessage(st.board.ToDisplayText(), w)
	if st.board.Cleared() {
		showMessage(fmt.Sprintf("[%d] All done!", st.board.Moves()), w)
	}
}

func (st *shellState) solve(bound int, w io.Writer) {
	s := solver.New()
	s.SetBranchWidths(st.cfg.TopMoves, st.cfg.FirstTopMoves, st.cfg.FirstGames)
	var trace *solver.Trace
	if st.cfg.TraceDBPath != "" {
		trace = solver.NewTrace()
		s.SetTrace(trace)
	}

	start := st.board.Copy()
	result, err := s.Solve(context.Background(), start, bound)
	if err != nil {
		showMessage("Error: "+err.Error(), w)
		return
	}
	showMessage(fmt.Sprintf("Solution found with %d moves (%s)",
		result.Moves, result.Outcome), w)
	describeSolution(st.board.Copy(), result.Path, w)

	if trace != nil {
		saveTrace(st.cfg.TraceDBPath, trace, w)
	}
}

// describeSolution replays the move-index path on a board copy,
// printing a human description of each step.
func describeSolution(b *board.Board, path []int, w io.Writer) {
	for _, choice := range path {
		moves := solver.SortedMoves(b)
		if choice < 1 || choice > len(moves) {
			showMessage("Error: solution path does not match the board", w)
			return
		}
		m := moves[choice-1]
		showMessage(fmt.Sprintf("[%d] %s", b.Moves(), m.ShortDescription()), w)
		if err := b.PlayMove(m); err != nil {
			showMessage("Error: "+err.Error(), w)
			return
		}
	}
	showMessage(fmt.Sprintf("[%d] All done!", b.Moves()), w)
}

func saveTrace(path string, trace *solver.Trace, w io.Writer) {
	store, err := solver.OpenTraceStore(path)
	if err != nil {
		showMessage("Error: "+err.Error(), w)
		return
	}
	defer store.Close()
	runID := time.Now().UTC().Format(time.RFC3339Nano)
	if err := store.Save(context.Background(), runID, trace); err != nil {
		showMessage("Error: "+err.Error(), w)
		return
	}
	showMessage(fmt.Sprintf("Saved decision trace %s (%d nodes)", runID, trace.Len()), w)
}

func shellLoop(cfg *config.Config) error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mspidersolver>\033[0m ",
		HistoryFile:     "/tmp/spidersolver-readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return err
	}
	defer l.Close()

	st := &shellState{cfg: cfg}
	if cfg.LevelFile != "" {
		lvls, err := levels.Load(cfg.LevelFile)
		if err != nil {
			return err
		}
		st.loadLevel(lvls[0], l.Stderr())
	}

	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return nil
			}
			continue
		} else if err == io.EOF {
			return nil
		}
		args, err := shellquote.Split(strings.TrimSpace(line))
		if err != nil {
			showMessage("Error: "+err.Error(), l.Stderr())
			continue
		}
		if len(args) == 0 {
			continue
		}

		cmd, args := args[0], args[1:]
		needsBoard := map[string]bool{
			"show": true, "moves": true, "play": true, "solve": true,
		}
		if needsBoard[cmd] && st.board == nil {
			showMessage("Please load a level first with the `load` or `example` command",
				l.Stderr())
			continue
		}

		switch cmd {
		case "load":
			if len(args) < 1 {
				showMessage("Usage: load <path> [name]", l.Stderr())
				continue
			}
			lvls, err := levels.Load(args[0])
			if err != nil {
				showMessage("Error: "+err.Error(), l.Stderr())
				continue
			}
			picked := lvls[0]
			if len(args) > 1 {
				found := false
				for _, lv := range lvls {
					if lv.Name == args[1] {
						picked, found = lv, true
						break
					}
				}
				if !found {
					showMessage("No level named "+args[1], l.Stderr())
					continue
				}
			}
			st.loadLevel(picked, l.Stderr())

		case "example":
			st.loadLevel(levels.Example, l.Stderr())

		case "show":
			showMessage(st.board.ToDisplayText(), l.Stderr())

		case "moves":
			st.listMoves(l.Stderr())

		case "play":
			if len(args) != 1 {
				showMessage("Usage: play <n>", l.Stderr())
				continue
			}
			choice, err := strconv.Atoi(args[0])
			if err != nil {
				showMessage("Invalid option", l.Stderr())
				continue
			}
			st.play(choice, l.Stderr())

		case "solve":
			bound := cfg.MaxMoves
			if st.level != nil && st.level.KnownMinMoves > 0 {
				bound = st.level.KnownMinMoves
			}
			if len(args) == 1 {
				if bound, err = strconv.Atoi(args[0]); err != nil {
					showMessage("Invalid bound", l.Stderr())
					continue
				}
			}
			st.solve(bound, l.Stderr())

		case "auto":
			if len(args) < 1 {
				showMessage("Usage: auto <games> [workers]", l.Stderr())
				continue
			}
			games, err := strconv.Atoi(args[0])
			if err != nil || games < 1 {
				showMessage("Invalid game count", l.Stderr())
				continue
			}
			workers := 4
			if len(args) > 1 {
				if workers, err = strconv.Atoi(args[1]); err != nil || workers < 1 {
					showMessage("Invalid worker count", l.Stderr())
					continue
				}
			}
			widths := [3]int{cfg.TopMoves, cfg.FirstTopMoves, cfg.FirstGames}
			res, err := automatic.RunBatch(context.Background(), games, workers, widths)
			if err != nil {
				showMessage("Error: "+err.Error(), l.Stderr())
				continue
			}
			showMessage(fmt.Sprintf("%d/%d deals solved, %.1f moves on average",
				res.Solved, res.Games, res.AverageMoves()), l.Stderr())

		case "help":
			usage(l.Stderr())

		case "bye", "exit":
			return nil

		default:
			log.Debug().Str("cmd", cmd).Msg("unrecognized command")
			showMessage("Unrecognized command; try `help`", l.Stderr())
		}
	}
}
