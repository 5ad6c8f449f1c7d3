// Package levels loads level definitions: a board string, a stack
// string, and the best move count known so far for the deal. Level
// files are YAML.
package levels

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"spidersolver/board"
	"spidersolver/card"
)

// Level is one deal. The board string holds seven space-separated rows
// of rank characters; the stack string holds the remaining 24 ranks in
// deal order. Ranks use one character each: a, 2-9, 0 (ten), j, d, k.
type Level struct {
	Name          string `yaml:"name"`
	Board         string `yaml:"board"`
	Stack         string `yaml:"stack"`
	KnownMinMoves int    `yaml:"known_min_moves"`
}

// File is the on-disk shape of a level file.
type File struct {
	Levels []Level `yaml:"levels"`
}

// Example is the reference deal, solvable in 33 moves.
var Example = Level{
	Name:          "example",
	Board:         "5 30 j2d k689 d8357 564390 6daakk7",
	Stack:         "49d083562920k87j4jaa47j2",
	KnownMinMoves: 33,
}

// Load reads a YAML level file.
func Load(path string) ([]Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading level file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing level file %s: %w", path, err)
	}
	if len(f.Levels) == 0 {
		return nil, fmt.Errorf("level file %s holds no levels", path)
	}
	return f.Levels, nil
}

// ParseRows parses a board string into rank rows.
func ParseRows(s string) ([][]int, error) {
	var rows [][]int
	for _, rowStr := range strings.Fields(strings.TrimSpace(s)) {
		row := make([]int, 0, len(rowStr))
		for _, ch := range rowStr {
			r, err := card.RankFromChar(ch)
			if err != nil {
				return nil, err
			}
			row = append(row, r)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ParseStack parses a stack string into deal-order ranks.
func ParseStack(s string) ([]int, error) {
	ranks := make([]int, 0, len(s))
	for _, ch := range strings.TrimSpace(s) {
		r, err := card.RankFromChar(ch)
		if err != nil {
			return nil, err
		}
		ranks = append(ranks, r)
	}
	return ranks, nil
}

// NewBoard builds a validated board from the level strings.
func (l Level) NewBoard() (*board.Board, error) {
	rows, err := ParseRows(l.Board)
	if err != nil {
		return nil, fmt.Errorf("level %s board: %w", l.Name, err)
	}
	stackRanks, err := ParseStack(l.Stack)
	if err != nil {
		return nil, fmt.Errorf("level %s stack: %w", l.Name, err)
	}
	b, err := board.New(rows, stackRanks)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", l.Name, err)
	}
	return b, nil
}
