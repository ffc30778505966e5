package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/liwamdaman/azul/internal/game"
	"github.com/liwamdaman/azul/internal/tile"
)

type commandKind int

const (
	cmdMove commandKind = iota
	cmdUndo
	cmdSave
	cmdMoves
	cmdBoard
	cmdHelp
	cmdQuit
)

type command struct {
	kind commandKind
	move game.Move
	arg  string
}

const helpText = `Commands:
  <source> <color> <line>  take tiles, e.g. "f2 red 3" or "c blue floor"
                           source: f1..f5 (or 1..5) or c/center
                           color:  blue, yellow, red, black, cyan (or b y r k c)
                           line:   1..5 or floor
  moves                    list legal moves
  board                    show the table again
  undo                     take back your last move and the bot replies since
  save [file]              write the game to a file
  help                     show this help
  quit                     leave the game`

var errEmptyCommand = errors.New("empty command")

func parseCommand(line string) (command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return command{}, errEmptyCommand
	}
	switch strings.ToLower(fields[0]) {
	case "undo", "u":
		return command{kind: cmdUndo}, nil
	case "save":
		c := command{kind: cmdSave}
		if len(fields) > 1 {
			c.arg = fields[1]
		}
		return c, nil
	case "moves", "m":
		return command{kind: cmdMoves}, nil
	case "board", "b":
		return command{kind: cmdBoard}, nil
	case "help", "h", "?":
		return command{kind: cmdHelp}, nil
	case "quit", "q", "exit":
		return command{kind: cmdQuit}, nil
	}
	m, err := ParseMove(fields)
	if err != nil {
		return command{}, err
	}
	return command{kind: cmdMove, move: m}, nil
}

// ParseMove reads a move from its three fields: source, color and target
// line, all numbered from 1 as shown on screen.
func ParseMove(fields []string) (game.Move, error) {
	if len(fields) != 3 {
		return game.Move{}, fmt.Errorf("want <source> <color> <line>, got %d fields", len(fields))
	}
	source, err := parseSource(strings.ToLower(fields[0]))
	if err != nil {
		return game.Move{}, err
	}
	color, err := tile.Parse(fields[1])
	if err != nil {
		return game.Move{}, err
	}
	line, err := parseLine(strings.ToLower(fields[2]))
	if err != nil {
		return game.Move{}, err
	}
	return game.Move{Source: source, Color: color, Line: line}, nil
}

func parseSource(s string) (int, error) {
	if s == "c" || s == "center" {
		return game.CenterSource, nil
	}
	n, err := strconv.Atoi(strings.TrimPrefix(s, "f"))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("unknown source %q", s)
	}
	return n - 1, nil
}

func parseLine(s string) (int, error) {
	if s == "floor" || s == "fl" {
		return game.FloorLine, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("unknown line %q", s)
	}
	return n - 1, nil
}

// formatMove is the inverse of ParseMove.
func formatMove(m game.Move) string {
	src := "c"
	if m.Source != game.CenterSource {
		src = fmt.Sprintf("f%d", m.Source+1)
	}
	line := "floor"
	if m.Line != game.FloorLine {
		line = strconv.Itoa(m.Line + 1)
	}
	return fmt.Sprintf("%s %s %s", src, m.Color, line)
}
