package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/liwamdaman/azul/cmd/azul/shared"
	"github.com/liwamdaman/azul/internal/bot"
	"github.com/liwamdaman/azul/internal/config"
	"github.com/liwamdaman/azul/internal/display"
	"github.com/liwamdaman/azul/internal/game"
	"github.com/liwamdaman/azul/internal/gameid"
	"github.com/liwamdaman/azul/internal/randutil"
	"github.com/liwamdaman/azul/internal/savegame"
)

type PlayCmd struct {
	Seats    []string `default:"human,greedy" help:"Strategy per seat; use 'human' for seats played at this terminal"`
	Names    []string `help:"Player names, in seat order"`
	Config   string   `help:"Take seats, seed and strictness from a match file instead"`
	Seed     *int64   `help:"Seed for the bag and the bots (default: time based)"`
	Load     string   `type:"existingfile" help:"Resume a saved game"`
	SaveDir  string   `default:"." help:"Directory for save files"`
	Strict   bool     `help:"Verify game invariants after every command"`
	LogLevel string   `default:"warn" help:"Log level (debug|info|warn|error)"`
}

func (c *PlayCmd) Run() error {
	logger, err := shared.NewEngineLogger(os.Stderr, c.LogLevel)
	if err != nil {
		return err
	}

	seed := randutil.TimeSeed()
	if c.Seed != nil {
		seed = *c.Seed
	}
	strategies := c.Seats
	names := c.Names
	strict := c.Strict
	if c.Config != "" {
		cfg, err := config.Load(c.Config)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		strategies = cfg.Strategies()
		names = cfg.Names()
		strict = strict || cfg.Match.Strict
		if c.Seed == nil {
			seed = cfg.Match.Seed
		}
	}

	var opts []game.Option
	opts = append(opts, game.WithLogger(logger.WithPrefix("game")))
	if strict {
		opts = append(opts, game.WithStrictChecks())
	}

	rng := randutil.New(seed)
	id := gameid.Generate()
	var g *game.Game
	if c.Load != "" {
		doc, err := savegame.Load(c.Load)
		if err != nil {
			return err
		}
		if g, err = doc.Restore(rng, opts...); err != nil {
			return err
		}
		strategies = doc.Strategies()
		for i, strategy := range strategies {
			if strategy == "" {
				strategies[i] = config.Human
			}
		}
		id = doc.ID
	} else {
		if len(names) == 0 {
			names = defaultNames(strategies)
		}
		if len(names) != len(strategies) {
			return fmt.Errorf("%d names for %d seats", len(names), len(strategies))
		}
		if n := len(strategies); n < 2 || n > 4 {
			return fmt.Errorf("need 2 to 4 seats, got %d", n)
		}
		g = game.New(rng, names, opts...)
	}

	s, err := newSession(g, strategies, seed, logger, display.New(os.Stdout))
	if err != nil {
		return err
	}
	s.in = bufio.NewScanner(os.Stdin)
	s.out = os.Stdout
	s.id = id
	s.saveDir = c.SaveDir
	return s.run(context.Background())
}

func defaultNames(strategies []string) []string {
	names := make([]string, len(strategies))
	humans := 0
	for i, strategy := range strategies {
		if strategy == config.Human {
			humans++
			names[i] = fmt.Sprintf("Player %d", humans)
		} else {
			names[i] = fmt.Sprintf("%s-%d", strategy, i+1)
		}
	}
	return names
}

// session is one game at the terminal: bots move on their own, human seats
// are prompted for commands.
type session struct {
	engine     *game.Engine
	strategies []string
	render     *display.Renderer
	in         *bufio.Scanner
	out        io.Writer
	clock      quartz.Clock
	id         string
	saveDir    string
}

func newSession(g *game.Game, strategies []string, seed int64, logger *log.Logger, render *display.Renderer) (*session, error) {
	if len(strategies) != g.NumPlayers() {
		return nil, fmt.Errorf("%d strategies for %d players", len(strategies), g.NumPlayers())
	}
	s := &session{
		strategies: strategies,
		render:     render,
		clock:      quartz.NewReal(),
		out:        io.Discard,
	}
	s.engine = game.NewEngine(g, game.WithEngineLogger(logger.WithPrefix("engine")))
	for seat, strategy := range strategies {
		if strategy == config.Human {
			continue
		}
		agent, err := bot.New(strategy, randutil.New(randutil.Derive(seed, seat+1)), logger)
		if err != nil {
			return nil, fmt.Errorf("seat %d: %w", seat+1, err)
		}
		if err := s.engine.SetAgent(seat, agent); err != nil {
			return nil, err
		}
	}
	s.engine.EventBus().Subscribe(game.EventSubscriberFunc(s.onEvent))
	return s, nil
}

func (s *session) onEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.TilesTakenEvent:
		if e.ByAgent {
			fmt.Fprintf(s.out, "%s: %s\n", e.PlayerName, formatMove(e.Result.Move))
		}
	case game.RoundScoredEvent:
		fmt.Fprintf(s.out, "\n%s\n\n", s.render.Summary(s.engine.Game().Snapshot(), e.Summary))
	case game.GameOverEvent:
		fmt.Fprintf(s.out, "%s wins with %d points\n", e.WinnerName, e.Scores[e.Winner])
	}
}

// run plays until the game ends, input runs out or a player quits.
func (s *session) run(ctx context.Context) error {
	showBoard := true
	for {
		err := s.engine.Run(ctx)
		if err == nil {
			fmt.Fprintln(s.out, s.render.Board(s.engine.Game().Snapshot()))
			return nil
		}
		if !errors.Is(err, game.ErrNoAgent) {
			return err
		}

		g := s.engine.Game()
		if showBoard {
			fmt.Fprintf(s.out, "\n%s\n", s.render.Board(g.Snapshot()))
			showBoard = false
		}
		fmt.Fprintf(s.out, "%s> ", g.Player(g.CurrentPlayer()).Name)
		if !s.in.Scan() {
			fmt.Fprintln(s.out)
			return s.in.Err()
		}

		cmd, err := parseCommand(s.in.Text())
		if errors.Is(err, errEmptyCommand) {
			continue
		}
		if err != nil {
			fmt.Fprintf(s.out, "%v (type help for commands)\n", err)
			continue
		}

		switch cmd.kind {
		case cmdMove:
			if _, err := s.engine.Play(cmd.move); err != nil {
				fmt.Fprintf(s.out, "illegal move: %v\n", err)
				continue
			}
			showBoard = true
		case cmdUndo:
			if err := s.engine.Undo(); err != nil {
				fmt.Fprintf(s.out, "cannot undo: %v\n", err)
				continue
			}
			showBoard = true
		case cmdSave:
			path, err := s.save(cmd.arg)
			if err != nil {
				fmt.Fprintf(s.out, "save failed: %v\n", err)
				continue
			}
			fmt.Fprintf(s.out, "saved to %s\n", path)
		case cmdMoves:
			moves := bot.EnumerateMoves(g.Snapshot())
			list := make([]string, len(moves))
			for i, m := range moves {
				list[i] = formatMove(m)
			}
			fmt.Fprintf(s.out, "%d moves: %s\n", len(moves), strings.Join(list, ", "))
		case cmdBoard:
			showBoard = true
		case cmdHelp:
			fmt.Fprintln(s.out, helpText)
		case cmdQuit:
			return nil
		}
	}
}

// save writes the game to path, or to a file named after the game id in
// the save directory.
func (s *session) save(path string) (string, error) {
	if path == "" {
		path = filepath.Join(s.saveDir, s.id+".json")
	}
	doc, err := savegame.New(s.engine.Game().Snapshot(), s.strategies, s.id, s.clock.Now())
	if err != nil {
		return "", err
	}
	if err := savegame.Save(path, doc); err != nil {
		return "", err
	}
	return path, nil
}
