package game

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// Engine drives a Game for a host: it owns the current state, plays the
// seats assigned to agents, and keeps the state before the last human
// command so it can be undone.
type Engine struct {
	game   *Game
	prev   *Game
	agents map[int]Agent
	logger *log.Logger
	bus    EventBus
	clock  quartz.Clock
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithEngineLogger sets the engine's logger.
func WithEngineLogger(logger *log.Logger) EngineOption {
	return func(e *Engine) { e.logger = logger }
}

// WithClock sets the clock used to timestamp events.
func WithClock(clock quartz.Clock) EngineOption {
	return func(e *Engine) { e.clock = clock }
}

// WithEventBus sets the bus events are published on.
func WithEventBus(bus EventBus) EngineOption {
	return func(e *Engine) { e.bus = bus }
}

// NewEngine wraps g. Seats without an agent wait for Play.
func NewEngine(g *Game, opts ...EngineOption) *Engine {
	e := &Engine{
		game:   g,
		agents: make(map[int]Agent),
		logger: log.New(io.Discard),
		bus:    NewEventBus(),
		clock:  quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Game returns the current state. Undo replaces it wholesale, so do not
// hold on to the pointer across commands.
func (e *Engine) Game() *Game { return e.game }

// EventBus returns the bus events are published on.
func (e *Engine) EventBus() EventBus { return e.bus }

// SetAgent hands seat to agent. A nil agent returns the seat to the host.
func (e *Engine) SetAgent(seat int, agent Agent) error {
	if seat < 0 || seat >= e.game.NumPlayers() {
		return fmt.Errorf("%w: %d", ErrInvalidSeat, seat)
	}
	if agent == nil {
		delete(e.agents, seat)
		return nil
	}
	e.agents[seat] = agent
	return nil
}

// IsAgentSeat reports whether seat is played by an agent.
func (e *Engine) IsAgentSeat(seat int) bool {
	_, ok := e.agents[seat]
	return ok
}

// Start deals the first round.
func (e *Engine) Start() error {
	if err := e.game.SetupRound(); err != nil {
		return err
	}
	e.publishRoundStart()
	return nil
}

// Play applies a host-issued move for the current seat, which must not be
// played by an agent. On success the previous state is kept for Undo.
func (e *Engine) Play(m Move) (TakeResult, error) {
	if seat := e.game.CurrentPlayer(); e.game.Phase() == PhaseInProgress && e.IsAgentSeat(seat) {
		return TakeResult{}, fmt.Errorf("%w: seat %d is played by an agent", ErrInvalidSeat, seat)
	}
	prev := e.game.Clone()
	res, err := e.game.Apply(m)
	if err != nil {
		return TakeResult{}, err
	}
	e.prev = prev
	e.publishTake(res, false)
	return res, nil
}

// CanUndo reports whether the last command can be rolled back.
func (e *Engine) CanUndo() bool { return e.prev != nil }

// Undo restores the state from before the last host-issued move, dropping
// any agent replies made since. A scoring pass clears the history.
func (e *Engine) Undo() error {
	if e.prev == nil {
		return ErrNothingToUndo
	}
	e.game, e.prev = e.prev, nil
	e.logger.Debug("Move undone", "currentPlayer", e.game.CurrentPlayer())
	e.bus.Publish(UndoEvent{CurrentPlayer: e.game.CurrentPlayer(), timestamp: e.clock.Now()})
	return nil
}

// Step advances the game by one unit of work: score a finished round, or
// let the agent at the current seat move. It returns ErrNoAgent when the
// current seat belongs to the host.
func (e *Engine) Step() error {
	switch e.game.Phase() {
	case PhaseGameOver:
		return ErrGameOver
	case PhaseSetup:
		return e.Start()
	case PhaseRoundScoring:
		return e.score()
	}

	seat := e.game.CurrentPlayer()
	agent, ok := e.agents[seat]
	if !ok {
		return fmt.Errorf("%w %d", ErrNoAgent, seat)
	}
	m, ok := agent.ChooseMove(e.game.Snapshot(), seat)
	if !ok {
		return fmt.Errorf("seat %d: %w", seat, ErrNoMove)
	}
	res, err := e.game.Apply(m)
	if err != nil {
		return fmt.Errorf("seat %d chose %s: %w", seat, m, err)
	}
	e.publishTake(res, true)
	return nil
}

// Run steps until the game ends, the host must move, or ctx is done. It
// returns nil at game over and an ErrNoAgent error when waiting for the host.
func (e *Engine) Run(ctx context.Context) error {
	for !e.game.IsGameOver() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.Step(); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) score() error {
	summary, err := e.game.ScoreRound()
	if err != nil {
		return err
	}
	e.prev = nil
	now := e.clock.Now()
	e.bus.Publish(RoundScoredEvent{Summary: summary, timestamp: now})

	if !summary.GameOver {
		e.publishRoundStart()
		return nil
	}

	winner, _ := e.game.Winner()
	name := e.game.Player(winner).Name
	e.logger.Info("Game over", "winner", name, "scores", summary.Scores, "rounds", summary.Round)
	e.bus.Publish(GameOverEvent{
		Winner:     winner,
		WinnerName: name,
		Scores:     summary.Scores,
		timestamp:  now,
	})
	return nil
}

func (e *Engine) publishTake(res TakeResult, byAgent bool) {
	name := e.game.Player(res.Player).Name
	e.logger.Debug("Player move", "player", name, "move", res.Move, "agent", byAgent)
	e.bus.Publish(TilesTakenEvent{
		PlayerName: name,
		Result:     res,
		ByAgent:    byAgent,
		timestamp:  e.clock.Now(),
	})
}

func (e *Engine) publishRoundStart() {
	ev := RoundStartEvent{
		Round:       e.game.Round(),
		FirstPlayer: e.game.CurrentPlayer(),
		timestamp:   e.clock.Now(),
	}
	for i := range e.game.offer.Factories {
		ev.Factories[i] = e.game.offer.Factories[i].Tiles()
	}
	e.bus.Publish(ev)
}
