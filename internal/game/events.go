package game

import (
	"time"

	"github.com/liwamdaman/azul/internal/tile"
)

// EventType identifies a game event.
type EventType string

const (
	EventTypeRoundStart  EventType = "round_start"
	EventTypeTilesTaken  EventType = "tiles_taken"
	EventTypeRoundScored EventType = "round_scored"
	EventTypeGameOver    EventType = "game_over"
	EventTypeUndo        EventType = "undo"
)

func (et EventType) String() string {
	return string(et)
}

// GameEvent is anything the engine publishes.
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// RoundStartEvent is published when a round has been dealt.
type RoundStartEvent struct {
	Round       int
	FirstPlayer int
	Factories   [NumFactories][]tile.Tile
	timestamp   time.Time
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }
func (e RoundStartEvent) Timestamp() time.Time { return e.timestamp }

// TilesTakenEvent is published after a draft is applied.
type TilesTakenEvent struct {
	PlayerName string
	Result     TakeResult
	ByAgent    bool
	timestamp  time.Time
}

func (e TilesTakenEvent) EventType() EventType { return EventTypeTilesTaken }
func (e TilesTakenEvent) Timestamp() time.Time { return e.timestamp }

// RoundScoredEvent is published after a scoring pass.
type RoundScoredEvent struct {
	Summary   RoundSummary
	timestamp time.Time
}

func (e RoundScoredEvent) EventType() EventType { return EventTypeRoundScored }
func (e RoundScoredEvent) Timestamp() time.Time { return e.timestamp }

// GameOverEvent is published once, when the game ends.
type GameOverEvent struct {
	Winner     int
	WinnerName string
	Scores     []int
	timestamp  time.Time
}

func (e GameOverEvent) EventType() EventType { return EventTypeGameOver }
func (e GameOverEvent) Timestamp() time.Time { return e.timestamp }

// UndoEvent is published when a command is rolled back.
type UndoEvent struct {
	CurrentPlayer int
	timestamp     time.Time
}

func (e UndoEvent) EventType() EventType { return EventTypeUndo }
func (e UndoEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber receives published events.
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventSubscriberFunc adapts a function to EventSubscriber.
type EventSubscriberFunc func(event GameEvent)

// OnEvent calls f.
func (f EventSubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus fans events out to subscribers, synchronously and in
// subscription order.
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus.
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber.
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Publish delivers event to every subscriber.
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, s := range bus.subscribers {
		s.OnEvent(event)
	}
}
