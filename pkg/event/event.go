// pkg/event/event.go
package event

import (
	"sync"

	"github.com/opd-ai/go-gridwars/pkg/enemy"
	"github.com/opd-ai/go-gridwars/pkg/physics"
)

// Type represents the type of event
type Type string

// Simulation event types
const (
	MissileFired   Type = "missile_fired"
	EnemySpawned   Type = "enemy_spawned"
	EnemyDestroyed Type = "enemy_destroyed"
	PlayerDied     Type = "player_died"
	ScoreChanged   Type = "score_changed"
	WaveStarted    Type = "wave_started"
	GameLost       Type = "game_lost"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// SubscriptionID identifies a registered handler
type SubscriptionID uint64

// Subscription is returned by Subscribe; Cancel removes the handler
type Subscription struct {
	ID     SubscriptionID
	Type   Type
	Cancel func()
}

type subscription struct {
	id      SubscriptionID
	handler Handler
}

// Bus manages event subscriptions and dispatching.
// Handlers run synchronously on the publishing goroutine.
type Bus struct {
	handlers map[Type][]subscription
	nextID   SubscriptionID
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscription),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})
	b.mu.Unlock()

	return &Subscription{
		ID:     id,
		Type:   eventType,
		Cancel: func() { b.Unsubscribe(eventType, id) },
	}
}

// Unsubscribe removes a handler for a specific event type
func (b *Bus) Unsubscribe(eventType Type, id SubscriptionID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[eventType]
	for i, s := range subs {
		if s.id == id {
			// copy so a Publish already holding the old slice is unaffected
			next := make([]subscription, 0, len(subs)-1)
			next = append(next, subs[:i]...)
			b.handlers[eventType] = append(next, subs[i+1:]...)
			return true
		}
	}
	return false
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(event)
	}
}

// Specific event implementations

// MissileEvent is published when the player fires
type MissileEvent struct {
	BaseEvent
	MissileID uint64
	Position  physics.Vector2
	Direction physics.Vector2
}

// NewMissileEvent creates a new missile event
func NewMissileEvent(source interface{}, missileID uint64, position, direction physics.Vector2) *MissileEvent {
	return &MissileEvent{
		BaseEvent: BaseEvent{EventType: MissileFired, Source: source},
		MissileID: missileID,
		Position:  position,
		Direction: direction,
	}
}

// EnemyEvent covers enemy spawns and kills
type EnemyEvent struct {
	BaseEvent
	EnemyID  uint64
	Kind     enemy.Kind
	Position physics.Vector2
	Score    uint32 // points awarded, zero for spawns
}

// NewEnemyEvent creates a new enemy event
func NewEnemyEvent(eventType Type, source interface{}, enemyID uint64, kind enemy.Kind, position physics.Vector2, score uint32) *EnemyEvent {
	return &EnemyEvent{
		BaseEvent: BaseEvent{EventType: eventType, Source: source},
		EnemyID:   enemyID,
		Kind:      kind,
		Position:  position,
		Score:     score,
	}
}

// PlayerEvent is published when the player is hit
type PlayerEvent struct {
	BaseEvent
	Position physics.Vector2
}

// NewPlayerEvent creates a new player event
func NewPlayerEvent(eventType Type, source interface{}, position physics.Vector2) *PlayerEvent {
	return &PlayerEvent{
		BaseEvent: BaseEvent{EventType: eventType, Source: source},
		Position:  position,
	}
}

// ScoreEvent carries the running score
type ScoreEvent struct {
	BaseEvent
	Score uint32
	Delta uint32
}

// NewScoreEvent creates a new score event
func NewScoreEvent(eventType Type, source interface{}, score, delta uint32) *ScoreEvent {
	return &ScoreEvent{
		BaseEvent: BaseEvent{EventType: eventType, Source: source},
		Score:     score,
		Delta:     delta,
	}
}

// WaveEvent is published when a new wave of enemies arrives
type WaveEvent struct {
	BaseEvent
	Wave    int
	Enemies int
}

// NewWaveEvent creates a new wave event
func NewWaveEvent(source interface{}, wave, enemies int) *WaveEvent {
	return &WaveEvent{
		BaseEvent: BaseEvent{EventType: WaveStarted, Source: source},
		Wave:      wave,
		Enemies:   enemies,
	}
}
