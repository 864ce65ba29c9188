// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Simulation event types
const (
	FrameAdvanced     Type = "frame_advanced"
	ProjectileFired   Type = "projectile_fired"
	ProjectileEvicted Type = "projectile_evicted"
	AimRotated        Type = "aim_rotated"
	QuitRequested     Type = "quit_requested"
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

// Bus manages event subscriptions and dispatching. Handlers run
// synchronously on the publishing goroutine, in subscription order.
type Bus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]Handler),
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}

// FrameEvent is published once per simulation step
type FrameEvent struct {
	BaseEvent
	Frame       uint64
	DeltaTime   float64
	Bodies      int
	Projectiles int
}

// NewFrameEvent creates a new frame event
func NewFrameEvent(source interface{}, frame uint64, deltaTime float64, bodies, projectiles int) *FrameEvent {
	return &FrameEvent{
		BaseEvent: BaseEvent{
			EventType: FrameAdvanced,
			Source:    source,
		},
		Frame:       frame,
		DeltaTime:   deltaTime,
		Bodies:      bodies,
		Projectiles: projectiles,
	}
}

// ProjectileEvent contains information about projectile lifecycle events
type ProjectileEvent struct {
	BaseEvent
	ProjectileID uint64
	PlanetID     uint64
	Speed        float64
}

// NewProjectileEvent creates a new projectile event
func NewProjectileEvent(eventType Type, source interface{}, projectileID, planetID uint64, speed float64) *ProjectileEvent {
	return &ProjectileEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		ProjectileID: projectileID,
		PlanetID:     planetID,
		Speed:        speed,
	}
}

// AimEvent reports the player's aim angle after a rotation
type AimEvent struct {
	BaseEvent
	PlanetID uint64
	Angle    float64
}

// NewAimEvent creates a new aim event
func NewAimEvent(source interface{}, planetID uint64, angle float64) *AimEvent {
	return &AimEvent{
		BaseEvent: BaseEvent{
			EventType: AimRotated,
			Source:    source,
		},
		PlanetID: planetID,
		Angle:    angle,
	}
}

// NewQuitEvent creates the event published when quit is requested
func NewQuitEvent(source interface{}) *BaseEvent {
	return &BaseEvent{
		EventType: QuitRequested,
		Source:    source,
	}
}
