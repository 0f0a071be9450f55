package events

import (
	"github.com/KirkDiggler/archetype-balancer/internal/consensus"
	"github.com/KirkDiggler/archetype-balancer/internal/entities"
)

// EventType identifies a balancing event
type EventType string

const (
	EventTypeArchetypeProposed EventType = "archetype_proposed"
	EventTypeBalanceChecked    EventType = "balance_checked"
	EventTypeHotfixApplied     EventType = "hotfix_applied"
)

// AllEventTypes lists every event type the bus knows about
func AllEventTypes() []EventType {
	return []EventType{
		EventTypeArchetypeProposed,
		EventTypeBalanceChecked,
		EventTypeHotfixApplied,
	}
}

// Event is the base interface for all events
type Event interface {
	GetType() EventType
	GetArchetype() *entities.Archetype
	IsCancelled() bool
	Cancel()
}

// BaseEvent provides common implementation for all events
type BaseEvent struct {
	Type      EventType
	Archetype *entities.Archetype
	Cancelled bool
}

func (e *BaseEvent) GetType() EventType                { return e.Type }
func (e *BaseEvent) GetArchetype() *entities.Archetype { return e.Archetype }
func (e *BaseEvent) IsCancelled() bool                 { return e.Cancelled }
func (e *BaseEvent) Cancel()                           { e.Cancelled = true }

// ArchetypeProposedEvent fires after an archetype is generated from user input
type ArchetypeProposedEvent struct {
	BaseEvent
	Input *entities.ArchetypeInput
}

// NewArchetypeProposedEvent creates an ArchetypeProposedEvent
func NewArchetypeProposedEvent(archetype *entities.Archetype, input *entities.ArchetypeInput) *ArchetypeProposedEvent {
	return &ArchetypeProposedEvent{
		BaseEvent: BaseEvent{Type: EventTypeArchetypeProposed, Archetype: archetype},
		Input:     input,
	}
}

// BalanceCheckedEvent fires after the consensus routine answers
type BalanceCheckedEvent struct {
	BaseEvent
	Result    *consensus.Result
	Proposals []string
	Agents    []string
}

// NewBalanceCheckedEvent creates a BalanceCheckedEvent
func NewBalanceCheckedEvent(archetype *entities.Archetype, result *consensus.Result, proposals, agents []string) *BalanceCheckedEvent {
	return &BalanceCheckedEvent{
		BaseEvent: BaseEvent{Type: EventTypeBalanceChecked, Archetype: archetype},
		Result:    result,
		Proposals: proposals,
		Agents:    agents,
	}
}

// HotfixAppliedEvent fires each time an archetype is nudged toward the roster
type HotfixAppliedEvent struct {
	BaseEvent
	Round  int
	Before entities.PowerVector
	After  entities.PowerVector
}

// NewHotfixAppliedEvent creates a HotfixAppliedEvent
func NewHotfixAppliedEvent(archetype *entities.Archetype, round int, before, after entities.PowerVector) *HotfixAppliedEvent {
	return &HotfixAppliedEvent{
		BaseEvent: BaseEvent{Type: EventTypeHotfixApplied, Archetype: archetype},
		Round:     round,
		Before:    before,
		After:     after,
	}
}
