package events

import (
	"log"
)

// LogListener writes every event it sees to the standard logger
type LogListener struct {
	logger *log.Logger
}

// NewLogListener creates a LogListener; a nil logger uses the standard one
func NewLogListener(logger *log.Logger) *LogListener {
	if logger == nil {
		logger = log.Default()
	}
	return &LogListener{logger: logger}
}

func (l *LogListener) ID() string    { return "log-listener" }
func (l *LogListener) Priority() int { return 1000 }

// HandleEvent logs the event; it never fails
func (l *LogListener) HandleEvent(event Event) error {
	name := ""
	if a := event.GetArchetype(); a != nil {
		name = a.Name
	}

	switch e := event.(type) {
	case *ArchetypeProposedEvent:
		if e.Archetype != nil {
			l.logger.Printf("Balance: proposed %s with power vector %s", name, e.Archetype.PowerVector)
		}
	case *BalanceCheckedEvent:
		if e.Result != nil {
			l.logger.Printf("Balance: %s checked by %s routine over %d proposals, consensus=%t joy=%.4f",
				name, e.Result.Routine, len(e.Proposals), e.Result.Consensus, e.Result.Joy)
		}
	case *HotfixAppliedEvent:
		l.logger.Printf("Balance: hotfix round %d moved %s from %s to %s", e.Round, name, e.Before, e.After)
	default:
		l.logger.Printf("Balance: event %s for %s", event.GetType(), name)
	}

	return nil
}
