package balance

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/KirkDiggler/archetype-balancer/internal/consensus"
	"github.com/KirkDiggler/archetype-balancer/internal/entities"
	dnderr "github.com/KirkDiggler/archetype-balancer/internal/errors"
	"github.com/KirkDiggler/archetype-balancer/internal/events"
	"github.com/KirkDiggler/archetype-balancer/internal/repositories/archetypes"
	"github.com/KirkDiggler/archetype-balancer/internal/repositories/classes"
	"github.com/KirkDiggler/archetype-balancer/internal/uuid"
)

const (
	AgentExistingClass = "Existing Class"
	AgentNewArchetype  = "New Archetype"

	MessageBalanceAchieved = "BALANCE ACHIEVED — Eternal harmony sealed."
	MessageAutoHotfix      = "AUTO-HOTFIX: Nudging toward abundance equilibration."

	DefaultHotfixRate = 0.5
)

// Service proposes archetypes and checks them against the class roster
type Service interface {
	// ProposeArchetype turns user input into an archetype with the default branches
	ProposeArchetype(ctx context.Context, input *entities.ArchetypeInput) (*entities.Archetype, error)

	// BalanceCheck asks the consensus routine whether archetype fits the roster.
	// The archetype is not modified; one without an ID is recorded under a new ID.
	BalanceCheck(ctx context.Context, archetype *entities.Archetype) (*consensus.Result, error)

	// Equilibrate checks the archetype and nudges it toward the roster
	// centroid for up to rounds extra checks until consensus is reached
	Equilibrate(ctx context.Context, archetype *entities.Archetype, rounds int) (*EquilibrateResult, error)
}

// EquilibrateResult is the outcome of Equilibrate
type EquilibrateResult struct {
	// Archetype is a copy carrying the final power vector
	Archetype *entities.Archetype
	Result    *consensus.Result
	Rounds    int
}

// TimeProvider stamps balance records
type TimeProvider interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Routine consensus.Routine  // required
	Classes classes.Repository // required

	Archetypes    archetypes.Repository // optional, defaults to in-memory
	EventBus      *events.Bus           // optional
	UUIDGenerator uuid.Generator        // optional
	TimeProvider  TimeProvider          // optional
	Out           io.Writer             // optional, defaults to stdout
	HotfixRate    float64               // optional, defaults to DefaultHotfixRate
}

type service struct {
	routine      consensus.Routine
	classes      classes.Repository
	archetypes   archetypes.Repository
	bus          *events.Bus
	ids          uuid.Generator
	clock        TimeProvider
	out          io.Writer
	hotfixRate   float64
	successColor *color.Color
	hotfixColor  *color.Color
}

// NewService creates a new balance service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil || cfg.Routine == nil || cfg.Classes == nil {
		panic("ServiceConfig with Routine and Classes is required")
	}

	svc := &service{
		routine:      cfg.Routine,
		classes:      cfg.Classes,
		archetypes:   cfg.Archetypes,
		bus:          cfg.EventBus,
		ids:          cfg.UUIDGenerator,
		clock:        cfg.TimeProvider,
		out:          cfg.Out,
		hotfixRate:   cfg.HotfixRate,
		successColor: color.New(color.FgGreen, color.Bold),
		hotfixColor:  color.New(color.FgYellow, color.Bold),
	}

	if svc.archetypes == nil {
		svc.archetypes = archetypes.NewInMemoryRepository()
	}
	if svc.ids == nil {
		svc.ids = uuid.NewGoogleUUIDGenerator()
	}
	if svc.clock == nil {
		svc.clock = realClock{}
	}
	if svc.out == nil {
		svc.out = os.Stdout
	}
	if svc.hotfixRate <= 0 || svc.hotfixRate > 1 {
		svc.hotfixRate = DefaultHotfixRate
	}

	return svc
}

// ProposeArchetype copies the themes positionally into a new archetype
func (s *service) ProposeArchetype(ctx context.Context, input *entities.ArchetypeInput) (*entities.Archetype, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("archetype input is required")
	}

	fmt.Fprintf(s.out, "Generating archetype: %s with themes %s\n", input.Name, input.Themes)

	archetype := &entities.Archetype{
		ID:          s.ids.New(),
		Name:        input.Name,
		Branches:    append([]string(nil), entities.DefaultBranches...),
		PowerVector: input.Themes.PowerVector(),
	}

	if err := s.archetypes.Save(ctx, archetype); err != nil {
		return nil, dnderr.Wrapf(err, "failed to save archetype %s", archetype.Name)
	}

	if err := s.emit(events.NewArchetypeProposedEvent(archetype, input)); err != nil {
		return nil, err
	}

	return archetype, nil
}

// BalanceCheck runs a single consensus round
func (s *service) BalanceCheck(ctx context.Context, archetype *entities.Archetype) (*consensus.Result, error) {
	if archetype == nil {
		return nil, dnderr.InvalidArgument("archetype is required")
	}

	working := *archetype
	result, _, err := s.check(ctx, &working, 0)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Equilibrate repeats BalanceCheck, nudging a copy of the archetype between rounds
func (s *service) Equilibrate(ctx context.Context, archetype *entities.Archetype, rounds int) (*EquilibrateResult, error) {
	if archetype == nil {
		return nil, dnderr.InvalidArgument("archetype is required")
	}

	working := *archetype
	working.Branches = append([]string(nil), archetype.Branches...)

	result, roster, err := s.check(ctx, &working, 0)
	if err != nil {
		return nil, err
	}

	used := 0
	for !result.Consensus && used < rounds && len(roster) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		used++

		before := working.PowerVector
		working.PowerVector = Nudge(before, rosterCentroid(roster), s.hotfixRate)

		if err := s.emit(events.NewHotfixAppliedEvent(&working, used, before, working.PowerVector)); err != nil {
			return nil, err
		}

		result, roster, err = s.check(ctx, &working, used)
		if err != nil {
			return nil, err
		}
	}

	return &EquilibrateResult{
		Archetype: &working,
		Result:    result,
		Rounds:    used,
	}, nil
}

// check loads the roster, asks the routine, prints the verdict and records it
func (s *service) check(ctx context.Context, archetype *entities.Archetype, hotfixRound int) (*consensus.Result, []*entities.ClassDefinition, error) {
	roster, err := s.classes.List(ctx)
	if err != nil {
		return nil, nil, dnderr.Wrap(err, "failed to load class roster")
	}

	proposals, agents := BuildBallot(roster, archetype)

	result, err := s.routine.ReachConsensus(ctx, proposals, agents)
	if err != nil {
		return nil, nil, dnderr.Wrapf(err, "consensus routine failed for %s", archetype.Name)
	}
	if result == nil {
		return nil, nil, dnderr.Internalf("consensus routine returned no result for %s", archetype.Name)
	}

	if result.Consensus {
		s.successColor.Fprintln(s.out, MessageBalanceAchieved)
	} else {
		s.hotfixColor.Fprintln(s.out, MessageAutoHotfix)
	}

	if err := s.record(ctx, archetype, result, hotfixRound); err != nil {
		return nil, nil, err
	}

	if err := s.emit(events.NewBalanceCheckedEvent(archetype, result, proposals, agents)); err != nil {
		return nil, nil, err
	}

	return result, roster, nil
}

func (s *service) record(ctx context.Context, archetype *entities.Archetype, result *consensus.Result, hotfixRound int) error {
	if archetype.ID == "" {
		archetype.ID = s.ids.New()
	}

	if err := s.archetypes.Save(ctx, archetype); err != nil {
		return dnderr.Wrapf(err, "failed to save archetype %s", archetype.Name)
	}

	err := s.archetypes.RecordBalance(ctx, &entities.BalanceRecord{
		ArchetypeID:  archetype.ID,
		PowerVector:  archetype.PowerVector,
		Consensus:    result.Consensus,
		Joy:          result.Joy,
		Routine:      result.Routine,
		HotfixRounds: hotfixRound,
		CheckedAt:    s.clock.Now(),
	})
	if err != nil {
		return dnderr.Wrapf(err, "failed to record balance for %s", archetype.Name)
	}

	return nil
}

func (s *service) emit(event events.Event) error {
	if s.bus == nil {
		return nil
	}
	if err := s.bus.Emit(event); err != nil {
		return dnderr.Wrapf(err, "failed to emit %s", event.GetType())
	}
	return nil
}
