package services

import (
	"io"

	"github.com/KirkDiggler/archetype-balancer/internal/consensus"
	"github.com/KirkDiggler/archetype-balancer/internal/events"
	"github.com/KirkDiggler/archetype-balancer/internal/repositories/archetypes"
	"github.com/KirkDiggler/archetype-balancer/internal/repositories/classes"
	balanceService "github.com/KirkDiggler/archetype-balancer/internal/services/balance"
	"github.com/KirkDiggler/archetype-balancer/internal/uuid"
)

// Provider holds all service instances
type Provider struct {
	BalanceService balanceService.Service

	ClassRepository     classes.Repository
	ArchetypeRepository archetypes.Repository
	EventBus            *events.Bus
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	ClassRepository     classes.Repository
	ArchetypeRepository archetypes.Repository
	Routine             consensus.Routine
	EventBus            *events.Bus
	UUIDGenerator       uuid.Generator
	Out                 io.Writer
	HotfixRate          float64
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) (*Provider, error) {
	if cfg == nil {
		cfg = &ProviderConfig{}
	}

	// Use in-memory repositories if none provided
	classRepo := cfg.ClassRepository
	if classRepo == nil {
		classRepo = classes.NewInMemoryRepository()
	}

	archetypeRepo := cfg.ArchetypeRepository
	if archetypeRepo == nil {
		archetypeRepo = archetypes.NewInMemoryRepository()
	}

	routine := cfg.Routine
	if routine == nil {
		var err error
		routine, err = consensus.NewValenceRoutine(consensus.DefaultJoyThreshold)
		if err != nil {
			return nil, err
		}
	}

	bus := cfg.EventBus
	if bus == nil {
		bus = events.NewBus()
	}

	ids := cfg.UUIDGenerator
	if ids == nil {
		ids = uuid.NewGoogleUUIDGenerator()
	}

	svc := balanceService.NewService(&balanceService.ServiceConfig{
		Routine:       routine,
		Classes:       classRepo,
		Archetypes:    archetypeRepo,
		EventBus:      bus,
		UUIDGenerator: ids,
		Out:           cfg.Out,
		HotfixRate:    cfg.HotfixRate,
	})

	return &Provider{
		BalanceService:      svc,
		ClassRepository:     classRepo,
		ArchetypeRepository: archetypeRepo,
		EventBus:            bus,
	}, nil
}
