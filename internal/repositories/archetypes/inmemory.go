package archetypes

import (
	"context"
	"sync"

	"github.com/KirkDiggler/archetype-balancer/internal/entities"
	dnderr "github.com/KirkDiggler/archetype-balancer/internal/errors"
)

// InMemoryRepository keeps archetypes and their history in process memory
type InMemoryRepository struct {
	mu         sync.RWMutex
	archetypes map[string]*entities.Archetype
	history    map[string][]*entities.BalanceRecord
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() Repository {
	return &InMemoryRepository{
		archetypes: make(map[string]*entities.Archetype),
		history:    make(map[string][]*entities.BalanceRecord),
	}
}

// Save creates or replaces an archetype
func (r *InMemoryRepository) Save(ctx context.Context, archetype *entities.Archetype) error {
	if err := validateArchetype(archetype); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.archetypes[archetype.ID] = copyArchetype(archetype)
	return nil
}

// Get retrieves an archetype by ID
func (r *InMemoryRepository) Get(ctx context.Context, id string) (*entities.Archetype, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("archetype ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	archetype, exists := r.archetypes[id]
	if !exists {
		return nil, archetypeNotFound(id)
	}

	return copyArchetype(archetype), nil
}

// RecordBalance appends a balance outcome
func (r *InMemoryRepository) RecordBalance(ctx context.Context, record *entities.BalanceRecord) error {
	if err := validateRecord(record); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.archetypes[record.ArchetypeID]; !exists {
		return archetypeNotFound(record.ArchetypeID)
	}

	recordCopy := *record
	r.history[record.ArchetypeID] = append(r.history[record.ArchetypeID], &recordCopy)
	return nil
}

// History returns balance outcomes oldest first
func (r *InMemoryRepository) History(ctx context.Context, archetypeID string) ([]*entities.BalanceRecord, error) {
	if archetypeID == "" {
		return nil, dnderr.InvalidArgument("archetype ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, exists := r.archetypes[archetypeID]; !exists {
		return nil, archetypeNotFound(archetypeID)
	}

	records := r.history[archetypeID]
	result := make([]*entities.BalanceRecord, len(records))
	for i, record := range records {
		recordCopy := *record
		result[i] = &recordCopy
	}

	return result, nil
}

func copyArchetype(archetype *entities.Archetype) *entities.Archetype {
	archetypeCopy := *archetype
	archetypeCopy.Branches = append([]string(nil), archetype.Branches...)
	return &archetypeCopy
}

func validateArchetype(archetype *entities.Archetype) error {
	if archetype == nil {
		return dnderr.InvalidArgument("archetype cannot be nil")
	}
	if archetype.ID == "" {
		return dnderr.InvalidArgument("archetype ID is required")
	}
	return nil
}

func validateRecord(record *entities.BalanceRecord) error {
	if record == nil {
		return dnderr.InvalidArgument("balance record cannot be nil")
	}
	if record.ArchetypeID == "" {
		return dnderr.InvalidArgument("archetype ID is required")
	}
	return nil
}

func archetypeNotFound(id string) error {
	return dnderr.NotFoundf("archetype with ID '%s' not found", id).
		WithMeta("archetype_id", id)
}
