package archetypes

//go:generate mockgen -destination=mock/mock.go -package=mockarchetypes -source=interface.go

import (
	"context"

	"github.com/KirkDiggler/archetype-balancer/internal/entities"
)

// Repository stores proposed archetypes and the outcome of every balance check
type Repository interface {
	// Save creates or replaces an archetype
	Save(ctx context.Context, archetype *entities.Archetype) error

	// Get retrieves an archetype by ID
	Get(ctx context.Context, id string) (*entities.Archetype, error)

	// RecordBalance appends a balance outcome to the archetype's history
	RecordBalance(ctx context.Context, record *entities.BalanceRecord) error

	// History returns balance outcomes oldest first
	History(ctx context.Context, archetypeID string) ([]*entities.BalanceRecord, error)
}
