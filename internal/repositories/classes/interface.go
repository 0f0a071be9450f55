package classes

//go:generate mockgen -destination=mock/mock.go -package=mockclasses -source=interface.go

import (
	"context"

	"github.com/KirkDiggler/archetype-balancer/internal/entities"
)

// Repository stores the roster of existing classes
type Repository interface {
	// Create stores a new class; the ID must be set and unused
	Create(ctx context.Context, class *entities.ClassDefinition) error

	// Get retrieves a class by ID
	Get(ctx context.Context, id string) (*entities.ClassDefinition, error)

	// List returns every class in the order it was created
	List(ctx context.Context) ([]*entities.ClassDefinition, error)

	// Delete removes a class
	Delete(ctx context.Context, id string) error
}
