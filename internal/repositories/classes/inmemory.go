package classes

import (
	"context"
	"sync"

	"github.com/KirkDiggler/archetype-balancer/internal/entities"
	dnderr "github.com/KirkDiggler/archetype-balancer/internal/errors"
)

// InMemoryRepository keeps the roster in process memory.
// Used when no REDIS_URL is configured and in tests.
type InMemoryRepository struct {
	mu      sync.RWMutex
	classes map[string]*entities.ClassDefinition
	order   []string
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() Repository {
	return &InMemoryRepository{
		classes: make(map[string]*entities.ClassDefinition),
	}
}

// Create stores a new class
func (r *InMemoryRepository) Create(ctx context.Context, class *entities.ClassDefinition) error {
	if err := validateClass(class); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.classes[class.ID]; exists {
		return dnderr.AlreadyExistsf("class with ID '%s' already exists", class.ID).
			WithMeta("class_id", class.ID)
	}

	classCopy := *class
	r.classes[class.ID] = &classCopy
	r.order = append(r.order, class.ID)

	return nil
}

// Get retrieves a class by ID
func (r *InMemoryRepository) Get(ctx context.Context, id string) (*entities.ClassDefinition, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("class ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	class, exists := r.classes[id]
	if !exists {
		return nil, classNotFound(id)
	}

	classCopy := *class
	return &classCopy, nil
}

// List returns every class in creation order
func (r *InMemoryRepository) List(ctx context.Context) ([]*entities.ClassDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entities.ClassDefinition, 0, len(r.order))
	for _, id := range r.order {
		classCopy := *r.classes[id]
		result = append(result, &classCopy)
	}

	return result, nil
}

// Delete removes a class
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dnderr.InvalidArgument("class ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.classes[id]; !exists {
		return classNotFound(id)
	}

	delete(r.classes, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return nil
}

func validateClass(class *entities.ClassDefinition) error {
	if class == nil {
		return dnderr.InvalidArgument("class cannot be nil")
	}
	if class.ID == "" {
		return dnderr.InvalidArgument("class ID is required")
	}
	return nil
}

func classNotFound(id string) error {
	return dnderr.NotFoundf("class with ID '%s' not found", id).
		WithMeta("class_id", id)
}
