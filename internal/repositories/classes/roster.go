package classes

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/archetype-balancer/internal/entities"
	dnderr "github.com/KirkDiggler/archetype-balancer/internal/errors"
	"github.com/KirkDiggler/archetype-balancer/internal/uuid"
)

// Roster is the on-disk shape of a class roster file:
//
//	classes:
//	  - id: warden
//	    name: Warden
//	    power_vector: [8, 8, 8]
type Roster struct {
	Classes []*entities.ClassDefinition `yaml:"classes"`
}

// LoadRoster reads and parses a YAML roster file
func LoadRoster(path string) ([]*entities.ClassDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	roster, err := ParseRoster(data)
	if err != nil {
		return nil, dnderr.Wrapf(err, "parsing roster file %s", path)
	}
	return roster, nil
}

// ParseRoster decodes a YAML roster. IDs may be omitted; Seed fills them in.
func ParseRoster(data []byte) ([]*entities.ClassDefinition, error) {
	var roster Roster
	if err := yaml.Unmarshal(data, &roster); err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeInvalidArgument, "decoding roster")
	}

	for i, class := range roster.Classes {
		if class == nil {
			return nil, dnderr.InvalidArgumentf("roster entry %d is empty", i)
		}
	}

	return roster.Classes, nil
}

// Seed stores every class in repo, generating IDs for classes without one.
// It stops at the first failure.
func Seed(ctx context.Context, repo Repository, ids uuid.Generator, roster []*entities.ClassDefinition) error {
	for _, class := range roster {
		if class.ID == "" {
			class.ID = ids.New()
		}
		if err := repo.Create(ctx, class); err != nil {
			return dnderr.Wrapf(err, "seeding class %s", class.Name)
		}
	}
	return nil
}
