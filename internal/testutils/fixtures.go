package testutils

import (
	"fmt"

	"github.com/KirkDiggler/archetype-balancer/internal/entities"
)

// DemoClassNames is the roster used by the demo command, in roster order
var DemoClassNames = []string{
	"Warden", "Ranger", "Sentinel", "Oracle",
	"Herald", "Mystic", "Vanguard", "Druid",
}

// CreateTestClass creates a class with the given power vector
func CreateTestClass(id, name string, power entities.PowerVector) *entities.ClassDefinition {
	return &entities.ClassDefinition{
		ID:          id,
		Name:        name,
		PowerVector: power,
	}
}

// DemoRoster returns eight classes at [8, 8, 8]
func DemoRoster() []*entities.ClassDefinition {
	roster := make([]*entities.ClassDefinition, len(DemoClassNames))
	for i, name := range DemoClassNames {
		roster[i] = CreateTestClass(fmt.Sprintf("class-%d", i+1), name, entities.PowerVector{8, 8, 8})
	}
	return roster
}

// StormweaverInput is the demo archetype proposal
func StormweaverInput() *entities.ArchetypeInput {
	return &entities.ArchetypeInput{
		Name: "Stormweaver",
		Themes: entities.Themes{
			Offensive:   9,
			Restorative: 7,
			Diplomatic:  8,
		},
	}
}

// CreateTestArchetype creates an archetype with the default branches
func CreateTestArchetype(id, name string, power entities.PowerVector) *entities.Archetype {
	return &entities.Archetype{
		ID:          id,
		Name:        name,
		Branches:    append([]string(nil), entities.DefaultBranches...),
		PowerVector: power,
	}
}
