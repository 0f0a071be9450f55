package balance

import (
	"github.com/KirkDiggler/archetype-balancer/internal/entities"
)

// BuildBallot returns parallel proposal and agent sequences: every roster
// class in order, then the archetype last
func BuildBallot(roster []*entities.ClassDefinition, archetype *entities.Archetype) (proposals, agents []string) {
	proposals = make([]string, 0, len(roster)+1)
	agents = make([]string, 0, len(roster)+1)

	for _, class := range roster {
		proposals = append(proposals, class.PowerVector.String())
		agents = append(agents, AgentExistingClass)
	}

	proposals = append(proposals, archetype.PowerVector.String())
	agents = append(agents, AgentNewArchetype)

	return proposals, agents
}

// Nudge moves v toward target by rate, where 1 lands on target
func Nudge(v, target entities.PowerVector, rate float64) entities.PowerVector {
	return v.Add(target.Sub(v).Scale(rate))
}

func rosterCentroid(roster []*entities.ClassDefinition) entities.PowerVector {
	vectors := make([]entities.PowerVector, len(roster))
	for i, class := range roster {
		vectors[i] = class.PowerVector
	}
	return entities.Centroid(vectors...)
}
