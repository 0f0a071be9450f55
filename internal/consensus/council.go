package consensus

import (
	"context"

	dnderr "github.com/KirkDiggler/archetype-balancer/internal/errors"
)

// CouncilConfig holds configuration for the council routine
type CouncilConfig struct {
	JoyThreshold float64

	// AgentWeights maps an agent label to its voting weight. Missing labels weigh 1.
	AgentWeights map[string]float64
}

type councilRoutine struct {
	joyThreshold float64
	weights      map[string]float64
}

// NewCouncilRoutine returns a weighted majority routine. An agent votes for
// its proposal when the proposal's joy reaches the threshold.
func NewCouncilRoutine(cfg *CouncilConfig) (Routine, error) {
	if cfg == nil {
		return nil, dnderr.InvalidArgument("council config is required")
	}
	if err := validateThreshold(cfg.JoyThreshold); err != nil {
		return nil, err
	}

	weights := make(map[string]float64, len(cfg.AgentWeights))
	for agent, w := range cfg.AgentWeights {
		if w < 0 {
			return nil, dnderr.InvalidArgumentf("weight for agent %q cannot be negative", agent).
				WithMeta("agent", agent)
		}
		weights[agent] = w
	}

	return &councilRoutine{
		joyThreshold: cfg.JoyThreshold,
		weights:      weights,
	}, nil
}

func (r *councilRoutine) weight(agent string) float64 {
	if w, ok := r.weights[agent]; ok {
		return w
	}
	return 1
}

func (r *councilRoutine) ReachConsensus(ctx context.Context, proposals, agents []string) (*Result, error) {
	if err := validateBallot(proposals, agents); err != nil {
		return nil, err
	}

	joys, err := scoreProposals(proposals)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Joy:     1,
		Votes:   make([]*Vote, len(proposals)),
		Routine: RoutineCouncil,
	}

	for i, joy := range joys {
		vote := &Vote{
			Agent:    agents[i],
			Proposal: proposals[i],
			Joy:      joy,
			InFavor:  joy >= r.joyThreshold,
			Weight:   r.weight(agents[i]),
		}
		if vote.InFavor {
			result.VotesFor += vote.Weight
		} else {
			result.VotesAgainst += vote.Weight
		}
		if joy < result.Joy {
			result.Joy = joy
		}
		result.Votes[i] = vote
	}

	switch {
	case result.VotesFor > result.VotesAgainst:
		result.Consensus = true
	case result.VotesFor == result.VotesAgainst:
		result.Tied = true
	}

	return result, nil
}
