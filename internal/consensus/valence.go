package consensus

import (
	"context"
)

type valenceRoutine struct {
	joyThreshold float64
}

// NewValenceRoutine returns a routine that agrees only when every proposal
// reaches joyThreshold
func NewValenceRoutine(joyThreshold float64) (Routine, error) {
	if err := validateThreshold(joyThreshold); err != nil {
		return nil, err
	}

	return &valenceRoutine{joyThreshold: joyThreshold}, nil
}

func (r *valenceRoutine) ReachConsensus(ctx context.Context, proposals, agents []string) (*Result, error) {
	if err := validateBallot(proposals, agents); err != nil {
		return nil, err
	}

	joys, err := scoreProposals(proposals)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Consensus: true,
		Joy:       1,
		Votes:     make([]*Vote, len(proposals)),
		Routine:   RoutineValence,
	}

	for i, joy := range joys {
		inFavor := joy >= r.joyThreshold
		result.Votes[i] = &Vote{
			Agent:    agents[i],
			Proposal: proposals[i],
			Joy:      joy,
			InFavor:  inFavor,
		}
		if joy < result.Joy {
			result.Joy = joy
		}
		if !inFavor {
			result.Consensus = false
		}
	}

	return result, nil
}
