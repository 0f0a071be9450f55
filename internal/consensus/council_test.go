package consensus_test

import (
	"context"
	"testing"

	"github.com/KirkDiggler/archetype-balancer/internal/consensus"
	dnderr "github.com/KirkDiggler/archetype-balancer/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// three balanced classes and a lopsided newcomer; at 0.9 the classes vote
// for and the newcomer votes against
var (
	councilProposals = []string{"[8, 8, 8]", "[8, 8, 8]", "[8, 8, 8]", "[0, 0, 24]"}
	councilAgents    = []string{"Existing Class", "Existing Class", "Existing Class", "New Archetype"}
)

func TestCouncil_MajorityPasses(t *testing.T) {
	routine, err := consensus.NewCouncilRoutine(&consensus.CouncilConfig{JoyThreshold: 0.9})
	require.NoError(t, err)

	result, err := routine.ReachConsensus(context.Background(), councilProposals, councilAgents)
	require.NoError(t, err)

	assert.True(t, result.Consensus)
	assert.False(t, result.Tied)
	assert.Equal(t, 3.0, result.VotesFor)
	assert.Equal(t, 1.0, result.VotesAgainst)
	assert.Equal(t, consensus.RoutineCouncil, result.Routine)
	assert.False(t, result.Votes[3].InFavor)
}

func TestCouncil_WeightedTie(t *testing.T) {
	routine, err := consensus.NewCouncilRoutine(&consensus.CouncilConfig{
		JoyThreshold: 0.9,
		AgentWeights: map[string]float64{"New Archetype": 3},
	})
	require.NoError(t, err)

	result, err := routine.ReachConsensus(context.Background(), councilProposals, councilAgents)
	require.NoError(t, err)

	assert.False(t, result.Consensus)
	assert.True(t, result.Tied)
	assert.Equal(t, 3.0, result.Votes[3].Weight)
}

func TestCouncil_WeightedRejection(t *testing.T) {
	routine, err := consensus.NewCouncilRoutine(&consensus.CouncilConfig{
		JoyThreshold: 0.9,
		AgentWeights: map[string]float64{"New Archetype": 5, "Existing Class": 1},
	})
	require.NoError(t, err)

	result, err := routine.ReachConsensus(context.Background(), councilProposals, councilAgents)
	require.NoError(t, err)

	assert.False(t, result.Consensus)
	assert.False(t, result.Tied)
	assert.Equal(t, 5.0, result.VotesAgainst)
}

func TestNewCouncilRoutine_Invalid(t *testing.T) {
	_, err := consensus.NewCouncilRoutine(nil)
	assert.True(t, dnderr.IsInvalidArgument(err))

	_, err = consensus.NewCouncilRoutine(&consensus.CouncilConfig{JoyThreshold: 2})
	assert.True(t, dnderr.IsInvalidArgument(err))

	_, err = consensus.NewCouncilRoutine(&consensus.CouncilConfig{
		JoyThreshold: 0.98,
		AgentWeights: map[string]float64{"Existing Class": -1},
	})
	assert.True(t, dnderr.IsInvalidArgument(err))
}
