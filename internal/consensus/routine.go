// Package consensus decides whether a set of labeled proposals agree.
//
// The balance service treats every Routine as a black box: it hands over one
// proposal string per agent and acts only on Result.Consensus. Three routines
// ship with the module:
//
//   - valence: every proposal must reach the joy threshold
//   - council: agents vote by label weight, majority wins, ties fail
//   - remote:  the decision is delegated to an HTTP endpoint
package consensus

//go:generate mockgen -destination=mock/mock_routine.go -package=mockconsensus -source=routine.go

import (
	"context"
	"math"
	"net/http"
	"time"

	"github.com/KirkDiggler/archetype-balancer/internal/entities"
	dnderr "github.com/KirkDiggler/archetype-balancer/internal/errors"
)

const (
	RoutineValence = "valence"
	RoutineCouncil = "council"
	RoutineRemote  = "remote"

	DefaultJoyThreshold = 0.98
)

// Routine reaches (or fails to reach) agreement over parallel proposals and agents
type Routine interface {
	ReachConsensus(ctx context.Context, proposals, agents []string) (*Result, error)
}

// Result is the outcome of a consensus round
type Result struct {
	Consensus bool    `json:"consensus"`
	Joy       float64 `json:"joy"`
	Votes     []*Vote `json:"votes,omitempty"`

	// Weighted tallies, only filled by the council routine
	VotesFor     float64 `json:"votes_for,omitempty"`
	VotesAgainst float64 `json:"votes_against,omitempty"`
	Tied         bool    `json:"tied,omitempty"`

	Routine string `json:"routine"`
}

// Vote is one agent's stance on its proposal
type Vote struct {
	Agent    string  `json:"agent"`
	Proposal string  `json:"proposal"`
	Joy      float64 `json:"joy"`
	InFavor  bool    `json:"in_favor"`
	Weight   float64 `json:"weight,omitempty"`
}

// Config selects and tunes a routine
type Config struct {
	Routine      string
	JoyThreshold float64

	// AgentWeights is used by the council routine; unlisted labels weigh 1
	AgentWeights map[string]float64

	// URL and HTTPClient are used by the remote routine
	URL        string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// New builds the routine named in cfg
func New(cfg *Config) (Routine, error) {
	if cfg == nil {
		return nil, dnderr.InvalidArgument("consensus config is required")
	}

	switch cfg.Routine {
	case "", RoutineValence:
		return NewValenceRoutine(cfg.JoyThreshold)
	case RoutineCouncil:
		return NewCouncilRoutine(&CouncilConfig{
			JoyThreshold: cfg.JoyThreshold,
			AgentWeights: cfg.AgentWeights,
		})
	case RoutineRemote:
		client := cfg.HTTPClient
		if client == nil {
			client = &http.Client{Timeout: cfg.Timeout}
		}
		return NewRemoteRoutine(&RemoteConfig{
			URL:          cfg.URL,
			JoyThreshold: cfg.JoyThreshold,
			HTTPClient:   client,
		})
	default:
		return nil, dnderr.InvalidArgumentf("unknown consensus routine %q", cfg.Routine).
			WithMeta("routine", cfg.Routine)
	}
}

func validateThreshold(threshold float64) error {
	if threshold <= 0 || threshold > 1 {
		return dnderr.InvalidArgumentf("joy threshold must be in (0, 1], got %v", threshold).
			WithMeta("joy_threshold", threshold)
	}
	return nil
}

func validateBallot(proposals, agents []string) error {
	if len(proposals) == 0 {
		return dnderr.InvalidArgument("proposals cannot be empty")
	}
	if len(proposals) != len(agents) {
		return dnderr.InvalidArgumentf("got %d proposals for %d agents", len(proposals), len(agents)).
			WithMeta("proposals", len(proposals)).
			WithMeta("agents", len(agents))
	}
	return nil
}

// scoreProposals parses every proposal and rates it against the centroid
func scoreProposals(proposals []string) ([]float64, error) {
	vectors := make([]entities.PowerVector, len(proposals))
	for i, proposal := range proposals {
		v, err := entities.ParsePowerVector(proposal)
		if err != nil {
			return nil, dnderr.Wrapf(err, "proposal %d", i)
		}
		vectors[i] = v
	}

	centroid := entities.Centroid(vectors...)
	joys := make([]float64, len(vectors))
	for i, v := range vectors {
		joys[i] = Joy(v, centroid)
	}
	return joys, nil
}

// Joy rates how closely v matches the shape and total budget of centroid.
// It is the cosine similarity scaled by the ratio of the smaller to the
// larger total, so 1 means identical direction and identical budget.
func Joy(v, centroid entities.PowerVector) float64 {
	vm, cm := v.Magnitude(), centroid.Magnitude()
	switch {
	case vm == 0 && cm == 0:
		return 1
	case vm == 0 || cm == 0:
		return 0
	}

	cosine := v.Dot(centroid) / (vm * cm)

	vs, cs := math.Abs(v.Sum()), math.Abs(centroid.Sum())
	budget := 1.0
	if hi := math.Max(vs, cs); hi > 0 {
		budget = math.Min(vs, cs) / hi
	}

	joy := cosine * budget
	if joy < 0 {
		return 0
	}
	return joy
}
