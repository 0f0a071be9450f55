package entities

import (
	"fmt"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	dnderr "github.com/KirkDiggler/archetype-balancer/internal/errors"
)

// DefaultBranches is the branch list every generated archetype starts with
var DefaultBranches = []string{"Offensive Purified", "Restorative Mercy", "Council Fusion"}

// ThemeKeys are the theme names in power vector order
var ThemeKeys = []string{"offensive", "restorative", "diplomatic"}

// Themes are the user's requested strengths for a new class
type Themes struct {
	Offensive   float64 `json:"offensive" yaml:"offensive"`
	Restorative float64 `json:"restorative" yaml:"restorative"`
	Diplomatic  float64 `json:"diplomatic" yaml:"diplomatic"`
}

// String formats themes for console output
func (t Themes) String() string {
	return fmt.Sprintf("{'offensive': %s, 'restorative': %s, 'diplomatic': %s}",
		formatPower(t.Offensive), formatPower(t.Restorative), formatPower(t.Diplomatic))
}

// PowerVector orders the themes positionally
func (t Themes) PowerVector() PowerVector {
	return PowerVector{t.Offensive, t.Restorative, t.Diplomatic}
}

// ArchetypeInput is a user proposal for a new class
type ArchetypeInput struct {
	Name   string `json:"name" yaml:"name"`
	Themes Themes `json:"themes" yaml:"themes"`
}

// Archetype is a generated class proposal
type Archetype struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Branches    []string    `json:"branches"`
	PowerVector PowerVector `json:"power_vector"`
}

// BalanceRecord is one stored outcome of checking an archetype
type BalanceRecord struct {
	ArchetypeID  string      `json:"archetype_id"`
	PowerVector  PowerVector `json:"power_vector"`
	Consensus    bool        `json:"consensus"`
	Joy          float64     `json:"joy"`
	Routine      string      `json:"routine"`
	HotfixRounds int         `json:"hotfix_rounds"`
	CheckedAt    time.Time   `json:"checked_at"`
}

// rawArchetypeInput keeps nil for absent keys so they can be reported
type rawArchetypeInput struct {
	Name   *string `yaml:"name"`
	Themes *struct {
		Offensive   *float64 `yaml:"offensive"`
		Restorative *float64 `yaml:"restorative"`
		Diplomatic  *float64 `yaml:"diplomatic"`
	} `yaml:"themes"`
}

// ParseArchetypeInput decodes a YAML or JSON proposal.
// Every key is required; a missing one is a not found error naming it.
func ParseArchetypeInput(data []byte) (*ArchetypeInput, error) {
	var raw rawArchetypeInput
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeInvalidArgument, "decoding archetype input")
	}

	if raw.Name == nil {
		return nil, MissingInputKey("name")
	}
	if raw.Themes == nil {
		return nil, MissingInputKey("themes")
	}
	if raw.Themes.Offensive == nil {
		return nil, MissingInputKey("themes.offensive")
	}
	if raw.Themes.Restorative == nil {
		return nil, MissingInputKey("themes.restorative")
	}
	if raw.Themes.Diplomatic == nil {
		return nil, MissingInputKey("themes.diplomatic")
	}

	return &ArchetypeInput{
		Name: *raw.Name,
		Themes: Themes{
			Offensive:   *raw.Themes.Offensive,
			Restorative: *raw.Themes.Restorative,
			Diplomatic:  *raw.Themes.Diplomatic,
		},
	}, nil
}

// MissingInputKey is the not found error for an absent archetype input key
func MissingInputKey(key string) error {
	return dnderr.NotFoundf("archetype input key %q not found", key).WithMeta("key", key)
}

func formatPower(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
