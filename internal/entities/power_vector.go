package entities

import (
	"math"
	"strconv"
	"strings"

	dnderr "github.com/KirkDiggler/archetype-balancer/internal/errors"
)

// PowerVector holds offensive, restorative and diplomatic strength, in that order
type PowerVector [3]float64

const (
	PowerOffensive = iota
	PowerRestorative
	PowerDiplomatic
)

// String renders the vector the way ballots carry it, e.g. "[9, 7, 8]"
func (p PowerVector) String() string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ParsePowerVector is the inverse of PowerVector.String
func ParsePowerVector(s string) (PowerVector, error) {
	var p PowerVector

	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "[") || !strings.HasSuffix(trimmed, "]") {
		return p, dnderr.InvalidArgumentf("power vector %q must be bracketed", s)
	}

	parts := strings.Split(trimmed[1:len(trimmed)-1], ",")
	if len(parts) != len(p) {
		return p, dnderr.InvalidArgumentf("power vector %q must have %d values, got %d", s, len(p), len(parts)).
			WithMeta("proposal", s)
	}

	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return p, dnderr.WrapWithCode(err, dnderr.CodeInvalidArgument, "parsing power vector "+strconv.Quote(s)).
				WithMeta("proposal", s)
		}
		p[i] = v
	}

	return p, nil
}

func (p PowerVector) Sum() float64 {
	return p[0] + p[1] + p[2]
}

func (p PowerVector) Dot(o PowerVector) float64 {
	return p[0]*o[0] + p[1]*o[1] + p[2]*o[2]
}

func (p PowerVector) Magnitude() float64 {
	return math.Sqrt(p.Dot(p))
}

func (p PowerVector) Add(o PowerVector) PowerVector {
	return PowerVector{p[0] + o[0], p[1] + o[1], p[2] + o[2]}
}

func (p PowerVector) Sub(o PowerVector) PowerVector {
	return PowerVector{p[0] - o[0], p[1] - o[1], p[2] - o[2]}
}

func (p PowerVector) Scale(f float64) PowerVector {
	return PowerVector{p[0] * f, p[1] * f, p[2] * f}
}

// Centroid returns the component-wise mean; the zero vector when empty
func Centroid(vectors ...PowerVector) PowerVector {
	var sum PowerVector
	if len(vectors) == 0 {
		return sum
	}
	for _, v := range vectors {
		sum = sum.Add(v)
	}
	return sum.Scale(1 / float64(len(vectors)))
}
