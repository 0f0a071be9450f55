package entities_test

import (
	"testing"

	"github.com/KirkDiggler/archetype-balancer/internal/entities"
	dnderr "github.com/KirkDiggler/archetype-balancer/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPowerVector_String(t *testing.T) {
	assert.Equal(t, "[8, 8, 8]", entities.PowerVector{8, 8, 8}.String())
	assert.Equal(t, "[9, 7, 8]", entities.PowerVector{9, 7, 8}.String())
	assert.Equal(t, "[8.5, 0, -1.25]", entities.PowerVector{8.5, 0, -1.25}.String())
}

func TestParsePowerVector_RoundTrip(t *testing.T) {
	for _, p := range []entities.PowerVector{{8, 8, 8}, {9, 7, 8}, {0.1, 12.75, 3}} {
		parsed, err := entities.ParsePowerVector(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, parsed)
	}

	parsed, err := entities.ParsePowerVector("  [1,2 ,3] ")
	require.NoError(t, err)
	assert.Equal(t, entities.PowerVector{1, 2, 3}, parsed)
}

func TestParsePowerVector_Invalid(t *testing.T) {
	for _, s := range []string{"", "1, 2, 3", "[1, 2]", "[1, 2, 3, 4]", "[1, two, 3]", "[]"} {
		_, err := entities.ParsePowerVector(s)
		assert.Error(t, err, s)
		assert.True(t, dnderr.IsInvalidArgument(err), s)
	}
}

func TestPowerVector_Math(t *testing.T) {
	v := entities.PowerVector{9, 7, 8}

	assert.Equal(t, 24.0, v.Sum())
	assert.Equal(t, 194.0, v.Dot(v))
	assert.InDelta(t, 13.928, v.Magnitude(), 0.001)
	assert.Equal(t, entities.PowerVector{1, -1, 0}, v.Sub(entities.PowerVector{8, 8, 8}))
	assert.Equal(t, entities.PowerVector{4.5, 3.5, 4}, v.Scale(0.5))
}

func TestCentroid(t *testing.T) {
	assert.Equal(t, entities.PowerVector{}, entities.Centroid())

	c := entities.Centroid(entities.PowerVector{8, 8, 8}, entities.PowerVector{10, 6, 8})
	assert.Equal(t, entities.PowerVector{9, 7, 8}, c)
}
