package services_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/archetype-balancer/internal/repositories/classes"
	"github.com/KirkDiggler/archetype-balancer/internal/services"
	"github.com/KirkDiggler/archetype-balancer/internal/services/balance"
	"github.com/KirkDiggler/archetype-balancer/internal/testutils"
	"github.com/KirkDiggler/archetype-balancer/internal/uuid"
)

func TestNewProvider_Defaults(t *testing.T) {
	color.NoColor = true
	out := &bytes.Buffer{}

	provider, err := services.NewProvider(&services.ProviderConfig{Out: out})
	require.NoError(t, err)
	require.NotNil(t, provider.BalanceService)
	require.NotNil(t, provider.ClassRepository)
	require.NotNil(t, provider.ArchetypeRepository)
	require.NotNil(t, provider.EventBus)

	ctx := context.Background()
	require.NoError(t, classes.Seed(ctx, provider.ClassRepository, uuid.NewGoogleUUIDGenerator(), testutils.DemoRoster()))

	archetype, err := provider.BalanceService.ProposeArchetype(ctx, testutils.StormweaverInput())
	require.NoError(t, err)

	result, err := provider.BalanceService.BalanceCheck(ctx, archetype)
	require.NoError(t, err)
	assert.True(t, result.Consensus)
	assert.Contains(t, out.String(), balance.MessageBalanceAchieved)

	// The default archetype store saw the check
	history, err := provider.ArchetypeRepository.History(ctx, archetype.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestNewProvider_NilConfig(t *testing.T) {
	provider, err := services.NewProvider(nil)
	require.NoError(t, err)
	assert.NotNil(t, provider.BalanceService)
}
