package balance_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/archetype-balancer/internal/repositories/archetypes"
	"github.com/KirkDiggler/archetype-balancer/internal/repositories/classes"
	"github.com/KirkDiggler/archetype-balancer/internal/services/balance"
	"github.com/KirkDiggler/archetype-balancer/internal/testutils"
	"github.com/KirkDiggler/archetype-balancer/internal/uuid"
)

func TestDemo_RedisIntegration(t *testing.T) {
	client := testutils.CreateTestRedisClientOrSkip(t)
	ctx := context.Background()

	classRepo := classes.NewRedis(client)
	archetypeRepo := archetypes.NewRedis(client)
	require.NoError(t, classes.Seed(ctx, classRepo, uuid.NewGoogleUUIDGenerator(), testutils.DemoRoster()))

	svc := balance.NewService(&balance.ServiceConfig{
		Routine:    valence(t),
		Classes:    classRepo,
		Archetypes: archetypeRepo,
		Out:        io.Discard,
	})

	archetype, err := svc.ProposeArchetype(ctx, testutils.StormweaverInput())
	require.NoError(t, err)

	result, err := svc.BalanceCheck(ctx, archetype)
	require.NoError(t, err)
	assert.True(t, result.Consensus)

	history, err := archetypeRepo.History(ctx, archetype.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.True(t, history[0].Consensus)
}
