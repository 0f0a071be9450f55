package classes_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/archetype-balancer/internal/entities"
	dnderr "github.com/KirkDiggler/archetype-balancer/internal/errors"
	"github.com/KirkDiggler/archetype-balancer/internal/repositories/classes"
	mockclasses "github.com/KirkDiggler/archetype-balancer/internal/repositories/classes/mock"
	mockuuid "github.com/KirkDiggler/archetype-balancer/internal/uuid/mock"
)

const rosterYAML = `
classes:
  - id: warden
    name: Warden
    power_vector: [8, 8, 8]
  - name: Envoy
    power_vector: [6, 8, 10]
`

func TestParseRoster(t *testing.T) {
	roster, err := classes.ParseRoster([]byte(rosterYAML))
	require.NoError(t, err)
	require.Len(t, roster, 2)

	assert.Equal(t, "warden", roster[0].ID)
	assert.Equal(t, entities.PowerVector{8, 8, 8}, roster[0].PowerVector)
	assert.Empty(t, roster[1].ID)
	assert.Equal(t, "Envoy", roster[1].Name)
	assert.Equal(t, entities.PowerVector{6, 8, 10}, roster[1].PowerVector)
}

func TestParseRoster_Invalid(t *testing.T) {
	_, err := classes.ParseRoster([]byte("classes:\n  - power_vector: [1, 2]\n"))
	assert.True(t, dnderr.IsInvalidArgument(err))

	_, err = classes.ParseRoster([]byte("classes: [\n"))
	assert.True(t, dnderr.IsInvalidArgument(err))

	_, err = classes.ParseRoster([]byte("classes:\n  -\n"))
	assert.True(t, dnderr.IsInvalidArgument(err))
}

func TestLoadRoster(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	require.NoError(t, os.WriteFile(path, []byte(rosterYAML), 0o600))

	roster, err := classes.LoadRoster(path)
	require.NoError(t, err)
	assert.Len(t, roster, 2)

	_, err = classes.LoadRoster(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSeed_GeneratesMissingIDs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ids := mockuuid.NewMockGenerator(ctrl)
	ids.EXPECT().New().Return("generated-1")

	roster, err := classes.ParseRoster([]byte(rosterYAML))
	require.NoError(t, err)

	repo := classes.NewInMemoryRepository()
	require.NoError(t, classes.Seed(context.Background(), repo, ids, roster))

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "warden", list[0].ID)
	assert.Equal(t, "generated-1", list[1].ID)
}

func TestSeed_StopsOnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mockclasses.NewMockRepository(ctrl)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dnderr.AlreadyExistsf("class with ID 'a' already exists"))

	err := classes.Seed(context.Background(), repo, nil, []*entities.ClassDefinition{{ID: "a"}, {ID: "b"}})
	assert.True(t, dnderr.IsAlreadyExists(err))
}
