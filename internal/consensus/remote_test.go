package consensus_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/KirkDiggler/archetype-balancer/internal/consensus"
	dnderr "github.com/KirkDiggler/archetype-balancer/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemote_PostsBallot(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body struct {
			JoyThreshold float64  `json:"joy_threshold"`
			Proposals    []string `json:"proposals"`
			Agents       []string `json:"agents"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 0.98, body.JoyThreshold)
		assert.Equal(t, []string{"[8, 8, 8]", "[9, 7, 8]"}, body.Proposals)
		assert.Equal(t, []string{"Existing Class", "New Archetype"}, body.Agents)

		_, _ = w.Write([]byte(`{"consensus": true, "joy": 0.99}`))
	}))
	defer server.Close()

	routine, err := consensus.NewRemoteRoutine(&consensus.RemoteConfig{
		URL:          server.URL,
		JoyThreshold: 0.98,
		HTTPClient:   server.Client(),
	})
	require.NoError(t, err)

	result, err := routine.ReachConsensus(context.Background(),
		[]string{"[8, 8, 8]", "[9, 7, 8]"},
		[]string{"Existing Class", "New Archetype"})
	require.NoError(t, err)

	assert.True(t, result.Consensus)
	assert.Equal(t, 0.99, result.Joy)
	assert.Equal(t, consensus.RoutineRemote, result.Routine)
}

func TestRemote_ErrorStatusIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "council is meditating", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	routine, err := consensus.NewRemoteRoutine(&consensus.RemoteConfig{URL: server.URL, JoyThreshold: 0.98})
	require.NoError(t, err)

	_, err = routine.ReachConsensus(context.Background(), []string{"[1, 1, 1]"}, []string{"New Archetype"})
	require.Error(t, err)
	assert.True(t, dnderr.IsUnavailable(err))
	assert.ErrorContains(t, err, "council is meditating")
	assert.Equal(t, http.StatusServiceUnavailable, dnderr.GetMeta(err)["status"])
}

func TestRemote_BadResponseBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	routine, err := consensus.NewRemoteRoutine(&consensus.RemoteConfig{URL: server.URL, JoyThreshold: 0.98})
	require.NoError(t, err)

	_, err = routine.ReachConsensus(context.Background(), []string{"[1, 1, 1]"}, []string{"New Archetype"})
	assert.True(t, dnderr.Is(err, dnderr.CodeInternal))
}

func TestRemote_UnreachableIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	routine, err := consensus.NewRemoteRoutine(&consensus.RemoteConfig{URL: url, JoyThreshold: 0.98})
	require.NoError(t, err)

	_, err = routine.ReachConsensus(context.Background(), []string{"[1, 1, 1]"}, []string{"New Archetype"})
	assert.True(t, dnderr.IsUnavailable(err))
}

func TestNewRemoteRoutine_Invalid(t *testing.T) {
	_, err := consensus.NewRemoteRoutine(nil)
	assert.True(t, dnderr.IsInvalidArgument(err))

	_, err = consensus.NewRemoteRoutine(&consensus.RemoteConfig{JoyThreshold: 0.98})
	assert.True(t, dnderr.IsInvalidArgument(err))

	_, err = consensus.NewRemoteRoutine(&consensus.RemoteConfig{URL: "not a url", JoyThreshold: 0.98})
	assert.True(t, dnderr.IsInvalidArgument(err))
}
