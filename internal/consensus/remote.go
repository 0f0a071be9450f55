package consensus

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	dnderr "github.com/KirkDiggler/archetype-balancer/internal/errors"
)

// RemoteConfig holds configuration for the remote routine
type RemoteConfig struct {
	URL          string
	JoyThreshold float64
	HTTPClient   *http.Client
}

type remoteRoutine struct {
	url          string
	joyThreshold float64
	client       *http.Client
}

type remoteRequest struct {
	JoyThreshold float64  `json:"joy_threshold"`
	Proposals    []string `json:"proposals"`
	Agents       []string `json:"agents"`
}

// NewRemoteRoutine returns a routine that posts the ballot to an HTTP endpoint
// and trusts whatever verdict comes back
func NewRemoteRoutine(cfg *RemoteConfig) (Routine, error) {
	if cfg == nil {
		return nil, dnderr.InvalidArgument("remote config is required")
	}
	if cfg.URL == "" {
		return nil, dnderr.InvalidArgument("remote consensus URL is required")
	}
	if _, err := url.ParseRequestURI(cfg.URL); err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeInvalidArgument, "remote consensus URL")
	}
	if err := validateThreshold(cfg.JoyThreshold); err != nil {
		return nil, err
	}

	client := cfg.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	return &remoteRoutine{
		url:          cfg.URL,
		joyThreshold: cfg.JoyThreshold,
		client:       client,
	}, nil
}

func (r *remoteRoutine) ReachConsensus(ctx context.Context, proposals, agents []string) (*Result, error) {
	if err := validateBallot(proposals, agents); err != nil {
		return nil, err
	}

	body, err := json.Marshal(&remoteRequest{
		JoyThreshold: r.joyThreshold,
		Proposals:    proposals,
		Agents:       agents,
	})
	if err != nil {
		return nil, dnderr.Wrap(err, "encoding consensus request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return nil, dnderr.Wrap(err, "building consensus request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "calling consensus endpoint")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, dnderr.Unavailablef("consensus endpoint returned %d: %s", resp.StatusCode, bytes.TrimSpace(msg)).
			WithMeta("status", resp.StatusCode)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeInternal, "decoding consensus response")
	}
	result.Routine = RoutineRemote

	return &result, nil
}
