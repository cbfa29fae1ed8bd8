// Package factcard calls the external fact-lookup service backing the
// getFactCard tool. Lookups never fail past this boundary: every failure
// mode degrades to a JSON error payload, because the result is fed back to
// the remote run as a tool output and the agent must receive some
// structured value.
package factcard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// connectionFailed is the degraded payload for network and decode failures.
const connectionFailed = `{"error":"Connection failed"}`

// Client performs fact-card lookups against a fixed endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a fact-card client. A nil httpClient falls back to a
// default client with a 15s timeout.
func NewClient(endpoint string, httpClient *http.Client, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
		log:        log,
	}
}

// Lookup fetches the fact records for a name and returns them as a JSON
// string. Non-200 responses and transport errors are converted to JSON
// error payloads rather than Go errors.
func (c *Client) Lookup(ctx context.Context, name string) string {
	c.log.Info().Str("name", name).Msg("calling fact service")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?name="+url.QueryEscape(name), nil)
	if err != nil {
		c.log.Error().Err(err).Msg("failed to build fact service request")
		return connectionFailed
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error().Err(err).Msg("failed to call fact service")
		return connectionFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn().Int("status", resp.StatusCode).Msg("fact service returned non-200")
		payload, err := json.Marshal(map[string]string{
			"error": fmt.Sprintf("fact service returned %d", resp.StatusCode),
		})
		if err != nil {
			return connectionFailed
		}
		return string(payload)
	}

	var records any
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		c.log.Error().Err(err).Msg("failed to decode fact service response")
		return connectionFailed
	}

	if list, ok := records.([]any); ok {
		c.log.Info().Int("records", len(list)).Msg("fact service returned records")
	}

	payload, err := json.Marshal(records)
	if err != nil {
		return connectionFailed
	}
	return string(payload)
}

// ToolHandler adapts the client to the tool registry's handler signature.
// The name argument is extracted from the call's JSON arguments; malformed
// arguments degrade to an empty name rather than an error.
func (c *Client) ToolHandler() func(context.Context, json.RawMessage) string {
	return func(ctx context.Context, args json.RawMessage) string {
		var params struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(args, &params); err != nil {
			c.log.Warn().Err(err).Msg("malformed tool arguments")
		}
		return c.Lookup(ctx, params.Name)
	}
}
