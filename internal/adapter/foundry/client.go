// Package foundry provides a typed REST client for the remote agent
// platform: agent listing, thread and message CRUD, run lifecycle, and tool
// output submission. Authentication is supplied by the injected *http.Client
// (an oauth2 client-credentials transport in production).
package foundry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/FXdmz/HPA-Azure-Demo/internal/domain"
)

// Client talks to the agent platform's REST surface. Every request carries
// the configured api-version query parameter.
type Client struct {
	baseURL    string
	apiVersion string
	httpClient *http.Client
}

// NewClient creates a platform client. A nil httpClient falls back to a
// default client with a 30s timeout.
func NewClient(baseURL, apiVersion string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiVersion: apiVersion,
		httpClient: httpClient,
	}
}

type listEnvelope[T any] struct {
	Data []T `json:"data"`
}

type errorEnvelope struct {
	Error *apiError `json:"error"`
}

type apiError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

type createMessageRequest struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type createRunRequest struct {
	AssistantID string `json:"assistant_id"`
}

type submitToolOutputsRequest struct {
	ToolOutputs []domain.ToolOutput `json:"tool_outputs"`
}

// ListAgents lists all agents visible to the platform project.
func (c *Client) ListAgents(ctx context.Context) ([]domain.Agent, error) {
	var result listEnvelope[domain.Agent]
	if err := c.do(ctx, http.MethodGet, "/assistants", nil, nil, &result); err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}
	return result.Data, nil
}

// CreateThread creates a new empty conversation thread.
func (c *Client) CreateThread(ctx context.Context) (domain.Thread, error) {
	var thread domain.Thread
	if err := c.do(ctx, http.MethodPost, "/threads", nil, struct{}{}, &thread); err != nil {
		return domain.Thread{}, fmt.Errorf("failed to create thread: %w", err)
	}
	return thread, nil
}

// CreateMessage appends a message to a thread.
func (c *Client) CreateMessage(ctx context.Context, threadID, role, content string) (domain.Message, error) {
	var msg domain.Message
	path := "/threads/" + threadID + "/messages"
	if err := c.do(ctx, http.MethodPost, path, nil, createMessageRequest{Role: role, Content: content}, &msg); err != nil {
		return domain.Message{}, fmt.Errorf("failed to create message: %w", err)
	}
	return msg, nil
}

// CreateRun starts a run of the given agent against a thread.
func (c *Client) CreateRun(ctx context.Context, threadID, agentID string) (domain.Run, error) {
	var run domain.Run
	path := "/threads/" + threadID + "/runs"
	if err := c.do(ctx, http.MethodPost, path, nil, createRunRequest{AssistantID: agentID}, &run); err != nil {
		return domain.Run{}, fmt.Errorf("failed to create run: %w", err)
	}
	return run, nil
}

// GetRun fetches the current state of a run.
func (c *Client) GetRun(ctx context.Context, threadID, runID string) (domain.Run, error) {
	var run domain.Run
	path := "/threads/" + threadID + "/runs/" + runID
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &run); err != nil {
		return domain.Run{}, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// SubmitToolOutputs submits a batch of tool outputs to unblock a
// requires_action run.
func (c *Client) SubmitToolOutputs(ctx context.Context, threadID, runID string, outputs []domain.ToolOutput) (domain.Run, error) {
	var run domain.Run
	path := "/threads/" + threadID + "/runs/" + runID + "/submit_tool_outputs"
	if err := c.do(ctx, http.MethodPost, path, nil, submitToolOutputsRequest{ToolOutputs: outputs}, &run); err != nil {
		return domain.Run{}, fmt.Errorf("failed to submit tool outputs: %w", err)
	}
	return run, nil
}

// ListRunSteps lists the execution steps of a run.
func (c *Client) ListRunSteps(ctx context.Context, threadID, runID string) ([]domain.RunStep, error) {
	var result listEnvelope[domain.RunStep]
	path := "/threads/" + threadID + "/runs/" + runID + "/steps"
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &result); err != nil {
		return nil, fmt.Errorf("failed to list run steps: %w", err)
	}
	return result.Data, nil
}

// ListMessages lists a thread's messages, newest first.
func (c *Client) ListMessages(ctx context.Context, threadID string) ([]domain.Message, error) {
	var result listEnvelope[domain.Message]
	path := "/threads/" + threadID + "/messages"
	if err := c.do(ctx, http.MethodGet, path, url.Values{"order": {"desc"}}, nil, &result); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return result.Data, nil
}

// do executes one platform request: builds the URL with the api-version
// parameter, marshals the body, and decodes either the result or the
// platform's error envelope.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api-version", c.apiVersion)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path+"?"+query.Encode(), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var errResp errorEnvelope
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != nil {
			return fmt.Errorf("platform error [%d]: %s (code: %s)", resp.StatusCode, errResp.Error.Message, errResp.Error.Code)
		}
		return fmt.Errorf("platform error [%d]: %s", resp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}
