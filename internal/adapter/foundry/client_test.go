package foundry

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FXdmz/HPA-Azure-Demo/internal/domain"
)

const testAPIVersion = "2024-12-01-preview"

// capture records the last request seen by the stub platform.
type capture struct {
	method string
	path   string
	query  map[string]string
	body   string
}

func stubPlatform(t *testing.T, status int, response string, cap *capture) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cap.method = r.Method
		cap.path = r.URL.Path
		cap.query = map[string]string{}
		for key := range r.URL.Query() {
			cap.query[key] = r.URL.Query().Get(key)
		}
		body, _ := io.ReadAll(r.Body)
		cap.body = string(body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
}

func TestListAgents(t *testing.T) {
	var cap capture
	srv := stubPlatform(t, http.StatusOK, `{"data":[{"id":"asst_1","name":"aescher","model":"gpt-4o"}]}`, &cap)
	defer srv.Close()

	c := NewClient(srv.URL, testAPIVersion, nil)
	agents, err := c.ListAgents(context.Background())
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, cap.method)
	assert.Equal(t, "/assistants", cap.path)
	assert.Equal(t, testAPIVersion, cap.query["api-version"])
	require.Len(t, agents, 1)
	assert.Equal(t, "asst_1", agents[0].ID)
	assert.Equal(t, "aescher", agents[0].Name)
}

func TestCreateThread(t *testing.T) {
	var cap capture
	srv := stubPlatform(t, http.StatusOK, `{"id":"thread_1"}`, &cap)
	defer srv.Close()

	c := NewClient(srv.URL, testAPIVersion, nil)
	thread, err := c.CreateThread(context.Background())
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, cap.method)
	assert.Equal(t, "/threads", cap.path)
	assert.Equal(t, "thread_1", thread.ID)
}

func TestCreateMessage(t *testing.T) {
	var cap capture
	srv := stubPlatform(t, http.StatusOK, `{"id":"msg_1","role":"user"}`, &cap)
	defer srv.Close()

	c := NewClient(srv.URL, testAPIVersion, nil)
	msg, err := c.CreateMessage(context.Background(), "thread_1", "user", "hello")
	require.NoError(t, err)

	assert.Equal(t, "/threads/thread_1/messages", cap.path)
	assert.JSONEq(t, `{"role":"user","content":"hello"}`, cap.body)
	assert.Equal(t, "msg_1", msg.ID)
}

func TestCreateRun(t *testing.T) {
	var cap capture
	srv := stubPlatform(t, http.StatusOK, `{"id":"run_1","status":"queued"}`, &cap)
	defer srv.Close()

	c := NewClient(srv.URL, testAPIVersion, nil)
	run, err := c.CreateRun(context.Background(), "thread_1", "asst_1")
	require.NoError(t, err)

	assert.Equal(t, "/threads/thread_1/runs", cap.path)
	assert.JSONEq(t, `{"assistant_id":"asst_1"}`, cap.body)
	assert.Equal(t, domain.RunStatusQueued, run.Status)
}

func TestSubmitToolOutputs(t *testing.T) {
	var cap capture
	srv := stubPlatform(t, http.StatusOK, `{"id":"run_1","status":"in_progress"}`, &cap)
	defer srv.Close()

	c := NewClient(srv.URL, testAPIVersion, nil)
	outputs := []domain.ToolOutput{{ToolCallID: "call_1", Output: `{"owner":"Arthur"}`}}
	run, err := c.SubmitToolOutputs(context.Background(), "thread_1", "run_1", outputs)
	require.NoError(t, err)

	assert.Equal(t, "/threads/thread_1/runs/run_1/submit_tool_outputs", cap.path)

	var body struct {
		ToolOutputs []domain.ToolOutput `json:"tool_outputs"`
	}
	require.NoError(t, json.Unmarshal([]byte(cap.body), &body))
	assert.Equal(t, outputs, body.ToolOutputs)
	assert.Equal(t, domain.RunStatusInProgress, run.Status)
}

func TestGetRunDecodesSafetyDetails(t *testing.T) {
	var cap capture
	srv := stubPlatform(t, http.StatusOK, `{
		"id": "run_1",
		"status": "failed",
		"last_error": {"code": "content_filter", "message": "blocked"}
	}`, &cap)
	defer srv.Close()

	c := NewClient(srv.URL, testAPIVersion, nil)
	run, err := c.GetRun(context.Background(), "thread_1", "run_1")
	require.NoError(t, err)

	assert.Equal(t, "/threads/thread_1/runs/run_1", cap.path)
	assert.Equal(t, domain.RunStatusFailed, run.Status)
	require.NotNil(t, run.LastError)
	assert.Equal(t, "content_filter", run.LastError.Code)
}

func TestListMessagesOrdersNewestFirst(t *testing.T) {
	var cap capture
	srv := stubPlatform(t, http.StatusOK, `{"data":[{"id":"msg_2","role":"assistant","content":[{"type":"text","text":{"value":"hi"}}]}]}`, &cap)
	defer srv.Close()

	c := NewClient(srv.URL, testAPIVersion, nil)
	messages, err := c.ListMessages(context.Background(), "thread_1")
	require.NoError(t, err)

	assert.Equal(t, "/threads/thread_1/messages", cap.path)
	assert.Equal(t, "desc", cap.query["order"])
	require.Len(t, messages, 1)
	require.Len(t, messages[0].Content, 1)
	assert.Equal(t, "hi", messages[0].Content[0].Text.Value)
}

func TestErrorEnvelope(t *testing.T) {
	var cap capture
	srv := stubPlatform(t, http.StatusNotFound, `{"error":{"code":"not_found","message":"no such thread"}}`, &cap)
	defer srv.Close()

	c := NewClient(srv.URL, testAPIVersion, nil)
	_, err := c.GetRun(context.Background(), "thread_x", "run_x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "platform error [404]")
	assert.Contains(t, err.Error(), "no such thread")
}

func TestErrorWithoutEnvelope(t *testing.T) {
	var cap capture
	srv := stubPlatform(t, http.StatusBadGateway, `upstream exploded`, &cap)
	defer srv.Close()

	c := NewClient(srv.URL, testAPIVersion, nil)
	_, err := c.ListAgents(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "platform error [502]")
	assert.Contains(t, err.Error(), "upstream exploded")
}

func TestBaseURLTrailingSlash(t *testing.T) {
	var cap capture
	srv := stubPlatform(t, http.StatusOK, `{"data":[]}`, &cap)
	defer srv.Close()

	c := NewClient(srv.URL+"/", testAPIVersion, nil)
	_, err := c.ListAgents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/assistants", cap.path)
}
