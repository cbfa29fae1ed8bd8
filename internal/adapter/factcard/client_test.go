package factcard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupSuccess(t *testing.T) {
	var gotName string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotName = r.URL.Query().Get("name")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name":"Excalibur","owner":"Arthur"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil, zerolog.Nop())
	out := c.Lookup(context.Background(), "Excalibur")

	assert.Equal(t, "Excalibur", gotName)
	assert.JSONEq(t, `[{"name":"Excalibur","owner":"Arthur"}]`, out)
}

func TestLookupEscapesName(t *testing.T) {
	var gotName string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotName = r.URL.Query().Get("name")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil, zerolog.Nop())
	c.Lookup(context.Background(), "Holy Grail & co")

	assert.Equal(t, "Holy Grail & co", gotName)
}

func TestLookupNon200DegradesToErrorPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil, zerolog.Nop())
	out := c.Lookup(context.Background(), "Excalibur")

	var payload map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, "fact service returned 503", payload["error"])
}

func TestLookupTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := NewClient(srv.URL, nil, zerolog.Nop())
	out := c.Lookup(context.Background(), "Excalibur")

	assert.Equal(t, connectionFailed, out)
}

func TestLookupMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil, zerolog.Nop())
	out := c.Lookup(context.Background(), "Excalibur")

	assert.Equal(t, connectionFailed, out)
}

func TestToolHandlerExtractsName(t *testing.T) {
	var gotName string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotName = r.URL.Query().Get("name")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil, zerolog.Nop())
	handler := c.ToolHandler()

	out := handler(context.Background(), json.RawMessage(`{"name":"Excalibur"}`))
	assert.Equal(t, "Excalibur", gotName)
	assert.Equal(t, `[]`, out)

	// Malformed arguments degrade to an empty name, not an error.
	out = handler(context.Background(), json.RawMessage(`not json`))
	assert.Equal(t, "", gotName)
	assert.Equal(t, `[]`, out)
}
