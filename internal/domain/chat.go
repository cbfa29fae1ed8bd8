package domain

// DefaultSessionID is used when a chat request carries no session id.
const DefaultSessionID = "default"

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
	AgentID   string `json:"agentId,omitempty"`
}

// SafetyStatus is the turn-level content-safety outcome bucket.
type SafetyStatus string

const (
	SafetyPassed    SafetyStatus = "passed"
	SafetyBlocked   SafetyStatus = "blocked"
	SafetyTruncated SafetyStatus = "truncated"
)

// Safety is the safety classification attached to a chat response.
type Safety struct {
	Status    SafetyStatus `json:"status"`
	Violation string       `json:"violation,omitempty"`
}

// TokenUsage mirrors the run's token counters, zeroed when absent.
type TokenUsage struct {
	Total      int `json:"total"`
	Prompt     int `json:"prompt"`
	Completion int `json:"completion"`
}

// ChatMeta is the observability metadata of one chat turn.
type ChatMeta struct {
	DurationMs int64          `json:"duration_ms"`
	Tokens     TokenUsage     `json:"tokens"`
	ToolUsed   bool           `json:"tool_used"`
	ToolNames  []string       `json:"tool_names"`
	Model      string         `json:"model,omitempty"`
	Safety     Safety         `json:"safety"`
	Citations  []FileCitation `json:"citations"`
}

// ChatResponse is the normalized result of one chat turn.
type ChatResponse struct {
	ID       string   `json:"id"`
	Content  string   `json:"content"`
	Role     string   `json:"role"`
	Sources  []string `json:"sources"`
	ThreadID string   `json:"threadId"`
	Meta     ChatMeta `json:"meta"`
}

// Health is the payload of GET /api/health.
type Health struct {
	Status      string `json:"status"`
	AgentName   string `json:"agentName"`
	AgentID     string `json:"agentId"`
	ProjectName string `json:"projectName"`
	SDKVersion  string `json:"sdkVersion"`
	Mode        string `json:"mode"`
}
