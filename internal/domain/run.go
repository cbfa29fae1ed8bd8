package domain

// RunStatus is the remote platform's status of one agent run.
type RunStatus string

const (
	RunStatusQueued         RunStatus = "queued"
	RunStatusInProgress     RunStatus = "in_progress"
	RunStatusRequiresAction RunStatus = "requires_action"
	RunStatusCompleted      RunStatus = "completed"
	RunStatusIncomplete     RunStatus = "incomplete"
	RunStatusFailed         RunStatus = "failed"
	RunStatusCancelled      RunStatus = "cancelled"
	RunStatusExpired        RunStatus = "expired"
)

// Active reports whether the run is still being driven by the platform and
// must be polled again. requires_action counts as active: the run resumes
// once tool outputs are submitted.
func (s RunStatus) Active() bool {
	switch s {
	case RunStatusQueued, RunStatusInProgress, RunStatusRequiresAction:
		return true
	}
	return false
}

// Run is one remote execution of an agent turn against a thread.
type Run struct {
	ID                string             `json:"id"`
	ThreadID          string             `json:"thread_id"`
	AssistantID       string             `json:"assistant_id"`
	Status            RunStatus          `json:"status"`
	Model             string             `json:"model"`
	RequiredAction    *RequiredAction    `json:"required_action,omitempty"`
	LastError         *RunError          `json:"last_error,omitempty"`
	IncompleteDetails *IncompleteDetails `json:"incomplete_details,omitempty"`
	Usage             *Usage             `json:"usage,omitempty"`
}

// RunError is the platform's terminal error descriptor.
type RunError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// IncompleteDetails explains why a run ended incomplete.
type IncompleteDetails struct {
	Reason string `json:"reason"`
}

// RequiredAction is the pending action blocking a requires_action run.
type RequiredAction struct {
	Type              string                   `json:"type"`
	SubmitToolOutputs *SubmitToolOutputsAction `json:"submit_tool_outputs,omitempty"`
}

// SubmitToolOutputsAction lists the tool calls the agent is waiting on.
type SubmitToolOutputsAction struct {
	ToolCalls []ToolCall `json:"tool_calls"`
}

// ToolCall is a request from the agent to execute named functionality.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function,omitempty"`
}

// FunctionCall carries the function name and its JSON-encoded arguments.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolOutput is a tool call result submitted back to unblock a run.
type ToolOutput struct {
	ToolCallID string `json:"tool_call_id"`
	Output     string `json:"output"`
}

// Usage holds the platform-reported token counters for a run.
type Usage struct {
	TotalTokens      int `json:"total_tokens"`
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
}

// RunStep is one execution step of a completed run.
type RunStep struct {
	ID          string      `json:"id"`
	Type        string      `json:"type"`
	StepDetails StepDetails `json:"step_details"`
}

// RunStepTypeToolCalls marks a step that executed tool calls.
const RunStepTypeToolCalls = "tool_calls"

// StepDetails carries the type-specific payload of a run step.
type StepDetails struct {
	Type      string     `json:"type"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}
