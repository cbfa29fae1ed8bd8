package domain

import (
	"fmt"
	"strings"
)

// AgentNotFoundError reports that the configured agent name matched nothing
// in the platform's directory listing.
type AgentNotFoundError struct {
	Name      string
	Available []string
}

func (e *AgentNotFoundError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("agent %q not found in project", e.Name)
	}
	return fmt.Sprintf("agent %q not found in project, available agents: %s",
		e.Name, strings.Join(e.Available, ", "))
}

// RunFailedError reports a terminal failed run that was not a safety block.
type RunFailedError struct {
	Message string
}

func (e *RunFailedError) Error() string {
	return "run failed: " + e.Message
}

// UnexpectedStatusError reports a terminal status outside the classified
// set, such as cancelled or expired.
type UnexpectedStatusError struct {
	Status RunStatus
}

func (e *UnexpectedStatusError) Error() string {
	return "run ended with unexpected status: " + string(e.Status)
}

// ValidationError reports a missing required request field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return e.Field + " is required"
}
