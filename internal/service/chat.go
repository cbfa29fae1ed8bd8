package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/FXdmz/HPA-Azure-Demo/internal/domain"
)

// blockedContent is the fixed placeholder returned for safety-blocked runs.
const blockedContent = "The response was blocked by safety filters."

// contentFilterCode is the platform's error/incomplete code for content
// safety violations.
const contentFilterCode = "content_filter"

// verdictKind enumerates the terminal classifications of a run. Every
// consumer switches over all cases.
type verdictKind int

const (
	verdictPassed verdictKind = iota
	verdictBlocked
	verdictTruncated
	verdictFailed
	verdictUnexpected
)

// verdict is the classified terminal outcome of a run.
type verdict struct {
	kind      verdictKind
	violation string // blocked/truncated: the safety reason
	reason    string // failed: the platform's error message
}

// safety folds the verdict into the response's safety classification.
func (v verdict) safety() domain.Safety {
	switch v.kind {
	case verdictBlocked:
		return domain.Safety{Status: domain.SafetyBlocked, Violation: v.violation}
	case verdictTruncated:
		return domain.Safety{Status: domain.SafetyTruncated, Violation: v.violation}
	default:
		return domain.Safety{Status: domain.SafetyPassed}
	}
}

// RunTurn drives one chat turn to a normalized response. Any failure
// invalidates the agent directory cache before propagating: a stale cached
// id is a plausible cause, and the next turn should re-resolve. Partial
// remote state (thread, message, even a started run) is left in place.
func (s *Service) RunTurn(ctx context.Context, req domain.ChatRequest) (*domain.ChatResponse, error) {
	resp, err := s.runTurn(ctx, req)
	if err != nil {
		s.log.Error().Err(err).Msg("chat turn failed")
		s.directory.Invalidate()
		s.metrics.TurnFailed()
		return nil, err
	}
	return resp, nil
}

func (s *Service) runTurn(ctx context.Context, req domain.ChatRequest) (*domain.ChatResponse, error) {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = domain.DefaultSessionID
	}

	agentID := req.AgentID
	if agentID != "" {
		s.log.Info().Str("agent", agentID).Msg("using requested agent")
	} else {
		var err error
		agentID, err = s.directory.Resolve(ctx, s.cfg.AgentName)
		if err != nil {
			return nil, err
		}
	}

	threadID, err := s.sessions.GetOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if _, err := s.platform.CreateMessage(ctx, threadID, domain.RoleUser, req.Message); err != nil {
		return nil, fmt.Errorf("failed to append user message: %w", err)
	}

	started := time.Now()
	run, err := s.platform.CreateRun(ctx, threadID, agentID)
	if err != nil {
		return nil, fmt.Errorf("failed to start run: %w", err)
	}
	s.log.Info().Str("run", run.ID).Str("status", string(run.Status)).Str("thread", threadID).Msg("run created")

	run, err = s.pollRun(ctx, threadID, run)
	if err != nil {
		return nil, err
	}

	v := classifyRun(run)
	duration := time.Since(started)

	switch v.kind {
	case verdictBlocked:
		s.log.Warn().Str("run", run.ID).Msg("run blocked by content filter")
		s.metrics.TurnFinished(string(domain.SafetyBlocked), duration)
		return blockedResponse(run, threadID, duration, v), nil
	case verdictFailed:
		return nil, &domain.RunFailedError{Message: v.reason}
	case verdictUnexpected:
		return nil, &domain.UnexpectedStatusError{Status: run.Status}
	case verdictPassed, verdictTruncated:
		// fall through to normal extraction; truncated keeps its partial text
	}

	resp, err := s.normalize(ctx, threadID, run, duration, v)
	if err != nil {
		return nil, err
	}
	s.metrics.TurnFinished(string(resp.Meta.Safety.Status), duration)
	return resp, nil
}

// pollRun drives the run's polling state machine at the configured fixed
// interval until the platform reports a terminal status. The loop is
// unbounded on purpose: a run stalled in requires_action by an unrecognized
// tool call polls forever, and only context cancellation breaks out.
func (s *Service) pollRun(ctx context.Context, threadID string, run domain.Run) (domain.Run, error) {
	for run.Status.Active() {
		select {
		case <-ctx.Done():
			return run, ctx.Err()
		case <-time.After(s.cfg.PollInterval):
		}

		next, err := s.platform.GetRun(ctx, threadID, run.ID)
		if err != nil {
			return run, fmt.Errorf("failed to poll run: %w", err)
		}
		run = next
		s.log.Debug().Str("run", run.ID).Str("status", string(run.Status)).Msg("run status")

		if run.Status == domain.RunStatusRequiresAction {
			outputs := s.dispatchToolCalls(ctx, run)
			if len(outputs) > 0 {
				s.log.Info().Int("outputs", len(outputs)).Str("run", run.ID).Msg("submitting tool outputs")
				if _, err := s.platform.SubmitToolOutputs(ctx, threadID, run.ID, outputs); err != nil {
					return run, fmt.Errorf("failed to submit tool outputs: %w", err)
				}
			}
		}
	}
	return run, nil
}

// classifyRun maps the run's terminal state to a verdict.
func classifyRun(run domain.Run) verdict {
	switch run.Status {
	case domain.RunStatusFailed:
		if run.LastError != nil && run.LastError.Code == contentFilterCode {
			return verdict{kind: verdictBlocked, violation: "Content Filter Triggered"}
		}
		reason := string(run.Status)
		if run.LastError != nil {
			reason = run.LastError.Message
		}
		return verdict{kind: verdictFailed, reason: reason}
	case domain.RunStatusCompleted:
		return verdict{kind: verdictPassed}
	case domain.RunStatusIncomplete:
		if run.IncompleteDetails != nil && run.IncompleteDetails.Reason == contentFilterCode {
			return verdict{kind: verdictTruncated, violation: "Response truncated due to safety violation"}
		}
		return verdict{kind: verdictPassed}
	default:
		return verdict{kind: verdictUnexpected}
	}
}

// blockedResponse builds the synthetic response for a safety-blocked run.
// Messages are never fetched for blocked runs.
func blockedResponse(run domain.Run, threadID string, duration time.Duration, v verdict) *domain.ChatResponse {
	return &domain.ChatResponse{
		ID:       "blocked-" + uuid.NewString()[:8],
		Content:  blockedContent,
		Role:     domain.RoleAssistant,
		Sources:  []string{},
		ThreadID: threadID,
		Meta: domain.ChatMeta{
			DurationMs: duration.Milliseconds(),
			Tokens:     tokenUsage(run.Usage),
			ToolNames:  []string{},
			Model:      run.Model,
			Safety:     v.safety(),
			Citations:  []domain.FileCitation{},
		},
	}
}
