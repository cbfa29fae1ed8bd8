package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/FXdmz/HPA-Azure-Demo/internal/domain"
)

// normalize assembles the chat response for a passed or truncated run:
// tool-step metadata, the newest assistant message's text and citations,
// and the run's usage counters.
func (s *Service) normalize(ctx context.Context, threadID string, run domain.Run, duration time.Duration, v verdict) (*domain.ChatResponse, error) {
	toolUsed, toolNames := s.collectToolSteps(ctx, threadID, run.ID)

	messages, err := s.platform.ListMessages(ctx, threadID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	s.log.Debug().Int("messages", len(messages)).Str("thread", threadID).Msg("fetched thread messages")

	var reply *domain.Message
	for i := range messages {
		if messages[i].Role == domain.RoleAssistant {
			reply = &messages[i]
			break
		}
	}

	var content strings.Builder
	cited := false
	citations := []domain.FileCitation{}
	if reply != nil {
		for _, part := range reply.Content {
			switch part.Type {
			case domain.ContentTypeText:
				if part.Text == nil {
					continue
				}
				content.WriteString(part.Text.Value)
				if len(part.Text.Annotations) > 0 {
					cited = true
					for _, ann := range part.Text.Annotations {
						if ann.FileCitation != nil {
							citations = append(citations, *ann.FileCitation)
						}
					}
				}
			default:
				// image and other content kinds are not rendered
			}
		}
	}

	sources := []string{}
	if cited {
		sources = append(sources, "Source Citation")
	}

	resp := &domain.ChatResponse{
		Content:  content.String(),
		Role:     domain.RoleAssistant,
		Sources:  sources,
		ThreadID: threadID,
		Meta: domain.ChatMeta{
			DurationMs: duration.Milliseconds(),
			Tokens:     tokenUsage(run.Usage),
			ToolUsed:   toolUsed,
			ToolNames:  toolNames,
			Model:      run.Model,
			Safety:     v.safety(),
			Citations:  citations,
		},
	}
	if reply != nil {
		resp.ID = reply.ID
	}
	return resp, nil
}

// collectToolSteps reports whether any run step executed tool calls, and
// the distinct tool names involved. The fetch is best-effort: it feeds
// observability metadata only, so failures are logged and swallowed.
func (s *Service) collectToolSteps(ctx context.Context, threadID, runID string) (bool, []string) {
	names := []string{}

	steps, err := s.platform.ListRunSteps(ctx, threadID, runID)
	if err != nil {
		s.log.Warn().Err(err).Str("run", runID).Msg("could not fetch run steps")
		return false, names
	}

	used := false
	seen := make(map[string]struct{})
	for _, step := range steps {
		if step.Type != domain.RunStepTypeToolCalls {
			continue
		}
		used = true
		for _, call := range step.StepDetails.ToolCalls {
			name := call.Function.Name
			if name == "" {
				name = call.Type
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return used, names
}

// tokenUsage mirrors the run's counters, zeroed when the platform reported
// no usage.
func tokenUsage(usage *domain.Usage) domain.TokenUsage {
	if usage == nil {
		return domain.TokenUsage{}
	}
	return domain.TokenUsage{
		Total:      usage.TotalTokens,
		Prompt:     usage.PromptTokens,
		Completion: usage.CompletionTokens,
	}
}
