package service

import (
	"context"
	"encoding/json"

	"github.com/FXdmz/HPA-Azure-Demo/internal/domain"
)

// dispatchToolCalls executes every recognized pending tool call of a
// requires_action run and collects their outputs for batch submission.
// Unrecognized tool names are skipped without an output; the run may stall
// waiting for them, which is the documented behavior.
func (s *Service) dispatchToolCalls(ctx context.Context, run domain.Run) []domain.ToolOutput {
	if run.RequiredAction == nil || run.RequiredAction.SubmitToolOutputs == nil {
		return nil
	}

	var outputs []domain.ToolOutput
	for _, call := range run.RequiredAction.SubmitToolOutputs.ToolCalls {
		name := call.Function.Name
		handler, ok := s.tools.Lookup(name)
		if !ok {
			s.log.Warn().Str("tool", name).Str("call", call.ID).Msg("skipping unrecognized tool call")
			continue
		}

		s.log.Info().Str("tool", name).Str("call", call.ID).Msg("executing tool call")
		s.metrics.ToolInvoked(name)
		outputs = append(outputs, domain.ToolOutput{
			ToolCallID: call.ID,
			Output:     handler(ctx, json.RawMessage(call.Function.Arguments)),
		})
	}
	return outputs
}
