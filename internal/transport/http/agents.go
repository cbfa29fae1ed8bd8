package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/FXdmz/HPA-Azure-Demo/internal/domain"
)

// ListAgents lists all agents visible to the remote platform.
// GET /api/agents
func (h *Handler) ListAgents(c echo.Context) error {
	agents, err := h.service.ListAgents(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	list := make([]map[string]any, len(agents))
	for i, agent := range agents {
		list[i] = map[string]any{
			"name":      agent.Name,
			"id":        agent.ID,
			"model":     agent.Model,
			"createdAt": formatCreatedAt(agent.CreatedAt),
			"tools":     toolTags(agent.Tools),
		}
	}

	return c.JSON(http.StatusOK, map[string]any{"agents": list})
}

// GetAgent returns the configured agent's detail view.
// GET /api/agent
func (h *Handler) GetAgent(c echo.Context) error {
	agent, err := h.service.AgentDetail(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"name":           agent.Name,
		"id":             agent.ID,
		"model":          agent.Model,
		"instructions":   agent.Instructions,
		"tools":          toolTags(agent.Tools),
		"vectorStoreIds": agent.VectorStoreIDs(),
		"createdAt":      formatCreatedAt(agent.CreatedAt),
	})
}

func toolTags(tools []domain.AgentTool) []string {
	tags := make([]string, len(tools))
	for i, tool := range tools {
		tags[i] = tool.Tag()
	}
	return tags
}

func formatCreatedAt(unix int64) any {
	if unix == 0 {
		return nil
	}
	return time.Unix(unix, 0).UTC().Format(time.RFC3339)
}
