package service

import (
	"context"

	"github.com/FXdmz/HPA-Azure-Demo/internal/domain"
)

// SDKVersion identifies the client implementation in the health view.
const SDKVersion = "go-foundry-rest"

// ListAgents lists all agents visible to the remote platform.
func (s *Service) ListAgents(ctx context.Context) ([]domain.Agent, error) {
	return s.platform.ListAgents(ctx)
}

// AgentDetail returns the configured agent's full definition, matching the
// configured value against either the agent name or its id.
func (s *Service) AgentDetail(ctx context.Context) (domain.Agent, error) {
	agents, err := s.platform.ListAgents(ctx)
	if err != nil {
		return domain.Agent{}, err
	}

	for _, agent := range agents {
		if agent.Name == s.cfg.AgentName || agent.ID == s.cfg.AgentName {
			return agent, nil
		}
	}

	available := make([]string, 0, len(agents))
	for _, agent := range agents {
		available = append(available, agent.Name)
	}
	return domain.Agent{}, &domain.AgentNotFoundError{Name: s.cfg.AgentName, Available: available}
}

// Health reports the bridge's view of the configured agent. It never fails:
// when resolution is unavailable it degrades to the configured defaults,
// falling back to the cached agent id if one exists.
func (s *Service) Health(ctx context.Context) domain.Health {
	health := domain.Health{
		Status:      "ok",
		AgentName:   s.cfg.AgentName,
		AgentID:     s.cfg.AgentName,
		ProjectName: s.cfg.Endpoint,
		SDKVersion:  SDKVersion,
		Mode:        "dynamic-resolution",
	}
	if health.ProjectName == "" {
		health.ProjectName = "Unknown"
	}

	agent, err := s.AgentDetail(ctx)
	if err != nil {
		s.log.Debug().Err(err).Msg("health check degraded to configured defaults")
		if cached := s.directory.CachedID(); cached != "" {
			health.AgentID = cached
		}
		return health
	}

	health.AgentName = agent.Name
	health.AgentID = agent.ID
	return health
}
