// Package registry holds the bridge's process-wide mutable state: the agent
// directory cache and the session-to-thread map. Both are owned by injected
// values, never package globals, and both guard their memory with a mutex.
package registry

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/FXdmz/HPA-Azure-Demo/internal/domain"
)

// agentIDPrefix marks a value that is already a runtime agent id rather
// than a semantic name.
const agentIDPrefix = "asst_"

// AgentLister lists the agents visible to the remote platform.
type AgentLister interface {
	ListAgents(ctx context.Context) ([]domain.Agent, error)
}

// Directory resolves a semantic agent name to its runtime id, caching the
// result for the life of the process. The cache has no expiry of its own;
// the orchestrator invalidates it whenever a turn fails, on the theory that
// the agent may have been redeployed.
type Directory struct {
	mu     sync.Mutex
	lister AgentLister
	cached string
	log    zerolog.Logger
}

// NewDirectory creates an empty directory backed by the given lister.
func NewDirectory(lister AgentLister, log zerolog.Logger) *Directory {
	return &Directory{
		lister: lister,
		log:    log,
	}
}

// Resolve returns the runtime id for an agent name. A cached id is returned
// without a remote call. A value already carrying the runtime id prefix is
// used verbatim and cached. Otherwise the platform's listing is searched
// for an exact name match.
func (d *Directory) Resolve(ctx context.Context, name string) (string, error) {
	d.mu.Lock()
	cached := d.cached
	d.mu.Unlock()
	if cached != "" {
		return cached, nil
	}

	if strings.HasPrefix(name, agentIDPrefix) {
		d.store(name)
		return name, nil
	}

	d.log.Info().Str("agent", name).Msg("resolving agent name")
	agents, err := d.lister.ListAgents(ctx)
	if err != nil {
		return "", err
	}

	for _, agent := range agents {
		if agent.Name == name {
			d.log.Info().Str("agent", name).Str("id", agent.ID).Msg("resolved agent")
			d.store(agent.ID)
			return agent.ID, nil
		}
	}

	available := make([]string, 0, len(agents))
	for _, agent := range agents {
		available = append(available, agent.Name)
	}
	return "", &domain.AgentNotFoundError{Name: name, Available: available}
}

// Invalidate clears the cached id, forcing the next Resolve to re-list.
func (d *Directory) Invalidate() {
	d.mu.Lock()
	d.cached = ""
	d.mu.Unlock()
}

// CachedID returns the currently cached id, or empty when unresolved.
func (d *Directory) CachedID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cached
}

func (d *Directory) store(id string) {
	d.mu.Lock()
	d.cached = id
	d.mu.Unlock()
}
