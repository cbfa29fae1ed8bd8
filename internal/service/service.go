// Package service implements the run orchestrator: it drives a single chat
// turn from message submission to normalized response, including tool-call
// interception and content-safety classification.
package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/FXdmz/HPA-Azure-Demo/internal/config"
	"github.com/FXdmz/HPA-Azure-Demo/internal/domain"
	"github.com/FXdmz/HPA-Azure-Demo/internal/metrics"
	"github.com/FXdmz/HPA-Azure-Demo/internal/registry"
	"github.com/FXdmz/HPA-Azure-Demo/internal/tools"
)

// Platform is the remote agent platform consumed by the orchestrator.
type Platform interface {
	ListAgents(ctx context.Context) ([]domain.Agent, error)
	CreateThread(ctx context.Context) (domain.Thread, error)
	CreateMessage(ctx context.Context, threadID, role, content string) (domain.Message, error)
	CreateRun(ctx context.Context, threadID, agentID string) (domain.Run, error)
	GetRun(ctx context.Context, threadID, runID string) (domain.Run, error)
	SubmitToolOutputs(ctx context.Context, threadID, runID string, outputs []domain.ToolOutput) (domain.Run, error)
	ListRunSteps(ctx context.Context, threadID, runID string) ([]domain.RunStep, error)
	ListMessages(ctx context.Context, threadID string) ([]domain.Message, error)
}

// Service orchestrates chat turns against the remote platform.
type Service struct {
	platform  Platform
	directory *registry.Directory
	sessions  *registry.Sessions
	tools     *tools.Registry
	cfg       *config.Config
	metrics   *metrics.Metrics
	log       zerolog.Logger
}

// New creates the orchestrator service.
func New(platform Platform, directory *registry.Directory, sessions *registry.Sessions, toolRegistry *tools.Registry, cfg *config.Config, m *metrics.Metrics, log zerolog.Logger) *Service {
	return &Service{
		platform:  platform,
		directory: directory,
		sessions:  sessions,
		tools:     toolRegistry,
		cfg:       cfg,
		metrics:   m,
		log:       log,
	}
}

// ClearSession drops the session's thread mapping. Idempotent.
func (s *Service) ClearSession(sessionID string) {
	if sessionID == "" {
		sessionID = domain.DefaultSessionID
	}
	s.sessions.Clear(sessionID)
}
