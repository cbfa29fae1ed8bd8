package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/oauth2/microsoft"

	"github.com/FXdmz/HPA-Azure-Demo/internal/adapter/factcard"
	"github.com/FXdmz/HPA-Azure-Demo/internal/adapter/foundry"
	"github.com/FXdmz/HPA-Azure-Demo/internal/config"
	"github.com/FXdmz/HPA-Azure-Demo/internal/logger"
	"github.com/FXdmz/HPA-Azure-Demo/internal/metrics"
	"github.com/FXdmz/HPA-Azure-Demo/internal/registry"
	"github.com/FXdmz/HPA-Azure-Demo/internal/service"
	"github.com/FXdmz/HPA-Azure-Demo/internal/tools"
	transport "github.com/FXdmz/HPA-Azure-Demo/internal/transport/http"
)

// platformScope is the OAuth2 scope for the agent platform.
const platformScope = "https://cognitiveservices.azure.com/.default"

func main() {
	listAgents := flag.Bool("agents", false, "print the agent directory and exit")
	flag.Parse()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogPretty)

	if missing := cfg.MissingRequired(); len(missing) > 0 {
		log.Warn().Str("missing", strings.Join(missing, ", ")).Msg("missing required settings, requests will fail until they are provided")
	}

	platform := foundry.NewClient(cfg.Endpoint, cfg.APIVersion, platformHTTPClient(cfg))

	if *listAgents {
		printAgentDirectory(platform)
		return
	}

	log.Info().
		Str("project", cfg.Endpoint).
		Str("agent", cfg.AgentName).
		Msg("starting agent bridge")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	m := metrics.New(reg)

	directory := registry.NewDirectory(platform, log)
	sessions := registry.NewSessions(platform, log)

	toolRegistry := tools.NewRegistry()
	fact := factcard.NewClient(cfg.FactCardURL, nil, log)
	toolRegistry.MustRegister("getFactCard", fact.ToolHandler())

	svc := service.New(platform, directory, sessions, toolRegistry, cfg, m, log)

	h := transport.NewHandler(svc, reg)
	e := transport.NewServer(h, cfg.StaticDir)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()
	log.Info().Int("port", cfg.Port).Msg("agent bridge ready")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to shutdown server gracefully")
	}
	log.Info().Msg("agent bridge stopped")
}

// platformHTTPClient builds the authenticated HTTP client for the agent
// platform using the Azure AD client-credentials flow. Without credentials
// it returns a plain client; platform calls then fail through the generic
// error path.
func platformHTTPClient(cfg *config.Config) *http.Client {
	if !cfg.HasCredentials() {
		return &http.Client{Timeout: 30 * time.Second}
	}
	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     microsoft.AzureADEndpoint(cfg.TenantID).TokenURL,
		Scopes:       []string{platformScope},
	}
	return cc.Client(context.Background())
}

// printAgentDirectory lists the platform's agents on stdout, for operators
// looking up the exact name or id to configure.
func printAgentDirectory(platform *foundry.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	agents, err := platform.ListAgents(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if len(agents) == 0 {
		fmt.Println("no agents found in this project")
		return
	}
	for _, agent := range agents {
		fmt.Printf("name: %s\nid:   %s\nmodel: %s\n---\n", agent.Name, agent.ID, agent.Model)
	}
}
