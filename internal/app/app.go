package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Checo3x/Washington-Commanders-Hub/external/espn"
	"github.com/Checo3x/Washington-Commanders-Hub/internal/config"
	"github.com/Checo3x/Washington-Commanders-Hub/internal/content"
	"github.com/Checo3x/Washington-Commanders-Hub/internal/interfaces/httpapi"
	"github.com/Checo3x/Washington-Commanders-Hub/internal/platform/cache"
	"github.com/Checo3x/Washington-Commanders-Hub/internal/platform/logging"
	"github.com/Checo3x/Washington-Commanders-Hub/internal/platform/resilience"
	"github.com/Checo3x/Washington-Commanders-Hub/internal/usecase"
)

// App bundles the HTTP server with the section engine so the entrypoint can
// kick off the initial page build after the listener is up.
type App struct {
	Server  *http.Server
	Engine  *usecase.EngineService
	Sources []usecase.Source
}

func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	appLogger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(appLogger)

	store := cache.NewStore(cfg.CacheFile)
	sections := usecase.NewSectionRegistry()

	espnClient := espn.NewClient(espn.ClientConfig{
		BaseURL:    cfg.ESPNBaseURL,
		APIKey:     cfg.ESPNAPIKey,
		Timeout:    cfg.ESPNTimeout,
		MaxRetries: cfg.ESPNMaxRetries,
		Logger:     appLogger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ESPNCircuitEnabled,
			FailureThreshold: cfg.ESPNCircuitFailureCount,
			OpenTimeout:      cfg.ESPNCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.ESPNCircuitHalfOpenMaxReq,
		},
	})

	contentStore, err := content.NewStore(cfg.ContentFile)
	if err != nil {
		return nil, fmt.Errorf("build content store: %w", err)
	}

	engine := usecase.NewEngineService(
		store,
		sections,
		&http.Client{Timeout: cfg.PageFetchTimeout},
		appLogger,
	)
	sources := usecase.BuildSources(pageSourceBaseURL(cfg), cfg.TrackedTeamID, cfg.TrackedTeamName)
	refreshSvc := usecase.NewRefreshService(engine, store, sections, sources, cfg.RefreshWorkers, appLogger)

	handler := httpapi.NewHandler(espnClient, contentStore, sections, refreshSvc, cfg.TrackedTeamName, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{
		Server:  server,
		Engine:  engine,
		Sources: sources,
	}, nil
}

// pageSourceBaseURL falls back to the service's own listen address, which is
// the standard deployment: the engine consumes its own proxy routes.
func pageSourceBaseURL(cfg config.Config) string {
	base := strings.TrimSpace(cfg.PageSourceBaseURL)
	if base != "" {
		return base
	}
	if strings.HasPrefix(cfg.HTTPAddr, ":") {
		return "http://localhost" + cfg.HTTPAddr
	}
	return "http://" + cfg.HTTPAddr
}
