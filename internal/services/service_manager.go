package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/promptforge/prompt-service/internal/auth"
	"github.com/promptforge/prompt-service/internal/cache"
	"github.com/promptforge/prompt-service/internal/events"
	"github.com/promptforge/prompt-service/internal/providers"
	"github.com/promptforge/prompt-service/internal/repositories"
	"github.com/promptforge/prompt-service/internal/validator"
)

// Dependencies carries everything the services need; main wires it up once.
type Dependencies struct {
	Repo        repositories.Repository
	Logger      *slog.Logger
	Validator   *validator.Validator
	Cache       *cache.CacheManager
	Tokens      *auth.TokenManager
	Revocations auth.RevocationList
	Google      *providers.GoogleVerifier
	Generator   providers.GenerationClient
	Publisher   events.EventPublisher
}

// serviceManager implements ServiceManager.
type serviceManager struct {
	deps Dependencies

	authService      AuthService
	promptService    PromptService
	dashboardService DashboardService
	exportService    ExportService

	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

func NewServiceManager(deps Dependencies) ServiceManager {
	return &serviceManager{deps: deps}
}

// Initialize builds all services from the shared dependencies.
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.deps.Logger.Info("Initializing service manager")

	sm.authService = NewAuthService(
		sm.deps.Repo,
		sm.deps.Tokens,
		sm.deps.Revocations,
		sm.deps.Google,
		sm.deps.Publisher,
		sm.deps.Logger,
		sm.deps.Validator,
	)
	sm.promptService = NewPromptService(
		sm.deps.Repo,
		sm.deps.Generator,
		sm.deps.Publisher,
		sm.deps.Logger,
		sm.deps.Validator,
	)
	sm.dashboardService = NewDashboardService(sm.deps.Repo, sm.deps.Cache, sm.deps.Logger)
	sm.exportService = NewExportService(sm.deps.Repo, sm.deps.Logger)

	sm.initialized = true
	sm.deps.Logger.Info("Service manager initialized successfully")

	return nil
}

// Service getters
func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized || sm.authService == nil {
		panic("auth service not initialized")
	}

	return sm.authService
}

func (sm *serviceManager) Prompt() PromptService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized || sm.promptService == nil {
		panic("prompt service not initialized")
	}

	return sm.promptService
}

func (sm *serviceManager) Dashboard() DashboardService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized || sm.dashboardService == nil {
		panic("dashboard service not initialized")
	}

	return sm.dashboardService
}

func (sm *serviceManager) Export() ExportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized || sm.exportService == nil {
		panic("export service not initialized")
	}

	return sm.exportService
}

// Health and lifecycle
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}

	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := sm.deps.Repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.deps.Logger.Info("Shutting down service manager")

	if sm.deps.Publisher != nil {
		if err := sm.deps.Publisher.Close(); err != nil {
			sm.deps.Logger.Error("Failed to close event publisher", "error", err)
		}
	}

	if err := sm.deps.Repo.Close(); err != nil {
		sm.deps.Logger.Error("Failed to close repository", "error", err)
	}

	sm.shutdown = true
	sm.deps.Logger.Info("Service manager shut down completed")

	return nil
}
