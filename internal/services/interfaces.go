package services

import (
	"context"

	"github.com/promptforge/prompt-service/internal/models"
)

// ===== AUTH =====

type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)

	// Logout revokes the refresh token; an invalid token is reported as
	// ErrInvalidToken, never as an internal error.
	Logout(ctx context.Context, refreshToken string) error

	// Refresh validates a refresh token against the revocation list and
	// issues a fresh access token.
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)

	// GoogleAuthenticate signs a user in from a Google ID token;
	// GoogleAuthenticateCode does the same from an OAuth authorization code.
	// Both converge on the same identity-resolution and token-issuance path.
	GoogleAuthenticate(ctx context.Context, idToken string) (*models.AuthResponse, error)
	GoogleAuthenticateCode(ctx context.Context, code string) (*models.AuthResponse, error)

	GetProfile(ctx context.Context, userID uint) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uint, req *models.ProfileUpdateRequest) (*models.User, error)
}

// ===== PROMPTS =====

type PromptService interface {
	List(ctx context.Context, userID uint, page, size int) (*models.PaginatedResponse, error)
	Create(ctx context.Context, user *models.User, req *models.PromptCreateRequest) (*models.Prompt, error)
	Get(ctx context.Context, userID, promptID uint) (*models.Prompt, error)
	Update(ctx context.Context, user *models.User, promptID uint, req *models.PromptUpdateRequest) (*models.Prompt, error)
	Delete(ctx context.Context, userID, promptID uint) error

	// Execute renders the template and runs it against the generation API.
	// With a prompt_id it updates the owned prompt in place; with save=true
	// it persists a new prompt; otherwise nothing is stored.
	Execute(ctx context.Context, user *models.User, req *models.ExecutePromptRequest) (*models.ExecutePromptResponse, error)
}

// ===== DASHBOARD =====

type DashboardService interface {
	GetStats(ctx context.Context, userID uint) (*models.DashboardStatsResponse, error)
}

// ===== EXPORT =====

type ExportService interface {
	// ExportPrompts renders the user's prompt history as an .xlsx workbook
	// and returns the file bytes plus a download filename.
	ExportPrompts(ctx context.Context, userID uint) ([]byte, string, error)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	Auth() AuthService
	Prompt() PromptService
	Dashboard() DashboardService
	Export() ExportService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
