package models

// ===== AUTH =====

type RegisterRequest struct {
	Username        string         `json:"username" validate:"required,min=3,max=150"`
	Email           string         `json:"email" validate:"required,email,max=255"`
	Password        string         `json:"password" validate:"required,min=8,max=128"`
	ConfirmPassword string         `json:"confirm_password" validate:"required,eqfield=Password"`
	FirstName       string         `json:"first_name" validate:"omitempty,max=150"`
	LastName        string         `json:"last_name" validate:"omitempty,max=150"`
	Role            UserRole       `json:"role" validate:"omitempty,user_role"`
	Preferences     map[string]any `json:"preferences"`
}

type LoginRequest struct {
	// Accepts either the username or the email address.
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type GoogleAuthRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type GoogleCodeRequest struct {
	Code string `json:"code" validate:"required"`
}

type ProfileUpdateRequest struct {
	FirstName   *string        `json:"first_name" validate:"omitempty,max=150"`
	LastName    *string        `json:"last_name" validate:"omitempty,max=150"`
	Role        *UserRole      `json:"role" validate:"omitempty,user_role"`
	Preferences map[string]any `json:"preferences"`
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type AuthResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	User    *User  `json:"user"`
}

// ===== PROMPTS =====

type PromptCreateRequest struct {
	Title         string         `json:"title" validate:"omitempty,max=200"`
	InputText     string         `json:"input_text" validate:"required"`
	Category      PromptCategory `json:"category" validate:"required,prompt_category"`
	ResponseStyle ResponseStyle  `json:"response_style" validate:"required,response_style"`
	Description   string         `json:"description"`
}

type PromptUpdateRequest struct {
	Title         *string         `json:"title" validate:"omitempty,min=1,max=200"`
	InputText     *string         `json:"input_text" validate:"omitempty,min=1"`
	Category      *PromptCategory `json:"category" validate:"omitempty,prompt_category"`
	ResponseStyle *ResponseStyle  `json:"response_style" validate:"omitempty,response_style"`
	Description   *string         `json:"description"`
}

type ExecutePromptRequest struct {
	PromptID      *uint          `json:"prompt_id"`
	Title         string         `json:"title" validate:"omitempty,max=200"`
	InputText     string         `json:"input_text" validate:"required"`
	Category      PromptCategory `json:"category" validate:"required,prompt_category"`
	ResponseStyle ResponseStyle  `json:"response_style" validate:"required,response_style"`
	Description   string         `json:"description"`
	Save          bool           `json:"save"`
}

type ExecutePromptResponse struct {
	GeneratedPrompt string  `json:"generated_prompt"`
	Response        string  `json:"response"`
	Prompt          *Prompt `json:"prompt,omitempty"`
}

// ===== SHARED =====

type PaginatedResponse struct {
	Count   int64 `json:"count"`
	Page    int   `json:"page"`
	Size    int   `json:"size"`
	Results any   `json:"results"`
}

// DashboardStatsResponse keeps the camelCase keys the web client expects.
type DashboardStatsResponse struct {
	TotalPrompts     int64     `json:"totalPrompts"`
	TotalExecutions  int64     `json:"totalExecutions"`
	FavoriteCategory string    `json:"favoriteCategory"`
	RecentActivity   []*Prompt `json:"recentActivity"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
