package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/promptforge/prompt-service/internal/auth"
	"github.com/promptforge/prompt-service/internal/events"
	"github.com/promptforge/prompt-service/internal/models"
	"github.com/promptforge/prompt-service/internal/providers"
	"github.com/promptforge/prompt-service/internal/repositories"
	"github.com/promptforge/prompt-service/internal/validator"
)

type authService struct {
	repo        repositories.Repository
	tokens      *auth.TokenManager
	revocations auth.RevocationList
	google      *providers.GoogleVerifier
	publisher   events.EventPublisher
	logger      *slog.Logger
	validator   *validator.Validator
}

func NewAuthService(
	repo repositories.Repository,
	tokens *auth.TokenManager,
	revocations auth.RevocationList,
	google *providers.GoogleVerifier,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
) AuthService {
	return &authService{
		repo:        repo,
		tokens:      tokens,
		revocations: revocations,
		google:      google,
		publisher:   publisher,
		logger:      logger,
		validator:   validator,
	}
}

// ===== REGISTRATION / LOGIN =====

func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	if taken, err := s.repo.User().ExistsByUsername(ctx, req.Username); err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	} else if taken {
		return nil, ErrUsernameTaken
	}

	if taken, err := s.repo.User().ExistsByEmail(ctx, req.Email); err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	} else if taken {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleOther
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
		Preferences:  datatypes.JSONMap(req.Preferences),
		IsActive:     true,
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.publishEvent(ctx, events.TypeUserRegistered, map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"provider": "password",
	})

	return s.issueTokens(ctx, user)
}

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	user, err := s.lookupByUsernameOrEmail(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	// Google-only accounts carry no password hash and cannot log in here.
	if user.PasswordHash == "" || !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	match, err := auth.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil || !match {
		return nil, ErrInvalidCredentials
	}

	s.touchLastLogin(ctx, user)

	return s.issueTokens(ctx, user)
}

func (s *authService) lookupByUsernameOrEmail(ctx context.Context, identifier string) (*models.User, error) {
	user, err := s.repo.User().GetByUsername(ctx, identifier)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return s.repo.User().GetByEmail(ctx, identifier)
}

// ===== TOKEN LIFECYCLE =====

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.tokens.ValidateRefresh(refreshToken)
	if err != nil {
		return ErrInvalidToken
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.revocations.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	claims, err := s.tokens.ValidateRefresh(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check revocation: %w", err)
	}
	if revoked {
		return nil, ErrInvalidToken
	}

	user, err := s.repo.User().GetByID(ctx, claims.UserID)
	if err != nil || !user.IsActive {
		return nil, ErrInvalidToken
	}

	access, err := s.tokens.GenerateAccess(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &models.TokenPair{Access: access, Refresh: refreshToken}, nil
}

// ===== GOOGLE SIGN-IN =====

func (s *authService) GoogleAuthenticate(ctx context.Context, idToken string) (*models.AuthResponse, error) {
	identity, err := s.google.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGoogleAuthFailed, err)
	}
	return s.resolveGoogleIdentity(ctx, identity)
}

func (s *authService) GoogleAuthenticateCode(ctx context.Context, code string) (*models.AuthResponse, error) {
	identity, err := s.google.ExchangeCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGoogleAuthFailed, err)
	}
	return s.resolveGoogleIdentity(ctx, identity)
}

// resolveGoogleIdentity maps a verified Google identity to a local user,
// creating the account on first sign-in, then issues tokens. Both Google
// entry points end up here.
func (s *authService) resolveGoogleIdentity(ctx context.Context, identity *providers.GoogleIdentity) (*models.AuthResponse, error) {
	googlePrefs := map[string]interface{}{
		"google_id":       identity.Subject,
		"profile_picture": identity.Picture,
		"auth_provider":   "google",
	}

	user, err := s.repo.User().GetByEmail(ctx, identity.Email)
	switch {
	case err == nil:
		// Known account: refresh names and merge Google metadata without
		// dropping existing preference keys.
		user.FirstName = identity.GivenName
		user.LastName = identity.FamilyName
		if user.Preferences == nil {
			user.Preferences = datatypes.JSONMap{}
		}
		for k, v := range googlePrefs {
			user.Preferences[k] = v
		}
		if err := s.repo.User().Update(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}

	case errors.Is(err, gorm.ErrRecordNotFound):
		username, err := s.availableUsername(ctx, identity.Email)
		if err != nil {
			return nil, err
		}

		// Role stays empty until the user picks one in onboarding.
		user = &models.User{
			Username:    username,
			Email:       identity.Email,
			FirstName:   identity.GivenName,
			LastName:    identity.FamilyName,
			Role:        "",
			Preferences: datatypes.JSONMap(googlePrefs),
			IsActive:    true,
		}
		if err := s.repo.User().Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}

		s.publishEvent(ctx, events.TypeUserRegistered, map[string]interface{}{
			"user_id":  user.ID,
			"username": user.Username,
			"role":     user.Role,
			"provider": "google",
		})

	default:
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	s.touchLastLogin(ctx, user)

	return s.issueTokens(ctx, user)
}

// availableUsername derives a username from the email local part, appending
// an incrementing suffix until it is free.
func (s *authService) availableUsername(ctx context.Context, email string) (string, error) {
	base := strings.SplitN(email, "@", 2)[0]
	candidate := base

	for counter := 1; ; counter++ {
		taken, err := s.repo.User().ExistsByUsername(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check username: %w", err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, counter)
	}
}

// ===== PROFILE =====

func (s *authService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID uint, req *models.ProfileUpdateRequest) (*models.User, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Preferences != nil {
		user.Preferences = datatypes.JSONMap(req.Preferences)
	}

	if err := s.repo.User().Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// ===== HELPERS =====

func (s *authService) issueTokens(ctx context.Context, user *models.User) (*models.AuthResponse, error) {
	access, refresh, err := s.tokens.GeneratePair(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &models.AuthResponse{
		Access:  access,
		Refresh: refresh,
		User:    user,
	}, nil
}

func (s *authService) touchLastLogin(ctx context.Context, user *models.User) {
	now := time.Now()
	user.LastLogin = &now
	if err := s.repo.User().Update(ctx, user); err != nil {
		s.logger.Warn("failed to update last login", "user_id", user.ID, "error", err)
	}
}

func (s *authService) publishEvent(ctx context.Context, eventType string, data interface{}) {
	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, data)); err != nil {
		s.logger.Error("failed to publish event", "event_type", eventType, "error", err)
	}
}
