package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/promptforge/prompt-service/internal/events"
	"github.com/promptforge/prompt-service/internal/models"
	"github.com/promptforge/prompt-service/internal/providers"
	"github.com/promptforge/prompt-service/internal/repositories"
	"github.com/promptforge/prompt-service/internal/templates"
	"github.com/promptforge/prompt-service/internal/validator"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	titleSnippetLen = 50
)

type promptService struct {
	repo      repositories.Repository
	generator providers.GenerationClient
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewPromptService(
	repo repositories.Repository,
	generator providers.GenerationClient,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
) PromptService {
	return &promptService{
		repo:      repo,
		generator: generator,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// ===== CRUD =====

func (s *promptService) List(ctx context.Context, userID uint, page, size int) (*models.PaginatedResponse, error) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	prompts, total, err := s.repo.Prompt().ListByUser(ctx, userID, repositories.PromptFilters{
		Limit:  size,
		Offset: (page - 1) * size,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list prompts: %w", err)
	}

	return &models.PaginatedResponse{
		Count:   total,
		Page:    page,
		Size:    size,
		Results: prompts,
	}, nil
}

func (s *promptService) Create(ctx context.Context, user *models.User, req *models.PromptCreateRequest) (*models.Prompt, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	title := req.Title
	if title == "" {
		title = defaultTitle(req.Category, req.InputText)
	}

	prompt := &models.Prompt{
		UserID:        user.ID,
		Title:         title,
		InputText:     req.InputText,
		Category:      req.Category,
		ResponseStyle: req.ResponseStyle,
		Description:   req.Description,
		GeneratedPrompt: templates.Build(
			user.Username, user.Role,
			req.Category, req.ResponseStyle,
			req.InputText, req.Description,
		),
	}

	if err := s.repo.Prompt().Create(ctx, prompt); err != nil {
		return nil, fmt.Errorf("failed to create prompt: %w", err)
	}

	s.publishEvent(ctx, events.TypePromptCreated, map[string]interface{}{
		"prompt_id": prompt.ID,
		"user_id":   user.ID,
		"category":  prompt.Category,
	})

	return prompt, nil
}

func (s *promptService) Get(ctx context.Context, userID, promptID uint) (*models.Prompt, error) {
	prompt, err := s.repo.Prompt().GetOwnedByID(ctx, promptID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get prompt: %w", err)
	}
	return prompt, nil
}

func (s *promptService) Update(ctx context.Context, user *models.User, promptID uint, req *models.PromptUpdateRequest) (*models.Prompt, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	prompt, err := s.Get(ctx, user.ID, promptID)
	if err != nil {
		return nil, err
	}

	templateChanged := false
	if req.Title != nil {
		prompt.Title = *req.Title
	}
	if req.InputText != nil {
		prompt.InputText = *req.InputText
		templateChanged = true
	}
	if req.Category != nil {
		prompt.Category = *req.Category
		templateChanged = true
	}
	if req.ResponseStyle != nil {
		prompt.ResponseStyle = *req.ResponseStyle
		templateChanged = true
	}
	if req.Description != nil {
		prompt.Description = *req.Description
		templateChanged = true
	}

	if templateChanged {
		prompt.GeneratedPrompt = templates.Build(
			user.Username, user.Role,
			prompt.Category, prompt.ResponseStyle,
			prompt.InputText, prompt.Description,
		)
	}

	if err := s.repo.Prompt().Update(ctx, prompt); err != nil {
		return nil, fmt.Errorf("failed to update prompt: %w", err)
	}

	return prompt, nil
}

func (s *promptService) Delete(ctx context.Context, userID, promptID uint) error {
	if err := s.repo.Prompt().Delete(ctx, promptID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete prompt: %w", err)
	}
	return nil
}

// ===== EXECUTION =====

func (s *promptService) Execute(ctx context.Context, user *models.User, req *models.ExecutePromptRequest) (*models.ExecutePromptResponse, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	// When a prompt_id is supplied the prompt must already belong to the
	// caller; missing and foreign ids both read as not found.
	var existing *models.Prompt
	if req.PromptID != nil {
		var err error
		existing, err = s.Get(ctx, user.ID, *req.PromptID)
		if err != nil {
			return nil, err
		}
	}

	generated := templates.Build(
		user.Username, user.Role,
		req.Category, req.ResponseStyle,
		req.InputText, req.Description,
	)

	response, err := s.generator.Complete(ctx, generated)
	if err != nil {
		if errors.Is(err, providers.ErrNotConfigured) {
			return nil, ErrGenerationNotConfigured
		}
		s.logger.Error("generation request failed", "user_id", user.ID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	result := &models.ExecutePromptResponse{
		GeneratedPrompt: generated,
		Response:        response,
	}

	switch {
	case existing != nil:
		existing.InputText = req.InputText
		existing.Category = req.Category
		existing.ResponseStyle = req.ResponseStyle
		existing.Description = req.Description
		existing.GeneratedPrompt = generated
		existing.AIResponse = response
		if req.Title != "" {
			existing.Title = req.Title
		}
		if err := s.repo.Prompt().Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update prompt: %w", err)
		}
		result.Prompt = existing

	case req.Save:
		title := req.Title
		if title == "" {
			title = defaultTitle(req.Category, req.InputText)
		}
		prompt := &models.Prompt{
			UserID:          user.ID,
			Title:           title,
			InputText:       req.InputText,
			Category:        req.Category,
			ResponseStyle:   req.ResponseStyle,
			Description:     req.Description,
			GeneratedPrompt: generated,
			AIResponse:      response,
		}
		if err := s.repo.Prompt().Create(ctx, prompt); err != nil {
			return nil, fmt.Errorf("failed to create prompt: %w", err)
		}
		result.Prompt = prompt
	}

	s.publishEvent(ctx, events.TypePromptExecuted, map[string]interface{}{
		"user_id":  user.ID,
		"category": req.Category,
		"saved":    result.Prompt != nil,
	})

	return result, nil
}

// ===== HELPERS =====

// defaultTitle builds "<Category> - <input snippet>" when the client sends no
// title of its own. The snippet is truncated by characters, not bytes, so
// multibyte input never produces a title ending in a split rune.
func defaultTitle(category models.PromptCategory, input string) string {
	snippet := []rune(input)
	if len(snippet) > titleSnippetLen {
		snippet = snippet[:titleSnippetLen]
	}
	return fmt.Sprintf("%s - %s", category.DisplayName(), string(snippet))
}

func (s *promptService) publishEvent(ctx context.Context, eventType string, data interface{}) {
	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, data)); err != nil {
		s.logger.Error("failed to publish event", "event_type", eventType, "error", err)
	}
}
