package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/promptforge/prompt-service/internal/events"
	"github.com/promptforge/prompt-service/internal/models"
	"github.com/promptforge/prompt-service/internal/providers"
	"github.com/promptforge/prompt-service/internal/validator"
)

type promptFixture struct {
	service   PromptService
	repo      *fakeRepository
	generator *fakeGenerator
	publisher *events.MockEventPublisher
}

func newPromptFixture(t *testing.T) *promptFixture {
	t.Helper()

	repo := newFakeRepository()
	generator := &fakeGenerator{response: "generated answer"}
	publisher := events.NewMockEventPublisher(testLogger())

	service := NewPromptService(repo, generator, publisher, testLogger(), validator.New())

	return &promptFixture{
		service:   service,
		repo:      repo,
		generator: generator,
		publisher: publisher,
	}
}

func testUser() *models.User {
	return &models.User{
		ID:       1,
		Username: "ada",
		Email:    "ada@example.com",
		Role:     models.RoleDeveloper,
		IsActive: true,
	}
}

func createRequest() *models.PromptCreateRequest {
	return &models.PromptCreateRequest{
		InputText:     "How do goroutines work?",
		Category:      models.CategoryDoubt,
		ResponseStyle: models.StyleDetailed,
		Description:   "focus on the scheduler",
	}
}

func TestPromptService_Create(t *testing.T) {
	ctx := context.Background()
	fx := newPromptFixture(t)
	user := testUser()

	prompt, err := fx.service.Create(ctx, user, createRequest())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if prompt.ID == 0 {
		t.Error("Create() did not persist the prompt")
	}
	if prompt.GeneratedPrompt == "" {
		t.Error("Create() did not render the generated prompt")
	}
	if !strings.Contains(prompt.GeneratedPrompt, "ada") {
		t.Error("generated prompt should mention the username")
	}
	if prompt.AIResponse != "" {
		t.Error("Create() must not execute the prompt")
	}

	published := fx.publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.TypePromptCreated {
		t.Errorf("published %v, want one %s event", published, events.TypePromptCreated)
	}
}

func TestPromptService_Create_DefaultTitle(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "long ascii input",
			input: strings.Repeat("a", 80),
			want:  "Image Generation - " + strings.Repeat("a", 50),
		},
		{
			name:  "multibyte input truncated by characters",
			input: strings.Repeat("界", 60),
			want:  "Image Generation - " + strings.Repeat("界", 50),
		},
		{
			name:  "short input kept whole",
			input: "draw a cat",
			want:  "Image Generation - draw a cat",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newPromptFixture(t)

			req := createRequest()
			req.Category = models.CategoryImageGeneration
			req.InputText = tt.input

			prompt, err := fx.service.Create(ctx, testUser(), req)
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if prompt.Title != tt.want {
				t.Errorf("title = %q, want %q", prompt.Title, tt.want)
			}
			if !utf8.ValidString(prompt.Title) {
				t.Errorf("title %q is not valid UTF-8", prompt.Title)
			}
		})
	}
}

func TestPromptService_Create_InvalidCategory(t *testing.T) {
	ctx := context.Background()
	fx := newPromptFixture(t)

	req := createRequest()
	req.Category = "sorcery"

	if _, err := fx.service.Create(ctx, testUser(), req); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("Create() error = %v, want ErrValidationFailed", err)
	}
}

func TestPromptService_GetAndOwnership(t *testing.T) {
	ctx := context.Background()
	fx := newPromptFixture(t)
	user := testUser()

	prompt, err := fx.service.Create(ctx, user, createRequest())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := fx.service.Get(ctx, user.ID, prompt.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != prompt.ID {
		t.Errorf("Get() id = %d, want %d", got.ID, prompt.ID)
	}

	// Another user's prompt reads as missing, not forbidden.
	if _, err := fx.service.Get(ctx, 42, prompt.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() foreign prompt error = %v, want ErrNotFound", err)
	}
	if _, err := fx.service.Get(ctx, user.ID, 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() missing prompt error = %v, want ErrNotFound", err)
	}
}

func TestPromptService_Update_RegeneratesTemplate(t *testing.T) {
	ctx := context.Background()
	fx := newPromptFixture(t)
	user := testUser()

	prompt, err := fx.service.Create(ctx, user, createRequest())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	before := prompt.GeneratedPrompt

	newInput := "How do channels work?"
	updated, err := fx.service.Update(ctx, user, prompt.ID, &models.PromptUpdateRequest{InputText: &newInput})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.GeneratedPrompt == before {
		t.Error("Update() should regenerate the prompt when the input changes")
	}
	if !strings.Contains(updated.GeneratedPrompt, newInput) {
		t.Error("regenerated prompt should contain the new input")
	}

	// A title-only change leaves the rendered prompt alone.
	newTitle := "Renamed"
	renamed, err := fx.service.Update(ctx, user, prompt.ID, &models.PromptUpdateRequest{Title: &newTitle})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if renamed.GeneratedPrompt != updated.GeneratedPrompt {
		t.Error("Update() must not regenerate on a title-only change")
	}
}

func TestPromptService_Delete(t *testing.T) {
	ctx := context.Background()
	fx := newPromptFixture(t)
	user := testUser()

	prompt, err := fx.service.Create(ctx, user, createRequest())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := fx.service.Delete(ctx, 42, prompt.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() foreign prompt error = %v, want ErrNotFound", err)
	}
	if err := fx.service.Delete(ctx, user.ID, prompt.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := fx.service.Delete(ctx, user.ID, prompt.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() twice error = %v, want ErrNotFound", err)
	}
}

func TestPromptService_List_Pagination(t *testing.T) {
	ctx := context.Background()
	fx := newPromptFixture(t)
	user := testUser()

	for i := 0; i < 12; i++ {
		if _, err := fx.service.Create(ctx, user, createRequest()); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	page, err := fx.service.List(ctx, user.ID, 1, 5)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if page.Count != 12 {
		t.Errorf("count = %d, want 12", page.Count)
	}
	if got := len(page.Results.([]*models.Prompt)); got != 5 {
		t.Errorf("page size = %d, want 5", got)
	}

	last, err := fx.service.List(ctx, user.ID, 3, 5)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if got := len(last.Results.([]*models.Prompt)); got != 2 {
		t.Errorf("last page size = %d, want 2", got)
	}

	// Out-of-range page and size are clamped rather than rejected.
	clamped, err := fx.service.List(ctx, user.ID, 0, 1000)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if clamped.Page != 1 || clamped.Size != maxPageSize {
		t.Errorf("clamped page/size = %d/%d, want 1/%d", clamped.Page, clamped.Size, maxPageSize)
	}
}

func TestPromptService_Execute_Transient(t *testing.T) {
	ctx := context.Background()
	fx := newPromptFixture(t)
	user := testUser()

	req := &models.ExecutePromptRequest{
		InputText:     "Explain the context package",
		Category:      models.CategoryDoubt,
		ResponseStyle: models.StyleConcise,
	}

	resp, err := fx.service.Execute(ctx, user, req)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if resp.Response != "generated answer" {
		t.Errorf("response = %q", resp.Response)
	}
	if resp.Prompt != nil {
		t.Error("Execute() without save must not persist anything")
	}
	if count, _ := fx.repo.dashboard.CountPrompts(ctx, user.ID); count != 0 {
		t.Errorf("stored prompts = %d, want 0", count)
	}
}

func TestPromptService_Execute_Save(t *testing.T) {
	ctx := context.Background()
	fx := newPromptFixture(t)
	user := testUser()

	req := &models.ExecutePromptRequest{
		InputText:     "Explain the context package",
		Category:      models.CategoryDoubt,
		ResponseStyle: models.StyleConcise,
		Save:          true,
	}

	resp, err := fx.service.Execute(ctx, user, req)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if resp.Prompt == nil || resp.Prompt.ID == 0 {
		t.Fatal("Execute() with save should persist the prompt")
	}
	if resp.Prompt.AIResponse != "generated answer" {
		t.Errorf("stored response = %q", resp.Prompt.AIResponse)
	}
	if !resp.Prompt.IsExecuted() {
		t.Error("saved prompt should count as executed")
	}
}

func TestPromptService_Execute_UpdatesExisting(t *testing.T) {
	ctx := context.Background()
	fx := newPromptFixture(t)
	user := testUser()

	prompt, err := fx.service.Create(ctx, user, createRequest())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	req := &models.ExecutePromptRequest{
		PromptID:      &prompt.ID,
		InputText:     "How do goroutines work, in depth?",
		Category:      models.CategoryDoubt,
		ResponseStyle: models.StyleTechnical,
	}

	resp, err := fx.service.Execute(ctx, user, req)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if resp.Prompt == nil || resp.Prompt.ID != prompt.ID {
		t.Fatal("Execute() should update the referenced prompt in place")
	}
	if resp.Prompt.AIResponse != "generated answer" {
		t.Errorf("stored response = %q", resp.Prompt.AIResponse)
	}
	if resp.Prompt.ResponseStyle != models.StyleTechnical {
		t.Errorf("style = %q, want technical", resp.Prompt.ResponseStyle)
	}

	if count, _ := fx.repo.dashboard.CountPrompts(ctx, user.ID); count != 1 {
		t.Errorf("stored prompts = %d, want 1 (no duplicate)", count)
	}
}

func TestPromptService_Execute_ForeignPromptID(t *testing.T) {
	ctx := context.Background()
	fx := newPromptFixture(t)

	owner := testUser()
	prompt, err := fx.service.Create(ctx, owner, createRequest())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	intruder := testUser()
	intruder.ID = 42
	intruder.Username = "mallory"

	req := &models.ExecutePromptRequest{
		PromptID:      &prompt.ID,
		InputText:     "steal this",
		Category:      models.CategoryDoubt,
		ResponseStyle: models.StyleConcise,
	}
	if _, err := fx.service.Execute(ctx, intruder, req); !errors.Is(err, ErrNotFound) {
		t.Errorf("Execute() foreign prompt error = %v, want ErrNotFound", err)
	}
	if fx.generator.calls != 0 {
		t.Error("Execute() must not call the generation API for a foreign prompt")
	}
}

func TestPromptService_Execute_GenerationErrors(t *testing.T) {
	ctx := context.Background()
	user := testUser()

	req := &models.ExecutePromptRequest{
		InputText:     "anything",
		Category:      models.CategoryDoubt,
		ResponseStyle: models.StyleConcise,
	}

	fx := newPromptFixture(t)
	fx.generator.err = providers.ErrNotConfigured
	if _, err := fx.service.Execute(ctx, user, req); !errors.Is(err, ErrGenerationNotConfigured) {
		t.Errorf("Execute() error = %v, want ErrGenerationNotConfigured", err)
	}

	fx = newPromptFixture(t)
	fx.generator.err = errors.New("upstream 500")
	if _, err := fx.service.Execute(ctx, user, req); !errors.Is(err, ErrGenerationFailed) {
		t.Errorf("Execute() error = %v, want ErrGenerationFailed", err)
	}
}
