package services

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"github.com/promptforge/prompt-service/internal/models"
	"github.com/promptforge/prompt-service/internal/repositories"
)

// In-memory repository used across the service tests.

type fakeRepository struct {
	users     *fakeUserRepo
	prompts   *fakePromptRepo
	dashboard *fakeDashboardRepo
}

func newFakeRepository() *fakeRepository {
	prompts := &fakePromptRepo{byID: make(map[uint]*models.Prompt)}
	return &fakeRepository{
		users:     &fakeUserRepo{byID: make(map[uint]*models.User)},
		prompts:   prompts,
		dashboard: &fakeDashboardRepo{prompts: prompts},
	}
}

func (r *fakeRepository) User() repositories.UserRepository           { return r.users }
func (r *fakeRepository) Prompt() repositories.PromptRepository       { return r.prompts }
func (r *fakeRepository) Dashboard() repositories.DashboardRepository { return r.dashboard }

func (r *fakeRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(r)
}

func (r *fakeRepository) Ping(context.Context) error { return nil }
func (r *fakeRepository) Close() error               { return nil }

// ===== USERS =====

type fakeUserRepo struct {
	byID   map[uint]*models.User
	nextID uint
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	f.nextID++
	user.ID = f.nextID
	clone := *user
	f.byID[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.byID {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range f.byID {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := f.byID[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *user
	f.byID[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.byID[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (f *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := f.GetByUsername(ctx, username)
	if err != nil {
		return false, nil
	}
	return true, nil
}

// ===== PROMPTS =====

type fakePromptRepo struct {
	byID   map[uint]*models.Prompt
	nextID uint
}

func (f *fakePromptRepo) Create(_ context.Context, prompt *models.Prompt) error {
	f.nextID++
	prompt.ID = f.nextID
	clone := *prompt
	f.byID[prompt.ID] = &clone
	return nil
}

func (f *fakePromptRepo) GetOwnedByID(_ context.Context, id, userID uint) (*models.Prompt, error) {
	prompt, ok := f.byID[id]
	if !ok || prompt.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *prompt
	return &clone, nil
}

func (f *fakePromptRepo) ListByUser(_ context.Context, userID uint, filters repositories.PromptFilters) ([]*models.Prompt, int64, error) {
	var matched []*models.Prompt
	for _, prompt := range f.byID {
		if prompt.UserID != userID {
			continue
		}
		if filters.Category != nil && prompt.Category != *filters.Category {
			continue
		}
		clone := *prompt
		matched = append(matched, &clone)
	}

	// Newest first, with id as the tiebreaker since fakes share timestamps.
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))

	if filters.Offset > 0 {
		if filters.Offset >= len(matched) {
			return nil, total, nil
		}
		matched = matched[filters.Offset:]
	}
	if filters.Limit > 0 && filters.Limit < len(matched) {
		matched = matched[:filters.Limit]
	}

	return matched, total, nil
}

func (f *fakePromptRepo) Update(_ context.Context, prompt *models.Prompt) error {
	existing, ok := f.byID[prompt.ID]
	if !ok || existing.UserID != prompt.UserID {
		return gorm.ErrRecordNotFound
	}
	clone := *prompt
	f.byID[prompt.ID] = &clone
	return nil
}

func (f *fakePromptRepo) Delete(_ context.Context, id, userID uint) error {
	prompt, ok := f.byID[id]
	if !ok || prompt.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(f.byID, id)
	return nil
}

// ===== DASHBOARD =====

// fakeDashboardRepo derives stats from the prompt store so dashboard tests
// see the same data the prompt tests create.
type fakeDashboardRepo struct {
	prompts *fakePromptRepo
}

func (f *fakeDashboardRepo) CountPrompts(_ context.Context, userID uint) (int64, error) {
	var count int64
	for _, prompt := range f.prompts.byID {
		if prompt.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeDashboardRepo) CountExecutions(_ context.Context, userID uint) (int64, error) {
	var count int64
	for _, prompt := range f.prompts.byID {
		if prompt.UserID == userID && prompt.AIResponse != "" {
			count++
		}
	}
	return count, nil
}

func (f *fakeDashboardRepo) GetFavoriteCategory(_ context.Context, userID uint) (string, error) {
	counts := make(map[string]int64)
	for _, prompt := range f.prompts.byID {
		if prompt.UserID == userID {
			counts[string(prompt.Category)]++
		}
	}

	var favorite string
	var best int64
	for category, count := range counts {
		if count > best || (count == best && (favorite == "" || category < favorite)) {
			favorite = category
			best = count
		}
	}
	return favorite, nil
}

func (f *fakeDashboardRepo) GetRecentPrompts(ctx context.Context, userID uint, limit int) ([]*models.Prompt, error) {
	prompts, _, err := f.prompts.ListByUser(ctx, userID, repositories.PromptFilters{Limit: limit})
	return prompts, err
}

// ===== GENERATION =====

type fakeGenerator struct {
	response string
	err      error
	calls    int
}

func (f *fakeGenerator) Complete(_ context.Context, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}
