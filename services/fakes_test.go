package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/akjilan/digital-ecommerce/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// --- Fake product repository ---

type fakeProductRepo struct {
	mu          sync.Mutex
	products    []models.Product // newest first
	err         error
	overReturn  bool
	recentCalls int
}

func (f *fakeProductRepo) active() []models.Product {
	var out []models.Product
	for _, p := range f.products {
		if p.Status == models.ProductStatusActive {
			out = append(out, p)
		}
	}
	return out
}

func (f *fakeProductRepo) FindPage(_ context.Context, spec models.ProductFilterSpec) ([]models.Product, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, 0, f.err
	}
	all := f.active()
	total := int64(len(all))
	if f.overReturn {
		return all, total, nil
	}
	offset := spec.Offset()
	if int64(offset) >= total {
		return []models.Product{}, total, nil
	}
	end := offset + spec.PageSize
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *fakeProductRepo) FindRecentActive(_ context.Context, limit int) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recentCalls++
	if f.err != nil {
		return nil, f.err
	}
	all := f.active()
	if !f.overReturn && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakeProductRepo) Upsert(_ context.Context, p *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products = append(f.products, *p)
	return nil
}

func seedProducts(n int) *fakeProductRepo {
	repo := &fakeProductRepo{}
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		repo.products = append(repo.products, models.Product{
			ID:        uuid.New(),
			Title:     "Product " + string(rune('A'+i%26)),
			Price:     float64(10 + i),
			Currency:  "USD",
			Stock:     i % 3,
			Status:    models.ProductStatusActive,
			CreatedAt: base.Add(-time.Duration(i) * time.Hour),
		})
	}
	return repo
}

// --- Fake chat repository ---

type fakeChatRepo struct {
	mu          sync.Mutex
	turns       map[string][]models.ConversationTurn // chronological
	appendCalls int
	readCalls   int
	appended    []models.ConversationTurn
	appendErr   error
	readErr     error
	overReturn  bool
	// appendDeadline records whether the last AppendTurns ctx had a deadline
	// and was still live.
	appendDeadline bool
	appendLive     bool
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{turns: make(map[string][]models.ConversationTurn)}
}

func (f *fakeChatRepo) AppendTurns(ctx context.Context, userID string, turns []models.ConversationTurn) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appendCalls++
	_, f.appendDeadline = ctx.Deadline()
	f.appendLive = ctx.Err() == nil
	if f.appendErr != nil {
		return f.appendErr
	}
	for _, t := range turns {
		t.ID = uuid.New()
		f.turns[userID] = append(f.turns[userID], t)
		f.appended = append(f.appended, t)
	}
	return nil
}

func (f *fakeChatRepo) RecentTurns(_ context.Context, userID string, limit int) ([]models.ConversationTurn, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.readCalls++
	if f.readErr != nil {
		return nil, f.readErr
	}
	all := f.turns[userID]
	out := make([]models.ConversationTurn, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		if !f.overReturn && len(out) == limit {
			break
		}
		out = append(out, all[i])
	}
	return out, nil
}

func (f *fakeChatRepo) seed(userID string, n int) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		role := models.ChatRoleUser
		if i%2 == 1 {
			role = models.ChatRoleAssistant
		}
		f.turns[userID] = append(f.turns[userID], models.ConversationTurn{
			ID:        uuid.New(),
			Role:      role,
			Content:   "turn " + string(rune('0'+i)),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
}

// --- Gateways ---

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) Complete(ctx context.Context, instructions string, turns []models.PromptMessage, userMessage string) (string, error) {
	args := m.Called(ctx, instructions, turns, userMessage)
	return args.String(0), args.Error(1)
}

func (m *mockGateway) Name() string { return "mock" }

type funcGateway func(ctx context.Context) (string, error)

func (f funcGateway) Complete(ctx context.Context, _ string, _ []models.PromptMessage, _ string) (string, error) {
	return f(ctx)
}

func (f funcGateway) Name() string { return "func" }

// --- Metrics ---

type fakeMetrics struct {
	mu     sync.Mutex
	counts map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{counts: make(map[string]int)}
}

func (m *fakeMetrics) RecordCount(_ context.Context, name string, _ map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[name]++
	return nil
}

func (m *fakeMetrics) RecordLatency(context.Context, string, time.Duration, map[string]string) error {
	return nil
}

func (m *fakeMetrics) IsEnabled() bool { return true }

func (m *fakeMetrics) count(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[name]
}
