package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"career-compass/internal/domain"
)

type mockCareerRepo struct {
	careers   []domain.CareerProfile
	version   string
	listCalls int
	listErr   error
}

func (m *mockCareerRepo) List(_ context.Context) ([]domain.CareerProfile, error) {
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]domain.CareerProfile(nil), m.careers...), nil
}

func (m *mockCareerRepo) GetByID(_ context.Context, id string) (domain.CareerProfile, error) {
	for _, c := range m.careers {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.CareerProfile{}, pgx.ErrNoRows
}

func (m *mockCareerRepo) Upsert(_ context.Context, career domain.CareerProfile) error {
	for i, c := range m.careers {
		if c.ID == career.ID {
			m.careers[i] = career
			return nil
		}
	}
	m.careers = append(m.careers, career)
	return nil
}

func (m *mockCareerRepo) CatalogVersion(_ context.Context) (string, error) {
	return m.version, nil
}

func (m *mockCareerRepo) Similar(_ context.Context, id string, k int) ([]domain.CareerProfile, error) {
	out := make([]domain.CareerProfile, 0, k)
	for _, c := range m.careers {
		if c.ID != id && len(out) < k {
			out = append(out, c)
		}
	}
	return out, nil
}

// mockAssessmentRepo imita la transaccion: si falla la escritura de rasgos no queda nada guardado.
type mockAssessmentRepo struct {
	items  map[string]domain.Assessment
	traits *mockTraitRepo
	err    error
}

func (m *mockAssessmentRepo) Create(_ context.Context, a domain.Assessment, traits []domain.StudentTrait) error {
	if m.err != nil {
		return m.err
	}
	if m.traits != nil && m.traits.err != nil {
		return m.traits.err
	}
	if m.items == nil {
		m.items = make(map[string]domain.Assessment)
	}
	m.items[a.ID] = a
	if m.traits != nil {
		m.traits.rows = append(m.traits.rows, traits...)
	}
	return nil
}

func (m *mockAssessmentRepo) GetByID(_ context.Context, id string) (domain.Assessment, error) {
	a, ok := m.items[id]
	if !ok {
		return domain.Assessment{}, pgx.ErrNoRows
	}
	return a, nil
}

type mockTraitRepo struct {
	rows []domain.StudentTrait
	// err hace fallar la escritura de rasgos dentro de mockAssessmentRepo.Create.
	err error
}

func (m *mockTraitRepo) FindByAssessmentID(_ context.Context, assessmentID string) ([]domain.StudentTrait, error) {
	var out []domain.StudentTrait
	for _, r := range m.rows {
		if r.AssessmentID == assessmentID {
			out = append(out, r)
		}
	}
	return out, nil
}

type mockQuizResultRepo struct {
	mu       sync.Mutex
	attempts []domain.QuizAttempt
}

func (m *mockQuizResultRepo) Create(_ context.Context, a domain.QuizAttempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts = append(m.attempts, a)
	return nil
}

func (m *mockQuizResultRepo) ListByStudent(_ context.Context, studentID string) ([]domain.QuizAttempt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.QuizAttempt
	for _, a := range m.attempts {
		if a.StudentID == studentID {
			// Como en la base, no se guardan titulo ni mensaje de banda.
			a.Result.BandTitle = ""
			a.Result.BandMessage = ""
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type countingCache struct {
	inner MatchCache
	gets  int
	hits  int
	sets  int
}

func (c *countingCache) Get(ctx context.Context, key string) ([]domain.MatchResult, bool, error) {
	c.gets++
	m, ok, err := c.inner.Get(ctx, key)
	if ok {
		c.hits++
	}
	return m, ok, err
}

func (c *countingCache) Set(ctx context.Context, key string, matches []domain.MatchResult, ttl time.Duration) error {
	c.sets++
	return c.inner.Set(ctx, key, matches, ttl)
}
