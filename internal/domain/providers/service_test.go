package providers

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type testRepo struct {
	byID map[string]Provider
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Provider{}}
}

func (r *testRepo) Create(ctx context.Context, p Provider) error {
	if _, ok := r.byID[p.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(ctx context.Context, p Provider) error {
	if _, ok := r.byID[p.ID]; !ok {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Provider, error) {
	p, ok := r.byID[id]
	if !ok {
		return Provider{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) GetByName(ctx context.Context, firstName, lastName string) (Provider, error) {
	for _, p := range r.byID {
		if strings.EqualFold(p.FirstName, strings.TrimSpace(firstName)) &&
			strings.EqualFold(p.LastName, strings.TrimSpace(lastName)) {
			return p, nil
		}
	}
	return Provider{}, ErrNotFound
}

func (r *testRepo) List(ctx context.Context) ([]Provider, error) {
	out := make([]Provider, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	return out, nil
}

func TestService_FindOrCreate_ReusesByName(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	p1, err := svc.FindOrCreate(context.Background(), "Ana", "Reyes", "MD")
	if err != nil {
		t.Fatalf("FindOrCreate #1 error: %v", err)
	}
	p2, err := svc.FindOrCreate(context.Background(), " ana ", "REYES", "")
	if err != nil {
		t.Fatalf("FindOrCreate #2 error: %v", err)
	}
	if p2.ID != p1.ID {
		t.Fatalf("expected same provider reused, got %s vs %s", p1.ID, p2.ID)
	}
	if len(repo.byID) != 1 {
		t.Fatalf("expected 1 provider stored, got %d", len(repo.byID))
	}
	if p2.Degree != "MD" {
		t.Fatalf("expected empty degree to keep the stored one, got %q", p2.Degree)
	}
}

func TestService_FindOrCreate_UpdatesDegree(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	if _, err := svc.FindOrCreate(context.Background(), "Ana", "Reyes", "MD"); err != nil {
		t.Fatalf("FindOrCreate #1 error: %v", err)
	}

	later := now.Add(48 * time.Hour)
	svc.now = func() time.Time { return later }

	p, err := svc.FindOrCreate(context.Background(), "Ana", "Reyes", "DO")
	if err != nil {
		t.Fatalf("FindOrCreate #2 error: %v", err)
	}
	if p.Degree != "DO" {
		t.Fatalf("expected degree updated to DO, got %q", p.Degree)
	}
	if p.UpdatedAt != later {
		t.Fatalf("expected UpdatedAt bumped on degree change")
	}
}

func TestService_FindOrCreate_RejectsBothNamesEmpty(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.FindOrCreate(context.Background(), "  ", "", "MD"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestProvider_DisplayName(t *testing.T) {
	p := Provider{FirstName: "Ana", LastName: "Reyes", Degree: "MD"}
	if got := p.DisplayName(); got != "Ana Reyes, MD" {
		t.Fatalf("unexpected display name %q", got)
	}
	p.Degree = ""
	if got := p.DisplayName(); got != "Ana Reyes" {
		t.Fatalf("unexpected display name without degree %q", got)
	}
}
