package medications

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type testRepo struct {
	byID map[string]Medication
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Medication{}}
}

func (r *testRepo) Create(ctx context.Context, m Medication) error {
	if _, ok := r.byID[m.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[m.ID] = m
	return nil
}

func (r *testRepo) Update(ctx context.Context, m Medication) error {
	if _, ok := r.byID[m.ID]; !ok {
		return ErrNotFound
	}
	r.byID[m.ID] = m
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Medication, error) {
	m, ok := r.byID[id]
	if !ok {
		return Medication{}, ErrNotFound
	}
	return m, nil
}

func (r *testRepo) GetByName(ctx context.Context, name string) (Medication, error) {
	for _, m := range r.byID {
		if strings.EqualFold(m.Name, strings.TrimSpace(name)) {
			return m, nil
		}
	}
	return Medication{}, ErrNotFound
}

func (r *testRepo) List(ctx context.Context) ([]Medication, error) {
	out := make([]Medication, 0, len(r.byID))
	for _, m := range r.byID {
		out = append(out, m)
	}
	return out, nil
}

// testQR records what it encoded and returns the URL bytes as the "image".
type testQR struct {
	encoded []string
	err     error
}

func (q *testQR) Encode(url string, size int) ([]byte, error) {
	if q.err != nil {
		return nil, q.err
	}
	q.encoded = append(q.encoded, url)
	return []byte("png:" + url), nil
}

func TestService_FindOrCreate_CreatesWithQR(t *testing.T) {
	repo := newTestRepo()
	gen := &testQR{}
	svc := NewService(repo, gen)

	m, err := svc.FindOrCreate(context.Background(), TemplateInput{
		Name:                     "Semaglutide",
		Ingredient1Name:          "semaglutide",
		Ingredient1Concentration: 2.5,
		Injectable:               true,
		InfoURL:                  "https://info.example/sema",
	})
	if err != nil {
		t.Fatalf("FindOrCreate error: %v", err)
	}
	if string(m.QRPNG) != "png:https://info.example/sema" {
		t.Fatalf("expected QR generated from info URL, got %q", m.QRPNG)
	}
	if len(gen.encoded) != 1 {
		t.Fatalf("expected one encode call, got %d", len(gen.encoded))
	}
}

func TestService_FindOrCreate_ReusesAndOverwritesNonEmpty(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, &testQR{})

	m1, err := svc.FindOrCreate(context.Background(), TemplateInput{
		Name:                     "Semaglutide",
		Ingredient1Concentration: 2.5,
		PharmacyName:             "Corner Pharmacy",
		Injectable:               true,
	})
	if err != nil {
		t.Fatalf("FindOrCreate #1 error: %v", err)
	}

	m2, err := svc.FindOrCreate(context.Background(), TemplateInput{
		Name:                     " semaglutide ",
		Ingredient1Concentration: 5,
	})
	if err != nil {
		t.Fatalf("FindOrCreate #2 error: %v", err)
	}
	if m2.ID != m1.ID {
		t.Fatalf("expected same medication reused")
	}
	if m2.Ingredient1Concentration != 5 {
		t.Fatalf("expected concentration overwritten, got %v", m2.Ingredient1Concentration)
	}
	if m2.PharmacyName != "Corner Pharmacy" {
		t.Fatalf("expected empty pharmacy to keep stored value, got %q", m2.PharmacyName)
	}
	if len(repo.byID) != 1 {
		t.Fatalf("expected 1 medication stored, got %d", len(repo.byID))
	}
}

func TestService_FindOrCreate_InfoURLChangeRegeneratesQR(t *testing.T) {
	repo := newTestRepo()
	gen := &testQR{}
	svc := NewService(repo, gen)

	if _, err := svc.FindOrCreate(context.Background(), TemplateInput{
		Name:    "Semaglutide",
		InfoURL: "https://info.example/v1",
	}); err != nil {
		t.Fatalf("FindOrCreate #1 error: %v", err)
	}

	m, err := svc.FindOrCreate(context.Background(), TemplateInput{
		Name:    "Semaglutide",
		InfoURL: "https://info.example/v2",
	})
	if err != nil {
		t.Fatalf("FindOrCreate #2 error: %v", err)
	}
	if string(m.QRPNG) != "png:https://info.example/v2" {
		t.Fatalf("expected QR regenerated for new URL, got %q", m.QRPNG)
	}
	if len(gen.encoded) != 2 {
		t.Fatalf("expected two encode calls, got %d", len(gen.encoded))
	}
}

func TestService_FindOrCreate_NoChangeSkipsUpdate(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, &testQR{})

	now := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	m1, err := svc.FindOrCreate(context.Background(), TemplateInput{
		Name:       "Semaglutide",
		Injectable: true,
	})
	if err != nil {
		t.Fatalf("FindOrCreate #1 error: %v", err)
	}

	svc.now = func() time.Time { return now.Add(time.Hour) }
	m2, err := svc.FindOrCreate(context.Background(), TemplateInput{
		Name:       "Semaglutide",
		Injectable: true,
	})
	if err != nil {
		t.Fatalf("FindOrCreate #2 error: %v", err)
	}
	if !m2.UpdatedAt.Equal(m1.UpdatedAt) {
		t.Fatalf("expected identical input to leave UpdatedAt alone")
	}
}

func TestService_FindOrCreate_QRFailureIsNotFatal(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, &testQR{err: errors.New("encoder down")})

	m, err := svc.FindOrCreate(context.Background(), TemplateInput{
		Name:    "Semaglutide",
		InfoURL: "https://info.example/sema",
	})
	if err != nil {
		t.Fatalf("FindOrCreate error: %v", err)
	}
	if m.QRPNG != nil {
		t.Fatalf("expected empty QR on encoder failure")
	}
}

func TestService_FindOrCreate_RequiresName(t *testing.T) {
	svc := NewService(newTestRepo(), nil)
	if _, err := svc.FindOrCreate(context.Background(), TemplateInput{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestMedication_PrimaryConcentration(t *testing.T) {
	m := Medication{Ingredient1Concentration: 2.5, Ingredient2Concentration: 10}
	if got := m.PrimaryConcentration(); got != 2.5 {
		t.Fatalf("expected first ingredient to win, got %v", got)
	}
	m.Ingredient1Concentration = 0
	if got := m.PrimaryConcentration(); got != 10 {
		t.Fatalf("expected fallback to second ingredient, got %v", got)
	}
	m.Ingredient2Concentration = 0
	if got := m.PrimaryConcentration(); got != 0 {
		t.Fatalf("expected zero when no concentrations, got %v", got)
	}
}
