package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"clinic-dispense/internal/domain/providers"
)

type providerRepo struct {
	mu   sync.RWMutex
	byID map[string]providers.Provider
}

func NewProviderRepo() providers.Repository {
	return &providerRepo{
		byID: make(map[string]providers.Provider),
	}
}

func (r *providerRepo) Create(ctx context.Context, p providers.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("provider id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("provider already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *providerRepo) Update(ctx context.Context, p providers.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; !exists {
		return providers.ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *providerRepo) GetByID(ctx context.Context, id string) (providers.Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return providers.Provider{}, providers.ErrNotFound
	}
	return p, nil
}

func (r *providerRepo) GetByName(ctx context.Context, firstName, lastName string) (providers.Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	first := strings.ToLower(strings.TrimSpace(firstName))
	last := strings.ToLower(strings.TrimSpace(lastName))
	for _, p := range r.byID {
		if strings.ToLower(strings.TrimSpace(p.FirstName)) == first &&
			strings.ToLower(strings.TrimSpace(p.LastName)) == last {
			return p, nil
		}
	}
	return providers.Provider{}, providers.ErrNotFound
}

func (r *providerRepo) List(ctx context.Context) ([]providers.Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]providers.Provider, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})

	return out, nil
}
