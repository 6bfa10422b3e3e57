package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"clinic-dispense/internal/domain/dispenses"
)

type dispenseRepo struct {
	mu   sync.RWMutex
	byID map[string]dispenses.Dispense
}

func NewDispenseRepo() dispenses.Repository {
	return &dispenseRepo{
		byID: make(map[string]dispenses.Dispense),
	}
}

func (r *dispenseRepo) Create(ctx context.Context, d dispenses.Dispense) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(d.ID) == "" {
		return errors.New("dispense id required")
	}
	if _, exists := r.byID[d.ID]; exists {
		return errors.New("dispense already exists")
	}
	r.byID[d.ID] = d
	return nil
}

func (r *dispenseRepo) Update(ctx context.Context, d dispenses.Dispense) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[d.ID]; !exists {
		return dispenses.ErrNotFound
	}
	r.byID[d.ID] = d
	return nil
}

func (r *dispenseRepo) GetByID(ctx context.Context, id string) (dispenses.Dispense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byID[id]
	if !ok {
		return dispenses.Dispense{}, dispenses.ErrNotFound
	}
	return d, nil
}

func (r *dispenseRepo) ListByPatient(ctx context.Context, patientID string, f dispenses.ListFilter) ([]dispenses.Dispense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]dispenses.Dispense, 0)
	for _, d := range r.byID {
		if d.PatientID != patientID {
			continue
		}
		if f.Active != nil && d.Active != *f.Active {
			continue
		}
		out = append(out, d)
	}

	// Newest dispense first
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DispenseDate.Equal(out[j].DispenseDate) {
			return out[j].DispenseDate.Before(out[i].DispenseDate)
		}
		return out[j].CreatedAt.Before(out[i].CreatedAt)
	})

	return out, nil
}

func (r *dispenseRepo) ListAll(ctx context.Context) ([]dispenses.Dispense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]dispenses.Dispense, 0, len(r.byID))
	for _, d := range r.byID {
		out = append(out, d)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

// SetNextDose is the scheduler's single-field write. Holding the lock for
// the whole read-modify-write keeps concurrent advances serialized.
func (r *dispenseRepo) SetNextDose(ctx context.Context, id string, due time.Time, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.byID[id]
	if !ok {
		return dispenses.ErrNotFound
	}
	d.NextDoseDue = &due
	d.UpdatedAt = updatedAt
	r.byID[id] = d
	return nil
}

func (r *dispenseRepo) SetActive(ctx context.Context, id string, active bool, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.byID[id]
	if !ok {
		return dispenses.ErrNotFound
	}
	d.Active = active
	d.UpdatedAt = updatedAt
	r.byID[id] = d
	return nil
}

func (r *dispenseRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return dispenses.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// DeleteByPatient backs the patient cascade. Removing nothing is fine; the
// patient may never have been dispensed to.
func (r *dispenseRepo) DeleteByPatient(ctx context.Context, patientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, d := range r.byID {
		if d.PatientID == patientID {
			delete(r.byID, id)
		}
	}
	return nil
}
