package dispenses

import (
	"context"
	"time"
)

// ListFilter narrows ListByPatient results. Nil fields mean "no filter".
type ListFilter struct {
	Active *bool
}

// Repository is the persistence contract for dispenses. SetNextDose and
// SetActive are separate single-field writes so the store can treat each
// schedule update as its own critical section.
type Repository interface {
	Create(ctx context.Context, d Dispense) error
	Update(ctx context.Context, d Dispense) error
	GetByID(ctx context.Context, id string) (Dispense, error)
	ListByPatient(ctx context.Context, patientID string, f ListFilter) ([]Dispense, error)
	// ListAll returns every dispense; the dashboard groups them in memory.
	ListAll(ctx context.Context) ([]Dispense, error)
	SetNextDose(ctx context.Context, id string, due time.Time, updatedAt time.Time) error
	SetActive(ctx context.Context, id string, active bool, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
	DeleteByPatient(ctx context.Context, patientID string) error
}
