package patients

import (
	"context"
	"time"
)

// ListFilter narrows List results. Nil fields mean "no filter".
type ListFilter struct {
	Active *bool
}

// Repository is the persistence contract for patients. Implementations
// live under internal/adapters/storage.
type Repository interface {
	Create(ctx context.Context, p Patient) error
	Update(ctx context.Context, p Patient) error
	GetByID(ctx context.Context, id string) (Patient, error)
	List(ctx context.Context, f ListFilter) ([]Patient, error)
	SetActive(ctx context.Context, id string, active bool, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}
