package providers

import "context"

type Repository interface {
	Create(ctx context.Context, p Provider) error
	Update(ctx context.Context, p Provider) error
	GetByID(ctx context.Context, id string) (Provider, error)
	// GetByName matches on trimmed, case-insensitive first and last name.
	GetByName(ctx context.Context, firstName, lastName string) (Provider, error)
	List(ctx context.Context) ([]Provider, error)
}
