package providers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("provider not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// FindOrCreate returns the provider matching first and last name, creating
// one when none exists. A non-empty degree that differs from the stored one
// updates the existing row, so the roster follows the latest prescription.
func (s *Service) FindOrCreate(ctx context.Context, firstName, lastName, degree string) (Provider, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	degree = strings.TrimSpace(degree)

	if firstName == "" && lastName == "" {
		return Provider{}, ErrInvalidInput
	}

	existing, err := s.repo.GetByName(ctx, firstName, lastName)
	switch {
	case err == nil:
		if degree != "" && degree != existing.Degree {
			existing.Degree = degree
			existing.UpdatedAt = s.now()
			if err := s.repo.Update(ctx, existing); err != nil {
				return Provider{}, err
			}
		}
		return existing, nil
	case errors.Is(err, ErrNotFound):
		// fall through to create
	default:
		return Provider{}, err
	}

	now := s.now()
	p := Provider{
		ID:        uuid.NewString(),
		FirstName: firstName,
		LastName:  lastName,
		Degree:    degree,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return Provider{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Provider, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Provider, error) {
	return s.repo.List(ctx)
}
