package patients

import (
	"context"
	"errors"
	"strings"
	"time"

	"clinic-dispense/internal/platform/changefeed"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("patient not found")
)

// DispensePurger removes every dispense owned by a patient. The dispenses
// service implements it; the indirection keeps this package from importing
// the one that imports it back.
type DispensePurger interface {
	PurgePatient(ctx context.Context, patientID string) error
}

type Service struct {
	repo   Repository
	feed   *changefeed.Feed
	purger DispensePurger
	now    func() time.Time
}

func NewService(repo Repository, feed *changefeed.Feed) *Service {
	return &Service{
		repo: repo,
		feed: feed,
		now:  time.Now,
	}
}

// AttachPurger wires the dispense cascade after both services exist.
// Wiring happens once at startup, before the router serves traffic.
func (s *Service) AttachPurger(p DispensePurger) {
	s.purger = p
}

type CreateInput struct {
	FirstName  string
	MiddleName string
	LastName   string
	BirthDate  *time.Time
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Patient, error) {
	if strings.TrimSpace(in.FirstName) == "" {
		return Patient{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.LastName) == "" {
		return Patient{}, ErrInvalidInput
	}

	now := s.now()
	p := Patient{
		ID:         uuid.NewString(),
		FirstName:  strings.TrimSpace(in.FirstName),
		MiddleName: strings.TrimSpace(in.MiddleName),
		LastName:   strings.TrimSpace(in.LastName),
		BirthDate:  in.BirthDate,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Patient{}, err
	}
	s.feed.Publish(changefeed.Change{Entity: "patient", ID: p.ID, Op: changefeed.OpCreate, At: now})
	return p, nil
}

// DatePatch distinguishes "field absent" from "field present but null".
// Set=false leaves the stored value alone; Set=true with a nil Value clears it.
type DatePatch struct {
	Set   bool
	Value *time.Time
}

type UpdateInput struct {
	FirstName  *string
	MiddleName *string
	LastName   *string
	BirthDate  DatePatch
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Patient{}, err
	}

	if in.FirstName != nil {
		v := strings.TrimSpace(*in.FirstName)
		if v == "" {
			return Patient{}, ErrInvalidInput
		}
		p.FirstName = v
	}
	if in.MiddleName != nil {
		p.MiddleName = strings.TrimSpace(*in.MiddleName)
	}
	if in.LastName != nil {
		v := strings.TrimSpace(*in.LastName)
		if v == "" {
			return Patient{}, ErrInvalidInput
		}
		p.LastName = v
	}
	if in.BirthDate.Set {
		p.BirthDate = in.BirthDate.Value
	}

	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Patient{}, err
	}
	s.feed.Publish(changefeed.Change{Entity: "patient", ID: p.ID, Op: changefeed.OpUpdate, At: p.UpdatedAt})
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Patient, error) {
	return s.repo.List(ctx, f)
}

// SetActive flips dashboard visibility without touching history.
func (s *Service) SetActive(ctx context.Context, id string, active bool) (Patient, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return Patient{}, err
	}
	now := s.now()
	if err := s.repo.SetActive(ctx, id, active, now); err != nil {
		return Patient{}, err
	}
	s.feed.Publish(changefeed.Change{Entity: "patient", ID: id, Op: changefeed.OpUpdate, At: now})
	return s.repo.GetByID(ctx, id)
}

// Delete removes the patient and, through the purger, every dispense they
// own. Dispenses go first so a failure leaves the patient intact.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if s.purger != nil {
		if err := s.purger.PurgePatient(ctx, id); err != nil {
			return err
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.feed.Publish(changefeed.Change{Entity: "patient", ID: id, Op: changefeed.OpDelete, At: s.now()})
	return nil
}
