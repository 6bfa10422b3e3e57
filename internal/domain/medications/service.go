package medications

import (
	"context"
	"errors"
	"strings"
	"time"

	"clinic-dispense/internal/ports/qr"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("medication not found")
)

// qrSize is the pixel size of generated label codes.
const qrSize = 256

type Service struct {
	repo Repository
	qr   qr.Generator
	now  func() time.Time
}

func NewService(repo Repository, gen qr.Generator) *Service {
	return &Service{
		repo: repo,
		qr:   gen,
		now:  time.Now,
	}
}

// TemplateInput carries the medication fields captured on a dispense form.
type TemplateInput struct {
	Name                     string
	Ingredient1Name          string
	Ingredient1Concentration float64
	Ingredient2Name          string
	Ingredient2Concentration float64
	PharmacyName             string
	Injectable               bool
	InfoURL                  string
	PrescribingURL           string
}

// FindOrCreate returns the template whose name matches in.Name, creating it
// when absent. When it exists, non-empty incoming fields overwrite the stored
// ones, so the template tracks the latest prescription and every dispense
// pointing at it sees the update.
func (s *Service) FindOrCreate(ctx context.Context, in TemplateInput) (Medication, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Medication{}, ErrInvalidInput
	}

	existing, err := s.repo.GetByName(ctx, name)
	switch {
	case err == nil:
		return s.applyTemplate(ctx, existing, in)
	case errors.Is(err, ErrNotFound):
		// fall through to create
	default:
		return Medication{}, err
	}

	now := s.now()
	m := Medication{
		ID:                       uuid.NewString(),
		Name:                     name,
		Ingredient1Name:          strings.TrimSpace(in.Ingredient1Name),
		Ingredient1Concentration: in.Ingredient1Concentration,
		Ingredient2Name:          strings.TrimSpace(in.Ingredient2Name),
		Ingredient2Concentration: in.Ingredient2Concentration,
		PharmacyName:             strings.TrimSpace(in.PharmacyName),
		Injectable:               in.Injectable,
		InfoURL:                  strings.TrimSpace(in.InfoURL),
		PrescribingURL:           strings.TrimSpace(in.PrescribingURL),
		CreatedAt:                now,
		UpdatedAt:                now,
	}
	m.QRPNG = s.encodeQR(m.InfoURL)

	if err := s.repo.Create(ctx, m); err != nil {
		return Medication{}, err
	}
	return m, nil
}

func (s *Service) applyTemplate(ctx context.Context, m Medication, in TemplateInput) (Medication, error) {
	changed := false

	setStr := func(dst *string, v string) {
		v = strings.TrimSpace(v)
		if v != "" && v != *dst {
			*dst = v
			changed = true
		}
	}
	setStr(&m.Ingredient1Name, in.Ingredient1Name)
	setStr(&m.Ingredient2Name, in.Ingredient2Name)
	setStr(&m.PharmacyName, in.PharmacyName)
	setStr(&m.PrescribingURL, in.PrescribingURL)

	if in.Ingredient1Concentration > 0 && in.Ingredient1Concentration != m.Ingredient1Concentration {
		m.Ingredient1Concentration = in.Ingredient1Concentration
		changed = true
	}
	if in.Ingredient2Concentration > 0 && in.Ingredient2Concentration != m.Ingredient2Concentration {
		m.Ingredient2Concentration = in.Ingredient2Concentration
		changed = true
	}
	if in.Injectable != m.Injectable {
		m.Injectable = in.Injectable
		changed = true
	}

	if v := strings.TrimSpace(in.InfoURL); v != "" && v != m.InfoURL {
		m.InfoURL = v
		m.QRPNG = s.encodeQR(v)
		changed = true
	}

	if !changed {
		return m, nil
	}

	m.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, m); err != nil {
		return Medication{}, err
	}
	return m, nil
}

// encodeQR is best effort: a bad URL or missing generator leaves the code
// empty and the label renderer falls back to printing the URL as text.
func (s *Service) encodeQR(url string) []byte {
	if url == "" || s.qr == nil {
		return nil
	}
	png, err := s.qr.Encode(url, qrSize)
	if err != nil {
		return nil
	}
	return png
}

func (s *Service) GetByID(ctx context.Context, id string) (Medication, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Medication, error) {
	return s.repo.List(ctx)
}
