package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinic-dispense/internal/domain/dispenses"
)

func newDispense(id, patientID string, dispensedOn time.Time) dispenses.Dispense {
	return dispenses.Dispense{
		ID:           id,
		PatientID:    patientID,
		DispenseDate: dispensedOn,
		CreatedAt:    dispensedOn,
		UpdatedAt:    dispensedOn,
		Active:       true,
	}
}

func TestDispenseRepo_CreateAndGet(t *testing.T) {
	repo := NewDispenseRepo()
	ctx := context.Background()

	d := newDispense("d1", "p1", time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	if err := repo.Create(ctx, d); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := repo.Create(ctx, d); err == nil {
		t.Fatalf("expected duplicate create rejected")
	}
	if err := repo.Create(ctx, dispenses.Dispense{}); err == nil {
		t.Fatalf("expected empty id rejected")
	}

	got, err := repo.GetByID(ctx, "d1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.PatientID != "p1" {
		t.Fatalf("unexpected patient id %q", got.PatientID)
	}
	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, dispenses.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDispenseRepo_ListByPatient(t *testing.T) {
	repo := NewDispenseRepo()
	ctx := context.Background()

	older := newDispense("d1", "p1", time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	newer := newDispense("d2", "p1", time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC))
	inactive := newDispense("d3", "p1", time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC))
	inactive.Active = false
	other := newDispense("d4", "p2", time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))

	for _, d := range []dispenses.Dispense{older, newer, inactive, other} {
		if err := repo.Create(ctx, d); err != nil {
			t.Fatalf("Create %s error: %v", d.ID, err)
		}
	}

	out, err := repo.ListByPatient(ctx, "p1", dispenses.ListFilter{})
	if err != nil {
		t.Fatalf("ListByPatient error: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 dispenses, got %d", len(out))
	}
	if out[0].ID != "d2" || out[1].ID != "d3" || out[2].ID != "d1" {
		t.Fatalf("expected newest first, got %s %s %s", out[0].ID, out[1].ID, out[2].ID)
	}

	active := true
	out, err = repo.ListByPatient(ctx, "p1", dispenses.ListFilter{Active: &active})
	if err != nil {
		t.Fatalf("ListByPatient error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected active filter to drop 1, got %d", len(out))
	}
}

func TestDispenseRepo_SetNextDose(t *testing.T) {
	repo := NewDispenseRepo()
	ctx := context.Background()

	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	if err := repo.Create(ctx, newDispense("d1", "p1", created)); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	due := time.Date(2026, 3, 8, 10, 0, 0, 0, time.UTC)
	updated := time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)
	if err := repo.SetNextDose(ctx, "d1", due, updated); err != nil {
		t.Fatalf("SetNextDose error: %v", err)
	}

	got, err := repo.GetByID(ctx, "d1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.NextDoseDue == nil || !got.NextDoseDue.Equal(due) {
		t.Fatalf("expected next dose %v, got %v", due, got.NextDoseDue)
	}
	if !got.UpdatedAt.Equal(updated) {
		t.Fatalf("expected updated at %v, got %v", updated, got.UpdatedAt)
	}

	if err := repo.SetNextDose(ctx, "missing", due, updated); !errors.Is(err, dispenses.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDispenseRepo_DeleteByPatient(t *testing.T) {
	repo := NewDispenseRepo()
	ctx := context.Background()

	when := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for _, d := range []dispenses.Dispense{
		newDispense("d1", "p1", when),
		newDispense("d2", "p1", when.Add(time.Hour)),
		newDispense("d3", "p2", when),
	} {
		if err := repo.Create(ctx, d); err != nil {
			t.Fatalf("Create %s error: %v", d.ID, err)
		}
	}

	if err := repo.DeleteByPatient(ctx, "p1"); err != nil {
		t.Fatalf("DeleteByPatient error: %v", err)
	}
	if _, err := repo.GetByID(ctx, "d1"); !errors.Is(err, dispenses.ErrNotFound) {
		t.Fatalf("expected d1 gone, got %v", err)
	}
	if _, err := repo.GetByID(ctx, "d3"); err != nil {
		t.Fatalf("expected other patient's dispense kept, got %v", err)
	}

	// Purging a patient with no dispenses is not an error.
	if err := repo.DeleteByPatient(ctx, "p9"); err != nil {
		t.Fatalf("DeleteByPatient on empty set error: %v", err)
	}
}
