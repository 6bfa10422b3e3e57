package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"clinic-dispense/internal/domain/dispenses"
)

type DispensesRepo struct {
	db *sql.DB
}

func NewDispensesRepo(db *sql.DB) *DispensesRepo {
	return &DispensesRepo{db: db}
}

const dispenseColumns = `
	id, patient_id, medication_id, provider_id,
	dose_text, dose_value, dose_unit,
	quantity, quantity_unit,
	frequency, amount_per_dose, instructions,
	dispense_date, expiration_date, lot_number,
	active, next_dose_due, sig,
	created_at, updated_at`

func (r *DispensesRepo) Create(ctx context.Context, d dispenses.Dispense) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO dispenses (`+dispenseColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
	`,
		d.ID,
		d.PatientID,
		d.MedicationID,
		d.ProviderID,
		d.DoseText,
		d.DoseValue,
		string(d.DoseUnit),
		d.Quantity,
		string(d.QuantityUnit),
		string(d.Frequency),
		d.AmountPerDose,
		d.Instructions,
		d.DispenseDate,
		toNullTime(d.ExpirationDate),
		d.LotNumber,
		d.Active,
		toNullTime(d.NextDoseDue),
		d.Sig,
		d.CreatedAt,
		d.UpdatedAt,
	)
	return err
}

func (r *DispensesRepo) Update(ctx context.Context, d dispenses.Dispense) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE dispenses
		SET
			dose_text = $2,
			dose_value = $3,
			dose_unit = $4,
			quantity = $5,
			quantity_unit = $6,
			frequency = $7,
			amount_per_dose = $8,
			instructions = $9,
			dispense_date = $10,
			expiration_date = $11,
			lot_number = $12,
			sig = $13,
			updated_at = $14
		WHERE id = $1
	`,
		d.ID,
		d.DoseText,
		d.DoseValue,
		string(d.DoseUnit),
		d.Quantity,
		string(d.QuantityUnit),
		string(d.Frequency),
		d.AmountPerDose,
		d.Instructions,
		d.DispenseDate,
		toNullTime(d.ExpirationDate),
		d.LotNumber,
		d.Sig,
		d.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return dispenses.ErrNotFound
	}
	return nil
}

func (r *DispensesRepo) GetByID(ctx context.Context, id string) (dispenses.Dispense, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+dispenseColumns+`
		FROM dispenses
		WHERE id = $1
	`, id)

	d, err := scanDispense(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dispenses.Dispense{}, dispenses.ErrNotFound
		}
		return dispenses.Dispense{}, err
	}
	return d, nil
}

func (r *DispensesRepo) ListByPatient(ctx context.Context, patientID string, f dispenses.ListFilter) ([]dispenses.Dispense, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+dispenseColumns+`
		FROM dispenses
		WHERE patient_id = $1
		  AND ($2::boolean IS NULL OR active = $2)
		ORDER BY dispense_date DESC, created_at DESC
	`, patientID, toNullBool(f.Active))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]dispenses.Dispense, 0)
	for rows.Next() {
		d, err := scanDispense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}

	return out, rows.Err()
}

func (r *DispensesRepo) ListAll(ctx context.Context) ([]dispenses.Dispense, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+dispenseColumns+`
		FROM dispenses
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]dispenses.Dispense, 0)
	for rows.Next() {
		d, err := scanDispense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}

	return out, rows.Err()
}

// SetNextDose is the scheduler's single-field write; one UPDATE keeps each
// advance atomic on the store side.
func (r *DispensesRepo) SetNextDose(ctx context.Context, id string, due time.Time, updatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE dispenses
		SET next_dose_due = $2, updated_at = $3
		WHERE id = $1
	`, id, due, updatedAt)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return dispenses.ErrNotFound
	}
	return nil
}

func (r *DispensesRepo) SetActive(ctx context.Context, id string, active bool, updatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE dispenses
		SET active = $2, updated_at = $3
		WHERE id = $1
	`, id, active, updatedAt)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return dispenses.ErrNotFound
	}
	return nil
}

func (r *DispensesRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dispenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return dispenses.ErrNotFound
	}
	return nil
}

func (r *DispensesRepo) DeleteByPatient(ctx context.Context, patientID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM dispenses WHERE patient_id = $1`, patientID)
	return err
}

func scanDispense(row rowScanner) (dispenses.Dispense, error) {
	var d dispenses.Dispense
	var exp, due sql.NullTime
	if err := row.Scan(
		&d.ID,
		&d.PatientID,
		&d.MedicationID,
		&d.ProviderID,
		&d.DoseText,
		&d.DoseValue,
		&d.DoseUnit,
		&d.Quantity,
		&d.QuantityUnit,
		&d.Frequency,
		&d.AmountPerDose,
		&d.Instructions,
		&d.DispenseDate,
		&exp,
		&d.LotNumber,
		&d.Active,
		&due,
		&d.Sig,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return dispenses.Dispense{}, err
	}
	if exp.Valid {
		t := exp.Time
		d.ExpirationDate = &t
	}
	if due.Valid {
		t := due.Time
		d.NextDoseDue = &t
	}
	return d, nil
}
