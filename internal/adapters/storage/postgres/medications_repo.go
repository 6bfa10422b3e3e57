package postgres

import (
	"context"
	"database/sql"
	"errors"

	"clinic-dispense/internal/domain/medications"
)

type MedicationsRepo struct {
	db *sql.DB
}

func NewMedicationsRepo(db *sql.DB) *MedicationsRepo {
	return &MedicationsRepo{db: db}
}

func (r *MedicationsRepo) Create(ctx context.Context, m medications.Medication) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO medications (
			id, name,
			ingredient1_name, ingredient1_concentration,
			ingredient2_name, ingredient2_concentration,
			pharmacy_name, injectable,
			info_url, prescribing_url, qr_png,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		m.ID,
		m.Name,
		m.Ingredient1Name,
		m.Ingredient1Concentration,
		m.Ingredient2Name,
		m.Ingredient2Concentration,
		m.PharmacyName,
		m.Injectable,
		m.InfoURL,
		m.PrescribingURL,
		m.QRPNG,
		m.CreatedAt,
		m.UpdatedAt,
	)
	return err
}

func (r *MedicationsRepo) Update(ctx context.Context, m medications.Medication) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE medications
		SET
			name = $2,
			ingredient1_name = $3,
			ingredient1_concentration = $4,
			ingredient2_name = $5,
			ingredient2_concentration = $6,
			pharmacy_name = $7,
			injectable = $8,
			info_url = $9,
			prescribing_url = $10,
			qr_png = $11,
			updated_at = $12
		WHERE id = $1
	`,
		m.ID,
		m.Name,
		m.Ingredient1Name,
		m.Ingredient1Concentration,
		m.Ingredient2Name,
		m.Ingredient2Concentration,
		m.PharmacyName,
		m.Injectable,
		m.InfoURL,
		m.PrescribingURL,
		m.QRPNG,
		m.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return medications.ErrNotFound
	}
	return nil
}

func (r *MedicationsRepo) GetByID(ctx context.Context, id string) (medications.Medication, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, name,
			ingredient1_name, ingredient1_concentration,
			ingredient2_name, ingredient2_concentration,
			pharmacy_name, injectable,
			info_url, prescribing_url, qr_png,
			created_at, updated_at
		FROM medications
		WHERE id = $1
	`, id)

	m, err := scanMedication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return medications.Medication{}, medications.ErrNotFound
		}
		return medications.Medication{}, err
	}
	return m, nil
}

// GetByName matches the template's natural key: trimmed, case-insensitive
// name, mirroring the unique index.
func (r *MedicationsRepo) GetByName(ctx context.Context, name string) (medications.Medication, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, name,
			ingredient1_name, ingredient1_concentration,
			ingredient2_name, ingredient2_concentration,
			pharmacy_name, injectable,
			info_url, prescribing_url, qr_png,
			created_at, updated_at
		FROM medications
		WHERE LOWER(TRIM(name)) = LOWER(TRIM($1))
	`, name)

	m, err := scanMedication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return medications.Medication{}, medications.ErrNotFound
		}
		return medications.Medication{}, err
	}
	return m, nil
}

func (r *MedicationsRepo) List(ctx context.Context) ([]medications.Medication, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, name,
			ingredient1_name, ingredient1_concentration,
			ingredient2_name, ingredient2_concentration,
			pharmacy_name, injectable,
			info_url, prescribing_url, qr_png,
			created_at, updated_at
		FROM medications
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medications.Medication, 0)
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}

	return out, rows.Err()
}

func scanMedication(row rowScanner) (medications.Medication, error) {
	var m medications.Medication
	if err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Ingredient1Name,
		&m.Ingredient1Concentration,
		&m.Ingredient2Name,
		&m.Ingredient2Concentration,
		&m.PharmacyName,
		&m.Injectable,
		&m.InfoURL,
		&m.PrescribingURL,
		&m.QRPNG,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return medications.Medication{}, err
	}
	return m, nil
}
