package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"clinic-dispense/internal/domain/patients"
)

type PatientsRepo struct {
	db *sql.DB
}

func NewPatientsRepo(db *sql.DB) *PatientsRepo {
	return &PatientsRepo{db: db}
}

func (r *PatientsRepo) Create(ctx context.Context, p patients.Patient) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO patients (
			id,
			first_name, middle_name, last_name,
			birth_date, active,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		p.ID,
		p.FirstName,
		p.MiddleName,
		p.LastName,
		toNullTime(p.BirthDate),
		p.Active,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PatientsRepo) Update(ctx context.Context, p patients.Patient) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE patients
		SET
			first_name = $2,
			middle_name = $3,
			last_name = $4,
			birth_date = $5,
			active = $6,
			updated_at = $7
		WHERE id = $1
	`,
		p.ID,
		p.FirstName,
		p.MiddleName,
		p.LastName,
		toNullTime(p.BirthDate),
		p.Active,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return patients.ErrNotFound
	}
	return nil
}

func (r *PatientsRepo) GetByID(ctx context.Context, id string) (patients.Patient, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return patients.Patient{}, patients.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id,
			first_name, middle_name, last_name,
			birth_date, active,
			created_at, updated_at
		FROM patients
		WHERE id = $1
	`, id)

	p, err := scanPatient(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return patients.Patient{}, patients.ErrNotFound
		}
		return patients.Patient{}, err
	}
	return p, nil
}

func (r *PatientsRepo) List(ctx context.Context, f patients.ListFilter) ([]patients.Patient, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id,
			first_name, middle_name, last_name,
			birth_date, active,
			created_at, updated_at
		FROM patients
		WHERE ($1::boolean IS NULL OR active = $1)
		ORDER BY last_name ASC, first_name ASC
	`, toNullBool(f.Active))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]patients.Patient, 0)
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

func (r *PatientsRepo) SetActive(ctx context.Context, id string, active bool, updatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE patients
		SET active = $2, updated_at = $3
		WHERE id = $1
	`, id, active, updatedAt)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return patients.ErrNotFound
	}
	return nil
}

// Delete relies on the dispenses FK's ON DELETE CASCADE for the children the
// service-level purge may have missed.
func (r *PatientsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return patients.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPatient(row rowScanner) (patients.Patient, error) {
	var p patients.Patient
	var bd sql.NullTime
	if err := row.Scan(
		&p.ID,
		&p.FirstName,
		&p.MiddleName,
		&p.LastName,
		&bd,
		&p.Active,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return patients.Patient{}, err
	}
	if bd.Valid {
		t := bd.Time
		p.BirthDate = &t
	}
	return p, nil
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func toNullBool(b *bool) sql.NullBool {
	if b == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *b, Valid: true}
}
