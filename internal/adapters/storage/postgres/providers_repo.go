package postgres

import (
	"context"
	"database/sql"
	"errors"

	"clinic-dispense/internal/domain/providers"
)

type ProvidersRepo struct {
	db *sql.DB
}

func NewProvidersRepo(db *sql.DB) *ProvidersRepo {
	return &ProvidersRepo{db: db}
}

func (r *ProvidersRepo) Create(ctx context.Context, p providers.Provider) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO providers (
			id, first_name, last_name, degree,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		p.ID,
		p.FirstName,
		p.LastName,
		p.Degree,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *ProvidersRepo) Update(ctx context.Context, p providers.Provider) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE providers
		SET first_name = $2, last_name = $3, degree = $4, updated_at = $5
		WHERE id = $1
	`,
		p.ID,
		p.FirstName,
		p.LastName,
		p.Degree,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return providers.ErrNotFound
	}
	return nil
}

func (r *ProvidersRepo) GetByID(ctx context.Context, id string) (providers.Provider, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, degree, created_at, updated_at
		FROM providers
		WHERE id = $1
	`, id)

	var p providers.Provider
	if err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Degree, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return providers.Provider{}, providers.ErrNotFound
		}
		return providers.Provider{}, err
	}
	return p, nil
}

// GetByName matches the dedupe key: trimmed, case-insensitive first and
// last name, mirroring the unique index.
func (r *ProvidersRepo) GetByName(ctx context.Context, firstName, lastName string) (providers.Provider, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, degree, created_at, updated_at
		FROM providers
		WHERE LOWER(TRIM(first_name)) = LOWER(TRIM($1))
		  AND LOWER(TRIM(last_name)) = LOWER(TRIM($2))
	`, firstName, lastName)

	var p providers.Provider
	if err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Degree, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return providers.Provider{}, providers.ErrNotFound
		}
		return providers.Provider{}, err
	}
	return p, nil
}

func (r *ProvidersRepo) List(ctx context.Context) ([]providers.Provider, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, first_name, last_name, degree, created_at, updated_at
		FROM providers
		ORDER BY last_name ASC, first_name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]providers.Provider, 0)
	for rows.Next() {
		var p providers.Provider
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Degree, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}
