package postgres

import (
	"context"
	"database/sql"

	"pawclinic/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Profile) (pets.Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO pets (
			pet_id, pet_name, pet_type, pet_breed,
			owner_username, notes,
			created_at, last_updated, visit_count
		) VALUES (
			(SELECT COALESCE(MAX(pet_id), 0) + 1 FROM pets),
			$1,$2,$3,$4,$5,$6,$7,$8
		)
		RETURNING pet_id
	`,
		p.PetName,
		p.PetType,
		p.PetBreed,
		p.OwnerUsername,
		p.Notes,
		p.CreatedAt,
		p.LastUpdated,
		p.VisitCount,
	)

	if err := row.Scan(&p.PetID); err != nil {
		return pets.Profile{}, err
	}
	return p, nil
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Profile) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			pet_name = $2,
			pet_type = $3,
			pet_breed = $4,
			owner_username = $5,
			notes = $6,
			last_updated = $7,
			visit_count = $8
		WHERE pet_id = $1
	`,
		p.PetID,
		p.PetName,
		p.PetType,
		p.PetBreed,
		p.OwnerUsername,
		p.Notes,
		p.LastUpdated,
		p.VisitCount,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, petID int) (pets.Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT
			pet_id, pet_name, pet_type, pet_breed,
			owner_username, notes,
			created_at, last_updated, visit_count
		FROM pets
		WHERE pet_id = $1
	`, petID)

	return scanPet(row)
}

// FindByIdentity busca por (owner, pet) con la misma normalización que el
// dominio: trim + lower.
func (r *PetsRepo) FindByIdentity(ctx context.Context, ownerKey, petKey string) (pets.Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT
			pet_id, pet_name, pet_type, pet_breed,
			owner_username, notes,
			created_at, last_updated, visit_count
		FROM pets
		WHERE lower(btrim(owner_username)) = $1
		  AND lower(btrim(pet_name)) = $2
	`, ownerKey, petKey)

	return scanPet(row)
}

func (r *PetsRepo) List(ctx context.Context) ([]pets.Profile, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			pet_id, pet_name, pet_type, pet_breed,
			owner_username, notes,
			created_at, last_updated, visit_count
		FROM pets
		ORDER BY pet_id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Profile, 0)
	for rows.Next() {
		var p pets.Profile
		if err := rows.Scan(
			&p.PetID,
			&p.PetName,
			&p.PetType,
			&p.PetBreed,
			&p.OwnerUsername,
			&p.Notes,
			&p.CreatedAt,
			&p.LastUpdated,
			&p.VisitCount,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

func scanPet(row *sql.Row) (pets.Profile, error) {
	var p pets.Profile
	if err := row.Scan(
		&p.PetID,
		&p.PetName,
		&p.PetType,
		&p.PetBreed,
		&p.OwnerUsername,
		&p.Notes,
		&p.CreatedAt,
		&p.LastUpdated,
		&p.VisitCount,
	); err != nil {
		if err == sql.ErrNoRows {
			return pets.Profile{}, pets.ErrNotFound
		}
		return pets.Profile{}, err
	}
	return p, nil
}
