package postgres

import (
	"context"
	"database/sql"

	"pawclinic/internal/domain/users"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Create(ctx context.Context, a users.Account) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (full_name, username, password, role)
		VALUES ($1, $2, $3, $4)
	`,
		a.FullName,
		a.Username,
		a.Password,
		a.Role,
	)
	return err
}

func (r *UsersRepo) FindByUsername(ctx context.Context, username string) (users.Account, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT full_name, username, password, role
		FROM accounts
		WHERE lower(username) = lower(btrim($1))
	`, username)

	var a users.Account
	if err := row.Scan(&a.FullName, &a.Username, &a.Password, &a.Role); err != nil {
		if err == sql.ErrNoRows {
			return users.Account{}, users.ErrNotFound
		}
		return users.Account{}, err
	}
	return a, nil
}

func (r *UsersRepo) List(ctx context.Context) ([]users.Account, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT full_name, username, password, role
		FROM accounts
		ORDER BY username ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]users.Account, 0)
	for rows.Next() {
		var a users.Account
		if err := rows.Scan(&a.FullName, &a.Username, &a.Password, &a.Role); err != nil {
			return nil, err
		}
		out = append(out, a)
	}

	return out, rows.Err()
}
