package postgres

import (
	"context"
	"database/sql"

	"pawclinic/internal/domain/daycare"
)

type DaycareRepo struct {
	db *sql.DB
}

func NewDaycareRepo(db *sql.DB) *DaycareRepo {
	return &DaycareRepo{db: db}
}

// Append asigna reservation_id = max + 1 en el mismo INSERT, igual que el
// backend de archivos.
func (r *DaycareRepo) Append(ctx context.Context, res daycare.Reservation) (daycare.Reservation, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO daycare_reservations (
			reservation_id, username,
			full_name, nic, email, phone,
			pet_name, pet_type, pet_breed,
			package, days, reservation_date,
			dropoff_time, pickup_time,
			notes, price, created_at
		) VALUES (
			(SELECT COALESCE(MAX(reservation_id), 0) + 1 FROM daycare_reservations),
			$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16
		)
		RETURNING reservation_id
	`,
		res.Username,
		res.FullName,
		res.NIC,
		res.Email,
		res.Phone,
		res.PetName,
		res.PetType,
		res.PetBreed,
		res.Package,
		res.Days,
		res.Date,
		res.DropoffTime,
		res.PickupTime,
		res.Notes,
		res.Price,
		res.CreatedAt,
	)

	if err := row.Scan(&res.ReservationID); err != nil {
		return daycare.Reservation{}, err
	}
	return res, nil
}

func (r *DaycareRepo) List(ctx context.Context) ([]daycare.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			reservation_id, username,
			full_name, nic, email, phone,
			pet_name, pet_type, pet_breed,
			package, days, reservation_date,
			dropoff_time, pickup_time,
			notes, price, created_at
		FROM daycare_reservations
		ORDER BY reservation_id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]daycare.Reservation, 0)
	for rows.Next() {
		var res daycare.Reservation
		if err := rows.Scan(
			&res.ReservationID,
			&res.Username,
			&res.FullName,
			&res.NIC,
			&res.Email,
			&res.Phone,
			&res.PetName,
			&res.PetType,
			&res.PetBreed,
			&res.Package,
			&res.Days,
			&res.Date,
			&res.DropoffTime,
			&res.PickupTime,
			&res.Notes,
			&res.Price,
			&res.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, res)
	}

	return out, rows.Err()
}
