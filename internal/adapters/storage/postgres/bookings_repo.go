package postgres

import (
	"context"
	"database/sql"

	"pawclinic/internal/domain/appointments"
)

type BookingsRepo struct {
	db *sql.DB
}

func NewBookingsRepo(db *sql.DB) *BookingsRepo {
	return &BookingsRepo{db: db}
}

func (r *BookingsRepo) Append(ctx context.Context, b appointments.Booking) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO appointment_bookings (
			booking_id, username,
			appointment_date, appointment_slot, created_at,
			owner_name, owner_mobile, owner_nic, owner_email,
			pet_name, pet_type, pet_age_years, pet_age_months, pet_breed, pet_notes
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`,
		b.BookingID,
		b.Username,
		b.Date,
		b.Slot,
		b.CreatedAt,
		b.Owner.Name,
		b.Owner.Mobile,
		b.Owner.NIC,
		b.Owner.Email,
		b.Pet.Name,
		b.Pet.Type,
		b.Pet.AgeYears,
		b.Pet.AgeMonths,
		b.Pet.Breed,
		b.Pet.Notes,
	)
	return err
}

func (r *BookingsRepo) List(ctx context.Context) ([]appointments.Booking, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			booking_id, username,
			appointment_date, appointment_slot, created_at,
			owner_name, owner_mobile, owner_nic, owner_email,
			pet_name, pet_type, pet_age_years, pet_age_months, pet_breed, pet_notes
		FROM appointment_bookings
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]appointments.Booking, 0)
	for rows.Next() {
		var b appointments.Booking
		if err := rows.Scan(
			&b.BookingID,
			&b.Username,
			&b.Date,
			&b.Slot,
			&b.CreatedAt,
			&b.Owner.Name,
			&b.Owner.Mobile,
			&b.Owner.NIC,
			&b.Owner.Email,
			&b.Pet.Name,
			&b.Pet.Type,
			&b.Pet.AgeYears,
			&b.Pet.AgeMonths,
			&b.Pet.Breed,
			&b.Pet.Notes,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}

	return out, rows.Err()
}
