package postgres

import (
	"context"
	"database/sql"
)

// LedgerRepo guarda la ocupación por (fecha, horario) en la tabla
// slot_ledger. A diferencia del backend de archivos, acá el
// check-and-increment es un único UPDATE condicional: cierra la carrera de
// lost-update incluso entre procesos.
type LedgerRepo struct {
	db *sql.DB
}

func NewLedgerRepo(db *sql.DB) *LedgerRepo {
	return &LedgerRepo{db: db}
}

func (r *LedgerRepo) Count(ctx context.Context, date, slot string) (int, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT slot_count
		FROM slot_ledger
		WHERE appt_date = $1 AND slot_label = $2
	`, date, slot)

	var n int
	if err := row.Scan(&n); err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, err
	}
	return n, nil
}

func (r *LedgerRepo) Reserve(ctx context.Context, date, slot string, max int) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO slot_ledger (appt_date, slot_label, slot_count)
		VALUES ($1, $2, 1)
		ON CONFLICT (appt_date, slot_label)
		DO UPDATE SET slot_count = slot_ledger.slot_count + 1
		WHERE slot_ledger.slot_count < $3
	`, date, slot, max)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
