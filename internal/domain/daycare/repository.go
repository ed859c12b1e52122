package daycare

import "context"

// Repository persiste las reservas de guardería como secuencia append-only.
type Repository interface {
	// Append asigna el siguiente reservation_id secuencial (max + 1, o 1)
	// y agrega la reserva al final.
	Append(ctx context.Context, r Reservation) (Reservation, error)
	List(ctx context.Context) ([]Reservation, error)
}
