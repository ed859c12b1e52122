package appointments

import "context"

// Ledger es el contador de ocupación por (fecha, horario).
// La ausencia de una clave significa cero reservas.
type Ledger interface {
	// Count devuelve la ocupación actual releyendo el estado persistido
	// (nunca un valor cacheado).
	Count(ctx context.Context, date, slot string) (int, error)

	// Reserve relee el estado e incrementa solo si count < max, como un único
	// paso lógico. Devuelve false si el horario ya estaba lleno.
	Reserve(ctx context.Context, date, slot string, max int) (bool, error)
}

// Repository persiste los bookings confirmados como secuencia append-only.
type Repository interface {
	Append(ctx context.Context, b Booking) error
	List(ctx context.Context) ([]Booking, error)
}
