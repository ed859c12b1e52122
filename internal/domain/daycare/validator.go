package daycare

import "time"

// ValidationError es un rechazo de regla de negocio con motivo puntual;
// nunca es fatal.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Rechazos del validador de ventanas. Son valores fijos para poder
// compararlos con errors.Is desde handlers y tests.
var (
	ErrBothTimesRequired   = &ValidationError{"please choose both drop-off and pick-up times"}
	ErrInvalidTime         = &ValidationError{"times must be HH:MM"}
	ErrBeforeOpening       = &ValidationError{"daycare opens at 08:00, choose a drop-off time of 08:00 or later"}
	ErrPickupBeforeDropoff = &ValidationError{"pick-up time must be after the drop-off time"}
	ErrWindowExceeded      = &ValidationError{"pick-up exceeds the allowed hours for this package"}
	ErrNotSameDay          = &ValidationError{"pick-up must be on the same day for this package"}
	ErrInvalidDays         = &ValidationError{"number of days must be at least 1"}
	ErrUnknownPackage      = &ValidationError{"unknown package"}
)

// ValidateWindow aplica las reglas de los paquetes windowed, en orden:
// ambos horarios presentes, apertura 08:00, pick-up después de drop-off,
// duración dentro del tope del paquete, mismo día calendario.
//
// Los horarios se proyectan sobre un mismo día de referencia antes de
// comparar. Puro y determinista: no hace I/O ni mira el reloj.
//
// Overnight no pasa por acá: solo exige days >= 1 (ver ValidateDays).
func ValidateWindow(pkg, dropoff, pickup string) error {
	if !IsWindowed(pkg) {
		return nil
	}
	if dropoff == "" || pickup == "" {
		return ErrBothTimesRequired
	}

	d0, err := time.Parse(TimeLayout, dropoff)
	if err != nil {
		return ErrInvalidTime
	}
	d1, err := time.Parse(TimeLayout, pickup)
	if err != nil {
		return ErrInvalidTime
	}
	opening, _ := time.Parse(TimeLayout, OpeningTime)

	if d0.Before(opening) {
		return ErrBeforeOpening
	}
	if d1.Before(d0) {
		return ErrPickupBeforeDropoff
	}
	if d1.Sub(d0) > time.Duration(MaxHours(pkg))*time.Hour {
		return ErrWindowExceeded
	}
	// Con ambos horarios proyectados al día de referencia este chequeo no
	// puede fallar, pero la regla existe y se conserva explícita.
	if d1.YearDay() != d0.YearDay() || d1.Year() != d0.Year() {
		return ErrNotSameDay
	}
	return nil
}

// ValidateDays es la única regla de Overnight: cantidad de días positiva.
func ValidateDays(pkg string, days int) error {
	if pkg == PackageOvernight && days < 1 {
		return ErrInvalidDays
	}
	return nil
}
