package appointments

import "time"

// MaxPerSlot es la capacidad fija por (fecha, horario).
const MaxPerSlot = 2

// DateLayout es el formato de fecha persistido ("YYYY-MM-DD").
const DateLayout = "2006-01-02"

// SlotLayout formatea los horarios fijos como etiquetas "09:00 AM".
const SlotLayout = "03:04 PM"

// FixedSlots son los horarios que ofrece la clínica.
var FixedSlots = []string{
	"09:00 AM",
	"10:00 AM",
	"11:00 AM",
	"02:00 PM",
	"03:00 PM",
	"04:00 PM",
}

// IsFixedSlot valida que la etiqueta pertenezca a la grilla ofrecida.
func IsFixedSlot(label string) bool {
	for _, s := range FixedSlots {
		if s == label {
			return true
		}
	}
	return false
}

type OwnerInfo struct {
	Name   string
	Mobile string
	NIC    string
	Email  string
}

type PetInfo struct {
	Name      string
	Type      string
	AgeYears  int
	AgeMonths int
	Breed     string
	Notes     string
}

// Booking es un registro inmutable: se crea solo al confirmar (después de
// pasar el chequeo de capacidad) y nunca se edita ni se borra.
type Booking struct {
	BookingID string
	Username  string
	Date      string // YYYY-MM-DD
	Slot      string
	CreatedAt time.Time
	Owner     OwnerInfo
	Pet       PetInfo
}

// RecordDate parsea la fecha del registro; una fecha rota cuenta como hoy
// para que el registro igual aparezca en los listados en vez de romperlos.
func (b Booking) RecordDate(today time.Time) time.Time {
	d, err := time.Parse(DateLayout, b.Date)
	if err != nil {
		return today
	}
	return d
}
