package daycare

import "time"

// Paquetes ofrecidos. Half/Full Day son "windowed": mismo día, con tope de
// horas. Overnight es flexible y se cobra por día.
const (
	PackageHalfDay   = "Half Day"
	PackageFullDay   = "Full Day"
	PackageOvernight = "Overnight Stay"
)

// Precios en LKR.
const (
	PriceHalfDay   = 700
	PriceFullDay   = 1200
	PriceOvernight = 2200 // por cada 24h
)

// La guardería abre a las 08:00.
const OpeningTime = "08:00"

// TimeLayout es el formato HH:MM de drop-off/pick-up.
const TimeLayout = "15:04"

// DateLayout es el formato de fecha persistido ("YYYY-MM-DD").
const DateLayout = "2006-01-02"

// NoTime es el placeholder persistido cuando un horario no se indicó
// (solo posible en Overnight).
const NoTime = "--:--"

func IsKnownPackage(pkg string) bool {
	switch pkg {
	case PackageHalfDay, PackageFullDay, PackageOvernight:
		return true
	}
	return false
}

// MaxHours devuelve el tope de horas de un paquete windowed; 0 si no aplica.
func MaxHours(pkg string) int {
	switch pkg {
	case PackageHalfDay:
		return 4
	case PackageFullDay:
		return 8
	}
	return 0
}

// IsWindowed indica si el paquete exige ventana mismo-día.
func IsWindowed(pkg string) bool {
	return pkg == PackageHalfDay || pkg == PackageFullDay
}

// ComputePrice: los paquetes windowed tienen precio plano sin importar la
// duración dentro de la ventana; Overnight cobra por día, mínimo uno.
func ComputePrice(pkg string, days int) int {
	switch pkg {
	case PackageHalfDay:
		return PriceHalfDay
	case PackageFullDay:
		return PriceFullDay
	}
	if days < 1 {
		days = 1
	}
	return PriceOvernight * days
}

// Reservation es el registro confirmado de guardería.
type Reservation struct {
	ReservationID int
	Username      string
	FullName      string
	NIC           string
	Email         string
	Phone         string
	PetName       string
	PetType       string
	PetBreed      string
	Package       string
	Days          int
	Date          string // YYYY-MM-DD
	DropoffTime   string // HH:MM o "--:--"
	PickupTime    string // HH:MM o "--:--"
	Notes         string
	Price         int
	CreatedAt     time.Time
}

// RecordDate parsea la fecha de la reserva; una fecha rota cuenta como hoy
// para que el registro igual aparezca en los listados.
func (r Reservation) RecordDate(today time.Time) time.Time {
	d, err := time.Parse(DateLayout, r.Date)
	if err != nil {
		return today
	}
	return d
}
