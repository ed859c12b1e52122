package file

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"pawclinic/internal/domain/appointments"
)

const bookingsFile = "booking_details.json"

// createdAtLayout: ISO-8601 con precisión de segundos, sin zona (como lo
// escribía la aplicación original).
const createdAtLayout = "2006-01-02T15:04:05"

type bookingOwnerDTO struct {
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
	NIC    string `json:"nic"`
	Email  string `json:"email"`
}

type bookingPetDTO struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	AgeYears  int    `json:"age_years"`
	AgeMonths int    `json:"age_months"`
	Breed     string `json:"breed"`
	Notes     string `json:"notes"`
}

type bookingDTO struct {
	BookingID string          `json:"booking_id"`
	Username  string          `json:"username"`
	Date      string          `json:"appointment_date"`
	Slot      string          `json:"appointment_slot"`
	CreatedAt string          `json:"created_at"`
	Owner     bookingOwnerDTO `json:"owner"`
	Pet       bookingPetDTO   `json:"pet"`
}

// BookingsRepo persiste los bookings confirmados como array JSON
// append-only (el archivo se reescribe entero, pero nunca se edita ni se
// borra una entrada histórica).
type BookingsRepo struct {
	mu   sync.Mutex
	path string
}

func NewBookingsRepo(dir string) *BookingsRepo {
	return &BookingsRepo{path: filepath.Join(dir, bookingsFile)}
}

func (r *BookingsRepo) Append(ctx context.Context, b appointments.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := []bookingDTO{}
	if err := loadJSON(r.path, &records); err != nil {
		return err
	}

	records = append(records, toBookingDTO(b))
	return saveJSON(r.path, records)
}

func (r *BookingsRepo) List(ctx context.Context) ([]appointments.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := []bookingDTO{}
	if err := loadJSON(r.path, &records); err != nil {
		return nil, err
	}

	out := make([]appointments.Booking, 0, len(records))
	for _, d := range records {
		out = append(out, fromBookingDTO(d))
	}
	return out, nil
}

func toBookingDTO(b appointments.Booking) bookingDTO {
	return bookingDTO{
		BookingID: b.BookingID,
		Username:  b.Username,
		Date:      b.Date,
		Slot:      b.Slot,
		CreatedAt: b.CreatedAt.Format(createdAtLayout),
		Owner: bookingOwnerDTO{
			Name:   b.Owner.Name,
			Mobile: b.Owner.Mobile,
			NIC:    b.Owner.NIC,
			Email:  b.Owner.Email,
		},
		Pet: bookingPetDTO{
			Name:      b.Pet.Name,
			Type:      b.Pet.Type,
			AgeYears:  b.Pet.AgeYears,
			AgeMonths: b.Pet.AgeMonths,
			Breed:     b.Pet.Breed,
			Notes:     b.Pet.Notes,
		},
	}
}

func fromBookingDTO(d bookingDTO) appointments.Booking {
	// created_at roto queda en zero time; los listados ordenan igual.
	createdAt, _ := time.Parse(createdAtLayout, d.CreatedAt)
	return appointments.Booking{
		BookingID: d.BookingID,
		Username:  d.Username,
		Date:      d.Date,
		Slot:      d.Slot,
		CreatedAt: createdAt,
		Owner: appointments.OwnerInfo{
			Name:   d.Owner.Name,
			Mobile: d.Owner.Mobile,
			NIC:    d.Owner.NIC,
			Email:  d.Owner.Email,
		},
		Pet: appointments.PetInfo{
			Name:      d.Pet.Name,
			Type:      d.Pet.Type,
			AgeYears:  d.Pet.AgeYears,
			AgeMonths: d.Pet.AgeMonths,
			Breed:     d.Pet.Breed,
			Notes:     d.Pet.Notes,
		},
	}
}
