package appointments

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"pawclinic/internal/domain/pets"

	"github.com/google/uuid"
)

var (
	// ErrSlotFull es la condición re-intentable: el horario se llenó entre
	// la selección y la confirmación. El cliente vuelve a elegir horario.
	ErrSlotFull = errors.New("this timeslot just became full, please choose another slot")
)

// ValidationError es un rechazo de regla de negocio sobre el input del
// usuario; siempre lleva un motivo puntual y nunca es fatal.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func validationError(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// PetRegistry es el upsert por identidad del módulo pets; lo satisface
// *pets.Service. Interface propia para no acoplar los tests al módulo entero.
type PetRegistry interface {
	RecordVisit(ctx context.Context, ownerUsername, petName, petType, petBreed string) (pets.Profile, error)
}

type Service struct {
	ledger   Ledger
	repo     Repository
	registry PetRegistry
	now      func() time.Time
}

func NewService(ledger Ledger, repo Repository, registry PetRegistry) *Service {
	return &Service{
		ledger:   ledger,
		repo:     repo,
		registry: registry,
		now:      time.Now,
	}
}

// Availability devuelve (ocupación actual, cupos restantes) para la clave.
// remaining puede ser negativo si el archivo del ledger fue inflado por
// fuera; el valor persistido no se auto-corrige, el clamp es cosa de la
// capa de presentación.
func (s *Service) Availability(ctx context.Context, date, slot string) (current, remaining int, err error) {
	current, err = s.ledger.Count(ctx, date, slot)
	if err != nil {
		return 0, 0, err
	}
	return current, MaxPerSlot - current, nil
}

type CreateInput struct {
	Date  string
	Slot  string
	Owner OwnerInfo
	Pet   PetInfo
}

// Create es la transición a Confirmed del flujo de reserva: valida los datos
// de contacto, RE-VERIFICA la capacidad del horario (no confía en lo que vio
// el cliente al seleccionar), y recién entonces persiste el registro y
// actualiza el registry de mascotas.
func (s *Service) Create(ctx context.Context, username string, in CreateInput) (Booking, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return Booking{}, validationError("username is required")
	}

	if err := validateSelection(in.Date, in.Slot); err != nil {
		return Booking{}, err
	}
	if err := validateContact(in.Owner, in.Pet); err != nil {
		return Booking{}, err
	}

	ok, err := s.ledger.Reserve(ctx, in.Date, in.Slot, MaxPerSlot)
	if err != nil {
		return Booking{}, err
	}
	if !ok {
		return Booking{}, ErrSlotFull
	}

	now := s.now()
	b := Booking{
		BookingID: newBookingID(now),
		Username:  username,
		Date:      in.Date,
		Slot:      in.Slot,
		CreatedAt: now.Truncate(time.Second),
		Owner: OwnerInfo{
			Name:   strings.TrimSpace(in.Owner.Name),
			Mobile: cleanPhone(in.Owner.Mobile),
			NIC:    strings.TrimSpace(in.Owner.NIC),
			Email:  strings.TrimSpace(in.Owner.Email),
		},
		Pet: PetInfo{
			Name:      strings.TrimSpace(in.Pet.Name),
			Type:      strings.TrimSpace(in.Pet.Type),
			AgeYears:  in.Pet.AgeYears,
			AgeMonths: in.Pet.AgeMonths,
			Breed:     strings.TrimSpace(in.Pet.Breed),
			Notes:     strings.TrimSpace(in.Pet.Notes),
		},
	}

	if err := s.repo.Append(ctx, b); err != nil {
		return Booking{}, err
	}

	if _, err := s.registry.RecordVisit(ctx, username, b.Pet.Name, b.Pet.Type, b.Pet.Breed); err != nil {
		return Booking{}, err
	}

	return b, nil
}

// ListMine devuelve los bookings del usuario, más recientes primero.
func (s *Service) ListMine(ctx context.Context, username string) ([]Booking, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	username = strings.ToLower(strings.TrimSpace(username))
	out := make([]Booking, 0)
	for i := len(all) - 1; i >= 0; i-- {
		if strings.ToLower(strings.TrimSpace(all[i].Username)) == username {
			out = append(out, all[i])
		}
	}
	return out, nil
}

type Filter string

const (
	FilterAll      Filter = "all"
	FilterUpcoming Filter = "upcoming"
	FilterPast     Filter = "past"
)

func ParseFilter(s string) Filter {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "upcoming":
		return FilterUpcoming
	case "past":
		return FilterPast
	default:
		return FilterAll
	}
}

// ListAll es la vista de administración del owner: particiona upcoming/past
// contra la fecha de hoy y ordena por (fecha, created_at) descendente.
func (s *Service) ListAll(ctx context.Context, f Filter) ([]Booking, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	today := truncateToDay(s.now())

	out := make([]Booking, 0, len(all))
	for _, b := range all {
		d := b.RecordDate(today)
		switch f {
		case FilterUpcoming:
			if !d.Before(today) {
				out = append(out, b)
			}
		case FilterPast:
			if d.Before(today) {
				out = append(out, b)
			}
		default:
			out = append(out, b)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		di, dj := out[i].RecordDate(today), out[j].RecordDate(today)
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

func validateSelection(date, slot string) error {
	if strings.TrimSpace(date) == "" {
		return validationError("appointment date is required")
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return validationError("appointment date must be YYYY-MM-DD")
	}
	if !IsFixedSlot(slot) {
		return validationError("unknown timeslot %q", slot)
	}
	return nil
}

func validateContact(owner OwnerInfo, pet PetInfo) error {
	if strings.TrimSpace(owner.Name) == "" {
		return validationError("owner name is required")
	}
	if strings.TrimSpace(owner.Mobile) == "" {
		return validationError("mobile number is required")
	}
	if strings.TrimSpace(owner.NIC) == "" {
		return validationError("NIC is required")
	}
	if strings.TrimSpace(owner.Email) == "" {
		return validationError("email is required")
	}
	if !strings.Contains(owner.Email, "@") {
		return validationError("email looks invalid")
	}
	if strings.TrimSpace(pet.Name) == "" {
		return validationError("pet name is required")
	}
	if err := validatePhone(owner.Mobile); err != nil {
		return err
	}
	return nil
}

// validatePhone: solo dígitos, exactamente 10, empezando en 0 (ej: 07XXXXXXXX).
func validatePhone(phone string) error {
	cleaned := cleanPhone(phone)
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return validationError("mobile number should contain only digits")
		}
	}
	if len(cleaned) != 10 || !strings.HasPrefix(cleaned, "0") {
		return validationError("mobile number must be 10 digits and start with 0 (e.g., 07XXXXXXXX)")
	}
	return nil
}

func cleanPhone(phone string) string {
	return strings.ReplaceAll(strings.TrimSpace(phone), " ", "")
}

// newBookingID genera ids tipo BK-20251016-8F3A2C1D.
func newBookingID(now time.Time) string {
	u := uuid.New()
	return fmt.Sprintf("BK-%s-%s", now.Format("20060102"), strings.ToUpper(hex.EncodeToString(u[:4])))
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
