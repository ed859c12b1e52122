package daycare

import (
	"context"
	"sort"
	"strings"
	"time"

	"pawclinic/internal/domain/pets"
)

// PetRegistry es el upsert por identidad del módulo pets; lo satisface
// *pets.Service.
type PetRegistry interface {
	RecordVisit(ctx context.Context, ownerUsername, petName, petType, petBreed string) (pets.Profile, error)
}

type Service struct {
	repo     Repository
	registry PetRegistry
	now      func() time.Time
}

func NewService(repo Repository, registry PetRegistry) *Service {
	return &Service{
		repo:     repo,
		registry: registry,
		now:      time.Now,
	}
}

type CreateInput struct {
	PetName     string
	Package     string
	Days        int
	Date        string
	DropoffTime string // HH:MM, opcional solo en Overnight
	PickupTime  string
	FullName    string
	NIC         string
	Email       string
	Phone       string
	PetType     string
	PetBreed    string
	Notes       string
}

// Create valida la reserva completa (ventana del paquete + datos de
// contacto), calcula el precio del lado del servidor y la persiste.
// La guardería no tiene ledger de cupos: solo reglas de ventana/días.
func (s *Service) Create(ctx context.Context, username string, in CreateInput) (Reservation, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return Reservation{}, &ValidationError{"username is required"}
	}
	if strings.TrimSpace(in.PetName) == "" {
		return Reservation{}, &ValidationError{"please enter the pet name"}
	}
	if strings.TrimSpace(in.Date) == "" {
		return Reservation{}, &ValidationError{"please select a date"}
	}
	if _, err := time.Parse(DateLayout, in.Date); err != nil {
		return Reservation{}, &ValidationError{"date must be YYYY-MM-DD"}
	}
	if !IsKnownPackage(in.Package) {
		return Reservation{}, ErrUnknownPackage
	}

	if err := ValidateWindow(in.Package, in.DropoffTime, in.PickupTime); err != nil {
		return Reservation{}, err
	}
	if err := ValidateDays(in.Package, in.Days); err != nil {
		return Reservation{}, err
	}

	// Overnight acepta horarios opcionales, pero si vienen deben ser HH:MM.
	if !IsWindowed(in.Package) {
		for _, ts := range []string{in.DropoffTime, in.PickupTime} {
			if strings.TrimSpace(ts) == "" {
				continue
			}
			if _, err := time.Parse(TimeLayout, strings.TrimSpace(ts)); err != nil {
				return Reservation{}, ErrInvalidTime
			}
		}
	}

	if err := validateContact(in); err != nil {
		return Reservation{}, err
	}

	days := in.Days
	if !IsWindowed(in.Package) && days < 1 {
		days = 1
	}
	if IsWindowed(in.Package) {
		days = 1
	}

	r := Reservation{
		Username:    username,
		FullName:    strings.TrimSpace(in.FullName),
		NIC:         strings.TrimSpace(in.NIC),
		Email:       strings.TrimSpace(in.Email),
		Phone:       cleanPhone(in.Phone),
		PetName:     strings.TrimSpace(in.PetName),
		PetType:     strings.TrimSpace(in.PetType),
		PetBreed:    strings.TrimSpace(in.PetBreed),
		Package:     in.Package,
		Days:        days,
		Date:        in.Date,
		DropoffTime: orNoTime(in.DropoffTime),
		PickupTime:  orNoTime(in.PickupTime),
		Notes:       strings.TrimSpace(in.Notes),
		Price:       ComputePrice(in.Package, days),
		CreatedAt:   s.now().UTC().Truncate(time.Second),
	}

	saved, err := s.repo.Append(ctx, r)
	if err != nil {
		return Reservation{}, err
	}

	if _, err := s.registry.RecordVisit(ctx, username, saved.PetName, saved.PetType, saved.PetBreed); err != nil {
		return Reservation{}, err
	}

	return saved, nil
}

// ListMine devuelve las reservas del usuario ordenadas por id ascendente
// (las más viejas primero, como la vista original).
func (s *Service) ListMine(ctx context.Context, username string) ([]Reservation, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	username = strings.ToLower(strings.TrimSpace(username))
	out := make([]Reservation, 0)
	for _, r := range all {
		if strings.ToLower(strings.TrimSpace(r.Username)) == username {
			out = append(out, r)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ReservationID < out[j].ReservationID
	})
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

// ListAll es la vista de administración: particiona upcoming/past contra la
// fecha de hoy; una fecha rota cuenta como hoy (upcoming) para no perder el
// registro.
func (s *Service) ListAll(ctx context.Context, f Filter) ([]Reservation, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	t := s.now()
	today := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)

	out := make([]Reservation, 0, len(all))
	for _, r := range all {
		d := r.RecordDate(today)
		switch f {
		case FilterUpcoming:
			if !d.Before(today) {
				out = append(out, r)
			}
		case FilterPast:
			if d.Before(today) {
				out = append(out, r)
			}
		default:
			out = append(out, r)
		}
	}
	return out, nil
}

func validateContact(in CreateInput) error {
	if strings.TrimSpace(in.FullName) == "" {
		return &ValidationError{"full name is required"}
	}
	if strings.TrimSpace(in.NIC) == "" {
		return &ValidationError{"NIC is required"}
	}
	if strings.TrimSpace(in.Phone) == "" {
		return &ValidationError{"phone is required"}
	}

	phone := cleanPhone(in.Phone)
	if !isDigits(phone) || len(phone) != 10 || !strings.HasPrefix(phone, "0") {
		return &ValidationError{"phone must start with 0 and be exactly 10 digits (e.g., 0712345678)"}
	}

	// Email es opcional acá, pero si viene tiene que tener '@'.
	if email := strings.TrimSpace(in.Email); email != "" && !strings.Contains(email, "@") {
		return &ValidationError{"please enter a valid email address that includes '@'"}
	}
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func cleanPhone(phone string) string {
	return strings.ReplaceAll(strings.TrimSpace(phone), " ", "")
}

func orNoTime(s string) string {
	if strings.TrimSpace(s) == "" {
		return NoTime
	}
	return strings.TrimSpace(s)
}
