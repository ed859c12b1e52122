package appointments

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pawclinic/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/appointments", func(ar chi.Router) {
		ar.Get("/slots", slotsHandler(svc))
		ar.Post("/", createBookingHandler(svc))
		ar.Get("/", listMyBookingsHandler(svc))
	})

	// Vista de administración (solo owner)
	r.Get("/admin/appointments", listAllBookingsHandler(svc))
}

type ownerPayload struct {
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
	NIC    string `json:"nic"`
	Email  string `json:"email"`
}

type petPayload struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	AgeYears  int    `json:"age_years"`
	AgeMonths int    `json:"age_months"`
	Breed     string `json:"breed"`
	Notes     string `json:"notes"`
}

type createBookingRequest struct {
	Date  string       `json:"appointment_date"`
	Slot  string       `json:"appointment_slot"`
	Owner ownerPayload `json:"owner"`
	Pet   petPayload   `json:"pet"`
}

type bookingResponse struct {
	BookingID string       `json:"booking_id"`
	Username  string       `json:"username"`
	Date      string       `json:"appointment_date"`
	Slot      string       `json:"appointment_slot"`
	CreatedAt string       `json:"created_at"`
	Owner     ownerPayload `json:"owner"`
	Pet       petPayload   `json:"pet"`
}

type slotAvailability struct {
	Slot      string `json:"slot"`
	Booked    int    `json:"booked"`
	Remaining int    `json:"remaining"`
	MaxPer    int    `json:"max_per_slot"`
}

func slotsHandler(svc *Service) http.HandlerFunc {
	// Grilla fija con disponibilidad para una fecha (paso "Selecting").
	return func(w http.ResponseWriter, r *http.Request) {
		date := strings.TrimSpace(r.URL.Query().Get("date"))
		if date == "" {
			date = time.Now().Format(DateLayout)
		}
		if _, err := time.Parse(DateLayout, date); err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		out := make([]slotAvailability, 0, len(FixedSlots))
		for _, slot := range FixedSlots {
			current, remaining, err := svc.Availability(r.Context(), date, slot)
			if err != nil {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			// El valor persistido no se corrige; solo se clampa al mostrar.
			if remaining < 0 {
				remaining = 0
			}
			out = append(out, slotAvailability{
				Slot:      slot,
				Booked:    current,
				Remaining: remaining,
				MaxPer:    MaxPerSlot,
			})
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func createBookingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Username) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createBookingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		b, err := svc.Create(r.Context(), claims.Username, CreateInput{
			Date: req.Date,
			Slot: req.Slot,
			Owner: OwnerInfo{
				Name:   req.Owner.Name,
				Mobile: req.Owner.Mobile,
				NIC:    req.Owner.NIC,
				Email:  req.Owner.Email,
			},
			Pet: PetInfo{
				Name:      req.Pet.Name,
				Type:      req.Pet.Type,
				AgeYears:  req.Pet.AgeYears,
				AgeMonths: req.Pet.AgeMonths,
				Breed:     req.Pet.Breed,
				Notes:     req.Pet.Notes,
			},
		})
		if err != nil {
			var ve *ValidationError
			switch {
			case errors.As(err, &ve):
				http.Error(w, ve.Reason, http.StatusBadRequest)
			case errors.Is(err, ErrSlotFull):
				// Re-intentable: el cliente vuelve a la selección de horario.
				http.Error(w, err.Error(), http.StatusConflict)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toBookingResponse(b))
	}
}

func listMyBookingsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Username) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListMine(r.Context(), claims.Username)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]bookingResponse, 0, len(items))
		for _, b := range items {
			out = append(out, toBookingResponse(b))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func listAllBookingsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !claims.IsOwner() {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		filter := ParseFilter(r.URL.Query().Get("filter"))
		items, err := svc.ListAll(r.Context(), filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]bookingResponse, 0, len(items))
		for _, b := range items {
			out = append(out, toBookingResponse(b))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toBookingResponse(b Booking) bookingResponse {
	return bookingResponse{
		BookingID: b.BookingID,
		Username:  b.Username,
		Date:      b.Date,
		Slot:      b.Slot,
		CreatedAt: b.CreatedAt.Format("2006-01-02T15:04:05"),
		Owner: ownerPayload{
			Name:   b.Owner.Name,
			Mobile: b.Owner.Mobile,
			NIC:    b.Owner.NIC,
			Email:  b.Owner.Email,
		},
		Pet: petPayload{
			Name:      b.Pet.Name,
			Type:      b.Pet.Type,
			AgeYears:  b.Pet.AgeYears,
			AgeMonths: b.Pet.AgeMonths,
			Breed:     b.Pet.Breed,
			Notes:     b.Pet.Notes,
		},
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para no crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
