package daycare

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pawclinic/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/daycare", func(dr chi.Router) {
		dr.Get("/packages", packagesHandler())
		dr.Post("/reservations", createReservationHandler(svc))
		dr.Get("/reservations", listMyReservationsHandler(svc))
	})

	// Vista de administración (solo owner)
	r.Get("/admin/daycare", listAllReservationsHandler(svc))
}

type packageResponse struct {
	Name     string `json:"name"`
	MaxHours int    `json:"max_hours,omitempty"`
	Price    int    `json:"price"`
	PerDay   bool   `json:"per_day"`
	Quote    int    `json:"quote"`
}

type createReservationRequest struct {
	PetName     string `json:"pet_name"`
	Package     string `json:"package"`
	Days        int    `json:"days"`
	Date        string `json:"date"`
	DropoffTime string `json:"dropoff_time"`
	PickupTime  string `json:"pickup_time"`
	FullName    string `json:"full_name"`
	NIC         string `json:"nic"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	PetType     string `json:"pet_type"`
	PetBreed    string `json:"pet_breed"`
	Notes       string `json:"notes"`
}

type reservationResponse struct {
	ReservationID int    `json:"reservation_id"`
	Username      string `json:"username"`
	FullName      string `json:"full_name"`
	NIC           string `json:"nic"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	PetName       string `json:"pet_name"`
	PetType       string `json:"pet_type"`
	PetBreed      string `json:"pet_breed"`
	Package       string `json:"package"`
	Days          int    `json:"days"`
	Date          string `json:"date"`
	DropoffTime   string `json:"dropoff_time"`
	PickupTime    string `json:"pickup_time"`
	Notes         string `json:"notes"`
	Price         int    `json:"price"`
	CreatedAt     string `json:"created_at"`
}

func packagesHandler() http.HandlerFunc {
	// Catálogo + cotización en vivo: ?package=Overnight+Stay&days=3
	return func(w http.ResponseWriter, r *http.Request) {
		days := 1
		if v := strings.TrimSpace(r.URL.Query().Get("days")); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				http.Error(w, "days must be a positive integer", http.StatusBadRequest)
				return
			}
			days = n
		}

		selected := strings.TrimSpace(r.URL.Query().Get("package"))
		if selected != "" && !IsKnownPackage(selected) {
			http.Error(w, "unknown package", http.StatusBadRequest)
			return
		}

		out := []packageResponse{
			{Name: PackageHalfDay, MaxHours: 4, Price: PriceHalfDay, PerDay: false, Quote: PriceHalfDay},
			{Name: PackageFullDay, MaxHours: 8, Price: PriceFullDay, PerDay: false, Quote: PriceFullDay},
			{Name: PackageOvernight, Price: PriceOvernight, PerDay: true, Quote: ComputePrice(PackageOvernight, days)},
		}

		if selected != "" {
			for _, p := range out {
				if p.Name == selected {
					writeJSON(w, http.StatusOK, p)
					return
				}
			}
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func createReservationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Username) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createReservationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		res, err := svc.Create(r.Context(), claims.Username, CreateInput{
			PetName:     req.PetName,
			Package:     req.Package,
			Days:        req.Days,
			Date:        req.Date,
			DropoffTime: req.DropoffTime,
			PickupTime:  req.PickupTime,
			FullName:    req.FullName,
			NIC:         req.NIC,
			Email:       req.Email,
			Phone:       req.Phone,
			PetType:     req.PetType,
			PetBreed:    req.PetBreed,
			Notes:       req.Notes,
		})
		if err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				http.Error(w, ve.Reason, http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toReservationResponse(res))
	}
}

func listMyReservationsHandler(svc *Service) http.HandlerFunc {
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

		out := make([]reservationResponse, 0, len(items))
		for _, res := range items {
			out = append(out, toReservationResponse(res))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func listAllReservationsHandler(svc *Service) http.HandlerFunc {
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

		out := make([]reservationResponse, 0, len(items))
		for _, res := range items {
			out = append(out, toReservationResponse(res))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toReservationResponse(res Reservation) reservationResponse {
	return reservationResponse{
		ReservationID: res.ReservationID,
		Username:      res.Username,
		FullName:      res.FullName,
		NIC:           res.NIC,
		Email:         res.Email,
		Phone:         res.Phone,
		PetName:       res.PetName,
		PetType:       res.PetType,
		PetBreed:      res.PetBreed,
		Package:       res.Package,
		Days:          res.Days,
		Date:          res.Date,
		DropoffTime:   res.DropoffTime,
		PickupTime:    res.PickupTime,
		Notes:         res.Notes,
		Price:         res.Price,
		CreatedAt:     res.CreatedAt.Format(time.RFC3339),
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para no crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
