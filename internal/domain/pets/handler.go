package pets

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"pawclinic/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta la base de mascotas bajo /admin: solo la cuenta owner
// puede listar, cargar y editar perfiles.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/admin/pets", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(svc))
		pr.Post("/", addPetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))
	})
}

type addPetRequest struct {
	PetName       string `json:"pet_name"`
	PetType       string `json:"pet_type"`
	PetBreed      string `json:"pet_breed"`
	OwnerUsername string `json:"owner_username"`
	Notes         string `json:"notes"`
}

type updatePetRequest struct {
	PetBreed string `json:"pet_breed"`
	Notes    string `json:"notes"`
}

type petResponse struct {
	PetID         int       `json:"pet_id"`
	PetName       string    `json:"pet_name"`
	PetType       string    `json:"pet_type"`
	PetBreed      string    `json:"pet_breed"`
	OwnerUsername string    `json:"owner_username"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	LastUpdated   time.Time `json:"last_updated"`
	VisitCount    int       `json:"visit_count"`
}

func requireOwner(w http.ResponseWriter, r *http.Request) bool {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
	if !claims.IsOwner() {
		http.Error(w, "forbidden", http.StatusForbidden)
		return false
	}
	return true
}

func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireOwner(w, r) {
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func addPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireOwner(w, r) {
			return
		}

		var req addPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Add(r.Context(), AddInput{
			PetName:       req.PetName,
			PetType:       req.PetType,
			PetBreed:      req.PetBreed,
			OwnerUsername: req.OwnerUsername,
			Notes:         req.Notes,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "pet_name and owner_username are required", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireOwner(w, r) {
			return
		}

		petID, err := strconv.Atoi(chi.URLParam(r, "petID"))
		if err != nil {
			http.Error(w, "invalid pet id", http.StatusBadRequest)
			return
		}

		var req updatePetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.UpdateInfo(r.Context(), petID, UpdateInfoInput{
			PetBreed: req.PetBreed,
			Notes:    req.Notes,
		})
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "pet not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func toPetResponse(p Profile) petResponse {
	return petResponse{
		PetID:         p.PetID,
		PetName:       p.PetName,
		PetType:       p.PetType,
		PetBreed:      p.PetBreed,
		OwnerUsername: p.OwnerUsername,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt,
		LastUpdated:   p.LastUpdated,
		VisitCount:    p.VisitCount,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para no crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
