package users

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/register", registerHandler(svc))
		ar.Post("/login", loginHandler(svc))
	})
}

type registerRequest struct {
	FullName        string `json:"full_name"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type accountResponse struct {
	FullName string `json:"full_name"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if req.ConfirmPassword != "" && req.ConfirmPassword != req.Password {
			http.Error(w, "passwords do not match", http.StatusBadRequest)
			return
		}

		a, err := svc.Register(r.Context(), RegisterInput{
			FullName: req.FullName,
			Username: req.Username,
			Password: req.Password,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrUsernameTaken):
				http.Error(w, err.Error(), http.StatusConflict)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, "please fill all fields", http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toAccountResponse(a))
	}
}

func loginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			http.Error(w, "invalid username or password", http.StatusUnauthorized)
			return
		}

		writeJSON(w, http.StatusOK, toAccountResponse(a))
	}
}

func toAccountResponse(a Account) accountResponse {
	return accountResponse{
		FullName: a.FullName,
		Username: a.Username,
		Role:     a.Role,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para no crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
