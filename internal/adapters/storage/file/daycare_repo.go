package file

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"pawclinic/internal/domain/daycare"
)

const daycareFile = "daycare.json"

type reservationDTO struct {
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

// DaycareRepo persiste las reservas de guardería como array JSON.
type DaycareRepo struct {
	mu   sync.Mutex
	path string
}

func NewDaycareRepo(dir string) *DaycareRepo {
	return &DaycareRepo{path: filepath.Join(dir, daycareFile)}
}

// Append asigna reservation_id = max(existentes) + 1 (o 1) bajo el lock,
// para que la secuencia no salte ni repita dentro del proceso.
func (r *DaycareRepo) Append(ctx context.Context, res daycare.Reservation) (daycare.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := []reservationDTO{}
	if err := loadJSON(r.path, &records); err != nil {
		return daycare.Reservation{}, err
	}

	nextID := 1
	for _, d := range records {
		if d.ReservationID >= nextID {
			nextID = d.ReservationID + 1
		}
	}
	res.ReservationID = nextID

	records = append(records, toReservationDTO(res))
	if err := saveJSON(r.path, records); err != nil {
		return daycare.Reservation{}, err
	}
	return res, nil
}

func (r *DaycareRepo) List(ctx context.Context) ([]daycare.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := []reservationDTO{}
	if err := loadJSON(r.path, &records); err != nil {
		return nil, err
	}

	out := make([]daycare.Reservation, 0, len(records))
	for _, d := range records {
		out = append(out, fromReservationDTO(d))
	}
	return out, nil
}

func toReservationDTO(res daycare.Reservation) reservationDTO {
	return reservationDTO{
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

func fromReservationDTO(d reservationDTO) daycare.Reservation {
	createdAt, _ := time.Parse(time.RFC3339, d.CreatedAt)
	return daycare.Reservation{
		ReservationID: d.ReservationID,
		Username:      d.Username,
		FullName:      d.FullName,
		NIC:           d.NIC,
		Email:         d.Email,
		Phone:         d.Phone,
		PetName:       d.PetName,
		PetType:       d.PetType,
		PetBreed:      d.PetBreed,
		Package:       d.Package,
		Days:          d.Days,
		Date:          d.Date,
		DropoffTime:   d.DropoffTime,
		PickupTime:    d.PickupTime,
		Notes:         d.Notes,
		Price:         d.Price,
		CreatedAt:     createdAt,
	}
}
