package file

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"pawclinic/internal/domain/pets"
)

const petsFile = "pets.json"

type petDTO struct {
	PetID         int    `json:"pet_id"`
	PetName       string `json:"pet_name"`
	PetType       string `json:"pet_type"`
	PetBreed      string `json:"pet_breed"`
	OwnerUsername string `json:"owner_username"`
	Notes         string `json:"notes"`
	CreatedAt     string `json:"created_at"`
	LastUpdated   string `json:"last_updated"`
	VisitCount    int    `json:"visit_count"`
}

// PetsRepo persiste el registry deduplicado de mascotas como array JSON.
type PetsRepo struct {
	mu   sync.Mutex
	path string
}

func NewPetsRepo(dir string) *PetsRepo {
	return &PetsRepo{path: filepath.Join(dir, petsFile)}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Profile) (pets.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := []petDTO{}
	if err := loadJSON(r.path, &records); err != nil {
		return pets.Profile{}, err
	}

	nextID := 1
	for _, d := range records {
		if d.PetID >= nextID {
			nextID = d.PetID + 1
		}
	}
	p.PetID = nextID

	records = append(records, toPetDTO(p))
	if err := saveJSON(r.path, records); err != nil {
		return pets.Profile{}, err
	}
	return p, nil
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := []petDTO{}
	if err := loadJSON(r.path, &records); err != nil {
		return err
	}

	for i, d := range records {
		if d.PetID == p.PetID {
			records[i] = toPetDTO(p)
			return saveJSON(r.path, records)
		}
	}
	return pets.ErrNotFound
}

func (r *PetsRepo) GetByID(ctx context.Context, petID int) (pets.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := []petDTO{}
	if err := loadJSON(r.path, &records); err != nil {
		return pets.Profile{}, err
	}

	for _, d := range records {
		if d.PetID == petID {
			return fromPetDTO(d), nil
		}
	}
	return pets.Profile{}, pets.ErrNotFound
}

func (r *PetsRepo) FindByIdentity(ctx context.Context, ownerKey, petKey string) (pets.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := []petDTO{}
	if err := loadJSON(r.path, &records); err != nil {
		return pets.Profile{}, err
	}

	for _, d := range records {
		p := fromPetDTO(d)
		if p.SameIdentity(ownerKey, petKey) {
			return p, nil
		}
	}
	return pets.Profile{}, pets.ErrNotFound
}

func (r *PetsRepo) List(ctx context.Context) ([]pets.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := []petDTO{}
	if err := loadJSON(r.path, &records); err != nil {
		return nil, err
	}

	out := make([]pets.Profile, 0, len(records))
	for _, d := range records {
		out = append(out, fromPetDTO(d))
	}
	return out, nil
}

func toPetDTO(p pets.Profile) petDTO {
	return petDTO{
		PetID:         p.PetID,
		PetName:       p.PetName,
		PetType:       p.PetType,
		PetBreed:      p.PetBreed,
		OwnerUsername: p.OwnerUsername,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
		LastUpdated:   p.LastUpdated.Format(time.RFC3339),
		VisitCount:    p.VisitCount,
	}
}

func fromPetDTO(d petDTO) pets.Profile {
	createdAt, _ := time.Parse(time.RFC3339, d.CreatedAt)
	lastUpdated, _ := time.Parse(time.RFC3339, d.LastUpdated)
	return pets.Profile{
		PetID:         d.PetID,
		PetName:       d.PetName,
		PetType:       d.PetType,
		PetBreed:      d.PetBreed,
		OwnerUsername: d.OwnerUsername,
		Notes:         d.Notes,
		CreatedAt:     createdAt,
		LastUpdated:   lastUpdated,
		VisitCount:    d.VisitCount,
	}
}
