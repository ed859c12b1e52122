package pets

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("pet not found")

type Repository interface {
	// Create asigna el siguiente pet_id secuencial (max existente + 1, o 1).
	Create(ctx context.Context, p Profile) (Profile, error)
	Update(ctx context.Context, p Profile) error
	GetByID(ctx context.Context, petID int) (Profile, error)
	// FindByIdentity busca por (owner, pet) ya normalizados con NormalizeKey.
	FindByIdentity(ctx context.Context, ownerKey, petKey string) (Profile, error)
	List(ctx context.Context) ([]Profile, error)
}
