package pets

import (
	"strings"
	"time"
)

// Profile es el registro deduplicado de mascotas que alimentan las reservas.
// Identidad: (owner_username, pet_name) normalizados (trim + case-fold).
type Profile struct {
	PetID         int
	PetName       string
	PetType       string
	PetBreed      string
	OwnerUsername string
	Notes         string

	CreatedAt   time.Time
	LastUpdated time.Time

	// VisitCount arranca en 1 cuando el perfil nace de una reserva
	// y en 0 cuando el owner lo carga a mano.
	VisitCount int
}

// NormalizeKey aplica la normalización de identidad: trim + lower.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SameIdentity compara el perfil contra una identidad ya normalizada.
func (p Profile) SameIdentity(ownerKey, petKey string) bool {
	return NormalizeKey(p.OwnerUsername) == ownerKey && NormalizeKey(p.PetName) == petKey
}
