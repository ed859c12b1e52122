package pets

import (
	"context"
	"errors"
	"strings"
	"time"
)

var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// RecordVisit es el upsert por identidad que invocan los flujos de reserva.
//
// Si ya existe un perfil para (owner, pet): visit_count +1, last_updated al
// momento actual, y type/breed se completan SOLO si estaban vacíos
// (first-write-wins; nunca se pisa un valor ya presente).
// Si no existe: perfil nuevo con visit_count = 1.
func (s *Service) RecordVisit(ctx context.Context, ownerUsername, petName, petType, petBreed string) (Profile, error) {
	ownerKey := NormalizeKey(ownerUsername)
	petKey := NormalizeKey(petName)
	if ownerKey == "" || petKey == "" {
		return Profile{}, ErrInvalidInput
	}

	now := s.now().UTC()

	existing, err := s.repo.FindByIdentity(ctx, ownerKey, petKey)
	if err == nil {
		existing.VisitCount++
		existing.LastUpdated = now
		if petType != "" && existing.PetType == "" {
			existing.PetType = petType
		}
		if strings.TrimSpace(petBreed) != "" && existing.PetBreed == "" {
			existing.PetBreed = strings.TrimSpace(petBreed)
		}
		if err := s.repo.Update(ctx, existing); err != nil {
			return Profile{}, err
		}
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Profile{}, err
	}

	p := Profile{
		PetName:       strings.TrimSpace(petName),
		PetType:       petType,
		PetBreed:      strings.TrimSpace(petBreed),
		OwnerUsername: strings.TrimSpace(ownerUsername),
		Notes:         "",
		CreatedAt:     now,
		LastUpdated:   now,
		VisitCount:    1,
	}
	return s.repo.Create(ctx, p)
}

type AddInput struct {
	PetName       string
	PetType       string
	PetBreed      string
	OwnerUsername string
	Notes         string
}

// Add es el alta manual del owner; no cuenta como visita.
func (s *Service) Add(ctx context.Context, in AddInput) (Profile, error) {
	if strings.TrimSpace(in.PetName) == "" || strings.TrimSpace(in.OwnerUsername) == "" {
		return Profile{}, ErrInvalidInput
	}

	now := s.now().UTC()
	p := Profile{
		PetName:       strings.TrimSpace(in.PetName),
		PetType:       strings.TrimSpace(in.PetType),
		PetBreed:      strings.TrimSpace(in.PetBreed),
		OwnerUsername: strings.TrimSpace(in.OwnerUsername),
		Notes:         strings.TrimSpace(in.Notes),
		CreatedAt:     now,
		LastUpdated:   now,
		VisitCount:    0,
	}
	return s.repo.Create(ctx, p)
}

type UpdateInfoInput struct {
	PetBreed string
	Notes    string
}

// UpdateInfo edita los campos que el owner puede tocar desde la vista de
// administración: breed y notes. Refresca last_updated.
func (s *Service) UpdateInfo(ctx context.Context, petID int, in UpdateInfoInput) (Profile, error) {
	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return Profile{}, err
	}

	p.PetBreed = strings.TrimSpace(in.PetBreed)
	p.Notes = strings.TrimSpace(in.Notes)
	p.LastUpdated = s.now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]Profile, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, petID int) (Profile, error) {
	return s.repo.GetByID(ctx, petID)
}
