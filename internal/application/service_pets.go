package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/adotaqui/platform-service/internal/domain"
	"github.com/adotaqui/platform-service/internal/ports"
)

var allowedSpecies = map[string]struct{}{
	"dog": {}, "cat": {}, "rabbit": {}, "bird": {}, "other": {},
}

func (s *Service) AddPet(ctx context.Context, ongID uuid.UUID, req AddPetRequest, idempotencyKey string) (PetResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > 60 {
		return PetResponse{}, fmt.Errorf("%w: pet name must be 1-60 chars", domain.ErrInvalidInput)
	}
	species := strings.ToLower(strings.TrimSpace(req.Species))
	if _, ok := allowedSpecies[species]; !ok {
		return PetResponse{}, fmt.Errorf("%w: unsupported species", domain.ErrInvalidInput)
	}
	if req.AgeMonths < 0 {
		return PetResponse{}, fmt.Errorf("%w: age_months cannot be negative", domain.ErrInvalidInput)
	}
	if _, err := s.ongs.GetByID(ctx, ongID); err != nil {
		return PetResponse{}, err
	}
	if err := s.reserveIdempotency(ctx, idempotencyKey, req); err != nil {
		return PetResponse{}, err
	}

	pet, err := s.pets.Create(ctx, ports.CreatePetParams{
		OngID:       ongID,
		Name:        name,
		Species:     species,
		Breed:       strings.TrimSpace(req.Breed),
		AgeMonths:   req.AgeMonths,
		Size:        strings.ToLower(strings.TrimSpace(req.Size)),
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   s.nowFn(),
	})
	if err != nil {
		return PetResponse{}, err
	}
	return toPetResponse(pet), nil
}

func (s *Service) ListPets(ctx context.Context, ongID uuid.UUID, includeAdopted bool) ([]PetResponse, error) {
	if _, err := s.ongs.GetByID(ctx, ongID); err != nil {
		return nil, err
	}
	pets, err := s.pets.ListByOng(ctx, ongID, includeAdopted)
	if err != nil {
		return nil, err
	}
	out := make([]PetResponse, 0, len(pets))
	for _, pet := range pets {
		out = append(out, toPetResponse(pet))
	}
	return out, nil
}

func (s *Service) MarkPetAdopted(ctx context.Context, ongID, petID uuid.UUID) (PetResponse, error) {
	pet, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return PetResponse{}, err
	}
	if pet.OngID != ongID {
		return PetResponse{}, fmt.Errorf("%w: pet belongs to another ong", domain.ErrForbidden)
	}
	if pet.Adopted {
		return PetResponse{}, fmt.Errorf("%w: pet already adopted", domain.ErrConflict)
	}
	if err := s.pets.MarkAdopted(ctx, petID, s.nowFn()); err != nil {
		return PetResponse{}, err
	}
	pet.Adopted = true
	return toPetResponse(pet), nil
}

func toPetResponse(pet domain.Pet) PetResponse {
	return PetResponse{
		PetID:       pet.PetID.String(),
		OngID:       pet.OngID.String(),
		Name:        pet.Name,
		Species:     pet.Species,
		Breed:       pet.Breed,
		AgeMonths:   pet.AgeMonths,
		Size:        pet.Size,
		Description: pet.Description,
		Adopted:     pet.Adopted,
		CreatedAt:   pet.CreatedAt,
	}
}
