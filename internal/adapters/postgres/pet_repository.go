package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adotaqui/platform-service/internal/domain"
	"github.com/adotaqui/platform-service/internal/ports"
)

type petRepository struct {
	db *gorm.DB
}

func (r *petRepository) Create(ctx context.Context, params ports.CreatePetParams) (domain.Pet, error) {
	rec := petModel{
		OngID:       params.OngID,
		Name:        params.Name,
		Species:     params.Species,
		Breed:       params.Breed,
		AgeMonths:   params.AgeMonths,
		Size:        params.Size,
		Description: params.Description,
		CreatedAt:   params.CreatedAt,
		UpdatedAt:   params.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return domain.Pet{}, err
	}
	return toDomainPet(rec), nil
}

func (r *petRepository) GetByID(ctx context.Context, petID uuid.UUID) (domain.Pet, error) {
	var rec petModel
	if err := r.db.WithContext(ctx).Where("pet_id = ?", petID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Pet{}, domain.ErrNotFound
		}
		return domain.Pet{}, err
	}
	return toDomainPet(rec), nil
}

func (r *petRepository) ListByOng(ctx context.Context, ongID uuid.UUID, includeAdopted bool) ([]domain.Pet, error) {
	q := r.db.WithContext(ctx).Where("ong_id = ?", ongID)
	if !includeAdopted {
		q = q.Where("adopted = FALSE")
	}
	var rows []petModel
	if err := q.Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Pet, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainPet(row))
	}
	return out, nil
}

func (r *petRepository) MarkAdopted(ctx context.Context, petID uuid.UUID, adoptedAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&petModel{}).Where("pet_id = ? AND adopted = FALSE", petID).Updates(map[string]any{
		"adopted":    true,
		"adopted_at": adoptedAt,
		"updated_at": adoptedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
