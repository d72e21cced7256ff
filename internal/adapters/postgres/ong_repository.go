package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adotaqui/platform-service/internal/domain"
	"github.com/adotaqui/platform-service/internal/ports"
)

type ongRepository struct {
	db *gorm.DB
}

func (r *ongRepository) Create(ctx context.Context, params ports.CreateOngParams) (domain.Ong, error) {
	rec := ongModel{
		Name:      params.Name,
		Country:   params.Country,
		City:      params.City,
		Email:     params.Email,
		Phone:     params.Phone,
		About:     params.About,
		Active:    true,
		CreatedAt: params.CreatedAt,
		UpdatedAt: params.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.Ong{}, domain.ErrConflict
		}
		return domain.Ong{}, err
	}
	return toDomainOng(rec), nil
}

func (r *ongRepository) GetByID(ctx context.Context, ongID uuid.UUID) (domain.Ong, error) {
	var rec ongModel
	if err := r.db.WithContext(ctx).Where("ong_id = ?", ongID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Ong{}, domain.ErrNotFound
		}
		return domain.Ong{}, err
	}
	return toDomainOng(rec), nil
}

func (r *ongRepository) List(ctx context.Context, limit, offset int) ([]domain.Ong, error) {
	var rows []ongModel
	if err := r.db.WithContext(ctx).Where("active = TRUE").Order("created_at desc").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Ong, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainOng(row))
	}
	return out, nil
}
