package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type idempotencyRepository struct {
	db *gorm.DB
}

func (r *idempotencyRepository) Reserve(ctx context.Context, key, requestHash string, expiresAt time.Time) error {
	rec := platformIdempotencyModel{
		IdempotencyKey: key,
		RequestHash:    requestHash,
		ExpiresAt:      expiresAt,
		CreatedAt:      time.Now().UTC(),
	}
	err := r.db.WithContext(ctx).Create(&rec).Error
	if err != nil {
		if isUniqueViolation(err) {
			return errors.New("already reserved")
		}
		return err
	}
	return nil
}
