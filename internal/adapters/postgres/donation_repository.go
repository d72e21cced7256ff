package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adotaqui/platform-service/internal/domain"
)

type donationRepository struct {
	db *gorm.DB
}

func (r *donationRepository) Create(ctx context.Context, donation domain.Donation) (domain.Donation, error) {
	rec := toDonationModel(donation)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.Donation{}, domain.ErrConflict
		}
		return domain.Donation{}, err
	}
	return toDomainDonation(rec), nil
}

func (r *donationRepository) GetByID(ctx context.Context, donationID uuid.UUID) (domain.Donation, error) {
	var rec donationModel
	if err := r.db.WithContext(ctx).Where("donation_id = ?", donationID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Donation{}, domain.ErrNotFound
		}
		return domain.Donation{}, err
	}
	return toDomainDonation(rec), nil
}

func (r *donationRepository) UpdateStatus(ctx context.Context, donationID uuid.UUID, status domain.DonationStatus, at time.Time) error {
	updates := map[string]any{
		"status":     string(status),
		"updated_at": at,
	}
	if status == domain.DonationConfirmed {
		updates["confirmed_at"] = at
	}
	res := r.db.WithContext(ctx).Model(&donationModel{}).Where("donation_id = ?", donationID).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *donationRepository) NextMultibancoReference(ctx context.Context) (uint64, error) {
	var seq uint64
	if err := r.db.WithContext(ctx).Raw("SELECT nextval('multibanco_reference_seq')").Scan(&seq).Error; err != nil {
		return 0, err
	}
	return seq, nil
}

func (r *donationRepository) ListByOng(ctx context.Context, ongID uuid.UUID, limit, offset int) ([]domain.Donation, error) {
	var rows []donationModel
	if err := r.db.WithContext(ctx).Where("ong_id = ?", ongID).Order("created_at desc").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Donation, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainDonation(row))
	}
	return out, nil
}
