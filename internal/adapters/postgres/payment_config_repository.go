package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adotaqui/platform-service/internal/domain"
	"github.com/adotaqui/platform-service/internal/ports"
)

type paymentConfigRepository struct {
	db *gorm.DB
}

func (r *paymentConfigRepository) GetByOngID(ctx context.Context, ongID uuid.UUID) (domain.PaymentConfig, error) {
	var rec paymentConfigModel
	if err := r.db.WithContext(ctx).Where("ong_id = ?", ongID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.PaymentConfig{}, domain.ErrNotFound
		}
		return domain.PaymentConfig{}, err
	}
	return toDomainPaymentConfig(rec), nil
}

// Upsert replaces the whole config row; the unset fields of a PUT clear
// whatever was stored before.
func (r *paymentConfigRepository) Upsert(ctx context.Context, params ports.UpsertPaymentConfigParams) (domain.PaymentConfig, error) {
	rec := paymentConfigModel{
		OngID:             params.OngID,
		Country:           params.Country,
		MBWayPhone:        params.MBWayPhone,
		IBAN:              params.IBAN,
		MultibancoEntity:  params.MultibancoEntity,
		PixKey:            params.PixKey,
		PixKeyType:        params.PixKeyType,
		BankName:          params.BankName,
		BankRoutingNumber: params.BankRoutingNumber,
		BankAccountNumber: params.BankAccountNumber,
		Configured:        params.Configured,
		CreatedAt:         params.Now,
		UpdatedAt:         params.Now,
	}
	err := r.db.WithContext(ctx).
		Where("ong_id = ?", params.OngID).
		Assign(map[string]any{
			"country":             params.Country,
			"mbway_phone":         params.MBWayPhone,
			"iban":                params.IBAN,
			"multibanco_entity":   params.MultibancoEntity,
			"pix_key":             params.PixKey,
			"pix_key_type":        params.PixKeyType,
			"bank_name":           params.BankName,
			"bank_routing_number": params.BankRoutingNumber,
			"bank_account_number": params.BankAccountNumber,
			"configured":          params.Configured,
			"updated_at":          params.Now,
		}).
		FirstOrCreate(&rec).Error
	if err != nil {
		return domain.PaymentConfig{}, err
	}
	var out paymentConfigModel
	if err := r.db.WithContext(ctx).Where("ong_id = ?", params.OngID).Take(&out).Error; err != nil {
		return domain.PaymentConfig{}, err
	}
	return toDomainPaymentConfig(out), nil
}
