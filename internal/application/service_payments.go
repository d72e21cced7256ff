package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/adotaqui/platform-service/internal/domain"
	"github.com/adotaqui/platform-service/internal/ports"
)

// PutPaymentConfig replaces the ONG's payment configuration wholesale.
// Country is never taken from the body: it comes from the ONG record, so a
// config can never drift to another country's fields.
func (s *Service) PutPaymentConfig(ctx context.Context, ongID uuid.UUID, req PutPaymentConfigRequest) (PaymentConfigResponse, error) {
	ong, err := s.ongs.GetByID(ctx, ongID)
	if err != nil {
		return PaymentConfigResponse{}, err
	}

	cfg := domain.PaymentConfig{
		OngID:             ongID,
		Country:           ong.Country,
		MBWayPhone:        strings.ReplaceAll(strings.TrimSpace(req.MBWayPhone), " ", ""),
		IBAN:              strings.ToUpper(strings.ReplaceAll(req.IBAN, " ", "")),
		MultibancoEntity:  strings.TrimSpace(req.MultibancoEntity),
		PixKey:            strings.TrimSpace(req.PixKey),
		PixKeyType:        domain.PixKeyType(strings.ToLower(strings.TrimSpace(req.PixKeyType))),
		BankName:          strings.TrimSpace(req.BankName),
		BankRoutingNumber: strings.TrimSpace(req.BankRoutingNumber),
		BankAccountNumber: strings.TrimSpace(req.BankAccountNumber),
	}
	if err := domain.ValidatePaymentConfig(cfg); err != nil {
		return PaymentConfigResponse{}, err
	}
	cfg.Configured = domain.RecomputeConfigured(cfg)

	now := s.nowFn()
	saved, err := s.configs.Upsert(ctx, ports.UpsertPaymentConfigParams{
		OngID:             ongID,
		Country:           cfg.Country,
		MBWayPhone:        cfg.MBWayPhone,
		IBAN:              cfg.IBAN,
		MultibancoEntity:  cfg.MultibancoEntity,
		PixKey:            cfg.PixKey,
		PixKeyType:        string(cfg.PixKeyType),
		BankName:          cfg.BankName,
		BankRoutingNumber: cfg.BankRoutingNumber,
		BankAccountNumber: cfg.BankAccountNumber,
		Configured:        cfg.Configured,
		Now:               now,
	})
	if err != nil {
		return PaymentConfigResponse{}, err
	}
	if s.cache != nil {
		_ = s.cache.Delete(ctx, cacheKeyConfig(ongID))
	}
	_ = s.enqueueEvent(ctx, "ong.payment_config_updated", ongID.String(), map[string]any{
		"ong_id":     ongID.String(),
		"country":    saved.Country,
		"configured": saved.Configured,
	})
	return s.toPaymentConfigResponse(saved, false), nil
}

// GetPaymentConfig returns the stored config. Sensitive payout identifiers
// are redacted unless the caller administers this ONG; the configured flag
// and available methods stay visible so the public UI can gate its forms.
func (s *Service) GetPaymentConfig(ctx context.Context, ongID uuid.UUID, isOwner bool) (PaymentConfigResponse, error) {
	cfg, err := s.loadPaymentConfig(ctx, ongID)
	if err != nil {
		return PaymentConfigResponse{}, err
	}
	return s.toPaymentConfigResponse(cfg, !isOwner), nil
}

// loadPaymentConfig reads through the cache; misses fall back to the
// repository and repopulate.
func (s *Service) loadPaymentConfig(ctx context.Context, ongID uuid.UUID) (domain.PaymentConfig, error) {
	key := cacheKeyConfig(ongID)
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key); err == nil && raw != "" {
			var cfg domain.PaymentConfig
			if err := json.Unmarshal([]byte(raw), &cfg); err == nil {
				return cfg, nil
			}
		}
	}
	cfg, err := s.configs.GetByOngID(ctx, ongID)
	if err != nil {
		return domain.PaymentConfig{}, err
	}
	if s.cache != nil {
		if raw, err := json.Marshal(cfg); err == nil {
			_ = s.cache.Set(ctx, key, string(raw), s.cfg.ConfigCacheTTL)
		}
	}
	return cfg, nil
}

// AvailableMethods lists the methods a donor can actually use right now:
// legal in the ONG's country and backed by configured fields.
func (s *Service) availableMethods(cfg domain.PaymentConfig) []string {
	methods, err := domain.MethodsFor(domain.NormalizeCountry(cfg.Country))
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(methods))
	for _, method := range methods {
		if domain.MethodConfigured(cfg, method) {
			out = append(out, string(method))
		}
	}
	return out
}

func (s *Service) toPaymentConfigResponse(cfg domain.PaymentConfig, redact bool) PaymentConfigResponse {
	resp := PaymentConfigResponse{
		OngID:      cfg.OngID.String(),
		Country:    cfg.Country,
		Configured: cfg.Configured,
		Methods:    s.availableMethods(cfg),
		UpdatedAt:  cfg.UpdatedAt,
	}
	if redact {
		resp.MBWayPhone = maskTail(cfg.MBWayPhone, 3)
		resp.IBAN = maskTail(cfg.IBAN, 4)
		resp.PixKey = maskTail(cfg.PixKey, 4)
		resp.BankAccountNumber = maskTail(cfg.BankAccountNumber, 2)
		return resp
	}
	resp.MBWayPhone = cfg.MBWayPhone
	resp.IBAN = cfg.IBAN
	resp.MultibancoEntity = cfg.MultibancoEntity
	resp.PixKey = cfg.PixKey
	resp.PixKeyType = string(cfg.PixKeyType)
	resp.BankName = cfg.BankName
	resp.BankRoutingNumber = cfg.BankRoutingNumber
	resp.BankAccountNumber = cfg.BankAccountNumber
	return resp
}

func maskTail(v string, visible int) string {
	if v == "" {
		return ""
	}
	if len(v) <= visible {
		return strings.Repeat("*", len(v))
	}
	return strings.Repeat("*", len(v)-visible) + v[len(v)-visible:]
}

func ownsOng(claims ports.AuthClaims, ongID uuid.UUID) error {
	if claims.OngID != ongID.String() {
		return fmt.Errorf("%w: token is not scoped to this ong", domain.ErrForbidden)
	}
	return nil
}
