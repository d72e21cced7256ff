package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/adotaqui/platform-service/internal/domain"
)

// CreateDonation records a donation intent and resolves the method-specific
// payment instructions from the ONG's configuration. The instructions are
// snapshotted onto the donation row, so later config edits never change what
// the donor was told to pay.
func (s *Service) CreateDonation(ctx context.Context, req CreateDonationRequest, idempotencyKey string) (DonationResponse, error) {
	ongID, err := uuid.Parse(req.OngID)
	if err != nil {
		return DonationResponse{}, fmt.Errorf("%w: ong_id must be a uuid", domain.ErrInvalidInput)
	}
	if err := domain.ValidateDonorName(req.DonorName); err != nil {
		return DonationResponse{}, err
	}
	if err := domain.ValidateEmail(req.DonorEmail); err != nil {
		return DonationResponse{}, err
	}
	amountCents, err := domain.ParseAmount(req.Amount)
	if err != nil {
		return DonationResponse{}, err
	}
	method := domain.PaymentMethod(strings.ToLower(strings.TrimSpace(req.Method)))

	ong, err := s.ongs.GetByID(ctx, ongID)
	if err != nil {
		return DonationResponse{}, err
	}
	if err := s.reserveIdempotency(ctx, idempotencyKey, req); err != nil {
		return DonationResponse{}, err
	}

	donationID := uuid.New()
	now := s.nowFn()
	instructions, err := s.resolveInstructions(ctx, ong, method, amountCents, donationID, req)
	if err != nil {
		return DonationResponse{}, err
	}

	donation := domain.Donation{
		DonationID:   donationID,
		OngID:        ongID,
		DonorName:    strings.TrimSpace(req.DonorName),
		DonorEmail:   strings.ToLower(strings.TrimSpace(req.DonorEmail)),
		AmountCents:  amountCents,
		Currency:     instructions.Currency,
		Method:       method,
		Status:       domain.DonationPendingConfirmation,
		Instructions: instructions,
		CreatedAt:    now,
	}
	saved, err := s.donations.Create(ctx, donation)
	if err != nil {
		return DonationResponse{}, err
	}
	_ = s.enqueueEvent(ctx, "donation.created", ongID.String(), map[string]any{
		"donation_id": saved.DonationID.String(),
		"ong_id":      ongID.String(),
		"method":      string(method),
		"amount":      domain.FormatAmount(amountCents),
		"currency":    saved.Currency,
	})
	return toDonationResponse(saved), nil
}

// resolveInstructions is the country/method dispatch. Order matters: the ONG
// must have a usable configuration at all before the requested method is
// judged, and a method legal in the country but missing its fields is a
// configuration gap, not an availability one.
func (s *Service) resolveInstructions(ctx context.Context, ong domain.Ong, method domain.PaymentMethod, amountCents int64, donationID uuid.UUID, req CreateDonationRequest) (domain.PaymentInstructions, error) {
	country := domain.NormalizeCountry(ong.Country)
	currency, err := domain.CurrencyFor(country)
	if err != nil {
		return domain.PaymentInstructions{}, err
	}

	cfg, err := s.loadPaymentConfig(ctx, ong.OngID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.PaymentInstructions{}, fmt.Errorf("%w: ong %s", domain.ErrOngNotConfigured, ong.OngID)
		}
		return domain.PaymentInstructions{}, err
	}
	if !cfg.Configured {
		return domain.PaymentInstructions{}, fmt.Errorf("%w: ong %s", domain.ErrOngNotConfigured, ong.OngID)
	}

	legal, err := domain.MethodLegal(country, method)
	if err != nil {
		return domain.PaymentInstructions{}, err
	}
	if !legal {
		return domain.PaymentInstructions{}, fmt.Errorf("%w: %s in %s", domain.ErrMethodNotAvailable, method, country)
	}
	if !domain.MethodConfigured(cfg, method) {
		return domain.PaymentInstructions{}, fmt.Errorf("%w: %s fields missing", domain.ErrOngNotConfigured, method)
	}

	now := s.nowFn()
	out := domain.PaymentInstructions{
		Method:      method,
		AmountCents: amountCents,
		Currency:    currency,
	}

	switch method {
	case domain.MethodMBWay:
		expires := now.Add(s.cfg.MBWayExpiry)
		out.ExpiresAt = &expires
		out.MBWayPhone = cfg.MBWayPhone
		out.Steps = []string{
			"Open the MB WAY app",
			fmt.Sprintf("Send %s %s to %s", domain.FormatAmount(amountCents), currency, cfg.MBWayPhone),
			"Accept the request within 10 minutes",
		}
	case domain.MethodMultibanco:
		entity := cfg.MultibancoEntity
		if entity == "" {
			entity = s.cfg.MultibancoEntity
		}
		seq, err := s.donations.NextMultibancoReference(ctx)
		if err != nil {
			return domain.PaymentInstructions{}, err
		}
		expires := now.Add(s.cfg.MultibancoExpiry)
		out.ExpiresAt = &expires
		out.Entity = entity
		out.Reference = domain.MultibancoReference(entity, seq)
		out.Steps = []string{
			"At any Multibanco ATM or in your home banking choose payments of services",
			fmt.Sprintf("Entity %s, reference %s", out.Entity, out.Reference),
			fmt.Sprintf("Amount %s %s", domain.FormatAmount(amountCents), currency),
		}
	case domain.MethodPix:
		expires := now.Add(s.cfg.PixExpiry)
		out.ExpiresAt = &expires
		out.PixKey = cfg.PixKey
		txID := strings.ReplaceAll(donationID.String(), "-", "")
		out.PixPayload = domain.BuildPixPayload(cfg.PixKey, ong.Name, s.cfg.PixMerchantCity, amountCents, txID)
		out.Steps = []string{
			"Open your banking app and choose Pix copia e cola",
			"Paste the code and confirm the amount",
		}
	case domain.MethodBoleto:
		expires := now.Add(s.cfg.BoletoExpiry)
		out.ExpiresAt = &expires
		out.BankName = cfg.BankName
		out.BoletoURL = strings.TrimSpace(req.BoletoURL)
		out.BoletoBarcode = strings.TrimSpace(req.BoletoBarcode)
		out.Steps = []string{
			"Pay the boleto at any bank, lottery agency or banking app before it expires",
		}
	case domain.MethodBankTransfer:
		if country == "PT" {
			out.IBAN = cfg.IBAN
			out.Steps = []string{
				fmt.Sprintf("Transfer %s %s to IBAN %s", domain.FormatAmount(amountCents), currency, cfg.IBAN),
			}
		} else {
			out.BankName = cfg.BankName
			out.BankRoutingNumber = cfg.BankRoutingNumber
			out.BankAccountNumber = cfg.BankAccountNumber
			out.Steps = []string{
				fmt.Sprintf("Transfer %s %s to %s, agency %s, account %s",
					domain.FormatAmount(amountCents), currency, cfg.BankName, cfg.BankRoutingNumber, cfg.BankAccountNumber),
			}
		}
	default:
		return domain.PaymentInstructions{}, fmt.Errorf("%w: unknown method %q", domain.ErrInvalidInput, method)
	}
	return out, nil
}

// GetDonation applies lazy expiry: a pending donation whose instructions have
// expired flips to expired on read, without a background sweeper.
func (s *Service) GetDonation(ctx context.Context, donationID uuid.UUID) (DonationResponse, error) {
	donation, err := s.donations.GetByID(ctx, donationID)
	if err != nil {
		return DonationResponse{}, err
	}
	donation, err = s.expireIfDue(ctx, donation)
	if err != nil {
		return DonationResponse{}, err
	}
	return toDonationResponse(donation), nil
}

func (s *Service) ConfirmDonation(ctx context.Context, ongID, donationID uuid.UUID) (DonationResponse, error) {
	donation, err := s.donations.GetByID(ctx, donationID)
	if err != nil {
		return DonationResponse{}, err
	}
	if donation.OngID != ongID {
		return DonationResponse{}, fmt.Errorf("%w: donation belongs to another ong", domain.ErrForbidden)
	}
	donation, err = s.expireIfDue(ctx, donation)
	if err != nil {
		return DonationResponse{}, err
	}
	if donation.Status != domain.DonationPendingConfirmation {
		return DonationResponse{}, fmt.Errorf("%w: donation is %s", domain.ErrConflict, donation.Status)
	}
	now := s.nowFn()
	if err := s.donations.UpdateStatus(ctx, donationID, domain.DonationConfirmed, now); err != nil {
		return DonationResponse{}, err
	}
	donation.Status = domain.DonationConfirmed
	donation.ConfirmedAt = &now
	_ = s.enqueueEvent(ctx, "donation.confirmed", ongID.String(), map[string]string{
		"donation_id": donationID.String(),
		"ong_id":      ongID.String(),
	})
	return toDonationResponse(donation), nil
}

func (s *Service) ListDonations(ctx context.Context, ongID uuid.UUID, limit, offset int) ([]DonationResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	donations, err := s.donations.ListByOng(ctx, ongID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]DonationResponse, 0, len(donations))
	for _, donation := range donations {
		donation, err = s.expireIfDue(ctx, donation)
		if err != nil {
			return nil, err
		}
		out = append(out, toDonationResponse(donation))
	}
	return out, nil
}

func (s *Service) expireIfDue(ctx context.Context, donation domain.Donation) (domain.Donation, error) {
	if donation.Status != domain.DonationPendingConfirmation {
		return donation, nil
	}
	expiresAt := donation.Instructions.ExpiresAt
	if expiresAt == nil || s.nowFn().Before(*expiresAt) {
		return donation, nil
	}
	if err := s.donations.UpdateStatus(ctx, donation.DonationID, domain.DonationExpired, s.nowFn()); err != nil {
		return domain.Donation{}, err
	}
	donation.Status = domain.DonationExpired
	return donation, nil
}

func toDonationResponse(donation domain.Donation) DonationResponse {
	in := donation.Instructions
	view := PaymentInstructionsView{
		Method:            string(in.Method),
		Amount:            domain.FormatAmount(in.AmountCents),
		Currency:          in.Currency,
		ExpiresAt:         in.ExpiresAt,
		MBWayPhone:        in.MBWayPhone,
		Entity:            in.Entity,
		Reference:         in.Reference,
		PixKey:            in.PixKey,
		PixPayload:        in.PixPayload,
		BoletoURL:         in.BoletoURL,
		BoletoBarcode:     in.BoletoBarcode,
		BankName:          in.BankName,
		BankRoutingNumber: in.BankRoutingNumber,
		BankAccountNumber: in.BankAccountNumber,
		IBAN:              in.IBAN,
		Steps:             in.Steps,
	}
	return DonationResponse{
		DonationID:   donation.DonationID.String(),
		OngID:        donation.OngID.String(),
		DonorName:    donation.DonorName,
		Amount:       domain.FormatAmount(donation.AmountCents),
		Currency:     donation.Currency,
		Method:       string(donation.Method),
		Status:       string(donation.Status),
		Instructions: view,
		CreatedAt:    donation.CreatedAt,
		ConfirmedAt:  donation.ConfirmedAt,
	}
}
