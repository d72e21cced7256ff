package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/adotaqui/platform-service/internal/domain"
	"github.com/adotaqui/platform-service/internal/ports"
)

func (s *Service) RegisterOng(ctx context.Context, req RegisterOngRequest, idempotencyKey string) (OngResponse, error) {
	name := strings.TrimSpace(req.Name)
	if len(name) < 3 || len(name) > 120 {
		return OngResponse{}, fmt.Errorf("%w: name must be 3-120 chars", domain.ErrInvalidInput)
	}
	country := domain.NormalizeCountry(req.Country)
	if _, err := domain.MethodsFor(country); err != nil {
		return OngResponse{}, err
	}
	if err := domain.ValidateEmail(req.Email); err != nil {
		return OngResponse{}, err
	}
	if err := s.reserveIdempotency(ctx, idempotencyKey, req); err != nil {
		return OngResponse{}, err
	}

	ong, err := s.ongs.Create(ctx, ports.CreateOngParams{
		Name:      name,
		Country:   country,
		City:      strings.TrimSpace(req.City),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:     strings.TrimSpace(req.Phone),
		About:     strings.TrimSpace(req.About),
		CreatedAt: s.nowFn(),
	})
	if err != nil {
		return OngResponse{}, err
	}
	_ = s.enqueueEvent(ctx, "ong.registered", ong.OngID.String(), map[string]string{
		"ong_id":  ong.OngID.String(),
		"country": ong.Country,
	})
	return toOngResponse(ong), nil
}

func (s *Service) GetOng(ctx context.Context, ongID uuid.UUID) (OngResponse, error) {
	ong, err := s.ongs.GetByID(ctx, ongID)
	if err != nil {
		return OngResponse{}, err
	}
	return toOngResponse(ong), nil
}

func (s *Service) ListOngs(ctx context.Context, limit, offset int) ([]OngResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	ongs, err := s.ongs.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]OngResponse, 0, len(ongs))
	for _, ong := range ongs {
		out = append(out, toOngResponse(ong))
	}
	return out, nil
}

func toOngResponse(ong domain.Ong) OngResponse {
	currency, _ := domain.CurrencyFor(ong.Country)
	return OngResponse{
		OngID:     ong.OngID.String(),
		Name:      ong.Name,
		Country:   ong.Country,
		City:      ong.City,
		Email:     ong.Email,
		Phone:     ong.Phone,
		About:     ong.About,
		Currency:  currency,
		CreatedAt: ong.CreatedAt,
	}
}
