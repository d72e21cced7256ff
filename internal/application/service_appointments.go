package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/adotaqui/platform-service/internal/domain"
)

// BookAppointment validates the requested start against the slots the ONG
// actually offers, then hands off to the repository's transactional capacity
// check. Two donors racing for the last concurrent slot both pass the read
// here; exactly one survives the row-locked re-count.
func (s *Service) BookAppointment(ctx context.Context, req BookAppointmentRequest, idempotencyKey string) (AppointmentResponse, error) {
	ongID, err := uuid.Parse(req.OngID)
	if err != nil {
		return AppointmentResponse{}, fmt.Errorf("%w: ong_id must be a uuid", domain.ErrInvalidInput)
	}
	name := strings.TrimSpace(req.VisitorName)
	if len(name) < 2 || len(name) > 100 {
		return AppointmentResponse{}, fmt.Errorf("%w: visitor_name must be 2-100 chars", domain.ErrInvalidInput)
	}
	if err := domain.ValidateEmail(req.VisitorEmail); err != nil {
		return AppointmentResponse{}, err
	}
	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return AppointmentResponse{}, fmt.Errorf("%w: starts_at must be RFC 3339", domain.ErrInvalidInput)
	}
	startsAt = startsAt.UTC()

	var petID *uuid.UUID
	if req.PetID != "" {
		parsed, err := uuid.Parse(req.PetID)
		if err != nil {
			return AppointmentResponse{}, fmt.Errorf("%w: pet_id must be a uuid", domain.ErrInvalidInput)
		}
		pet, err := s.pets.GetByID(ctx, parsed)
		if err != nil {
			return AppointmentResponse{}, err
		}
		if pet.OngID != ongID {
			return AppointmentResponse{}, fmt.Errorf("%w: pet belongs to another ong", domain.ErrInvalidInput)
		}
		if pet.Adopted {
			return AppointmentResponse{}, fmt.Errorf("%w: pet already adopted", domain.ErrConflict)
		}
		petID = &parsed
	}

	if _, err := s.ongs.GetByID(ctx, ongID); err != nil {
		return AppointmentResponse{}, err
	}
	settings, err := s.loadSettings(ctx, ongID)
	if err != nil {
		return AppointmentResponse{}, err
	}

	day := time.Date(startsAt.Year(), startsAt.Month(), startsAt.Day(), 0, 0, 0, 0, time.UTC)
	slots, err := s.computeSlots(ctx, ongID, day, day)
	if err != nil {
		return AppointmentResponse{}, err
	}
	var slot *domain.TimeSlot
	for i := range slots {
		if slots[i].Start.Equal(startsAt) {
			slot = &slots[i]
			break
		}
	}
	if slot == nil {
		return AppointmentResponse{}, fmt.Errorf("%w: %s", domain.ErrSlotUnavailable, req.StartsAt)
	}

	if err := s.reserveIdempotency(ctx, idempotencyKey, req); err != nil {
		return AppointmentResponse{}, err
	}

	appointment := domain.Appointment{
		AppointmentID: uuid.New(),
		OngID:         ongID,
		PetID:         petID,
		VisitorName:   name,
		VisitorEmail:  strings.ToLower(strings.TrimSpace(req.VisitorEmail)),
		StartsAt:      slot.Start,
		EndsAt:        slot.End,
		Status:        domain.AppointmentConfirmed,
		CreatedAt:     s.nowFn(),
	}
	saved, err := s.appointments.CreateIfCapacity(ctx, appointment, settings.MaxConcurrentVisits)
	if err != nil {
		return AppointmentResponse{}, err
	}
	_ = s.enqueueEvent(ctx, "appointment.booked", ongID.String(), map[string]string{
		"appointment_id": saved.AppointmentID.String(),
		"ong_id":         ongID.String(),
		"starts_at":      saved.StartsAt.Format(time.RFC3339),
	})
	return toAppointmentResponse(saved), nil
}

func (s *Service) CancelAppointment(ctx context.Context, ongID, appointmentID uuid.UUID) error {
	return s.appointments.Cancel(ctx, ongID, appointmentID, s.nowFn())
}

func toAppointmentResponse(appointment domain.Appointment) AppointmentResponse {
	resp := AppointmentResponse{
		AppointmentID: appointment.AppointmentID.String(),
		OngID:         appointment.OngID.String(),
		VisitorName:   appointment.VisitorName,
		StartsAt:      appointment.StartsAt,
		EndsAt:        appointment.EndsAt,
		Status:        string(appointment.Status),
	}
	if appointment.PetID != nil {
		resp.PetID = appointment.PetID.String()
	}
	return resp
}
