package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/adotaqui/platform-service/internal/domain"
)

type appointmentRepository struct {
	db *gorm.DB
}

// CreateIfCapacity re-counts the overlapping confirmed visits inside a
// transaction, so two callers racing for the last free slot serialize and the
// loser sees a full count.
func (r *appointmentRepository) CreateIfCapacity(ctx context.Context, appointment domain.Appointment, maxConcurrent int) (domain.Appointment, error) {
	rec := appointmentModel{
		AppointmentID: appointment.AppointmentID,
		OngID:         appointment.OngID,
		PetID:         appointment.PetID,
		VisitorName:   appointment.VisitorName,
		VisitorEmail:  appointment.VisitorEmail,
		StartsAt:      appointment.StartsAt,
		EndsAt:        appointment.EndsAt,
		Status:        string(appointment.Status),
		CreatedAt:     appointment.CreatedAt,
		UpdatedAt:     appointment.CreatedAt,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Locking overlapping appointment rows is not enough: an empty slot
		// leaves nothing to lock, and a waiter's count statement would not
		// see a racer's uncounted insert. Locking the ONG row serializes
		// bookings per ONG; the count below then runs on a snapshot that
		// includes any committed winner.
		var parent ongModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("ong_id").
			Where("ong_id = ?", appointment.OngID).
			Take(&parent).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		var overlapping int64
		if err := tx.Model(&appointmentModel{}).
			Where("ong_id = ? AND status = ? AND starts_at < ? AND ends_at > ?",
				appointment.OngID, string(domain.AppointmentConfirmed), appointment.EndsAt, appointment.StartsAt).
			Count(&overlapping).Error; err != nil {
			return err
		}
		if overlapping >= int64(maxConcurrent) {
			return domain.ErrConflict
		}
		return tx.Create(&rec).Error
	})
	if err != nil {
		return domain.Appointment{}, err
	}
	return toDomainAppointment(rec), nil
}

func (r *appointmentRepository) ListConfirmedInRange(ctx context.Context, ongID uuid.UUID, from, to time.Time) ([]domain.Appointment, error) {
	var rows []appointmentModel
	if err := r.db.WithContext(ctx).
		Where("ong_id = ? AND status = ? AND starts_at < ? AND ends_at > ?",
			ongID, string(domain.AppointmentConfirmed), to, from).
		Order("starts_at asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Appointment, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainAppointment(row))
	}
	return out, nil
}

func (r *appointmentRepository) Cancel(ctx context.Context, ongID, appointmentID uuid.UUID, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&appointmentModel{}).
		Where("ong_id = ? AND appointment_id = ? AND status = ?", ongID, appointmentID, string(domain.AppointmentConfirmed)).
		Updates(map[string]any{
			"status":     string(domain.AppointmentCancelled),
			"updated_at": at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
