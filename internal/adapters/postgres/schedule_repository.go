package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adotaqui/platform-service/internal/domain"
)

type operatingHoursRepository struct {
	db *gorm.DB
}

// ReplaceWeek swaps the whole weekly schedule atomically so readers never
// observe a half-written week.
func (r *operatingHoursRepository) ReplaceWeek(ctx context.Context, ongID uuid.UUID, week []domain.OperatingHours) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ong_id = ?", ongID).Delete(&operatingHoursModel{}).Error; err != nil {
			return err
		}
		for _, hours := range week {
			rec := operatingHoursModel{
				OngID:         ongID,
				Weekday:       hours.Weekday,
				Open:          hours.Open,
				OpenMinute:    hours.OpenMinute,
				CloseMinute:   hours.CloseMinute,
				LunchStartMin: hours.LunchStartMin,
				LunchEndMin:   hours.LunchEndMin,
			}
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *operatingHoursRepository) ListByOng(ctx context.Context, ongID uuid.UUID) ([]domain.OperatingHours, error) {
	var rows []operatingHoursModel
	if err := r.db.WithContext(ctx).Where("ong_id = ?", ongID).Order("weekday asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.OperatingHours, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainOperatingHours(row))
	}
	return out, nil
}

type availabilityExceptionRepository struct {
	db *gorm.DB
}

func (r *availabilityExceptionRepository) ListOverlapping(ctx context.Context, ongID uuid.UUID, from, to time.Time) ([]domain.AvailabilityException, error) {
	var rows []availabilityExceptionModel
	if err := r.db.WithContext(ctx).
		Where("ong_id = ? AND start_date <= ? AND end_date >= ?", ongID, to, from).
		Order("start_date asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.AvailabilityException, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainException(row))
	}
	return out, nil
}

func (r *availabilityExceptionRepository) Create(ctx context.Context, exception domain.AvailabilityException) (domain.AvailabilityException, error) {
	rec := availabilityExceptionModel{
		ExceptionID:   exception.ExceptionID,
		OngID:         exception.OngID,
		Type:          string(exception.Type),
		StartDate:     exception.StartDate,
		EndDate:       exception.EndDate,
		OpenMinute:    exception.OpenMinute,
		CloseMinute:   exception.CloseMinute,
		LunchStartMin: exception.LunchStartMin,
		LunchEndMin:   exception.LunchEndMin,
		Reason:        exception.Reason,
		CreatedAt:     exception.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return domain.AvailabilityException{}, err
	}
	return toDomainException(rec), nil
}

func (r *availabilityExceptionRepository) Delete(ctx context.Context, ongID, exceptionID uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("ong_id = ? AND exception_id = ?", ongID, exceptionID).Delete(&availabilityExceptionModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type appointmentSettingsRepository struct {
	db *gorm.DB
}

func (r *appointmentSettingsRepository) GetByOngID(ctx context.Context, ongID uuid.UUID) (domain.AppointmentSettings, error) {
	var rec appointmentSettingsModel
	if err := r.db.WithContext(ctx).Where("ong_id = ?", ongID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.AppointmentSettings{}, domain.ErrNotFound
		}
		return domain.AppointmentSettings{}, err
	}
	return toDomainSettings(rec), nil
}

func (r *appointmentSettingsRepository) Upsert(ctx context.Context, settings domain.AppointmentSettings) (domain.AppointmentSettings, error) {
	rec := appointmentSettingsModel{
		OngID:                settings.OngID,
		VisitDurationMin:     settings.VisitDurationMin,
		MaxConcurrentVisits:  settings.MaxConcurrentVisits,
		MinAdvanceHours:      settings.MinAdvanceHours,
		MaxAdvanceDays:       settings.MaxAdvanceDays,
		SlotIntervalMin:      settings.SlotIntervalMin,
		AllowWeekendBookings: settings.AllowWeekendBookings,
		UpdatedAt:            settings.UpdatedAt,
	}
	err := r.db.WithContext(ctx).
		Where("ong_id = ?", settings.OngID).
		Assign(map[string]any{
			"visit_duration_minutes": settings.VisitDurationMin,
			"max_concurrent_visits":  settings.MaxConcurrentVisits,
			"min_advance_hours":      settings.MinAdvanceHours,
			"max_advance_days":       settings.MaxAdvanceDays,
			"slot_interval_minutes":  settings.SlotIntervalMin,
			"allow_weekend_bookings": settings.AllowWeekendBookings,
			"updated_at":             settings.UpdatedAt,
		}).
		FirstOrCreate(&rec).Error
	if err != nil {
		return domain.AppointmentSettings{}, err
	}
	var out appointmentSettingsModel
	if err := r.db.WithContext(ctx).Where("ong_id = ?", settings.OngID).Take(&out).Error; err != nil {
		return domain.AppointmentSettings{}, err
	}
	return toDomainSettings(out), nil
}
