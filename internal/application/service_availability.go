package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/adotaqui/platform-service/internal/domain"
)

// PutOperatingHours replaces the whole weekly schedule in one call. Partial
// weeks are rejected up front so the stored week is always internally valid.
func (s *Service) PutOperatingHours(ctx context.Context, ongID uuid.UUID, req PutOperatingHoursRequest) ([]WeekdayHours, error) {
	if len(req.Week) == 0 {
		return nil, fmt.Errorf("%w: week cannot be empty", domain.ErrInvalidInput)
	}
	seen := map[int]bool{}
	week := make([]domain.OperatingHours, 0, len(req.Week))
	for _, day := range req.Week {
		if seen[day.Weekday] {
			return nil, fmt.Errorf("%w: duplicate weekday %d", domain.ErrInvalidInput, day.Weekday)
		}
		seen[day.Weekday] = true
		hours, err := toOperatingHours(ongID, day)
		if err != nil {
			return nil, err
		}
		if err := domain.ValidateOperatingHours(hours); err != nil {
			return nil, err
		}
		week = append(week, hours)
	}
	if _, err := s.ongs.GetByID(ctx, ongID); err != nil {
		return nil, err
	}
	if err := s.hours.ReplaceWeek(ctx, ongID, week); err != nil {
		return nil, err
	}
	out := make([]WeekdayHours, 0, len(week))
	for _, hours := range week {
		out = append(out, toWeekdayHours(hours))
	}
	return out, nil
}

func (s *Service) GetOperatingHours(ctx context.Context, ongID uuid.UUID) ([]WeekdayHours, error) {
	week, err := s.hours.ListByOng(ctx, ongID)
	if err != nil {
		return nil, err
	}
	out := make([]WeekdayHours, 0, len(week))
	for _, hours := range week {
		out = append(out, toWeekdayHours(hours))
	}
	return out, nil
}

// AddException inserts a closure or special-hours window. Overlapping
// exceptions are rejected at write time, so date resolution never has to
// arbitrate between two exceptions covering the same day.
func (s *Service) AddException(ctx context.Context, ongID uuid.UUID, req AddExceptionRequest) (ExceptionResponse, error) {
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return ExceptionResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return ExceptionResponse{}, err
	}
	exception := domain.AvailabilityException{
		ExceptionID: uuid.New(),
		OngID:       ongID,
		Type:        domain.ExceptionType(req.Type),
		StartDate:   startDate,
		EndDate:     endDate,
		Reason:      req.Reason,
		CreatedAt:   s.nowFn(),
	}
	if exception.Type == domain.ExceptionSpecialHours {
		if exception.OpenMinute, err = parseMinute(req.OpenTime); err != nil {
			return ExceptionResponse{}, err
		}
		if exception.CloseMinute, err = parseMinute(req.CloseTime); err != nil {
			return ExceptionResponse{}, err
		}
		if exception.LunchStartMin, err = parseMinute(req.LunchStart); err != nil {
			return ExceptionResponse{}, err
		}
		if exception.LunchEndMin, err = parseMinute(req.LunchEnd); err != nil {
			return ExceptionResponse{}, err
		}
	}
	if err := domain.ValidateException(exception); err != nil {
		return ExceptionResponse{}, err
	}

	existing, err := s.exceptions.ListOverlapping(ctx, ongID, startDate, endDate)
	if err != nil {
		return ExceptionResponse{}, err
	}
	for _, other := range existing {
		if domain.DateRangesOverlap(startDate, endDate, other.StartDate, other.EndDate) {
			return ExceptionResponse{}, fmt.Errorf("%w: overlaps exception %s", domain.ErrConflict, other.ExceptionID)
		}
	}

	saved, err := s.exceptions.Create(ctx, exception)
	if err != nil {
		return ExceptionResponse{}, err
	}
	return toExceptionResponse(saved), nil
}

func (s *Service) DeleteException(ctx context.Context, ongID, exceptionID uuid.UUID) error {
	return s.exceptions.Delete(ctx, ongID, exceptionID)
}

func (s *Service) PutAppointmentSettings(ctx context.Context, ongID uuid.UUID, req PutSettingsRequest) (SettingsResponse, error) {
	settings := domain.AppointmentSettings{
		OngID:                ongID,
		VisitDurationMin:     req.VisitDurationMinutes,
		MaxConcurrentVisits:  req.MaxConcurrentVisits,
		MinAdvanceHours:      req.MinAdvanceHours,
		MaxAdvanceDays:       req.MaxAdvanceDays,
		SlotIntervalMin:      req.SlotIntervalMinutes,
		AllowWeekendBookings: req.AllowWeekendBookings,
		UpdatedAt:            s.nowFn(),
	}
	if err := domain.ValidateAppointmentSettings(settings); err != nil {
		return SettingsResponse{}, err
	}
	if _, err := s.ongs.GetByID(ctx, ongID); err != nil {
		return SettingsResponse{}, err
	}
	saved, err := s.settings.Upsert(ctx, settings)
	if err != nil {
		return SettingsResponse{}, err
	}
	return toSettingsResponse(saved), nil
}

func (s *Service) GetAppointmentSettings(ctx context.Context, ongID uuid.UUID) (SettingsResponse, error) {
	settings, err := s.loadSettings(ctx, ongID)
	if err != nil {
		return SettingsResponse{}, err
	}
	return toSettingsResponse(settings), nil
}

// AvailableSlots computes bookable visit slots for an inclusive date range.
// Results are cached briefly; bookings landing inside the TTL are still
// caught by the transactional capacity check at booking time.
func (s *Service) AvailableSlots(ctx context.Context, ongID uuid.UUID, fromStr, toStr string) (AvailabilityResponse, error) {
	from, err := parseDate(fromStr)
	if err != nil {
		return AvailabilityResponse{}, err
	}
	to, err := parseDate(toStr)
	if err != nil {
		return AvailabilityResponse{}, err
	}
	if to.Before(from) {
		return AvailabilityResponse{}, fmt.Errorf("%w: to before from", domain.ErrInvalidInput)
	}
	if int(to.Sub(from).Hours()/24) > s.cfg.MaxAvailabilityRangeDays {
		return AvailabilityResponse{}, fmt.Errorf("%w: range exceeds %d days", domain.ErrInvalidInput, s.cfg.MaxAvailabilityRangeDays)
	}

	cacheKey := cacheKeyAvailability(ongID, fromStr, toStr)
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, cacheKey); err == nil && raw != "" {
			var resp AvailabilityResponse
			if err := json.Unmarshal([]byte(raw), &resp); err == nil {
				return resp, nil
			}
		}
	}

	if _, err := s.ongs.GetByID(ctx, ongID); err != nil {
		return AvailabilityResponse{}, err
	}
	slots, err := s.computeSlots(ctx, ongID, from, to)
	if err != nil {
		return AvailabilityResponse{}, err
	}

	resp := AvailabilityResponse{
		OngID: ongID.String(),
		From:  fromStr,
		To:    toStr,
		Slots: make([]SlotView, 0, len(slots)),
	}
	for _, slot := range slots {
		resp.Slots = append(resp.Slots, SlotView{Start: slot.Start, End: slot.End})
	}
	if s.cache != nil {
		if raw, err := json.Marshal(resp); err == nil {
			_ = s.cache.Set(ctx, cacheKey, string(raw), s.cfg.AvailabilityCacheTTL)
		}
	}
	return resp, nil
}

// computeSlots walks each date in [from, to] and reconciles weekly hours,
// exceptions, the booking horizon and existing confirmed visits into the
// final candidate list.
func (s *Service) computeSlots(ctx context.Context, ongID uuid.UUID, from, to time.Time) ([]domain.TimeSlot, error) {
	settings, err := s.loadSettings(ctx, ongID)
	if err != nil {
		return nil, err
	}
	week, err := s.hours.ListByOng(ctx, ongID)
	if err != nil {
		return nil, err
	}
	byWeekday := make(map[int]domain.OperatingHours, len(week))
	for _, hours := range week {
		byWeekday[hours.Weekday] = hours
	}
	exceptions, err := s.exceptions.ListOverlapping(ctx, ongID, from, to)
	if err != nil {
		return nil, err
	}
	rangeEnd := to.Add(24 * time.Hour)
	booked, err := s.appointments.ListConfirmedInRange(ctx, ongID, from, rangeEnd)
	if err != nil {
		return nil, err
	}

	now := s.nowFn()
	earliest := now.Add(time.Duration(settings.MinAdvanceHours) * time.Hour)
	latest := now.Add(time.Duration(settings.MaxAdvanceDays) * 24 * time.Hour)

	var out []domain.TimeSlot
	for day := from; !day.After(to); day = day.Add(24 * time.Hour) {
		weekday := int(day.Weekday())
		if !settings.AllowWeekendBookings && (weekday == 0 || weekday == 6) {
			continue
		}

		window, open := s.windowForDate(day, byWeekday, exceptions)
		if !open {
			continue
		}
		for _, slot := range domain.SlotsForWindow(day, window, settings.SlotIntervalMin, settings.VisitDurationMin) {
			if slot.Start.Before(earliest) || slot.Start.After(latest) {
				continue
			}
			if countOverlapping(booked, slot) >= settings.MaxConcurrentVisits {
				continue
			}
			out = append(out, slot)
		}
	}
	return out, nil
}

// windowForDate resolves one date's effective window: a covering closure
// removes the day, a covering special-hours exception replaces the weekly
// window, otherwise the weekly default applies.
func (s *Service) windowForDate(day time.Time, byWeekday map[int]domain.OperatingHours, exceptions []domain.AvailabilityException) (domain.DayWindow, bool) {
	for _, exception := range exceptions {
		if !domain.ExceptionCovers(exception, day) {
			continue
		}
		if exception.Type == domain.ExceptionClosure {
			return domain.DayWindow{}, false
		}
		return domain.DayWindow{
			OpenMin:       exception.OpenMinute,
			CloseMin:      exception.CloseMinute,
			LunchStartMin: exception.LunchStartMin,
			LunchEndMin:   exception.LunchEndMin,
		}, true
	}
	hours, ok := byWeekday[int(day.Weekday())]
	if !ok || !hours.Open {
		return domain.DayWindow{}, false
	}
	return domain.DayWindow{
		OpenMin:       hours.OpenMinute,
		CloseMin:      hours.CloseMinute,
		LunchStartMin: hours.LunchStartMin,
		LunchEndMin:   hours.LunchEndMin,
	}, true
}

func countOverlapping(booked []domain.Appointment, slot domain.TimeSlot) int {
	count := 0
	for _, appointment := range booked {
		if appointment.Status != domain.AppointmentConfirmed {
			continue
		}
		if domain.Overlaps(appointment.StartsAt, appointment.EndsAt, slot.Start, slot.End) {
			count++
		}
	}
	return count
}

// loadSettings falls back to platform defaults when the ONG never tuned its
// booking rules.
func (s *Service) loadSettings(ctx context.Context, ongID uuid.UUID) (domain.AppointmentSettings, error) {
	settings, err := s.settings.GetByOngID(ctx, ongID)
	if err == nil {
		return settings, nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return defaultSettings(ongID), nil
	}
	return domain.AppointmentSettings{}, err
}

func defaultSettings(ongID uuid.UUID) domain.AppointmentSettings {
	return domain.AppointmentSettings{
		OngID:                ongID,
		VisitDurationMin:     60,
		MaxConcurrentVisits:  1,
		MinAdvanceHours:      24,
		MaxAdvanceDays:       30,
		SlotIntervalMin:      30,
		AllowWeekendBookings: false,
	}
}

func toOperatingHours(ongID uuid.UUID, day WeekdayHours) (domain.OperatingHours, error) {
	hours := domain.OperatingHours{
		OngID:   ongID,
		Weekday: day.Weekday,
		Open:    day.Open,
	}
	if !day.Open {
		return hours, nil
	}
	var err error
	if hours.OpenMinute, err = parseMinute(day.OpenTime); err != nil {
		return domain.OperatingHours{}, err
	}
	if hours.CloseMinute, err = parseMinute(day.CloseTime); err != nil {
		return domain.OperatingHours{}, err
	}
	if hours.LunchStartMin, err = parseMinute(day.LunchStart); err != nil {
		return domain.OperatingHours{}, err
	}
	if hours.LunchEndMin, err = parseMinute(day.LunchEnd); err != nil {
		return domain.OperatingHours{}, err
	}
	return hours, nil
}

func toWeekdayHours(hours domain.OperatingHours) WeekdayHours {
	day := WeekdayHours{Weekday: hours.Weekday, Open: hours.Open}
	if !hours.Open {
		return day
	}
	day.OpenTime = formatMinute(hours.OpenMinute)
	day.CloseTime = formatMinute(hours.CloseMinute)
	if hours.LunchEndMin > hours.LunchStartMin {
		day.LunchStart = formatMinute(hours.LunchStartMin)
		day.LunchEnd = formatMinute(hours.LunchEndMin)
	}
	return day
}

func toExceptionResponse(e domain.AvailabilityException) ExceptionResponse {
	return ExceptionResponse{
		ExceptionID: e.ExceptionID.String(),
		Type:        string(e.Type),
		StartDate:   e.StartDate.Format("2006-01-02"),
		EndDate:     e.EndDate.Format("2006-01-02"),
		Reason:      e.Reason,
	}
}

func toSettingsResponse(settings domain.AppointmentSettings) SettingsResponse {
	return SettingsResponse{
		OngID:                settings.OngID.String(),
		VisitDurationMinutes: settings.VisitDurationMin,
		MaxConcurrentVisits:  settings.MaxConcurrentVisits,
		MinAdvanceHours:      settings.MinAdvanceHours,
		MaxAdvanceDays:       settings.MaxAdvanceDays,
		SlotIntervalMinutes:  settings.SlotIntervalMin,
		AllowWeekendBookings: settings.AllowWeekendBookings,
	}
}
