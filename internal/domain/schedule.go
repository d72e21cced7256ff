package domain

import (
	"fmt"
	"time"
)

const minutesPerDay = 24 * 60

// DayWindow is the effective opening window of a single date after weekly
// hours and exceptions are reconciled. Zero lunch bounds mean no break.
type DayWindow struct {
	OpenMin       int
	CloseMin      int
	LunchStartMin int
	LunchEndMin   int
}

func (w DayWindow) hasLunch() bool {
	return w.LunchEndMin > w.LunchStartMin
}

func ValidateWindow(w DayWindow) error {
	if w.OpenMin < 0 || w.CloseMin > minutesPerDay || w.CloseMin <= w.OpenMin {
		return fmt.Errorf("%w: close time must be after open time", ErrInvalidInput)
	}
	if w.hasLunch() && (w.LunchStartMin < w.OpenMin || w.LunchEndMin > w.CloseMin) {
		return fmt.Errorf("%w: lunch break must be inside opening hours", ErrInvalidInput)
	}
	return nil
}

func ValidateOperatingHours(h OperatingHours) error {
	if h.Weekday < 0 || h.Weekday > 6 {
		return fmt.Errorf("%w: weekday must be 0-6", ErrInvalidInput)
	}
	if !h.Open {
		return nil
	}
	return ValidateWindow(DayWindow{
		OpenMin:       h.OpenMinute,
		CloseMin:      h.CloseMinute,
		LunchStartMin: h.LunchStartMin,
		LunchEndMin:   h.LunchEndMin,
	})
}

func ValidateAppointmentSettings(s AppointmentSettings) error {
	if s.VisitDurationMin <= 0 || s.VisitDurationMin > minutesPerDay {
		return fmt.Errorf("%w: visit_duration_minutes must be positive", ErrInvalidInput)
	}
	if s.SlotIntervalMin <= 0 {
		return fmt.Errorf("%w: slot_interval_minutes must be positive", ErrInvalidInput)
	}
	if s.MaxConcurrentVisits <= 0 {
		return fmt.Errorf("%w: max_concurrent_visits must be positive", ErrInvalidInput)
	}
	if s.MinAdvanceHours < 0 || s.MaxAdvanceDays <= 0 {
		return fmt.Errorf("%w: advance booking bounds are invalid", ErrInvalidInput)
	}
	return nil
}

// SlotsForWindow partitions a day's window into candidate visit slots: starts
// every SlotInterval minutes, each spanning the full visit duration, skipping
// any start whose visit would run past closing or overlap the lunch break.
// Output is chronological.
func SlotsForWindow(day time.Time, w DayWindow, slotIntervalMin, visitDurationMin int) []TimeSlot {
	var slots []TimeSlot
	for start := w.OpenMin; start+visitDurationMin <= w.CloseMin; start += slotIntervalMin {
		end := start + visitDurationMin
		if w.hasLunch() && start < w.LunchEndMin && end > w.LunchStartMin {
			continue
		}
		slots = append(slots, TimeSlot{
			Start: day.Add(time.Duration(start) * time.Minute),
			End:   day.Add(time.Duration(end) * time.Minute),
		})
	}
	return slots
}

// Overlaps reports whether two half-open time intervals intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// DateRangesOverlap compares inclusive date ranges, ignoring time of day.
func DateRangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	a0, a1 := truncateDate(aStart), truncateDate(aEnd)
	b0, b1 := truncateDate(bStart), truncateDate(bEnd)
	return !a0.After(b1) && !b0.After(a1)
}

// ExceptionCovers reports whether the exception's date range includes date.
func ExceptionCovers(e AvailabilityException, date time.Time) bool {
	d := truncateDate(date)
	return !d.Before(truncateDate(e.StartDate)) && !d.After(truncateDate(e.EndDate))
}

func ValidateException(e AvailabilityException) error {
	switch e.Type {
	case ExceptionClosure, ExceptionSpecialHours:
	default:
		return fmt.Errorf("%w: exception type must be closure or special_hours", ErrInvalidInput)
	}
	if truncateDate(e.EndDate).Before(truncateDate(e.StartDate)) {
		return fmt.Errorf("%w: exception end_date before start_date", ErrInvalidInput)
	}
	if e.Type == ExceptionSpecialHours {
		return ValidateWindow(DayWindow{
			OpenMin:       e.OpenMinute,
			CloseMin:      e.CloseMinute,
			LunchStartMin: e.LunchStartMin,
			LunchEndMin:   e.LunchEndMin,
		})
	}
	return nil
}

func truncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
