package unit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/adotaqui/platform-service/internal/application"
	"github.com/adotaqui/platform-service/internal/domain"
)

// nextDate returns the next occurrence of the weekday at least two days out,
// so booking-horizon checks never clip the slots under test.
func nextDate(weekday time.Weekday) time.Time {
	now := time.Now().UTC()
	d := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 2)
	for d.Weekday() != weekday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

var mondayNineToSix = application.PutOperatingHoursRequest{
	Week: []application.WeekdayHours{
		{Weekday: 1, Open: true, OpenTime: "09:00", CloseTime: "18:00", LunchStart: "12:00", LunchEnd: "13:00"},
	},
}

var openSettings = application.PutSettingsRequest{
	VisitDurationMinutes: 60,
	MaxConcurrentVisits:  1,
	MinAdvanceHours:      0,
	MaxAdvanceDays:       365,
	SlotIntervalMinutes:  30,
}

// newScheduledOng seeds an ONG with the Monday 09-18 schedule used across
// the availability tests.
func newScheduledOng(t *testing.T, f *fixture) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	ong, err := f.registerOng(ctx, "PT")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	ongID := uuid.MustParse(ong.OngID)
	if _, err := f.service.PutOperatingHours(ctx, ongID, mondayNineToSix); err != nil {
		t.Fatalf("put hours: %v", err)
	}
	if _, err := f.service.PutAppointmentSettings(ctx, ongID, openSettings); err != nil {
		t.Fatalf("put settings: %v", err)
	}
	return ongID
}

func TestPutOperatingHoursValidation(t *testing.T) {
	t.Parallel()
	f := newFixture()
	ctx := context.Background()

	ong, _ := f.registerOng(ctx, "PT")
	ongID := uuid.MustParse(ong.OngID)

	_, err := f.service.PutOperatingHours(ctx, ongID, application.PutOperatingHoursRequest{
		Week: []application.WeekdayHours{
			{Weekday: 1, Open: true, OpenTime: "09:00", CloseTime: "18:00"},
			{Weekday: 1, Open: false},
		},
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("duplicate weekday must fail, got %v", err)
	}

	_, err = f.service.PutOperatingHours(ctx, ongID, application.PutOperatingHoursRequest{
		Week: []application.WeekdayHours{
			{Weekday: 1, Open: true, OpenTime: "09:00", CloseTime: "18:00", LunchStart: "08:00", LunchEnd: "09:30"},
		},
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("lunch outside opening hours must fail, got %v", err)
	}

	_, err = f.service.PutOperatingHours(ctx, ongID, application.PutOperatingHoursRequest{
		Week: []application.WeekdayHours{
			{Weekday: 1, Open: true, OpenTime: "18:00", CloseTime: "09:00"},
		},
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("close before open must fail, got %v", err)
	}
}

func TestAvailableSlotsWorkedWeek(t *testing.T) {
	t.Parallel()
	f := newFixture()
	ongID := newScheduledOng(t, f)
	ctx := context.Background()

	monday := nextDate(time.Monday)
	date := monday.Format("2006-01-02")
	resp, err := f.service.AvailableSlots(ctx, ongID, date, date)
	if err != nil {
		t.Fatalf("available slots: %v", err)
	}
	if len(resp.Slots) != 14 {
		t.Fatalf("expected 14 slots for a 09-18 day with lunch, got %d", len(resp.Slots))
	}
	starts := map[string]bool{}
	for _, slot := range resp.Slots {
		starts[slot.Start.Format("15:04")] = true
	}
	for _, want := range []string{"09:00", "11:00", "13:00", "17:00"} {
		if !starts[want] {
			t.Fatalf("missing slot %s", want)
		}
	}
	for _, banned := range []string{"11:30", "12:00", "17:30"} {
		if starts[banned] {
			t.Fatalf("slot %s must not be offered", banned)
		}
	}

	// Tuesday has no weekly hours
	tuesday := monday.AddDate(0, 0, 1).Format("2006-01-02")
	resp, err = f.service.AvailableSlots(ctx, ongID, tuesday, tuesday)
	if err != nil {
		t.Fatalf("available slots: %v", err)
	}
	if len(resp.Slots) != 0 {
		t.Fatalf("closed day must offer no slots, got %d", len(resp.Slots))
	}
}

func TestAvailableSlotsClosureException(t *testing.T) {
	t.Parallel()
	f := newFixture()
	ongID := newScheduledOng(t, f)
	ctx := context.Background()

	monday := nextDate(time.Monday)
	date := monday.Format("2006-01-02")
	if _, err := f.service.AddException(ctx, ongID, application.AddExceptionRequest{
		Type: "closure", StartDate: date, EndDate: date, Reason: "feriado",
	}); err != nil {
		t.Fatalf("add exception: %v", err)
	}

	resp, err := f.service.AvailableSlots(ctx, ongID, date, date)
	if err != nil {
		t.Fatalf("available slots: %v", err)
	}
	if len(resp.Slots) != 0 {
		t.Fatalf("closure must remove the day, got %d slots", len(resp.Slots))
	}
}

func TestAvailableSlotsSpecialHours(t *testing.T) {
	t.Parallel()
	f := newFixture()
	ongID := newScheduledOng(t, f)
	ctx := context.Background()

	monday := nextDate(time.Monday)
	date := monday.Format("2006-01-02")
	if _, err := f.service.AddException(ctx, ongID, application.AddExceptionRequest{
		Type: "special_hours", StartDate: date, EndDate: date, OpenTime: "14:00", CloseTime: "16:00",
	}); err != nil {
		t.Fatalf("add exception: %v", err)
	}

	resp, err := f.service.AvailableSlots(ctx, ongID, date, date)
	if err != nil {
		t.Fatalf("available slots: %v", err)
	}
	if len(resp.Slots) != 3 {
		t.Fatalf("14-16 window with 30m starts fits 3 one-hour visits, got %d", len(resp.Slots))
	}
	if first := resp.Slots[0].Start.Format("15:04"); first != "14:00" {
		t.Fatalf("special hours must replace the weekly window, first slot %s", first)
	}
}

func TestAvailableSlotsWeekendGate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	saturdayHours := application.PutOperatingHoursRequest{
		Week: []application.WeekdayHours{
			{Weekday: 6, Open: true, OpenTime: "10:00", CloseTime: "13:00"},
		},
	}
	saturday := nextDate(time.Saturday).Format("2006-01-02")

	closed := newFixture()
	ong, _ := closed.registerOng(ctx, "PT")
	ongID := uuid.MustParse(ong.OngID)
	if _, err := closed.service.PutOperatingHours(ctx, ongID, saturdayHours); err != nil {
		t.Fatalf("put hours: %v", err)
	}
	if _, err := closed.service.PutAppointmentSettings(ctx, ongID, openSettings); err != nil {
		t.Fatalf("put settings: %v", err)
	}
	resp, err := closed.service.AvailableSlots(ctx, ongID, saturday, saturday)
	if err != nil {
		t.Fatalf("available slots: %v", err)
	}
	if len(resp.Slots) != 0 {
		t.Fatalf("weekend bookings are off by default, got %d slots", len(resp.Slots))
	}

	open := newFixture()
	ong, _ = open.registerOng(ctx, "PT")
	ongID = uuid.MustParse(ong.OngID)
	if _, err := open.service.PutOperatingHours(ctx, ongID, saturdayHours); err != nil {
		t.Fatalf("put hours: %v", err)
	}
	settings := openSettings
	settings.AllowWeekendBookings = true
	if _, err := open.service.PutAppointmentSettings(ctx, ongID, settings); err != nil {
		t.Fatalf("put settings: %v", err)
	}
	resp, err = open.service.AvailableSlots(ctx, ongID, saturday, saturday)
	if err != nil {
		t.Fatalf("available slots: %v", err)
	}
	if len(resp.Slots) == 0 {
		t.Fatal("allow_weekend_bookings must open saturday slots")
	}
}

func TestAvailableSlotsRangeLimits(t *testing.T) {
	t.Parallel()
	f := newFixture()
	ongID := newScheduledOng(t, f)
	ctx := context.Background()

	monday := nextDate(time.Monday)
	if _, err := f.service.AvailableSlots(ctx, ongID, monday.Format("2006-01-02"), monday.AddDate(0, 0, -1).Format("2006-01-02")); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("to before from must fail, got %v", err)
	}
	if _, err := f.service.AvailableSlots(ctx, ongID, monday.Format("2006-01-02"), monday.AddDate(0, 0, 90).Format("2006-01-02")); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("oversized range must fail, got %v", err)
	}
	if _, err := f.service.AvailableSlots(ctx, ongID, "07-09-2026", "08-09-2026"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("non ISO dates must fail, got %v", err)
	}
}

func TestAddExceptionOverlapRejected(t *testing.T) {
	t.Parallel()
	f := newFixture()
	ongID := newScheduledOng(t, f)
	ctx := context.Background()

	monday := nextDate(time.Monday)
	if _, err := f.service.AddException(ctx, ongID, application.AddExceptionRequest{
		Type:      "closure",
		StartDate: monday.Format("2006-01-02"),
		EndDate:   monday.AddDate(0, 0, 4).Format("2006-01-02"),
	}); err != nil {
		t.Fatalf("first exception: %v", err)
	}
	_, err := f.service.AddException(ctx, ongID, application.AddExceptionRequest{
		Type:      "special_hours",
		StartDate: monday.AddDate(0, 0, 2).Format("2006-01-02"),
		EndDate:   monday.AddDate(0, 0, 6).Format("2006-01-02"),
		OpenTime:  "10:00", CloseTime: "12:00",
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("overlapping exception must conflict, got %v", err)
	}
}

func TestAppointmentSettingsDefaults(t *testing.T) {
	t.Parallel()
	f := newFixture()
	ctx := context.Background()

	ong, _ := f.registerOng(ctx, "PT")
	ongID := uuid.MustParse(ong.OngID)

	settings, err := f.service.GetAppointmentSettings(ctx, ongID)
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	if settings.VisitDurationMinutes != 60 || settings.MaxConcurrentVisits != 1 ||
		settings.MinAdvanceHours != 24 || settings.MaxAdvanceDays != 30 ||
		settings.SlotIntervalMinutes != 30 || settings.AllowWeekendBookings {
		t.Fatalf("unexpected defaults: %+v", settings)
	}

	if _, err := f.service.PutAppointmentSettings(ctx, ongID, application.PutSettingsRequest{
		VisitDurationMinutes: 0, MaxConcurrentVisits: 1, MaxAdvanceDays: 30, SlotIntervalMinutes: 30,
	}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("zero duration must fail, got %v", err)
	}
}
