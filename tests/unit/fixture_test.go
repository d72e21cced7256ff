package unit

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/adotaqui/platform-service/internal/application"
	"github.com/adotaqui/platform-service/internal/domain"
	"github.com/adotaqui/platform-service/internal/ports"
)

type fixture struct {
	service      *application.Service
	ongs         *fakeOngs
	pets         *fakePets
	configs      *fakeConfigs
	donations    *fakeDonations
	hours        *fakeHours
	exceptions   *fakeExceptions
	settings     *fakeSettings
	appointments *fakeAppointments
	outbox       *fakeOutbox
	cache        *fakeCache
}

func newFixture() *fixture {
	return newFixtureWithConfig(application.Config{})
}

func newFixtureWithConfig(cfg application.Config) *fixture {
	f := &fixture{
		ongs:         &fakeOngs{byID: map[uuid.UUID]domain.Ong{}},
		pets:         &fakePets{byID: map[uuid.UUID]domain.Pet{}},
		configs:      &fakeConfigs{byOng: map[uuid.UUID]domain.PaymentConfig{}},
		donations:    &fakeDonations{byID: map[uuid.UUID]domain.Donation{}},
		hours:        &fakeHours{byOng: map[uuid.UUID][]domain.OperatingHours{}},
		exceptions:   &fakeExceptions{byID: map[uuid.UUID]domain.AvailabilityException{}},
		settings:     &fakeSettings{byOng: map[uuid.UUID]domain.AppointmentSettings{}},
		appointments: &fakeAppointments{byID: map[uuid.UUID]domain.Appointment{}},
		outbox:       &fakeOutbox{},
		cache:        &fakeCache{values: map[string]string{}},
	}
	f.service = application.NewService(application.Dependencies{
		Config:       cfg,
		Ongs:         f.ongs,
		Pets:         f.pets,
		Configs:      f.configs,
		Donations:    f.donations,
		Hours:        f.hours,
		Exceptions:   f.exceptions,
		Settings:     f.settings,
		Appointments: f.appointments,
		Outbox:       f.outbox,
		Idempotency:  &fakeIdempotency{keys: map[string]string{}},
		Cache:        f.cache,
		Verifier:     &fakeVerifier{},
	})
	return f
}

// registerOng seeds an ONG directly through the service.
func (f *fixture) registerOng(ctx context.Context, country string) (application.OngResponse, error) {
	return f.service.RegisterOng(ctx, application.RegisterOngRequest{
		Name:    "Abrigo Patinhas",
		Country: country,
		City:    "Lisboa",
		Email:   uuid.NewString() + "@example.org",
	}, "")
}

type fakeOngs struct {
	mu   sync.Mutex
	byID map[uuid.UUID]domain.Ong
}

func (f *fakeOngs) Create(_ context.Context, params ports.CreateOngParams) (domain.Ong, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ong := domain.Ong{
		OngID:     uuid.New(),
		Name:      params.Name,
		Country:   params.Country,
		City:      params.City,
		Email:     params.Email,
		Phone:     params.Phone,
		About:     params.About,
		Active:    true,
		CreatedAt: params.CreatedAt,
		UpdatedAt: params.CreatedAt,
	}
	f.byID[ong.OngID] = ong
	return ong, nil
}

func (f *fakeOngs) GetByID(_ context.Context, ongID uuid.UUID) (domain.Ong, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ong, ok := f.byID[ongID]
	if !ok {
		return domain.Ong{}, domain.ErrNotFound
	}
	return ong, nil
}

func (f *fakeOngs) List(_ context.Context, limit, offset int) ([]domain.Ong, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Ong, 0, len(f.byID))
	for _, ong := range f.byID {
		out = append(out, ong)
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakePets struct {
	mu   sync.Mutex
	byID map[uuid.UUID]domain.Pet
}

func (f *fakePets) Create(_ context.Context, params ports.CreatePetParams) (domain.Pet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	pet := domain.Pet{
		PetID:       uuid.New(),
		OngID:       params.OngID,
		Name:        params.Name,
		Species:     params.Species,
		Breed:       params.Breed,
		AgeMonths:   params.AgeMonths,
		Size:        params.Size,
		Description: params.Description,
		CreatedAt:   params.CreatedAt,
	}
	f.byID[pet.PetID] = pet
	return pet, nil
}

func (f *fakePets) GetByID(_ context.Context, petID uuid.UUID) (domain.Pet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	pet, ok := f.byID[petID]
	if !ok {
		return domain.Pet{}, domain.ErrNotFound
	}
	return pet, nil
}

func (f *fakePets) ListByOng(_ context.Context, ongID uuid.UUID, includeAdopted bool) ([]domain.Pet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Pet
	for _, pet := range f.byID {
		if pet.OngID != ongID {
			continue
		}
		if pet.Adopted && !includeAdopted {
			continue
		}
		out = append(out, pet)
	}
	return out, nil
}

func (f *fakePets) MarkAdopted(_ context.Context, petID uuid.UUID, adoptedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	pet, ok := f.byID[petID]
	if !ok {
		return domain.ErrNotFound
	}
	pet.Adopted = true
	pet.UpdatedAt = adoptedAt
	f.byID[petID] = pet
	return nil
}

type fakeConfigs struct {
	mu    sync.Mutex
	byOng map[uuid.UUID]domain.PaymentConfig
}

func (f *fakeConfigs) GetByOngID(_ context.Context, ongID uuid.UUID) (domain.PaymentConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cfg, ok := f.byOng[ongID]
	if !ok {
		return domain.PaymentConfig{}, domain.ErrNotFound
	}
	return cfg, nil
}

func (f *fakeConfigs) Upsert(_ context.Context, params ports.UpsertPaymentConfigParams) (domain.PaymentConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cfg, ok := f.byOng[params.OngID]
	if !ok {
		cfg = domain.PaymentConfig{ConfigID: uuid.New(), OngID: params.OngID, CreatedAt: params.Now}
	}
	cfg.Country = params.Country
	cfg.MBWayPhone = params.MBWayPhone
	cfg.IBAN = params.IBAN
	cfg.MultibancoEntity = params.MultibancoEntity
	cfg.PixKey = params.PixKey
	cfg.PixKeyType = domain.PixKeyType(params.PixKeyType)
	cfg.BankName = params.BankName
	cfg.BankRoutingNumber = params.BankRoutingNumber
	cfg.BankAccountNumber = params.BankAccountNumber
	cfg.Configured = params.Configured
	cfg.UpdatedAt = params.Now
	f.byOng[params.OngID] = cfg
	return cfg, nil
}

type fakeDonations struct {
	mu   sync.Mutex
	byID map[uuid.UUID]domain.Donation
	seq  uint64
}

func (f *fakeDonations) Create(_ context.Context, donation domain.Donation) (domain.Donation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[donation.DonationID] = donation
	return donation, nil
}

func (f *fakeDonations) GetByID(_ context.Context, donationID uuid.UUID) (domain.Donation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	donation, ok := f.byID[donationID]
	if !ok {
		return domain.Donation{}, domain.ErrNotFound
	}
	return donation, nil
}

func (f *fakeDonations) UpdateStatus(_ context.Context, donationID uuid.UUID, status domain.DonationStatus, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	donation, ok := f.byID[donationID]
	if !ok {
		return domain.ErrNotFound
	}
	donation.Status = status
	if status == domain.DonationConfirmed {
		donation.ConfirmedAt = &at
	}
	f.byID[donationID] = donation
	return nil
}

func (f *fakeDonations) NextMultibancoReference(_ context.Context) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	return f.seq, nil
}

func (f *fakeDonations) ListByOng(_ context.Context, ongID uuid.UUID, limit, offset int) ([]domain.Donation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Donation
	for _, donation := range f.byID {
		if donation.OngID == ongID {
			out = append(out, donation)
		}
	}
	return out, nil
}

type fakeHours struct {
	mu    sync.Mutex
	byOng map[uuid.UUID][]domain.OperatingHours
}

func (f *fakeHours) ReplaceWeek(_ context.Context, ongID uuid.UUID, week []domain.OperatingHours) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := make([]domain.OperatingHours, len(week))
	copy(stored, week)
	f.byOng[ongID] = stored
	return nil
}

func (f *fakeHours) ListByOng(_ context.Context, ongID uuid.UUID) ([]domain.OperatingHours, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	week := f.byOng[ongID]
	out := make([]domain.OperatingHours, len(week))
	copy(out, week)
	return out, nil
}

type fakeExceptions struct {
	mu   sync.Mutex
	byID map[uuid.UUID]domain.AvailabilityException
}

func (f *fakeExceptions) ListOverlapping(_ context.Context, ongID uuid.UUID, from, to time.Time) ([]domain.AvailabilityException, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.AvailabilityException
	for _, e := range f.byID {
		if e.OngID == ongID && domain.DateRangesOverlap(e.StartDate, e.EndDate, from, to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeExceptions) Create(_ context.Context, exception domain.AvailabilityException) (domain.AvailabilityException, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[exception.ExceptionID] = exception
	return exception, nil
}

func (f *fakeExceptions) Delete(_ context.Context, ongID, exceptionID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.byID[exceptionID]
	if !ok || e.OngID != ongID {
		return domain.ErrNotFound
	}
	delete(f.byID, exceptionID)
	return nil
}

type fakeSettings struct {
	mu    sync.Mutex
	byOng map[uuid.UUID]domain.AppointmentSettings
}

func (f *fakeSettings) GetByOngID(_ context.Context, ongID uuid.UUID) (domain.AppointmentSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	settings, ok := f.byOng[ongID]
	if !ok {
		return domain.AppointmentSettings{}, domain.ErrNotFound
	}
	return settings, nil
}

func (f *fakeSettings) Upsert(_ context.Context, settings domain.AppointmentSettings) (domain.AppointmentSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if settings.SettingsID == uuid.Nil {
		settings.SettingsID = uuid.New()
	}
	f.byOng[settings.OngID] = settings
	return settings, nil
}

type fakeAppointments struct {
	mu   sync.Mutex
	byID map[uuid.UUID]domain.Appointment
}

func (f *fakeAppointments) CreateIfCapacity(_ context.Context, appointment domain.Appointment, maxConcurrent int) (domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, existing := range f.byID {
		if existing.OngID != appointment.OngID || existing.Status != domain.AppointmentConfirmed {
			continue
		}
		if domain.Overlaps(existing.StartsAt, existing.EndsAt, appointment.StartsAt, appointment.EndsAt) {
			count++
		}
	}
	if count >= maxConcurrent {
		return domain.Appointment{}, domain.ErrConflict
	}
	f.byID[appointment.AppointmentID] = appointment
	return appointment, nil
}

func (f *fakeAppointments) ListConfirmedInRange(_ context.Context, ongID uuid.UUID, from, to time.Time) ([]domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Appointment
	for _, a := range f.byID {
		if a.OngID == ongID && a.Status == domain.AppointmentConfirmed && domain.Overlaps(a.StartsAt, a.EndsAt, from, to) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointments) Cancel(_ context.Context, ongID, appointmentID uuid.UUID, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[appointmentID]
	if !ok || a.OngID != ongID {
		return domain.ErrNotFound
	}
	a.Status = domain.AppointmentCancelled
	f.byID[appointmentID] = a
	return nil
}

type fakeOutbox struct {
	mu     sync.Mutex
	events []ports.OutboxEvent
}

func (f *fakeOutbox) Enqueue(_ context.Context, event ports.OutboxEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakeOutbox) FetchUnpublished(_ context.Context, limit int) ([]ports.OutboxRecord, error) {
	return nil, nil
}

func (f *fakeOutbox) MarkPublished(_ context.Context, outboxID uuid.UUID, at time.Time) error {
	return nil
}

func (f *fakeOutbox) MarkFailed(_ context.Context, outboxID uuid.UUID, errMsg string, at time.Time) error {
	return nil
}

func (f *fakeOutbox) eventTypes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, event := range f.events {
		out = append(out, event.EventType)
	}
	return out
}

type fakeIdempotency struct {
	mu   sync.Mutex
	keys map[string]string
}

func (f *fakeIdempotency) Reserve(_ context.Context, key, requestHash string, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.keys[key]; ok {
		return errors.New("already reserved")
	}
	f.keys[key] = requestHash
	return nil
}

type fakeCache struct {
	mu     sync.Mutex
	values map[string]string
}

func (f *fakeCache) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[key], nil
}

func (f *fakeCache) Set(_ context.Context, key string, value string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	return nil
}

func (f *fakeCache) Delete(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

type fakeVerifier struct{}

func (f *fakeVerifier) ParseAndValidate(raw string) (ports.AuthClaims, error) {
	if raw == "" {
		return ports.AuthClaims{}, domain.ErrUnauthorized
	}
	return ports.AuthClaims{UserID: "test-user", OngID: raw, Role: "ong_admin"}, nil
}
