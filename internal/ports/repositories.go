package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/adotaqui/platform-service/internal/domain"
)

type CreateOngParams struct {
	Name      string
	Country   string
	City      string
	Email     string
	Phone     string
	About     string
	CreatedAt time.Time
}

type OngRepository interface {
	Create(ctx context.Context, params CreateOngParams) (domain.Ong, error)
	GetByID(ctx context.Context, ongID uuid.UUID) (domain.Ong, error)
	List(ctx context.Context, limit, offset int) ([]domain.Ong, error)
}

type CreatePetParams struct {
	OngID       uuid.UUID
	Name        string
	Species     string
	Breed       string
	AgeMonths   int
	Size        string
	Description string
	CreatedAt   time.Time
}

type PetRepository interface {
	Create(ctx context.Context, params CreatePetParams) (domain.Pet, error)
	GetByID(ctx context.Context, petID uuid.UUID) (domain.Pet, error)
	ListByOng(ctx context.Context, ongID uuid.UUID, includeAdopted bool) ([]domain.Pet, error)
	MarkAdopted(ctx context.Context, petID uuid.UUID, adoptedAt time.Time) error
}

// UpsertPaymentConfigParams carries the validated sparse fields; the
// repository persists the row and the recomputed configured flag atomically.
type UpsertPaymentConfigParams struct {
	OngID             uuid.UUID
	Country           string
	MBWayPhone        string
	IBAN              string
	MultibancoEntity  string
	PixKey            string
	PixKeyType        string
	BankName          string
	BankRoutingNumber string
	BankAccountNumber string
	Configured        bool
	Now               time.Time
}

type PaymentConfigRepository interface {
	GetByOngID(ctx context.Context, ongID uuid.UUID) (domain.PaymentConfig, error)
	Upsert(ctx context.Context, params UpsertPaymentConfigParams) (domain.PaymentConfig, error)
}

// DonationRepository.NextMultibancoReference hands out the monotonic sequence
// number backing Multibanco references, so two donations never share one.
type DonationRepository interface {
	Create(ctx context.Context, donation domain.Donation) (domain.Donation, error)
	GetByID(ctx context.Context, donationID uuid.UUID) (domain.Donation, error)
	UpdateStatus(ctx context.Context, donationID uuid.UUID, status domain.DonationStatus, at time.Time) error
	ListByOng(ctx context.Context, ongID uuid.UUID, limit, offset int) ([]domain.Donation, error)
	NextMultibancoReference(ctx context.Context) (uint64, error)
}

type OperatingHoursRepository interface {
	ReplaceWeek(ctx context.Context, ongID uuid.UUID, week []domain.OperatingHours) error
	ListByOng(ctx context.Context, ongID uuid.UUID) ([]domain.OperatingHours, error)
}

type AvailabilityExceptionRepository interface {
	ListOverlapping(ctx context.Context, ongID uuid.UUID, from, to time.Time) ([]domain.AvailabilityException, error)
	Create(ctx context.Context, exception domain.AvailabilityException) (domain.AvailabilityException, error)
	Delete(ctx context.Context, ongID, exceptionID uuid.UUID) error
}

type AppointmentSettingsRepository interface {
	GetByOngID(ctx context.Context, ongID uuid.UUID) (domain.AppointmentSettings, error)
	Upsert(ctx context.Context, settings domain.AppointmentSettings) (domain.AppointmentSettings, error)
}

// AppointmentRepository.CreateIfCapacity must re-check the overlapping
// confirmed-visit count inside a transaction (row-locked) so two donors
// cannot race into the last concurrent slot; at capacity it returns
// domain.ErrConflict.
type AppointmentRepository interface {
	CreateIfCapacity(ctx context.Context, appointment domain.Appointment, maxConcurrent int) (domain.Appointment, error)
	ListConfirmedInRange(ctx context.Context, ongID uuid.UUID, from, to time.Time) ([]domain.Appointment, error)
	Cancel(ctx context.Context, ongID, appointmentID uuid.UUID, at time.Time) error
}

type OutboxEvent struct {
	EventID      uuid.UUID
	EventType    string
	PartitionKey string
	Payload      []byte
	OccurredAt   time.Time
}

type OutboxRecord struct {
	OutboxID     uuid.UUID
	EventType    string
	PartitionKey string
	Payload      []byte
	RetryCount   int
	PublishedAt  *time.Time
	LastError    *string
	FirstSeenAt  time.Time
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, event OutboxEvent) error
	FetchUnpublished(ctx context.Context, limit int) ([]OutboxRecord, error)
	MarkPublished(ctx context.Context, outboxID uuid.UUID, at time.Time) error
	MarkFailed(ctx context.Context, outboxID uuid.UUID, errMsg string, at time.Time) error
}

type IdempotencyRepository interface {
	Reserve(ctx context.Context, key, requestHash string, expiresAt time.Time) error
}
