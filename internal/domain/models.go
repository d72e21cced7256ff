package domain

import (
	"time"

	"github.com/google/uuid"
)

type PaymentMethod string

const (
	MethodMBWay        PaymentMethod = "mbway"
	MethodMultibanco   PaymentMethod = "multibanco"
	MethodPix          PaymentMethod = "pix"
	MethodBoleto       PaymentMethod = "boleto"
	MethodBankTransfer PaymentMethod = "bank_transfer"
)

type PixKeyType string

const (
	PixKeyCPF    PixKeyType = "cpf"
	PixKeyCNPJ   PixKeyType = "cnpj"
	PixKeyEmail  PixKeyType = "email"
	PixKeyPhone  PixKeyType = "phone"
	PixKeyRandom PixKeyType = "random"
)

type DonationStatus string

const (
	DonationPendingConfirmation DonationStatus = "pending_confirmation"
	DonationConfirmed           DonationStatus = "confirmed"
	DonationExpired             DonationStatus = "expired"
	DonationCancelled           DonationStatus = "cancelled"
)

type AppointmentStatus string

const (
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

type ExceptionType string

const (
	ExceptionClosure      ExceptionType = "closure"
	ExceptionSpecialHours ExceptionType = "special_hours"
)

type Ong struct {
	OngID     uuid.UUID
	Name      string
	Country   string
	City      string
	Email     string
	Phone     string
	About     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Pet struct {
	PetID       uuid.UUID
	OngID       uuid.UUID
	Name        string
	Species     string
	Breed       string
	AgeMonths   int
	Size        string
	Description string
	Adopted     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PaymentConfig holds the sparse, country-gated donation rails of one ONG.
// Fields outside the ONG's country are never populated; Configured is a
// cached flag recomputed from the raw fields on every write.
type PaymentConfig struct {
	ConfigID          uuid.UUID
	OngID             uuid.UUID
	Country           string
	MBWayPhone        string
	IBAN              string
	MultibancoEntity  string
	PixKey            string
	PixKeyType        PixKeyType
	BankName          string
	BankRoutingNumber string
	BankAccountNumber string
	Configured        bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// PaymentInstructions is the method-specific payload snapshotted onto a
// donation at creation time. Exactly one method block is populated.
type PaymentInstructions struct {
	Method            PaymentMethod
	AmountCents       int64
	Currency          string
	ExpiresAt         *time.Time
	MBWayPhone        string
	Entity            string
	Reference         string
	PixKey            string
	PixPayload        string
	BoletoURL         string
	BoletoBarcode     string
	BankName          string
	BankRoutingNumber string
	BankAccountNumber string
	IBAN              string
	Steps             []string
}

type Donation struct {
	DonationID   uuid.UUID
	OngID        uuid.UUID
	DonorName    string
	DonorEmail   string
	AmountCents  int64
	Currency     string
	Method       PaymentMethod
	Status       DonationStatus
	Instructions PaymentInstructions
	CreatedAt    time.Time
	ConfirmedAt  *time.Time
}

// OperatingHours is the weekly default for one weekday (0=Sunday .. 6=Saturday).
// Times are minutes from midnight; a zero lunch interval means no break.
type OperatingHours struct {
	HoursID       uuid.UUID
	OngID         uuid.UUID
	Weekday       int
	Open          bool
	OpenMinute    int
	CloseMinute   int
	LunchStartMin int
	LunchEndMin   int
}

type AvailabilityException struct {
	ExceptionID   uuid.UUID
	OngID         uuid.UUID
	Type          ExceptionType
	StartDate     time.Time
	EndDate       time.Time
	OpenMinute    int
	CloseMinute   int
	LunchStartMin int
	LunchEndMin   int
	Reason        string
	CreatedAt     time.Time
}

type AppointmentSettings struct {
	SettingsID           uuid.UUID
	OngID                uuid.UUID
	VisitDurationMin     int
	MaxConcurrentVisits  int
	MinAdvanceHours      int
	MaxAdvanceDays       int
	SlotIntervalMin      int
	AllowWeekendBookings bool
	UpdatedAt            time.Time
}

type Appointment struct {
	AppointmentID uuid.UUID
	OngID         uuid.UUID
	PetID         *uuid.UUID
	VisitorName   string
	VisitorEmail  string
	StartsAt      time.Time
	EndsAt        time.Time
	Status        AppointmentStatus
	CreatedAt     time.Time
}

type TimeSlot struct {
	Start time.Time
	End   time.Time
}
