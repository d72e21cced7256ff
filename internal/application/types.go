package application

import (
	"time"
)

type Config struct {
	ServiceName              string
	MultibancoEntity         string
	PixMerchantCity          string
	MBWayExpiry              time.Duration
	PixExpiry                time.Duration
	MultibancoExpiry         time.Duration
	BoletoExpiry             time.Duration
	ConfigCacheTTL           time.Duration
	AvailabilityCacheTTL     time.Duration
	IdempotencyTTL           time.Duration
	MaxAvailabilityRangeDays int
}

type RegisterOngRequest struct {
	Name    string `json:"name"`
	Country string `json:"country"`
	City    string `json:"city"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	About   string `json:"about,omitempty"`
}

type OngResponse struct {
	OngID     string    `json:"ong_id"`
	Name      string    `json:"name"`
	Country   string    `json:"country"`
	City      string    `json:"city"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	About     string    `json:"about,omitempty"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
}

type AddPetRequest struct {
	Name        string `json:"name"`
	Species     string `json:"species"`
	Breed       string `json:"breed,omitempty"`
	AgeMonths   int    `json:"age_months,omitempty"`
	Size        string `json:"size,omitempty"`
	Description string `json:"description,omitempty"`
}

type PetResponse struct {
	PetID       string    `json:"pet_id"`
	OngID       string    `json:"ong_id"`
	Name        string    `json:"name"`
	Species     string    `json:"species"`
	Breed       string    `json:"breed,omitempty"`
	AgeMonths   int       `json:"age_months,omitempty"`
	Size        string    `json:"size,omitempty"`
	Description string    `json:"description,omitempty"`
	Adopted     bool      `json:"adopted"`
	CreatedAt   time.Time `json:"created_at"`
}

// PutPaymentConfigRequest is the sparse, country-gated config body. Country
// itself is never taken from the body: it comes from the ONG record.
type PutPaymentConfigRequest struct {
	MBWayPhone        string `json:"mbway_phone,omitempty"`
	IBAN              string `json:"iban,omitempty"`
	MultibancoEntity  string `json:"multibanco_entity,omitempty"`
	PixKey            string `json:"pix_key,omitempty"`
	PixKeyType        string `json:"pix_key_type,omitempty"`
	BankName          string `json:"bank_name,omitempty"`
	BankRoutingNumber string `json:"bank_routing_number,omitempty"`
	BankAccountNumber string `json:"bank_account_number,omitempty"`
}

type PaymentConfigResponse struct {
	OngID             string    `json:"ong_id"`
	Country           string    `json:"country"`
	MBWayPhone        string    `json:"mbway_phone,omitempty"`
	IBAN              string    `json:"iban,omitempty"`
	MultibancoEntity  string    `json:"multibanco_entity,omitempty"`
	PixKey            string    `json:"pix_key,omitempty"`
	PixKeyType        string    `json:"pix_key_type,omitempty"`
	BankName          string    `json:"bank_name,omitempty"`
	BankRoutingNumber string    `json:"bank_routing_number,omitempty"`
	BankAccountNumber string    `json:"bank_account_number,omitempty"`
	Configured        bool      `json:"configured"`
	Methods           []string  `json:"available_methods"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type CreateDonationRequest struct {
	OngID      string `json:"ong_id"`
	DonorName  string `json:"donor_name"`
	DonorEmail string `json:"donor_email"`
	Amount     string `json:"amount"`
	Method     string `json:"method"`
	// Boleto documents are emitted by an external issuer; when the caller
	// already has them they ride along and get snapshotted.
	BoletoURL     string `json:"boleto_url,omitempty"`
	BoletoBarcode string `json:"boleto_barcode,omitempty"`
}

type PaymentInstructionsView struct {
	Method            string     `json:"method"`
	Amount            string     `json:"amount"`
	Currency          string     `json:"currency"`
	ExpiresAt         *time.Time `json:"expires_at,omitempty"`
	MBWayPhone        string     `json:"mbway_phone,omitempty"`
	Entity            string     `json:"entity,omitempty"`
	Reference         string     `json:"reference,omitempty"`
	PixKey            string     `json:"pix_key,omitempty"`
	PixPayload        string     `json:"pix_copy_paste,omitempty"`
	BoletoURL         string     `json:"boleto_url,omitempty"`
	BoletoBarcode     string     `json:"boleto_barcode,omitempty"`
	BankName          string     `json:"bank_name,omitempty"`
	BankRoutingNumber string     `json:"bank_routing_number,omitempty"`
	BankAccountNumber string     `json:"bank_account_number,omitempty"`
	IBAN              string     `json:"iban,omitempty"`
	Steps             []string   `json:"steps,omitempty"`
}

type DonationResponse struct {
	DonationID   string                  `json:"donation_id"`
	OngID        string                  `json:"ong_id"`
	DonorName    string                  `json:"donor_name"`
	Amount       string                  `json:"amount"`
	Currency     string                  `json:"currency"`
	Method       string                  `json:"method"`
	Status       string                  `json:"status"`
	Instructions PaymentInstructionsView `json:"instructions"`
	CreatedAt    time.Time               `json:"created_at"`
	ConfirmedAt  *time.Time              `json:"confirmed_at,omitempty"`
}

type WeekdayHours struct {
	Weekday    int    `json:"weekday"`
	Open       bool   `json:"open"`
	OpenTime   string `json:"open_time,omitempty"`
	CloseTime  string `json:"close_time,omitempty"`
	LunchStart string `json:"lunch_start,omitempty"`
	LunchEnd   string `json:"lunch_end,omitempty"`
}

type PutOperatingHoursRequest struct {
	Week []WeekdayHours `json:"week"`
}

type AddExceptionRequest struct {
	Type       string `json:"type"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	OpenTime   string `json:"open_time,omitempty"`
	CloseTime  string `json:"close_time,omitempty"`
	LunchStart string `json:"lunch_start,omitempty"`
	LunchEnd   string `json:"lunch_end,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

type ExceptionResponse struct {
	ExceptionID string `json:"exception_id"`
	Type        string `json:"type"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Reason      string `json:"reason,omitempty"`
}

type PutSettingsRequest struct {
	VisitDurationMinutes int  `json:"visit_duration_minutes"`
	MaxConcurrentVisits  int  `json:"max_concurrent_visits"`
	MinAdvanceHours      int  `json:"min_advance_booking_hours"`
	MaxAdvanceDays       int  `json:"max_advance_booking_days"`
	SlotIntervalMinutes  int  `json:"slot_interval_minutes"`
	AllowWeekendBookings bool `json:"allow_weekend_bookings"`
}

type SettingsResponse struct {
	OngID                string `json:"ong_id"`
	VisitDurationMinutes int    `json:"visit_duration_minutes"`
	MaxConcurrentVisits  int    `json:"max_concurrent_visits"`
	MinAdvanceHours      int    `json:"min_advance_booking_hours"`
	MaxAdvanceDays       int    `json:"max_advance_booking_days"`
	SlotIntervalMinutes  int    `json:"slot_interval_minutes"`
	AllowWeekendBookings bool   `json:"allow_weekend_bookings"`
}

type SlotView struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type AvailabilityResponse struct {
	OngID string     `json:"ong_id"`
	From  string     `json:"from"`
	To    string     `json:"to"`
	Slots []SlotView `json:"slots"`
}

type BookAppointmentRequest struct {
	OngID        string `json:"ong_id"`
	PetID        string `json:"pet_id,omitempty"`
	VisitorName  string `json:"visitor_name"`
	VisitorEmail string `json:"visitor_email"`
	StartsAt     string `json:"starts_at"`
}

type AppointmentResponse struct {
	AppointmentID string    `json:"appointment_id"`
	OngID         string    `json:"ong_id"`
	PetID         string    `json:"pet_id,omitempty"`
	VisitorName   string    `json:"visitor_name"`
	StartsAt      time.Time `json:"starts_at"`
	EndsAt        time.Time `json:"ends_at"`
	Status        string    `json:"status"`
}
