package postgres

import (
	"time"

	"github.com/google/uuid"
)

type ongModel struct {
	OngID     uuid.UUID `gorm:"column:ong_id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name"`
	Country   string    `gorm:"column:country"`
	City      string    `gorm:"column:city"`
	Email     string    `gorm:"column:email"`
	Phone     string    `gorm:"column:phone"`
	About     string    `gorm:"column:about"`
	Active    bool      `gorm:"column:active"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (ongModel) TableName() string { return "ongs" }

type petModel struct {
	PetID       uuid.UUID  `gorm:"column:pet_id;type:uuid;default:gen_random_uuid();primaryKey"`
	OngID       uuid.UUID  `gorm:"column:ong_id"`
	Name        string     `gorm:"column:name"`
	Species     string     `gorm:"column:species"`
	Breed       string     `gorm:"column:breed"`
	AgeMonths   int        `gorm:"column:age_months"`
	Size        string     `gorm:"column:size"`
	Description string     `gorm:"column:description"`
	Adopted     bool       `gorm:"column:adopted"`
	AdoptedAt   *time.Time `gorm:"column:adopted_at"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (petModel) TableName() string { return "pets" }

type paymentConfigModel struct {
	ConfigID          uuid.UUID `gorm:"column:config_id;type:uuid;default:gen_random_uuid();primaryKey"`
	OngID             uuid.UUID `gorm:"column:ong_id"`
	Country           string    `gorm:"column:country"`
	MBWayPhone        string    `gorm:"column:mbway_phone"`
	IBAN              string    `gorm:"column:iban"`
	MultibancoEntity  string    `gorm:"column:multibanco_entity"`
	PixKey            string    `gorm:"column:pix_key"`
	PixKeyType        string    `gorm:"column:pix_key_type"`
	BankName          string    `gorm:"column:bank_name"`
	BankRoutingNumber string    `gorm:"column:bank_routing_number"`
	BankAccountNumber string    `gorm:"column:bank_account_number"`
	Configured        bool      `gorm:"column:configured"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

func (paymentConfigModel) TableName() string { return "payment_configs" }

type donationModel struct {
	DonationID   uuid.UUID  `gorm:"column:donation_id;type:uuid;primaryKey"`
	OngID        uuid.UUID  `gorm:"column:ong_id"`
	DonorName    string     `gorm:"column:donor_name"`
	DonorEmail   string     `gorm:"column:donor_email"`
	AmountCents  int64      `gorm:"column:amount_cents"`
	Currency     string     `gorm:"column:currency"`
	Method       string     `gorm:"column:method"`
	Status       string     `gorm:"column:status"`
	Instructions string     `gorm:"column:instructions"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	ConfirmedAt  *time.Time `gorm:"column:confirmed_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (donationModel) TableName() string { return "donations" }

type operatingHoursModel struct {
	HoursID       uuid.UUID `gorm:"column:hours_id;type:uuid;default:gen_random_uuid();primaryKey"`
	OngID         uuid.UUID `gorm:"column:ong_id"`
	Weekday       int       `gorm:"column:weekday"`
	Open          bool      `gorm:"column:open"`
	OpenMinute    int       `gorm:"column:open_minute"`
	CloseMinute   int       `gorm:"column:close_minute"`
	LunchStartMin int       `gorm:"column:lunch_start_minute"`
	LunchEndMin   int       `gorm:"column:lunch_end_minute"`
}

func (operatingHoursModel) TableName() string { return "ong_operating_hours" }

type availabilityExceptionModel struct {
	ExceptionID   uuid.UUID `gorm:"column:exception_id;type:uuid;primaryKey"`
	OngID         uuid.UUID `gorm:"column:ong_id"`
	Type          string    `gorm:"column:exception_type"`
	StartDate     time.Time `gorm:"column:start_date"`
	EndDate       time.Time `gorm:"column:end_date"`
	OpenMinute    int       `gorm:"column:open_minute"`
	CloseMinute   int       `gorm:"column:close_minute"`
	LunchStartMin int       `gorm:"column:lunch_start_minute"`
	LunchEndMin   int       `gorm:"column:lunch_end_minute"`
	Reason        string    `gorm:"column:reason"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (availabilityExceptionModel) TableName() string { return "ong_availability_exceptions" }

type appointmentSettingsModel struct {
	SettingsID           uuid.UUID `gorm:"column:settings_id;type:uuid;default:gen_random_uuid();primaryKey"`
	OngID                uuid.UUID `gorm:"column:ong_id"`
	VisitDurationMin     int       `gorm:"column:visit_duration_minutes"`
	MaxConcurrentVisits  int       `gorm:"column:max_concurrent_visits"`
	MinAdvanceHours      int       `gorm:"column:min_advance_hours"`
	MaxAdvanceDays       int       `gorm:"column:max_advance_days"`
	SlotIntervalMin      int       `gorm:"column:slot_interval_minutes"`
	AllowWeekendBookings bool      `gorm:"column:allow_weekend_bookings"`
	UpdatedAt            time.Time `gorm:"column:updated_at"`
}

func (appointmentSettingsModel) TableName() string { return "appointment_settings" }

type appointmentModel struct {
	AppointmentID uuid.UUID  `gorm:"column:appointment_id;type:uuid;primaryKey"`
	OngID         uuid.UUID  `gorm:"column:ong_id"`
	PetID         *uuid.UUID `gorm:"column:pet_id"`
	VisitorName   string     `gorm:"column:visitor_name"`
	VisitorEmail  string     `gorm:"column:visitor_email"`
	StartsAt      time.Time  `gorm:"column:starts_at"`
	EndsAt        time.Time  `gorm:"column:ends_at"`
	Status        string     `gorm:"column:status"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (appointmentModel) TableName() string { return "appointments" }

type platformOutboxModel struct {
	OutboxID     uuid.UUID  `gorm:"column:outbox_id;type:uuid;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      string     `gorm:"column:payload"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	FirstSeenAt  time.Time  `gorm:"column:first_seen_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
	RetryCount   int        `gorm:"column:retry_count"`
	LastError    *string    `gorm:"column:last_error"`
	LastErrorAt  *time.Time `gorm:"column:last_error_at"`
}

func (platformOutboxModel) TableName() string { return "platform_outbox" }

type platformIdempotencyModel struct {
	IdempotencyKey string    `gorm:"column:idempotency_key;primaryKey"`
	RequestHash    string    `gorm:"column:request_hash"`
	ExpiresAt      time.Time `gorm:"column:expires_at"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (platformIdempotencyModel) TableName() string { return "platform_idempotency" }
