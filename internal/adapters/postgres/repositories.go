package postgres

import (
	"gorm.io/gorm"

	"github.com/adotaqui/platform-service/internal/ports"
)

type Repositories struct {
	Ongs         ports.OngRepository
	Pets         ports.PetRepository
	Configs      ports.PaymentConfigRepository
	Donations    ports.DonationRepository
	Hours        ports.OperatingHoursRepository
	Exceptions   ports.AvailabilityExceptionRepository
	Settings     ports.AppointmentSettingsRepository
	Appointments ports.AppointmentRepository
	Outbox       ports.OutboxRepository
	Idempotency  ports.IdempotencyRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Ongs:         &ongRepository{db: db},
		Pets:         &petRepository{db: db},
		Configs:      &paymentConfigRepository{db: db},
		Donations:    &donationRepository{db: db},
		Hours:        &operatingHoursRepository{db: db},
		Exceptions:   &availabilityExceptionRepository{db: db},
		Settings:     &appointmentSettingsRepository{db: db},
		Appointments: &appointmentRepository{db: db},
		Outbox:       &outboxRepository{db: db},
		Idempotency:  &idempotencyRepository{db: db},
	}
}
