package application

import (
	"time"

	"github.com/adotaqui/platform-service/internal/ports"
)

type Service struct {
	cfg          Config
	ongs         ports.OngRepository
	pets         ports.PetRepository
	configs      ports.PaymentConfigRepository
	donations    ports.DonationRepository
	hours        ports.OperatingHoursRepository
	exceptions   ports.AvailabilityExceptionRepository
	settings     ports.AppointmentSettingsRepository
	appointments ports.AppointmentRepository
	outbox       ports.OutboxRepository
	idempotency  ports.IdempotencyRepository
	cache        ports.Cache
	verifier     ports.TokenVerifier
	nowFn        func() time.Time
}

type Dependencies struct {
	Config       Config
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
	Cache        ports.Cache
	Verifier     ports.TokenVerifier
}

func NewService(deps Dependencies) *Service {
	cfg := deps.Config
	if cfg.ServiceName == "" {
		cfg.ServiceName = "adotaqui-platform"
	}
	if cfg.MultibancoEntity == "" {
		cfg.MultibancoEntity = "11604"
	}
	if cfg.PixMerchantCity == "" {
		cfg.PixMerchantCity = "SAO PAULO"
	}
	if cfg.MBWayExpiry <= 0 {
		cfg.MBWayExpiry = 10 * time.Minute
	}
	if cfg.PixExpiry <= 0 {
		cfg.PixExpiry = 30 * time.Minute
	}
	if cfg.MultibancoExpiry <= 0 {
		cfg.MultibancoExpiry = 3 * 24 * time.Hour
	}
	if cfg.BoletoExpiry <= 0 {
		cfg.BoletoExpiry = 3 * 24 * time.Hour
	}
	if cfg.ConfigCacheTTL <= 0 {
		cfg.ConfigCacheTTL = 5 * time.Minute
	}
	if cfg.AvailabilityCacheTTL <= 0 {
		cfg.AvailabilityCacheTTL = time.Minute
	}
	if cfg.IdempotencyTTL <= 0 {
		cfg.IdempotencyTTL = 7 * 24 * time.Hour
	}
	if cfg.MaxAvailabilityRangeDays <= 0 {
		cfg.MaxAvailabilityRangeDays = 60
	}

	return &Service{
		cfg:          cfg,
		ongs:         deps.Ongs,
		pets:         deps.Pets,
		configs:      deps.Configs,
		donations:    deps.Donations,
		hours:        deps.Hours,
		exceptions:   deps.Exceptions,
		settings:     deps.Settings,
		appointments: deps.Appointments,
		outbox:       deps.Outbox,
		idempotency:  deps.Idempotency,
		cache:        deps.Cache,
		verifier:     deps.Verifier,
		nowFn:        func() time.Time { return time.Now().UTC() },
	}
}

// ValidateToken is used by the HTTP auth middleware.
func (s *Service) ValidateToken(raw string) (ports.AuthClaims, error) {
	return s.verifier.ParseAndValidate(raw)
}
