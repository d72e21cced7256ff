package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ServiceID string

	HTTPPort int
	GRPCPort int

	DatabaseURL  string
	RedisURL     string
	KafkaBrokers []string

	MaxDBConns int32

	AuthPublicKeyPEM string

	KafkaTopicDonations    string
	KafkaTopicAppointments string
	KafkaTopicOngs         string

	OutboxPollInterval time.Duration
	OutboxBatchSize    int

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

type configFile struct {
	Service struct {
		ID       string `yaml:"id"`
		HTTPPort int    `yaml:"http_port"`
		GRPCPort int    `yaml:"grpc_port"`
	} `yaml:"service"`
	Dependencies struct {
		PostgresURL            string   `yaml:"postgres_url"`
		RedisURL               string   `yaml:"redis_url"`
		KafkaBrokers           []string `yaml:"kafka_brokers"`
		KafkaTopicDonations    string   `yaml:"kafka_topic_donations"`
		KafkaTopicAppointments string   `yaml:"kafka_topic_appointments"`
		KafkaTopicOngs         string   `yaml:"kafka_topic_ongs"`
		AuthPublicKeyPEM       string   `yaml:"auth_public_key_pem"`
	} `yaml:"dependencies"`
	Payments struct {
		MultibancoEntity string `yaml:"multibanco_entity"`
		PixMerchantCity  string `yaml:"pix_merchant_city"`
	} `yaml:"payments"`
}

func LoadConfig(path string) (Config, error) {
	cfg := Config{
		ServiceID:                "adotaqui-platform",
		HTTPPort:                 8080,
		GRPCPort:                 9090,
		MaxDBConns:               20,
		KafkaTopicDonations:      "platform.donations",
		KafkaTopicAppointments:   "platform.appointments",
		KafkaTopicOngs:           "platform.ongs",
		OutboxPollInterval:       2 * time.Second,
		OutboxBatchSize:          100,
		MultibancoEntity:         "11604",
		PixMerchantCity:          "SAO PAULO",
		MBWayExpiry:              10 * time.Minute,
		PixExpiry:                30 * time.Minute,
		MultibancoExpiry:         3 * 24 * time.Hour,
		BoletoExpiry:             3 * 24 * time.Hour,
		ConfigCacheTTL:           5 * time.Minute,
		AvailabilityCacheTTL:     time.Minute,
		IdempotencyTTL:           7 * 24 * time.Hour,
		MaxAvailabilityRangeDays: 60,
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		var f configFile
		if unmarshalErr := yaml.Unmarshal(raw, &f); unmarshalErr != nil {
			return Config{}, fmt.Errorf("parse config file: %w", unmarshalErr)
		}
		if f.Service.ID != "" {
			cfg.ServiceID = f.Service.ID
		}
		if f.Service.HTTPPort > 0 {
			cfg.HTTPPort = f.Service.HTTPPort
		}
		if f.Service.GRPCPort > 0 {
			cfg.GRPCPort = f.Service.GRPCPort
		}
		if f.Dependencies.PostgresURL != "" {
			cfg.DatabaseURL = f.Dependencies.PostgresURL
		}
		if f.Dependencies.RedisURL != "" {
			cfg.RedisURL = f.Dependencies.RedisURL
		}
		if len(f.Dependencies.KafkaBrokers) > 0 {
			cfg.KafkaBrokers = trimNonEmpty(f.Dependencies.KafkaBrokers)
		}
		if f.Dependencies.KafkaTopicDonations != "" {
			cfg.KafkaTopicDonations = f.Dependencies.KafkaTopicDonations
		}
		if f.Dependencies.KafkaTopicAppointments != "" {
			cfg.KafkaTopicAppointments = f.Dependencies.KafkaTopicAppointments
		}
		if f.Dependencies.KafkaTopicOngs != "" {
			cfg.KafkaTopicOngs = f.Dependencies.KafkaTopicOngs
		}
		if f.Dependencies.AuthPublicKeyPEM != "" {
			cfg.AuthPublicKeyPEM = f.Dependencies.AuthPublicKeyPEM
		}
		if f.Payments.MultibancoEntity != "" {
			cfg.MultibancoEntity = f.Payments.MultibancoEntity
		}
		if f.Payments.PixMerchantCity != "" {
			cfg.PixMerchantCity = f.Payments.PixMerchantCity
		}
	}

	cfg.DatabaseURL = envOrDefault("DB_URL", envOrDefault("POSTGRES_URL", cfg.DatabaseURL))
	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.KafkaBrokers = envCSV("KAFKA_BROKERS", cfg.KafkaBrokers)
	cfg.KafkaTopicDonations = envOrDefault("KAFKA_TOPIC_DONATIONS", cfg.KafkaTopicDonations)
	cfg.KafkaTopicAppointments = envOrDefault("KAFKA_TOPIC_APPOINTMENTS", cfg.KafkaTopicAppointments)
	cfg.KafkaTopicOngs = envOrDefault("KAFKA_TOPIC_ONGS", cfg.KafkaTopicOngs)
	cfg.AuthPublicKeyPEM = envOrDefault("AUTH_PUBLIC_KEY_PEM", cfg.AuthPublicKeyPEM)
	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.GRPCPort = envInt("GRPC_PORT", cfg.GRPCPort)
	cfg.MaxDBConns = int32(envInt("DB_MAX_CONNS", int(cfg.MaxDBConns)))
	cfg.OutboxPollInterval = time.Duration(envInt("OUTBOX_POLL_SECONDS", int(cfg.OutboxPollInterval.Seconds()))) * time.Second
	cfg.OutboxBatchSize = envInt("OUTBOX_BATCH_SIZE", cfg.OutboxBatchSize)
	cfg.MultibancoEntity = envOrDefault("MULTIBANCO_ENTITY", cfg.MultibancoEntity)
	cfg.PixMerchantCity = envOrDefault("PIX_MERCHANT_CITY", cfg.PixMerchantCity)
	cfg.MBWayExpiry = time.Duration(envInt("MBWAY_EXPIRY_MINUTES", int(cfg.MBWayExpiry.Minutes()))) * time.Minute
	cfg.PixExpiry = time.Duration(envInt("PIX_EXPIRY_MINUTES", int(cfg.PixExpiry.Minutes()))) * time.Minute
	cfg.MultibancoExpiry = time.Duration(envInt("MULTIBANCO_EXPIRY_HOURS", int(cfg.MultibancoExpiry.Hours()))) * time.Hour
	cfg.BoletoExpiry = time.Duration(envInt("BOLETO_EXPIRY_HOURS", int(cfg.BoletoExpiry.Hours()))) * time.Hour
	cfg.ConfigCacheTTL = time.Duration(envInt("CONFIG_CACHE_SECONDS", int(cfg.ConfigCacheTTL.Seconds()))) * time.Second
	cfg.AvailabilityCacheTTL = time.Duration(envInt("AVAILABILITY_CACHE_SECONDS", int(cfg.AvailabilityCacheTTL.Seconds()))) * time.Second
	cfg.IdempotencyTTL = time.Duration(envInt("IDEMPOTENCY_TTL_HOURS", int(cfg.IdempotencyTTL.Hours()))) * time.Hour
	cfg.MaxAvailabilityRangeDays = envInt("MAX_AVAILABILITY_RANGE_DAYS", cfg.MaxAvailabilityRangeDays)

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("missing DB_URL/POSTGRES_URL")
	}
	if cfg.RedisURL == "" {
		return Config{}, fmt.Errorf("missing REDIS_URL")
	}
	return cfg, nil
}

func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envCSV(name string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	items := strings.Split(raw, ",")
	return trimNonEmpty(items)
}

func trimNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
