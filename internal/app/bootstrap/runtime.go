package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/adotaqui/platform-service/internal/adapters/cache"
	eventadapter "github.com/adotaqui/platform-service/internal/adapters/events"
	httpadapter "github.com/adotaqui/platform-service/internal/adapters/http"
	"github.com/adotaqui/platform-service/internal/adapters/postgres"
	"github.com/adotaqui/platform-service/internal/adapters/security"
	"github.com/adotaqui/platform-service/internal/application"
	"github.com/adotaqui/platform-service/internal/ports"
)

type Runtime struct {
	cfg        Config
	logger     *slog.Logger
	httpServer *http.Server
	grpcServer *grpc.Server
	grpcLis    net.Listener
	outbox     *eventadapter.OutboxWorker
	cleanupFn  func(context.Context)
}

func NewRuntime(ctx context.Context, configPath string) (*Runtime, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})).With("service", cfg.ServiceID)
	slog.SetDefault(logger)

	db, err := postgres.Connect(ctx, cfg.DatabaseURL, cfg.MaxDBConns)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := postgres.RunMigrations(ctx, db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	redisClient, err := cache.Connect(ctx, cfg.RedisURL)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	cacheStore := cache.NewRedisCache(redisClient)

	var verifier ports.TokenVerifier
	if cfg.AuthPublicKeyPEM != "" {
		verifier, err = security.NewJWTVerifier(cfg.AuthPublicKeyPEM)
		if err != nil {
			_ = redisClient.Close()
			_ = sqlDB.Close()
			return nil, err
		}
	} else {
		// no identity service configured; mint an in-process keypair so
		// local runs can still exercise the admin surface
		signer, signErr := security.NewEphemeralJWTSigner()
		if signErr != nil {
			_ = redisClient.Close()
			_ = sqlDB.Close()
			return nil, signErr
		}
		verifier = signer.Verifier
		logger.WarnContext(ctx, "using ephemeral jwt keypair, admin tokens will not survive restarts")
	}

	repos := postgres.NewRepositories(db)
	service := application.NewService(application.Dependencies{
		Config: application.Config{
			ServiceName:              cfg.ServiceID,
			MultibancoEntity:         cfg.MultibancoEntity,
			PixMerchantCity:          cfg.PixMerchantCity,
			MBWayExpiry:              cfg.MBWayExpiry,
			PixExpiry:                cfg.PixExpiry,
			MultibancoExpiry:         cfg.MultibancoExpiry,
			BoletoExpiry:             cfg.BoletoExpiry,
			ConfigCacheTTL:           cfg.ConfigCacheTTL,
			AvailabilityCacheTTL:     cfg.AvailabilityCacheTTL,
			IdempotencyTTL:           cfg.IdempotencyTTL,
			MaxAvailabilityRangeDays: cfg.MaxAvailabilityRangeDays,
		},
		Ongs:         repos.Ongs,
		Pets:         repos.Pets,
		Configs:      repos.Configs,
		Donations:    repos.Donations,
		Hours:        repos.Hours,
		Exceptions:   repos.Exceptions,
		Settings:     repos.Settings,
		Appointments: repos.Appointments,
		Outbox:       repos.Outbox,
		Idempotency:  repos.Idempotency,
		Cache:        cacheStore,
		Verifier:     verifier,
	})

	handler := httpadapter.NewHandler(service)
	router := httpadapter.NewRouter(handler, logger)
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	grpcServer := grpc.NewServer()
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		_ = redisClient.Close()
		_ = sqlDB.Close()
		return nil, err
	}

	publisher := ports.EventPublisher(eventadapter.NewLoggingPublisher(logger))
	var closers []io.Closer
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, pubErr := eventadapter.NewKafkaPublisher(cfg.KafkaBrokers, map[string]string{
			"donation.created":           cfg.KafkaTopicDonations,
			"donation.confirmed":         cfg.KafkaTopicDonations,
			"appointment.booked":         cfg.KafkaTopicAppointments,
			"ong.registered":             cfg.KafkaTopicOngs,
			"ong.payment_config_updated": cfg.KafkaTopicOngs,
		})
		if pubErr != nil {
			logger.WarnContext(ctx, "kafka publisher disabled, using logging publisher", "error", pubErr)
		} else {
			publisher = kafkaPublisher
			closers = append(closers, kafkaPublisher)
		}
	}
	outbox := eventadapter.NewOutboxWorker(logger, repos.Outbox, publisher, cfg.OutboxPollInterval, cfg.OutboxBatchSize)

	return &Runtime{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpServer,
		grpcServer: grpcServer,
		grpcLis:    lis,
		outbox:     outbox,
		cleanupFn: func(ctx context.Context) {
			for _, closer := range closers {
				_ = closer.Close()
			}
			_ = redisClient.Close()
			_ = sqlDB.Close()
		},
	}, nil
}

func (r *Runtime) RunAPI(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	errCh := make(chan error, 2)

	go func() {
		if err := r.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	go func() {
		if err := r.grpcServer.Serve(r.grpcLis); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		r.logger.ErrorContext(ctx, "runtime failure", "error", err)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = r.httpServer.Shutdown(shutdownCtx)
	r.grpcServer.GracefulStop()
	r.cleanupFn(shutdownCtx)
	return nil
}

func (r *Runtime) RunWorker(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	errCh := make(chan error, 1)

	go func() {
		if err := r.outbox.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		r.cleanupFn(context.Background())
		return nil
	case err := <-errCh:
		r.cleanupFn(context.Background())
		return err
	}
}
