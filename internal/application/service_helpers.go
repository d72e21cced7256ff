package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/adotaqui/platform-service/internal/domain"
	"github.com/adotaqui/platform-service/internal/ports"
)

func hashRequest(v any) string {
	raw, _ := json.Marshal(v)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

func (s *Service) reserveIdempotency(ctx context.Context, key string, request any) error {
	if key == "" {
		return nil
	}
	err := s.idempotency.Reserve(ctx, key, hashRequest(request), s.nowFn().Add(s.cfg.IdempotencyTTL))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIdempotencyConflict, err)
	}
	return nil
}

func (s *Service) enqueueEvent(ctx context.Context, eventType, partitionKey string, data any) error {
	occurredAt := s.nowFn()
	envelope := map[string]any{
		"event_id":       uuid.NewString(),
		"event_type":     eventType,
		"occurred_at":    occurredAt.Format(time.RFC3339),
		"source_service": s.cfg.ServiceName,
		"partition_key":  partitionKey,
		"data":           data,
	}
	payload, _ := json.Marshal(envelope)
	return s.outbox.Enqueue(ctx, ports.OutboxEvent{
		EventID:      uuid.New(),
		EventType:    eventType,
		PartitionKey: partitionKey,
		Payload:      payload,
		OccurredAt:   occurredAt,
	})
}

func parseMinute(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	t, err := time.Parse("15:04", v)
	if err != nil {
		return 0, fmt.Errorf("%w: time must be HH:MM", domain.ErrInvalidInput)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatMinute(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

func parseDate(v string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrInvalidInput)
	}
	return d.UTC(), nil
}

func cacheKeyConfig(ongID uuid.UUID) string {
	return "platform:payment-config:" + ongID.String()
}

func cacheKeyAvailability(ongID uuid.UUID, from, to string) string {
	return "platform:availability:" + ongID.String() + ":" + from + ":" + to
}
