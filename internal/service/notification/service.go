package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/zomujo/telemed-api/internal/model"
	"github.com/zomujo/telemed-api/internal/repository"
	"github.com/zomujo/telemed-api/pkg/messaging"
	"github.com/zomujo/telemed-api/pkg/metrics"
)

// BrokerChannel is the pub/sub channel carrying notifications published by
// other processes. The relay subscribes here so delivery works no matter
// which instance holds the recipient's stream.
const BrokerChannel = "notifications"

const subscriberBuffer = 16

// Service routes notifications to connected recipients and persists them for
// offline ones. Delivery is at most once per attempt; persisted rows are
// drained FIFO on the next connect.
type Service struct {
	repo    repository.NotificationRepository
	broker  messaging.Broker
	metrics *metrics.Metrics
	logger  zerolog.Logger

	mu      sync.RWMutex
	clients map[uuid.UUID]chan *model.NotificationPayload
}

func NewService(repo repository.NotificationRepository, broker messaging.Broker, m *metrics.Metrics, logger zerolog.Logger) *Service {
	return &Service{
		repo:    repo,
		broker:  broker,
		metrics: m,
		logger:  logger,
		clients: make(map[uuid.UUID]chan *model.NotificationPayload),
	}
}

// Connect registers a live stream for the user and returns the channel the
// handler should write frames from. The connect ack is queued first, then any
// notifications persisted while the user was offline, oldest first. Each
// drained row is deleted once queued. The channel is registered only after a
// successful drain, so a failed connect leaves the user offline and later
// sends keep persisting.
func (s *Service) Connect(ctx context.Context, userID uuid.UUID) (<-chan *model.NotificationPayload, error) {
	ch := make(chan *model.NotificationPayload, subscriberBuffer)
	ch <- &model.NotificationPayload{Message: "connected"}

	pending, err := s.repo.ListByReceiver(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending notifications: %w", err)
	}
drain:
	for _, n := range pending {
		select {
		case ch <- &n.ToNotify().Payload:
			if err := s.repo.Delete(ctx, n.ID); err != nil {
				s.logger.Error().Err(err).Str("notification_id", n.ID.String()).Msg("failed to delete drained notification")
			}
		default:
			// Subscriber buffer full; leave the rest persisted for next connect.
			break drain
		}
	}

	s.mu.Lock()
	if old, ok := s.clients[userID]; ok {
		close(old)
	}
	s.clients[userID] = ch
	s.mu.Unlock()
	s.metrics.LiveConnections.Inc()

	return ch, nil
}

// Disconnect tears down the user's stream if the given channel is still the
// registered one. A newer connection from the same user is left alone.
func (s *Service) Disconnect(userID uuid.UUID, ch <-chan *model.NotificationPayload) {
	s.mu.Lock()
	if current, ok := s.clients[userID]; ok && current == ch {
		delete(s.clients, userID)
		close(current)
	}
	s.mu.Unlock()
	s.metrics.LiveConnections.Dec()
}

// Send delivers the notification to the recipient's live stream if one is
// open, otherwise persists it for the next connect. The push stays under the
// read lock: teardown closes channels under the write lock, so a send can
// never hit a closed channel, and the push never blocks.
func (s *Service) Send(ctx context.Context, notify *model.Notify) error {
	delivered := false
	s.mu.RLock()
	if ch, connected := s.clients[notify.ReceiverID]; connected {
		select {
		case ch <- &notify.Payload:
			delivered = true
		default:
			// Slow consumer; fall through to persistence.
		}
	}
	s.mu.RUnlock()

	if delivered {
		s.metrics.NotificationsSent.WithLabelValues("live").Inc()
		return nil
	}

	n := &model.Notification{
		ID:         uuid.New(),
		ReceiverID: notify.ReceiverID,
		Topic:      notify.Payload.Topic,
		Message:    notify.Payload.Message,
		FromUser:   notify.Payload.From,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		s.metrics.NotificationsSent.WithLabelValues("dropped").Inc()
		return fmt.Errorf("failed to persist notification: %w", err)
	}
	s.metrics.NotificationsQueued.Inc()
	s.metrics.NotificationsSent.WithLabelValues("queued").Inc()
	return nil
}

// Publish pushes the notification through the broker so whichever instance
// holds the recipient's stream can deliver it.
func (s *Service) Publish(ctx context.Context, notify *model.Notify) error {
	if err := s.broker.Publish(ctx, BrokerChannel, notify); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}

// Run subscribes to the broker channel and routes incoming notifications into
// the local hub until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	msgs, err := s.broker.Subscribe(ctx, BrokerChannel)
	if err != nil {
		return fmt.Errorf("failed to subscribe to notifications: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case payload, ok := <-msgs:
			if !ok {
				return nil
			}
			var notify model.Notify
			if err := json.Unmarshal(payload, &notify); err != nil {
				s.logger.Warn().Err(err).Msg("discarding malformed notification")
				continue
			}
			if err := s.Send(ctx, &notify); err != nil {
				s.logger.Error().Err(err).Str("receiver_id", notify.ReceiverID.String()).Msg("failed to deliver notification")
			}
		}
	}
}
