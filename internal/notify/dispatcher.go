// Package notify is the engine's port to the notification gateway. Dispatch
// is fire-and-forget: the engine enqueues and moves on, delivery is the
// outbox worker's problem. A dispatch failure must never fail or roll back a
// committed state transition.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"go-leave/internal/events"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=dispatcher.go -destination=mock/dispatcher_mock.go -package=mock
type Dispatcher interface {
	Notify(ctx context.Context, employeeIDs []string, templateKind string, payload map[string]any) error
	PublishLifecycle(ctx context.Context, event events.LeaveLifecycleEvent) error
}

type noopDispatcher struct{}

func NewNoopDispatcher() Dispatcher {
	return noopDispatcher{}
}

func (noopDispatcher) Notify(context.Context, []string, string, map[string]any) error {
	return nil
}

func (noopDispatcher) PublishLifecycle(context.Context, events.LeaveLifecycleEvent) error {
	return nil
}

// outboxDispatcher queues notification events on the transactional outbox;
// the producer worker ships them to kafka.
type outboxDispatcher struct {
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewOutboxDispatcher(outbox kafka.OutboxRepository, logger ...*zap.Logger) Dispatcher {
	l := zap.L().Named("notify.dispatcher")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notify.dispatcher")
	}
	return &outboxDispatcher{outbox: outbox, logger: l}
}

func (d *outboxDispatcher) Notify(ctx context.Context, employeeIDs []string, templateKind string, payload map[string]any) error {
	if len(employeeIDs) == 0 {
		return nil
	}

	event := events.NotificationRequestedEvent{
		EventType:    "notification_requested",
		EmployeeIDs:  employeeIDs,
		TemplateKind: templateKind,
		Payload:      payload,
		OccurredAt:   time.Now().UTC(),
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	outboxID := uuid.New().String()
	if err := d.outbox.Create(ctx, kafka.OutboxEvent{
		ID:            outboxID,
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "notification",
		AggregateID:   outboxID,
		EventType:     event.EventType,
		Topic:         events.NotificationDispatchTopic,
		Payload:       body,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		return err
	}

	d.logger.Debug("notification queued",
		zap.String("template_kind", templateKind),
		zap.Int("recipients", len(employeeIDs)),
	)
	return nil
}

// PublishLifecycle queues a lifecycle fact for downstream consumers
// (analytics, audit). Same outbox, separate topic.
func (d *outboxDispatcher) PublishLifecycle(ctx context.Context, event events.LeaveLifecycleEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := d.outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   event.RequestID,
		EventType:     event.EventType,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       body,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		return err
	}

	d.logger.Debug("lifecycle event queued",
		zap.String("event_type", event.EventType),
		zap.String("request_id", event.RequestID),
	)
	return nil
}
