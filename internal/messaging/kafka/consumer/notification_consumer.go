package consumer

import (
	"context"
	"encoding/json"

	"go-leave/internal/employee"
	"go-leave/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeNotificationDispatch delivers queued notification events. Delivery
// here means resolving recipients and handing the rendered notification to
// the log sink; the real gateway (email, push) sits behind the same topic in
// other deployments.
func ConsumeNotificationDispatch(
	ctx context.Context,
	reader *kafkago.Reader,
	employeeRepo employee.Repository,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.notification_dispatch")
	log.Info("notification dispatch consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("notification dispatch consumer stopped")
				return
			}
			log.Error("fetch notification message failed", zap.Error(err))
			continue
		}

		var event events.NotificationRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode notification_requested event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		recipients, err := employeeRepo.FindByIDs(ctx, event.EmployeeIDs)
		if err != nil {
			log.Error("resolve notification recipients failed",
				zap.String("template_kind", event.TemplateKind),
				zap.Error(err),
			)
			continue
		}

		for _, recipient := range recipients {
			log.Info("notification delivered",
				zap.String("template_kind", event.TemplateKind),
				zap.String("employee_id", recipient.ID.String()),
				zap.String("email", recipient.Email),
				zap.Any("payload", event.Payload),
			)
		}

		if missing := len(event.EmployeeIDs) - len(recipients); missing > 0 {
			log.Warn("some notification recipients no longer exist",
				zap.String("template_kind", event.TemplateKind),
				zap.Int("missing", missing),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit notification message failed", zap.Error(err))
			continue
		}
	}
}
