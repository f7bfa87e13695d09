package consumer

import (
	"context"
	"encoding/json"

	"leavedesk/internal/events"
	"leavedesk/internal/report"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeLeaveStatusChanged drops the cached dashboard whenever a request is
// approved or rejected, so the next dashboard read reflects the decision.
func ConsumeLeaveStatusChanged(
	ctx context.Context,
	reader *kafkago.Reader,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_status")
	log.Info("leave status consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave status consumer stopped")
				return
			}
			log.Error("fetch leave status message failed", zap.Error(err))
			continue
		}

		var event events.LeaveStatusChangedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave_status_changed event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if rdb != nil {
			if err := rdb.Del(ctx, report.DashboardCacheKey).Err(); err != nil {
				log.Error("invalidate dashboard cache failed",
					zap.String("leave_request_id", event.LeaveRequestID),
					zap.Error(err),
				)
				continue
			}
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave status message failed", zap.Error(err))
			continue
		}

		log.Info("dashboard cache invalidated from status change",
			zap.String("leave_request_id", event.LeaveRequestID),
			zap.String("status", event.Status),
		)
	}
}
