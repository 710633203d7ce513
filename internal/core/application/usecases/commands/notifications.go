package commands

import (
	"context"
	"fmt"
	"log/slog"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/telemetry"

	"golang.org/x/sync/errgroup"
)

const maxConcurrentNotifications = 4

// NotificationError records one notification that could not be dispatched.
type NotificationError struct {
	RecipientID   kernel.UUID
	RecipientRole ports.RecipientRole
	EventType     ports.EventType
	Err           error
}

func (e NotificationError) Error() string {
	return fmt.Sprintf("notify %s %s about %s: %v", e.RecipientRole, e.RecipientID, e.EventType, e.Err)
}

func (e NotificationError) Unwrap() error {
	return e.Err
}

// notifyAll sends the notifications in parallel once the state writes are done.
// Failures are logged and returned, never propagated as errors.
func notifyAll(
	ctx context.Context,
	notifier ports.Notifier,
	logger *slog.Logger,
	notifications ...ports.Notification,
) []NotificationError {
	if notifier == nil || len(notifications) == 0 {
		return nil
	}

	// The transition is already committed; a cancelled request must not drop its notifications.
	ctx = context.WithoutCancel(ctx)

	failures := make([]error, len(notifications))
	var g errgroup.Group
	g.SetLimit(maxConcurrentNotifications)
	for i, n := range notifications {
		g.Go(func() error {
			failures[i] = notifier.Notify(ctx, n)
			return nil
		})
	}
	_ = g.Wait()

	var result []NotificationError
	for i, err := range failures {
		if err == nil {
			continue
		}
		n := notifications[i]
		result = append(result, NotificationError{
			RecipientID:   n.RecipientID,
			RecipientRole: n.RecipientRole,
			EventType:     n.EventType,
			Err:           err,
		})
		telemetry.NotificationFailures.WithLabelValues(string(n.EventType), string(n.RecipientRole)).Inc()
		logger.WarnContext(ctx, "notification failed",
			"event_type", n.EventType,
			"role", n.RecipientRole,
			"recipient_id", n.RecipientID.String(),
			"error", err,
		)
	}
	return result
}

func notification(
	role ports.RecipientRole,
	recipientID kernel.UUID,
	event ports.EventType,
	orderID kernel.UUID,
	message string,
	extra map[string]any,
) ports.Notification {
	payload := map[string]any{
		"orderId": orderID.String(),
		"message": message,
	}
	for k, v := range extra {
		payload[k] = v
	}
	return ports.Notification{
		RecipientID:   recipientID,
		RecipientRole: role,
		EventType:     event,
		Payload:       payload,
	}
}
