package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// RecipientRole routes a notification to the right channel.
type RecipientRole string

const (
	RoleClient      RecipientRole = "client"
	RoleDistributor RecipientRole = "distributor"
	RoleCourier     RecipientRole = "courier"
	RoleAdmin       RecipientRole = "admin"
)

// EventType names a fulfillment transition.
type EventType string

const (
	EventOrderConfirmed    EventType = "order_confirmed"
	EventCourierAssigned   EventType = "courier_assigned"
	EventCourierReassigned EventType = "courier_reassigned"
	EventDeliveryStarted   EventType = "delivery_started"
	EventDeliveryCompleted EventType = "delivery_completed"
	EventOrderPickedUp     EventType = "order_picked_up"
	EventOrderRejected     EventType = "order_rejected"
	EventDeliveryCancelled EventType = "delivery_cancelled"
)

// Notification is one message for one recipient.
type Notification struct {
	RecipientID   kernel.UUID
	RecipientRole RecipientRole
	EventType     EventType
	Payload       map[string]any
}

// Notifier delivers fulfillment events. Callers treat every error as non-fatal.
type Notifier interface {
	Notify(ctx context.Context, notification Notification) error
}
