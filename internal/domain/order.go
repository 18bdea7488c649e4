package domain

import "time"

// OrderStatus tracks fulfillment progress.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether the status is a known value.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status may move to next. Orders advance
// pending -> paid -> shipped -> delivered; anything not yet delivered may be
// cancelled.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if next == OrderStatusCancelled {
		return s != OrderStatusDelivered && s != OrderStatusCancelled
	}
	switch s {
	case OrderStatusPending:
		return next == OrderStatusPaid
	case OrderStatusPaid:
		return next == OrderStatusShipped
	case OrderStatusShipped:
		return next == OrderStatusDelivered
	}
	return false
}

// Order is a customer purchase tracked through fulfillment.
type Order struct {
	ID         string
	AccountID  string
	Status     OrderStatus
	TotalCents int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
