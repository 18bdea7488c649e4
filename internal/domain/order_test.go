package domain

import "testing"

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{OrderStatusPending, OrderStatusPaid, true},
		{OrderStatusPaid, OrderStatusShipped, true},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusDelivered, OrderStatusPaid, false},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPaid, OrderStatusCancelled, true},
		{OrderStatusShipped, OrderStatusCancelled, true},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPaid, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Fatalf("CanTransitionTo(%s -> %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestOrderStatusValid(t *testing.T) {
	for _, status := range []OrderStatus{OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled} {
		if !status.Valid() {
			t.Fatalf("%s should be valid", status)
		}
	}
	if OrderStatus("returned").Valid() {
		t.Fatal("unexpected status accepted")
	}
}
