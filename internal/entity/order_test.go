package entity_test

import (
	"testing"

	"github.com/kmansoor/sims-backend/internal/entity"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		from entity.OrderStatus
		to   entity.OrderStatus
		want bool
	}{
		{entity.OrderStatusPending, entity.OrderStatusProcessing, true},
		{entity.OrderStatusPending, entity.OrderStatusCancelled, true},
		{entity.OrderStatusPending, entity.OrderStatusShipped, false},
		{entity.OrderStatusPending, entity.OrderStatusDelivered, false},
		{entity.OrderStatusProcessing, entity.OrderStatusShipped, true},
		{entity.OrderStatusProcessing, entity.OrderStatusCancelled, true},
		{entity.OrderStatusProcessing, entity.OrderStatusPending, false},
		{entity.OrderStatusShipped, entity.OrderStatusDelivered, true},
		{entity.OrderStatusShipped, entity.OrderStatusCancelled, false},
		{entity.OrderStatusDelivered, entity.OrderStatusCancelled, false},
		{entity.OrderStatusCancelled, entity.OrderStatusPending, false},
	} {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestOrderStatus_Validate(t *testing.T) {
	t.Parallel()

	if err := entity.OrderStatusPending.Validate(); err != nil {
		t.Errorf("Validate(PENDING) = %v, want nil", err)
	}

	if err := entity.OrderStatus("RETURNED").Validate(); err == nil {
		t.Error("Validate(RETURNED) = nil, want error")
	}
}
