package events

import (
	"testing"
	"time"
)

// TestEventBus 订阅、发布与退订
func TestEventBus(t *testing.T) {
	t.Run("Ordered Synchronous Delivery", func(t *testing.T) {
		bus := NewEventBus()
		var got []uint64
		bus.Subscribe(EventTargetChange, func(e Event) {
			got = append(got, e.Data.(TargetChangeData).NewTarget)
		})

		for i := uint64(1); i <= 5; i++ {
			bus.Publish(Event{
				Type:      EventTargetChange,
				Timestamp: time.Now(),
				Data:      TargetChangeData{NewTarget: i},
			})
		}

		if len(got) != 5 {
			t.Fatalf("Expected 5 deliveries, got %d", len(got))
		}
		for i, v := range got {
			if v != uint64(i+1) {
				t.Fatalf("Delivery out of order: %v", got)
			}
		}
	})

	t.Run("Type Isolation", func(t *testing.T) {
		bus := NewEventBus()
		calls := 0
		bus.Subscribe(EventFloorChange, func(Event) { calls++ })

		bus.Publish(Event{Type: EventTargetChange})
		if calls != 0 {
			t.Error("Handler must not receive other event types")
		}
	})

	t.Run("Unsubscribe", func(t *testing.T) {
		bus := NewEventBus()
		calls := 0
		sub := bus.Subscribe(EventTrustChange, func(Event) { calls++ })
		bus.Publish(Event{Type: EventTrustChange})
		bus.Unsubscribe(sub)
		bus.Publish(Event{Type: EventTrustChange})

		if calls != 1 {
			t.Errorf("Expected exactly 1 call after unsubscribe, got %d", calls)
		}
	})

	// 退订不得改写 Publish 正在迭代的订阅者数组
	t.Run("Concurrent Publish And Unsubscribe", func(t *testing.T) {
		bus := NewEventBus()
		subs := make([]Subscription, 0, 8)
		for i := 0; i < 8; i++ {
			subs = append(subs, bus.Subscribe(EventTargetChange, func(Event) {}))
		}

		done := make(chan struct{})
		go func() {
			defer close(done)
			for i := 0; i < 1000; i++ {
				bus.Publish(Event{Type: EventTargetChange})
			}
		}()
		for _, sub := range subs {
			bus.Unsubscribe(sub)
		}
		<-done
	})
}
