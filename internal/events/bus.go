package events

import (
	"sync"
)

// EventBus 是事件总线的实现
//
// Publish 在调用者的 goroutine 中同步执行处理器，
// 保证同一来源的事件按发布顺序送达。处理器不允许阻塞。
type EventBus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[EventType][]subscriber
}

type subscriber struct {
	id      int
	handler Handler
}

// NewEventBus 创建新的事件总线
func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]subscriber),
	}
}

// Publish 发布事件，按订阅顺序同步调用处理器
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	subs := eb.handlers[event.Type]
	eb.mu.RUnlock()

	for _, sub := range subs {
		sub.handler(event)
	}
}

// Subscribe 订阅事件
func (eb *EventBus) Subscribe(eventType EventType, handler Handler) Subscription {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.nextID++
	eb.handlers[eventType] = append(eb.handlers[eventType], subscriber{
		id:      eb.nextID,
		handler: handler,
	})
	return Subscription{
		EventType: eventType,
		id:        eb.nextID,
	}
}

// Unsubscribe 取消订阅
//
// Publish 在锁外迭代订阅者切片，这里必须重建切片而不是原地
// 挪动，否则会改写正在被迭代的底层数组。
func (eb *EventBus) Unsubscribe(sub Subscription) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	subs := eb.handlers[sub.EventType]
	for i, s := range subs {
		if s.id == sub.id {
			out := make([]subscriber, 0, len(subs)-1)
			out = append(out, subs[:i]...)
			out = append(out, subs[i+1:]...)
			eb.handlers[sub.EventType] = out
			break
		}
	}
}
