// internal/db/recorder.go
package db

import (
	"time"

	"fancontrol/internal/events"
	"fancontrol/internal/logger"
)

// Recorder 把总线上的变更事件异步落库
//
// 引擎在发布事件的 goroutine 里只做一次入队，写库由独立的
// goroutine 完成，数据库慢不会拖住评估流程。队列满时丢弃
// 并告警，历史是观测数据，不为它牺牲控制路径。
type Recorder struct {
	repo   *HistoryRepository
	queue  chan interface{}
	stopCh chan struct{}
	done   chan struct{}
	subs   []events.Subscription
	bus    *events.EventBus
}

func NewRecorder(repo *HistoryRepository, bus *events.EventBus, depth int) *Recorder {
	if depth <= 0 {
		depth = 256
	}
	return &Recorder{
		repo:   repo,
		queue:  make(chan interface{}, depth),
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
		bus:    bus,
	}
}

// Start 订阅总线并启动写库循环
func (r *Recorder) Start() {
	r.subs = append(r.subs,
		r.bus.Subscribe(events.EventTargetChange, r.enqueue),
		r.bus.Subscribe(events.EventFloorChange, r.enqueue),
		r.bus.Subscribe(events.EventSensorFault, r.enqueue),
	)
	go r.run()
	logger.Info("History recorder started")
}

// Stop 取消订阅并等待队列排空
func (r *Recorder) Stop() {
	for _, sub := range r.subs {
		r.bus.Unsubscribe(sub)
	}
	close(r.stopCh)
	<-r.done
}

func (r *Recorder) enqueue(e events.Event) {
	select {
	case r.queue <- e.Data:
	default:
		logger.Warn("History queue full, dropping %s record", events.EventNames[e.Type])
	}
}

func (r *Recorder) run() {
	defer close(r.done)
	for {
		select {
		case data := <-r.queue:
			r.persist(data)
		case <-r.stopCh:
			// 排空剩余记录
			for {
				select {
				case data := <-r.queue:
					r.persist(data)
				default:
					return
				}
			}
		}
	}
}

func (r *Recorder) persist(data interface{}) {
	now := time.Now()
	switch d := data.(type) {
	case events.TargetChangeData:
		_ = r.repo.CreateTargetChange(&TargetChangeLog{
			ZoneID:    d.ZoneID,
			Kind:      "target",
			OldValue:  d.OldTarget,
			NewValue:  d.NewTarget,
			Reason:    d.Reason,
			ChangedAt: now,
		})
	case events.FloorChangeData:
		_ = r.repo.CreateTargetChange(&TargetChangeLog{
			ZoneID:    d.ZoneID,
			Kind:      "floor",
			OldValue:  d.OldFloor,
			NewValue:  d.NewFloor,
			Reason:    d.Reason,
			ChangedAt: now,
		})
	case events.SensorFaultData:
		_ = r.repo.CreateSensorFault(&SensorFaultLog{
			Sensor:    d.Sensor,
			GroupName: d.GroupName,
			HasOwner:  d.HasOwner,
			LoggedAt:  now,
		})
	}
}
