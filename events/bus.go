// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package events

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/danielhkuo/quickly-ballot/ballot"
)

const EventQueueSize = 20

// ErrSubscriberFull is returned when a channel subscriber has EventQueueSize
// undelivered events. The bus drops such a subscriber.
var ErrSubscriberFull = errors.New("subscriber queue full")

type SubscriberID int

type HandlerFunc func(Event)

type Event struct {
	Timestamp time.Time
	Type      ballot.EventKind
	Data      ballot.Event
}

func NewEvent(data ballot.Event) Event {
	return Event{
		Timestamp: time.Now(),
		Type:      data.Kind,
		Data:      data,
	}
}

// Subscriber lets the bus deliver to channels and to other sinks through one
// interface. Deliver must not block. Close must be idempotent.
type Subscriber interface {
	Deliver(Event) error
	Close()
}

// Bus fans ballot events out to subscribers. Publish delivers synchronously,
// so subscribers see events in publish order. The engine publishes while
// holding its emit lock, so Deliver must never block.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[ballot.EventKind]map[SubscriberID]Subscriber
	lastSubID   SubscriberID
	metrics     *busMetrics
	logger      *slog.Logger
}

func NewBus(reg prometheus.Registerer, logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	b := &Bus{
		subscribers: make(map[ballot.EventKind]map[SubscriberID]Subscriber),
		logger:      logger,
	}
	if reg != nil {
		b.metrics = newBusMetrics(reg)
	}
	return b
}

// Notify implements ballot.Notifier.
func (b *Bus) Notify(evt ballot.Event) {
	b.Publish(NewEvent(evt))
}

type channelSubscriber struct {
	ch     chan Event
	mu     sync.RWMutex
	closed bool
}

func newChannelSubscriber(buffer int) *channelSubscriber {
	return &channelSubscriber{ch: make(chan Event, buffer)}
}

func (c *channelSubscriber) Deliver(evt Event) error {
	// The read lock keeps Close from closing the channel mid-send.
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil
	}
	select {
	case c.ch <- evt:
		return nil
	default:
		return ErrSubscriberFull
	}
}

func (c *channelSubscriber) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.ch)
}

func (b *Bus) register(kind ballot.EventKind, sub Subscriber, label string) SubscriberID {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastSubID++
	id := b.lastSubID
	if _, ok := b.subscribers[kind]; !ok {
		b.subscribers[kind] = make(map[SubscriberID]Subscriber)
	}
	b.subscribers[kind][id] = sub
	if b.metrics != nil {
		b.metrics.subscribers.WithLabelValues(string(kind), label).Inc()
	}
	return id
}

// Subscribe returns a channel receiving events of one kind. A reader that
// falls EventQueueSize events behind is unsubscribed and its channel closed.
func (b *Bus) Subscribe(kind ballot.EventKind) (SubscriberID, <-chan Event) {
	sub := newChannelSubscriber(EventQueueSize)
	return b.register(kind, sub, "channel"), sub.ch
}

// SubscribeFunc runs fn on its own goroutine for each event of one kind. A
// slow fn is dropped the same way a slow channel reader is.
func (b *Bus) SubscribeFunc(kind ballot.EventKind, fn HandlerFunc) SubscriberID {
	id, ch := b.Subscribe(kind)
	go func() {
		for evt := range ch {
			fn(evt)
		}
	}()
	return id
}

// RegisterSubscriber attaches a custom sink for one kind.
func (b *Bus) RegisterSubscriber(kind ballot.EventKind, sub Subscriber) SubscriberID {
	return b.register(kind, sub, subscriberLabel(sub))
}

func subscriberLabel(sub Subscriber) string {
	if _, ok := sub.(*channelSubscriber); ok {
		return "channel"
	}
	return "sink"
}

func (b *Bus) Unsubscribe(kind ballot.EventKind, id SubscriberID) {
	b.mu.Lock()
	var sub Subscriber
	if subs, ok := b.subscribers[kind]; ok {
		if s, ok := subs[id]; ok {
			sub = s
			delete(subs, id)
			if len(subs) == 0 {
				delete(b.subscribers, kind)
			}
			if b.metrics != nil {
				b.metrics.subscribers.WithLabelValues(string(kind), subscriberLabel(s)).Dec()
			}
		}
	}
	b.mu.Unlock()

	if sub != nil {
		sub.Close()
	}
}

// Publish delivers evt to every subscriber of its kind. A subscriber whose
// Deliver fails or panics is removed.
func (b *Bus) Publish(evt Event) {
	type item struct {
		id  SubscriberID
		sub Subscriber
	}
	b.mu.RLock()
	subs := b.subscribers[evt.Type]
	items := make([]item, 0, len(subs))
	for id, sub := range subs {
		items = append(items, item{id: id, sub: sub})
	}
	b.mu.RUnlock()

	for _, it := range items {
		var err error
		func() {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("subscriber deliver panic: %v", r)
				}
			}()
			err = it.sub.Deliver(evt)
		}()
		if err == nil {
			continue
		}
		b.Unsubscribe(evt.Type, it.id)
		if b.metrics != nil {
			b.metrics.deliveryErrors.WithLabelValues(string(evt.Type), subscriberLabel(it.sub)).Inc()
		}
		b.logger.Error("event delivery failed, subscriber removed",
			"type", evt.Type,
			"seq", evt.Data.Seq,
			"error", err,
		)
	}
	if b.metrics != nil {
		b.metrics.eventsTotal.WithLabelValues(string(evt.Type)).Inc()
	}
}

// Stop closes every subscriber. The bus stays usable afterwards.
func (b *Bus) Stop() {
	b.mu.Lock()
	old := b.subscribers
	b.subscribers = make(map[ballot.EventKind]map[SubscriberID]Subscriber)
	b.mu.Unlock()

	for _, subs := range old {
		for _, sub := range subs {
			sub.Close()
		}
	}
	if b.metrics != nil {
		b.metrics.subscribers.Reset()
	}
}
