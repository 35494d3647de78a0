// Package hub is the in-process event hub panes talk through.
//
// Panes never call each other. A compiler pane emits [TopicCompileResult]
// when a compilation finishes; a CFG view subscribes to it at construction,
// announces itself with [TopicCFGViewOpened], and unsubscribes and emits
// [TopicCFGViewClosed] at teardown.
//
// Delivery is synchronous and in subscription order. A handler that returns
// an error or panics is logged and reported from [Hub.Emit], but the
// remaining subscribers still receive the event.
package hub

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Topic names an event stream.
type Topic string

// Topics used between compiler panes and CFG views.
const (
	TopicCompileResult   Topic = "compileResult"
	TopicCompiler        Topic = "compiler"
	TopicCFGViewOpened   Topic = "cfgViewOpened"
	TopicCFGViewClosed   Topic = "cfgViewClosed"
	TopicRequestFilters  Topic = "requestFilters"
	TopicRequestCompiler Topic = "requestCompiler"
)

// Handler receives one event payload.
type Handler func(ctx context.Context, payload any) error

// Subscription identifies a registered handler.
type Subscription struct {
	topic Topic
	id    uint64
}

// Topic returns the topic the subscription listens on.
func (s Subscription) Topic() Topic { return s.topic }

type subscriber struct {
	id uint64
	fn Handler
}

// Hub routes events from emitters to subscribers. It is safe for concurrent
// use; handlers may subscribe, unsubscribe and emit from inside a delivery.
type Hub struct {
	mu     sync.RWMutex
	subs   map[Topic][]subscriber
	nextID uint64
	logger *log.Logger
}

// New creates a hub. A nil logger discards handler failures.
func New(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{subs: make(map[Topic][]subscriber), logger: logger}
}

// Subscribe registers fn for topic.
func (h *Hub) Subscribe(topic Topic, fn Handler) Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	h.subs[topic] = append(h.subs[topic], subscriber{id: h.nextID, fn: fn})
	return Subscription{topic: topic, id: h.nextID}
}

// Unsubscribe removes a handler. Removing it twice is a no-op.
func (h *Hub) Unsubscribe(s Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	list := h.subs[s.topic]
	for i, sub := range list {
		if sub.id == s.id {
			h.subs[s.topic] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(h.subs[s.topic]) == 0 {
		delete(h.subs, s.topic)
	}
}

// Subscribers returns the number of handlers registered for topic.
func (h *Hub) Subscribers(topic Topic) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[topic])
}

// Emit delivers payload to every handler of topic, in subscription order.
// Handlers subscribed during delivery do not receive this event. The joined
// handler errors are returned after all handlers ran.
func (h *Hub) Emit(ctx context.Context, topic Topic, payload any) error {
	h.mu.RLock()
	subs := append([]subscriber(nil), h.subs[topic]...)
	h.mu.RUnlock()

	var errs []error
	for _, sub := range subs {
		if err := h.deliver(ctx, topic, sub, payload); err != nil {
			h.logger.Warn("event handler failed", "topic", topic, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h *Hub) deliver(ctx context.Context, topic Topic, sub subscriber, payload any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s handler panicked: %v", topic, r)
		}
	}()
	return sub.fn(ctx, payload)
}

// Scope groups the subscriptions of one owner so they can be dropped
// together.
type Scope struct {
	hub  *Hub
	mu   sync.Mutex
	subs []Subscription
}

// Scope returns an empty subscription group on h.
func (h *Hub) Scope() *Scope { return &Scope{hub: h} }

// Hub returns the hub the scope subscribes on.
func (s *Scope) Hub() *Hub { return s.hub }

// Subscribe registers fn on the hub and remembers the subscription.
func (s *Scope) Subscribe(topic Topic, fn Handler) Subscription {
	sub := s.hub.Subscribe(topic, fn)
	s.mu.Lock()
	s.subs = append(s.subs, sub)
	s.mu.Unlock()
	return sub
}

// Emit forwards to [Hub.Emit].
func (s *Scope) Emit(ctx context.Context, topic Topic, payload any) error {
	return s.hub.Emit(ctx, topic, payload)
}

// Unsubscribe drops every subscription made through the scope.
func (s *Scope) Unsubscribe() {
	s.mu.Lock()
	subs := s.subs
	s.subs = nil
	s.mu.Unlock()
	for _, sub := range subs {
		s.hub.Unsubscribe(sub)
	}
}
