package pubsub

import (
	"log"
	"sync"
)

// Topics published by the storefront.
const (
	TopicStoreChanged = "store.changed"
	TopicOrderCreated = "order.created"
	TopicAIResult     = "ai.result"
)

// Message is a single event on a topic. Body names the store or result that
// changed; subscribers re-read the projections rather than parse the body.
type Message struct {
	Topic string
	Body  string
}

// Bus is an in-process topic bus. The rendering layer subscribes to it to
// learn when any store or AI result changed. Delivery is non-blocking: a
// subscriber that stops draining its channel loses messages rather than
// stalling the publisher.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string][]chan Message
	closed      bool
}

// New creates a new Bus.
func New() *Bus {
	return &Bus{subscribers: make(map[string][]chan Message)}
}

// Subscribe returns a channel receiving every message published on the
// topic after this call.
func (b *Bus) Subscribe(topic string) <-chan Message {
	ch := make(chan Message, 16)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch
	}
	b.subscribers[topic] = append(b.subscribers[topic], ch)
	return ch
}

// Publish delivers the message to every subscriber of the topic.
func (b *Bus) Publish(topic, body string) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	msg := Message{Topic: topic, Body: body}
	for _, ch := range b.subscribers[topic] {
		select {
		case ch <- msg:
		default:
			log.Printf("Dropping %s event for slow subscriber", topic)
		}
	}
}

// Close shuts the bus down and closes all subscriber channels.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, subs := range b.subscribers {
		for _, ch := range subs {
			close(ch)
		}
	}
	b.subscribers = nil
}
