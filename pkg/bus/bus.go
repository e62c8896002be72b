// Package bus is the in-process event bus connecting the graph view to the
// rest of the client: node activations open detail dialogs, citation focus
// requests drive the camera, and completed ingestions trigger refetches —
// all without components holding references to each other.
package bus

import (
	"context"
	"sync"
)

// Topics published by the client.
const (
	// TopicNodeActivated carries a NodeActivated on double-click.
	TopicNodeActivated = "graph.node_activated"
	// TopicGraphRefetch carries a RefetchRequested when the model is stale.
	TopicGraphRefetch = "graph.refetch"
	// TopicCitationFocus carries a CitationFocus when a footnote is clicked.
	TopicCitationFocus = "chat.citation_focus"
)

// NodeActivated is the payload for a double-clicked node.
type NodeActivated struct {
	NodeID string
	Kind   int
}

// RefetchRequested asks the owning page to re-pull the cluster snapshot.
type RefetchRequested struct {
	Reason string
}

// CitationFocus asks the graph to pin and frame the nodes backing a citation.
type CitationFocus struct {
	NodeIDs []string
}

// Bus provides publish/subscribe delivery for UI events
type Bus struct {
	subscribers map[string]map[*Subscription]bool
	mu          sync.RWMutex
	shutdown    chan struct{}
	shutdownMu  sync.Mutex
	isShutdown  bool
}

// Subscription represents a subscription to a topic
type Subscription struct {
	topic     string
	channel   chan any
	bus       *Bus
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once // Ensures channel is only closed once
}

// New creates a new Bus instance
func New() *Bus {
	return &Bus{
		subscribers: make(map[string]map[*Subscription]bool),
		shutdown:    make(chan struct{}),
	}
}

// Subscribe creates a new subscription to a topic
func (b *Bus) Subscribe(ctx context.Context, topic string) (*Subscription, error) {
	b.shutdownMu.Lock()
	if b.isShutdown {
		b.shutdownMu.Unlock()
		return nil, nil
	}
	b.shutdownMu.Unlock()

	subCtx, cancel := context.WithCancel(ctx)
	sub := &Subscription{
		topic:   topic,
		channel: make(chan any, 100), // Buffer for messages
		bus:     b,
		ctx:     subCtx,
		cancel:  cancel,
	}

	b.mu.Lock()
	if b.subscribers[topic] == nil {
		b.subscribers[topic] = make(map[*Subscription]bool)
	}
	b.subscribers[topic][sub] = true
	b.mu.Unlock()

	// Monitor context cancellation
	go func() {
		select {
		case <-subCtx.Done():
			sub.Unsubscribe()
		case <-b.shutdown:
			sub.close()
		}
	}()

	return sub, nil
}

// Publish sends a message to all subscribers of a topic.
// Uses a snapshot copy to avoid holding lock during potentially slow channel sends.
func (b *Bus) Publish(topic string, message any) {
	b.shutdownMu.Lock()
	if b.isShutdown {
		b.shutdownMu.Unlock()
		return
	}
	b.shutdownMu.Unlock()

	b.mu.RLock()
	topicSubs := b.subscribers[topic]
	if len(topicSubs) == 0 {
		b.mu.RUnlock()
		return
	}
	subs := make([]*Subscription, 0, len(topicSubs))
	for sub := range topicSubs {
		subs = append(subs, sub)
	}
	b.mu.RUnlock()

	// Send outside the lock; a full channel drops rather than blocks the UI.
	for _, sub := range subs {
		select {
		case sub.channel <- message:
		default:
		}
	}
}

// SubscriberCount returns the number of subscribers for a topic
func (b *Bus) SubscriberCount(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.subscribers[topic] == nil {
		return 0
	}
	return len(b.subscribers[topic])
}

// Shutdown closes all subscriptions and shuts down the bus
func (b *Bus) Shutdown() {
	b.shutdownMu.Lock()
	if b.isShutdown {
		b.shutdownMu.Unlock()
		return
	}
	b.isShutdown = true
	b.shutdownMu.Unlock()

	close(b.shutdown)

	b.mu.Lock()
	for topic := range b.subscribers {
		for sub := range b.subscribers[topic] {
			sub.close()
		}
		delete(b.subscribers, topic)
	}
	b.mu.Unlock()
}

// Channel returns the subscription's message channel
func (s *Subscription) Channel() <-chan any {
	return s.channel
}

// Unsubscribe removes the subscription
func (s *Subscription) Unsubscribe() {
	s.cancel()

	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()

	if s.bus.subscribers[s.topic] != nil {
		delete(s.bus.subscribers[s.topic], s)
		if len(s.bus.subscribers[s.topic]) == 0 {
			delete(s.bus.subscribers, s.topic)
		}
	}

	s.close()
}

// close closes the subscription channel safely (idempotent)
func (s *Subscription) close() {
	s.closeOnce.Do(func() {
		close(s.channel)
	})
}
