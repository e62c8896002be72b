package bus

import (
	"context"
	"testing"
	"time"
)

func TestPublishDeliversToSubscriber(t *testing.T) {
	b := New()
	defer b.Shutdown()

	sub, err := b.Subscribe(context.Background(), TopicNodeActivated)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	b.Publish(TopicNodeActivated, NodeActivated{NodeID: "top-1", Kind: 2})

	select {
	case msg := <-sub.Channel():
		ev, ok := msg.(NodeActivated)
		if !ok || ev.NodeID != "top-1" {
			t.Errorf("unexpected message: %v", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("message never arrived")
	}
}

func TestPublishToOtherTopicNotDelivered(t *testing.T) {
	b := New()
	defer b.Shutdown()

	sub, _ := b.Subscribe(context.Background(), TopicGraphRefetch)
	b.Publish(TopicCitationFocus, CitationFocus{NodeIDs: []string{"a"}})

	select {
	case msg := <-sub.Channel():
		t.Errorf("cross-topic delivery: %v", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New()
	defer b.Shutdown()

	sub, _ := b.Subscribe(context.Background(), TopicGraphRefetch)
	sub.Unsubscribe()

	if got := b.SubscriberCount(TopicGraphRefetch); got != 0 {
		t.Errorf("subscriber count after unsubscribe = %d", got)
	}

	// Channel must be closed.
	if _, open := <-sub.Channel(); open {
		t.Error("channel still open after unsubscribe")
	}
}

func TestContextCancellationUnsubscribes(t *testing.T) {
	b := New()
	defer b.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	sub, _ := b.Subscribe(ctx, TopicNodeActivated)
	cancel()

	select {
	case _, open := <-sub.Channel():
		if open {
			t.Error("expected closed channel after context cancel")
		}
	case <-time.After(time.Second):
		t.Fatal("channel never closed")
	}
}

func TestShutdownClosesEverything(t *testing.T) {
	b := New()
	sub, _ := b.Subscribe(context.Background(), TopicGraphRefetch)

	b.Shutdown()

	if _, open := <-sub.Channel(); open {
		t.Error("channel open after shutdown")
	}
	// Publishing after shutdown must not panic.
	b.Publish(TopicGraphRefetch, RefetchRequested{Reason: "late"})
}
