package accounts

import "testing"

func TestBroadcasterDeliversToAllListeners(t *testing.T) {
	b := NewBroadcaster()

	var first, second []Event
	unsubFirst := b.Subscribe(func(e Event) { first = append(first, e) })
	defer unsubFirst()
	unsubSecond := b.Subscribe(func(e Event) { second = append(second, e) })
	defer unsubSecond()

	b.Publish(SignedIn, "user@example.com")

	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected both listeners to receive the event, got %d and %d", len(first), len(second))
	}
	if first[0].Kind != SignedIn || first[0].Email != "user@example.com" {
		t.Fatalf("unexpected event: %+v", first[0])
	}
}

func TestBroadcasterUnsubscribeStopsDelivery(t *testing.T) {
	b := NewBroadcaster()

	var events []Event
	unsubscribe := b.Subscribe(func(e Event) { events = append(events, e) })

	b.Publish(SignedIn, "user@example.com")
	unsubscribe()
	b.Publish(SignedOut, "user@example.com")

	if len(events) != 1 {
		t.Fatalf("expected 1 event after unsubscribe, got %d", len(events))
	}
}

func TestBroadcasterUnsubscribeIsIdempotent(t *testing.T) {
	b := NewBroadcaster()
	unsubscribe := b.Subscribe(func(Event) {})
	unsubscribe()
	unsubscribe()

	b.Publish(Refreshed, "user@example.com")
}
