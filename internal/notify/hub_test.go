package notify_test

import (
	"fmt"
	"testing"

	"nexus/internal/notify"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	hub := notify.NewHub(nil)

	var first, second []notify.Event
	hub.Subscribe(func(e notify.Event) { first = append(first, e) })
	hub.Subscribe(func(e notify.Event) { second = append(second, e) })

	hub.Publish(notify.KindCreated, "2505200001")

	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("fan-out failed: %d/%d", len(first), len(second))
	}
	if first[0].Kind != notify.KindCreated || first[0].Payload != "2505200001" {
		t.Fatalf("unexpected event: %#v", first[0])
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	hub := notify.NewHub(nil)

	var got []notify.Event
	token := hub.Subscribe(func(e notify.Event) { got = append(got, e) })
	hub.Publish(notify.KindGeneral, "one")
	hub.Unsubscribe(token)
	hub.Publish(notify.KindGeneral, "two")

	if len(got) != 1 {
		t.Fatalf("expected one delivery, got %d", len(got))
	}
}

func TestPanickingSubscriberDoesNotBlockOthers(t *testing.T) {
	hub := notify.NewHub(nil)

	delivered := 0
	hub.Subscribe(func(notify.Event) { panic("boom") })
	hub.Subscribe(func(notify.Event) { delivered++ })

	hub.Publish(notify.KindUpdated, "2505200001")
	if delivered != 1 {
		t.Fatalf("healthy subscriber starved: %d", delivered)
	}
}

func TestRecentIsBounded(t *testing.T) {
	hub := notify.NewHub(nil)

	for i := 0; i < 150; i++ {
		hub.Publish(notify.KindGeneral, fmt.Sprintf("event-%d", i))
	}

	recent := hub.Recent(0)
	if len(recent) != 100 {
		t.Fatalf("expected the log capped at 100, got %d", len(recent))
	}
	if recent[len(recent)-1].Payload != "event-149" {
		t.Fatalf("expected newest event last, got %q", recent[len(recent)-1].Payload)
	}

	limited := hub.Recent(10)
	if len(limited) != 10 || limited[9].Payload != "event-149" {
		t.Fatalf("limit handling failed: %d %q", len(limited), limited[len(limited)-1].Payload)
	}
}
