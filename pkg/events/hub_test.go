package events

import (
	"testing"
)

func TestPublishFanOut(t *testing.T) {
	h := NewEventHub()
	a := h.Subscribe()
	b := h.Subscribe()
	defer h.Unsubscribe(a)
	defer h.Unsubscribe(b)

	h.Publish(ConversionCompleted, ConversionCompletedEvent{Kind: "length", Result: 1000, Label: "m"})

	for i, ch := range []chan Event{a, b} {
		select {
		case ev := <-ch:
			if ev.Name != ConversionCompleted {
				t.Errorf("subscriber %d got event %q, want %q", i, ev.Name, ConversionCompleted)
			}
			payload, err := DecodeAs[ConversionCompletedEvent](ev)
			if err != nil {
				t.Fatalf("DecodeAs() error = %v", err)
			}
			if payload.Result != 1000 || payload.Label != "m" {
				t.Errorf("subscriber %d got payload %+v", i, payload)
			}
		default:
			t.Errorf("subscriber %d got no event", i)
		}
	}
}

func TestPublishDropsForSlowSubscriber(t *testing.T) {
	h := NewEventHub()
	ch := h.Subscribe()
	defer h.Unsubscribe(ch)

	for i := 0; i < cap(ch)+10; i++ {
		h.Publish(ConversionRejected, ConversionRejectedEvent{Code: "parse_error"})
	}

	if got := len(ch); got != cap(ch) {
		t.Errorf("buffered events = %d, want %d", got, cap(ch))
	}
}

func TestUnsubscribe(t *testing.T) {
	h := NewEventHub()
	ch := h.Subscribe()
	if got := h.Subscribers(); got != 1 {
		t.Fatalf("Subscribers() = %d, want 1", got)
	}

	h.Unsubscribe(ch)
	h.Unsubscribe(ch)

	if _, ok := <-ch; ok {
		t.Errorf("channel is still open after Unsubscribe()")
	}
	if got := h.Subscribers(); got != 0 {
		t.Errorf("Subscribers() = %d, want 0", got)
	}

	// Publishing without subscribers, or on a nil hub, must not panic.
	h.Publish(ConversionCompleted, nil)
	var nilHub *EventHub
	nilHub.Publish(ConversionCompleted, nil)
}

func TestDecodeAsEmpty(t *testing.T) {
	got, err := DecodeAs[ConversionRejectedEvent](Event{Name: ConversionRejected})
	if err != nil {
		t.Fatalf("DecodeAs() error = %v", err)
	}
	if got != (ConversionRejectedEvent{}) {
		t.Errorf("DecodeAs() = %+v, want zero value", got)
	}
}
