package bus

import (
	"testing"
	"time"
)

func TestPublishSubscribe(t *testing.T) {
	b := New()
	ch, unsub := b.Subscribe("roster.", 10)
	defer unsub()

	b.Publish(NewEvent(KindRosterChanged, "a@s.whatsapp.net"))

	select {
	case evt := <-ch:
		if evt.Kind != KindRosterChanged {
			t.Errorf("got kind %q, want %s", evt.Kind, KindRosterChanged)
		}
		if evt.Timestamp.IsZero() {
			t.Error("NewEvent did not stamp the event")
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}
}

func TestNamespaceFiltering(t *testing.T) {
	b := New()
	ch, unsub := b.Subscribe("wa.", 10)
	defer unsub()

	b.Publish(Event{Kind: KindRosterChanged})
	b.Publish(Event{Kind: KindActivity})

	select {
	case evt := <-ch:
		if evt.Kind != KindActivity {
			t.Errorf("got kind %q, want %s", evt.Kind, KindActivity)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}

	select {
	case evt := <-ch:
		t.Errorf("unexpected event: %v", evt)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUnsubscribe(t *testing.T) {
	b := New()
	ch, unsub := b.Subscribe("roster.", 10)
	unsub()
	unsub() // idempotent

	if n := b.Subscribers(); n != 0 {
		t.Fatalf("Subscribers() = %d after unsubscribe, want 0", n)
	}

	b.Publish(Event{Kind: KindRosterChanged})
	select {
	case evt := <-ch:
		t.Errorf("received event after unsubscribe: %v", evt)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDropOnFullBuffer(t *testing.T) {
	b := New()
	ch, unsub := b.Subscribe("wa.", 1)
	defer unsub()

	b.Publish(Event{Kind: "wa.one"})
	b.Publish(Event{Kind: "wa.two"})

	if evt := <-ch; evt.Kind != "wa.one" {
		t.Errorf("got %q, want wa.one", evt.Kind)
	}
}

func TestNilBusPublish(t *testing.T) {
	var b *Bus
	b.Publish(Event{Kind: KindRosterChanged})
}
