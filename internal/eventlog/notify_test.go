package eventlog

import (
	"context"
	"testing"
	"time"
)

func TestSubscribeReceivesAppendsInOrder(t *testing.T) {
	l := newTestLog(t)
	ctx := context.Background()

	_, items, overflowed := l.Subscribe(8)
	defer l.Unsubscribe(1)

	if _, err := l.Append(ctx, []AppendRecord{
		{EventName: []byte("a"), EventData: []byte("1")},
		{EventName: []byte("b"), EventData: []byte("2")},
	}); err != nil {
		t.Fatalf("append: %v", err)
	}

	for i, want := range []string{"1", "2"} {
		select {
		case it := <-items:
			if it.Seq != uint64(i) || string(it.EventData) != want {
				t.Fatalf("item %d: got seq=%d data=%q, want seq=%d data=%q", i, it.Seq, it.EventData, i, want)
			}
		case <-overflowed:
			t.Fatalf("unexpected overflow")
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for item %d", i)
		}
	}
}

func TestSubscribeDoesNotSeeAppendsBeforeRegistration(t *testing.T) {
	l := newTestLog(t)
	ctx := context.Background()

	if _, err := l.Append(ctx, []AppendRecord{{EventName: []byte("a"), EventData: []byte("1")}}); err != nil {
		t.Fatalf("append: %v", err)
	}

	_, items, _ := l.Subscribe(8)
	select {
	case it := <-items:
		t.Fatalf("unexpected item delivered to a fresh subscriber: %+v", it)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	l := newTestLog(t)
	ctx := context.Background()

	id, items, _ := l.Subscribe(8)
	l.Unsubscribe(id)

	if _, err := l.Append(ctx, []AppendRecord{{EventName: []byte("a"), EventData: []byte("1")}}); err != nil {
		t.Fatalf("append: %v", err)
	}
	select {
	case it := <-items:
		t.Fatalf("unexpected item after unsubscribe: %+v", it)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSlowConsumerTripsOverflow(t *testing.T) {
	l := newTestLog(t)
	ctx := context.Background()

	_, _, overflowed := l.Subscribe(1)

	if _, err := l.Append(ctx, []AppendRecord{
		{EventName: []byte("a"), EventData: []byte("1")},
		{EventName: []byte("b"), EventData: []byte("2")},
	}); err != nil {
		t.Fatalf("append: %v", err)
	}

	select {
	case <-overflowed:
	case <-time.After(time.Second):
		t.Fatalf("expected overflow to trip once the buffer filled")
	}
}

func TestMultipleSubscribersEachReceiveAllAppends(t *testing.T) {
	l := newTestLog(t)
	ctx := context.Background()

	_, itemsA, _ := l.Subscribe(8)
	_, itemsB, _ := l.Subscribe(8)

	if _, err := l.Append(ctx, []AppendRecord{{EventName: []byte("a"), EventData: []byte("1")}}); err != nil {
		t.Fatalf("append: %v", err)
	}

	for name, ch := range map[string]<-chan Item{"A": itemsA, "B": itemsB} {
		select {
		case it := <-ch:
			if string(it.EventData) != "1" {
				t.Fatalf("subscriber %s: unexpected data %q", name, it.EventData)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %s: timed out waiting for item", name)
		}
	}
}
