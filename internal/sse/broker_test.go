package sse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

func drain(ch chan []byte) []string {
	var out []string
	for {
		select {
		case msg := <-ch:
			out = append(out, string(msg))
		default:
			return out
		}
	}
}

func TestSubscribeUnsubscribe(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients")
	}
	ch := b.Subscribe("")
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client")
	}
	b.Unsubscribe(ch)
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients after unsub")
	}
}

func TestPublishDelivery(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()
	ch := b.Subscribe("")
	defer b.Unsubscribe(ch)

	b.Publish(Event{Type: TypeAnalysisStarted, Session: "s1", Data: map[string]string{"kind": "resume"}})

	select {
	case msg := <-ch:
		s := string(msg)
		if !strings.Contains(s, "event: analysis.started") {
			t.Errorf("missing event type in %q", s)
		}
		if !strings.Contains(s, `"kind":"resume"`) {
			t.Errorf("missing data in %q", s)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
	}
}

func TestSessionFilter(t *testing.T) {
	b := NewBroker(time.Second)
	defer b.Close()
	mine := b.Subscribe("s1")
	other := b.Subscribe("s2")
	defer b.Unsubscribe(mine)
	defer b.Unsubscribe(other)

	b.Publish(Event{Type: TypeAnalysisCompleted, Session: "s1", Data: map[string]string{}})
	b.PublishCollectionEvent("updated", "mentors")
	time.Sleep(50 * time.Millisecond)

	gotMine := drain(mine)
	gotOther := drain(other)

	// analysis.completed + collection.updated + catalog.changed
	if len(gotMine) != 3 {
		t.Errorf("s1 got %d events, want 3: %v", len(gotMine), gotMine)
	}
	for _, m := range gotOther {
		if strings.Contains(m, "analysis.completed") {
			t.Errorf("s2 received another session's analysis event")
		}
	}
	if len(gotOther) != 2 {
		t.Errorf("s2 got %d events, want 2: %v", len(gotOther), gotOther)
	}
}

func TestPublishCollectionEvent_CatalogThrottle(t *testing.T) {
	b := NewBroker(500 * time.Millisecond)
	defer b.Close()
	ch := b.Subscribe("")
	defer b.Unsubscribe(ch)

	// First event should trigger catalog.changed.
	b.PublishCollectionEvent("updated", "mentors")
	// Second event immediately should NOT trigger another catalog.changed.
	b.PublishCollectionEvent("removed", "careerpaths")
	// Unknown kinds are ignored.
	b.PublishCollectionEvent("renamed", "x")

	time.Sleep(50 * time.Millisecond)
	catalogCount, collectionCount := 0, 0
	for _, s := range drain(ch) {
		if strings.Contains(s, TypeCatalogChanged) {
			catalogCount++
		} else {
			collectionCount++
		}
	}

	if collectionCount != 2 {
		t.Errorf("collection events = %d, want 2", collectionCount)
	}
	if catalogCount != 1 {
		t.Errorf("catalog events = %d, want 1 (throttled)", catalogCount)
	}
}

// syncRecorder guards the body so the handler goroutine and the test do not race.
type syncRecorder struct {
	*httptest.ResponseRecorder
	mu sync.Mutex
}

func (r *syncRecorder) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ResponseRecorder.Write(p)
}

func (r *syncRecorder) body() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ResponseRecorder.Body.String()
}

func TestSSEHandler(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/api/events?session=abc", nil)
	req = req.WithContext(ctx)
	w := &syncRecorder{ResponseRecorder: httptest.NewRecorder()}

	done := make(chan struct{})
	go func() {
		b.ServeHTTP(w, req)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client from handler")
	}

	b.Publish(Event{Type: TypeAnalysisReset, Session: "abc", Data: map[string]string{"session": "abc"}})
	b.Publish(Event{Type: TypeAnalysisReset, Session: "zzz", Data: map[string]string{"session": "zzz"}})
	time.Sleep(50 * time.Millisecond)

	cancel()
	<-done

	body := w.body()
	if !strings.Contains(body, `"session":"abc"`) {
		t.Errorf("handler output missing event: %q", body)
	}
	if strings.Contains(body, "zzz") {
		t.Errorf("handler leaked other session event: %q", body)
	}

	time.Sleep(50 * time.Millisecond)
	if b.ClientCount() != 0 {
		t.Errorf("client not cleaned up after disconnect")
	}
}

func TestPublishDropsOnFullBuffer(t *testing.T) {
	b := NewBroker(time.Second)
	defer b.Close()
	ch := b.Subscribe("")
	defer b.Unsubscribe(ch)

	// Fill buffer (capacity 64) and then one more should not block.
	for i := 0; i < 70; i++ {
		b.Publish(Event{Type: "test", Data: map[string]string{"i": "x"}})
	}
}

func TestCloseClosesSubscribersAndStopsOperations(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	ch := b.Subscribe("")
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client")
	}

	b.Close()

	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("expected subscriber channel to be closed")
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for channel close")
	}

	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients after close")
	}

	// Should be safe no-op after close.
	b.Publish(Event{Type: TypeAnalysisReset, Data: map[string]string{}})
	b.PublishCollectionEvent("updated", "mentors")
}
