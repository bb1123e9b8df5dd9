package mqtt

import "testing"

func TestReplayQueueEmptyDrain(t *testing.T) {
	q := newReplayQueue(10)
	got := q.drainAll()
	if got != nil {
		t.Errorf("expected nil from empty drain, got %d items", len(got))
	}
}

func TestReplayQueuePushAndDrain(t *testing.T) {
	q := newReplayQueue(10)
	for i := 0; i < 5; i++ {
		q.push(queuedMsg{topic: "t", payload: []byte{byte(i)}})
	}

	got := q.drainAll()
	if len(got) != 5 {
		t.Fatalf("expected 5 items, got %d", len(got))
	}
	for i := 0; i < 5; i++ {
		if got[i].payload[0] != byte(i) {
			t.Errorf("item %d: expected payload %d, got %d", i, i, got[i].payload[0])
		}
	}

	// Second drain should be empty
	got2 := q.drainAll()
	if got2 != nil {
		t.Errorf("expected nil from second drain, got %d items", len(got2))
	}
}

func TestReplayQueueOverflowDropsOldest(t *testing.T) {
	q := newReplayQueue(3)
	for i := 0; i < 5; i++ {
		q.push(queuedMsg{payload: []byte{byte(i)}})
	}

	if q.len() != 3 {
		t.Fatalf("len: got %d, want 3", q.len())
	}

	got := q.drainAll()
	if len(got) != 3 {
		t.Fatalf("expected 3 items, got %d", len(got))
	}
	// Oldest two (0, 1) were dropped; 2, 3, 4 remain in order.
	for i, want := range []byte{2, 3, 4} {
		if got[i].payload[0] != want {
			t.Errorf("item %d: got %d, want %d", i, got[i].payload[0], want)
		}
	}
}

func TestReplayQueueReuseAfterDrain(t *testing.T) {
	q := newReplayQueue(4)

	q.push(queuedMsg{payload: []byte{0}})
	q.push(queuedMsg{payload: []byte{1}})
	q.drainAll()

	// A drained queue accepts a full new batch, including overflow.
	for i := 2; i < 7; i++ {
		q.push(queuedMsg{payload: []byte{byte(i)}})
	}

	got := q.drainAll()
	if len(got) != 4 {
		t.Fatalf("expected 4 items, got %d", len(got))
	}
	for i, want := range []byte{3, 4, 5, 6} {
		if got[i].payload[0] != want {
			t.Errorf("item %d: got %d, want %d", i, got[i].payload[0], want)
		}
	}
}

func TestReplayQueuePreservesAttributes(t *testing.T) {
	q := newReplayQueue(2)
	q.push(queuedMsg{topic: TopicSystem, payload: []byte("x"), qos: 1, retained: true})

	got := q.drainAll()
	if len(got) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got))
	}
	if got[0].topic != TopicSystem || got[0].qos != 1 || !got[0].retained {
		t.Errorf("attributes not preserved: %+v", got[0])
	}
}
